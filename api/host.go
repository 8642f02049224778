package api

// Capabilities the image viewer hands to window-scoped plugins. Only the
// methods listed here are ever called on host objects.

type ResponseType int

const (
	ResponseNone ResponseType = iota
	ResponseOk
	ResponseCancel
	ResponseDeleteEvent
)

func (s ResponseType) String() string {
	switch s {
	case ResponseOk:
		return "OK"
	case ResponseCancel:
		return "CANCEL"
	case ResponseDeleteEvent:
		return "DELETE_EVENT"
	}
	return "NONE"
}

type WindowPosition int

const (
	PositionNone WindowPosition = iota
	PositionCenter
	PositionMouse
)

type Image interface {
	File() string
	IsFileWritable() bool
}

// Store is the ordered image collection of the host. ImageByPos returns
// nil when nothing is at the position and PosByImage returns -1 for an
// unknown image.
type Store interface {
	PosByImage(image Image) int
	ImageByPos(pos int) Image
}

type ThumbView interface {
	SetCurrentImage(image Image, grabFocus bool)
}

type Titlebar interface {
	SetSubtitle(subtitle string)
}

type Application interface {
	SetAccelsForAction(detailedActionName string, accels []string)
}

type Window interface {
	Image() Image
	Store() Store
	ThumbView() ThumbView
	Titlebar() Titlebar
	Application() Application
	AddAction(action Action)
	RemoveAction(name string)
}

type FolderDialog interface {
	SetLocalOnly(localOnly bool)
	SetCurrentFolder(folder string)
	SetPosition(position WindowPosition)
	SetDefaultResponse(response ResponseType)
	// Run blocks until the user answers the dialog
	Run() ResponseType
	Filename() string
	Destroy()
}

type FolderChooser interface {
	NewFolderDialog(title string, parent Window) (FolderDialog, error)
}

// IdleScheduler runs fn on the UI loop once the current turn is done.
// fn is run again on later turns for as long as it returns true.
type IdleScheduler interface {
	IdleAdd(fn func() bool)
}

type FileMover interface {
	Move(src string, dstDir string) (string, error)
}
