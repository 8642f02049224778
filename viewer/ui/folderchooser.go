package ui

import (
	"errors"
	"github.com/OpenDiablo2/dialog"
	"vincit.fi/quick-move/api"
	"vincit.fi/quick-move/common/logger"
)

// FolderChooser opens the native folder selection dialog of the platform
type FolderChooser struct {
	browse func(title string, startDir string) (string, error)
}

func NewFolderChooser() *FolderChooser {
	return &FolderChooser{
		browse: browseDirectory,
	}
}

func (s *FolderChooser) NewFolderDialog(title string, parent api.Window) (api.FolderDialog, error) {
	return &folderDialog{
		title:           title,
		defaultResponse: api.ResponseNone,
		browse:          s.browse,
	}, nil
}

type folderDialog struct {
	title           string
	currentFolder   string
	filename        string
	localOnly       bool
	position        api.WindowPosition
	defaultResponse api.ResponseType
	destroyed       bool
	browse          func(title string, startDir string) (string, error)
}

func (s *folderDialog) SetLocalOnly(localOnly bool) {
	s.localOnly = localOnly
}

func (s *folderDialog) SetCurrentFolder(folder string) {
	s.currentFolder = folder
}

// SetPosition is recorded only, native dialogs place themselves
func (s *folderDialog) SetPosition(position api.WindowPosition) {
	s.position = position
}

func (s *folderDialog) SetDefaultResponse(response api.ResponseType) {
	s.defaultResponse = response
}

func (s *folderDialog) Run() api.ResponseType {
	if s.destroyed {
		logger.Warn.Printf("Folder dialog '%s' already destroyed", s.title)
		return api.ResponseNone
	}

	logger.Trace.Printf("Open folder dialog '%s' at '%s' (local only: %t)", s.title, s.currentFolder, s.localOnly)
	folder, err := s.browse(s.title, s.currentFolder)
	if errors.Is(err, dialog.ErrCancelled) {
		return api.ResponseCancel
	} else if err != nil {
		logger.Error.Printf("Folder dialog failed: %s", err)
		return api.ResponseNone
	} else if folder == "" {
		return api.ResponseCancel
	}

	s.filename = folder
	return api.ResponseOk
}

func (s *folderDialog) Filename() string {
	return s.filename
}

func (s *folderDialog) Destroy() {
	s.destroyed = true
}

func browseDirectory(title string, startDir string) (string, error) {
	return dialog.Directory().Title(title).SetStartDir(startDir).Browse()
}
