package quickmove

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"vincit.fi/quick-move/api"
	"vincit.fi/quick-move/api/apitype"
	"vincit.fi/quick-move/common/event"
	"vincit.fi/quick-move/common/util"
)

type MockWindow struct {
	api.Window
	mock.Mock
}

type MockThumbView struct {
	api.ThumbView
	mock.Mock
}

type MockTitlebar struct {
	api.Titlebar
	mock.Mock
}

type MockApplication struct {
	api.Application
	mock.Mock
}

type MockFolderChooser struct {
	api.FolderChooser
	mock.Mock
}

type MockFolderDialog struct {
	api.FolderDialog
	mock.Mock
}

type MockSender struct {
	api.Sender
	mock.Mock
}

type StubImage struct {
	path     string
	writable bool
}

func (s *StubImage) File() string {
	return s.path
}

func (s *StubImage) IsFileWritable() bool {
	return s.writable
}

// StubStore keeps images in the order given, like a sorted viewer store
type StubStore struct {
	images []api.Image
}

func (s *StubStore) PosByImage(image api.Image) int {
	for i, img := range s.images {
		if img.File() == image.File() {
			return i
		}
	}
	return -1
}

func (s *StubStore) ImageByPos(pos int) api.Image {
	if pos < 0 || pos >= len(s.images) {
		return nil
	}
	return s.images[pos]
}

func (s *StubStore) remove(path string) {
	for i, img := range s.images {
		if img.File() == path {
			s.images = append(s.images[:i], s.images[i+1:]...)
			return
		}
	}
}

func (s *MockWindow) Image() api.Image {
	args := s.Called()
	if img := args.Get(0); img != nil {
		return img.(api.Image)
	}
	return nil
}

func (s *MockWindow) Store() api.Store {
	return s.Called().Get(0).(api.Store)
}

func (s *MockWindow) ThumbView() api.ThumbView {
	return s.Called().Get(0).(api.ThumbView)
}

func (s *MockWindow) Titlebar() api.Titlebar {
	return s.Called().Get(0).(api.Titlebar)
}

func (s *MockWindow) Application() api.Application {
	return s.Called().Get(0).(api.Application)
}

func (s *MockWindow) AddAction(action api.Action) {
	s.Called(action)
}

func (s *MockWindow) RemoveAction(name string) {
	s.Called(name)
}

func (s *MockThumbView) SetCurrentImage(image api.Image, grabFocus bool) {
	s.Called(image, grabFocus)
}

func (s *MockTitlebar) SetSubtitle(subtitle string) {
	s.Called(subtitle)
}

func (s *MockApplication) SetAccelsForAction(detailedActionName string, accels []string) {
	s.Called(detailedActionName, accels)
}

func (s *MockFolderChooser) NewFolderDialog(title string, parent api.Window) (api.FolderDialog, error) {
	args := s.Called(title, parent)
	if dialog := args.Get(0); dialog != nil {
		return dialog.(api.FolderDialog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (s *MockFolderDialog) SetLocalOnly(localOnly bool) {
	s.Called(localOnly)
}

func (s *MockFolderDialog) SetCurrentFolder(folder string) {
	s.Called(folder)
}

func (s *MockFolderDialog) SetPosition(position api.WindowPosition) {
	s.Called(position)
}

func (s *MockFolderDialog) SetDefaultResponse(response api.ResponseType) {
	s.Called(response)
}

func (s *MockFolderDialog) Run() api.ResponseType {
	return s.Called().Get(0).(api.ResponseType)
}

func (s *MockFolderDialog) Filename() string {
	return s.Called().String(0)
}

func (s *MockFolderDialog) Destroy() {
	s.Called()
}

func (s *MockSender) SendCommandToTopic(topic api.Topic, command apitype.Command) {
	s.Called(topic, command)
}

func (s *MockSender) SendError(message string, err error) {
}

type fixture struct {
	window        *MockWindow
	thumbView     *MockThumbView
	titlebar      *MockTitlebar
	application   *MockApplication
	folderChooser *MockFolderChooser
	sender        *MockSender
	store         *StubStore
	idle          *event.IdleQueue
	sut           *QuickMove
}

func newFixture() *fixture {
	f := &fixture{
		window:        new(MockWindow),
		thumbView:     new(MockThumbView),
		titlebar:      new(MockTitlebar),
		application:   new(MockApplication),
		folderChooser: new(MockFolderChooser),
		sender:        new(MockSender),
		store:         &StubStore{},
		idle:          event.NewIdleQueue(nil),
	}
	f.window.On("Titlebar").Return(f.titlebar)
	f.window.On("Application").Return(f.application)
	f.window.On("ThumbView").Return(f.thumbView)
	f.window.On("Store").Return(f.store)
	f.titlebar.On("SetSubtitle", mock.Anything).Return()
	f.sender.On("SendCommandToTopic", mock.Anything, mock.Anything).Return()

	f.sut = NewQuickMove(f.window, f.folderChooser, &util.FileSystemMover{}, f.idle, f.sender)
	f.sut.homeDir = func() (string, error) {
		return "/home/tester", nil
	}
	return f
}

func writeImages(t *testing.T, dir string, names ...string) []api.Image {
	var images []api.Image
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.Nil(t, os.WriteFile(path, []byte(name), 0644))
		images = append(images, &StubImage{path: path, writable: true})
	}
	return images
}

//// Activation

func TestActivate(t *testing.T) {
	a := assert.New(t)
	f := newFixture()

	var added []string
	f.window.On("AddAction", mock.Anything).Run(func(args mock.Arguments) {
		added = append(added, args.Get(0).(api.Action).Name())
	}).Return()
	f.application.On("SetAccelsForAction", "win.new-quick-move-folder", []string{"N"}).Return()
	f.application.On("SetAccelsForAction", "win.do-quick-move", []string{"M"}).Return()

	f.sut.Activate()

	a.Equal([]string{ActionNewName, ActionMoveName}, added)
	f.application.AssertExpectations(t)
	f.titlebar.AssertCalled(t, "SetSubtitle", "Target: None")
}

func TestDeactivate(t *testing.T) {
	f := newFixture()

	f.window.On("RemoveAction", ActionNewName).Return()
	f.window.On("RemoveAction", ActionMoveName).Return()

	f.sut.Deactivate()

	f.window.AssertNumberOfCalls(t, "RemoveAction", 2)
	f.window.AssertCalled(t, "RemoveAction", ActionNewName)
	f.window.AssertCalled(t, "RemoveAction", ActionMoveName)
}

func TestActions_ActivateOperations(t *testing.T) {
	a := assert.New(t)
	f := newFixture()

	a.Equal(ActionNewName, f.sut.actionNew.Name())
	a.Equal(ActionMoveName, f.sut.actionMove.Name())
	// No folder set so move action does nothing
	a.Nil(f.sut.actionMove.Activate())
	f.window.AssertNotCalled(t, "Image")
}

//// Choose folder

func expectDialog(f *fixture, startFolder string, response api.ResponseType) *MockFolderDialog {
	dialog := new(MockFolderDialog)
	f.folderChooser.On("NewFolderDialog", "Choose new target directory", f.window).Return(dialog, nil)
	dialog.On("SetLocalOnly", true).Return()
	dialog.On("SetCurrentFolder", startFolder).Return()
	dialog.On("SetPosition", api.PositionMouse).Return()
	dialog.On("SetDefaultResponse", api.ResponseOk).Return()
	dialog.On("Run").Return(response)
	dialog.On("Destroy").Return()
	return dialog
}

func TestChooseFolder_Accept(t *testing.T) {
	a := assert.New(t)
	f := newFixture()

	dialog := expectDialog(f, "/home/tester", api.ResponseOk)
	dialog.On("Filename").Return("/pictures/keep")

	err := f.sut.ChooseFolder()

	a.Nil(err)
	a.Equal("/pictures/keep", f.sut.Folder())
	f.titlebar.AssertCalled(t, "SetSubtitle", "Target: /pictures/keep")
	f.sender.AssertCalled(t, "SendCommandToTopic", api.TargetFolderChanged, &api.TargetFolderCommand{
		PluginId: f.sut.Id(),
		Folder:   "/pictures/keep",
	})
	dialog.AssertExpectations(t)
}

func TestChooseFolder_SeededWithPreviousFolder(t *testing.T) {
	a := assert.New(t)
	f := newFixture()
	f.sut.SetFolder("/pictures/old")

	dialog := expectDialog(f, "/pictures/old", api.ResponseOk)
	dialog.On("Filename").Return("/pictures/new")

	a.Nil(f.sut.ChooseFolder())
	a.Equal("/pictures/new", f.sut.Folder())
	dialog.AssertExpectations(t)
}

func TestChooseFolder_Cancel(t *testing.T) {
	a := assert.New(t)
	f := newFixture()

	dialog := expectDialog(f, "/home/tester", api.ResponseCancel)

	a.Nil(f.sut.ChooseFolder())
	a.Equal("", f.sut.Folder())
	dialog.AssertNotCalled(t, "Filename")
	dialog.AssertCalled(t, "Destroy")
	f.titlebar.AssertNotCalled(t, "SetSubtitle", mock.Anything)
}

func TestChooseFolder_CancelKeepsPreviousFolder(t *testing.T) {
	a := assert.New(t)
	f := newFixture()
	f.sut.SetFolder("/pictures/old")

	dialog := expectDialog(f, "/pictures/old", api.ResponseDeleteEvent)

	a.Nil(f.sut.ChooseFolder())
	a.Equal("/pictures/old", f.sut.Folder())
	dialog.AssertCalled(t, "Destroy")
}

func TestChooseFolder_DialogDestroyedOnError(t *testing.T) {
	a := assert.New(t)
	f := newFixture()
	f.sut.homeDir = func() (string, error) {
		return "", errors.New("no home")
	}

	dialog := new(MockFolderDialog)
	f.folderChooser.On("NewFolderDialog", mock.Anything, mock.Anything).Return(dialog, nil)
	dialog.On("Destroy").Return()

	err := f.sut.ChooseFolder()

	a.NotNil(err)
	dialog.AssertCalled(t, "Destroy")
	dialog.AssertNotCalled(t, "Run")
	a.Equal("", f.sut.Folder())
}

func TestChooseFolder_DialogCreationFails(t *testing.T) {
	a := assert.New(t)
	f := newFixture()

	f.folderChooser.On("NewFolderDialog", mock.Anything, mock.Anything).Return(nil, errors.New("no display"))

	a.NotNil(f.sut.ChooseFolder())
	a.Equal("", f.sut.Folder())
}

//// Move

func TestMove_NoFolder(t *testing.T) {
	a := assert.New(t)
	f := newFixture()

	dir := t.TempDir()
	writeImages(t, dir, "img.png")

	a.Nil(f.sut.Move())

	a.True(util.DoesFileExist(filepath.Join(dir, "img.png")))
	f.window.AssertNotCalled(t, "Image")
	a.Equal(0, f.idle.Pending())
}

func TestMove_NoImage(t *testing.T) {
	a := assert.New(t)
	f := newFixture()
	target := filepath.Join(t.TempDir(), "target")
	f.sut.SetFolder(target)
	f.window.On("Image").Return(nil)

	a.Nil(f.sut.Move())

	a.False(util.DoesFileExist(target))
	a.Equal(0, f.idle.Pending())
}

func TestMove_NotWritable(t *testing.T) {
	a := assert.New(t)
	f := newFixture()

	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "target")
	images := writeImages(t, dir, "img.png")
	images[0].(*StubImage).writable = false
	f.sut.SetFolder(target)
	f.window.On("Image").Return(images[0])

	a.Nil(f.sut.Move())

	a.True(util.DoesFileExist(images[0].File()))
	a.False(util.DoesFileExist(target))
	a.Equal(0, f.idle.Pending())
}

func TestMove(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)
	f := newFixture()

	dir := t.TempDir()
	target := filepath.Join(t.TempDir(), "sorted", "keep")
	images := writeImages(t, dir, "img.png")
	f.store.images = images
	f.sut.SetFolder(target)
	f.window.On("Image").Return(images[0])

	r.Nil(f.sut.Move())

	a.True(util.DoesFileExist(filepath.Join(target, "img.png")))
	a.False(util.DoesFileExist(filepath.Join(dir, "img.png")))
	f.sender.AssertCalled(t, "SendCommandToTopic", api.ImageMoved, &api.ImageMovedCommand{
		PluginId:    f.sut.Id(),
		Source:      filepath.Join(dir, "img.png"),
		Destination: filepath.Join(target, "img.png"),
		OldPosition: 0,
	})
}

func TestMove_SelectsImageAtOldPosition(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)
	f := newFixture()

	dir := t.TempDir()
	target := t.TempDir()
	images := writeImages(t, dir, "a.png", "b.png", "c.png", "d.png")
	f.store.images = append([]api.Image{}, images...)
	f.sut.SetFolder(target)
	f.window.On("Image").Return(images[1])
	f.thumbView.On("SetCurrentImage", images[2], true).Return()

	r.Nil(f.sut.Move())

	// Nothing happens before the UI loop is idle
	f.thumbView.AssertNotCalled(t, "SetCurrentImage", mock.Anything, mock.Anything)
	a.Equal(1, f.idle.Pending())

	f.store.remove(images[1].File())
	a.Equal(1, f.idle.RunPending())

	f.thumbView.AssertCalled(t, "SetCurrentImage", images[2], true)
	f.thumbView.AssertNumberOfCalls(t, "SetCurrentImage", 1)
	a.Equal(0, f.idle.Pending())
}

func TestMove_LastImageLeavesSelectionAlone(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)
	f := newFixture()

	dir := t.TempDir()
	images := writeImages(t, dir, "a.png", "b.png")
	f.store.images = append([]api.Image{}, images...)
	f.sut.SetFolder(t.TempDir())
	f.window.On("Image").Return(images[1])

	r.Nil(f.sut.Move())
	f.store.remove(images[1].File())
	a.Equal(1, f.idle.RunPending())

	f.thumbView.AssertNotCalled(t, "SetCurrentImage", mock.Anything, mock.Anything)
}

func TestMove_TargetFolderExists(t *testing.T) {
	a := assert.New(t)
	r := require.New(t)
	f := newFixture()

	dir := t.TempDir()
	target := t.TempDir()
	existing := writeImages(t, target, "existing.png")
	images := writeImages(t, dir, "img.png")
	f.store.images = images
	f.sut.SetFolder(target)
	f.window.On("Image").Return(images[0])

	r.Nil(f.sut.Move())

	entries, err := os.ReadDir(target)
	r.Nil(err)
	a.Len(entries, 2)
	content, err := os.ReadFile(existing[0].File())
	r.Nil(err)
	a.Equal("existing.png", string(content))
}

func TestMove_DestinationFileExists(t *testing.T) {
	a := assert.New(t)
	f := newFixture()

	dir := t.TempDir()
	target := t.TempDir()
	writeImages(t, target, "img.png")
	images := writeImages(t, dir, "img.png")
	f.store.images = images
	f.sut.SetFolder(target)
	f.window.On("Image").Return(images[0])

	err := f.sut.Move()

	a.True(errors.Is(err, util.ErrDestinationExists))
	a.True(util.DoesFileExist(images[0].File()))
	a.Equal(0, f.idle.Pending())
	f.sender.AssertNotCalled(t, "SendCommandToTopic", api.ImageMoved, mock.Anything)
}

func TestSubtitle(t *testing.T) {
	a := assert.New(t)

	a.Equal("Target: None", subtitle(""))
	a.Equal("Target: /a/b", subtitle("/a/b"))
}
