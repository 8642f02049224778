// Package quickmove is a window plugin for the image viewer that moves the
// displayed image into a chosen target folder with a single key press.
package quickmove

import (
	"fmt"
	"github.com/google/uuid"
	"vincit.fi/quick-move/api"
	"vincit.fi/quick-move/common/logger"
	"vincit.fi/quick-move/common/util"
)

const (
	ActionNewName  = "new-quick-move-folder"
	ActionMoveName = "do-quick-move"

	AccelNew  = "N"
	AccelMove = "M"

	dialogTitle    = "Choose new target directory"
	subtitlePrefix = "Target: "
	noTarget       = "None"
)

type QuickMove struct {
	id            uuid.UUID
	window        api.Window
	folderChooser api.FolderChooser
	mover         api.FileMover
	idle          api.IdleScheduler
	sender        api.Sender
	homeDir       func() (string, error)

	folder     string
	actionNew  api.Action
	actionMove api.Action
}

func NewQuickMove(window api.Window, folderChooser api.FolderChooser, mover api.FileMover, idle api.IdleScheduler, sender api.Sender) *QuickMove {
	s := &QuickMove{
		id:            uuid.New(),
		window:        window,
		folderChooser: folderChooser,
		mover:         mover,
		idle:          idle,
		sender:        sender,
		homeDir:       util.HomeDir,
	}
	s.actionNew = api.NewSimpleAction(ActionNewName, s.ChooseFolder)
	s.actionMove = api.NewSimpleAction(ActionMoveName, s.Move)
	return s
}

func (s *QuickMove) Id() uuid.UUID {
	return s.id
}

func (s *QuickMove) Folder() string {
	return s.folder
}

func (s *QuickMove) Activate() {
	logger.Debug.Printf("Activated. Adding action %s", api.DetailedWindowActionName(ActionNewName))
	logger.Debug.Printf("Activated. Adding action %s", api.DetailedWindowActionName(ActionMoveName))
	s.window.AddAction(s.actionNew)
	s.window.AddAction(s.actionMove)

	app := s.window.Application()
	app.SetAccelsForAction(api.DetailedWindowActionName(ActionNewName), []string{AccelNew})
	app.SetAccelsForAction(api.DetailedWindowActionName(ActionMoveName), []string{AccelMove})

	s.window.Titlebar().SetSubtitle(subtitle(""))
}

func (s *QuickMove) Deactivate() {
	logger.Debug.Printf("Deactivated. Removing action %s", api.DetailedWindowActionName(ActionNewName))
	logger.Debug.Printf("Deactivated. Removing action %s", api.DetailedWindowActionName(ActionMoveName))
	s.window.RemoveAction(ActionNewName)
	s.window.RemoveAction(ActionMoveName)
}

// SetFolder changes the target folder and shows it in the window subtitle
func (s *QuickMove) SetFolder(folder string) {
	s.folder = folder
	s.window.Titlebar().SetSubtitle(subtitle(folder))
	logger.Info.Printf("Quick move target folder: '%s'", folder)
	s.sender.SendCommandToTopic(api.TargetFolderChanged, &api.TargetFolderCommand{
		PluginId: s.id,
		Folder:   folder,
	})
}

// ChooseFolder asks the user for a new target folder. Blocks until the
// folder dialog is answered.
func (s *QuickMove) ChooseFolder() error {
	dialog, err := s.folderChooser.NewFolderDialog(dialogTitle, s.window)
	if err != nil {
		return fmt.Errorf("could not open folder chooser: %w", err)
	}
	defer dialog.Destroy()

	// Home directory only seeds the dialog, cancelling keeps the folder unset
	startFolder := s.folder
	if startFolder == "" {
		home, err := s.homeDir()
		if err != nil {
			return fmt.Errorf("could not resolve home directory: %w", err)
		}
		startFolder = home
	}

	dialog.SetLocalOnly(true)
	dialog.SetCurrentFolder(startFolder)
	dialog.SetPosition(api.PositionMouse)
	dialog.SetDefaultResponse(api.ResponseOk)

	response := dialog.Run()
	if response != api.ResponseOk {
		logger.Debug.Printf("Folder chooser closed with response %s", response)
		return nil
	}

	s.SetFolder(dialog.Filename())
	return nil
}

// Move moves the current image into the target folder. Does nothing when
// no folder has been chosen or the current image can't be moved.
func (s *QuickMove) Move() error {
	if s.folder == "" {
		logger.Trace.Printf("No target folder")
		return nil
	}

	img := s.window.Image()
	if img == nil {
		logger.Trace.Printf("No current image")
		return nil
	}
	if !img.IsFileWritable() {
		logger.Debug.Printf("Image '%s' is not writable", img.File())
		return nil
	}

	src := img.File()
	dest := s.folder

	if err := util.MakeDirectoriesIfNotExist(dest); err != nil {
		return fmt.Errorf("could not create target folder '%s': %w", dest, err)
	}
	dst, err := s.mover.Move(src, dest)
	if err != nil {
		return fmt.Errorf("could not move '%s' to '%s': %w", src, dest, err)
	}

	logger.Debug.Printf("Move '%s' → '%s'", src, dst)
	store := s.window.Store()
	oldPos := store.PosByImage(img)

	// The viewer re-sorts after the file disappears and jumps back to the
	// first image. Once that is done, select whatever took the old place.
	s.idle.IdleAdd(func() bool {
		return s.setCurrentIdle(oldPos)
	})

	s.sender.SendCommandToTopic(api.ImageMoved, &api.ImageMovedCommand{
		PluginId:    s.id,
		Source:      src,
		Destination: dst,
		OldPosition: oldPos,
	})
	return nil
}

func (s *QuickMove) setCurrentIdle(oldPos int) bool {
	view := s.window.ThumbView()
	store := s.window.Store()
	img := store.ImageByPos(oldPos)
	if img == nil {
		logger.Debug.Printf("No image at position %d after move", oldPos)
		return false
	}
	view.SetCurrentImage(img, true)
	return false
}

func subtitle(folder string) string {
	if folder == "" {
		return subtitlePrefix + noTarget
	}
	return subtitlePrefix + folder
}
