package ui

import (
	"fmt"
	"github.com/AllenDang/giu"
	"image"
	"path/filepath"
	"strings"
	"time"
	"vincit.fi/quick-move/api"
	"vincit.fi/quick-move/api/apitype"
	"vincit.fi/quick-move/common/event"
	"vincit.fi/quick-move/common/logger"
	"vincit.fi/quick-move/viewer/imageloader"
	"vincit.fi/quick-move/viewer/library"
)

const (
	defaultWindowWidth  = 1024
	defaultWindowHeight = 768
	windowTitle         = "Image Viewer"

	buttonWidth      = 120
	buttonHeight     = 30
	thumbStripHeight = 110
	statusHeight     = 30
	neighbourCount   = 3
	maxTextureSize   = 2048

	captureTimeFormat = "2006-01-02 15:04:05"
)

// Window is a minimal image viewer window. It provides everything window
// plugins need from their host.
type Window struct {
	win        *giu.MasterWindow
	title      string
	subtitle   string
	library    *library.Library
	imageCache *imageloader.Cache
	sender     api.Sender
	idle       *event.IdleQueue

	actions      map[string]api.Action
	actionOrder  []string
	accelerators map[string][]accelerator
	accelLabels  map[string][]string

	current       *apitype.ImageFile
	currentIndex  int
	focused       bool
	captureTime   string
	statusMessage string

	textures   *textureCache
	thumbnails *textureCache
	thumbStrip *ThumbStripWidget
}

var (
	_ api.Window      = (*Window)(nil)
	_ api.Titlebar    = (*Window)(nil)
	_ api.ThumbView   = (*Window)(nil)
	_ api.Application = (*Window)(nil)
)

func NewWindow(broker *event.Broker, idle *event.IdleQueue, lib *library.Library, imageCache *imageloader.Cache) *Window {
	s := newWindow(broker, idle, lib, imageCache)
	s.win = giu.NewMasterWindow(windowTitle, defaultWindowWidth, defaultWindowHeight, 0)
	return s
}

func newWindow(broker *event.Broker, idle *event.IdleQueue, lib *library.Library, imageCache *imageloader.Cache) *Window {
	s := &Window{
		title:        windowTitle,
		library:      lib,
		imageCache:   imageCache,
		sender:       broker,
		idle:         idle,
		actions:      map[string]api.Action{},
		accelerators: map[string][]accelerator{},
		accelLabels:  map[string][]string{},
	}

	s.textures = newTextureCache(func(path string) (image.Image, error) {
		return imageCache.GetScaled(path, apitype.SizeOf(maxTextureSize, maxTextureSize))
	})
	s.thumbnails = newTextureCache(imageCache.GetThumbnail)
	s.thumbStrip = ThumbStrip(s.thumbnails, func(imageFile *apitype.ImageFile) {
		s.SetCurrentImage(imageFile, true)
	}).Height(thumbStripHeight)

	lib.OnChange(s.onLibraryChanged)
	broker.ConnectToGui(api.ShowError, s.showError)
	broker.ConnectToGui(api.ImageMoved, s.imageMoved)
	broker.ConnectToGui(api.TargetFolderChanged, s.targetFolderChanged)

	s.setCurrentIndex(0)
	return s
}

func (s *Window) Run() {
	s.win.Run(s.loop)
}

func (s *Window) Image() api.Image {
	if s.current == nil {
		return nil
	}
	return s.current
}

func (s *Window) Store() api.Store {
	return s.library
}

func (s *Window) ThumbView() api.ThumbView {
	return s
}

func (s *Window) Titlebar() api.Titlebar {
	return s
}

func (s *Window) Application() api.Application {
	return s
}

func (s *Window) AddAction(action api.Action) {
	name := action.Name()
	if _, exists := s.actions[name]; !exists {
		s.actionOrder = append(s.actionOrder, name)
	}
	s.actions[name] = action
	logger.Debug.Printf("Added action '%s'", api.DetailedWindowActionName(name))
}

func (s *Window) RemoveAction(name string) {
	if _, exists := s.actions[name]; !exists {
		return
	}
	delete(s.actions, name)
	for i, actionName := range s.actionOrder {
		if actionName == name {
			s.actionOrder = append(s.actionOrder[:i:i], s.actionOrder[i+1:]...)
			break
		}
	}
	logger.Debug.Printf("Removed action '%s'", api.DetailedWindowActionName(name))
}

func (s *Window) SetSubtitle(subtitle string) {
	s.subtitle = subtitle
}

func (s *Window) SetAccelsForAction(detailedActionName string, accels []string) {
	var parsed []accelerator
	var labels []string
	for _, value := range accels {
		if accel, err := parseAccelerator(value); err != nil {
			logger.Warn.Printf("Ignoring accelerator for '%s': %s", detailedActionName, err)
		} else {
			parsed = append(parsed, accel)
			labels = append(labels, value)
		}
	}
	s.accelerators[detailedActionName] = parsed
	s.accelLabels[detailedActionName] = labels
}

func (s *Window) SetCurrentImage(image api.Image, grabFocus bool) {
	pos := s.library.PosByImage(image)
	if pos < 0 {
		logger.Debug.Printf("Image not in library")
		return
	}
	s.setCurrentIndex(pos)
	s.focused = grabFocus
}

func (s *Window) Subtitle() string {
	return s.subtitle
}

func (s *Window) CurrentIndex() int {
	return s.currentIndex
}

func (s *Window) activateAction(name string) {
	action, ok := s.actions[name]
	if !ok {
		logger.Debug.Printf("No action '%s'", name)
		return
	}
	logger.Trace.Printf("Activate '%s'", api.DetailedWindowActionName(name))
	if err := action.Activate(); err != nil {
		s.sender.SendError(fmt.Sprintf("Action '%s' failed", name), err)
	}
}

func (s *Window) next() {
	s.setCurrentIndex(s.currentIndex + 1)
}

func (s *Window) previous() {
	s.setCurrentIndex(s.currentIndex - 1)
}

func (s *Window) setCurrentIndex(index int) {
	total := s.library.Len()
	if total == 0 {
		s.current = nil
		s.currentIndex = 0
		s.captureTime = ""
		return
	}

	if index < 0 {
		index = 0
	} else if index >= total {
		index = total - 1
	}
	s.currentIndex = index

	imageFile := s.library.ImageFileAt(index)
	if s.current != nil && imageFile.Path() == s.current.Path() {
		return
	}
	s.current = imageFile
	logger.Debug.Printf("Current image %d/%d: '%s'", index+1, total, imageFile.Path())

	s.captureTime = ""
	if captureTime, err := s.imageCache.CaptureTime(imageFile.Path()); err == nil {
		s.captureTime = captureTime.Format(captureTimeFormat)
	}

	s.imageCache.Purge(imageFile.Path())
	s.textures.Retain(map[string]bool{imageFile.Path(): true})
}

// onLibraryChanged keeps the current image if it is still there and
// otherwise starts over from the first image
func (s *Window) onLibraryChanged() {
	pos := -1
	if s.current != nil {
		pos = s.library.PosByPath(s.current.Path())
	}
	if pos >= 0 {
		s.currentIndex = pos
	} else {
		s.current = nil
		s.setCurrentIndex(0)
	}

	keep := map[string]bool{}
	for _, imageFile := range s.library.Images() {
		keep[imageFile.Path()] = true
	}
	s.thumbnails.Retain(keep)
}

func (s *Window) neighbours() []*apitype.ImageFile {
	images := s.library.Images()
	start := s.currentIndex - neighbourCount
	if start < 0 {
		start = 0
	}
	end := s.currentIndex + neighbourCount + 1
	if end > len(images) {
		end = len(images)
	}
	if start >= end {
		return []*apitype.ImageFile{}
	}
	return images[start:end]
}

func (s *Window) header() string {
	if s.subtitle == "" {
		return s.title
	}
	return s.title + " - " + s.subtitle
}

func (s *Window) status() string {
	if s.current == nil {
		return fmt.Sprintf("No images in '%s'  %s", s.library.Directory(), s.statusMessage)
	}
	parts := []string{
		fmt.Sprintf("%d / %d", s.currentIndex+1, s.library.Len()),
		s.current.FileName(),
	}
	if s.captureTime != "" {
		parts = append(parts, s.captureTime)
	}
	if s.statusMessage != "" {
		parts = append(parts, s.statusMessage)
	}
	return strings.Join(parts, "   ")
}

func (s *Window) actionLabel(name string) string {
	labels := s.accelLabels[api.DetailedWindowActionName(name)]
	if len(labels) == 0 {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, strings.Join(labels, ", "))
}

func (s *Window) showError(command *api.ErrorCommand) {
	s.statusMessage = "Error"
	giu.Msgbox("Error", command.Message)
}

func (s *Window) imageMoved(command *api.ImageMovedCommand) {
	s.imageCache.Forget(command.Source)
	s.textures.Forget(command.Source)
	s.thumbnails.Forget(command.Source)
	s.statusMessage = fmt.Sprintf("Moved %s to %s", filepath.Base(command.Source), filepath.Dir(command.Destination))
}

func (s *Window) targetFolderChanged(command *api.TargetFolderCommand) {
	s.statusMessage = "Target folder: " + command.Folder
}

func (s *Window) loop() {
	s.idle.RunPending()
	s.handleKeyPress()

	renderStart := time.Now()

	var actionButtons []giu.Widget
	for _, name := range s.actionOrder {
		actionName := name
		actionButtons = append(actionButtons, giu.Button(s.actionLabel(actionName)).OnClick(func() {
			s.activateAction(actionName)
		}).Size(0, buttonHeight))
	}

	s.thumbStrip.SetImages(s.neighbours(), s.current)

	giu.SingleWindow().
		Layout(
			giu.Label(s.header()),
			giu.Row(
				giu.Button("Previous").OnClick(s.previous).Size(buttonWidth, buttonHeight),
				giu.Button("Next").OnClick(s.next).Size(buttonWidth, buttonHeight),
				giu.Row(actionButtons...),
			),
			giu.Separator(),
			giu.Custom(s.buildCurrentImage),
			s.thumbStrip,
			giu.Label(s.status()),
			giu.PrepareMsgbox(),
		)

	renderTime := time.Since(renderStart)
	if renderTime >= time.Millisecond && logger.IsLogLevel(logger.TRACE) {
		logger.Trace.Printf("Rendered UI in %s", renderTime)
	} else if renderTime >= 10*time.Millisecond {
		logger.Debug.Printf("Rendered UI in %s", renderTime)
	}
}

func (s *Window) buildCurrentImage() {
	width, height := giu.GetAvailableRegion()
	height -= thumbStripHeight + statusHeight
	if height < 0 {
		height = 0
	}

	img := s.textures.Get(s.current.Path())
	if img == nil || img.size.IsEmpty() {
		giu.Dummy(width, height).Build()
		return
	}

	size := img.size.Fit(apitype.SizeOf(int(width), int(height)))
	giu.Image(img.texture).Size(float32(size.Width()), float32(size.Height())).Build()
	giu.Dummy(width, height-float32(size.Height())).Build()
}

func (s *Window) handleKeyPress() {
	shiftDown := giu.IsKeyDown(giu.KeyLeftShift) || giu.IsKeyDown(giu.KeyRightShift)
	altDown := giu.IsKeyDown(giu.KeyLeftAlt) || giu.IsKeyDown(giu.KeyRightAlt)
	controlDown := giu.IsKeyDown(giu.KeyLeftControl) || giu.IsKeyDown(giu.KeyRightControl)

	if giu.IsKeyPressed(giu.KeyLeft) {
		s.previous()
	}
	if giu.IsKeyPressed(giu.KeyRight) {
		s.next()
	}
	if giu.IsKeyPressed(giu.KeyHome) {
		s.setCurrentIndex(0)
	}
	if giu.IsKeyPressed(giu.KeyEnd) {
		s.setCurrentIndex(s.library.Len() - 1)
	}

	for detailedName, accels := range s.accelerators {
		if !strings.HasPrefix(detailedName, api.WindowActionPrefix) {
			continue
		}
		for _, accel := range accels {
			if accel.pressed(shiftDown, controlDown, altDown) {
				s.activateAction(strings.TrimPrefix(detailedName, api.WindowActionPrefix))
				break
			}
		}
	}
}
