package library

import (
	"github.com/fsnotify/fsnotify"
	"path/filepath"
	"sync"
	"sync/atomic"
	"vincit.fi/quick-move/api"
	"vincit.fi/quick-move/api/apitype"
	"vincit.fi/quick-move/common/logger"
)

// Library is the alphabetically sorted list of images in one directory
type Library struct {
	directory     string
	images        []*apitype.ImageFile
	mux           sync.Mutex
	watcher       *fsnotify.Watcher
	reloadPending int32
	onChange      func()

	api.Store
}

func NewLibrary(directory string) *Library {
	return &Library{
		directory: directory,
		images:    []*apitype.ImageFile{},
	}
}

func (s *Library) Directory() string {
	return s.directory
}

// OnChange sets the callback run after the image list has changed
func (s *Library) OnChange(fn func()) {
	s.onChange = fn
}

func (s *Library) Reload() error {
	imageFiles, err := apitype.LoadImageFiles(s.directory)
	if err != nil {
		return err
	}

	s.mux.Lock()
	s.images = imageFiles
	s.mux.Unlock()

	s.changed()
	return nil
}

func (s *Library) Images() []*apitype.ImageFile {
	s.mux.Lock()
	defer s.mux.Unlock()
	images := make([]*apitype.ImageFile, len(s.images))
	copy(images, s.images)
	return images
}

func (s *Library) Len() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.images)
}

func (s *Library) PosByImage(image api.Image) int {
	if image == nil {
		return -1
	}
	return s.PosByPath(image.File())
}

func (s *Library) PosByPath(path string) int {
	s.mux.Lock()
	defer s.mux.Unlock()
	for i, imageFile := range s.images {
		if imageFile.Path() == path {
			return i
		}
	}
	return -1
}

func (s *Library) ImageByPos(pos int) api.Image {
	if imageFile := s.ImageFileAt(pos); imageFile != nil {
		return imageFile
	}
	return nil
}

func (s *Library) ImageFileAt(pos int) *apitype.ImageFile {
	s.mux.Lock()
	defer s.mux.Unlock()
	if pos < 0 || pos >= len(s.images) {
		return nil
	}
	return s.images[pos]
}

// Remove drops the image with path from the list. Returns false if the
// library did not contain it.
func (s *Library) Remove(path string) bool {
	s.mux.Lock()
	removed := false
	for i, imageFile := range s.images {
		if imageFile.Path() == path {
			s.images = append(s.images[:i:i], s.images[i+1:]...)
			removed = true
			break
		}
	}
	s.mux.Unlock()

	if removed {
		logger.Debug.Printf("Removed '%s' from library", path)
		s.changed()
	}
	return removed
}

// Watch reloads the library on the UI loop when files appear in or
// disappear from the directory.
func (s *Library) Watch(scheduler api.IdleScheduler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.directory); err != nil {
		watcher.Close()
		return err
	}
	s.watcher = watcher

	go func() {
		for {
			select {
			case fsEvent, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !s.isRelevant(fsEvent) {
					continue
				}
				logger.Trace.Printf("Directory event: %s", fsEvent)
				if atomic.CompareAndSwapInt32(&s.reloadPending, 0, 1) {
					scheduler.IdleAdd(func() bool {
						atomic.StoreInt32(&s.reloadPending, 0)
						if err := s.Reload(); err != nil {
							logger.Error.Printf("Could not reload '%s': %s", s.directory, err)
						}
						return false
					})
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn.Printf("Directory watcher error: %s", err)
			}
		}
	}()
	return nil
}

func (s *Library) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}

func (s *Library) isRelevant(fsEvent fsnotify.Event) bool {
	if !apitype.IsSupported(filepath.Ext(fsEvent.Name)) {
		return false
	}
	return fsEvent.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

func (s *Library) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
