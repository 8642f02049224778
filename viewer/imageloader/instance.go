package imageloader

import (
	"image"
	"sync"
	"time"
	"vincit.fi/quick-move/api/apitype"
	"vincit.fi/quick-move/common/logger"
)

type Instance struct {
	path      string
	full      image.Image
	thumbnail image.Image
	loader    *Loader
	mux       sync.Mutex
}

func NewInstance(path string, loader *Loader) *Instance {
	return &Instance{
		path:   path,
		loader: loader,
	}
}

func (s *Instance) getFull() (image.Image, error) {
	if s.full == nil {
		full, err := s.loader.LoadFull(s.path)
		if err != nil {
			logger.Error.Printf("Could not load full image '%s': %s", s.path, err)
			return nil, err
		}
		s.full = full
	} else {
		logger.Trace.Print("Use cached full image")
	}
	return s.full, nil
}

func (s *Instance) GetScaled(size apitype.Size) (image.Image, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	startTime := time.Now()
	full, err := s.getFull()
	if err != nil {
		return nil, err
	}
	scaled := s.loader.Scale(full, size)
	logger.Trace.Printf("'%s': Scaled to %dx%d in %s", s.path, size.Width(), size.Height(), time.Since(startTime))
	return scaled, nil
}

func (s *Instance) GetThumbnail() (image.Image, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.thumbnail == nil {
		startTime := time.Now()
		full, err := s.getFull()
		if err != nil {
			return nil, err
		}
		s.thumbnail = s.loader.Thumbnail(full)
		logger.Trace.Printf("'%s': Thumbnail created in %s", s.path, time.Since(startTime))
	}
	return s.thumbnail, nil
}

// Purge drops the full image but keeps the thumbnail
func (s *Instance) Purge() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.full = nil
}
