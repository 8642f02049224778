package imageloader

import (
	"image"
	"sync"
	"time"
	"vincit.fi/quick-move/api/apitype"
	"vincit.fi/quick-move/common/logger"
)

type Cache struct {
	instances map[string]*Instance
	mux       sync.Mutex
	loader    *Loader
}

func NewCache(loader *Loader) *Cache {
	logger.Debug.Printf("Initialize image cache...")
	return &Cache{
		instances: map[string]*Instance{},
		loader:    loader,
	}
}

func (s *Cache) GetScaled(path string, size apitype.Size) (image.Image, error) {
	return s.getInstance(path).GetScaled(size)
}

func (s *Cache) GetThumbnail(path string) (image.Image, error) {
	return s.getInstance(path).GetThumbnail()
}

func (s *Cache) CaptureTime(path string) (time.Time, error) {
	return s.loader.CaptureTime(path)
}

// Forget drops everything cached for path, e.g. after the file was moved away
func (s *Cache) Forget(path string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.instances, path)
}

// Purge drops the full images of everything but keep
func (s *Cache) Purge(keep string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	for path, instance := range s.instances {
		if path != keep {
			instance.Purge()
		}
	}
}

func (s *Cache) Size() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.instances)
}

func (s *Cache) getInstance(path string) *Instance {
	s.mux.Lock()
	defer s.mux.Unlock()
	if existingInstance, ok := s.instances[path]; ok {
		return existingInstance
	}
	instance := NewInstance(path, s.loader)
	s.instances[path] = instance
	return instance
}
