package ui

import (
	"github.com/AllenDang/giu"
	"image"
	"sync"
	"vincit.fi/quick-move/api/apitype"
	"vincit.fi/quick-move/common/logger"
	"vincit.fi/quick-move/viewer/imageloader"
)

type texturedImage struct {
	path    string
	texture *giu.Texture
	size    apitype.Size
}

// textureCache turns images into textures in the background. Get returns
// nil until the texture is ready and then wakes up the UI loop.
type textureCache struct {
	mux      sync.Mutex
	textures map[string]*texturedImage
	loading  map[string]bool
	load     func(path string) (image.Image, error)
}

func newTextureCache(load func(path string) (image.Image, error)) *textureCache {
	return &textureCache{
		textures: map[string]*texturedImage{},
		loading:  map[string]bool{},
		load:     load,
	}
}

func (s *textureCache) Get(path string) *texturedImage {
	if path == "" {
		return nil
	}

	s.mux.Lock()
	defer s.mux.Unlock()
	if texture, ok := s.textures[path]; ok {
		return texture
	}
	if s.loading[path] {
		return nil
	}
	s.loading[path] = true

	go s.loadTexture(path)
	return nil
}

func (s *textureCache) loadTexture(path string) {
	img, err := s.load(path)
	if err != nil {
		// Stays in loading so a broken file isn't retried every frame
		logger.Error.Printf("Could not load '%s': %s", path, err)
		return
	}

	rgba := imageloader.ToRgba(img)
	texture, err := giu.NewTextureFromRgba(rgba)
	if err != nil {
		logger.Error.Print(err)
		return
	}

	s.mux.Lock()
	if s.loading[path] {
		s.textures[path] = &texturedImage{
			path:    path,
			texture: texture,
			size:    apitype.SizeFromRectangle(rgba.Bounds()),
		}
		delete(s.loading, path)
	}
	s.mux.Unlock()
	giu.Update()
}

func (s *textureCache) Forget(path string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.textures, path)
	delete(s.loading, path)
}

// Retain drops the textures of all paths not in keep
func (s *textureCache) Retain(keep map[string]bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	for path := range s.textures {
		if !keep[path] {
			delete(s.textures, path)
		}
	}
}
