package library

import (
	"vincit.fi/quick-move/api"
)

// Mover drops moved files from the library on the next UI loop turn, so
// the library is re-sorted before any later idle work runs.
type Mover struct {
	mover     api.FileMover
	library   *Library
	scheduler api.IdleScheduler

	api.FileMover
}

func NewMover(mover api.FileMover, library *Library, scheduler api.IdleScheduler) *Mover {
	return &Mover{
		mover:     mover,
		library:   library,
		scheduler: scheduler,
	}
}

func (s *Mover) Move(src string, dstDir string) (string, error) {
	dst, err := s.mover.Move(src, dstDir)
	if err != nil {
		return dst, err
	}
	s.scheduler.IdleAdd(func() bool {
		s.library.Remove(src)
		return false
	})
	return dst, nil
}
