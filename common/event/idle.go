package event

import (
	"sync"
	"vincit.fi/quick-move/common/logger"
)

// IdleQueue is the UI loop's queue of deferred work. The loop calls
// RunPending once per frame; tasks added while a run is in progress wait
// for the next frame.
type IdleQueue struct {
	mux   sync.Mutex
	tasks []func() bool
	wake  func()
}

func NewIdleQueue(wake func()) *IdleQueue {
	return &IdleQueue{
		tasks: []func() bool{},
		wake:  wake,
	}
}

// SetWake sets the function that wakes up a sleeping UI loop
func (s *IdleQueue) SetWake(wake func()) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.wake = wake
}

func (s *IdleQueue) IdleAdd(fn func() bool) {
	s.mux.Lock()
	s.tasks = append(s.tasks, fn)
	wake := s.wake
	s.mux.Unlock()

	if wake != nil {
		wake()
	}
}

// RunPending runs the tasks queued so far in order and returns how many
// were run. Tasks returning true are queued again.
func (s *IdleQueue) RunPending() int {
	s.mux.Lock()
	tasks := s.tasks
	s.tasks = []func() bool{}
	s.mux.Unlock()

	var repeat []func() bool
	for _, task := range tasks {
		if task() {
			repeat = append(repeat, task)
		}
	}

	if len(repeat) > 0 {
		s.mux.Lock()
		s.tasks = append(s.tasks, repeat...)
		wake := s.wake
		s.mux.Unlock()
		if wake != nil {
			wake()
		}
	}

	if len(tasks) > 0 && logger.IsLogLevel(logger.TRACE) {
		logger.Trace.Printf("Ran %d idle tasks, %d repeating", len(tasks), len(repeat))
	}
	return len(tasks)
}

func (s *IdleQueue) Pending() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.tasks)
}
