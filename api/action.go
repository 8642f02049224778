package api

const WindowActionPrefix = "win."

type Action interface {
	Name() string
	Activate() error
}

type SimpleAction struct {
	name     string
	activate func() error

	Action
}

func NewSimpleAction(name string, activate func() error) *SimpleAction {
	return &SimpleAction{
		name:     name,
		activate: activate,
	}
}

func (s *SimpleAction) Name() string {
	return s.name
}

func (s *SimpleAction) Activate() error {
	if s.activate == nil {
		return nil
	}
	return s.activate()
}

func DetailedWindowActionName(name string) string {
	return WindowActionPrefix + name
}
