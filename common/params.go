package common

import (
	"flag"
)

type Params struct {
	logLevel string
	target   string
	rootPath string
}

func NewEmptyParams() *Params {
	return &Params{
		logLevel: "",
		target:   "",
		rootPath: "",
	}
}

func NewParams(logLevel string, target string, rootPath string) *Params {
	return &Params{
		logLevel: logLevel,
		target:   target,
		rootPath: rootPath,
	}
}

func ParseParams() *Params {
	logLevel := flag.String("logLevel", "INFO", "Log level: ERROR, WARN, INFO, DEBUG, Trace")
	target := flag.String("target", "", "Initial target folder for quick move. Not persisted.")

	flag.Parse()
	rootPath := flag.Arg(0)

	return NewParams(*logLevel, *target, rootPath)
}

func (s *Params) LogLevel() string {
	return s.logLevel
}

func (s *Params) Target() string {
	return s.target
}

func (s *Params) RootPath() string {
	return s.rootPath
}
