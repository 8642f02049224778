package api

import (
	"github.com/google/uuid"
)

type ErrorCommand struct {
	Message string
}

type TargetFolderCommand struct {
	PluginId uuid.UUID
	Folder   string
}

type ImageMovedCommand struct {
	PluginId    uuid.UUID
	Source      string
	Destination string
	OldPosition int
}
