package api

type Topic string

const (
	TargetFolderChanged Topic = "target-folder-changed"
	ImageMoved          Topic = "image-moved"
	ShowError           Topic = "show-error"
)
