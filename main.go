package main

import (
	"github.com/AllenDang/giu"
	"os"
	"vincit.fi/quick-move/api"
	"vincit.fi/quick-move/common"
	"vincit.fi/quick-move/common/event"
	"vincit.fi/quick-move/common/logger"
	"vincit.fi/quick-move/common/util"
	"vincit.fi/quick-move/quickmove"
	"vincit.fi/quick-move/viewer/imageloader"
	"vincit.fi/quick-move/viewer/library"
	"vincit.fi/quick-move/viewer/ui"
)

const eventBusQueueSize = 100

func main() {
	params := common.ParseParams()
	logger.InitializeFromEnvironment(logger.StringToLogLevel(params.LogLevel()))

	rootPath := params.RootPath()
	if rootPath == "" {
		if workDir, err := os.Getwd(); err != nil {
			logger.Error.Fatal("Cannot resolve working directory", err)
		} else {
			rootPath = workDir
		}
	}

	idle := event.NewIdleQueue(nil)
	broker := event.InitBus(eventBusQueueSize, idle)

	imageLibrary := library.NewLibrary(rootPath)
	if err := imageLibrary.Reload(); err != nil {
		logger.Error.Fatalf("Could not read images from '%s': %s", rootPath, err)
	}
	if err := imageLibrary.Watch(idle); err != nil {
		logger.Warn.Printf("Not watching '%s' for changes: %s", rootPath, err)
	}
	defer imageLibrary.Close()

	imageCache := imageloader.NewCache(imageloader.NewLoader())
	window := ui.NewWindow(broker, idle, imageLibrary, imageCache)
	idle.SetWake(giu.Update)

	broker.Subscribe(api.ImageMoved, func(command *api.ImageMovedCommand) {
		logger.Info.Printf("Moved '%s' to '%s'", command.Source, command.Destination)
	})

	mover := library.NewMover(&util.FileSystemMover{}, imageLibrary, idle)
	plugin := quickmove.NewQuickMove(window, ui.NewFolderChooser(), mover, idle, broker)
	plugin.Activate()
	defer plugin.Deactivate()

	if params.Target() != "" {
		plugin.SetFolder(params.Target())
	}

	window.Run()
}
