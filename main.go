package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/cloud-drives/internal/cli"
	"github.com/ytget/cloud-drives/internal/config"
	"github.com/ytget/cloud-drives/internal/logging"
	"github.com/ytget/cloud-drives/internal/platform"
	"github.com/ytget/cloud-drives/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.cloud-drives"
	AppName = "Cloud Drives"
)

func main() {
	err := cli.Execute(cli.Options{
		Version:   version,
		LaunchGUI: launchGUI,
	})
	if err != nil {
		os.Exit(1)
	}
}

// launchGUI starts the tray application and blocks until it quits
func launchGUI(env cli.Env) error {
	// Without a terminal the log file is the only trace
	if env.LogFile == "" {
		if path, err := platform.DefaultLogPath(); err == nil {
			_ = platform.CreateDirectoryIfNotExists(filepath.Dir(path))
			if err := logging.Init(logging.Config{Level: env.LogLevel, File: path}); err != nil {
				fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			}
		}
	}
	logging.Info("starting", zap.String("version", version), zap.String("config", env.Store.Path()))

	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.SetIcon(ui.AppIconResource())

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf(ui.WindowTitleFormat, AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(config.DefaultWindowWidth, config.DefaultWindowHeight))
	myWindow.SetMaster()

	// Login item support is optional
	var startup ui.StartupToggle
	if manager, err := platform.NewStartupManager(); err != nil {
		logging.Warn("run at startup unavailable", zap.Error(err))
	} else {
		startup = manager
	}

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, myApp, ui.Deps{
		Store:        env.Store,
		Rclone:       env.Rclone,
		Startup:      startup,
		RcloneBinary: env.RcloneBinary,
		LogLevel:     env.LogLevel,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := env.Store.Watch(ctx, func() { fyne.Do(rootUI.ReloadConfig) }); err != nil {
		logging.Warn("config changes on disk will not be picked up", zap.Error(err))
	}

	rootUI.Start()

	// Show and run
	myWindow.ShowAndRun()

	rootUI.Shutdown()
	return nil
}
