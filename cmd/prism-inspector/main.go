// Prism Inspector - the scene viewer with live editing panels.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/config"
	"github.com/Faultbox/prism/internal/logger"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to start inspector", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer app.Close()

	if cfg.Scene.Path != "" {
		app.open(cfg.Scene.Path)
	}
	app.Run()
}
