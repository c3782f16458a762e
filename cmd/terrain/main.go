// Terrain viewer: a shadow-mapped, environment-lit heightfield with a
// control panel for the mesh, camera and light.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/heightfield-labs/internal/config"
	"github.com/Faultbox/heightfield-labs/internal/logger"
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

	logger.Info("=== Heightfield Terrain ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to start terrain viewer", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer app.Close()

	app.Run()
	logger.Info("terrain viewer closed normally")
}
