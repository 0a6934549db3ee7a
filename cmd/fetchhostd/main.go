// fetchhostd is the SwiftFetch native messaging host. Chrome spawns it
// and speaks length-prefixed JSON over its stdin/stdout; downloads are
// handed to the SwiftFetch app.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/swiftfetch/nativehost/internal/config"
	"github.com/swiftfetch/nativehost/internal/host"
	"github.com/swiftfetch/nativehost/internal/launch"
	"github.com/swiftfetch/nativehost/internal/logging"
	"github.com/swiftfetch/nativehost/internal/protocol/frame"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv(config.EnvConfigPath)
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetchhostd: %v\n", err)
		os.Exit(1)
	}
	logger := logging.InitLogger(cfg.Log)

	locator := launch.NewPathLocator(cfg.AppPaths)
	invoker := launch.NewInvoker(locator, logger)

	stop, err := config.Watch(cfgPath, logger, func(next config.Config) {
		locator.SetPaths(next.AppPaths)
	})
	if err != nil {
		logger.Warn().Err(err).Str("path", cfgPath).Msg("config watch unavailable")
	} else {
		defer stop()
	}

	h := host.New(os.Stdin, os.Stdout, invoker, logger, host.Config{
		Limits: frame.Limits{MaxPayloadBytes: cfg.MaxFrameBytes},
	})
	if err := h.Run(); err != nil {
		logger.Error().Err(err).Msg("native host terminated")
		fmt.Fprintf(os.Stderr, "fetchhostd: %v\n", err)
		os.Exit(1)
	}
}
