// Command framedump renders the demo arena on a recording device, without a
// window, and prints the frame counters and optionally every device call.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/config"
	"github.com/Faultbox/ironsight/internal/engine/backend"
	"github.com/Faultbox/ironsight/internal/game"
	"github.com/Faultbox/ironsight/internal/logger"
)

var (
	flagFrames   = flag.Int("frames", 1, "Number of frames to render")
	flagInterval = flag.Int("interval", 16, "Milliseconds between frames")
	flagTrace    = flag.Bool("trace", false, "Print the device calls of the last frame")
	flagYaw      = flag.Float64("yaw", 0, "Camera yaw in degrees")
)

func main() {
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

	if err := run(cfg); err != nil {
		logger.Error("framedump failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	dev := backend.NewTraceDevice()
	s, err := game.NewSession(cfg, dev)
	if err != nil {
		return err
	}
	s.Camera().Yaw = float32(*flagYaw)

	for i := range max(*flagFrames, 1) {
		dev.Reset()
		if err := s.Frame(i * *flagInterval); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}

	fmt.Print(s.Renderer().Stats())
	if *flagTrace {
		fmt.Println()
		fmt.Print(dev)
	}
	return nil
}
