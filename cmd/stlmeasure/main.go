package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/stlmeasure/internal/config"
	"github.com/philipparndt/stlmeasure/internal/logger"
	"github.com/philipparndt/stlmeasure/version"
)

func init() {
	// Window toolkits must stay on the main OS thread
	runtime.LockOSThread()
}

// cli is the state shared by all commands once flags are parsed
type cli struct {
	flags *config.Flags
	cfg   *config.Config
	log   *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "stlmeasure",
		Short: "Measure distances on STL and OpenSCAD models",
		Long: `stlmeasure is a 3D model viewer for STL and OpenSCAD files.
Pick two points with alt+click to measure the distance between them, or use
the measure and info commands to inspect a model without a window.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	c.flags = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newViewCmd(c),
		newGUICmd(c),
		newMeasureCmd(c),
		newInfoCmd(c),
		newConfigCmd(c),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and initializes logging
func (c *cli) setup() error {
	cfg, err := config.Load(c.flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.cfg = cfg
	c.log = logger.Log
	return nil
}

func main() {
	err := newRootCmd().ExecuteContext(context.Background())
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
