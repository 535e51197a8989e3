package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlmeasure/internal/app"
	"github.com/philipparndt/stlmeasure/internal/gui"
	"github.com/philipparndt/stlmeasure/internal/session"
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

func newViewCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "view <file>",
		Short: "Open a model in the accelerated viewer",
		Long: `Open an STL or OpenSCAD file in a raylib window.
The model reloads when the file or any OpenSCAD dependency changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			sess, model, err := c.load(ctx, args[0])
			if err != nil {
				return err
			}
			defer sess.Close()

			err = app.Run(ctx, model, app.Options{Config: c.cfg, Session: sess, Log: c.log})
			if errors.Is(err, app.ErrNoWindow) {
				return fmt.Errorf("%w (is a display available?)", err)
			}
			return err
		},
	}
}

func newGUICmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "gui [file]",
		Short: "Open the desktop interface",
		Long:  "Open the fyne desktop interface, optionally with a model already loaded.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return gui.Run(ctx, path, gui.Options{Config: c.cfg, Log: c.log})
		},
	}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// load opens a session for path and loads the model once
func (c *cli) load(ctx context.Context, path string) (*session.Session, *stl.Model, error) {
	sess, err := session.New(path, session.Options{Debounce: c.cfg.Debounce(), Log: c.log})
	if err != nil {
		return nil, nil, err
	}
	model, err := sess.Load(ctx)
	if err != nil {
		_ = sess.Close()
		return nil, nil, err
	}
	return sess, model, nil
}
