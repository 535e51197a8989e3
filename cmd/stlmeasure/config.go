package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlmeasure/internal/config"
)

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, write or check configuration files",
	}
	cmd.AddCommand(
		newConfigShowCmd(c),
		newConfigInitCmd(c),
		newConfigCheckCmd(),
	)
	return cmd
}

func newConfigShowCmd(c *cli) *cobra.Command {
	var asTOML bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.cfg.Marshal(asTOML)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&asTOML, "toml", false, "Print TOML instead of YAML")
	return cmd
}

func newConfigInitCmd(c *cli) *cobra.Command {
	var (
		asTOML bool
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective configuration to a file",
		Long: `Write the effective configuration, flag overrides included, to path.
Without a path the file goes to the user config directory, where it is picked
up by every later run. A .toml extension selects TOML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if asTOML {
				path = filepath.Join(config.ConfigDir(), "stlmeasure.toml")
			}
			if len(args) == 1 {
				path = args[0]
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("failed to check %s: %w", path, err)
				}
			}

			var err error
			if path == config.DefaultPath() {
				err = c.cfg.Save()
			} else {
				err = c.cfg.SaveTo(path)
			}
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asTOML, "toml", false, "Write TOML to the user config directory")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func newConfigCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		// The file under test may be the one setup would fail on
		PersistentPreRun: func(*cobra.Command, []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(args[0])
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}
}
