package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rollcall/internal/config"
)

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "config:init [PATH]",
		Short: "Write a commented default config file",
		Long: `Write the default configuration to PATH (default .rollcall/config.yaml).
An existing file is left alone unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := localConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config:set KEY VALUE",
		Short: "Set one value in the config file",
		Long: `Set a dotted KEY to VALUE in the active config file, keeping its comments.

Examples:
  rollcall config:set output.format json
  rollcall config:set flags.normalize-on-import true`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := strings.ToLower(args[0]), args[1]
			if !slices.Contains(a.v.AllKeys(), key) && !strings.HasPrefix(key, "flags.") {
				return fmt.Errorf("%w: unknown key %q", config.ErrInvalidKey, key)
			}

			path := firstNonEmpty(a.cfgFile, a.v.ConfigFileUsed(), localConfigPath)
			if err := config.SetValue(path, key, value); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s in %s\n", key, value, path)
			return err
		},
	}
}
