package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mit-pdos/go-warehouse/config"
)

var configInitForce bool

func init() {
	cmd := newConfigCmd()
	initCmd := newConfigInitCmd()
	initCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)
	rootCmd.AddCommand(cmd)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write the current configuration to a file",
		Long: `The init command writes the configuration in effect, defaults overlaid
with any flags given, to path (` + config.FileName + ` by default).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, args)
		},
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.FileName
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Write(path, cfg); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
