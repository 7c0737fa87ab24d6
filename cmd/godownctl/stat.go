package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatCmd())
}

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat",
		Short: "Show allocation statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStat(cmd)
		},
	}
}

func runStat(cmd *cobra.Command) error {
	w, err := openStore()
	if err != nil {
		return err
	}
	defer w.Close()

	st := w.Stat()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file:     %s\n", cfg.Path())
	fmt.Fprintf(out, "live:     %d\n", st.Live)
	fmt.Fprintf(out, "retained: %d\n", st.Retained)
	fmt.Fprintf(out, "blocks:   %d\n", st.Blocks)
	return nil
}
