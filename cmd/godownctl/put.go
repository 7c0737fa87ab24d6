package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newPutCmd())
}

func newPutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <value>",
		Short: "Store a good and print its token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPut(cmd, args)
		},
	}
}

func runPut(cmd *cobra.Command, args []string) (err error) {
	w, err := openStore()
	if err != nil {
		return err
	}
	defer func() { err = closeStore(w, err) }()

	t, err := w.Add([]byte(args[0]))
	if err != nil {
		return fmt.Errorf("failed to put: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatToken(t))
	return nil
}
