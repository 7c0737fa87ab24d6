package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <token>",
		Short: "Print the good a token names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args)
		},
	}
}

func runGet(cmd *cobra.Command, args []string) (err error) {
	w, err := openStore()
	if err != nil {
		return err
	}
	defer func() { err = closeStore(w, err) }()

	t, err := parseToken(w, args[0])
	if err != nil {
		return err
	}
	good, err := w.Get(t)
	if err != nil {
		return fmt.Errorf("failed to get: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(good))
	return nil
}
