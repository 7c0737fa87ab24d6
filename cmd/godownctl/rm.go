package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRmCmd())
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <token>",
		Aliases: []string{"remove"},
		Short:   "Remove a good",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(args)
		},
	}
}

func runRm(args []string) (err error) {
	w, err := openStore()
	if err != nil {
		return err
	}
	defer func() { err = closeStore(w, err) }()

	t, err := parseToken(w, args[0])
	if err != nil {
		return err
	}
	if err := w.Remove(t); err != nil {
		return fmt.Errorf("failed to remove: %w", err)
	}
	return nil
}
