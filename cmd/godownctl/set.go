package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSetCmd())
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <token> <value>",
		Short: "Replace a good and print its new token",
		Long: `The set command stores value in place of the good token names. The
good moves to a new address, so the old token stops working.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, args)
		},
	}
}

func runSet(cmd *cobra.Command, args []string) (err error) {
	w, err := openStore()
	if err != nil {
		return err
	}
	defer func() { err = closeStore(w, err) }()

	t, err := parseToken(w, args[0])
	if err != nil {
		return err
	}
	nt, err := w.Update(t, []byte(args[1]))
	if err != nil {
		return fmt.Errorf("failed to set: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatToken(nt))
	return nil
}
