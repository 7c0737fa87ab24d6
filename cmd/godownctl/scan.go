package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mit-pdos/go-warehouse/config"
	"github.com/mit-pdos/go-warehouse/godown"
	"github.com/mit-pdos/go-warehouse/warehouse"
)

func init() {
	rootCmd.AddCommand(newScanCmd())
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Print every live good in disk order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd)
		},
	}
}

func runScan(cmd *cobra.Command) error {
	c := cfg
	c.Mode = config.ModeGodown
	w, err := warehouse.Open[uint32, []byte](c, warehouse.Bytes{})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.Path(), err)
	}
	defer w.Close()

	w.StartSession(godown.Uninitialize)
	defer w.StopSession()
	out := cmd.OutOrStdout()
	for {
		items, err := w.SessionItems()
		if err != nil {
			return fmt.Errorf("failed to scan: %w", err)
		}
		if len(items) == 0 {
			return nil
		}
		for _, si := range items {
			fmt.Fprintln(out, string(si.Item))
		}
	}
}
