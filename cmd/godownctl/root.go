package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mit-pdos/go-warehouse/config"
	"github.com/mit-pdos/go-warehouse/util"
	"github.com/mit-pdos/go-warehouse/warehouse"
)

type store = warehouse.Warehouse[uint32, []byte]

type token = warehouse.Token[uint32]

var (
	// Global flags
	configPath string
	flagCfg    = config.Default()

	// cfg is the configuration file overlaid with flags, set before any
	// command runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "godownctl",
	Short: "Inspect and edit godown data files",
	Long: `godownctl stores, reads and removes goods in a godown data file.

Goods are named by hex tokens, printed by put and set. Allocation state is
rebuilt from the file on every run, so tokens stay valid across runs until
the good is removed or replaced.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	fs := rootCmd.PersistentFlags()
	fs.StringVar(&configPath, "config", config.FileName, "configuration file")
	config.BindFlags(fs, &flagCfg)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	fs := cmd.Flags()
	c, err := config.Load(configPath, fs.Changed("config"))
	if err != nil {
		return err
	}
	config.Override(fs, &c, flagCfg)
	if err := c.Validate(); err != nil {
		return err
	}
	c.ApplyDebug()
	cfg = c
	return nil
}

// openStore opens the data file and rebuilds its allocator. Memory
// addresses do not outlive the process, so tokens handed out here are
// always disk tokens, whatever mode is configured.
func openStore() (*store, error) {
	if cfg.Mode == config.ModeInventory {
		return nil, fmt.Errorf("mode %q keeps nothing on disk", cfg.Mode)
	}
	c := cfg
	c.Mode = config.ModeGodown
	w, err := warehouse.Open[uint32, []byte](c, warehouse.Bytes{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", c.Path(), err)
	}
	var n uint64
	err = w.Restore(func(warehouse.SessionItem[uint32, []byte]) error {
		n += 1
		return nil
	})
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to recover %s: %w", c.Path(), err)
	}
	util.DPrintf(1, "godownctl: recovered %d goods from %s\n", n, c.Path())
	return w, nil
}

// closeStore flushes w and closes it, keeping the first error.
func closeStore(w *store, err error) error {
	if serr := w.Sync(); err == nil {
		err = serr
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

func formatToken(t token) string {
	return hex.EncodeToString(t.Bytes())
}

// parseToken decodes a token printed by put or set and checks that it
// names a live good.
func parseToken(w *store, s string) (token, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return token{}, fmt.Errorf("%w: %w", warehouse.ErrBadToken, err)
	}
	t, err := warehouse.ParseToken[uint32](b)
	if err != nil {
		return token{}, err
	}
	if _, ok := t.Disk(); !ok {
		return token{}, fmt.Errorf("%w: %v names no disk address", warehouse.ErrBadToken, t)
	}
	if !w.Has(t) {
		return token{}, fmt.Errorf("%w: %v", warehouse.ErrEmptySlot, t)
	}
	return t, nil
}
