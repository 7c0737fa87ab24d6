// Package config describes where a warehouse keeps its data and how it
// runs. Files are JSON with comments and trailing commas allowed.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/spf13/pflag"
	"github.com/tailscale/hujson"

	"github.com/mit-pdos/go-warehouse/common"
	"github.com/mit-pdos/go-warehouse/util"
)

var (
	ErrInvalid  = errors.New("config: invalid")
	ErrNotFound = errors.New("config: file not found")
)

// FileName is the configuration file looked for in the working directory.
const FileName = ".godown.json"

const (
	ModeGodown    = "godown"
	ModeInventory = "inventory"
	ModeBoth      = "both"
)

type Config struct {
	Dir       string `json:"dir"`
	File      string `json:"file"`
	Mode      string `json:"mode"`
	ChunkSize uint64 `json:"chunk_size,omitempty"` // 0 selects common.ChunkSize
	Compress  bool   `json:"compress,omitempty"`
	Debug     uint64 `json:"debug,omitempty"`
}

func Default() Config {
	return Config{
		Dir:  "data",
		File: "godown.data",
		Mode: ModeGodown,
	}
}

// Path is the data file.
func (c Config) Path() string {
	return filepath.Join(c.Dir, c.File)
}

// Window is the scan window to use.
func (c Config) Window() uint64 {
	if c.ChunkSize == 0 {
		return common.ChunkSize
	}
	return c.ChunkSize
}

func (c Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("%w: dir is empty", ErrInvalid)
	}
	if c.File == "" {
		return fmt.Errorf("%w: file is empty", ErrInvalid)
	}
	switch c.Mode {
	case ModeGodown, ModeInventory, ModeBoth:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalid, c.Mode)
	}
	if c.ChunkSize != 0 && c.ChunkSize < common.MaxPackageSize {
		return fmt.Errorf("%w: chunk_size %d is below %d",
			ErrInvalid, c.ChunkSize, common.MaxPackageSize)
	}
	return nil
}

// ApplyDebug sets the process-wide debug level.
func (c Config) ApplyDebug() {
	util.Debug = c.Debug
}

// Parse reads a configuration over the defaults. Fields missing from data
// keep their default values.
func Parse(data []byte) (Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	cfg := Default()
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the file at path. A missing file yields the defaults unless
// mustExist is set.
func Load(path string, mustExist bool) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if mustExist {
			return Config{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	util.DPrintf(1, "config: loaded %s\n", path)
	return cfg, nil
}

// Write replaces the file at path with cfg in one rename.
func Write(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return atomic.WriteFile(path, bytes.NewReader(b))
}

// BindFlags registers a flag per field, defaulting to the current values
// in cfg.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory holding the data file")
	fs.StringVar(&cfg.File, "file", cfg.File, "data file name")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "backends: godown, inventory or both")
	fs.Uint64Var(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "scan window in bytes (0 for default)")
	fs.BoolVar(&cfg.Compress, "compress", cfg.Compress, "snappy-compress goods")
	fs.Uint64Var(&cfg.Debug, "debug", cfg.Debug, "debug log level")
}

// Override copies into dst every field whose flag was set on fs. flags is
// the Config that BindFlags filled.
func Override(fs *pflag.FlagSet, dst *Config, flags Config) {
	if fs.Changed("dir") {
		dst.Dir = flags.Dir
	}
	if fs.Changed("file") {
		dst.File = flags.File
	}
	if fs.Changed("mode") {
		dst.Mode = flags.Mode
	}
	if fs.Changed("chunk-size") {
		dst.ChunkSize = flags.ChunkSize
	}
	if fs.Changed("compress") {
		dst.Compress = flags.Compress
	}
	if fs.Changed("debug") {
		dst.Debug = flags.Debug
	}
}
