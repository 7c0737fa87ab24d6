package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mit-pdos/go-warehouse/common"
	"github.com/mit-pdos/go-warehouse/util"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`{
		// comments and trailing commas are fine
		"dir": "/var/lib/godown",
		"mode": "both",
		"chunk_size": 131072,
	}`))
	require.NoError(t, err)
	want := Default()
	want.Dir = "/var/lib/godown"
	want.Mode = ModeBoth
	want.ChunkSize = 131072
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse (-want +got):\n%s", diff)
	}
	assert.Equal(t, "/var/lib/godown/godown.data", cfg.Path())
	assert.Equal(t, uint64(131072), cfg.Window())
	assert.Equal(t, common.ChunkSize, Default().Window())
}

func TestParseInvalid(t *testing.T) {
	for name, data := range map[string]string{
		"syntax":       `{"dir": `,
		"unknown key":  `{"folder": "x"}`,
		"empty dir":    `{"dir": ""}`,
		"empty file":   `{"file": ""}`,
		"bad mode":     `{"mode": "tape"}`,
		"small window": `{"chunk_size": 4096}`,
	} {
		_, err := Parse([]byte(data))
		assert.ErrorIs(t, err, ErrInvalid, name)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg, "missing optional file")

	_, err = Load(path, true)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.WriteFile(path, []byte(`{"mode": "tape"}`), 0644))
	_, err = Load(path, false)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestWriteLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg := Default()
	cfg.File = "store.db"
	cfg.Compress = true
	cfg.Debug = 3
	require.NoError(t, Write(path, cfg))

	got, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	cfg.Mode = "tape"
	assert.ErrorIs(t, Write(path, cfg), ErrInvalid)
	got, err = Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, ModeGodown, got.Mode, "invalid config is not written")
}

func TestFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := Default()
	BindFlags(fs, &flags)
	require.NoError(t, fs.Parse([]string{"--mode", "inventory", "--chunk-size", "65536", "--compress"}))

	dst := Default()
	dst.Dir = "from-file"
	Override(fs, &dst, flags)
	assert.Equal(t, "from-file", dst.Dir, "unset flag keeps the file value")
	assert.Equal(t, ModeInventory, dst.Mode)
	assert.Equal(t, uint64(65536), dst.ChunkSize)
	assert.True(t, dst.Compress)
}

func TestApplyDebug(t *testing.T) {
	old := util.Debug
	defer func() { util.Debug = old }()
	cfg := Default()
	cfg.Debug = 5
	cfg.ApplyDebug()
	assert.Equal(t, uint64(5), util.Debug)
}
