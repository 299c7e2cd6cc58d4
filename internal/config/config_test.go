package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4log/yard-ledger/internal/config"
)

// chdir switches the working directory for the duration of the test,
// mirroring t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := config.Load(filepath.Join(dir, "no-such-config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./ledger", cfg.LedgerDir)
	assert.Equal(t, "./waybills", cfg.WaybillDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.DirExists(t, filepath.Join(dir, "ledger"))
	assert.DirExists(t, filepath.Join(dir, "waybills"))
}

func TestLoadAppliesFileValuesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "ledger_dir: " + filepath.Join(dir, "movements") + "\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	chdir(t, dir)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "movements"), cfg.LedgerDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "./waybills", cfg.WaybillDir, "unset options fall back to defaults")
	assert.DirExists(t, cfg.LedgerDir)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger_dir: [unclosed"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: Mars/Olympus_Mons"), 0o644))
	chdir(t, dir)

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	cfg := &config.Config{}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "America/Sao_Paulo"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}
