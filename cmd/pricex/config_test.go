package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	main "github.com/fwojciec/pricex/cmd/pricex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCLI() *main.CLI {
	cli := &main.CLI{
		BaseURL:  "http://localhost:5000",
		Mode:     "poll",
		Interval: time.Second,
		Timeout:  5 * time.Minute,
	}
	cli.Extract.Out = "."
	cli.Export.Out = "."
	cli.Shell.Out = "."
	return cli
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("reads YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pricex.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
baseURL: https://prices.example
mode: sync
interval: 250ms
timeout: 30s
export:
  dir: /tmp/exports
  escapeQuotes: true
`), 0644))

		fc, err := main.LoadConfigFile(path)

		require.NoError(t, err)
		assert.Equal(t, "https://prices.example", fc.BaseURL)
		assert.Equal(t, "sync", fc.Mode)
		assert.Equal(t, 250*time.Millisecond, fc.Interval)
		assert.Equal(t, 30*time.Second, fc.Timeout)
		assert.Equal(t, "/tmp/exports", fc.Export.Dir)
		assert.True(t, fc.Export.EscapeQuotes)
	})

	t.Run("reads JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pricex.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"mode":"poll","db":"/tmp/runs.db","verbose":true}`), 0644))

		fc, err := main.LoadConfigFile(path)

		require.NoError(t, err)
		assert.Equal(t, "poll", fc.Mode)
		assert.Equal(t, "/tmp/runs.db", fc.DB)
		assert.True(t, fc.Verbose)
	})

	t.Run("reads JSON duration strings", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pricex.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"mode":"poll","interval":"2s","timeout":"30s"}`), 0644))

		fc, err := main.LoadConfigFile(path)

		require.NoError(t, err)
		assert.Equal(t, "poll", fc.Mode)
		assert.Equal(t, 2*time.Second, fc.Interval)
		assert.Equal(t, 30*time.Second, fc.Timeout)
	})

	t.Run("reads JSON durations in nanoseconds", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pricex.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"interval":250000000}`), 0644))

		fc, err := main.LoadConfigFile(path)

		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, fc.Interval)
	})

	t.Run("rejects malformed JSON durations", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pricex.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"interval":"soon"}`), 0644))

		_, err := main.LoadConfigFile(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse json")
	})

	t.Run("reports parse errors", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pricex.yaml")
		require.NoError(t, os.WriteFile(path, []byte("mode: [unterminated"), 0644))

		_, err := main.LoadConfigFile(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse yaml")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestApplyFileConfig(t *testing.T) {
	t.Parallel()

	t.Run("fills values still at defaults", func(t *testing.T) {
		t.Parallel()

		cli := defaultCLI()
		fc := main.FileConfig{
			BaseURL:  "https://prices.example",
			Mode:     "sync",
			DB:       "/tmp/runs.db",
			Interval: 250 * time.Millisecond,
			Timeout:  time.Minute,
			Verbose:  true,
		}
		fc.Export.Dir = "exports"
		fc.Export.EscapeQuotes = true

		main.ApplyFileConfig(cli, fc)

		assert.Equal(t, "https://prices.example", cli.BaseURL)
		assert.Equal(t, "sync", cli.Mode)
		assert.Equal(t, "/tmp/runs.db", cli.DB)
		assert.Equal(t, 250*time.Millisecond, cli.Interval)
		assert.Equal(t, time.Minute, cli.Timeout)
		assert.True(t, cli.Verbose)
		assert.Equal(t, "exports", cli.Extract.Out)
		assert.Equal(t, "exports", cli.Export.Out)
		assert.Equal(t, "exports", cli.Shell.Out)
		assert.True(t, cli.Extract.EscapeQuotes)
		assert.True(t, cli.Shell.EscapeQuotes)
	})

	t.Run("explicit flags win", func(t *testing.T) {
		t.Parallel()

		cli := defaultCLI()
		cli.BaseURL = "http://override:9000"
		cli.Extract.Out = "mine"

		fc := main.FileConfig{BaseURL: "https://prices.example"}
		fc.Export.Dir = "exports"

		main.ApplyFileConfig(cli, fc)

		assert.Equal(t, "http://override:9000", cli.BaseURL)
		assert.Equal(t, "mine", cli.Extract.Out)
		assert.Equal(t, "exports", cli.Export.Out)
	})

	t.Run("nil CLI is a no-op", func(t *testing.T) {
		t.Parallel()
		assert.NotPanics(t, func() { main.ApplyFileConfig(nil, main.FileConfig{Mode: "sync"}) })
	})
}
