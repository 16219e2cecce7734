package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-plotgraph/pkg/logging"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, DefaultTolerance, c.EffectiveTolerance())
	assert.Equal(t, runtime.GOMAXPROCS(0), c.Workers)
	assert.Equal(t, "INFO", c.LogLevel)
	assert.False(t, c.KeepUnmatchedMotivation)
	assert.Empty(t, c.MetricsFile)
	assert.NoError(t, c.Validate())
}

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(`
tolerance: 0
workers: 4
log_level: debug
keep_unmatched_motivation: true
require_anchored: true
`))
	require.NoError(t, err)

	assert.Equal(t, 0, c.EffectiveTolerance(), "explicit zero tolerance is kept")
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, logging.DebugLevel, c.Level())
	assert.True(t, c.KeepUnmatchedMotivation)
	assert.True(t, c.RequireAnchored)
}

func TestValidateMetricsFile(t *testing.T) {
	c := Default()
	c.MetricsFile = filepath.Join(t.TempDir(), "plotgraph.prom")
	assert.NoError(t, c.Validate())

	c.MetricsFile = filepath.Join(t.TempDir(), "missing", "plotgraph.prom")
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.MetricsFile")
}

func TestDecodeEmptyDocument(t *testing.T) {
	c, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultTolerance, c.EffectiveTolerance())
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown key", "tolerence: 1\n", "field tolerence not found"},
		{"tolerance too large", "tolerance: 6\n", "Config.Tolerance: value 6 is outside range [0, 5]"},
		{"negative tolerance", "tolerance: -1\n", "Config.Tolerance"},
		{"too many workers", "workers: 1000\n", "Config.Workers"},
		{"bad level", "log_level: loud\n", "unknown log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsAllErrors(t *testing.T) {
	c := Default()
	c.SetTolerance(9)
	c.Workers = 0

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Tolerance")
	assert.Contains(t, err.Error(), "Config.Workers")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plotgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, DefaultTolerance, c.EffectiveTolerance())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
