package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-plotgraph/pkg/analysis"
	"github.com/dd0wney/cluso-plotgraph/pkg/config"
	"github.com/dd0wney/cluso-plotgraph/pkg/logging"
)

func TestRenderReport(t *testing.T) {
	a := analysis.New(config.Default(), logging.NewNopLogger(), nil)
	r, err := a.AnalyzeFile(context.Background(), filepath.Join("..", "..", "pkg", "analysis", "testdata", "drink.yaml"))
	require.NoError(t, err)

	out := renderReport(r)
	assert.Contains(t, out, "drink")
	assert.Contains(t, out, "0.3333")
	assert.Contains(t, out, "Productive conflicts: 1")
	assert.Contains(t, out, "No functional units found")
	assert.Empty(t, unitRows(r))
}

func TestLoadConfig(t *testing.T) {
	var opts options
	cfg, err := loadConfig(newFlagSet("plotgraph", &opts), opts)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTolerance, cfg.EffectiveTolerance())
	assert.False(t, cfg.RequireAnchored)

	path := filepath.Join(t.TempDir(), "plotgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tolerance: 2\nworkers: 3\n"), 0o600))

	cfg, err = loadConfig(newFlagSet("plotgraph", &opts), options{configFile: path})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.EffectiveTolerance())
	assert.Equal(t, 3, cfg.Workers)

	_, err = loadConfig(newFlagSet("plotgraph", &opts), options{configFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plotgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tolerance: 2\nkeep_unmatched_motivation: false\n"), 0o600))

	var opts options
	fs := newFlagSet("plotgraph", &opts)
	require.NoError(t, fs.Parse([]string{
		"-config", path, "-tolerance", "0", "-keep-unmatched-motivation", "-require-anchored", "trace.yaml",
	}))

	cfg, err := loadConfig(fs, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.EffectiveTolerance())
	assert.True(t, cfg.KeepUnmatchedMotivation)
	assert.True(t, cfg.RequireAnchored)
	assert.Equal(t, []string{"trace.yaml"}, fs.Args())
}

func TestKeepUnmatchedMotivationUsage(t *testing.T) {
	var opts options
	f := newFlagSet("plotgraph", &opts).Lookup("keep-unmatched-motivation")
	require.NotNil(t, f)
	assert.Contains(t, f.Usage, "motivation annotation")
	assert.Contains(t, f.Usage, "none of its motivating expressions matched")
}
