package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/rlaau/pmsort/internal/bench"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, bench.Algorithms(), cfg.Bench.Algorithms)
	// 기본 컷오프는 msort 기본값을 따른다
	require.Empty(t, cfg.SorterOptions())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortbench.toml")
	data := `
[sort]
cutoff = 3
max_goroutines = 8

[bench]
sizes = [10, 20]
runs = 2
seed = 7
algorithms = ["parallel_mergesort"]

[store]
backend = "pebble"
path = "/tmp/pebble"

[log]
level = "debug"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Sort.Cutoff)
	require.Equal(t, 8, cfg.Sort.MaxGoroutines)
	require.Equal(t, []int{10, 20}, cfg.Bench.Sizes)
	require.Equal(t, 2, cfg.Bench.Runs)
	require.Equal(t, int64(7), cfg.Bench.Seed)
	require.Equal(t, []string{"parallel_mergesort"}, cfg.Bench.Algorithms)
	require.Equal(t, "pebble", cfg.Store.Backend)
	require.Equal(t, "json", cfg.Log.Format)
	require.Len(t, cfg.SorterOptions(), 2)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	require.NoError(t, os.WriteFile(path, []byte("[bench]\nruns = 5\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Bench.Runs)
	require.Equal(t, Default().Bench.Sizes, cfg.Bench.Sizes)
	require.Equal(t, "bbolt", cfg.Store.Backend)
}

func TestLoadRejectsUnknownAlgorithm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algo.toml")
	require.NoError(t, os.WriteFile(path, []byte("[bench]\nalgorithms = [\"quicksort\"]\n"), 0600))
	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Contains(t, err.Error(), "quicksort")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[store]\nbackend = \"mysql\"\n"), 0600))
	_, err = Load(bad)
	require.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty sizes", func(c *Config) { c.Bench.Sizes = nil }},
		{"negative size", func(c *Config) { c.Bench.Sizes = []int{-1} }},
		{"zero runs", func(c *Config) { c.Bench.Runs = 0 }},
		{"negative goroutines", func(c *Config) { c.Sort.MaxGoroutines = -1 }},
		{"empty path", func(c *Config) { c.Store.Path = "" }},
		{"empty algorithms", func(c *Config) { c.Bench.Algorithms = nil }},
		{"unknown algorithm", func(c *Config) { c.Bench.Algorithms = []string{"parallel_mergesort", "bogosort"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
