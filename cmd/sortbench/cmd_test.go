package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rlaau/pmsort/internal/datastore"
)

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, backend string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "sortbench.toml")
	data := `
[sort]
cutoff = 2

[bench]
sizes = [50, 500]
runs = 1
algorithms = ["sequential_mergesort", "parallel_mergesort"]

[store]
backend = "` + backend + `"
path = "` + filepath.Join(dir, "store") + `"

[log]
level = "error"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))
	return path
}

func TestGenRunReport(t *testing.T) {
	for _, backend := range []string{"bbolt", "badger", "pebble"} {
		t.Run(backend, func(t *testing.T) {
			cfg := writeConfig(t, backend)

			out, err := execute(t, "gen", "-c", cfg)
			require.NoError(t, err)
			require.Contains(t, out, "random_500: 500개")

			out, err = execute(t, "run", "-c", cfg, "--cutoff", "3")
			require.NoError(t, err)
			require.Contains(t, out, "컷오프: 3")
			require.Contains(t, out, "벤치마크 완료!")

			out, err = execute(t, "report", "-c", cfg, "-f", "json")
			require.NoError(t, err)
			var results []datastore.Result
			require.NoError(t, json.Unmarshal([]byte(out), &results))
			require.Len(t, results, 4)

			out, err = execute(t, "report", "-c", cfg)
			require.NoError(t, err)
			require.Contains(t, out, "병렬머지소트")
		})
	}
}

func TestReportUnknownFormat(t *testing.T) {
	cfg := writeConfig(t, "bbolt")
	_, err := execute(t, "report", "-c", cfg, "-f", "xml")
	require.Error(t, err)
}

func TestInvalidBackendFlag(t *testing.T) {
	cfg := writeConfig(t, "bbolt")
	_, err := execute(t, "gen", "-c", cfg, "--backend", "mysql")
	require.Error(t, err)
}
