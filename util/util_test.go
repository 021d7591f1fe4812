package util

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveJsonCreatesDirectories(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a", "b", "data.json")
	require.NoError(t, SaveJson(file, map[string]int{"wins": 3}))

	bs, err := os.ReadFile(file)
	require.NoError(t, err)
	var out map[string]int
	require.NoError(t, json.Unmarshal(bs, &out))
	assert.Equal(t, 3, out["wins"])
}

func TestSaveJsonRejectsUnencodable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.json")
	assert.Error(t, SaveJson(file, make(chan int)))
	assert.NoFileExists(t, file)
}

func TestEnsureDirIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
}

func TestParallelOutput(t *testing.T) {
	out := NewParallelOutput()
	out.Set("a")
	assert.Equal(t, "a", out.Get())
	assert.True(t, out.TrySet("b"))
	assert.Equal(t, "b", out.Get())
}

func TestTerminalPrinterPrintsFinalState(t *testing.T) {
	buf := new(bytes.Buffer)
	printer := NewTerminalPrinter(time.Hour, buf)
	first, second := printer.NewOutput(), printer.NewOutput()
	printer.Start(context.Background())

	first.Set("Experiment: one done")
	second.Set("Experiment: two done")
	printer.Stop()
	printer.Stop()

	assert.Contains(t, buf.String(), "Experiment: one done")
	assert.Contains(t, buf.String(), "Experiment: two done")
}
