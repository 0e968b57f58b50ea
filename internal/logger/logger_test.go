package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ConsoleInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := New(Options{Console: true, ConsoleOut: &buf, NoColor: true})
	require.NoError(t, err)
	defer closeFn()

	log.Debug().Msg("hidden detail")
	log.Info().Str("action", "sleep").Msg("next event")

	out := buf.String()
	assert.NotContains(t, out, "hidden detail")
	assert.Contains(t, out, "next event")
	assert.Contains(t, out, "action=sleep")
	assert.Contains(t, out, "INF")
}

func TestNew_ConsoleVerbose(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := New(Options{Console: true, ConsoleOut: &buf, NoColor: true, Verbose: true})
	require.NoError(t, err)
	defer closeFn()

	log.Debug().Msg("generated schedule window")

	assert.Contains(t, buf.String(), "generated schedule window")
	assert.Contains(t, buf.String(), "DBG")
}

func TestNew_FileAlwaysDebug(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "lumen.latest.log")

	log, closeFn, err := New(Options{Console: true, ConsoleOut: &console, NoColor: true, File: path})
	require.NoError(t, err)

	log.Debug().Str("component", "waiter").Msg("target already passed")
	log.Warn().Msg("woke before target")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "debug", first["level"])
	assert.Equal(t, "waiter", first["component"])
	assert.Equal(t, "target already passed", first["message"])
	assert.Contains(t, first, "time")

	assert.NotContains(t, console.String(), "target already passed")
	assert.Contains(t, console.String(), "woke before target")
}

func TestNew_FileTruncatedEachRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.latest.log")
	require.NoError(t, os.WriteFile(path, []byte("old run\n"), 0600))

	log, closeFn, err := New(Options{File: path})
	require.NoError(t, err)
	log.Info().Msg("new run")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old run")
	assert.Contains(t, string(data), "new run")
}

func TestNew_NoOutputs(t *testing.T) {
	log, closeFn, err := New(Options{})
	require.NoError(t, err)

	log.Error().Msg("discarded")
	assert.NoError(t, closeFn())
}

func TestNew_FileError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	_, closeFn, err := New(Options{File: filepath.Join(blocker, "lumen.log")})

	assert.Error(t, err)
	assert.NoError(t, closeFn())
}
