package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_Format(t *testing.T) {
	var buf bytes.Buffer
	cleanup := InitWriter(&buf, LevelDebug)
	defer cleanup()

	Info(CatMenu, "compiled", "items", 3, "menu", "abc")
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2} \[INFO\] \[menu\] compiled items=3 menu=abc\n$`, buf.String())
}

func TestLog_OrphanField(t *testing.T) {
	var buf bytes.Buffer
	cleanup := InitWriter(&buf, LevelDebug)
	defer cleanup()

	Debug(CatAccel, "parse", "accel")
	require.Contains(t, buf.String(), "accel=<missing>")
}

func TestLog_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	cleanup := InitWriter(&buf, LevelWarn)
	defer cleanup()

	Debug(CatMenu, "hidden")
	Info(CatMenu, "hidden")
	Warn(CatMenu, "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "[WARN] [menu] shown")

	SetMinLevel(LevelError)
	Warn(CatMenu, "now hidden")
	require.NotContains(t, buf.String(), "now hidden")
}

func TestLog_Disabled(t *testing.T) {
	var buf bytes.Buffer
	cleanup := InitWriter(&buf, LevelDebug)
	defer cleanup()

	SetEnabled(false)
	Error(CatDispatch, "nope")
	require.Empty(t, buf.String())
}

func TestLog_ErrorErr(t *testing.T) {
	var buf bytes.Buffer
	cleanup := InitWriter(&buf, LevelDebug)
	defer cleanup()

	ErrorErr(CatConfig, "load failed", errors.New("boom"), "path", "x.yaml")
	require.Contains(t, buf.String(), "[ERROR] [config] load failed path=x.yaml error=boom")

	ErrorErr(CatConfig, "nil error", nil)
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	require.NotPanics(t, func() {
		Info(CatUI, "nobody listening")
	})
}

func TestInit_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path, Options{MaxSizeMB: 1})
	require.NoError(t, err)

	Warn(CatWatcher, "template changed", "path", "menu.yaml")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[WARN] [watcher] template changed path=menu.yaml")
}

func TestInit_RequiresPath(t *testing.T) {
	_, err := Init("", Options{})
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelInfo, ParseLevel("INFO"))
	require.Equal(t, LevelWarn, ParseLevel("warning"))
	require.Equal(t, LevelError, ParseLevel("error"))
	require.Equal(t, LevelDebug, ParseLevel("anything"))
}
