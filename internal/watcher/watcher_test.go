package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/menubar/internal/watcher"
)

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ch, err := w.Start()
	require.NoError(t, err)
	return ch
}

func expectChange(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}
}

func expectQuiet(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
		t.Fatal("unexpected change notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_CoalescesSaveBurst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("menu: []\n"), 0o600))
	ch := startWatcher(t, path)

	for i := range 5 {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("menu: [] # %d\n", i)), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	expectChange(t, ch)
	expectQuiet(t, ch)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("menu: []\n"), 0o600))
	require.NoError(t, os.WriteFile(other, []byte("a"), 0o600))
	ch := startWatcher(t, path)

	require.NoError(t, os.WriteFile(other, []byte("b"), 0o600))
	expectQuiet(t, ch)
}

func TestWatcher_SeesReplacedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("menu: []\n"), 0o600))
	ch := startWatcher(t, path)

	tmp := filepath.Join(dir, ".menu.yaml.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("menu: [{label: x}]\n"), 0o600))
	require.NoError(t, os.Rename(tmp, path))

	expectChange(t, ch)
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing", "menu.yaml")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.ErrorContains(t, err, "watching directory")
}
