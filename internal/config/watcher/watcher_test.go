package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/linestack/internal/config"
)

func newTestWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor]\noutput_path = \"a.txt\"\n"), 0o644))

	w, err := New(config.Options{Path: path, EnvPrefix: "-"}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	return w, path
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	w, path := newTestWatcher(t)

	require.NoError(t, os.WriteFile(path, []byte("[editor]\noutput_path = \"b.txt\"\n"), 0o644))

	select {
	case cfg := <-w.Updates():
		assert.Equal(t, "b.txt", cfg.Editor.OutputPath)
	case err := <-w.Errors():
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_ReportsBadFile(t *testing.T) {
	w, path := newTestWatcher(t)

	require.NoError(t, os.WriteFile(path, []byte("[editor\n"), 0o644))

	select {
	case <-w.Updates():
		t.Fatal("expected reload to fail")
	case err := <-w.Errors():
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	w, path := newTestWatcher(t)

	other := filepath.Join(filepath.Dir(path), "other.toml")
	require.NoError(t, os.WriteFile(other, []byte("x = 1\n"), 0o644))

	select {
	case <-w.Updates():
		t.Fatal("unexpected reload")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_CloseIdempotent(t *testing.T) {
	w, _ := newTestWatcher(t)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "linestack", "conf")
	path := filepath.Join(dir, "config.toml")

	w, err := New(config.Options{Path: path, EnvPrefix: "-"}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	assert.Equal(t, root, w.Watched())

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.Eventually(t, func() bool { return w.Watched() == dir }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("[editor]\noutput_path = \"first.txt\"\n"), 0o644))

	select {
	case cfg := <-w.Updates():
		assert.Equal(t, "first.txt", cfg.Editor.OutputPath)
	case err := <-w.Errors():
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_PathUnderFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := New(config.Options{Path: filepath.Join(blocker, "config.toml")})
	assert.Error(t, err)
}

func TestNearestDir(t *testing.T) {
	root := t.TempDir()

	got, err := nearestDir(filepath.Join(root, "a", "b"))
	require.NoError(t, err)
	assert.Equal(t, root, got)

	got, err = nearestDir(root)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestPublishKeepsNewest(t *testing.T) {
	ch := make(chan int, 1)
	publish(ch, 1)
	publish(ch, 2)

	assert.Equal(t, 2, <-ch)
}
