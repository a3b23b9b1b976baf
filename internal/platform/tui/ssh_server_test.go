package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-factory/internal/storage"
)

// watchScores records the store NewSSHServer opens.
func watchScores(t *testing.T) **storage.Store {
	t.Helper()
	var opened *storage.Store
	orig := openScores
	openScores = func(path string) (*storage.Store, error) {
		s, err := orig(path)
		opened = s
		return s, err
	}
	t.Cleanup(func() { openScores = orig })
	return &opened
}

func TestNewSSHServerClosesStoreOnError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	opened := watchScores(t)

	_, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		DBPath:      filepath.Join(dir, "scores.db"),
		HostKeyPath: filepath.Join(blocker, "host_key"),
	})
	if err == nil {
		t.Fatal("expected an error for a host key under a regular file")
	}
	if *opened == nil {
		t.Fatal("the scores database was never opened")
	}
	if _, err := (*opened).HighScore("factory/1a"); err == nil {
		t.Error("store should be closed after NewSSHServer fails")
	}
}

func TestNewSSHServerKeepsStore(t *testing.T) {
	dir := t.TempDir()
	opened := watchScores(t)

	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		DBPath:      filepath.Join(dir, "scores.db"),
		HostKeyPath: filepath.Join(dir, "keys", "host_key"),
	})
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.store != *opened {
		t.Fatal("server should hold the opened store")
	}
	if _, err := srv.store.HighScore("factory/1a"); err != nil {
		t.Errorf("store should stay open: %v", err)
	}
	srv.store.Close()
}
