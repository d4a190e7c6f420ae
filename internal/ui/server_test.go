package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/datalens-labs/datalens/internal/testutil"
)

func TestIsDataFile(t *testing.T) {
	cases := map[string]bool{
		"sales.csv":       true,
		"Sales.CSV":       true,
		"report.xlsx":     true,
		"notes.txt":       false,
		"archive.csv.bak": false,
		"":                false,
	}
	for name, want := range cases {
		if got := isDataFile(name); got != want {
			t.Errorf("isDataFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestWatchDataDir_BroadcastsOnDataFileChange(t *testing.T) {
	dataDir := t.TempDir()

	s := NewServer(Config{
		Port:          0,
		DataDir:       dataDir,
		Watch:         true,
		SessionSecret: "test",
		PreviewRows:   5,
		Logger:        testutil.NewTestLogger(t),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := s.Notifier().Subscribe()
	defer s.Notifier().Unsubscribe(updates)

	done := make(chan error, 1)
	go func() { done <- s.watchDataDir(ctx) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dataDir, "new.csv"), []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}

	select {
	case <-updates:
	case <-time.After(2 * time.Second):
		t.Fatal("no broadcast after a data file appeared")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watchDataDir returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("watchDataDir did not stop on context cancel")
	}
}

func TestWatchDataDir_IgnoresNonDataFiles(t *testing.T) {
	dataDir := t.TempDir()

	s := NewServer(Config{
		DataDir:       dataDir,
		Watch:         true,
		SessionSecret: "test",
		Logger:        testutil.NewTestLogger(t),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := s.Notifier().Subscribe()
	defer s.Notifier().Unsubscribe(updates)

	go func() { _ = s.watchDataDir(ctx) }()
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dataDir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	select {
	case <-updates:
		t.Error("broadcast fired for a non-data file")
	case <-time.After(300 * time.Millisecond):
	}
}
