package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jaminalder/codex-binoxxo/internal/storage"
)

func TestOpenStoreUsesConfigDir(t *testing.T) {
	dir := t.TempDir()
	kv := openStore(dir, zerolog.Nop())
	defer kv.Close()
	if _, ok := kv.(*storage.SQLite); !ok {
		t.Fatalf("expected sqlite store, got %T", kv)
	}
	if _, err := os.Stat(filepath.Join(dir, "binoxxo", "settings.db")); err != nil {
		t.Fatalf("settings db not created: %v", err)
	}
}

func TestOpenStoreFallsBackToMemory(t *testing.T) {
	kv := openStore("", zerolog.Nop())
	defer kv.Close()
	if _, ok := kv.(*storage.SQLite); ok {
		t.Fatalf("expected memory store without a config dir")
	}

	// a file where the directory should be
	blocked := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocked, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	kv = openStore(blocked, zerolog.Nop())
	defer kv.Close()
	if _, ok := kv.(*storage.SQLite); ok {
		t.Fatalf("expected memory store when the db cannot be opened")
	}
}
