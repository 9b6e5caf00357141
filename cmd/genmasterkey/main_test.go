package main

import (
	"path/filepath"
	"testing"

	"github.com/harrylevesque/flavorfind/internal/files"
)

func TestWriteRefusesOverwrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv(files.MasterKeyEnv, "")
	if err := write(dir, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	first, err := files.ReadMasterKey(dir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if err := write(dir, false); err == nil {
		t.Fatal("second write without --force succeeded")
	}
	if err := write(dir, true); err != nil {
		t.Fatalf("forced write: %v", err)
	}
	second, _ := files.ReadMasterKey(dir)
	if string(first) == string(second) {
		t.Error("forced write kept the old key")
	}
}
