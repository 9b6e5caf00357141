package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLogsToDataDir(t *testing.T) {
	dir := t.TempDir()
	for _, k := range []string{"FLAVORFIND_APP_ID", "FLAVORFIND_BACKEND_URL", "FLAVORFIND_DATA_DIR", "FLAVORFIND_MASTER_KEY_HEX"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	c, err := setup(options{
		Config:  filepath.Join(dir, "missing.json"),
		Backend: "http://127.0.0.1:1",
		DataDir: dir,
	}, false)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer c.log.Close()

	c.log.Info("hello")
	want := defaultLogFile(dir)
	if want != filepath.Join(dir, "flavorfind.log") {
		t.Fatalf("defaultLogFile = %s", want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
