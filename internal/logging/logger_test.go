package logger

import (
	"path/filepath"
	"testing"
)

func TestInitWritesToConfiguredDirectory(t *testing.T) {
	root := t.TempDir()

	log, err := Init(root, &Options{Directory: "applogs", MaxSize: 1, MaxBackups: 1, MaxAge: 1})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	log.Info("configured directory message")
	_ = log.Sync()

	matches, err := filepath.Glob(filepath.Join(root, "applogs", "*-info.log"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one info log file under the configured directory, got %v", matches)
	}
}

func TestInitDefaultsWithoutOptions(t *testing.T) {
	root := t.TempDir()

	log, err := Init(root, nil)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	log.Warn("default directory message")
	_ = log.Sync()

	matches, err := filepath.Glob(filepath.Join(root, "logs", "*-warn.log"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one warn log file under the default directory, got %v", matches)
	}
}
