package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-bookforge")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-bookforge" {
			t.Errorf("expected path /tmp/test-bookforge, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, DefaultDirName)
		if dir.Path() != expected {
			t.Errorf("expected path %s, got %s", expected, dir.Path())
		}
	})
}

func TestDir_Paths(t *testing.T) {
	dir, _ := New("/tmp/test-bookforge")

	t.Run("ExportsDir", func(t *testing.T) {
		expected := "/tmp/test-bookforge/exports"
		if dir.ExportsDir() != expected {
			t.Errorf("expected %s, got %s", expected, dir.ExportsDir())
		}
	})

	t.Run("ExportPath", func(t *testing.T) {
		expected := "/tmp/test-bookforge/exports/topic.docx"
		if dir.ExportPath("topic.docx") != expected {
			t.Errorf("expected %s, got %s", expected, dir.ExportPath("topic.docx"))
		}
	})

	t.Run("ConfigPath", func(t *testing.T) {
		expected := "/tmp/test-bookforge/config.yaml"
		if dir.ConfigPath() != expected {
			t.Errorf("expected %s, got %s", expected, dir.ConfigPath())
		}
	})
}

func TestEnsureExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "bf-home")
	dir, _ := New(root)

	if dir.Exists() {
		t.Fatal("home should not exist yet")
	}
	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dir.Exists() {
		t.Fatal("home should exist after EnsureExists")
	}
	if _, err := os.Stat(dir.ExportsDir()); err != nil {
		t.Fatalf("exports dir missing: %v", err)
	}
}
