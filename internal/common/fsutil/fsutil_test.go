package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	got, err := ExpandHome("~/checkpoints/music")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "checkpoints", "music") {
		t.Fatalf("got %q", got)
	}

	got, err = ExpandHome("~")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != home {
		t.Fatalf("got %q want %q", got, home)
	}

	for _, p := range []string{"", "/abs/path", "relative/path"} {
		got, err := ExpandHome(p)
		if err != nil {
			t.Fatalf("expand %q: %v", p, err)
		}
		if got != p {
			t.Fatalf("expand %q changed to %q", p, got)
		}
	}
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "f")
	if PathExists(p) {
		t.Fatal("missing file reported as existing")
	}
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !PathExists(p) {
		t.Fatal("existing file reported as missing")
	}
	if !PathExists(dir) {
		t.Fatal("existing dir reported as missing")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	fi, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !fi.IsDir() {
		t.Fatal("not a directory")
	}
	// second call is a no-op
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("ensure twice: %v", err)
	}
}
