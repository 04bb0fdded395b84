package platform

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOSReadFileAndModTime(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "shaders"), 0o755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, "shaders", "basic.glsl")
	if err := os.WriteFile(p, []byte("@vertex\n@fragment\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(p, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	o := OS{Root: dir}
	b, err := o.ReadFile("shaders/basic.glsl")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != "@vertex\n@fragment\n" {
		t.Fatalf("content = %q", b)
	}
	mt, err := o.ModTime("shaders/basic.glsl")
	if err != nil {
		t.Fatalf("ModTime: %v", err)
	}
	if !mt.Equal(stamp) {
		t.Fatalf("mtime = %v, want %v", mt, stamp)
	}
}

func TestOSMissingFile(t *testing.T) {
	o := OS{Root: t.TempDir()}
	if _, err := o.ReadFile("nope.txt"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
	if _, err := o.ModTime("nope.txt"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}
