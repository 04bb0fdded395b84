package gfxtest

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/hubastard/snek/engine/core"
)

type file struct {
	data []byte
	mod  time.Time
}

// FS is an in-memory core.Platform whose modification times are set by the
// test rather than the clock.
type FS struct {
	files map[string]*file
	reads map[string]int
}

var _ core.Platform = (*FS)(nil)

func NewFS() *FS {
	return &FS{files: make(map[string]*file), reads: make(map[string]int)}
}

// Write stores data at path with modification time mod.
func (f *FS) Write(path, data string, mod time.Time) {
	f.files[path] = &file{data: []byte(data), mod: mod}
}

// Touch changes the modification time of an existing file.
func (f *FS) Touch(path string, mod time.Time) {
	if fl, ok := f.files[path]; ok {
		fl.mod = mod
	}
}

func (f *FS) Remove(path string) { delete(f.files, path) }

// Reads reports how many times path was read.
func (f *FS) Reads(path string) int { return f.reads[path] }

func (f *FS) ReadFile(path string) ([]byte, error) {
	fl, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("read %q: %w", path, fs.ErrNotExist)
	}
	f.reads[path]++
	out := make([]byte, len(fl.data))
	copy(out, fl.data)
	return out, nil
}

func (f *FS) ModTime(path string) (time.Time, error) {
	fl, ok := f.files[path]
	if !ok {
		return time.Time{}, fmt.Errorf("stat %q: %w", path, fs.ErrNotExist)
	}
	return fl.mod, nil
}
