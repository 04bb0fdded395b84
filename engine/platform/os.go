package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// OS serves files from the local filesystem, relative to Root.
type OS struct {
	Root string
}

func (o OS) path(p string) string {
	if o.Root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(o.Root, p)
}

func (o OS) ReadFile(p string) ([]byte, error) {
	b, err := os.ReadFile(o.path(p))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", p, err)
	}
	return b, nil
}

func (o OS) ModTime(p string) (time.Time, error) {
	fi, err := os.Stat(o.path(p))
	if err != nil {
		return time.Time{}, fmt.Errorf("stat %q: %w", p, err)
	}
	return fi.ModTime(), nil
}
