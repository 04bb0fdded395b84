package core

import "time"

// Platform provides the file services the engine polls for hot reload.
type Platform interface {
	ReadFile(path string) ([]byte, error)
	ModTime(path string) (time.Time, error)
}
