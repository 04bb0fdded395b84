//go:build !profile

package profiler

import (
	"errors"
	"testing"
)

func TestDisabledIsNoop(t *testing.T) {
	Init(8)
	Start("frame")()
	if _, err := Capture(); !errors.Is(err, ErrNoEvents) {
		t.Fatalf("err = %v", err)
	}
	if Enabled {
		t.Fatal("built without the profile tag")
	}
}
