package renderer2d

import (
	"errors"

	"github.com/hubastard/snek/engine/assets"
)

// Contract violations. The renderer panics with an error wrapping one of these.
var (
	ErrStateStackOverflow   = errors.New("render state stack overflow")
	ErrStateStackUnderflow  = errors.New("render state stack underflow")
	ErrShaderRegistryFull   = errors.New("shader registry full")
	ErrTextureSlotOverflow  = errors.New("texture slot table overflow")
	ErrInvalidBatchCapacity = errors.New("invalid batch capacity")
)

// Returned errors.
var (
	ErrInvalidShaderSource = assets.ErrInvalidShaderSource
	ErrInvalidTargetSize   = errors.New("invalid render target size")
	ErrNilTarget           = errors.New("nil render target")
)
