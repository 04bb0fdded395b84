package assets

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/hubastard/snek/engine/core"
)

const (
	vertexMarker   = "@vertex"
	fragmentMarker = "@fragment"
)

// ErrInvalidShaderSource reports a shader file without both section markers
// or with an empty section.
var ErrInvalidShaderSource = errors.New("invalid shader source")

// ShaderSource is one shader file split into its two stages.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// ParseShader splits src at the literal @vertex and @fragment markers. The
// vertex stage runs from the first @vertex to the following @fragment, the
// fragment stage from there to the end of the file.
func ParseShader(src []byte) (ShaderSource, error) {
	vi := bytes.Index(src, []byte(vertexMarker))
	if vi < 0 {
		return ShaderSource{}, fmt.Errorf("%w: missing %s", ErrInvalidShaderSource, vertexMarker)
	}
	rest := src[vi+len(vertexMarker):]
	fi := bytes.Index(rest, []byte(fragmentMarker))
	if fi < 0 {
		return ShaderSource{}, fmt.Errorf("%w: missing %s after %s", ErrInvalidShaderSource, fragmentMarker, vertexMarker)
	}
	vs := rest[:fi]
	fs := rest[fi+len(fragmentMarker):]
	if len(bytes.TrimSpace(vs)) == 0 {
		return ShaderSource{}, fmt.Errorf("%w: empty vertex section", ErrInvalidShaderSource)
	}
	if len(bytes.TrimSpace(fs)) == 0 {
		return ShaderSource{}, fmt.Errorf("%w: empty fragment section", ErrInvalidShaderSource)
	}
	return ShaderSource{Vertex: string(vs), Fragment: string(fs)}, nil
}

// LoadShader reads and splits a shader file.
func LoadShader(p core.Platform, path string) (ShaderSource, error) {
	b, err := p.ReadFile(path)
	if err != nil {
		return ShaderSource{}, fmt.Errorf("load shader %q: %w", path, err)
	}
	src, err := ParseShader(b)
	if err != nil {
		return ShaderSource{}, fmt.Errorf("load shader %q: %w", path, err)
	}
	return src, nil
}
