package assets

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/hubastard/snek/engine/gfx/gfxtest"
)

func TestParseShader(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		vs, fs  string
		wantErr bool
	}{
		{
			name: "both sections",
			src:  "@vertex\nvoid main(){}\n@fragment\nvoid main(){ f(); }\n",
			vs:   "\nvoid main(){}\n",
			fs:   "\nvoid main(){ f(); }\n",
		},
		{
			name: "preamble ignored",
			src:  "// header\n@vertex\nA\n@fragment\nB",
			vs:   "\nA\n",
			fs:   "\nB",
		},
		{name: "missing vertex", src: "@fragment\nB", wantErr: true},
		{name: "missing fragment", src: "@vertex\nA", wantErr: true},
		{name: "fragment before vertex", src: "@fragment\nB\n@vertex\nA", wantErr: true},
		{name: "markers are case sensitive", src: "@Vertex\nA\n@Fragment\nB", wantErr: true},
		{name: "empty vertex", src: "@vertex\n  \n@fragment\nB", wantErr: true},
		{name: "empty fragment", src: "@vertex\nA\n@fragment\n\t\n", wantErr: true},
		{name: "empty file", src: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseShader([]byte(tt.src))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidShaderSource) {
					t.Fatalf("err = %v, want ErrInvalidShaderSource", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Vertex != tt.vs || got.Fragment != tt.fs {
				t.Fatalf("got %q / %q, want %q / %q", got.Vertex, got.Fragment, tt.vs, tt.fs)
			}
		})
	}
}

func TestLoadShader(t *testing.T) {
	files := gfxtest.NewFS()
	files.Write("shaders/basic.glsl", "@vertex\nV\n@fragment\nF\n", time.Unix(1, 0))

	src, err := LoadShader(files, "shaders/basic.glsl")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(src.Vertex) != "V" || strings.TrimSpace(src.Fragment) != "F" {
		t.Fatalf("src = %+v", src)
	}

	if _, err := LoadShader(files, "shaders/missing.glsl"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestDir(t *testing.T) {
	d := Dir("assets")
	if got := d.Shader("basic.glsl"); got != "assets/shaders/basic.glsl" {
		t.Fatalf("Shader = %q", got)
	}
	if got := d.Font("font.ttf"); got != "assets/fonts/font.ttf" {
		t.Fatalf("Font = %q", got)
	}
	if got := Dir("").Texture("snake.png"); got != "textures/snake.png" {
		t.Fatalf("Texture = %q", got)
	}
}
