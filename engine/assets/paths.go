package assets

import "path"

// Dir resolves asset paths below a root directory. Paths use forward slashes
// so they work unchanged with any core.Platform.
type Dir string

func (d Dir) join(kind, name string) string { return path.Join(string(d), kind, name) }

func (d Dir) Shader(name string) string  { return d.join("shaders", name) }
func (d Dir) Texture(name string) string { return d.join("textures", name) }
func (d Dir) Font(name string) string    { return d.join("fonts", name) }
func (d Dir) File(name string) string    { return path.Join(string(d), name) }
