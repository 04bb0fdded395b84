package core

// Device is the graphics backend. It is the only layer that talks to the GPU
// API; everything above it works with the value handles declared here. The
// zero value of every handle is invalid.
type Device interface {
	CreateTexture(desc TextureDesc) (Texture, error)
	DeleteTexture(t Texture)
	BindTexture(t Texture, unit int)

	// CreateProgram compiles and links a program. On failure it returns the
	// zero Program together with the compiler log as error.
	CreateProgram(vertexSrc, fragmentSrc string) (Program, error)
	DeleteProgram(p Program)
	BindProgram(p Program)

	// Uniform setters report whether the uniform exists in the program.
	SetUniformInt(p Program, name string, v int32) bool
	SetUniformFloat(p Program, name string, v float32) bool
	SetUniformVec2(p Program, name string, v [2]float32) bool
	SetUniformVec4(p Program, name string, v [4]float32) bool
	SetUniformMat4(p Program, name string, m [16]float32) bool
	SetUniformIntArray(p Program, name string, v []int32) bool

	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32)
	DeleteMesh(m Mesh)
	DrawIndexed(m Mesh, indexCount int)

	// CreateFramebuffer allocates an RGBA8 color attachment and a packed
	// depth24/stencil8 attachment of the given size.
	CreateFramebuffer(width, height int) (Framebuffer, error)
	DeleteFramebuffer(fb Framebuffer)
	// BindFramebuffer directs draws and clears to fb; the zero Framebuffer is
	// the default screen surface.
	BindFramebuffer(fb Framebuffer)

	SetViewport(x, y, w, h int)
	SetScissor(x, y, w, h int)
	DisableScissor()
	Clear(r, g, b, a float32)

	Info() DeviceInfo
	Shutdown()
}

type DeviceInfo struct {
	Vendor   string
	Renderer string
	Version  string
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
	TextureRGB8
	TextureDepth24Stencil8
)

type TextureFilter int

const (
	FilterNearest TextureFilter = iota
	FilterLinear
)

type TextureWrap int

const (
	WrapClamp TextureWrap = iota
	WrapRepeat
)

// Texture is a backend texture handle plus its pixel size.
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

func (t Texture) Valid() bool { return t.ID != 0 }

type TextureDesc struct {
	Width, Height        int
	Format               TextureFormat
	Pixels               []byte // nil allocates uninitialised storage
	MinFilter, MagFilter TextureFilter
	WrapU, WrapV         TextureWrap
}

// Program is a linked shader program handle.
type Program uint32

func (p Program) Valid() bool { return p != 0 }

type AttribType int

const (
	AttribFloat32 AttribType = iota
	AttribInt32
)

type VertexAttrib struct {
	Location int
	Size     int // component count
	Type     AttribType
	Offset   int // bytes
}

type VertexLayout struct {
	Stride     int // bytes
	Attributes []VertexAttrib
}

// Mesh is a vertex buffer + index buffer pair with a fixed layout.
type Mesh struct {
	ID          uint32
	VertexBytes int
	IndexCount  int
}

func (m Mesh) Valid() bool { return m.ID != 0 }

type MeshDesc struct {
	VertexBytes int // capacity of the dynamic vertex buffer
	Indices     []uint32
	Layout      VertexLayout
}

// Framebuffer is an offscreen color+depth target.
type Framebuffer struct {
	ID     uint32
	Width  int
	Height int
	Color  Texture
	Depth  Texture
}

func (fb Framebuffer) Valid() bool { return fb.ID != 0 }
