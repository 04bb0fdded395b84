package particles

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/core"
)

type RangeKind uint8

const (
	RangeUnset RangeKind = iota
	RangeFixed
	RangeBetween
)

// Range is an unset value, a fixed value, or an interval sampled uniformly.
type Range[T any] struct {
	kind     RangeKind
	min, max T
}

func Fixed[T any](v T) Range[T]        { return Range[T]{kind: RangeFixed, min: v, max: v} }
func Between[T any](lo, hi T) Range[T] { return Range[T]{kind: RangeBetween, min: lo, max: hi} }

func (r Range[T]) Kind() RangeKind { return r.kind }
func (r Range[T]) IsSet() bool     { return r.kind != RangeUnset }

// Bounds returns the interval; both ends are the value for a fixed range.
func (r Range[T]) Bounds() (lo, hi T) { return r.min, r.max }

func sample[T any](r Range[T], rng *rand.Rand, def T, lerp func(a, b T, t float32) T) T {
	switch r.kind {
	case RangeFixed:
		return r.min
	case RangeBetween:
		return lerp(r.min, r.max, rng.Float32())
	}
	return def
}

func lerpF(a, b, t float32) float32 { return a + (b-a)*t }

func lerpV2(a, b mgl32.Vec2, t float32) mgl32.Vec2 { return a.Add(b.Sub(a).Mul(t)) }

// SpawnArea is where particles appear relative to the system position:
// QuadArea or CircleArea.
type SpawnArea interface {
	isSpawnArea()
	offset(rng *rand.Rand) mgl32.Vec2
}

// QuadArea spawns uniformly in a rectangle centred on the system.
type QuadArea struct {
	Sides mgl32.Vec2
}

// CircleArea spawns uniformly in a disc centred on the system.
type CircleArea struct {
	Radius float32
}

func (QuadArea) isSpawnArea()   {}
func (CircleArea) isSpawnArea() {}

func (a QuadArea) offset(rng *rand.Rand) mgl32.Vec2 {
	return mgl32.Vec2{
		(rng.Float32() - 0.5) * a.Sides[0],
		(rng.Float32() - 0.5) * a.Sides[1],
	}
}

func (a CircleArea) offset(rng *rand.Rand) mgl32.Vec2 {
	r := a.Radius * float32(math.Sqrt(rng.Float64()))
	th := rng.Float64() * 2 * math.Pi
	return mgl32.Vec2{r * float32(math.Cos(th)), r * float32(math.Sin(th))}
}

// Params describe how particles are born and how they evolve. Desired*
// values are reached at the end of a particle's life; unset ones keep the
// starting value.
type Params struct {
	Area     SpawnArea // nil spawns at the system position
	Textures []core.Texture
	Rotated  bool

	Size, DesiredSize Range[mgl32.Vec2]
	Rotation          Range[float32] // radians
	RotationSpeed     Range[float32] // radians per second
	MoveSpeed         Range[float32]
	DesiredMoveSpeed  Range[float32]
	Direction         Range[float32] // radians; unset is any direction
	LifeTime          Range[float32] // seconds; unset is 1
	FadeIn            Range[float32] // seconds
	Color             Range[colors.Color]
	DesiredColor      Range[colors.Color]
}
