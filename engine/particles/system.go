package particles

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/snek/engine/colors"
	"github.com/hubastard/snek/engine/core"
	"github.com/hubastard/snek/engine/gfx/renderer2d"
)

// Particle is one live particle. Position is its centre and Direction a
// unit vector.
type Particle struct {
	Position            mgl32.Vec2
	Size, DesiredSize   mgl32.Vec2
	Rotation, RotSpeed  float32
	Speed, DesiredSpeed float32
	Direction           mgl32.Vec2
	Life, LifeTime      float32
	FadeIn              float32
	Color, DesiredColor colors.Color
	Texture             core.Texture
}

// progress is the normalised age in [0,1].
func (p *Particle) progress() float32 {
	if p.LifeTime <= 0 {
		return 1
	}
	return min(p.Life/p.LifeTime, 1)
}

// System is a fixed-capacity emitter.
type System struct {
	Position        mgl32.Vec2
	Params          Params
	SpawnsPerSecond float32
	Emitting        bool

	particles []Particle
	spawnAcc  float32
	rng       *rand.Rand
}

// New creates an emitting system holding at most maxParticles.
func New(maxParticles int, spawnsPerSecond float32, params Params, seed uint64) *System {
	return &System{
		Params:          params,
		SpawnsPerSecond: spawnsPerSecond,
		Emitting:        true,
		particles:       make([]Particle, 0, maxParticles),
		rng:             rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *System) Alive() int { return len(s.particles) }

func (s *System) Capacity() int { return cap(s.particles) }

// Particles exposes the live particles for inspection.
func (s *System) Particles() []Particle { return s.particles }

// Clear kills every particle.
func (s *System) Clear() {
	s.particles = s.particles[:0]
	s.spawnAcc = 0
}

// Update ages and moves live particles, drops dead ones, then spawns
// according to SpawnsPerSecond.
func (s *System) Update(dt float32) {
	alive := s.particles[:0]
	for _, p := range s.particles {
		p.Life += dt
		if p.Life >= p.LifeTime {
			continue
		}
		speed := lerpF(p.Speed, p.DesiredSpeed, p.progress())
		p.Position = p.Position.Add(p.Direction.Mul(speed * dt))
		p.Rotation += p.RotSpeed * dt
		alive = append(alive, p)
	}
	s.particles = alive

	if !s.Emitting || s.SpawnsPerSecond <= 0 {
		return
	}
	s.spawnAcc += dt * s.SpawnsPerSecond
	for s.spawnAcc >= 1 {
		s.spawnAcc--
		s.spawn()
	}
}

// Burst spawns n particles immediately, capacity permitting.
func (s *System) Burst(n int) {
	for i := 0; i < n; i++ {
		s.spawn()
	}
}

func (s *System) spawn() {
	if len(s.particles) >= cap(s.particles) {
		return
	}
	pr, rng := &s.Params, s.rng

	p := Particle{Position: s.Position}
	if pr.Area != nil {
		p.Position = p.Position.Add(pr.Area.offset(rng))
	}
	p.Size = sample(pr.Size, rng, mgl32.Vec2{1, 1}, lerpV2)
	p.DesiredSize = sample(pr.DesiredSize, rng, p.Size, lerpV2)
	p.Rotation = sample(pr.Rotation, rng, 0, lerpF)
	p.RotSpeed = sample(pr.RotationSpeed, rng, 0, lerpF)
	p.Speed = sample(pr.MoveSpeed, rng, 0, lerpF)
	p.DesiredSpeed = sample(pr.DesiredMoveSpeed, rng, p.Speed, lerpF)
	dir := sample(pr.Direction, rng, rng.Float32()*2*math.Pi, lerpF)
	p.Direction = mgl32.Vec2{float32(math.Cos(float64(dir))), float32(math.Sin(float64(dir)))}
	p.LifeTime = sample(pr.LifeTime, rng, 1, lerpF)
	p.FadeIn = sample(pr.FadeIn, rng, 0, lerpF)
	p.Color = sample(pr.Color, rng, colors.White, colors.Lerp)
	p.DesiredColor = sample(pr.DesiredColor, rng, p.Color, colors.Lerp)
	if n := len(pr.Textures); n > 0 {
		p.Texture = pr.Textures[rng.IntN(n)]
	}
	s.particles = append(s.particles, p)
}

// Draw emits one quad per live particle.
func (s *System) Draw(r *renderer2d.Renderer) {
	for i := range s.particles {
		p := &s.particles[i]
		t := p.progress()
		size := lerpV2(p.Size, p.DesiredSize, t)
		color := colors.Lerp(p.Color, p.DesiredColor, t)
		if p.FadeIn > 0 && p.Life < p.FadeIn {
			color[3] *= p.Life / p.FadeIn
		}
		q := renderer2d.Quad{
			Position: p.Position.Sub(size.Mul(0.5)).Vec3(0),
			Size:     size,
			Color:    color,
		}
		if s.Params.Rotated {
			q.Rotation = p.Rotation
		}
		if p.Texture.Valid() {
			q.Fill = renderer2d.TextureFill{Texture: p.Texture}
		}
		r.DrawQuad(q)
	}
}

// DrawBounds outlines the spawn area, for debugging.
func (s *System) DrawBounds(r *renderer2d.Renderer, color colors.Color) {
	var ext mgl32.Vec2
	switch a := s.Params.Area.(type) {
	case QuadArea:
		ext = a.Sides
	case CircleArea:
		ext = mgl32.Vec2{2 * a.Radius, 2 * a.Radius}
	default:
		ext = mgl32.Vec2{2, 2}
	}
	r.DrawQuadOutline(s.Position.Sub(ext.Mul(0.5)).Vec3(0), ext, 1, color)
}
