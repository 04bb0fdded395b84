package game

// transitionSnap is how close T must get to its goal before it snaps.
const transitionSnap = 0.005

// Transition is a fade to an opaque overlay and back. Start raises the goal
// to 1; once T reaches it the goal drops back to 0. Game logic is frozen
// while the goal is non-zero.
type Transition struct {
	T       float32
	Desired float32
	Speed   float32
}

func (t *Transition) Start(speed float32) {
	t.Desired = 1
	t.Speed = speed
}

// Busy reports whether the fade is still heading to opaque.
func (t *Transition) Busy() bool { return t.Desired != 0 }

func (t *Transition) Update(dt float32) {
	if t.T == t.Desired {
		t.Desired = 0
		return
	}
	t.T = lerp(t.T, t.Desired, dt*t.Speed)
	t.T = min(max(t.T, 0), 1)
	if rem := t.Desired - t.T; rem > -transitionSnap && rem < transitionSnap {
		t.T = t.Desired
	}
}
