package gameplay

import "math"

// InputSnapshot is the state of the movement keys for one frame.
type InputSnapshot struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

// Direction resolves the held keys to a single tile step. Keys are checked
// left, right, up, down and the last held one wins, so down beats up and up
// beats any horizontal key.
func (in InputSnapshot) Direction() (dx, dy int) {
	if in.Left {
		dx, dy = -1, 0
	}
	if in.Right {
		dx, dy = 1, 0
	}
	if in.Up {
		dx, dy = 0, 1
	}
	if in.Down {
		dx, dy = 0, -1
	}
	return dx, dy
}

// Any reports whether a movement key is held.
func (in InputSnapshot) Any() bool {
	return in.Left || in.Right || in.Up || in.Down
}

// MoveTimer is a repeating timer. Tick reports true on the frame a period
// completes; several periods elapsing in one frame still fire once.
type MoveTimer struct {
	Duration float64
	elapsed  float64
}

func NewMoveTimer(seconds float64) *MoveTimer {
	return &MoveTimer{Duration: seconds}
}

func (t *MoveTimer) Tick(dt float64) bool {
	if dt < 0 {
		dt = 0
	}
	if t.Duration <= 0 {
		return true
	}
	t.elapsed += dt
	if t.elapsed < t.Duration {
		return false
	}
	t.elapsed = math.Mod(t.elapsed, t.Duration)
	return true
}

func (t *MoveTimer) Reset() { t.elapsed = 0 }
