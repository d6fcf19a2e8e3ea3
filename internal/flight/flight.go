// Package flight computes acceleration commands that lift a craft to a
// target altitude and bring it back to the ground.
//
// Each step the craft's velocity changes by the commanded acceleration
// minus Gravity and its altitude by the new velocity. Altitude never goes
// below zero.
package flight

import (
	"errors"
	"fmt"
)

// Gravity is the constant downward bias subtracted from every command.
const Gravity = 10

const (
	cruiseSpeed = 10 // velocity at which the ascent stops accelerating
	boost       = 5  // acceleration above or below Gravity while climbing
	maxSteps    = 100000
)

var (
	ErrInvalidTarget = errors.New("target must be positive")
	ErrOvershoot     = errors.New("ascent overshot the target")
	ErrUnsettled     = errors.New("descent did not settle")
	ErrTimeLimit     = errors.New("plan exceeds time limit")
)

// FinalPosition integrates a velocity sequence from position 0.
func FinalPosition(velocities []int) int {
	pos := 0
	for _, v := range velocities {
		pos = clampGround(pos + v)
	}
	return pos
}

// FinalAltitude replays an acceleration sequence from rest on the ground.
func FinalAltitude(accelerations []int) int {
	alts := Altitudes(accelerations)
	if len(alts) == 0 {
		return 0
	}
	return alts[len(alts)-1]
}

// Altitudes returns the altitude after each step of an acceleration
// sequence.
func Altitudes(accelerations []int) []int {
	out := make([]int, 0, len(accelerations))
	pos, v := 0, 0
	for _, a := range accelerations {
		v += a - Gravity
		pos = clampGround(pos + v)
		out = append(out, pos)
	}
	return out
}

func clampGround(pos int) int {
	if pos < 0 {
		return 0
	}
	return pos
}

// State is a phase of the flight.
type State int

const (
	Accelerating State = iota
	Cruising
	Decelerating
	Settled
)

func (s State) String() string {
	switch s {
	case Accelerating:
		return "accelerating"
	case Cruising:
		return "cruising"
	case Decelerating:
		return "decelerating"
	case Settled:
		return "settled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Controller is the flight state machine. The zero value is not usable;
// create one with NewController.
type Controller struct {
	Target   int
	Altitude int
	Velocity int
	State    State
}

func NewController(target int) (*Controller, error) {
	if target <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTarget, target)
	}
	return &Controller{Target: target, State: Accelerating}, nil
}

// Step issues the next acceleration command and advances the craft.
// It returns false once the controller has settled.
func (c *Controller) Step() (int, bool) {
	if c.State == Settled {
		return 0, false
	}

	var acc int
	if c.State == Decelerating {
		acc = c.descend()
	} else {
		acc = c.ascend()
	}

	c.Velocity += acc - Gravity
	c.Altitude += c.Velocity
	if c.State != Decelerating {
		c.Altitude = clampGround(c.Altitude)
	}
	c.transition()
	return acc, true
}

// ascend climbs at full boost below cruise speed and eases off above it.
// When the next step would reach the target it cuts velocity to 1.
func (c *Controller) ascend() int {
	acc := Gravity + boost
	if c.Velocity >= cruiseSpeed {
		acc = Gravity - boost
	}
	if c.Altitude+c.Velocity+acc-Gravity >= c.Target {
		acc = Gravity - c.Velocity + 1
	}
	return acc
}

// descend applies the first matching threshold rule.
func (c *Controller) descend() int {
	switch {
	case c.Velocity > 10:
		return Gravity - 10
	case c.Velocity < -10:
		return Gravity + 10
	case c.Altitude > 50:
		return Gravity - 10
	case c.Velocity > 5:
		return Gravity - 4
	case c.Velocity == -1:
		return Gravity
	default:
		return Gravity - 1
	}
}

func (c *Controller) transition() {
	switch c.State {
	case Accelerating, Cruising:
		if c.Altitude >= c.Target {
			c.State = Decelerating
		} else if c.Velocity >= cruiseSpeed {
			c.State = Cruising
		} else {
			c.State = Accelerating
		}
	case Decelerating:
		if c.Altitude <= 0 {
			c.State = Settled
		}
	}
}

// Plan returns the acceleration sequence that climbs to target and lands
// again with velocity -1.
func Plan(target int) ([]int, error) {
	c, err := NewController(target)
	if err != nil {
		return nil, err
	}

	var accs []int
	peaked := false
	for len(accs) < maxSteps {
		acc, ok := c.Step()
		if !ok {
			break
		}
		accs = append(accs, acc)
		if c.State == Decelerating && !peaked {
			peaked = true
			if c.Altitude > target {
				return nil, fmt.Errorf("%w: altitude %d, target %d", ErrOvershoot, c.Altitude, target)
			}
		}
	}

	if c.State != Settled || c.Altitude != 0 || c.Velocity != -1 {
		return nil, fmt.Errorf("%w: target %d ended at altitude %d velocity %d",
			ErrUnsettled, target, c.Altitude, c.Velocity)
	}
	return accs, nil
}

// PlanWithin is Plan with a bound on the number of steps. A limit <= 0
// means no bound.
func PlanWithin(target, limit int) ([]int, error) {
	accs, err := Plan(target)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(accs) > limit {
		return accs, fmt.Errorf("%w: target %d needs %d steps, limit %d", ErrTimeLimit, target, len(accs), limit)
	}
	return accs, nil
}
