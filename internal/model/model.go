package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/piwi3910/TablePlan/internal/grid"
)

// Room is one rectangular room to furnish. Dimensions are in grid cells.
type Room struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Target int    `json:"target"` // Number of tables requested
}

func NewRoom(label string, w, h, target int) Room {
	return Room{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
		Target: target,
	}
}

// Capacity returns the number of tables the room could hold if every cell
// were usable, floor(width*height/3).
func (r Room) Capacity() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height / grid.TableLength
}

// Validate rejects rooms the engine cannot build a grid for.
func (r Room) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("room %q: %w: %dx%d", r.Label, grid.ErrInvalidDimension, r.Width, r.Height)
	}
	if r.Target < 0 {
		return fmt.Errorf("room %q: negative target %d", r.Label, r.Target)
	}
	return nil
}

// String renders the room the way it appears in contest input files.
func (r Room) String() string {
	return fmt.Sprintf("%d %d %d", r.Width, r.Height, r.Target)
}

// Strategy selects the placement heuristic.
type Strategy string

const (
	StrategySpaced Strategy = "spaced" // Row sweep with spacing, then margin-checked vertical fill
	StrategyDense  Strategy = "dense"  // Back-to-back rows, then unchecked vertical fill
)

// Strategies lists every known strategy in display order.
func Strategies() []Strategy {
	return []Strategy{StrategySpaced, StrategyDense}
}

// ParseStrategy converts a user supplied name. The empty string selects
// the default spaced strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategySpaced:
		return StrategySpaced, nil
	case StrategyDense:
		return StrategyDense, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want %q or %q)", s, StrategySpaced, StrategyDense)
	}
}

// PlanSettings holds the engine configuration.
type PlanSettings struct {
	Strategy Strategy `json:"strategy"`
	// FillGaps enables the second, vertical insertion phase.
	FillGaps bool `json:"fill_gaps"`
}

func DefaultSettings() PlanSettings {
	return PlanSettings{
		Strategy: StrategySpaced,
		FillGaps: true,
	}
}

// PlanResult is the finished grid for one room.
type PlanResult struct {
	Room     Room       `json:"room"`
	Strategy Strategy   `json:"strategy"`
	Grid     *grid.Grid `json:"-"`
	Achieved int        `json:"achieved"`
	Phase1   int        `json:"phase1"` // Tables placed by the row sweep
}

// Shortfall returns how many requested tables could not be placed.
func (p PlanResult) Shortfall() int {
	if p.Achieved >= p.Room.Target {
		return 0
	}
	return p.Room.Target - p.Achieved
}

// FillRatio returns the share of cells covered by tables, 0..1.
func (p PlanResult) FillRatio() float64 {
	if p.Grid == nil {
		return 0
	}
	total := p.Grid.Width() * p.Grid.Height()
	if total == 0 {
		return 0
	}
	return float64(p.Grid.Occupied()) / float64(total)
}

// Tiles returns the placed tables of the plan.
func (p PlanResult) Tiles() []grid.Tile {
	if p.Grid == nil {
		return nil
	}
	return p.Grid.Tiles()
}

// Project ties rooms and settings together for save/load.
type Project struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Rooms    []Room       `json:"rooms"`
	Settings PlanSettings `json:"settings"`
}

func NewProject() Project {
	return Project{
		ID:       uuid.New().String()[:8],
		Name:     "Untitled",
		Rooms:    []Room{},
		Settings: DefaultSettings(),
	}
}
