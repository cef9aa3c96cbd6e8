package state

import (
	"fmt"

	"InkBoard/internal/mesh"
	"InkBoard/internal/spline"
)

// SourceKind identifies the device family a stroke comes from.
type SourceKind uint8

const (
	SourceMouse SourceKind = iota
	SourceTouch
	SourceNetwork
)

// Source is one input origin: the mouse, a touch identifier or a remote
// peer. At most one stroke per Source is active at a time.
type Source struct {
	Kind SourceKind
	ID   uint64
}

func MouseSource() Source { return Source{Kind: SourceMouse} }
func TouchSource(id uint64) Source { return Source{Kind: SourceTouch, ID: id} }
func NetworkSource(peer uint64) Source { return Source{Kind: SourceNetwork, ID: peer} }

func (s Source) String() string {
	switch s.Kind {
	case SourceMouse:
		return "mouse"
	case SourceTouch:
		return fmt.Sprintf("touch:%d", s.ID)
	case SourceNetwork:
		return fmt.Sprintf("network:%d", s.ID)
	}
	return fmt.Sprintf("source(%d):%d", s.Kind, s.ID)
}

// Phase is the tessellation state of a stroke.
type Phase uint8

const (
	// PhaseEmpty: no committed points yet.
	PhaseEmpty Phase = iota
	// PhaseAccumulating: points are committed but the unprocessed window
	// has not been tessellated yet.
	PhaseAccumulating
	// PhaseCommitted: the last update appended vertices and nothing newer
	// has been merged since.
	PhaseCommitted
	// PhaseFinalized is terminal; the stroke no longer changes.
	PhaseFinalized
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseAccumulating:
		return "accumulating"
	case PhaseCommitted:
		return "committed"
	case PhaseFinalized:
		return "finalized"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Config is the tessellation tuning of a stroke. It is captured when the
// stroke opens and never changes afterwards.
type Config struct {
	Basis  spline.Basis
	Cyclic bool
	// MinPoints is the smallest unprocessed window worth fitting.
	MinPoints int
	// ResolutionMin and ResolutionMax bound the samples per segment.
	ResolutionMin int
	ResolutionMax int
	// DistanceDivisor converts a chord length into samples per segment.
	DistanceDivisor int
	// InitialCapacity is the starting vertex capacity of the buffer.
	InitialCapacity int
}

// DefaultConfig returns the tuning used for live freehand strokes.
func DefaultConfig() Config {
	return Config{
		Basis:           spline.CatmullRom,
		MinPoints:       4,
		ResolutionMin:   1,
		ResolutionMax:   12,
		DistanceDivisor: 3,
		InitialCapacity: mesh.DefaultCapacity,
	}
}

// Validate reports tuning values the tessellator cannot work with.
func (c Config) Validate() error {
	switch {
	case c.MinPoints < 2:
		return fmt.Errorf("%w: min points %d < 2", ErrInvalidConfig, c.MinPoints)
	case c.ResolutionMin < 1:
		return fmt.Errorf("%w: resolution min %d < 1", ErrInvalidConfig, c.ResolutionMin)
	case c.ResolutionMax < c.ResolutionMin:
		return fmt.Errorf("%w: resolution bounds [%d, %d]", ErrInvalidConfig, c.ResolutionMin, c.ResolutionMax)
	case c.DistanceDivisor < 1:
		return fmt.Errorf("%w: distance divisor %d < 1", ErrInvalidConfig, c.DistanceDivisor)
	case c.InitialCapacity < 1:
		return fmt.Errorf("%w: initial capacity %d < 1", ErrInvalidConfig, c.InitialCapacity)
	case c.Basis > spline.BSpline:
		return fmt.Errorf("%w: unknown basis %d", ErrInvalidConfig, uint8(c.Basis))
	}
	return nil
}
