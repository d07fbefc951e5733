// Package simulation wraps the physics kernel with host-side state:
// the simulator loop, scenario files, body seeding, and frame
// recording.
package simulation

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/quillaja/gravity2d/physics"
)

// x offset applied to duplicated bodies so they don't immediately merge
// back into the original.
const duplicateOffsetX = 20.0

// Simulator owns the body set and drives the kernel one frame at a
// time. It pauses itself when diagnostics report numerical divergence.
type Simulator struct {
	Name   string
	Config physics.Config
	Bodies []*physics.Body

	Paused   bool
	Frame    int
	Elapsed  float64       // simulated seconds
	LastStep time.Duration // wall time of the last Step

	nextID uint64
}

func New(name string, cfg physics.Config) *Simulator {
	return &Simulator{Name: name, Config: cfg}
}

// Step advances one frame of dt seconds (before time scaling). It does
// nothing while paused, and pauses when the post-step diagnostics come
// back invalid.
func (s *Simulator) Step(dt float64) physics.Snapshot {
	if s.Paused {
		return s.Diagnostics()
	}
	start := time.Now()
	var snap physics.Snapshot
	s.Bodies, snap = physics.Step(s.Bodies, &s.Config, dt)
	s.LastStep = time.Since(start)
	s.Frame++
	if s.Config.UseFixedDT {
		dt = s.Config.FixedDT
	}
	s.Elapsed += dt * math.Max(0, s.Config.TimeScale)
	if !snap.Valid {
		s.Paused = true
	}
	return snap
}

// StepOnce advances a single frame and leaves the simulator paused,
// regardless of the paused state on entry.
func (s *Simulator) StepOnce(dt float64) physics.Snapshot {
	s.Paused = false
	snap := s.Step(dt)
	s.Paused = true
	return snap
}

// Diagnostics is a read-only snapshot of the current state, safe to
// call at any time.
func (s *Simulator) Diagnostics() physics.Snapshot {
	eps := s.Config.Softening
	return physics.ComputeDiagnostics(s.Bodies, s.Config.G, eps*eps)
}

// ZeroNetMomentum recenters the system's velocity so net momentum is
// zero.
func (s *Simulator) ZeroNetMomentum() {
	physics.ZeroNetMomentum(s.Bodies)
}

// AddBody appends a copy of b with a fresh ID and returns it.
func (s *Simulator) AddBody(b physics.Body) *physics.Body {
	b.ID = s.nextID
	s.nextID++
	nb := &b
	s.Bodies = append(s.Bodies, nb)
	return nb
}

// RemoveBody deletes the body with the given ID, reporting whether it
// existed.
func (s *Simulator) RemoveBody(id uint64) bool {
	for i, b := range s.Bodies {
		if b != nil && b.ID == id {
			s.Bodies = append(s.Bodies[:i], s.Bodies[i+1:]...)
			return true
		}
	}
	return false
}

// BodyByID returns the body with the given ID, or nil.
func (s *Simulator) BodyByID(id uint64) *physics.Body {
	for _, b := range s.Bodies {
		if b != nil && b.ID == id {
			return b
		}
	}
	return nil
}

// DuplicateBody copies the body with the given ID, offset in x so the
// twin doesn't instantly collide with the original. Returns nil if no
// such body exists.
func (s *Simulator) DuplicateBody(id uint64) *physics.Body {
	src := s.BodyByID(id)
	if src == nil {
		return nil
	}
	dup := *src
	dup.Pos = dup.Pos.Add(mgl64.Vec2{duplicateOffsetX, 0})
	return s.AddBody(dup)
}

// SetBodies replaces the body set, reassigning IDs.
func (s *Simulator) SetBodies(bodies []*physics.Body) {
	s.Bodies = bodies
	s.nextID = 0
	for _, b := range bodies {
		if b == nil {
			continue
		}
		b.ID = s.nextID
		s.nextID++
	}
}
