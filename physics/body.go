// Package physics implements the simulation kernel: gravity-field
// evaluation (exact pairwise and Barnes-Hut), time integration with
// adaptive substepping, collision resolution, and energy/momentum
// diagnostics. All quantities are SI (meters, kilograms, seconds) in
// double precision.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is the unit of simulation.
type Body struct {
	ID      uint64
	Pos     mgl64.Vec2 // m
	Vel     mgl64.Vec2 // m/s
	Acc     mgl64.Vec2 // m/s², for the current positions
	PrevAcc mgl64.Vec2 // m/s², cached for Velocity Verlet
	Mass    float64    // kg
	Radius  float64    // m; 0 means derive from mass and density
	Pinned  bool       // never moves, still exerts gravity
}

// Valid reports whether the body may participate in force computation
// this step. Invalid bodies are skipped, not destroyed; they rejoin as
// soon as their state is finite again.
func (b *Body) Valid() bool {
	return finiteVec(b.Pos) && finiteVec(b.Vel) && b.Mass > 0 && finite(b.Mass)
}

// EffectiveRadius is the explicit radius if set, else derived from mass.
func (b *Body) EffectiveRadius(density float64) float64 {
	if b.Radius > 0 {
		return b.Radius
	}
	return RadiusFromMass(b.Mass, density)
}

// RadiusFromMass gives the radius of a sphere of the given mass and
// density, r = cbrt(3m/(4πρ)). Mass is floored at 1 kg so very light
// bodies keep a usable collision radius.
func RadiusFromMass(mass, density float64) float64 {
	return math.Cbrt((3 * math.Max(1, mass)) / (4 * math.Pi * density))
}
