package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergeConfig() Config {
	cfg := DefaultConfig()
	cfg.Density = 1
	cfg.CollisionMode = MergeCollisions
	return cfg
}

// an inelastic merge conserves mass and momentum exactly.
func TestMergeConservation(t *testing.T) {
	cfg := mergeConfig()
	a := &Body{Pos: mgl64.Vec2{0, 0}, Vel: mgl64.Vec2{1, 0}, Mass: 3}
	b := &Body{Pos: mgl64.Vec2{0.5, 0}, Vel: mgl64.Vec2{-1, 2}, Mass: 1}

	out := ResolveCollisions([]*Body{a, b}, &cfg)
	require.Len(t, out, 1)
	require.Same(t, a, out[0], "the heavier body survives")

	assert.Equal(t, 4.0, a.Mass)
	assert.InDelta(t, 0.5, a.Vel[0], 1e-12) // (3·1 + 1·-1)/4
	assert.InDelta(t, 0.5, a.Vel[1], 1e-12) // (3·0 + 1·2)/4
	assert.InDelta(t, 0.125, a.Pos[0], 1e-12)

	// radius re-derived from the combined mass, acceleration cleared
	assert.InDelta(t, RadiusFromMass(4, cfg.Density), a.Radius, 1e-12)
	assert.Equal(t, mgl64.Vec2{}, a.Acc)
	assert.Equal(t, mgl64.Vec2{}, a.PrevAcc)
}

// mass ties favor the first-indexed body.
func TestMergeTieBreak(t *testing.T) {
	cfg := mergeConfig()
	a := &Body{Pos: mgl64.Vec2{0, 0}, Mass: 5}
	b := &Body{Pos: mgl64.Vec2{0.1, 0}, Mass: 5}

	out := ResolveCollisions([]*Body{a, b}, &cfg)
	require.Len(t, out, 1)
	assert.Same(t, a, out[0])
}

// a pinned body always survives a merge and does not move.
func TestMergePinnedSurvives(t *testing.T) {
	cfg := mergeConfig()
	free := &Body{Pos: mgl64.Vec2{0, 0}, Vel: mgl64.Vec2{5, 5}, Mass: 100}
	pinned := &Body{Pos: mgl64.Vec2{1, 0}, Vel: mgl64.Vec2{0, 0}, Mass: 1, Pinned: true}

	out := ResolveCollisions([]*Body{free, pinned}, &cfg)
	require.Len(t, out, 1)
	require.Same(t, pinned, out[0])
	assert.Equal(t, 101.0, pinned.Mass)
	assert.Equal(t, mgl64.Vec2{1, 0}, pinned.Pos)
	assert.Equal(t, mgl64.Vec2{0, 0}, pinned.Vel)
}

// two pinned bodies overlapping are left untouched.
func TestBothPinnedNeverMerge(t *testing.T) {
	cfg := mergeConfig()
	a := &Body{Pos: mgl64.Vec2{0, 0}, Mass: 10, Pinned: true}
	b := &Body{Pos: mgl64.Vec2{0.5, 0}, Mass: 10, Pinned: true}

	out := ResolveCollisions([]*Body{a, b}, &cfg)
	assert.Len(t, out, 2)
	assert.Equal(t, 10.0, a.Mass)
	assert.Equal(t, 10.0, b.Mass)
}

// merges cascade within a single pass: three mutually overlapping
// bodies end as one with all the mass.
func TestMergeCascade(t *testing.T) {
	cfg := mergeConfig()
	bodies := []*Body{
		{Pos: mgl64.Vec2{0, 0}, Mass: 4},
		{Pos: mgl64.Vec2{0.2, 0}, Mass: 2},
		{Pos: mgl64.Vec2{-0.2, 0}, Mass: 1},
	}
	out := ResolveCollisions(bodies, &cfg)
	require.Len(t, out, 1)
	assert.Equal(t, 7.0, out[0].Mass)
}

// separated bodies are not resolved.
func TestNoOverlapNoMerge(t *testing.T) {
	cfg := mergeConfig()
	a := &Body{Pos: mgl64.Vec2{0, 0}, Mass: 2, Radius: 1}
	b := &Body{Pos: mgl64.Vec2{10, 0}, Mass: 2, Radius: 1}
	out := ResolveCollisions([]*Body{a, b}, &cfg)
	assert.Len(t, out, 2)
}

// explicit radii override the mass-derived ones for detection.
func TestExplicitRadius(t *testing.T) {
	cfg := mergeConfig()
	a := &Body{Pos: mgl64.Vec2{0, 0}, Mass: 2, Radius: 6}
	b := &Body{Pos: mgl64.Vec2{10, 0}, Mass: 2, Radius: 6}
	out := ResolveCollisions([]*Body{a, b}, &cfg)
	assert.Len(t, out, 1)
}

func TestRadiusFromMass(t *testing.T) {
	// r = cbrt(3m/(4πρ))
	assert.InDelta(t, math.Cbrt(3*8/(4*math.Pi*2)), RadiusFromMass(8, 2), 1e-12)
	// mass is floored at 1 kg
	assert.Equal(t, RadiusFromMass(1, 1), RadiusFromMass(0.001, 1))
}

func elasticConfig() Config {
	cfg := DefaultConfig()
	cfg.CollisionMode = ElasticCollisions
	return cfg
}

// equal masses in a head-on elastic collision exchange velocities.
func TestElasticHeadOnSwap(t *testing.T) {
	cfg := elasticConfig()
	a := &Body{Pos: mgl64.Vec2{0, 0}, Vel: mgl64.Vec2{1, 0}, Mass: 1, Radius: 0.6}
	b := &Body{Pos: mgl64.Vec2{1, 0}, Vel: mgl64.Vec2{-1, 0}, Mass: 1, Radius: 0.6}

	out := ResolveCollisions([]*Body{a, b}, &cfg)
	require.Len(t, out, 2, "elastic mode never destroys bodies")

	assert.InDelta(t, -1, a.Vel[0], 1e-12)
	assert.InDelta(t, 1, b.Vel[0], 1e-12)

	// penetration resolved symmetrically for equal masses
	assert.InDelta(t, -0.1, a.Pos[0], 1e-12)
	assert.InDelta(t, 1.1, b.Pos[0], 1e-12)
}

// an elastic collision conserves momentum and kinetic energy.
func TestElasticConservation(t *testing.T) {
	cfg := elasticConfig()
	bodies := []*Body{
		{Pos: mgl64.Vec2{0, 0}, Vel: mgl64.Vec2{2, 1}, Mass: 3, Radius: 1},
		{Pos: mgl64.Vec2{1.5, 0.5}, Vel: mgl64.Vec2{-1, 0.5}, Mass: 5, Radius: 1},
	}
	before := ComputeDiagnostics(bodies, 0, 0)
	ResolveCollisions(bodies, &cfg)
	after := ComputeDiagnostics(bodies, 0, 0)

	assert.InDelta(t, before.Momentum[0], after.Momentum[0], 1e-9)
	assert.InDelta(t, before.Momentum[1], after.Momentum[1], 1e-9)
	assert.InDelta(t, before.Kinetic, after.Kinetic, 1e-9)
}

// a free body bounces off a pinned one: velocity reflected about the
// collision normal, pinned body untouched, penetration pushed entirely
// onto the free body.
func TestElasticReflectOffPinned(t *testing.T) {
	cfg := elasticConfig()
	wall := &Body{Pos: mgl64.Vec2{0, 0}, Mass: 50, Radius: 0.6, Pinned: true}
	ball := &Body{Pos: mgl64.Vec2{1, 0}, Vel: mgl64.Vec2{-2, 0.5}, Mass: 1, Radius: 0.6}

	ResolveCollisions([]*Body{wall, ball}, &cfg)

	assert.InDelta(t, 2, ball.Vel[0], 1e-12)
	assert.InDelta(t, 0.5, ball.Vel[1], 1e-12)
	assert.InDelta(t, 1.2, ball.Pos[0], 1e-12) // pushed out to touching
	assert.Equal(t, mgl64.Vec2{0, 0}, wall.Pos)
	assert.Equal(t, mgl64.Vec2{}, wall.Vel)
}

func TestElasticBothPinnedNoOp(t *testing.T) {
	cfg := elasticConfig()
	a := &Body{Pos: mgl64.Vec2{0, 0}, Vel: mgl64.Vec2{1, 0}, Mass: 1, Radius: 1, Pinned: true}
	b := &Body{Pos: mgl64.Vec2{1, 0}, Vel: mgl64.Vec2{-1, 0}, Mass: 1, Radius: 1, Pinned: true}

	ResolveCollisions([]*Body{a, b}, &cfg)
	assert.Equal(t, mgl64.Vec2{1, 0}, a.Vel)
	assert.Equal(t, mgl64.Vec2{-1, 0}, b.Vel)
	assert.Equal(t, mgl64.Vec2{0, 0}, a.Pos)
	assert.Equal(t, mgl64.Vec2{1, 0}, b.Pos)
}

// invalid bodies are never candidates for collision.
func TestInvalidBodiesSkipCollision(t *testing.T) {
	cfg := mergeConfig()
	ok := &Body{Pos: mgl64.Vec2{0, 0}, Mass: 5}
	bad := &Body{Pos: mgl64.Vec2{0, 0}, Mass: math.NaN()}

	out := ResolveCollisions([]*Body{ok, bad}, &cfg)
	assert.Len(t, out, 2)
	assert.Equal(t, 5.0, ok.Mass)
}
