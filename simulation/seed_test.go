package simulation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillaja/gravity2d/physics"
)

func TestClusterAroundCore(t *testing.T) {
	core := physics.Body{Pos: mgl64.Vec2{50, -50}, Mass: 1e6, Pinned: true}
	bodies := Cluster(100, 0.01, []physics.Body{core})
	require.Len(t, bodies, 101)

	assert.Equal(t, core.Pos, bodies[0].Pos)
	assert.True(t, bodies[0].Pinned)

	for _, b := range bodies[1:] {
		require.True(t, b.Valid())
		// velocity is tangential: perpendicular to the core separation
		d := core.Pos.Sub(b.Pos)
		assert.InDelta(t, 0, d.Dot(b.Vel), 1e-9*d.Len()*b.Vel.Len()+1e-12)
	}
}

func TestClusterNoCores(t *testing.T) {
	bodies := Cluster(50, 0.01, nil)
	require.Len(t, bodies, 50)
	for _, b := range bodies {
		require.True(t, b.Valid())
		assert.Equal(t, mgl64.Vec2{}, b.Vel)
	}
}

func TestUniformDiskWithinRadius(t *testing.T) {
	const radius = 10.0
	for i := 0; i < 1000; i++ {
		x, y := UniformDisk(radius)
		assert.LessOrEqual(t, math.Hypot(x, y), radius)
	}
}
