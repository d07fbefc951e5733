package simulation

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillaja/gravity2d/physics"
)

func testScenario() *Scenario {
	cfg := physics.DefaultConfig()
	cfg.G = 0.5
	cfg.Integrator = physics.SemiImplicitEuler
	return &Scenario{
		Name:        "binary",
		Description: "two bodies",
		Tags:        []string{"test", "binary"},
		Config:      cfg,
		Bodies: []ScenarioBody{
			{Pos: [2]float64{-100, 0}, Vel: [2]float64{0, 0.5}, Mass: 10},
			{Pos: [2]float64{100, 0}, Vel: [2]float64{0, -0.5}, Mass: 10, Radius: 3, Pinned: true},
		},
	}
}

func TestScenarioRoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scenario"+ext)
			want := testScenario()
			require.NoError(t, want.Save(path))

			got, err := LoadScenario(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestScenarioSimulator(t *testing.T) {
	sim := testScenario().Simulator()
	require.Len(t, sim.Bodies, 2)
	assert.Equal(t, "binary", sim.Name)
	assert.Equal(t, 0.5, sim.Config.G)
	assert.Equal(t, 10.0, sim.Bodies[0].Mass)
	assert.True(t, sim.Bodies[1].Pinned)
	assert.Equal(t, 3.0, sim.Bodies[1].Radius)
}

func TestFromSimulatorRoundTrip(t *testing.T) {
	sim := testScenario().Simulator()
	sc := FromSimulator(sim, "copy", "snapshot", []string{"a"})
	assert.Equal(t, "copy", sc.Name)
	assert.Equal(t, sim.Config, sc.Config)
	require.Len(t, sc.Bodies, 2)
	assert.Equal(t, testScenario().Bodies, sc.Bodies)
}

// auto-orbit gives zero-velocity bodies a circular orbital velocity
// about the first body, perpendicular to the separation.
func TestAutoOrbit(t *testing.T) {
	sc := &Scenario{
		Config:    physics.DefaultConfig(),
		AutoOrbit: true,
		Bodies: []ScenarioBody{
			{Pos: [2]float64{0, 0}, Mass: 1000},
			{Pos: [2]float64{100, 0}, Mass: 1},
			{Pos: [2]float64{0, 50}, Vel: [2]float64{7, 0}, Mass: 1}, // keeps its velocity
		},
	}
	path := filepath.Join(t.TempDir(), "orbit.json")
	require.NoError(t, sc.Save(path))

	got, err := LoadScenario(path)
	require.NoError(t, err)

	v := math.Sqrt(got.Config.G * 1000 / 100)
	assert.InDelta(t, 0, got.Bodies[1].Vel[0], 1e-12)
	assert.InDelta(t, v, got.Bodies[1].Vel[1], 1e-12)
	assert.Equal(t, [2]float64{7, 0}, got.Bodies[2].Vel)
}
