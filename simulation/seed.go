package simulation

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/quillaja/gravity2d/physics"
)

const (
	seedCentralMass   = 4000.0
	seedSatelliteMass = 12.0
	seedOrbitRadius   = 200.0
)

// DefaultScenario is the stock setup: a heavy central body with two
// light bodies in opposite circular orbits.
func DefaultScenario() *Scenario {
	cfg := physics.DefaultConfig()
	v := math.Sqrt(cfg.G * seedCentralMass / seedOrbitRadius)
	return &Scenario{
		Name:        "default",
		Description: "central body with two orbiting satellites",
		Config:      cfg,
		Bodies: []ScenarioBody{
			{Pos: [2]float64{0, 0}, Mass: seedCentralMass},
			{Pos: [2]float64{seedOrbitRadius, 0}, Vel: [2]float64{0, v}, Mass: seedSatelliteMass},
			{Pos: [2]float64{-seedOrbitRadius, 0}, Vel: [2]float64{0, -v}, Mass: seedSatelliteMass},
		},
	}
}

// Cluster seeds n bodies normally distributed around the given core
// bodies, each with a roughly circular orbital velocity about its core.
// Cores are prepended to the returned slice. With no cores the bodies
// fill a uniform disk around the origin at rest.
func Cluster(n int, g float64, cores []physics.Body) []*physics.Body {
	const meanMass = 50e3
	const massSpread = 500.0
	const positionSpread = 1000.0
	const defaultRadius = 2.0

	nc := len(cores)
	bodies := make([]*physics.Body, n+nc)
	for i := nc; i < len(bodies); i++ {
		b := &physics.Body{
			ID:     uint64(i),
			Mass:   math.Abs(rand.NormFloat64()*massSpread + meanMass),
			Radius: defaultRadius,
		}

		var core physics.Body
		if nc > 0 {
			core = cores[rand.Intn(nc)]
			b.Pos = mgl64.Vec2{
				rand.NormFloat64()*positionSpread + core.Pos[0],
				rand.NormFloat64()*positionSpread + core.Pos[1],
			}
		} else {
			x, y := UniformDisk(positionSpread)
			b.Pos = mgl64.Vec2{x, y}
		}

		if nc > 0 {
			// tangential circular velocity about the core
			d := core.Pos.Sub(b.Pos)
			r := d.Len()
			if r == 0 {
				r = 1
			}
			perp := mgl64.Vec2{-d[1] / r, d[0] / r}
			v := math.Sqrt(g * core.Mass / r)
			b.Vel = perp.Mul(v).Add(core.Vel)
		}
		bodies[i] = b
	}

	// insert the cores as bodies in the front of the slice
	for i := range cores {
		c := cores[i]
		c.ID = uint64(i)
		bodies[i] = &c
	}
	return bodies
}

// UniformDisk uniformly (no bias towards center) samples a disk of the
// given radius.
func UniformDisk(radius float64) (x, y float64) {
	r := radius * math.Sqrt(rand.Float64())
	theta := 2 * math.Pi * rand.Float64()
	sin, cos := math.Sincos(theta)
	return r * cos, r * sin
}
