package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

/*

diagnostics section

*/

// Snapshot holds the energy and momentum diagnostics for one instant.
// Valid turning false means a non-finite value appeared during
// accumulation: the caller is expected to pause the simulation. This is
// the kernel's only protection against runaway numerical divergence.
type Snapshot struct {
	Kinetic   float64
	Potential float64
	Energy    float64
	Momentum  mgl64.Vec2
	COM       mgl64.Vec2
	TotalMass float64
	Valid     bool
}

// ComputeDiagnostics computes kinetic energy, softened pairwise
// potential energy, net momentum, total mass, and center of mass over a
// snapshot of the bodies. It never mutates state and may be called at
// any time. Finiteness is checked incrementally during accumulation so
// a NaN cannot hide behind later terms.
func ComputeDiagnostics(bodies []*Body, g, eps2 float64) Snapshot {
	out := Snapshot{Valid: true}

	type tuple struct {
		pos, vel mgl64.Vec2
		mass     float64
	}
	data := make([]tuple, 0, len(bodies))
	for _, b := range bodies {
		if b == nil {
			continue
		}
		data = append(data, tuple{b.Pos, b.Vel, b.Mass})
	}
	n := len(data)
	if n == 0 {
		return out
	}

	var ke, m, px, py, cx, cy float64
	for i := range data {
		d := &data[i]
		ke += 0.5 * d.mass * (d.vel[0]*d.vel[0] + d.vel[1]*d.vel[1])
		px += d.mass * d.vel[0]
		py += d.mass * d.vel[1]
		cx += d.mass * d.pos[0]
		cy += d.mass * d.pos[1]
		m += d.mass
		if !finite(ke) || !finite(px) || !finite(py) || !finite(cx) || !finite(cy) || !finite(m) {
			out.Valid = false
			return out
		}
	}

	var pe float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := data[j].pos[0] - data[i].pos[0]
			dy := data[j].pos[1] - data[i].pos[1]
			r := math.Sqrt(dx*dx + dy*dy + eps2)
			pe += -g * data[i].mass * data[j].mass / r
			if !finite(pe) {
				out.Valid = false
				return out
			}
		}
	}

	out.Kinetic = ke
	out.Potential = pe
	out.Energy = ke + pe
	out.Momentum = mgl64.Vec2{px, py}
	out.TotalMass = m
	if m > 0 {
		out.COM = mgl64.Vec2{cx / m, cy / m}
	}
	return out
}

// ZeroNetMomentum subtracts the mass-weighted mean velocity from every
// unpinned body, bringing the system's net momentum to zero. Pinned
// mass counts toward the mean but pinned velocities are left alone.
func ZeroNetMomentum(bodies []*Body) {
	var px, py, m float64
	for _, b := range bodies {
		if b == nil {
			continue
		}
		px += b.Mass * b.Vel[0]
		py += b.Mass * b.Vel[1]
		m += b.Mass
	}
	if m <= 0 {
		return
	}
	v0 := mgl64.Vec2{px / m, py / m}
	for _, b := range bodies {
		if b == nil || b.Pinned {
			continue
		}
		b.Vel = b.Vel.Sub(v0)
	}
}
