package physics

import "math"

/*

time integration section

*/

// substeps splits dt into n = ceil(dt/MaxSubstep) equal substeps,
// clamped to [1, MaxSubstepsPerFrame]. A zero or negative MaxSubstep is
// clamped to a small positive epsilon instead of dividing by zero.
func substeps(cfg *Config, dt float64) (n int, sub float64) {
	maxSub := cfg.MaxSubstep
	if maxSub <= 0 {
		maxSub = 1e-6
	}
	n = int(math.Ceil(dt / maxSub))
	if n < 1 {
		n = 1
	}
	if limit := cfg.MaxSubstepsPerFrame; limit > 0 && n > limit {
		n = limit
	}
	return n, dt / float64(n)
}

// Integrate advances all unpinned bodies by dt using the configured
// scheme, split into bounded substeps. Body.Acc must hold accelerations
// for the current positions on entry.
func Integrate(bodies []*Body, cfg *Config, dt float64) {
	if dt <= 0 {
		return
	}
	n, sub := substeps(cfg, dt)
	for s := 0; s < n; s++ {
		if cfg.Integrator == VelocityVerlet {
			verletSubstep(bodies, cfg, sub)
			continue
		}
		if s > 0 {
			Accelerations(bodies, cfg)
		}
		eulerSubstep(bodies, cfg, sub)
	}
}

// eulerSubstep is one semi-implicit (symplectic) Euler step: velocity
// first, then position with the new velocity.
func eulerSubstep(bodies []*Body, cfg *Config, dt float64) {
	for _, b := range bodies {
		if b == nil || b.Pinned {
			continue
		}
		b.Vel = clampLen(b.Vel.Add(b.Acc.Mul(dt)), cfg.MaxSpeed)
		b.Pos = b.Pos.Add(b.Vel.Mul(dt))
	}
}

// verletSubstep is one velocity Verlet step. Positions move using the
// acceleration from the start of the substep, the field is recomputed
// at the new positions, and velocities take the average of the two.
// The fresh acceleration carries into the next substep, so the field is
// evaluated exactly once per substep.
func verletSubstep(bodies []*Body, cfg *Config, dt float64) {
	for _, b := range bodies {
		if b == nil || b.Pinned {
			continue
		}
		b.Pos = b.Pos.Add(b.Vel.Mul(dt)).Add(b.Acc.Mul(0.5 * dt * dt))
		b.PrevAcc = b.Acc
	}

	Accelerations(bodies, cfg)

	for _, b := range bodies {
		if b == nil || b.Pinned {
			continue
		}
		avg := b.PrevAcc.Add(b.Acc).Mul(0.5)
		b.Vel = clampLen(b.Vel.Add(avg.Mul(dt)), cfg.MaxSpeed)
	}
}
