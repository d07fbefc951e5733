package physics

import "math"

// Step advances the simulation by one frame: collisions (when enabled),
// then the gravity field for the current positions, then substepped
// integration, then a post-step diagnostics snapshot. dt is the
// measured frame time; it is replaced by cfg.FixedDT when UseFixedDT is
// set and scaled by TimeScale either way.
//
// The returned slice replaces the input, since merges may remove
// bodies. A step runs to completion before anything observes the body
// set; nothing here suspends or yields.
func Step(bodies []*Body, cfg *Config, dt float64) ([]*Body, Snapshot) {
	if cfg.UseFixedDT {
		dt = cfg.FixedDT
	}
	dt *= math.Max(0, cfg.TimeScale)

	if cfg.Collisions {
		bodies = ResolveCollisions(bodies, cfg)
	}
	Accelerations(bodies, cfg)
	Integrate(bodies, cfg, dt)
	return bodies, ComputeDiagnostics(bodies, cfg.G, cfg.eps2())
}
