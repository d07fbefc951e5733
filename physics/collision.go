package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

/*

collision section

*/

// ResolveCollisions detects overlapping bodies (center distance ≤ sum
// of radii) and resolves them per cfg.CollisionMode, returning the
// surviving body slice. Detection runs over a snapshot of the valid
// bodies; merged-away bodies are collected and removed only after the
// whole pass completes.
func ResolveCollisions(bodies []*Body, cfg *Config) []*Body {
	snap := make([]*Body, 0, len(bodies))
	radii := make([]float64, 0, len(bodies))
	for _, b := range bodies {
		if b == nil || !b.Valid() {
			continue
		}
		snap = append(snap, b)
		radii = append(radii, b.EffectiveRadius(cfg.Density))
	}
	n := len(snap)
	if n < 2 {
		return bodies
	}

	var killed map[*Body]bool
	dead := make([]bool, n)
	for i := 0; i < n; i++ {
		if dead[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if dead[j] {
				continue
			}
			a, b := snap[i], snap[j]
			d := b.Pos.Sub(a.Pos)
			rsum := radii[i] + radii[j]
			dist2 := d[0]*d[0] + d[1]*d[1]
			if dist2 > rsum*rsum {
				continue
			}

			if cfg.CollisionMode == ElasticCollisions {
				resolveElastic(a, b, d, dist2, rsum)
				continue
			}

			if a.Pinned && b.Pinned {
				continue // immovables never merge
			}
			s, gone := survivorOf(a, b)
			merge(s, gone, cfg.Density)
			if killed == nil {
				killed = make(map[*Body]bool)
			}
			killed[gone] = true
			if gone == b {
				dead[j] = true
				radii[i] = s.EffectiveRadius(cfg.Density)
			} else {
				dead[i] = true
				radii[j] = s.EffectiveRadius(cfg.Density)
				break
			}
		}
	}

	if killed == nil {
		return bodies
	}
	out := make([]*Body, 0, len(bodies)-len(killed))
	for _, b := range bodies {
		if b != nil && !killed[b] {
			out = append(out, b)
		}
	}
	return out
}

// survivorOf picks the surviving and destroyed body of a merging pair.
// A pinned body always survives; otherwise the heavier does, with mass
// ties favoring the first-indexed body (the ≥ below).
func survivorOf(a, b *Body) (s, d *Body) {
	switch {
	case a.Pinned:
		return a, b
	case b.Pinned:
		return b, a
	case a.Mass >= b.Mass:
		return a, b
	default:
		return b, a
	}
}

// merge folds d into s, conserving mass and momentum: combined velocity
// and position are momentum- and mass-weighted. The survivor's radius
// is re-derived from the combined mass and its acceleration history
// cleared. A pinned survivor keeps its own position and velocity.
func merge(s, d *Body, density float64) {
	m := s.Mass + d.Mass
	if !s.Pinned {
		s.Vel = s.Vel.Mul(s.Mass).Add(d.Vel.Mul(d.Mass)).Mul(1 / m)
		s.Pos = s.Pos.Mul(s.Mass).Add(d.Pos.Mul(d.Mass)).Mul(1 / m)
	}
	s.Mass = m
	s.Radius = RadiusFromMass(m, density)
	s.Acc = mgl64.Vec2{}
	s.PrevAcc = mgl64.Vec2{}
}

// resolveElastic applies a two-body elastic collision response along
// the connecting normal, then separates any remaining penetration with
// a correction weighted by inverse mass (pinned bodies contribute no
// correction and do not move).
func resolveElastic(a, b *Body, d mgl64.Vec2, dist2, rsum float64) {
	if a.Pinned && b.Pinned {
		return
	}

	dist := math.Sqrt(math.Max(dist2, 1e-20))
	nrm := mgl64.Vec2{1, 0}
	if dist > 0 {
		nrm = d.Mul(1 / dist)
	}

	m1, m2 := a.Mass, b.Mass
	v1, v2 := a.Vel, b.Vel
	switch {
	case !a.Pinned && !b.Pinned:
		x12 := a.Pos.Sub(b.Pos)
		l2 := math.Max(1e-20, x12.Dot(x12))
		k := v1.Sub(v2).Dot(x12) / l2
		a.Vel = v1.Sub(x12.Mul(2 * m2 / (m1 + m2) * k))
		b.Vel = v2.Add(x12.Mul(2 * m1 / (m1 + m2) * k))
	case a.Pinned:
		// reflect the free body's velocity about the normal
		b.Vel = v2.Sub(nrm.Mul(2 * v2.Dot(nrm)))
	default:
		a.Vel = v1.Sub(nrm.Mul(2 * v1.Dot(nrm)))
	}

	if pen := rsum - dist; pen > 0 {
		var invA, invB float64
		if !a.Pinned {
			invA = 1 / m1
		}
		if !b.Pinned {
			invB = 1 / m2
		}
		if inv := invA + invB; inv > 0 {
			corr := nrm.Mul(pen / inv)
			a.Pos = a.Pos.Sub(corr.Mul(invA))
			b.Pos = b.Pos.Add(corr.Mul(invB))
		}
	}
}
