package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

/*

gravity field section

*/

// Accelerations computes the net gravitational acceleration on every
// valid body and writes it to Body.Acc. Bodies with non-finite state or
// non-positive mass are excluded entirely for this step: they exert no
// force and their own acceleration is left untouched. Pinned bodies get
// a zero acceleration but still attract everything else.
//
// Above cfg.BHThreshold bodies the field is evaluated through a fresh
// Barnes-Hut quadtree; below it, all pairs are computed directly, each
// pair once with equal-and-opposite contributions.
func Accelerations(bodies []*Body, cfg *Config) {
	pts := make([]treePoint, 0, len(bodies))
	sel := make([]*Body, 0, len(bodies))
	for _, b := range bodies {
		if b == nil || !b.Valid() {
			continue
		}
		pts = append(pts, treePoint{pos: b.Pos, mass: b.Mass, idx: int32(len(pts))})
		sel = append(sel, b)
	}
	n := len(sel)
	if n == 0 {
		return
	}

	g := cfg.G
	eps2 := cfg.eps2()
	acc := make([]mgl64.Vec2, n)

	if n > cfg.BHThreshold {
		t := buildTree(pts)
		for i := 0; i < n; i++ {
			if sel[i].Pinned {
				continue
			}
			acc[i] = t.accel(pts[i], cfg.BHTheta, g, eps2)
		}
	} else {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := pts[j].pos[0] - pts[i].pos[0]
				dy := pts[j].pos[1] - pts[i].pos[1]
				r2 := dx*dx + dy*dy + eps2
				invR := 1 / math.Sqrt(r2)
				invR3 := invR * invR * invR
				if !sel[i].Pinned {
					acc[i][0] += g * pts[j].mass * dx * invR3
					acc[i][1] += g * pts[j].mass * dy * invR3
				}
				if !sel[j].Pinned {
					acc[j][0] -= g * pts[i].mass * dx * invR3
					acc[j][1] -= g * pts[i].mass * dy * invR3
				}
			}
		}
	}

	for i := 0; i < n; i++ {
		sel[i].Acc = acc[i]
	}
}
