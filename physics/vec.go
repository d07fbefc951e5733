package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// clampLen caps v's length at maxLen, preserving direction.
// maxLen <= 0 disables the cap.
func clampLen(v mgl64.Vec2, maxLen float64) mgl64.Vec2 {
	if maxLen <= 0 {
		return v
	}
	l := v.Len()
	if l > maxLen {
		return v.Mul(maxLen / l)
	}
	return v
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec(v mgl64.Vec2) bool {
	return finite(v[0]) && finite(v[1])
}
