package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

/*

spatial partition acceleration structure.
point quadtree based on Barnes-Hut.
https://en.wikipedia.org/wiki/Barnes%E2%80%93Hut_simulation

*/

// quadrant order is fixed: NW, NE, SW, SE.
const (
	quadNW = iota
	quadNE
	quadSW
	quadSE
)

const noNode = int32(-1)

// below this half-extent, coincident bodies are chained in one leaf
// instead of subdividing forever.
const minLeafHalfSize = 1e-12

// treePoint is the per-body view the tree operates on. idx identifies
// the body so queries can skip self-interaction; next chains bodies
// that share a minimum-size leaf.
type treePoint struct {
	pos  mgl64.Vec2
	mass float64
	idx  int32
	next int32
}

type treeNode struct {
	center   mgl64.Vec2
	halfSize float64
	mass     float64
	com      mgl64.Vec2
	body     int32    // head of the point chain, noNode if empty
	children [4]int32 // all noNode for a leaf
}

func (n *treeNode) isLeaf() bool { return n.children[0] == noNode }

// tree is a Barnes-Hut quadtree over a snapshot of body positions.
// Nodes live in a flat arena indexed by int32, so no traversal recurses
// and the whole structure is discarded in one piece after the step.
// It is rebuilt from scratch every step; positions change every step,
// so there is nothing worth reusing.
type tree struct {
	nodes  []treeNode
	points []treePoint
}

// buildTree constructs a quadtree whose bounding square covers all the
// given positions, centered on the bounding-box midpoint. A degenerate
// (zero-size) box is padded to a half-extent of 1.
func buildTree(points []treePoint) *tree {
	t := &tree{points: points}
	if len(points) == 0 {
		return t
	}

	minX, maxX := points[0].pos[0], points[0].pos[0]
	minY, maxY := points[0].pos[1], points[0].pos[1]
	for i := range points {
		p := points[i].pos
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
		points[i].next = noNode
	}
	half := math.Max(maxX-minX, maxY-minY) * 0.5
	if half <= 0 {
		half = 1
	}

	t.nodes = make([]treeNode, 0, 2*len(points))
	t.newNode(mgl64.Vec2{(minX + maxX) * 0.5, (minY + maxY) * 0.5}, half)
	for i := range points {
		t.insert(int32(i))
	}
	t.aggregate()
	return t
}

func (t *tree) newNode(center mgl64.Vec2, halfSize float64) int32 {
	t.nodes = append(t.nodes, treeNode{
		center:   center,
		halfSize: halfSize,
		body:     noNode,
		children: [4]int32{noNode, noNode, noNode, noNode},
	})
	return int32(len(t.nodes) - 1)
}

func (t *tree) subdivide(ni int32) {
	c := t.nodes[ni].center
	hs := t.nodes[ni].halfSize * 0.5
	nw := t.newNode(mgl64.Vec2{c[0] - hs, c[1] - hs}, hs)
	t.newNode(mgl64.Vec2{c[0] + hs, c[1] - hs}, hs)
	t.newNode(mgl64.Vec2{c[0] - hs, c[1] + hs}, hs)
	t.newNode(mgl64.Vec2{c[0] + hs, c[1] + hs}, hs)
	t.nodes[ni].children = [4]int32{nw, nw + 1, nw + 2, nw + 3}
}

func quadrantOf(center, p mgl64.Vec2) int {
	east := p[0] > center[0]
	south := p[1] > center[1]
	if east {
		if south {
			return quadSE
		}
		return quadNE
	}
	if south {
		return quadSW
	}
	return quadNW
}

// insert places point pi in the tree without recursion. When a leaf is
// already occupied, it is subdivided and the resident body reinserted,
// repeated until the two bodies separate into distinct leaves.
func (t *tree) insert(pi int32) {
	ni := int32(0)
	for {
		n := &t.nodes[ni]
		if !n.isLeaf() {
			ni = n.children[quadrantOf(n.center, t.points[pi].pos)]
			continue
		}
		if n.body == noNode {
			n.body = pi
			return
		}
		if n.halfSize <= minLeafHalfSize {
			// coincident bodies: chain onto the leaf
			t.points[pi].next = n.body
			n.body = pi
			return
		}

		// occupied leaf: push the resident body down until it and the
		// incoming body no longer share a node
		existing := n.body
		t.subdivide(ni)
		t.nodes[ni].body = noNode
		ci := t.nodes[ni].children[quadrantOf(t.nodes[ni].center, t.points[existing].pos)]
		for {
			c := &t.nodes[ci]
			if !c.isLeaf() {
				ci = c.children[quadrantOf(c.center, t.points[existing].pos)]
				continue
			}
			if c.body == noNode {
				c.body = existing
				break
			}
			if c.halfSize <= minLeafHalfSize {
				t.points[existing].next = c.body
				c.body = existing
				break
			}
			displaced := c.body
			t.subdivide(ci)
			t.nodes[ci].body = noNode
			ci = t.nodes[ci].children[quadrantOf(t.nodes[ci].center, t.points[displaced].pos)]
			existing = displaced
		}
		ni = t.nodes[ni].children[quadrantOf(t.nodes[ni].center, t.points[pi].pos)]
	}
}

// aggregate computes each node's total mass and mass-weighted center of
// mass. Children are always appended after their parent, so a reverse
// index walk visits the arena in post-order.
func (t *tree) aggregate() {
	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := &t.nodes[i]
		if n.isLeaf() {
			n.mass = 0
			n.com = mgl64.Vec2{}
			for bi := n.body; bi != noNode; bi = t.points[bi].next {
				p := &t.points[bi]
				n.mass += p.mass
				n.com = n.com.Add(p.pos.Mul(p.mass))
			}
			if n.mass > 0 {
				n.com = n.com.Mul(1 / n.mass)
			}
			continue
		}
		var mass float64
		var com mgl64.Vec2
		for _, ci := range n.children {
			c := &t.nodes[ci]
			if c.mass > 0 {
				mass += c.mass
				com = com.Add(c.com.Mul(c.mass))
			}
		}
		n.mass = mass
		if mass > 0 {
			n.com = com.Mul(1 / mass)
		} else {
			n.com = mgl64.Vec2{}
		}
	}
}

// accel walks the tree with an explicit stack and returns the softened
// gravitational acceleration on target. Internal nodes whose extent is
// small relative to their distance ((halfSize·2)/d < theta) contribute
// as a single point mass at their center of mass; otherwise all four
// children are visited. Zero-mass nodes are skipped entirely.
func (t *tree) accel(target treePoint, theta, g, eps2 float64) mgl64.Vec2 {
	var acc mgl64.Vec2
	if len(t.nodes) == 0 {
		return acc
	}
	stack := make([]int32, 1, 64)
	stack[0] = 0
	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[ni]
		if n.mass <= 0 {
			continue
		}

		if n.isLeaf() {
			for bi := n.body; bi != noNode; bi = t.points[bi].next {
				p := &t.points[bi]
				if p.idx == target.idx {
					continue
				}
				dx := p.pos[0] - target.pos[0]
				dy := p.pos[1] - target.pos[1]
				r2 := dx*dx + dy*dy + eps2
				invR := 1 / math.Sqrt(r2)
				invR3 := invR * invR * invR
				acc[0] += g * p.mass * dx * invR3
				acc[1] += g * p.mass * dy * invR3
			}
			continue
		}

		dx := n.com[0] - target.pos[0]
		dy := n.com[1] - target.pos[1]
		dist := math.Sqrt(dx*dx + dy*dy)
		if (n.halfSize*2)/dist < theta {
			r2 := dx*dx + dy*dy + eps2
			invR := 1 / math.Sqrt(r2)
			invR3 := invR * invR * invR
			acc[0] += g * n.mass * dx * invR3
			acc[1] += g * n.mass * dy * invR3
		} else {
			stack = append(stack, n.children[0], n.children[1], n.children[2], n.children[3])
		}
	}
	return acc
}
