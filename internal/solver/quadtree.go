package solver

import (
	"math"

	"github.com/landxcape/nbody-sim-core/internal/vec2"
)

// quadNode is one node of the Barnes-Hut tree: its total mass, center of
// mass, and up to four children in canonical corner order
// (0=SW, 1=SE, 2=NW, 3=NE relative to its own center).
type quadNode struct {
	center    vec2.Vec2
	halfSize  float64
	mass      float64
	com       vec2.Vec2
	count     int
	bodyIndex int
	children  [4]*quadNode
}

func newQuadNode(center vec2.Vec2, halfSize float64) *quadNode {
	return &quadNode{center: center, halfSize: halfSize, bodyIndex: -1}
}

func (n *quadNode) isLeaf() bool {
	for _, c := range n.children {
		if c != nil {
			return false
		}
	}
	return true
}

// buildQuadtree bounds the live bodies' positions, then inserts each one.
// The bounding box is recomputed every tick so a moving swarm never drifts
// out of the tree's extent.
func buildQuadtree(positions []vec2.Vec2, aliveIndices []int, masses []float64) *quadNode {
	if len(aliveIndices) == 0 {
		return nil
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)

	for _, index := range aliveIndices {
		p := positions[index]
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	span := math.Max(math.Abs(maxX-minX), math.Abs(maxY-minY))
	span = math.Max(span, 1e-6)
	halfSize := 0.5*span + 1e-6
	center := vec2.New(0.5*(minX+maxX), 0.5*(minY+maxY))

	root := newQuadNode(center, halfSize)
	minHalf := math.Max(halfSize*1e-6, 1e-9)

	for _, index := range aliveIndices {
		root.insert(index, positions, masses, minHalf)
	}

	return root
}

func (n *quadNode) insert(index int, positions []vec2.Vec2, masses []float64, minHalf float64) {
	position := positions[index]
	mass := masses[index]

	if n.count == 0 {
		n.count = 1
		n.mass = mass
		n.com = position
		n.bodyIndex = index
		return
	}

	previousMass := n.mass
	nextMass := previousMass + mass
	if nextMass > 0 {
		n.com = n.com.Scale(previousMass).Add(position.Scale(mass)).Div(nextMass)
	}
	n.mass = nextMass
	n.count++

	if n.isLeaf() {
		if n.bodyIndex >= 0 {
			existingIndex := n.bodyIndex
			n.bodyIndex = -1

			sameSpot := positions[existingIndex].Sub(position).NormSquared() <= 1e-18
			if n.halfSize <= minHalf || sameSpot {
				return
			}

			n.ensureChildren()
			n.insertIntoChild(existingIndex, positions, masses, minHalf)
			n.insertIntoChild(index, positions, masses, minHalf)
			return
		}
		// Aggregated leaf already stores multiple bodies and cannot subdivide further.
		return
	}

	n.insertIntoChild(index, positions, masses, minHalf)
}

func (n *quadNode) insertIntoChild(index int, positions []vec2.Vec2, masses []float64, minHalf float64) {
	if n.isLeaf() {
		n.ensureChildren()
	}

	childIndex := n.childIndex(positions[index])
	if child := n.children[childIndex]; child != nil {
		child.insert(index, positions, masses, minHalf)
	}
}

func (n *quadNode) ensureChildren() {
	if !n.isLeaf() {
		return
	}

	childHalf := n.halfSize * 0.5
	for i := 0; i < 4; i++ {
		n.children[i] = newQuadNode(childCenter(n.center, childHalf, i), childHalf)
	}
}

func (n *quadNode) childIndex(position vec2.Vec2) int {
	x := 0
	if position.X >= n.center.X {
		x = 1
	}
	y := 0
	if position.Y >= n.center.Y {
		y = 2
	}
	return x + y
}

func childCenter(center vec2.Vec2, childHalf float64, index int) vec2.Vec2 {
	xOffset := -childHalf
	if index%2 != 0 {
		xOffset = childHalf
	}
	yOffset := -childHalf
	if index >= 2 {
		yOffset = childHalf
	}
	return vec2.New(center.X+xOffset, center.Y+yOffset)
}
