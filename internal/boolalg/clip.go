package boolalg

import (
	"math/big"
	"sort"

	"github.com/nestcore/nestcore/internal/geometry"
)

// op selects which Greiner-Hormann combination rule is applied during
// traversal: the three operations share a single tracing routine and
// differ only in how entry/exit flags are interpreted before the trace,
// per the standard recipe in Greiner & Hormann, "Efficient Clipping of
// Arbitrary Polygons" (1998).
type op int

const (
	opUnion op = iota
	opDifference
	opIntersection
)

type node struct {
	pt       geometry.Point
	isX      bool // intersection vertex
	entry    bool
	neighbor int
	visited  bool
	pairID   int
}

// clipSimple runs Greiner-Hormann clipping between two hole-free, simply
// connected CCW loops and returns the resulting boundary loops for the
// requested operation. Loops with zero pairwise intersections are handled
// up front via containment, since the general trace requires at least one
// intersection vertex to anchor on.
func clipSimple(subject, clip geometry.SimplePolygon, operation op) []geometry.SimplePolygon {
	subject = subject.OrientedCCW()
	clip = clip.OrientedCCW()

	subjNodes, clipNodes, anyX := buildNodeLists(subject, clip)
	if !anyX {
		return clipDisjointOrNested(subject, clip, operation)
	}

	markEntryExit(subjNodes, clip)
	markEntryExit(clipNodes, subject)
	applyOperationFlip(subjNodes, clipNodes, operation)

	return traceLoops(subjNodes, clipNodes)
}

// buildNodeLists inserts every pairwise edge intersection of subject and
// clip into both vertex lists, sorted along each edge by its intersection
// parameter, and links paired intersection vertices via neighbor indices.
func buildNodeLists(subject, clip geometry.SimplePolygon) ([]node, []node, bool) {
	type pending struct {
		alpha  big.Rat
		pt     geometry.Point
		pairID int
	}
	sIns := make(map[int][]pending)
	cIns := make(map[int][]pending)
	pairID := 0
	any := false

	ns, nc := subject.Len(), clip.Len()
	for i := 0; i < ns; i++ {
		a0, a1 := subject.At(i), subject.At(i+1)
		for j := 0; j < nc; j++ {
			b0, b1 := clip.At(j), clip.At(j+1)
			ix, ok := intersectSegments(a0, a1, b0, b1)
			if !ok {
				continue
			}
			any = true
			sIns[i] = append(sIns[i], pending{alpha: ix.tA, pt: ix.point, pairID: pairID})
			cIns[j] = append(cIns[j], pending{alpha: ix.tB, pt: ix.point, pairID: pairID})
			pairID++
		}
	}

	build := func(poly geometry.SimplePolygon, ins map[int][]pending) []node {
		var out []node
		n := poly.Len()
		for i := 0; i < n; i++ {
			out = append(out, node{pt: poly.At(i)})
			list := ins[i]
			sort.Slice(list, func(a, b int) bool { return list[a].alpha.Cmp(&list[b].alpha) < 0 })
			for _, p := range list {
				out = append(out, node{pt: p.pt, isX: true, pairID: p.pairID})
			}
		}
		return out
	}

	subjNodes := build(subject, sIns)
	clipNodes := build(clip, cIns)

	pairToClip := make(map[int]int)
	for idx, n := range clipNodes {
		if n.isX {
			pairToClip[n.pairID] = idx
		}
	}
	for idx := range subjNodes {
		if subjNodes[idx].isX {
			subjNodes[idx].neighbor = pairToClip[subjNodes[idx].pairID]
			clipNodes[pairToClip[subjNodes[idx].pairID]].neighbor = idx
		}
	}

	return subjNodes, clipNodes, any
}

// markEntryExit assigns the entry flag to every intersection vertex in
// nodes, which belongs to a loop being clipped against other. The first
// vertex's containment in other fixes the alternating parity.
func markEntryExit(nodes []node, other geometry.SimplePolygon) {
	if len(nodes) == 0 {
		return
	}
	status := !other.ContainsPoint(nodes[0].pt)
	for i := range nodes {
		if nodes[i].isX {
			status = !status
			nodes[i].entry = status
		}
	}
}

// applyOperationFlip adjusts entry flags per the union/difference/
// intersection recipe: intersection uses the raw flags, union flips both
// polygons' flags, and difference (subject minus clip) flips only the
// clip polygon's flags.
func applyOperationFlip(subjNodes, clipNodes []node, operation op) {
	switch operation {
	case opUnion:
		flip(subjNodes)
		flip(clipNodes)
	case opDifference:
		flip(clipNodes)
	case opIntersection:
	}
}

func flip(nodes []node) {
	for i := range nodes {
		if nodes[i].isX {
			nodes[i].entry = !nodes[i].entry
		}
	}
}

// traceLoops walks the linked intersection vertices to emit the resulting
// boundary loops, following the standard Greiner-Hormann traversal rule:
// from an entry vertex walk forward, from an exit vertex walk backward,
// jumping to the paired vertex in the other list whenever an intersection
// vertex is reached.
func traceLoops(subjNodes, clipNodes []node) []geometry.SimplePolygon {
	var loops []geometry.SimplePolygon

	for start := range subjNodes {
		if !subjNodes[start].isX || subjNodes[start].visited {
			continue
		}

		var loop []geometry.Point
		curList, curIdx := subjNodes, start
		for {
			node := &curList[curIdx]
			if node.visited && len(loop) > 0 {
				break
			}
			loop = append(loop, node.pt)
			node.visited = true
			forward := node.entry
			n := len(curList)
			for {
				if forward {
					curIdx = (curIdx + 1) % n
				} else {
					curIdx = (curIdx - 1 + n) % n
				}
				node = &curList[curIdx]
				loop = append(loop, node.pt)
				node.visited = true
				if node.isX {
					break
				}
			}
			nextIdx := node.neighbor
			if &curList[0] == &subjNodes[0] {
				curList = clipNodes
			} else {
				curList = subjNodes
			}
			curIdx = nextIdx
			if curList[curIdx].visited && curIdx == start && sameList(curList, subjNodes) {
				break
			}
			if len(loop) > (len(subjNodes)+len(clipNodes))*2+4 {
				break // safety valve against a malformed linkage cycling forever
			}
			if curList[curIdx].pt.Eq(loop[0]) {
				break
			}
		}
		loops = append(loops, geometry.SimplePolygon{Verts: dedupeLoop(loop)})
	}

	return loops
}

func sameList(a, b []node) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}

func dedupeLoop(pts []geometry.Point) []geometry.Point {
	out := pts[:0:0]
	for i, p := range pts {
		if i > 0 && p.Eq(pts[i-1]) {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0].Eq(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

// clipDisjointOrNested resolves the no-intersection case by containment:
// either the loops are disjoint, or one wholly contains the other.
func clipDisjointOrNested(subject, clip geometry.SimplePolygon, operation op) []geometry.SimplePolygon {
	subjInClip := clip.ContainsPoint(subject.At(0))
	clipInSubj := subject.ContainsPoint(clip.At(0))

	switch operation {
	case opUnion:
		switch {
		case subjInClip:
			return []geometry.SimplePolygon{clip}
		case clipInSubj:
			return []geometry.SimplePolygon{subject}
		default:
			return []geometry.SimplePolygon{subject, clip}
		}
	case opIntersection:
		switch {
		case subjInClip:
			return []geometry.SimplePolygon{subject}
		case clipInSubj:
			return []geometry.SimplePolygon{clip}
		default:
			return nil
		}
	case opDifference: // subject - clip
		switch {
		case clipInSubj:
			// clip carves a hole out of subject; represented by the caller
			// as a (outer, hole) pair rather than a single loop.
			return []geometry.SimplePolygon{subject, clip.OrientedCW()}
		case subjInClip:
			return nil
		default:
			return []geometry.SimplePolygon{subject}
		}
	}
	return nil
}
