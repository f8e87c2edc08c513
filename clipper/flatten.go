// LibrePCB - Professional EDA for everyone!
// Copyright (C) 2013 LibrePCB Developers, 2013 Urban Bruhin
// https://librepcb.org/
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package clipper

import (
	"math"
	"sort"
)

// FlattenTree collapses a PolyTree64 into a flat list of single closed
// contours, one per filled region, with every nested hole cut into its
// parent outline via a zero-width seam rather than kept as a separate
// oppositely-wound contour. Downstream consumers that only understand a
// single outer boundary per shape (board outline checks, silkscreen stroke
// generation) use this instead of walking the tree directly.
//
// Islands nested inside a hole (filled regions surrounded by open space
// inside another shape) are not part of that shape's outline and come back
// as additional, independent entries in the result.
func FlattenTree(tree *PolyTree64) (Paths64, error) {
	var out Paths64
	var walk func(nodes []*PolyPath64) error
	walk = func(nodes []*PolyPath64) error {
		for _, n := range nodes {
			if n.IsHole {
				// An un-parented hole has nothing to be cut from; only its
				// island children (if any) contribute filled area.
				if err := walk(n.Children); err != nil {
					return err
				}
				continue
			}
			flat, err := flattenOuter(n)
			if err != nil {
				return err
			}
			out = append(out, flat)
			for _, h := range n.Children {
				if h.IsHole {
					if err := walk(h.Children); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
	if err := walk(tree.Children); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenOuter(n *PolyPath64) (Path64, error) {
	var holes Paths64
	for _, c := range n.Children {
		if c.IsHole {
			holes = append(holes, c.Polygon)
		}
	}
	return spliceHoles(n.Polygon, holes)
}

// spliceHoles cuts each of holes into outer in ascending order of the
// hole's lowest-Y vertex, so that seams are carved from the bottom up and
// never cross one another.
func spliceHoles(outer Path64, holes Paths64) (Path64, error) {
	if len(holes) == 0 {
		return clonePath(outer), nil
	}

	rotated := make(Paths64, len(holes))
	for i, h := range holes {
		rotated[i] = rotateToLowestY(h)
	}
	order := make([]int, len(rotated))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return rotated[order[a]][0].Y < rotated[order[b]][0].Y
	})

	current := clonePath(outer)
	for _, idx := range order {
		hole := rotated[idx]
		if len(hole) == 0 {
			continue
		}
		entry := hole[0]
		seam, edgeIdx, ok := findSeam(current, entry)
		if !ok {
			return nil, newLogicError("spliceHoles", "no seam could be found for a hole's entry vertex")
		}
		current = spliceOne(current, edgeIdx, seam, hole)
	}
	return current, nil
}

// rotateToLowestY returns h rotated so it starts at its lowest-Y vertex
// (ties broken by lowest X), giving every hole a canonical, deterministic
// entry point to cut a seam from.
func rotateToLowestY(h Path64) Path64 {
	best := 0
	for i := 1; i < len(h); i++ {
		if h[i].Y < h[best].Y || (h[i].Y == h[best].Y && h[i].X < h[best].X) {
			best = i
		}
	}
	out := make(Path64, len(h))
	for i := range h {
		out[i] = h[(best+i)%len(h)]
	}
	return out
}

// findSeam finds the point on contour directly below entry (smaller Y, same
// X) that is nearest to it, i.e. the nearest vertical projection below the
// seam entry. It returns that point and the index of the edge it falls on,
// so the caller can splice the hole in right after that edge's first
// vertex.
func findSeam(contour Path64, entry Point64) (Point64, int, bool) {
	n := len(contour)
	bestIdx := -1
	var bestPt Point64
	bestY := int64(math.MinInt64)

	consider := func(i int, y int64, pt Point64) {
		if y < entry.Y && y > bestY {
			bestY = y
			bestIdx = i
			bestPt = pt
		}
	}

	for i := 0; i < n; i++ {
		a := contour[i]
		b := contour[(i+1)%n]
		if a.X == b.X {
			if a.X != entry.X {
				continue
			}
			consider(i, a.Y, a)
			consider(i, b.Y, b)
			continue
		}
		lo, hi := a.X, b.X
		if lo > hi {
			lo, hi = hi, lo
		}
		if entry.X < lo || entry.X > hi {
			continue
		}
		t := float64(entry.X-a.X) / float64(b.X-a.X)
		y := a.Y + int64(math.Round(t*float64(b.Y-a.Y)))
		consider(i, y, Point64{X: entry.X, Y: y})
	}
	if bestIdx < 0 {
		return Point64{}, -1, false
	}
	return bestPt, bestIdx, true
}

// spliceOne inserts hole into contour right after edge edgeIdx, entering and
// leaving through seam, producing a single closed contour with a zero-width
// cut rather than a separately wound inner ring.
func spliceOne(contour Path64, edgeIdx int, seam Point64, hole Path64) Path64 {
	out := make(Path64, 0, len(contour)+len(hole)+3)
	out = append(out, contour[:edgeIdx+1]...)
	out = append(out, seam)
	out = append(out, hole...)
	out = append(out, hole[0])
	out = append(out, seam)
	out = append(out, contour[edgeIdx+1:]...)
	return out
}
