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

import "sort"

// boolOp is the kind of set operation a pairwise polygon clip performs.
type boolOp uint8

const (
	opIntersect boolOp = iota
	opUnion
	opDiff
)

// ghVertex is one node of a Greiner-Hormann augmented polygon vertex list.
type ghVertex struct {
	pt       Point64
	isect    bool
	entry    bool
	alpha    float64
	pairID   int
	neighbor int // index into the other polygon's list; valid only if isect
	visited  bool
}

// Unite returns the union of all given paths, treating each as a filled
// region (holes are represented as separately listed, oppositely wound
// contours, Clipper-style; no tree is built).
func Unite(paths Paths64) (Paths64, error) {
	return UniteTwoSets(paths, nil)
}

// UniteTwoSets returns the union of the subject and clip path sets.
func UniteTwoSets(subject, clip Paths64) (Paths64, error) {
	result := make(Paths64, 0, len(subject))
	for _, p := range subject {
		result = append(result, clonePath(p))
	}
	for _, c := range clip {
		var err error
		result, err = mergeOneInto(result, c, opUnion)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Subtract returns subject with clip removed, as a flat path list (holes
// carved by clip appear as oppositely wound contours of the surviving
// subject outer boundary).
func Subtract(subject, clip Paths64) (Paths64, error) {
	result := make(Paths64, 0, len(subject))
	for _, p := range subject {
		result = append(result, clonePath(p))
	}
	for _, c := range clip {
		var err error
		result, err = subtractOneFrom(result, c)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// SubtractToTree is Subtract, additionally nesting the result into a
// PolyTree64 by containment.
func SubtractToTree(subject, clip Paths64) (*PolyTree64, error) {
	flat, err := Subtract(subject, clip)
	if err != nil {
		return nil, err
	}
	return buildTree(flat), nil
}

// IntersectToTree intersects subject with clip and nests the result into a
// PolyTree64 by containment, per spec: "intersect(subject, clip) returning a
// hierarchical polygon tree".
func IntersectToTree(subject, clip Paths64) (*PolyTree64, error) {
	flat, err := intersectFlat(subject, clip)
	if err != nil {
		return nil, err
	}
	return buildTree(flat), nil
}

// Intersect iteratively intersects a list of path sets two at a time,
// folding left to right, and returns the resulting tree.
func Intersect(sets []Paths64) (*PolyTree64, error) {
	if len(sets) == 0 {
		return &PolyTree64{}, nil
	}
	acc := sets[0]
	for _, next := range sets[1:] {
		var err error
		acc, err = intersectFlat(acc, next)
		if err != nil {
			return nil, err
		}
	}
	return buildTree(acc), nil
}

func intersectFlat(subject, clip Paths64) (Paths64, error) {
	var out Paths64
	for _, s := range subject {
		for _, c := range clip {
			pieces, ok, err := ghOp(s, c, opIntersect)
			if err != nil {
				return nil, err
			}
			if !ok {
				if containsPoint(c, s[0]) {
					out = append(out, clonePath(s))
				} else if containsPoint(s, c[0]) {
					out = append(out, clonePath(c))
				}
				continue
			}
			out = append(out, pieces...)
		}
	}
	return out, nil
}

// mergeOneInto unions a single new contour into an accumulated result set,
// repeatedly merging with any existing contour it overlaps until stable.
func mergeOneInto(result Paths64, p Path64, _ boolOp) (Paths64, error) {
	current := clonePath(p)
	for {
		mergedWith := -1
		var pieces Paths64
		for i, r := range result {
			out, ok, err := ghOp(current, r, opUnion)
			if err != nil {
				return nil, err
			}
			if !ok {
				if containsPoint(r, current[0]) {
					mergedWith = i
					pieces = Paths64{clonePath(r)}
					break
				}
				if containsPoint(current, r[0]) {
					mergedWith = i
					pieces = Paths64{clonePath(current)}
					break
				}
				continue
			}
			mergedWith = i
			pieces = out
			break
		}
		if mergedWith < 0 {
			result = append(result, current)
			return result, nil
		}
		result = append(result[:mergedWith], result[mergedWith+1:]...)
		if len(pieces) == 0 {
			return result, nil
		}
		current = pieces[0]
		for _, extra := range pieces[1:] {
			result = append(result, extra)
		}
	}
}

// subtractOneFrom removes contour c from every contour currently in result.
func subtractOneFrom(result Paths64, c Path64) (Paths64, error) {
	var out Paths64
	for _, r := range result {
		pieces, ok, err := ghOp(r, c, opDiff)
		if err != nil {
			return nil, err
		}
		if !ok {
			if containsPoint(c, r[0]) && !containsPoint(r, c[0]) {
				// r fully inside c: removed entirely.
				continue
			}
			if containsPoint(r, c[0]) {
				// c fully inside r: carve a hole.
				hole := clonePath(c)
				if isCCW(hole) {
					reversePath(hole)
				}
				out = append(out, clonePath(r), hole)
				continue
			}
			// Disjoint.
			out = append(out, clonePath(r))
			continue
		}
		out = append(out, pieces...)
	}
	return out, nil
}

// crossing is one transversal intersection point found between an edge of
// the subject contour and an edge of the clip contour.
type crossing struct {
	pt             Point64
	alphaS, alphaC float64
	id             int
}

// ghOp runs the Greiner-Hormann clip algorithm between two simple closed
// contours. ok is false when the contours do not cross at all (caller must
// fall back to a containment test).
func ghOp(subj, clip Path64, op boolOp) (Paths64, bool, error) {
	n, m := len(subj), len(clip)
	if n < 3 || m < 3 {
		return nil, false, nil
	}

	subjInserts := make([][]crossing, n)
	clipInserts := make([][]crossing, m)
	nextID := 0

	for i := 0; i < n; i++ {
		a1, a2 := subj[i], subj[(i+1)%n]
		for j := 0; j < m; j++ {
			b1, b2 := clip[j], clip[(j+1)%m]
			t, u, ok := segIntersect(a1, a2, b1, b2)
			if !ok {
				continue
			}
			pt := Point64{
				X: a1.X + int64(t*float64(a2.X-a1.X)),
				Y: a1.Y + int64(t*float64(a2.Y-a1.Y)),
			}
			c := crossing{pt: pt, alphaS: t, alphaC: u, id: nextID}
			nextID++
			subjInserts[i] = append(subjInserts[i], c)
			clipInserts[j] = append(clipInserts[j], c)
		}
	}
	if nextID == 0 {
		return nil, false, nil
	}
	for i := range subjInserts {
		sort.Slice(subjInserts[i], func(a, b int) bool { return subjInserts[i][a].alphaS < subjInserts[i][b].alphaS })
	}
	for j := range clipInserts {
		sort.Slice(clipInserts[j], func(a, b int) bool { return clipInserts[j][a].alphaC < clipInserts[j][b].alphaC })
	}

	subjList := buildGHList(subj, subjInserts)
	clipList := buildGHList(clip, clipInserts)

	idxByID := func(list []ghVertex) map[int]int {
		m := make(map[int]int, nextID)
		for i, v := range list {
			if v.isect {
				m[v.pairID] = i
			}
		}
		return m
	}
	subjIdx := idxByID(subjList)
	clipIdx := idxByID(clipList)
	for id, si := range subjIdx {
		ci := clipIdx[id]
		subjList[si].neighbor = ci
		clipList[ci].neighbor = si
	}

	startsOutsideClip := !containsPoint(clip, subj[0])
	flag := startsOutsideClip
	for i := range subjList {
		if subjList[i].isect {
			subjList[i].entry = flag
			flag = !flag
		}
	}
	startsOutsideSubj := !containsPoint(subj, clip[0])
	flag = startsOutsideSubj
	for i := range clipList {
		if clipList[i].isect {
			clipList[i].entry = flag
			flag = !flag
		}
	}

	flipSubj := op == opUnion
	flipClip := op == opUnion || op == opDiff

	effEntry := func(onSubj bool, v ghVertex) bool {
		if onSubj {
			if flipSubj {
				return !v.entry
			}
			return v.entry
		}
		if flipClip {
			return !v.entry
		}
		return v.entry
	}

	var out Paths64
	maxSteps := 4 * (n + m + 2*nextID) + 16
	for startIdx := range subjList {
		if !subjList[startIdx].isect || subjList[startIdx].visited {
			continue
		}
		if !effEntry(true, subjList[startIdx]) {
			continue
		}
		contour := Path64{subjList[startIdx].pt}
		onSubj := true
		idx := startIdx
		steps := 0
		for {
			steps++
			if steps > maxSteps {
				return nil, false, newLogicError("ghOp", "polygon walk did not terminate")
			}
			list := subjList
			if !onSubj {
				list = clipList
			}
			list[idx].visited = true
			forward := effEntry(onSubj, list[idx])
			size := len(list)
			for {
				if forward {
					idx = (idx + 1) % size
				} else {
					idx = (idx - 1 + size) % size
				}
				contour = append(contour, list[idx].pt)
				if list[idx].isect {
					break
				}
			}
			list[idx].visited = true
			nb := list[idx].neighbor
			onSubj = !onSubj
			idx = nb
			if onSubj && idx == startIdx {
				break
			}
		}
		if len(contour) >= 3 {
			out = append(out, contour)
		}
	}
	if len(out) == 0 {
		// All crossings were tangential/filtered; treat as no real crossing.
		return nil, false, nil
	}
	return out, true, nil
}

func buildGHList(orig Path64, inserts [][]crossing) []ghVertex {
	var out []ghVertex
	for i, p := range orig {
		out = append(out, ghVertex{pt: p})
		for _, c := range inserts[i] {
			out = append(out, ghVertex{pt: c.pt, isect: true, pairID: c.id})
		}
	}
	return out
}

// segIntersect computes the intersection of open segments (a1,a2) and
// (b1,b2), returning the parametric positions t in (0,1) along a and u in
// (0,1) along b. Endpoint-touching and collinear overlaps are reported as
// "no crossing": they are not generic transversal intersections and the
// caller's containment fallback handles the resulting shapes well enough
// for the DRC's purposes (clearance/violation non-emptiness, not exact
// boundary reconstruction of degenerate touching inputs).
func segIntersect(a1, a2, b1, b2 Point64) (t, u float64, ok bool) {
	rx := float64(a2.X - a1.X)
	ry := float64(a2.Y - a1.Y)
	sx := float64(b2.X - b1.X)
	sy := float64(b2.Y - b1.Y)
	denom := rx*sy - ry*sx
	if denom == 0 {
		return 0, 0, false
	}
	qpx := float64(b1.X - a1.X)
	qpy := float64(b1.Y - a1.Y)
	t = (qpx*sy - qpy*sx) / denom
	u = (qpx*ry - qpy*rx) / denom
	const eps = 1e-9
	if t <= eps || t >= 1-eps || u <= eps || u >= 1-eps {
		return 0, 0, false
	}
	return t, u, true
}

// containsPoint reports whether pt lies inside poly via even-odd ray
// casting. Orientation-independent.
func containsPoint(poly Path64, pt Point64) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
			xint := float64(pj.X-pi.X)*float64(pt.Y-pi.Y)/float64(pj.Y-pi.Y) + float64(pi.X)
			if float64(pt.X) < xint {
				inside = !inside
			}
		}
	}
	return inside
}

// buildTree nests a flat contour list into a PolyTree64 by containment:
// a contour becomes a child of the smallest-area contour (of opposite
// sign) that contains one of its points.
func buildTree(flat Paths64) *PolyTree64 {
	tree := &PolyTree64{}
	nodes := make([]*PolyPath64, len(flat))
	for i, p := range flat {
		nodes[i] = &PolyPath64{Polygon: p, IsHole: !isCCW(p)}
	}
	order := make([]int, len(flat))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return abs64(area(flat[order[a]])) < abs64(area(flat[order[b]]))
	})
	for _, i := range order {
		n := nodes[i]
		var parent *PolyPath64
		bestArea := int64(-1)
		for _, j := range order {
			if i == j || len(n.Polygon) == 0 {
				continue
			}
			cand := nodes[j]
			if len(cand.Polygon) == 0 || cand == n {
				continue
			}
			if cand.IsHole == n.IsHole {
				continue
			}
			if !containsPoint(cand.Polygon, n.Polygon[0]) {
				continue
			}
			a := abs64(area(cand.Polygon))
			if bestArea == -1 || a < bestArea {
				bestArea = a
				parent = cand
			}
		}
		if parent != nil {
			n.Parent = parent
			parent.Children = append(parent.Children, n)
		} else {
			tree.Children = append(tree.Children, n)
		}
	}
	return tree
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
