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

import "math"

const floatingPointTolerance = 1e-6

type pointD struct{ X, Y float64 }

func (p pointD) negate() pointD { return pointD{-p.X, -p.Y} }

func crossProductD(a, b pointD) float64 { return a.X*b.Y - a.Y*b.X }
func dotProduct(a, b pointD) float64    { return a.X*b.X + a.Y*b.Y }

func getUnitNormal(a, b Point64) pointD {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return pointD{}
	}
	return pointD{dy / length, -dx / length}
}

func getPerpendicD(pt Point64, norm pointD, delta float64) pointD {
	return pointD{float64(pt.X) + norm.X*delta, float64(pt.Y) + norm.Y*delta}
}

func getPerpendic(pt Point64, norm pointD, delta float64) Point64 {
	p := getPerpendicD(pt, norm, delta)
	return Point64{int64(math.Round(p.X)), int64(math.Round(p.Y))}
}

func translatePoint(p pointD, dx, dy float64) pointD { return pointD{p.X + dx, p.Y + dy} }

func getAvgUnitVector(a, b pointD) pointD {
	s := pointD{a.X + b.X, a.Y + b.Y}
	length := math.Hypot(s.X, s.Y)
	if length == 0 {
		return pointD{}
	}
	return pointD{s.X / length, s.Y / length}
}

func getSegmentIntersectPtD(a1, a2, b1, b2 pointD) (pointD, bool) {
	rx, ry := a2.X-a1.X, a2.Y-a1.Y
	sx, sy := b2.X-b1.X, b2.Y-b1.Y
	denom := rx*sy - ry*sx
	if denom == 0 {
		return pointD{}, false
	}
	qpx, qpy := b1.X-a1.X, b1.Y-a1.Y
	t := (qpx*sy - qpy*sx) / denom
	return pointD{a1.X + t*rx, a1.Y + t*ry}, true
}

func reflectPoint(pt, about pointD) pointD {
	return pointD{2*about.X - pt.X, 2*about.Y - pt.Y}
}

func ellipse64(center Point64, rx, ry float64, steps int) Path64 {
	if steps < 3 {
		steps = 3
	}
	out := make(Path64, steps)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		out[i] = Point64{
			X: center.X + int64(math.Round(rx*math.Cos(a))),
			Y: center.Y + int64(math.Round(ry*math.Sin(a))),
		}
	}
	return out
}

// offsetGroup is a group of paths sharing the same join/end type, exactly
// mirroring clipper.offset.h's grouping so that mixed stroke/polygon offset
// batches don't cross-contaminate their join styles.
type offsetGroup struct {
	pathsIn       Paths64
	lowestPathIdx *int
	isReversed    bool
	joinType      JoinType
	endType       EndType
}

func newOffsetGroup(paths Paths64, joinType JoinType, endType EndType) offsetGroup {
	group := offsetGroup{pathsIn: make(Paths64, len(paths)), joinType: joinType, endType: endType}
	isJoined := endType == EndPolygon || endType == EndJoined
	for i, p := range paths {
		group.pathsIn[i] = stripDuplicates(p, isJoined)
	}
	if endType == EndPolygon {
		idx, isNeg := getLowestClosedPathInfo(group.pathsIn)
		group.lowestPathIdx = idx
		if idx != nil && isNeg {
			group.isReversed = true
		}
	}
	return group
}

func getLowestClosedPathInfo(paths Paths64) (*int, bool) {
	best := -1
	var bestPt Point64
	for i, p := range paths {
		if len(p) == 0 {
			continue
		}
		for _, pt := range p {
			if best < 0 || pt.Y > bestPt.Y || (pt.Y == bestPt.Y && pt.X < bestPt.X) {
				best = i
				bestPt = pt
			}
		}
	}
	if best < 0 {
		return nil, false
	}
	idx := best
	return &idx, area(paths[best]) < 0
}

func stripDuplicates(p Path64, isClosed bool) Path64 {
	if len(p) == 0 {
		return p
	}
	out := make(Path64, 0, len(p))
	out = append(out, p[0])
	for i := 1; i < len(p); i++ {
		if p[i] != p[i-1] {
			out = append(out, p[i])
		}
	}
	if isClosed && len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

func negatePath(p []pointD) {
	for i := range p {
		p[i] = p[i].negate()
	}
}

// Offsetter performs polygon offsetting (inflation/deflation). Callers
// configure it once and Execute it per delta, the same discipline the
// accumulator types elsewhere in this module follow.
type Offsetter struct {
	miterLimit        float64
	arcTolerance      float64
	preserveCollinear bool
	reverseSolution   bool

	groups []offsetGroup

	norms      []pointD
	pathOut    Path64
	delta      float64
	groupDelta float64
	tempLim    float64

	stepsPerRad float64
	stepSin     float64
	stepCos     float64
}

// NewOffsetter creates an Offsetter with the given miter limit and arc
// tolerance (in nanometers; pass geom.MaxArcTolerance for DRC clearance
// offsets, per spec).
func NewOffsetter(miterLimit, arcTolerance float64) *Offsetter {
	return &Offsetter{miterLimit: miterLimit, arcTolerance: arcTolerance}
}

// AddPath adds a single path to be offset.
func (co *Offsetter) AddPath(path Path64, joinType JoinType, endType EndType) {
	co.groups = append(co.groups, newOffsetGroup(Paths64{path}, joinType, endType))
}

// AddPaths adds multiple paths sharing the same join/end type.
func (co *Offsetter) AddPaths(paths Paths64, joinType JoinType, endType EndType) {
	if len(paths) == 0 {
		return
	}
	co.groups = append(co.groups, newOffsetGroup(paths, joinType, endType))
}

// Clear removes all queued paths.
func (co *Offsetter) Clear() {
	co.groups = nil
	co.norms = nil
}

func (co *Offsetter) buildNormals(path Path64) {
	co.norms = co.norms[:0]
	if len(path) == 0 {
		return
	}
	for i := 0; i < len(path)-1; i++ {
		co.norms = append(co.norms, getUnitNormal(path[i], path[i+1]))
	}
	co.norms = append(co.norms, getUnitNormal(path[len(path)-1], path[0]))
}

func (co *Offsetter) doBevel(path Path64, j, k int) {
	var pt1, pt2 pointD
	if j == k {
		absDelta := math.Abs(co.groupDelta)
		pt1 = pointD{float64(path[j].X) - absDelta*co.norms[j].X, float64(path[j].Y) - absDelta*co.norms[j].Y}
		pt2 = pointD{float64(path[j].X) + absDelta*co.norms[j].X, float64(path[j].Y) + absDelta*co.norms[j].Y}
	} else {
		pt1 = pointD{float64(path[j].X) + co.groupDelta*co.norms[k].X, float64(path[j].Y) + co.groupDelta*co.norms[k].Y}
		pt2 = pointD{float64(path[j].X) + co.groupDelta*co.norms[j].X, float64(path[j].Y) + co.groupDelta*co.norms[j].Y}
	}
	co.pathOut = append(co.pathOut,
		Point64{int64(math.Round(pt1.X)), int64(math.Round(pt1.Y))},
		Point64{int64(math.Round(pt2.X)), int64(math.Round(pt2.Y))})
}

func (co *Offsetter) doMiter(path Path64, j, k int, cosA float64) {
	q := co.groupDelta / (cosA + 1)
	pt := Point64{
		X: int64(math.Round(float64(path[j].X) + (co.norms[k].X+co.norms[j].X)*q)),
		Y: int64(math.Round(float64(path[j].Y) + (co.norms[k].Y+co.norms[j].Y)*q)),
	}
	co.pathOut = append(co.pathOut, pt)
}

func (co *Offsetter) doSquare(path Path64, j, k int) {
	var v pointD
	if j == k {
		v = pointD{co.norms[j].Y, -co.norms[j].X}
	} else {
		v = getAvgUnitVector(pointD{-co.norms[k].Y, co.norms[k].X}, pointD{co.norms[j].Y, -co.norms[j].X})
	}
	absDelta := math.Abs(co.groupDelta)
	ptQ := translatePoint(pointD{float64(path[j].X), float64(path[j].Y)}, absDelta*v.X, absDelta*v.Y)
	pt1 := translatePoint(ptQ, co.groupDelta*v.Y, co.groupDelta*-v.X)
	pt2 := translatePoint(ptQ, co.groupDelta*-v.Y, co.groupDelta*v.X)
	pt3 := getPerpendicD(path[k], co.norms[k], co.groupDelta)

	var pt pointD
	if j == k {
		pt4 := pointD{pt3.X + v.X*co.groupDelta, pt3.Y + v.Y*co.groupDelta}
		pt = ptQ
		if ip, ok := getSegmentIntersectPtD(pt1, pt2, pt3, pt4); ok {
			pt = ip
		}
		co.pathOut = append(co.pathOut,
			Point64{int64(math.Round(reflectPoint(pt, ptQ).X)), int64(math.Round(reflectPoint(pt, ptQ).Y))},
			Point64{int64(math.Round(pt.X)), int64(math.Round(pt.Y))})
	} else {
		pt4 := getPerpendicD(path[j], co.norms[k], co.groupDelta)
		pt = ptQ
		if ip, ok := getSegmentIntersectPtD(pt1, pt2, pt3, pt4); ok {
			pt = ip
		}
		co.pathOut = append(co.pathOut,
			Point64{int64(math.Round(pt.X)), int64(math.Round(pt.Y))},
			Point64{int64(math.Round(reflectPoint(pt, ptQ).X)), int64(math.Round(reflectPoint(pt, ptQ).Y))})
	}
}

func (co *Offsetter) doRound(path Path64, j, k int, angle float64) {
	pt := path[j]
	offsetVec := pointD{co.norms[k].X * co.groupDelta, co.norms[k].Y * co.groupDelta}
	if j == k {
		offsetVec = offsetVec.negate()
	}
	co.pathOut = append(co.pathOut, Point64{pt.X + int64(math.Round(offsetVec.X)), pt.Y + int64(math.Round(offsetVec.Y))})

	steps := int(math.Ceil(co.stepsPerRad * math.Abs(angle)))
	for i := 1; i < steps; i++ {
		oldX := offsetVec.X
		offsetVec.X = offsetVec.X*co.stepCos - co.stepSin*offsetVec.Y
		offsetVec.Y = oldX*co.stepSin + offsetVec.Y*co.stepCos
		co.pathOut = append(co.pathOut, Point64{pt.X + int64(math.Round(offsetVec.X)), pt.Y + int64(math.Round(offsetVec.Y))})
	}
	co.pathOut = append(co.pathOut, getPerpendic(path[j], co.norms[j], co.groupDelta))
}

func (co *Offsetter) offsetPoint(group *offsetGroup, path Path64, j, k int) {
	if path[j] == path[k] {
		return
	}
	sinA := crossProductD(co.norms[j], co.norms[k])
	cosA := dotProduct(co.norms[j], co.norms[k])
	if sinA > 1 {
		sinA = 1
	} else if sinA < -1 {
		sinA = -1
	}
	if math.Abs(co.groupDelta) <= floatingPointTolerance {
		co.pathOut = append(co.pathOut, path[j])
		return
	}
	switch {
	case cosA > -0.999 && sinA*co.groupDelta < 0:
		co.pathOut = append(co.pathOut,
			getPerpendic(path[j], co.norms[k], co.groupDelta),
			path[j],
			getPerpendic(path[j], co.norms[j], co.groupDelta))
	case cosA > 0.999 && group.joinType != JoinRound:
		co.doMiter(path, j, k, cosA)
	case group.joinType == JoinRound:
		co.doRound(path, j, k, math.Atan2(sinA, cosA))
	case group.joinType == JoinMiter:
		if cosA > co.tempLim-1 {
			co.doMiter(path, j, k, cosA)
		} else {
			co.doSquare(path, j, k)
		}
	case group.joinType == JoinBevel:
		co.doBevel(path, j, k)
	default:
		co.doSquare(path, j, k)
	}
}

func (co *Offsetter) offsetPolygon(group *offsetGroup, path Path64) {
	co.pathOut = make(Path64, 0, len(path)*2)
	for j := 0; j < len(path); j++ {
		k := j - 1
		if k < 0 {
			k = len(path) - 1
		}
		co.offsetPoint(group, path, j, k)
	}
}

func (co *Offsetter) offsetOpenJoined(group *offsetGroup, path Path64) Paths64 {
	var solution Paths64
	co.offsetPolygon(group, path)
	reversePathCopy := make(Path64, len(path))
	for i := range path {
		reversePathCopy[i] = path[len(path)-1-i]
	}
	for i, j := 0, len(co.norms)-1; i < j; i, j = i+1, j-1 {
		co.norms[i], co.norms[j] = co.norms[j], co.norms[i]
	}
	if len(co.norms) > 0 {
		last := co.norms[len(co.norms)-1]
		copy(co.norms[1:], co.norms[:len(co.norms)-1])
		co.norms[0] = last
	}
	negatePath(co.norms)
	co.offsetPolygon(group, reversePathCopy)
	if len(co.pathOut) > 0 {
		solution = append(solution, co.pathOut)
	}
	return solution
}

func (co *Offsetter) offsetOpenPath(group *offsetGroup, path Path64) Paths64 {
	var solution Paths64
	co.pathOut = make(Path64, 0, len(path)*2)
	highI := len(path) - 1

	if math.Abs(co.groupDelta) <= floatingPointTolerance {
		co.pathOut = append(co.pathOut, path[0])
	} else {
		switch group.endType {
		case EndButt:
			co.doBevel(path, 0, 0)
		case EndRound:
			co.doRound(path, 0, 0, math.Pi)
		default:
			co.doSquare(path, 0, 0)
		}
	}
	for j := 1; j < highI; j++ {
		co.offsetPoint(group, path, j, j-1)
	}
	for i := highI; i > 0; i-- {
		co.norms[i] = co.norms[i-1].negate()
	}
	co.norms[0] = co.norms[highI]

	if math.Abs(co.groupDelta) <= floatingPointTolerance {
		co.pathOut = append(co.pathOut, path[highI])
	} else {
		switch group.endType {
		case EndButt:
			co.doBevel(path, highI, highI)
		case EndRound:
			co.doRound(path, highI, highI, math.Pi)
		default:
			co.doSquare(path, highI, highI)
		}
	}
	for j := highI - 1; j > 0; j-- {
		co.offsetPoint(group, path, j, j+1)
	}
	if len(co.pathOut) > 0 {
		solution = append(solution, co.pathOut)
	}
	return solution
}

const arcConst = 0.25

func (co *Offsetter) doGroupOffset(group *offsetGroup) Paths64 {
	var solution Paths64
	if group.endType == EndPolygon {
		if group.lowestPathIdx == nil {
			co.delta = math.Abs(co.delta)
		}
		if group.isReversed {
			co.groupDelta = -co.delta
		} else {
			co.groupDelta = co.delta
		}
	} else {
		co.groupDelta = math.Abs(co.delta)
	}
	absDelta := math.Abs(co.groupDelta)

	if group.joinType == JoinRound || group.endType == EndRound {
		var arcTol float64
		if co.arcTolerance > floatingPointTolerance {
			arcTol = math.Min(absDelta, co.arcTolerance)
		} else {
			arcTol = absDelta * arcConst
		}
		stepsPerRad360 := math.Min(math.Pi/math.Acos(1-arcTol/absDelta), absDelta*math.Pi)
		co.stepSin = math.Sin(2 * math.Pi / stepsPerRad360)
		co.stepCos = math.Cos(2 * math.Pi / stepsPerRad360)
		if co.groupDelta < 0 {
			co.stepSin = -co.stepSin
		}
		co.stepsPerRad = stepsPerRad360 / (2 * math.Pi)
	}

	for _, path := range group.pathsIn {
		pathLen := len(path)
		if pathLen == 0 {
			continue
		}
		if pathLen == 1 {
			if co.groupDelta < 1 {
				continue
			}
			pt := path[0]
			if group.joinType == JoinRound {
				var steps int
				if co.stepsPerRad > 0 {
					steps = int(math.Ceil(co.stepsPerRad * 2 * math.Pi))
				}
				co.pathOut = ellipse64(pt, absDelta, absDelta, steps)
			} else {
				d := int64(math.Ceil(absDelta))
				co.pathOut = Path64{
					{pt.X - d, pt.Y - d}, {pt.X + d, pt.Y - d},
					{pt.X + d, pt.Y + d}, {pt.X - d, pt.Y + d},
				}
			}
			if len(co.pathOut) > 0 {
				solution = append(solution, co.pathOut)
			}
			continue
		}

		endType := group.endType
		if pathLen == 2 && group.endType == EndJoined {
			if group.joinType == JoinRound {
				endType = EndRound
			} else {
				endType = EndSquare
			}
		}
		co.buildNormals(path)
		switch endType {
		case EndPolygon:
			co.offsetPolygon(group, path)
			if len(co.pathOut) > 0 {
				solution = append(solution, co.pathOut)
			}
		case EndJoined:
			solution = append(solution, co.offsetOpenJoined(group, path)...)
		default:
			solution = append(solution, co.offsetOpenPath(group, path)...)
		}
	}
	return solution
}

// Execute offsets every queued path by delta (positive grows, negative
// shrinks) and passes the result through Unite. When |delta| is below 0.5
// the queued paths are returned as they are, without Unite.
func (co *Offsetter) Execute(delta float64) (Paths64, error) {
	var solution Paths64
	if len(co.groups) == 0 {
		return solution, nil
	}
	co.delta = delta
	if math.Abs(delta) < 0.5 {
		for _, g := range co.groups {
			solution = append(solution, g.pathsIn...)
		}
		return solution, nil
	}
	if co.miterLimit <= 1 {
		co.tempLim = 2.0
	} else {
		co.tempLim = 2.0 / (co.miterLimit * co.miterLimit)
	}
	for i := range co.groups {
		solution = append(solution, co.doGroupOffset(&co.groups[i])...)
	}
	if len(solution) == 0 {
		return solution, nil
	}
	cleaned, err := Unite(solution)
	if err != nil {
		return nil, err
	}
	return cleaned, nil
}

// OffsetToTree offsets paths by delta using the given join/end style and
// nests the result into a PolyTree64.
func OffsetToTree(paths Paths64, delta float64, joinType JoinType, endType EndType) (*PolyTree64, error) {
	co := NewOffsetter(2.0, 0)
	co.AddPaths(paths, joinType, endType)
	result, err := co.Execute(delta)
	if err != nil {
		return nil, err
	}
	return buildTree(result), nil
}

// Offset offsets paths by delta using the given join/end style and an
// explicit arc tolerance (nanometers), per spec.md's
// "offset(paths, delta, maxArcTol)".
func Offset(paths Paths64, delta float64, maxArcTol float64, joinType JoinType, endType EndType) (Paths64, error) {
	co := NewOffsetter(2.0, maxArcTol)
	co.AddPaths(paths, joinType, endType)
	return co.Execute(delta)
}
