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

package geom

import (
	"fmt"
	"math"
)

// Vertex is one point of a Path plus the arc angle from this vertex to the
// next one. An angle of 0 means the edge to the next vertex is straight.
type Vertex struct {
	Position Point
	Angle    Angle
}

// Path is an ordered sequence of vertices. It is closed iff the last
// vertex's position equals the first vertex's position.
type Path []Vertex

// NonEmptyPath is a Path statically known to contain at least one vertex.
type NonEmptyPath struct{ path Path }

// NewNonEmptyPath validates that p is non-empty.
func NewNonEmptyPath(p Path) (NonEmptyPath, error) {
	if len(p) == 0 {
		return NonEmptyPath{}, fmt.Errorf("geom: path must contain at least one vertex")
	}
	return NonEmptyPath{p}, nil
}

// Path returns the underlying Path.
func (n NonEmptyPath) Path() Path { return n.path }

// IsClosed reports whether the path's last vertex coincides with its first.
func (p Path) IsClosed() bool {
	if len(p) < 2 {
		return false
	}
	return p[0].Position == p[len(p)-1].Position
}

// IsCurved reports whether any vertex has a nonzero arc angle to the next.
func (p Path) IsCurved() bool {
	for _, v := range p {
		if v.Angle != 0 {
			return true
		}
	}
	return false
}

// ToClosedPath duplicates the first vertex onto the end if the path is not
// already closed.
func (p Path) ToClosedPath() Path {
	if p.IsClosed() || len(p) == 0 {
		return p
	}
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = Vertex{Position: p[0].Position}
	return out
}

// Translate returns a copy of p shifted by (dx, dy).
func (p Path) Translate(dx, dy Length) Path {
	out := make(Path, len(p))
	for i, v := range p {
		out[i] = Vertex{Position: v.Position.Translate(dx, dy), Angle: v.Angle}
	}
	return out
}

// Rotate returns a copy of p rotated by angle around center.
func (p Path) Rotate(center Point, angle Angle) Path {
	out := make(Path, len(p))
	for i, v := range p {
		out[i] = Vertex{Position: v.Position.Rotate(center, angle), Angle: v.Angle}
	}
	return out
}

// Mirror returns a copy of p reflected across a vertical line at x = axisX.
// Mirroring reverses the effective winding direction, so the vertex order
// is reversed to restore it; mirroring and reversing each negate an arc's
// angle, so every arc keeps its original angle on the reversed edge.
func (p Path) Mirror(axisX Length) Path {
	out := make(Path, len(p))
	n := len(p)
	for i, v := range p {
		j := n - 1 - i
		var prevAngle Angle
		if i > 0 {
			prevAngle = p[i-1].Angle
		}
		out[j] = Vertex{Position: v.Position.Mirror(axisX), Angle: prevAngle}
	}
	return out
}

// FlatArc returns the straight-line vertices approximating a circular arc
// from "from" to "to" sweeping through the given angle, such that the
// maximum chord error stays within tol. It does not include the starting
// vertex (callers stitch segments together and would otherwise duplicate
// it).
func FlatArc(from, to Point, angle Angle, tol Length) []Point {
	if angle == 0 || tol <= 0 {
		return []Point{to}
	}

	// Center and radius of the arc through "from" and "to" subtending
	// "angle".
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	chord := math.Hypot(dx, dy)
	if chord == 0 {
		return []Point{to}
	}
	halfAngle := angle.Radians() / 2
	radius := chord / (2 * math.Sin(math.Abs(halfAngle)))

	// Midpoint of the chord, then offset perpendicular to it towards the
	// arc center by the sagitta's complement.
	mx, my := (float64(from.X)+float64(to.X))/2, (float64(from.Y)+float64(to.Y))/2
	ux, uy := -dy/chord, dx/chord // unit normal to the chord
	h := math.Sqrt(math.Max(radius*radius-(chord/2)*(chord/2), 0))
	sign := 1.0
	if angle < 0 {
		sign = -1.0
	}
	cx, cy := mx+sign*ux*h, my+sign*uy*h

	startAngle := math.Atan2(float64(from.Y)-cy, float64(from.X)-cx)
	sweep := angle.Radians()

	// Number of segments so that the chord error stays within tol.
	maxStep := 2 * math.Acos(1-float64(tol)/radius)
	if maxStep <= 0 || math.IsNaN(maxStep) {
		maxStep = math.Pi / 32
	}
	steps := int(math.Ceil(math.Abs(sweep) / maxStep))
	if steps < 1 {
		steps = 1
	}

	out := make([]Point, 0, steps)
	for i := 1; i <= steps; i++ {
		a := startAngle + sweep*float64(i)/float64(steps)
		pt := Point{
			X: Length(math.Round(cx + radius*math.Cos(a))),
			Y: Length(math.Round(cy + radius*math.Sin(a))),
		}
		out = append(out, pt)
	}
	// Force the exact endpoint to avoid accumulated rounding drift.
	out[len(out)-1] = to
	return out
}

// Flatten reduces p to a sequence of straight-line points, replacing each
// arc with Vertex.Angle != 0 by FlatArc's straight-line approximation
// within tol of chord error. The first vertex's position always starts the
// result.
func (p Path) Flatten(tol Length) []Point {
	if len(p) == 0 {
		return nil
	}
	out := make([]Point, 0, len(p))
	out = append(out, p[0].Position)
	for i := 0; i+1 < len(p); i++ {
		out = append(out, FlatArc(p[i].Position, p[i+1].Position, p[i].Angle, tol)...)
	}
	return out
}

// Circle returns a closed path tracing a circle of diameter d, centered at
// the origin, using two half-circle arcs.
func Circle(d Length) Path {
	r := d / 2
	return Path{
		{Position: Point{-r, 0}, Angle: AngleFullTurn / 2},
		{Position: Point{r, 0}, Angle: AngleFullTurn / 2},
		{Position: Point{-r, 0}},
	}
}

// CenteredRect returns a closed path tracing a rectangle of width w and
// height h, centered at the origin, with corner radius r (0 for sharp
// corners).
func CenteredRect(w, h, r Length) Path {
	if r <= 0 {
		x, y := w/2, h/2
		return Path{
			{Position: Point{-x, -y}},
			{Position: Point{x, -y}},
			{Position: Point{x, y}},
			{Position: Point{-x, y}},
			{Position: Point{-x, -y}},
		}
	}
	x, y := w/2, h/2
	quarter := AngleFullTurn / 4
	return Path{
		{Position: Point{-x + r, -y}},
		{Position: Point{x - r, -y}, Angle: quarter},
		{Position: Point{x, -y + r}},
		{Position: Point{x, y - r}, Angle: quarter},
		{Position: Point{x - r, y}},
		{Position: Point{-x + r, y}, Angle: quarter},
		{Position: Point{-x, y - r}},
		{Position: Point{-x, -y + r}, Angle: quarter},
		{Position: Point{-x + r, -y}},
	}
}

// Octagon returns a closed path tracing an octagon bounded by width w and
// height h, with corner cut ratio r in [0, 1] applied to the shorter side.
func Octagon(w, h Length, r UnsignedLimitedRatio) Path {
	short := w
	if h < short {
		short = h
	}
	cut := Length(int64(short) * int64(r.Value()) / int64(RatioPPMOne) / 2)
	x, y := w/2, h/2
	return Path{
		{Position: Point{-x + cut, -y}},
		{Position: Point{x - cut, -y}},
		{Position: Point{x, -y + cut}},
		{Position: Point{x, y - cut}},
		{Position: Point{x - cut, y}},
		{Position: Point{-x + cut, y}},
		{Position: Point{-x, y - cut}},
		{Position: Point{-x, -y + cut}},
		{Position: Point{-x + cut, -y}},
	}
}

// Obround returns the stroke outline of a straight segment from p1 to p2
// with the given width, i.e. two half-circle caps joined by the segment's
// side edges (a "stadium" shape). This is the standard shape for traces and
// stroke-obround pads.
func Obround(p1, p2 Point, width Length) Path {
	dx := float64(p2.X - p1.X)
	dy := float64(p2.Y - p1.Y)
	length := math.Hypot(dx, dy)
	r := width / 2
	if length == 0 {
		return Circle(width).Translate(p1.X, p1.Y)
	}
	ux, uy := dx/length, dy/length // unit direction p1->p2
	nx, ny := -uy, ux              // unit normal

	half := AngleFullTurn / 2
	a1 := Point{
		X: p1.X + Length(math.Round(nx*float64(r))),
		Y: p1.Y + Length(math.Round(ny*float64(r))),
	}
	a2 := Point{
		X: p2.X + Length(math.Round(nx*float64(r))),
		Y: p2.Y + Length(math.Round(ny*float64(r))),
	}
	b1 := Point{
		X: p2.X - Length(math.Round(nx*float64(r))),
		Y: p2.Y - Length(math.Round(ny*float64(r))),
	}
	b2 := Point{
		X: p1.X - Length(math.Round(nx*float64(r))),
		Y: p1.Y - Length(math.Round(ny*float64(r))),
	}
	_ = ux
	_ = uy
	return Path{
		{Position: a1},
		{Position: a2, Angle: half},
		{Position: b1},
		{Position: b2, Angle: half},
		{Position: a1},
	}
}

// ToOutlineStrokes returns the Minkowski sum of p (an open or closed path)
// with a centered circle of the given width, i.e. the filled area a pen of
// that width traces along p. It is a thin wrapper: the actual polygon union
// is performed by the clipper package, which owns the integer boolean
// engine; this method only builds the per-segment obround paths for the
// caller to union.
func (p Path) ToOutlineStrokes(width Length) []Path {
	if len(p) < 2 {
		return nil
	}
	out := make([]Path, 0, len(p)-1)
	for i := 0; i+1 < len(p); i++ {
		out = append(out, Obround(p[i].Position, p[i+1].Position, width))
	}
	return out
}
