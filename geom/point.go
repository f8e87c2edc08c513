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

import "math"

// Point is a position in board space, in nanometers.
type Point struct {
	X, Y Length
}

// Translate returns p shifted by (dx, dy).
func (p Point) Translate(dx, dy Length) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Rotate returns p rotated by angle around center. The rotation is computed
// in float64 and rounded to the nearest nanometer; this matches the
// precision the polygon kernel already tolerates via MaxArcTolerance.
func (p Point) Rotate(center Point, angle Angle) Point {
	dx := float64(p.X - center.X)
	dy := float64(p.Y - center.Y)
	r := angle.Radians()
	sin, cos := math.Sin(r), math.Cos(r)
	nx := dx*cos - dy*sin
	ny := dx*sin + dy*cos
	return Point{
		X: center.X + Length(math.Round(nx)),
		Y: center.Y + Length(math.Round(ny)),
	}
}

// Mirror reflects p across a vertical line at x = axisX (board mirroring is
// always left-right in LibrePCB's coordinate convention).
func (p Point) Mirror(axisX Length) Point {
	return Point{2*axisX - p.X, p.Y}
}

// DistanceSquared returns the squared Euclidean distance to q, exact for
// inputs within the design domain (+/- 1m, see spec's numeric-overflow
// note): the square fits in 64 bits for any two points at most 2m apart.
func (p Point) DistanceSquared(q Point) int64 {
	dx := int64(p.X - q.X)
	dy := int64(p.Y - q.Y)
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance to q.
func (p Point) Distance(q Point) float64 {
	return math.Sqrt(float64(p.DistanceSquared(q)))
}
