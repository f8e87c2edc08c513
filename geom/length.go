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

// Package geom implements the integer geometry primitives the DRC core is
// built on: lengths in nanometers, angles in microdegrees, points, vertices
// and paths. All arithmetic is exact on 64-bit integers.
package geom

import "fmt"

// Length is a signed distance in nanometers.
type Length int64

// PositiveLength is a Length known to be strictly greater than zero.
type PositiveLength struct{ v Length }

// NewPositiveLength validates l > 0.
func NewPositiveLength(l Length) (PositiveLength, error) {
	if l <= 0 {
		return PositiveLength{}, fmt.Errorf("geom: length %d is not positive", l)
	}
	return PositiveLength{l}, nil
}

// Value returns the underlying Length.
func (p PositiveLength) Value() Length { return p.v }

// UnsignedLength is a Length known to be greater than or equal to zero.
type UnsignedLength struct{ v Length }

// NewUnsignedLength validates l >= 0.
func NewUnsignedLength(l Length) (UnsignedLength, error) {
	if l < 0 {
		return UnsignedLength{}, fmt.Errorf("geom: length %d is negative", l)
	}
	return UnsignedLength{l}, nil
}

// Value returns the underlying Length.
func (u UnsignedLength) Value() Length { return u.v }

// Ratio is a signed dimensionless ratio in parts-per-million.
type Ratio int64

// UnsignedRatio is a Ratio known to be >= 0.
type UnsignedRatio struct{ v Ratio }

// NewUnsignedRatio validates r >= 0.
func NewUnsignedRatio(r Ratio) (UnsignedRatio, error) {
	if r < 0 {
		return UnsignedRatio{}, fmt.Errorf("geom: ratio %d is negative", r)
	}
	return UnsignedRatio{r}, nil
}

// Value returns the underlying Ratio.
func (u UnsignedRatio) Value() Ratio { return u.v }

// UnsignedLimitedRatio is a Ratio known to lie within [0, 1_000_000] ppm
// (i.e. the closed interval [0, 1]).
type UnsignedLimitedRatio struct{ v Ratio }

// RatioPPMOne is 100% expressed in parts-per-million.
const RatioPPMOne Ratio = 1_000_000

// NewUnsignedLimitedRatio validates 0 <= r <= RatioPPMOne.
func NewUnsignedLimitedRatio(r Ratio) (UnsignedLimitedRatio, error) {
	if r < 0 || r > RatioPPMOne {
		return UnsignedLimitedRatio{}, fmt.Errorf("geom: ratio %d is outside [0, %d]", r, RatioPPMOne)
	}
	return UnsignedLimitedRatio{r}, nil
}

// Value returns the underlying Ratio.
func (u UnsignedLimitedRatio) Value() Ratio { return u.v }

// Angle is a signed angle in microdegrees. A full turn is 360_000_000.
type Angle int64

// AngleFullTurn is 360 degrees expressed in microdegrees.
const AngleFullTurn Angle = 360_000_000

// Radians converts the angle to radians as a float64, used only where the
// polygon kernel must hand off to trigonometric arc construction.
func (a Angle) Radians() float64 {
	return float64(a) / float64(AngleFullTurn) * 2 * 3.141592653589793
}

// MaxArcTolerance is the single, non-configurable chord-error tolerance (5
// micrometers) used whenever an arc is flattened into straight segments for
// integer boolean or offset operations. Never parameterize this per call:
// existing persisted board designs depend on this exact value for
// bit-compatible polygon results.
const MaxArcTolerance Length = 5_000
