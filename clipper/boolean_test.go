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

import "testing"

func square(x0, y0, x1, y1 int64) Path64 {
	return Path64{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
	}
}

// totalArea sums the unsigned areas of paths. area() returns twice the
// signed shoelace area, so the sum is halved back to the true area.
func totalArea(paths Paths64) int64 {
	var sum int64
	for _, p := range paths {
		a := area(p)
		if a < 0 {
			a = -a
		}
		sum += a
	}
	return sum / 2
}

// Two 10x10 squares overlapping in a 5x10 strip: union area = 150, intersect
// area = 50, subtract (left minus right) area = 50.
func TestUniteTwoOverlappingSquares(t *testing.T) {
	left := square(0, 0, 10, 10)
	right := square(5, 0, 15, 10)

	got, err := UniteTwoSets(Paths64{left}, Paths64{right})
	if err != nil {
		t.Fatalf("UniteTwoSets: %v", err)
	}
	if want := int64(150); totalArea(got) != want {
		t.Errorf("union area = %d, want %d", totalArea(got), want)
	}
}

func TestSubtractOverlappingSquares(t *testing.T) {
	left := square(0, 0, 10, 10)
	right := square(5, 0, 15, 10)

	got, err := Subtract(Paths64{left}, Paths64{right})
	if err != nil {
		t.Fatalf("Subtract: %v", err)
	}
	if want := int64(50); totalArea(got) != want {
		t.Errorf("subtract area = %d, want %d", totalArea(got), want)
	}
}

func TestIntersectToTreeOverlappingSquares(t *testing.T) {
	left := square(0, 0, 10, 10)
	right := square(5, 0, 15, 10)

	tree, err := IntersectToTree(Paths64{left}, Paths64{right})
	if err != nil {
		t.Fatalf("IntersectToTree: %v", err)
	}
	flat, err := FlattenTree(tree)
	if err != nil {
		t.Fatalf("FlattenTree: %v", err)
	}
	if want := int64(50); totalArea(flat) != want {
		t.Errorf("intersect area = %d, want %d", totalArea(flat), want)
	}
}

func TestUniteDisjointSquaresStayDisjoint(t *testing.T) {
	a := square(0, 0, 10, 10)
	b := square(100, 100, 110, 110)

	got, err := Unite(Paths64{a, b})
	if err != nil {
		t.Fatalf("Unite: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 disjoint output contours, got %d", len(got))
	}
	if want := int64(200); totalArea(got) != want {
		t.Errorf("total area = %d, want %d", totalArea(got), want)
	}
}
