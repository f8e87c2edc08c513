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

import "testing"

func TestPathIsClosed(t *testing.T) {
	open := Path{{Position: Point{0, 0}}, {Position: Point{1, 0}}}
	if open.IsClosed() {
		t.Error("expected an open path to report IsClosed() == false")
	}
	closed := Path{{Position: Point{0, 0}}, {Position: Point{1, 0}}, {Position: Point{0, 0}}}
	if !closed.IsClosed() {
		t.Error("expected a path whose last vertex equals its first to report IsClosed() == true")
	}
	if (Path{{Position: Point{0, 0}}}).IsClosed() {
		t.Error("a single-vertex path cannot be closed")
	}
}

func TestPathToClosedPath(t *testing.T) {
	open := Path{{Position: Point{0, 0}}, {Position: Point{1, 0}}}
	closed := open.ToClosedPath()
	if !closed.IsClosed() {
		t.Fatalf("ToClosedPath() did not close the path: %+v", closed)
	}
	if len(closed) != len(open)+1 {
		t.Fatalf("ToClosedPath() length = %d, want %d", len(closed), len(open)+1)
	}

	alreadyClosed := closed
	if got := alreadyClosed.ToClosedPath(); len(got) != len(alreadyClosed) {
		t.Errorf("ToClosedPath() on an already-closed path changed its length: got %d, want %d", len(got), len(alreadyClosed))
	}
}

func TestPathTranslate(t *testing.T) {
	p := Path{{Position: Point{0, 0}}, {Position: Point{1, 1}, Angle: 42}}
	got := p.Translate(10, -5)
	want := Path{{Position: Point{10, -5}}, {Position: Point{11, -4}, Angle: 42}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Translate()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCircleIsClosedAndCurved(t *testing.T) {
	c := Circle(2_000_000)
	if !c.IsClosed() {
		t.Error("Circle() must return a closed path")
	}
	if !c.IsCurved() {
		t.Error("Circle() must return a curved path (nonzero arc angles)")
	}
}

func TestCenteredRectSharpCorners(t *testing.T) {
	r := CenteredRect(2_000_000, 1_000_000, 0)
	if !r.IsClosed() {
		t.Fatal("CenteredRect() must return a closed path")
	}
	if r.IsCurved() {
		t.Error("a zero-radius rectangle must not be curved")
	}
	if len(r) != 5 {
		t.Fatalf("len(CenteredRect()) = %d, want 5 (4 corners + closing vertex)", len(r))
	}
}

func TestPathFlattenStraightSegment(t *testing.T) {
	p := Path{{Position: Point{0, 0}}, {Position: Point{1_000_000, 0}}}
	pts := p.Flatten(MaxArcTolerance)
	if len(pts) != 2 {
		t.Fatalf("Flatten() of a straight segment should yield 2 points, got %d: %+v", len(pts), pts)
	}
	if pts[0] != (Point{0, 0}) || pts[1] != (Point{1_000_000, 0}) {
		t.Errorf("Flatten() changed a straight segment's endpoints: got %+v", pts)
	}
}
