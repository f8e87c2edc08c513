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

func TestNewPositiveLength(t *testing.T) {
	if _, err := NewPositiveLength(0); err == nil {
		t.Error("expected zero to be rejected")
	}
	if _, err := NewPositiveLength(-1); err == nil {
		t.Error("expected a negative length to be rejected")
	}
	p, err := NewPositiveLength(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Value() != 1 {
		t.Errorf("Value() = %d, want 1", p.Value())
	}
}

func TestNewUnsignedLength(t *testing.T) {
	if _, err := NewUnsignedLength(-1); err == nil {
		t.Error("expected a negative length to be rejected")
	}
	u, err := NewUnsignedLength(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Value() != 0 {
		t.Errorf("Value() = %d, want 0", u.Value())
	}
}

func TestNewUnsignedLimitedRatio(t *testing.T) {
	cases := []struct {
		r     Ratio
		valid bool
	}{
		{-1, false},
		{0, true},
		{RatioPPMOne, true},
		{RatioPPMOne + 1, false},
	}
	for _, c := range cases {
		_, err := NewUnsignedLimitedRatio(c.r)
		if c.valid && err != nil {
			t.Errorf("NewUnsignedLimitedRatio(%d): unexpected error %v", c.r, err)
		}
		if !c.valid && err == nil {
			t.Errorf("NewUnsignedLimitedRatio(%d): expected an error", c.r)
		}
	}
}

func TestAngleRadians(t *testing.T) {
	cases := []struct {
		a    Angle
		want float64
	}{
		{0, 0},
		{AngleFullTurn, 2 * 3.141592653589793},
		{AngleFullTurn / 2, 3.141592653589793},
	}
	for _, c := range cases {
		got := c.a.Radians()
		if diff := got - c.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Angle(%d).Radians() = %v, want %v", c.a, got, c.want)
		}
	}
}
