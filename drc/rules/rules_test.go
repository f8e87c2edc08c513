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

package rules

import (
	"testing"

	"github.com/google/uuid"

	"github.com/LibrePCB/LibrePCB-sub022/board"
	"github.com/LibrePCB/LibrePCB-sub022/geom"
)

func mustPositive(t *testing.T, l geom.Length) geom.PositiveLength {
	t.Helper()
	p, err := geom.NewPositiveLength(l)
	if err != nil {
		t.Fatalf("positive length: %v", err)
	}
	return p
}

func TestCheckViasUselessVia(t *testing.T) {
	data := board.NewData(board.Settings{}, false)
	data.Segments = []board.Segment{
		{ID: uuid.New(), Vias: []board.Via{
			{ID: uuid.New(), DrillDiameter: mustPositive(t, 300_000), PadSize: mustPositive(t, 600_000)},
		}},
	}

	msgs, err := CheckVias(data)
	if err != nil {
		t.Fatalf("CheckVias: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Text != "Useless via" {
		t.Fatalf("expected exactly 1 useless-via message, got %+v", msgs)
	}
}

func TestCheckAllowedSlotsForbidsSlotByDefault(t *testing.T) {
	data := board.NewData(board.Settings{AllowedNpthSlots: board.SlotsNone}, false)
	slot := geom.Path{
		{Position: geom.Point{X: 0, Y: 0}},
		{Position: geom.Point{X: 1_000_000, Y: 0}},
	}
	nep, err := geom.NewNonEmptyPath(slot)
	if err != nil {
		t.Fatalf("NewNonEmptyPath: %v", err)
	}
	data.BoardHoles = []board.Hole{
		{ID: uuid.New(), Diameter: mustPositive(t, 500_000), Path: nep},
	}

	msgs, err := CheckAllowedSlots(data)
	if err != nil {
		t.Fatalf("CheckAllowedSlots: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Text != "Forbidden slot" {
		t.Fatalf("expected exactly 1 forbidden-slot message, got %+v", msgs)
	}
}

func TestCheckAllowedSlotsAllowsRoundHole(t *testing.T) {
	data := board.NewData(board.Settings{AllowedNpthSlots: board.SlotsNone}, false)
	round := geom.Path{{Position: geom.Point{X: 0, Y: 0}}}
	nep, err := geom.NewNonEmptyPath(round)
	if err != nil {
		t.Fatalf("NewNonEmptyPath: %v", err)
	}
	data.BoardHoles = []board.Hole{
		{ID: uuid.New(), Diameter: mustPositive(t, 500_000), Path: nep},
	}

	msgs, err := CheckAllowedSlots(data)
	if err != nil {
		t.Fatalf("CheckAllowedSlots: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected zero messages for a round hole, got %+v", msgs)
	}
}

func TestCheckUnplacedAndStaleEmptySegment(t *testing.T) {
	data := board.NewData(board.Settings{}, false)
	data.Segments = []board.Segment{{ID: uuid.New()}}

	msgs, err := CheckUnplacedAndStale(data)
	if err != nil {
		t.Fatalf("CheckUnplacedAndStale: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Text != "Empty segment" {
		t.Fatalf("expected exactly 1 empty-segment message, got %+v", msgs)
	}
}
