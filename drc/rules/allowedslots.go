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
	"github.com/LibrePCB/LibrePCB-sub022/board"
	"github.com/LibrePCB/LibrePCB-sub022/drc/message"
)

// holeRequiresSlotWarning implements spec.md §4.5.13's "requires warning"
// predicate: curved holes need AllowedSlots >= Any, holes with more than
// two vertices (multi-segment slots) need >= MultiSegmentStraight, and
// holes with exactly two vertices (single-segment slots) need >=
// SingleSegmentStraight.
func holeRequiresSlotWarning(h board.Hole, allowed board.AllowedSlots) bool {
	vertices := h.Path.Path()
	n := len(vertices)
	if vertices.IsCurved() && allowed < board.SlotsAny {
		return true
	}
	if n > 2 && allowed < board.SlotsMultiSegmentStraight {
		return true
	}
	if n > 1 && allowed < board.SlotsSingleSegmentStraight {
		return true
	}
	return false
}

// CheckAllowedSlots implements spec.md §4.5.13.
func CheckAllowedSlots(data *board.Data) ([]message.Message, error) {
	var out []message.Message

	checkNpth := func(h board.Hole) {
		if holeRequiresSlotWarning(h, data.Settings.AllowedNpthSlots) {
			out = append(out, message.ForbiddenSlotViolation(h.ID, "NPTH"))
		}
	}
	checkPth := func(h board.Hole) {
		if holeRequiresSlotWarning(h, data.Settings.AllowedPthSlots) {
			out = append(out, message.ForbiddenSlotViolation(h.ID, "PTH"))
		}
	}

	for _, h := range data.BoardHoles {
		checkNpth(h)
	}
	for _, dev := range data.Devices {
		for _, h := range dev.Holes {
			checkNpth(h)
		}
		for _, pad := range dev.Pads {
			for _, h := range pad.Holes {
				checkPth(h)
			}
		}
	}
	for _, seg := range data.Segments {
		for _, pad := range seg.Pads {
			for _, h := range pad.Holes {
				checkPth(h)
			}
		}
	}

	return out, nil
}
