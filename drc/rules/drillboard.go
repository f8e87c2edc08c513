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
	"github.com/LibrePCB/LibrePCB-sub022/board/pathgen"
	"github.com/LibrePCB/LibrePCB-sub022/drc/message"
)

// CheckDrillBoardClearance implements spec.md §4.5.5, reusing the same
// restricted board-edge area construction as the copper↔board check.
func CheckDrillBoardClearance(data *board.Data) ([]message.Message, error) {
	clearance := data.Settings.MinDrillBoardClearance.Value()
	if clearance == 0 {
		return nil, nil
	}

	restricted, err := boardEdgeRestrictedArea(data, clearance)
	if err != nil {
		return nil, err
	}
	if len(restricted) == 0 {
		return nil, nil
	}

	var out []message.Message
	for _, it := range collectDrillItems(data) {
		area, err := pathgen.HoleOutline(it.hole, 0)
		if err != nil {
			return nil, err
		}
		locs, found, err := intersectNonEmpty(area, restricted)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, message.DrillBoardClearanceViolation(it.ref, clearance, paths64ToPaths(locs)))
		}
	}
	return out, nil
}
