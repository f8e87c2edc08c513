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
	"github.com/LibrePCB/LibrePCB-sub022/clipper"
	"github.com/LibrePCB/LibrePCB-sub022/drc/message"
)

// CheckDrillDrillClearance implements spec.md §4.5.4: every pair of
// drill-bearing objects (vias, pad holes, board holes, device holes) is
// checked for overlap once each is stroked by its diameter plus the
// configured clearance.
func CheckDrillDrillClearance(data *board.Data) ([]message.Message, error) {
	clearance := data.Settings.MinDrillDrillClearance.Value()
	if clearance == 0 {
		return nil, nil
	}

	items := collectDrillItems(data)
	offset := clearance - clearanceSlack

	areas := make([]clipper.Paths64, len(items))
	for i, it := range items {
		area, err := pathgen.HoleOutline(it.hole, offset)
		if err != nil {
			return nil, err
		}
		areas[i] = area
	}

	var out []message.Message
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			locs, found, err := intersectNonEmpty(areas[i], areas[j])
			if err != nil {
				return nil, err
			}
			if found {
				out = append(out, message.DrillDrillClearanceViolation(items[i].ref, items[j].ref, clearance, paths64ToPaths(locs)))
			}
		}
	}
	return out, nil
}
