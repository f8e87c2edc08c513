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

// CheckCopperHoleClearance implements spec.md §4.5.3. It needs Stage-1's
// per-layer copper to already be populated: it unions every layer into one
// "copper anywhere" area and intersects every hole's clearance-expanded
// stroke against it.
func CheckCopperHoleClearance(data *board.Data, calc CopperLookup) ([]message.Message, error) {
	clearance := data.Settings.MinCopperNpthClearance.Value()
	if clearance == 0 {
		return nil, nil
	}

	copperAnywhere, err := calc.AllCopperAnywhere()
	if err != nil {
		return nil, err
	}
	if len(copperAnywhere) == 0 {
		return nil, nil
	}

	offset := clearance - clearanceSlack

	var out []message.Message
	check := func(h board.Hole, transform bool, dev board.Device) error {
		area, err := pathgen.HoleOutline(h, offset)
		if err != nil {
			return err
		}
		if transform {
			area = pathgen.TransformPaths(area, dev.Position, dev.Rotation, dev.Mirror)
		}
		locs, found, err := intersectNonEmpty(area, copperAnywhere)
		if err != nil {
			return err
		}
		if found {
			out = append(out, message.CopperHoleClearanceViolation(h.ID, clearance, paths64ToPaths(locs)))
		}
		return nil
	}

	for _, h := range data.BoardHoles {
		if err := check(h, false, board.Device{}); err != nil {
			return nil, err
		}
	}
	for _, dev := range data.Devices {
		for _, h := range dev.Holes {
			if err := check(h, true, dev); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
