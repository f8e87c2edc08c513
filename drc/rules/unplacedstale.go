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

// CheckUnplacedAndStale implements spec.md §4.5.18.
func CheckUnplacedAndStale(data *board.Data) ([]message.Message, error) {
	var out []message.Message

	for id, name := range data.UnplacedComponents {
		out = append(out, message.UnplacedComponentViolation(id, name))
	}

	for _, aw := range data.AirWires {
		out = append(out, message.MissingConnectionViolation(aw.Net, aw.Anchor1.Position, aw.Anchor2.Position))
	}

	for _, seg := range data.Segments {
		if seg.IsEmpty() {
			out = append(out, message.EmptySegmentViolation(seg.ID))
		}
		for _, j := range seg.Junctions {
			if j.TraceCount == 0 {
				out = append(out, message.UnconnectedJunctionViolation(j.ID))
			}
		}
	}

	return out, nil
}
