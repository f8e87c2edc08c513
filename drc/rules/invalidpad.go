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
	"github.com/LibrePCB/LibrePCB-sub022/clipper"
	"github.com/LibrePCB/LibrePCB-sub022/drc/message"
)

// CheckInvalidPadConnection implements spec.md §4.5.14: a trace connects to
// a pad on a layer where the pad's own local origin is not actually
// covered by any of its copper geometries on that layer.
func CheckInvalidPadConnection(data *board.Data) ([]message.Message, error) {
	var out []message.Message

	check := func(pad board.Pad) error {
		for _, l := range pad.LayersWithTraces {
			covered := false
			for _, pg := range pad.Geometries[l] {
				outs, err := pg.ToOutlines()
				if err != nil {
					return err
				}
				if pointInPaths(outs, clipper.Point64{}) {
					covered = true
					break
				}
			}
			if covered {
				continue
			}
			out = append(out, message.InvalidPadConnectionViolation(pad.ID, l.String(), pad.Position))
		}
		return nil
	}

	for _, seg := range data.Segments {
		for _, pad := range seg.Pads {
			if err := check(pad); err != nil {
				return nil, err
			}
		}
	}
	for _, dev := range data.Devices {
		for _, pad := range dev.Pads {
			if err := check(pad); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
