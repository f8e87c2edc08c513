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
	"github.com/LibrePCB/LibrePCB-sub022/geom"
	"github.com/LibrePCB/LibrePCB-sub022/layer"
)

// CheckBoardOutline implements spec.md §4.5.16.
func CheckBoardOutline(data *board.Data) ([]message.Message, error) {
	var out []message.Message

	closedOutlines := 0
	for _, p := range boardEdgePolygons(data) {
		if p.Path.IsClosed() {
			if p.Layer == layer.BoardOutlines {
				closedOutlines++
			}
			continue
		}
		out = append(out, message.OpenBoardOutlinePolygonViolation(p.ID, []geom.Path{p.Path}))
	}

	switch {
	case closedOutlines == 0:
		out = append(out, message.MissingBoardOutlineViolation())
	case closedOutlines > 1:
		out = append(out, message.MultipleBoardOutlinesViolation(closedOutlines))
	}

	area, err := boardArea(data)
	if err != nil {
		return nil, err
	}
	if len(area) == 0 {
		return out, nil
	}

	minEdgeRadius := data.Settings.MinEdgeRadius().Value()
	const tenMicrons = geom.Length(10_000)
	grow := minEdgeRadius - tenMicrons
	if grow < 0 {
		grow = 0
	}

	grown, err := offsetOutward(area, grow)
	if err != nil {
		return nil, err
	}
	shrunk, err := offsetOutward(grown, -minEdgeRadius)
	if err != nil {
		return nil, err
	}

	var residue clipper.Paths64
	if len(shrunk) == 0 {
		residue = area
	} else {
		residue, err = clipper.Subtract(area, shrunk)
		if err != nil {
			return nil, err
		}
	}
	if len(residue) > 0 {
		out = append(out, message.MinimumBoardOutlineInnerRadiusViolation(paths64ToPaths(residue)))
	}

	return out, nil
}
