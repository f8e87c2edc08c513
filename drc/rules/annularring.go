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
	"github.com/LibrePCB/LibrePCB-sub022/geom"
)

// CheckMinimumAnnularRing implements spec.md §4.5.8. It needs Stage-1's
// per-layer copper already populated: a pad's (or via's) annular ring only
// exists where copper actually covers the drill on every copper layer, so
// the residual after subtracting the through-copper intersection is the
// uncovered part of the required ring.
func CheckMinimumAnnularRing(data *board.Data, calc CopperLookup) ([]message.Message, error) {
	min := data.Settings.MinPthAnnularRing.Value()
	if min == 0 {
		return nil, nil
	}

	var out []message.Message

	for _, seg := range data.Segments {
		for _, v := range seg.Vias {
			ring := (v.PadSize.Value() - v.DrillDiameter.Value()) / 2
			if ring >= min {
				continue
			}
			out = append(out, message.MinimumAnnularRingViolation(
				message.ObjectRef{Kind: message.ObjectVia, ID: v.ID, Net: seg.Net},
				ring, min, nil))
		}
	}

	thtCopper, err := calc.AllCopperEverywhere()
	if err != nil {
		return nil, err
	}

	// Stroke each hole at width holeDiameter+2*min-1. HoleOutline adds
	// 2*offset to the diameter, so the odd 1nm goes onto the diameter and
	// the offset is min-1.
	offset := min - 1

	check := func(pad board.Pad, ref message.ObjectRef, transform bool, dev board.Device) error {
		if len(pad.Holes) == 0 {
			return nil
		}
		var area clipper.Paths64
		for _, h := range pad.Holes {
			if d, err := geom.NewPositiveLength(h.Diameter.Value() + 1); err == nil {
				h.Diameter = d
			}
			a, err := pathgen.HoleOutline(h, offset)
			if err != nil {
				return err
			}
			area = append(area, a...)
		}
		united, err := clipper.Unite(area)
		if err != nil {
			return err
		}
		if transform {
			united = pathgen.TransformPaths(united, dev.Position, dev.Rotation, dev.Mirror)
		}
		var residual clipper.Paths64
		if len(thtCopper) == 0 {
			residual = united
		} else {
			residual, err = clipper.Subtract(united, thtCopper)
			if err != nil {
				return err
			}
		}
		if len(residual) == 0 {
			return nil
		}
		out = append(out, message.MinimumAnnularRingViolation(ref, 0, min, paths64ToPaths(residual)))
		return nil
	}

	for _, seg := range data.Segments {
		for _, pad := range seg.Pads {
			if err := check(pad, message.ObjectRef{Kind: message.ObjectPad, ID: pad.ID, Net: seg.Net}, false, board.Device{}); err != nil {
				return nil, err
			}
		}
	}
	for _, dev := range data.Devices {
		devID := dev.ID
		for _, pad := range dev.Pads {
			if err := check(pad, message.ObjectRef{Kind: message.ObjectPad, ID: pad.ID, Net: pad.Net, DeviceID: &devID}, true, dev); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
