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
	"github.com/LibrePCB/LibrePCB-sub022/geom"
)

// CheckMinimumDrillAndSlot implements spec.md §4.5.9. Vias and pad holes
// are plated (PTH); board and device holes are not (NPTH).
func CheckMinimumDrillAndSlot(data *board.Data) ([]message.Message, error) {
	var out []message.Message

	emit := func(ref message.ObjectRef, h board.Hole, minDrill, minSlot geom.Length) {
		d := h.Diameter.Value()
		if h.IsSlot() {
			if d < minSlot {
				out = append(out, message.MinimumSlotWidthViolation(ref.ID, d, minSlot))
			}
		} else {
			if d < minDrill {
				out = append(out, message.MinimumDrillDiameterViolation(ref.ID, d, minDrill))
			}
		}
	}

	minNpthDrill := data.Settings.MinNpthDrillDiameter.Value()
	minNpthSlot := data.Settings.MinNpthSlotWidth.Value()
	minPthDrill := data.Settings.MinPthDrillDiameter.Value()
	minPthSlot := data.Settings.MinPthSlotWidth.Value()

	for _, seg := range data.Segments {
		for _, v := range seg.Vias {
			if h, ok := holeFromPoint(v.ID, v.Position, v.DrillDiameter.Value()); ok {
				emit(message.ObjectRef{Kind: message.ObjectVia, ID: v.ID, Net: seg.Net}, h, minPthDrill, minPthSlot)
			}
		}
		for _, pad := range seg.Pads {
			for _, h := range pad.Holes {
				emit(message.ObjectRef{Kind: message.ObjectHole, ID: h.ID, Net: seg.Net}, h, minPthDrill, minPthSlot)
			}
		}
	}

	for _, h := range data.BoardHoles {
		emit(message.ObjectRef{Kind: message.ObjectHole, ID: h.ID}, h, minNpthDrill, minNpthSlot)
	}

	for _, dev := range data.Devices {
		devID := dev.ID
		for _, h := range dev.Holes {
			emit(message.ObjectRef{Kind: message.ObjectHole, ID: h.ID, DeviceID: &devID}, h, minNpthDrill, minNpthSlot)
		}
		for _, pad := range dev.Pads {
			for _, h := range pad.Holes {
				emit(message.ObjectRef{Kind: message.ObjectHole, ID: h.ID, DeviceID: &devID, Net: pad.Net}, h, minPthDrill, minPthSlot)
			}
		}
	}

	return out, nil
}
