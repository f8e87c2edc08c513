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

// CheckMinimumSilkscreen implements spec.md §4.5.10: minimum stroke width
// restricted to silkscreen (overlay) layers, plus minimum text height for
// every silkscreen stroke text.
func CheckMinimumSilkscreen(data *board.Data) ([]message.Message, error) {
	var out []message.Message

	minWidth := data.Settings.MinSilkscreenWidth.Value()
	minHeight := data.Settings.MinSilkscreenTextHeight.Value()

	checkText := func(st board.StrokeText, transform bool, dev board.Device, ref message.ObjectRef) error {
		if st.StrokeWidth.Value() < minWidth {
			area, err := pathgen.StrokeTextOutlines(st.Paths, st.StrokeWidth.Value(), 0)
			if err != nil {
				return err
			}
			if transform {
				area = pathgen.TransformPaths(area, dev.Position, dev.Rotation, dev.Mirror)
			}
			out = append(out, message.MinimumSilkscreenWidthViolation(ref, st.StrokeWidth.Value(), minWidth, paths64ToPaths(area)))
		}
		if st.Height.Value() < minHeight {
			area, err := pathgen.StrokeTextOutlines(st.Paths, st.StrokeWidth.Value(), 0)
			if err != nil {
				return err
			}
			if transform {
				area = pathgen.TransformPaths(area, dev.Position, dev.Rotation, dev.Mirror)
			}
			out = append(out, message.MinimumSilkscreenTextHeightViolation(st.ID, st.Height.Value(), minHeight, paths64ToPaths(area)))
		}
		return nil
	}

	for _, st := range data.BoardStrokeTexts {
		if !st.Layer.IsOverlay() {
			continue
		}
		if err := checkText(st, false, board.Device{}, message.ObjectRef{Kind: message.ObjectStrokeText, ID: st.ID, Layer: st.Layer.String()}); err != nil {
			return nil, err
		}
	}
	for _, dev := range data.Devices {
		devID := dev.ID
		for _, st := range dev.StrokeTexts {
			if !st.Layer.IsOverlay() {
				continue
			}
			ref := message.ObjectRef{Kind: message.ObjectStrokeText, ID: st.ID, Layer: st.Layer.String(), DeviceID: &devID}
			if err := checkText(st, true, dev, ref); err != nil {
				return nil, err
			}
		}
	}

	for _, p := range data.BoardPolygons {
		if !p.Layer.IsOverlay() {
			continue
		}
		if p.Filled && p.Path.IsClosed() && p.LineWidth.Value() == 0 {
			continue
		}
		if p.LineWidth.Value() >= minWidth {
			continue
		}
		area, err := pathgen.PolygonOutlines(p.Path, p.LineWidth.Value(), p.Filled, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, message.MinimumSilkscreenWidthViolation(
			message.ObjectRef{Kind: message.ObjectPolygon, ID: p.ID, Layer: p.Layer.String()},
			p.LineWidth.Value(), minWidth, paths64ToPaths(area)))
	}
	for _, dev := range data.Devices {
		devID := dev.ID
		for _, p := range dev.Polygons {
			l := pathgen.EffectiveLayer(p.Layer, dev.Mirror)
			if !l.IsOverlay() {
				continue
			}
			if p.Filled && p.Path.IsClosed() && p.LineWidth.Value() == 0 {
				continue
			}
			if p.LineWidth.Value() >= minWidth {
				continue
			}
			area, err := pathgen.PolygonOutlines(p.Path, p.LineWidth.Value(), p.Filled, 0)
			if err != nil {
				return nil, err
			}
			area = pathgen.TransformPaths(area, dev.Position, dev.Rotation, dev.Mirror)
			out = append(out, message.MinimumSilkscreenWidthViolation(
				message.ObjectRef{Kind: message.ObjectPolygon, ID: p.ID, Layer: l.String(), DeviceID: &devID},
				p.LineWidth.Value(), minWidth, paths64ToPaths(area)))
		}
	}

	return out, nil
}
