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
	"github.com/LibrePCB/LibrePCB-sub022/geom"
)

// CheckMinimumCopperWidth implements spec.md §4.5.7.
func CheckMinimumCopperWidth(data *board.Data) ([]message.Message, error) {
	var out []message.Message

	for _, seg := range data.Segments {
		min := data.GetMinCopperWidth(seg.NetClass).Value()
		for _, t := range seg.Traces {
			if t.Width.Value() >= min {
				continue
			}
			locs := []geom.Path{path64ToPath(pathgen.TraceOutline(t, 0))}
			out = append(out, message.MinimumCopperWidthViolation(
				message.ObjectRef{Kind: message.ObjectTrace, ID: t.ID, Net: seg.Net, Layer: t.Layer.String()},
				t.Width.Value(), min, locs))
		}
	}

	globalMin := data.Settings.MinCopperWidth.Value()

	for _, st := range data.BoardStrokeTexts {
		if !st.Layer.IsCopper() || st.StrokeWidth.Value() >= globalMin {
			continue
		}
		area, err := pathgen.StrokeTextOutlines(st.Paths, st.StrokeWidth.Value(), 0)
		if err != nil {
			return nil, err
		}
		out = append(out, message.MinimumCopperWidthViolation(
			message.ObjectRef{Kind: message.ObjectStrokeText, ID: st.ID, Layer: st.Layer.String()},
			st.StrokeWidth.Value(), globalMin, paths64ToPaths(area)))
	}

	for _, p := range data.BoardPolygons {
		if !p.Layer.IsCopper() {
			continue
		}
		if p.Filled && p.Path.IsClosed() && p.LineWidth.Value() == 0 {
			continue
		}
		if p.LineWidth.Value() >= globalMin {
			continue
		}
		area, err := pathgen.PolygonOutlines(p.Path, p.LineWidth.Value(), p.Filled, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, message.MinimumCopperWidthViolation(
			message.ObjectRef{Kind: message.ObjectPolygon, ID: p.ID, Layer: p.Layer.String()},
			p.LineWidth.Value(), globalMin, paths64ToPaths(area)))
	}

	for _, pl := range data.Planes {
		min := data.GetMinCopperWidth(pl.NetClass).Value()
		if pl.MinWidth.Value() >= min {
			continue
		}
		var locs []geom.Path
		for _, f := range pl.Fragments {
			locs = append(locs, f)
		}
		out = append(out, message.MinimumCopperWidthViolation(
			message.ObjectRef{Kind: message.ObjectPlane, ID: pl.ID, Net: pl.Net, Layer: pl.Layer.String()},
			pl.MinWidth.Value(), min, locs))
	}

	for _, dev := range data.Devices {
		devID := dev.ID
		for _, p := range dev.Polygons {
			l := pathgen.EffectiveLayer(p.Layer, dev.Mirror)
			if !l.IsCopper() {
				continue
			}
			if p.Filled && p.Path.IsClosed() && p.LineWidth.Value() == 0 {
				continue
			}
			if p.LineWidth.Value() >= globalMin {
				continue
			}
			area, err := pathgen.PolygonOutlines(p.Path, p.LineWidth.Value(), p.Filled, 0)
			if err != nil {
				return nil, err
			}
			area = pathgen.TransformPaths(area, dev.Position, dev.Rotation, dev.Mirror)
			out = append(out, message.MinimumCopperWidthViolation(
				message.ObjectRef{Kind: message.ObjectPolygon, ID: p.ID, Layer: l.String(), DeviceID: &devID},
				p.LineWidth.Value(), globalMin, paths64ToPaths(area)))
		}
		for _, c := range dev.Circles {
			l := pathgen.EffectiveLayer(c.Layer, dev.Mirror)
			if !l.IsCopper() {
				continue
			}
			effWidth := c.LineWidth.Value()
			if c.Filled {
				effWidth = c.Diameter.Value()
			} else if effWidth == 0 {
				continue
			}
			if effWidth >= globalMin {
				continue
			}
			area, err := pathgen.CircleOutlines(c.Center, c.Diameter.Value(), c.LineWidth.Value(), c.Filled, 0)
			if err != nil {
				return nil, err
			}
			area = pathgen.TransformPaths(area, dev.Position, dev.Rotation, dev.Mirror)
			out = append(out, message.MinimumCopperWidthViolation(
				message.ObjectRef{Kind: message.ObjectCircle, ID: c.ID, Layer: l.String(), DeviceID: &devID},
				effWidth, globalMin, paths64ToPaths(area)))
		}
	}

	return out, nil
}
