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

// CheckCopperBoardClearance implements spec.md §4.5.2: every copper object
// is checked against a restricted area derived from the board outline and
// cutout polygons.
func CheckCopperBoardClearance(data *board.Data) ([]message.Message, error) {
	clearance := data.Settings.MinCopperBoardClearance.Value()
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
	report := func(ref message.ObjectRef, area clipper.Paths64) error {
		locs, found, err := intersectNonEmpty(area, restricted)
		if err != nil {
			return err
		}
		if found {
			out = append(out, message.CopperBoardClearanceViolation(ref, clearance, paths64ToPaths(locs)))
		}
		return nil
	}

	for _, seg := range data.Segments {
		for _, v := range seg.Vias {
			if err := report(message.ObjectRef{Kind: message.ObjectVia, ID: v.ID, Net: seg.Net},
				clipper.Paths64{pathgen.ViaOutline(v, 0)}); err != nil {
				return nil, err
			}
		}
		for _, t := range seg.Traces {
			if err := report(message.ObjectRef{Kind: message.ObjectTrace, ID: t.ID, Net: seg.Net, Layer: t.Layer.String()},
				clipper.Paths64{pathgen.TraceOutline(t, 0)}); err != nil {
				return nil, err
			}
		}
	}

	if !data.Quick {
		for _, pl := range data.Planes {
			var frag clipper.Paths64
			for _, f := range pl.Fragments {
				frag = append(frag, flattenPolygonPath(f))
			}
			if err := report(message.ObjectRef{Kind: message.ObjectPlane, ID: pl.ID, Net: pl.Net, Layer: pl.Layer.String()}, frag); err != nil {
				return nil, err
			}
		}
	}

	for _, p := range data.BoardPolygons {
		if !p.Layer.IsCopper() {
			continue
		}
		area, err := pathgen.PolygonOutlines(p.Path, p.LineWidth.Value(), p.Filled, 0)
		if err != nil {
			return nil, err
		}
		if err := report(message.ObjectRef{Kind: message.ObjectPolygon, ID: p.ID, Layer: p.Layer.String()}, area); err != nil {
			return nil, err
		}
	}
	for _, st := range data.BoardStrokeTexts {
		if !st.Layer.IsCopper() {
			continue
		}
		area, err := pathgen.StrokeTextOutlines(st.Paths, st.StrokeWidth.Value(), 0)
		if err != nil {
			return nil, err
		}
		if err := report(message.ObjectRef{Kind: message.ObjectStrokeText, ID: st.ID, Layer: st.Layer.String()}, area); err != nil {
			return nil, err
		}
	}

	for _, dev := range data.Devices {
		devID := dev.ID
		for _, pad := range dev.Pads {
			for l := range pad.Geometries {
				if !l.IsCopper() {
					continue
				}
				area, err := pathgen.PadOutlines(pad, l, 0)
				if err != nil {
					return nil, err
				}
				if err := report(message.ObjectRef{Kind: message.ObjectPad, ID: pad.ID, Layer: l.String(), Net: pad.Net, DeviceID: &devID}, area); err != nil {
					return nil, err
				}
			}
		}
		for _, p := range dev.Polygons {
			l := pathgen.EffectiveLayer(p.Layer, dev.Mirror)
			if !l.IsCopper() {
				continue
			}
			area, err := pathgen.PolygonOutlines(p.Path, p.LineWidth.Value(), p.Filled, 0)
			if err != nil {
				return nil, err
			}
			area = pathgen.TransformPaths(area, dev.Position, dev.Rotation, dev.Mirror)
			if err := report(message.ObjectRef{Kind: message.ObjectPolygon, ID: p.ID, Layer: l.String(), DeviceID: &devID}, area); err != nil {
				return nil, err
			}
		}
		for _, c := range dev.Circles {
			l := pathgen.EffectiveLayer(c.Layer, dev.Mirror)
			if !l.IsCopper() {
				continue
			}
			area, err := pathgen.CircleOutlines(c.Center, c.Diameter.Value(), c.LineWidth.Value(), c.Filled, 0)
			if err != nil {
				return nil, err
			}
			area = pathgen.TransformPaths(area, dev.Position, dev.Rotation, dev.Mirror)
			if err := report(message.ObjectRef{Kind: message.ObjectCircle, ID: c.ID, Layer: l.String(), DeviceID: &devID}, area); err != nil {
				return nil, err
			}
		}
		for _, st := range dev.StrokeTexts {
			if !st.Layer.IsCopper() {
				continue
			}
			area, err := pathgen.StrokeTextOutlines(st.Paths, st.StrokeWidth.Value(), 0)
			if err != nil {
				return nil, err
			}
			if err := report(message.ObjectRef{Kind: message.ObjectStrokeText, ID: st.ID, Layer: st.Layer.String(), DeviceID: &devID}, area); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
