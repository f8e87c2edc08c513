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

// cuItem is one copper-bearing object considered by the copper↔copper
// clearance check.
type cuItem struct {
	ref           message.ObjectRef
	copperArea    clipper.Paths64
	clearanceArea clipper.Paths64
	span          board.LayerSpan
	net           *string
	clearance     geom.Length
}

// CheckCopperCopperClearance implements spec.md §4.5.1.
func CheckCopperCopperClearance(data *board.Data) ([]message.Message, error) {
	items, err := collectCopperItems(data)
	if err != nil {
		return nil, err
	}

	type merged struct {
		ref1, ref2 message.ObjectRef
		layers     map[string]bool
		clearance  geom.Length
		locations  []geom.Path
	}
	var violations []merged

	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			a, b := items[i], items[j]
			if a.net != nil && b.net != nil && *a.net == *b.net {
				continue
			}
			if _, ok := a.span.Intersect(b.span); !ok {
				continue
			}
			if a.clearance == 0 && b.clearance == 0 {
				continue
			}

			locs, found, err := intersectNonEmpty(a.copperArea, b.clearanceArea)
			if err != nil {
				return nil, err
			}
			checkReverse := b.clearance > a.clearance || found
			if checkReverse {
				locs2, found2, err := intersectNonEmpty(b.copperArea, a.clearanceArea)
				if err != nil {
					return nil, err
				}
				if found2 {
					locs = append(locs, locs2...)
					found = true
				}
			}
			if !found {
				continue
			}

			clearance := a.clearance
			if b.clearance > clearance {
				clearance = b.clearance
			}
			violations = append(violations, merged{
				ref1:      a.ref,
				ref2:      b.ref,
				clearance: clearance,
				locations: paths64ToPaths(locs),
				layers:    map[string]bool{a.span.Start.String(): true, a.span.End.String(): true, b.span.Start.String(): true, b.span.End.String(): true},
			})
		}
	}

	out := make([]message.Message, 0, len(violations))
	for _, v := range violations {
		layers := make([]string, 0, len(v.layers))
		for l := range v.layers {
			layers = append(layers, l)
		}
		out = append(out, message.CopperCopperClearanceViolation(v.ref1, v.ref2, layers, v.clearance, v.locations))
	}
	return out, nil
}

func collectCopperItems(data *board.Data) ([]cuItem, error) {
	var items []cuItem

	for _, seg := range data.Segments {
		clearance := data.GetMinCopperCopperClearance(seg.NetClass).Value()
		for _, v := range seg.Vias {
			if clearance == 0 {
				continue
			}
			copperArea := clipper.Paths64{pathgen.ViaOutline(v, 0)}
			clearanceArea := clipper.Paths64{pathgen.ViaOutline(v, clearance-clearanceSlack)}
			items = append(items, cuItem{
				ref:           message.ObjectRef{Kind: message.ObjectVia, ID: v.ID, Net: seg.Net},
				copperArea:    copperArea,
				clearanceArea: clearanceArea,
				span:          v.Span(),
				net:           seg.Net,
				clearance:     clearance,
			})
		}
		for _, t := range seg.Traces {
			if clearance == 0 {
				continue
			}
			copperArea := clipper.Paths64{pathgen.TraceOutline(t, 0)}
			clearanceArea := clipper.Paths64{pathgen.TraceOutline(t, clearance-clearanceSlack)}
			items = append(items, cuItem{
				ref:           message.ObjectRef{Kind: message.ObjectTrace, ID: t.ID, Net: seg.Net, Layer: t.Layer.String()},
				copperArea:    copperArea,
				clearanceArea: clearanceArea,
				span:          board.LayerSpan{Start: t.Layer, End: t.Layer},
				net:           seg.Net,
				clearance:     clearance,
			})
		}
	}

	if !data.Quick {
		for _, pl := range data.Planes {
			clearance := data.GetMinCopperCopperClearance(pl.NetClass).Value()
			if clearance == 0 {
				continue
			}
			var frag clipper.Paths64
			for _, f := range pl.Fragments {
				frag = append(frag, flattenPolygonPath(f))
			}
			copperArea, err := clipper.Unite(frag)
			if err != nil {
				return nil, err
			}
			clearanceArea, err := offsetOutward(copperArea, clearance-clearanceSlack)
			if err != nil {
				return nil, err
			}
			items = append(items, cuItem{
				ref:           message.ObjectRef{Kind: message.ObjectPlane, ID: pl.ID, Net: pl.Net, Layer: pl.Layer.String()},
				copperArea:    copperArea,
				clearanceArea: clearanceArea,
				span:          board.LayerSpan{Start: pl.Layer, End: pl.Layer},
				net:           pl.Net,
				clearance:     clearance,
			})
		}
	}

	clearance := data.Settings.MinCopperCopperClearance.Value()
	if clearance > 0 {
		for _, p := range data.BoardPolygons {
			if !p.Layer.IsCopper() {
				continue
			}
			copperArea, err := pathgen.PolygonOutlines(p.Path, p.LineWidth.Value(), p.Filled, 0)
			if err != nil {
				return nil, err
			}
			clearanceArea, err := offsetOutward(copperArea, clearance-clearanceSlack)
			if err != nil {
				return nil, err
			}
			items = append(items, cuItem{
				ref:           message.ObjectRef{Kind: message.ObjectPolygon, ID: p.ID, Layer: p.Layer.String()},
				copperArea:    copperArea,
				clearanceArea: clearanceArea,
				span:          board.LayerSpan{Start: p.Layer, End: p.Layer},
				clearance:     clearance,
			})
		}
		for _, st := range data.BoardStrokeTexts {
			if !st.Layer.IsCopper() {
				continue
			}
			copperArea, err := pathgen.StrokeTextOutlines(st.Paths, st.StrokeWidth.Value(), 0)
			if err != nil {
				return nil, err
			}
			clearanceArea, err := pathgen.StrokeTextOutlines(st.Paths, st.StrokeWidth.Value(), clearance-clearanceSlack)
			if err != nil {
				return nil, err
			}
			items = append(items, cuItem{
				ref:           message.ObjectRef{Kind: message.ObjectStrokeText, ID: st.ID, Layer: st.Layer.String()},
				copperArea:    copperArea,
				clearanceArea: clearanceArea,
				span:          board.LayerSpan{Start: st.Layer, End: st.Layer},
				clearance:     clearance,
			})
		}
	}

	for _, dev := range data.Devices {
		devID := dev.ID
		for _, pad := range dev.Pads {
			padClearance := pad.EffectiveClearance(data.GetMinCopperCopperClearance(pad.NetClass)).Value()
			if padClearance == 0 {
				continue
			}
			for l := range pad.Geometries {
				if !l.IsCopper() {
					continue
				}
				copperArea, err := pathgen.PadOutlines(pad, l, 0)
				if err != nil {
					return nil, err
				}
				clearanceArea, err := pathgen.PadOutlines(pad, l, padClearance-clearanceSlack)
				if err != nil {
					return nil, err
				}
				items = append(items, cuItem{
					ref:           message.ObjectRef{Kind: message.ObjectPad, ID: pad.ID, Layer: l.String(), Net: pad.Net, DeviceID: &devID},
					copperArea:    copperArea,
					clearanceArea: clearanceArea,
					span:          board.LayerSpan{Start: l, End: l},
					net:           pad.Net,
					clearance:     padClearance,
				})
			}
		}
		if clearance == 0 {
			continue
		}
		for _, p := range dev.Polygons {
			l := pathgen.EffectiveLayer(p.Layer, dev.Mirror)
			if !l.IsCopper() {
				continue
			}
			copperArea, err := pathgen.PolygonOutlines(p.Path, p.LineWidth.Value(), p.Filled, 0)
			if err != nil {
				return nil, err
			}
			copperArea = pathgen.TransformPaths(copperArea, dev.Position, dev.Rotation, dev.Mirror)
			clearanceArea, err := offsetOutward(copperArea, clearance-clearanceSlack)
			if err != nil {
				return nil, err
			}
			items = append(items, cuItem{
				ref:           message.ObjectRef{Kind: message.ObjectPolygon, ID: p.ID, Layer: l.String(), DeviceID: &devID},
				copperArea:    copperArea,
				clearanceArea: clearanceArea,
				span:          board.LayerSpan{Start: l, End: l},
				clearance:     clearance,
			})
		}
		for _, c := range dev.Circles {
			l := pathgen.EffectiveLayer(c.Layer, dev.Mirror)
			if !l.IsCopper() {
				continue
			}
			copperArea, err := pathgen.CircleOutlines(c.Center, c.Diameter.Value(), c.LineWidth.Value(), c.Filled, 0)
			if err != nil {
				return nil, err
			}
			copperArea = pathgen.TransformPaths(copperArea, dev.Position, dev.Rotation, dev.Mirror)
			clearanceArea, err := pathgen.CircleOutlines(c.Center, c.Diameter.Value(), c.LineWidth.Value(), c.Filled, clearance-clearanceSlack)
			if err != nil {
				return nil, err
			}
			clearanceArea = pathgen.TransformPaths(clearanceArea, dev.Position, dev.Rotation, dev.Mirror)
			items = append(items, cuItem{
				ref:           message.ObjectRef{Kind: message.ObjectCircle, ID: c.ID, Layer: l.String(), DeviceID: &devID},
				copperArea:    copperArea,
				clearanceArea: clearanceArea,
				span:          board.LayerSpan{Start: l, End: l},
				clearance:     clearance,
			})
		}
		for _, st := range dev.StrokeTexts {
			if !st.Layer.IsCopper() {
				continue
			}
			copperArea, err := pathgen.StrokeTextOutlines(st.Paths, st.StrokeWidth.Value(), 0)
			if err != nil {
				return nil, err
			}
			clearanceArea, err := pathgen.StrokeTextOutlines(st.Paths, st.StrokeWidth.Value(), clearance-clearanceSlack)
			if err != nil {
				return nil, err
			}
			items = append(items, cuItem{
				ref:           message.ObjectRef{Kind: message.ObjectStrokeText, ID: st.ID, Layer: st.Layer.String(), DeviceID: &devID},
				copperArea:    copperArea,
				clearanceArea: clearanceArea,
				span:          board.LayerSpan{Start: st.Layer, End: st.Layer},
				clearance:     clearance,
			})
		}
	}

	return items, nil
}
