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

// Package pathgen turns board entities into the filled polygon sets every
// rule check reasons about. A Generator accumulates polygons from whatever
// sequence of Add calls a check makes and hands the union out once via
// TakePathsTo.
package pathgen

import (
	"github.com/LibrePCB/LibrePCB-sub022/board"
	"github.com/LibrePCB/LibrePCB-sub022/clipper"
	"github.com/LibrePCB/LibrePCB-sub022/geom"
	"github.com/LibrePCB/LibrePCB-sub022/layer"
)

// NetFilter reports whether an (optional) net matches a query. A nil *string
// denotes "no net" (planeless polygons, stroke texts, board artwork).
type NetFilter func(net *string) bool

// MatchAllNets is a NetFilter that accepts every net, including no net.
func MatchAllNets(*string) bool { return true }

// MatchNets returns a NetFilter matching exactly the given nets (pass nil
// in nets to also match items with no net).
func MatchNets(nets ...*string) NetFilter {
	set := make(map[string]bool, len(nets))
	matchNone := false
	for _, n := range nets {
		if n == nil {
			matchNone = true
		} else {
			set[*n] = true
		}
	}
	return func(net *string) bool {
		if net == nil {
			return matchNone
		}
		return set[*net]
	}
}

// Generator accumulates a polygon set across repeated Add calls. The
// caller creates one instance and reuses it for each layer/filter
// combination it needs; TakePathsTo hands the accumulated slice itself to
// the caller and leaves the generator empty, so the next Add call starts a
// new buffer.
type Generator struct {
	buf clipper.Paths64
}

// New returns a ready-to-use Generator.
func New() *Generator { return &Generator{} }

// Reset discards any accumulated paths without returning them.
func (g *Generator) Reset() { g.buf = g.buf[:0] }

// TakePathsTo moves the accumulated polygon set into out and resets g.
func (g *Generator) TakePathsTo(out *clipper.Paths64) {
	*out = g.buf
	g.buf = nil
}

func (g *Generator) addPaths(paths clipper.Paths64) error {
	if len(paths) == 0 {
		return nil
	}
	if len(g.buf) == 0 {
		g.buf = paths
		return nil
	}
	merged, err := clipper.Unite(append(g.buf, paths...))
	if err != nil {
		return err
	}
	g.buf = merged
	return nil
}

// flattenToPath64 flattens a geom.Path's arcs per the fixed arc tolerance
// and converts it to the polygon kernel's integer point type.
func flattenToPath64(p geom.Path) clipper.Path64 {
	pts := p.Flatten(geom.MaxArcTolerance)
	out := make(clipper.Path64, len(pts))
	for i, pt := range pts {
		out[i] = clipper.Point64{X: int64(pt.X), Y: int64(pt.Y)}
	}
	return out
}

func transformPoint(pt clipper.Point64, pos geom.Point, rot geom.Angle, mirror bool) clipper.Point64 {
	gp := geom.Point{X: geom.Length(pt.X), Y: geom.Length(pt.Y)}
	if mirror {
		gp = gp.Mirror(0)
	}
	gp = gp.Rotate(geom.Point{}, rot)
	gp = gp.Translate(pos.X, pos.Y)
	return clipper.Point64{X: int64(gp.X), Y: int64(gp.Y)}
}

func transformPath(p clipper.Path64, pos geom.Point, rot geom.Angle, mirror bool) clipper.Path64 {
	out := make(clipper.Path64, len(p))
	for i, pt := range p {
		out[i] = transformPoint(pt, pos, rot, mirror)
	}
	return out
}

// TransformPaths applies a device/pad's absolute position, rotation and
// mirror to library-local polygon paths.
func TransformPaths(ps clipper.Paths64, pos geom.Point, rot geom.Angle, mirror bool) clipper.Paths64 {
	out := make(clipper.Paths64, len(ps))
	for i, p := range ps {
		out[i] = transformPath(p, pos, rot, mirror)
	}
	return out
}

// PolygonOutlines returns the filled area and/or outline stroke of a
// drawn path, per spec.md §4.2's addPolygon: outline-stroke of
// lineWidth+2*offset (if lineWidth > 0) and filled-area with offset
// applied (if filled and the path is closed).
func PolygonOutlines(path geom.Path, lineWidth geom.Length, filled bool, offset geom.Length) (clipper.Paths64, error) {
	var collected clipper.Paths64
	if lineWidth > 0 {
		width := lineWidth + 2*offset
		if width > 0 {
			for _, s := range path.ToOutlineStrokes(width) {
				collected = append(collected, flattenToPath64(s))
			}
		}
	}
	if filled && path.IsClosed() {
		filledPath := flattenToPath64(path)
		if len(filledPath) > 0 {
			if offset != 0 {
				offsetPaths, err := clipper.Offset(clipper.Paths64{filledPath}, float64(offset), float64(geom.MaxArcTolerance), clipper.JoinRound, clipper.EndPolygon)
				if err != nil {
					return nil, err
				}
				collected = append(collected, offsetPaths...)
			} else {
				collected = append(collected, filledPath)
			}
		}
	}
	if len(collected) == 0 {
		return nil, nil
	}
	return clipper.Unite(collected)
}

// CircleOutlines is PolygonOutlines specialized to a circle of the given
// diameter centered at center.
func CircleOutlines(center geom.Point, diameter, lineWidth geom.Length, filled bool, offset geom.Length) (clipper.Paths64, error) {
	path := geom.Circle(diameter).Translate(center.X, center.Y)
	return PolygonOutlines(path, lineWidth, filled, offset)
}

// ViaOutline returns the via's copper disc (pad size + 2*offset), nil if
// the resulting diameter is non-positive.
func ViaOutline(v board.Via, offset geom.Length) clipper.Path64 {
	d := v.PadSize.Value() + 2*offset
	if d <= 0 {
		return nil
	}
	return flattenToPath64(geom.Circle(d).Translate(v.Position.X, v.Position.Y))
}

// TraceOutline returns the trace's stroked obround (width + 2*offset), nil
// if the resulting width is non-positive.
func TraceOutline(t board.Trace, offset geom.Length) clipper.Path64 {
	width := t.Width.Value() + 2*offset
	if width <= 0 {
		return nil
	}
	return flattenToPath64(geom.Obround(t.P1, t.P2, width))
}

// HoleOutline returns the area a hole (round drill or elongated slot)
// occupies when stroked at its diameter plus 2*offset.
func HoleOutline(h board.Hole, offset geom.Length) (clipper.Paths64, error) {
	width := h.Diameter.Value() + 2*offset
	if width <= 0 {
		return nil, nil
	}
	p := h.Path.Path()
	if !h.IsSlot() {
		return clipper.Paths64{flattenToPath64(geom.Circle(width).Translate(p[0].Position.X, p[0].Position.Y))}, nil
	}
	var collected clipper.Paths64
	for _, s := range p.ToOutlineStrokes(width) {
		collected = append(collected, flattenToPath64(s))
	}
	if len(collected) == 0 {
		return nil, nil
	}
	return clipper.Unite(collected)
}

// StrokeTextOutlines returns the union of the stroked outlines of a stroke
// text's already-shaped glyph paths.
func StrokeTextOutlines(paths []geom.Path, strokeWidth geom.Length, offset geom.Length) (clipper.Paths64, error) {
	width := strokeWidth + 2*offset
	if width <= 0 {
		return nil, nil
	}
	var collected clipper.Paths64
	for _, p := range paths {
		for _, s := range p.ToOutlineStrokes(width) {
			collected = append(collected, flattenToPath64(s))
		}
	}
	if len(collected) == 0 {
		return nil, nil
	}
	return clipper.Unite(collected)
}

// PadOutlines returns the union of a pad's geometries on layer l, after
// applying offset and the pad's absolute position/rotation/mirror.
func PadOutlines(pad board.Pad, l layer.Layer, offset geom.Length) (clipper.Paths64, error) {
	var collected clipper.Paths64
	for _, pg := range pad.Geometries[l] {
		outs, err := pg.WithOffset(offset).ToOutlines()
		if err != nil {
			return nil, err
		}
		collected = append(collected, TransformPaths(outs, pad.Position, pad.Rotation, pad.Mirror)...)
	}
	if len(collected) == 0 {
		return nil, nil
	}
	return clipper.Unite(collected)
}

// AddVia unions a via's copper disc into the accumulator.
func (g *Generator) AddVia(v board.Via, offset geom.Length) error {
	p := ViaOutline(v, offset)
	if p == nil {
		return nil
	}
	return g.addPaths(clipper.Paths64{p})
}

// AddTrace unions a trace's stroked obround into the accumulator.
func (g *Generator) AddTrace(t board.Trace, offset geom.Length) error {
	p := TraceOutline(t, offset)
	if p == nil {
		return nil
	}
	return g.addPaths(clipper.Paths64{p})
}

// AddPlane unions precomputed plane fragments into the accumulator
// verbatim; the plane-fragment builder has already resolved pours against
// other copper, so no offset is applied here.
func (g *Generator) AddPlane(fragments []geom.Path) error {
	paths := make(clipper.Paths64, 0, len(fragments))
	for _, f := range fragments {
		paths = append(paths, flattenToPath64(f))
	}
	return g.addPaths(paths)
}

// AddPolygon unions a drawn path's outline/fill into the accumulator.
func (g *Generator) AddPolygon(path geom.Path, lineWidth geom.Length, filled bool, offset geom.Length) error {
	outs, err := PolygonOutlines(path, lineWidth, filled, offset)
	if err != nil {
		return err
	}
	return g.addPaths(outs)
}

// AddCircle unions a drawn circle's outline/fill into the accumulator.
func (g *Generator) AddCircle(center geom.Point, diameter, lineWidth geom.Length, filled bool, offset geom.Length) error {
	outs, err := CircleOutlines(center, diameter, lineWidth, filled, offset)
	if err != nil {
		return err
	}
	return g.addPaths(outs)
}

// AddStrokeText unions a stroke text's glyph outlines into the
// accumulator.
func (g *Generator) AddStrokeText(paths []geom.Path, strokeWidth geom.Length, offset geom.Length) error {
	outs, err := StrokeTextOutlines(paths, strokeWidth, offset)
	if err != nil {
		return err
	}
	return g.addPaths(outs)
}

// AddHole unions a hole's stroked area into the accumulator.
func (g *Generator) AddHole(h board.Hole, offset geom.Length) error {
	outs, err := HoleOutline(h, offset)
	if err != nil {
		return err
	}
	return g.addPaths(outs)
}

// AddPad unions a pad's geometry on layer l into the accumulator.
func (g *Generator) AddPad(pad board.Pad, l layer.Layer, offset geom.Length) error {
	outs, err := PadOutlines(pad, l, offset)
	if err != nil {
		return err
	}
	return g.addPaths(outs)
}

// EffectiveLayer returns the layer a device-local graphic actually ends up
// on once the device's mirror flag is applied.
func EffectiveLayer(l layer.Layer, mirror bool) layer.Layer {
	if mirror {
		return l.Mirror()
	}
	return l
}

// AddCopper accumulates everything drawn on layer l and matching
// netFilter, in the order spec.md §4.2 mandates: board polygons, board
// stroke texts, plane fragments (unless ignorePlanes), device geometry,
// then net-segment vias and traces.
func (g *Generator) AddCopper(data *board.Data, l layer.Layer, netFilter NetFilter, ignorePlanes bool) error {
	for _, p := range data.BoardPolygons {
		if p.Layer != l || !netFilter(nil) {
			continue
		}
		if err := g.AddPolygon(p.Path, p.LineWidth.Value(), p.Filled, 0); err != nil {
			return err
		}
	}
	for _, st := range data.BoardStrokeTexts {
		if st.Layer != l || !netFilter(nil) {
			continue
		}
		if err := g.AddStrokeText(st.Paths, st.StrokeWidth.Value(), 0); err != nil {
			return err
		}
	}
	if !ignorePlanes {
		for _, pl := range data.Planes {
			if pl.Layer != l || !netFilter(pl.Net) {
				continue
			}
			if err := g.AddPlane(pl.Fragments); err != nil {
				return err
			}
		}
	}
	for _, dev := range data.Devices {
		for _, pad := range dev.Pads {
			if !netFilter(pad.Net) {
				continue
			}
			if err := g.AddPad(pad, l, 0); err != nil {
				return err
			}
		}
		if !netFilter(nil) {
			continue
		}
		for _, p := range dev.Polygons {
			if EffectiveLayer(p.Layer, dev.Mirror) != l {
				continue
			}
			outs, err := PolygonOutlines(p.Path, p.LineWidth.Value(), p.Filled, 0)
			if err != nil {
				return err
			}
			if err := g.addPaths(TransformPaths(outs, dev.Position, dev.Rotation, dev.Mirror)); err != nil {
				return err
			}
		}
		for _, c := range dev.Circles {
			if EffectiveLayer(c.Layer, dev.Mirror) != l {
				continue
			}
			outs, err := CircleOutlines(c.Center, c.Diameter.Value(), c.LineWidth.Value(), c.Filled, 0)
			if err != nil {
				return err
			}
			if err := g.addPaths(TransformPaths(outs, dev.Position, dev.Rotation, dev.Mirror)); err != nil {
				return err
			}
		}
		for _, st := range dev.StrokeTexts {
			// Stroke-text layers are never remapped by the device mirror:
			// they are independent of it (spec.md §4.2).
			if st.Layer != l {
				continue
			}
			if err := g.AddStrokeText(st.Paths, st.StrokeWidth.Value(), 0); err != nil {
				return err
			}
		}
	}
	for _, seg := range data.Segments {
		if !netFilter(seg.Net) {
			continue
		}
		for _, v := range seg.Vias {
			if !v.IsOnLayer(l) {
				continue
			}
			if err := g.AddVia(v, 0); err != nil {
				return err
			}
		}
		for _, t := range seg.Traces {
			if t.Layer != l {
				continue
			}
			if err := g.AddTrace(t, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddStopMaskOpenings accumulates everything that leaves copper exposed
// through stopMaskLayer: board polygons/stroke-texts on that layer, holes
// carrying an explicit stop-mask offset, matching device geometry, and
// vias whose stop-mask diameter is set on the matching side.
func (g *Generator) AddStopMaskOpenings(data *board.Data, stopMaskLayer layer.Layer, offset geom.Length) error {
	for _, p := range data.BoardPolygons {
		if p.Layer != stopMaskLayer {
			continue
		}
		if err := g.AddPolygon(p.Path, p.LineWidth.Value(), p.Filled, offset); err != nil {
			return err
		}
	}
	for _, st := range data.BoardStrokeTexts {
		if st.Layer != stopMaskLayer {
			continue
		}
		if err := g.AddStrokeText(st.Paths, st.StrokeWidth.Value(), offset); err != nil {
			return err
		}
	}
	for _, h := range data.BoardHoles {
		if h.StopMaskOffset == nil {
			continue
		}
		if err := g.AddHole(h, *h.StopMaskOffset+offset); err != nil {
			return err
		}
	}
	for _, dev := range data.Devices {
		for _, p := range dev.Polygons {
			if EffectiveLayer(p.Layer, dev.Mirror) != stopMaskLayer {
				continue
			}
			outs, err := PolygonOutlines(p.Path, p.LineWidth.Value(), p.Filled, offset)
			if err != nil {
				return err
			}
			if err := g.addPaths(TransformPaths(outs, dev.Position, dev.Rotation, dev.Mirror)); err != nil {
				return err
			}
		}
		for _, c := range dev.Circles {
			if EffectiveLayer(c.Layer, dev.Mirror) != stopMaskLayer {
				continue
			}
			outs, err := CircleOutlines(c.Center, c.Diameter.Value(), c.LineWidth.Value(), c.Filled, offset)
			if err != nil {
				return err
			}
			if err := g.addPaths(TransformPaths(outs, dev.Position, dev.Rotation, dev.Mirror)); err != nil {
				return err
			}
		}
		for _, st := range dev.StrokeTexts {
			if st.Layer != stopMaskLayer {
				continue
			}
			if err := g.AddStrokeText(st.Paths, st.StrokeWidth.Value(), offset); err != nil {
				return err
			}
		}
		for _, h := range dev.Holes {
			if h.StopMaskOffset == nil {
				continue
			}
			outs, err := HoleOutline(h, *h.StopMaskOffset+offset)
			if err != nil {
				return err
			}
			if err := g.addPaths(TransformPaths(outs, dev.Position, dev.Rotation, dev.Mirror)); err != nil {
				return err
			}
		}
		for _, pad := range dev.Pads {
			if err := g.AddPad(pad, stopMaskLayer, offset); err != nil {
				return err
			}
		}
	}
	for _, seg := range data.Segments {
		for _, v := range seg.Vias {
			var dia *geom.UnsignedLength
			switch stopMaskLayer {
			case layer.TopStopMask:
				dia = v.StopMaskDiameterTop
			case layer.BottomStopMask:
				dia = v.StopMaskDiameterBottom
			}
			if dia == nil {
				continue
			}
			d := dia.Value() + 2*offset
			if d <= 0 {
				continue
			}
			if err := g.addPaths(clipper.Paths64{flattenToPath64(geom.Circle(d).Translate(v.Position.X, v.Position.Y))}); err != nil {
				return err
			}
		}
	}
	return nil
}
