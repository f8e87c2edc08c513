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

package board

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/LibrePCB/LibrePCB-sub022/clipper"
	"github.com/LibrePCB/LibrePCB-sub022/geom"
	"github.com/LibrePCB/LibrePCB-sub022/layer"
)

// Junction is a net-segment node: a bend point, a trace endpoint, or the
// anchor a via/pad attaches to.
type Junction struct {
	ID         uuid.UUID
	Position   geom.Point
	TraceCount int
}

// Trace is a straight copper segment on a single layer.
type Trace struct {
	ID    uuid.UUID
	P1    geom.Point
	P2    geom.Point
	Width geom.PositiveLength
	Layer layer.Layer
}

// Hole is a round or slotted drill, either plated (pad/via) or not (board,
// device).
type Hole struct {
	ID             uuid.UUID
	Diameter       geom.PositiveLength
	Path           geom.NonEmptyPath
	StopMaskOffset *geom.Length
}

// IsSlot reports whether h is an elongated slot (path has 2+ vertices)
// rather than a round drill (a single point).
func (h Hole) IsSlot() bool {
	return len(h.Path.Path()) >= 2
}

// LayerSpan is the continuous range of copper layers a via plates through.
type LayerSpan struct {
	Start, End layer.Layer
}

// Contains reports whether l's copper ordinal falls within the span. Copper
// layer IDs are assigned in top-to-bottom stack order (TopCopper lowest,
// BottomCopper highest), so raw ID comparison doubles as ordinal
// comparison without needing to know how many layers the board actually
// uses.
func (s LayerSpan) Contains(l layer.Layer) bool {
	if !l.IsCopper() {
		return false
	}
	sn, en := int(s.Start), int(s.End)
	if sn > en {
		sn, en = en, sn
	}
	return int(l) >= sn && int(l) <= en
}

// Intersect returns the overlapping copper-layer range of two spans, and
// false if they do not overlap.
func (s LayerSpan) Intersect(o LayerSpan) (LayerSpan, bool) {
	sn, en := int(s.Start), int(s.End)
	if sn > en {
		sn, en = en, sn
	}
	on, oen := int(o.Start), int(o.End)
	if on > oen {
		on, oen = oen, on
	}
	lo, hi := sn, en
	if on > lo {
		lo = on
	}
	if oen < hi {
		hi = oen
	}
	if lo > hi {
		return LayerSpan{}, false
	}
	return LayerSpan{Start: layer.Layer(lo), End: layer.Layer(hi)}, true
}

// Via is a plated through-hole connecting traces on different copper
// layers.
type Via struct {
	ID                     uuid.UUID
	Position               geom.Point
	DrillDiameter          geom.PositiveLength
	PadSize                geom.PositiveLength
	StopMaskDiameterTop    *geom.UnsignedLength
	StopMaskDiameterBottom *geom.UnsignedLength
	StartLayer             layer.Layer
	EndLayer               layer.Layer
	// DrillLayerSpan is the declared plating span. A nil value means the
	// via spans only a single (or implicit top/bottom) layer pair and is
	// reported as a "useless via" by the vias check.
	DrillLayerSpan *LayerSpan
	// ConnectedLayers lists only the copper layers on which this via
	// actually carries a trace, as populated by the snapshot builder.
	ConnectedLayers []layer.Layer
}

// Span returns the via's (start, end) layer span on the copper stack.
func (v Via) Span() LayerSpan { return LayerSpan{Start: v.StartLayer, End: v.EndLayer} }

// IsOnLayer reports whether the via's plating spans layer l.
func (v Via) IsOnLayer(l layer.Layer) bool { return v.Span().Contains(l) }

// IsBlind reports whether exactly one end of the via reaches an outermost
// copper layer.
func (v Via) IsBlind() bool {
	topEnd := v.StartLayer == layer.TopCopper || v.EndLayer == layer.TopCopper
	botEnd := v.StartLayer == layer.BottomCopper || v.EndLayer == layer.BottomCopper
	return topEnd != botEnd
}

// IsBuried reports whether neither end of the via reaches an outermost
// copper layer.
func (v Via) IsBuried() bool {
	return v.StartLayer != layer.TopCopper && v.StartLayer != layer.BottomCopper &&
		v.EndLayer != layer.TopCopper && v.EndLayer != layer.BottomCopper
}

// PadGeometryKind is the tagged-variant discriminant of PadGeometry.
type PadGeometryKind int

const (
	PadRoundedRect PadGeometryKind = iota
	PadRoundedOctagon
	PadStroke
	PadCustom
)

// PadGeometry is a pad's 2-D shape on a single layer, plus any interior
// holes. It is a tagged variant: only the fields relevant to Kind are
// populated.
type PadGeometry struct {
	Kind PadGeometryKind

	// RoundedRect / RoundedOctagon
	BaseWidth, BaseHeight geom.Length
	CornerRatio           geom.UnsignedLimitedRatio

	// Stroke
	Diameter       geom.Length
	CenterlinePath geom.Path

	// Custom
	OutlinePath geom.Path

	// Offset grows (positive) or shrinks (negative) the final outline;
	// produce a clearance-expanded copy with WithOffset.
	Offset geom.Length

	Holes []Hole
}

// WithOffset returns a copy of g with an additional signed offset applied.
func (g PadGeometry) WithOffset(offset geom.Length) PadGeometry {
	g.Offset += offset
	return g
}

// Width returns the effective width including the accumulated offset
// (RoundedRect/RoundedOctagon only).
func (g PadGeometry) Width() geom.Length { return g.BaseWidth + g.Offset*2 }

// Height returns the effective height including the accumulated offset
// (RoundedRect/RoundedOctagon only).
func (g PadGeometry) Height() geom.Length { return g.BaseHeight + g.Offset*2 }

// ToOutlines returns the filled polygon(s) this geometry covers after
// applying its offset, per spec.md §3.4: RoundedRect/RoundedOctagon bake
// the offset into width/height directly; Stroke flattens its centerline
// into the Minkowski sum with a disc of diameter+2*offset and unites the
// segments; Custom runs its outline through the polygon offsetter. At an
// offset below 0.5nm the offsetter returns the outline as it is, so a
// self-intersecting Custom outline is not normalized.
func (g PadGeometry) ToOutlines() (clipper.Paths64, error) {
	switch g.Kind {
	case PadRoundedRect:
		w, h := g.Width(), g.Height()
		if w <= 0 || h <= 0 {
			return nil, nil
		}
		r := cornerRadius(w, h, g.CornerRatio)
		return clipper.Paths64{flattenToPath64(geom.CenteredRect(w, h, r))}, nil
	case PadRoundedOctagon:
		w, h := g.Width(), g.Height()
		if w <= 0 || h <= 0 {
			return nil, nil
		}
		return clipper.Paths64{flattenToPath64(geom.Octagon(w, h, g.CornerRatio))}, nil
	case PadStroke:
		width := g.Diameter + g.Offset*2
		if width <= 0 {
			return nil, nil
		}
		strokes := g.CenterlinePath.ToOutlineStrokes(width)
		var paths clipper.Paths64
		for _, s := range strokes {
			paths = append(paths, flattenToPath64(s))
		}
		return clipper.Unite(paths)
	case PadCustom:
		path := flattenToPath64(g.OutlinePath.ToClosedPath())
		return clipper.Offset(clipper.Paths64{path}, float64(g.Offset), float64(geom.MaxArcTolerance), clipper.JoinRound, clipper.EndPolygon)
	default:
		return nil, fmt.Errorf("board: unknown pad geometry kind %d", g.Kind)
	}
}

func cornerRadius(w, h geom.Length, r geom.UnsignedLimitedRatio) geom.Length {
	short := w
	if h < short {
		short = h
	}
	return geom.Length(int64(short) * int64(r.Value()) / int64(geom.RatioPPMOne) / 2)
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

// Pad is a component footprint pad, either on a board-level segment (a
// through-hole pad shared by a net) or on a device.
type Pad struct {
	ID                      uuid.UUID
	LibPkgPadName           *string
	Position                geom.Point
	Rotation                geom.Angle
	Mirror                  bool
	Holes                   []Hole
	Geometries              map[layer.Layer][]PadGeometry
	LayersWithTraces        []layer.Layer
	CopperClearanceOverride *geom.UnsignedLength
	Net                     *string
	NetClass                *NetClass
}

// EffectiveClearance returns max(settings clearance, pad override).
func (p Pad) EffectiveClearance(settingsClearance geom.UnsignedLength) geom.UnsignedLength {
	if p.CopperClearanceOverride == nil {
		return settingsClearance
	}
	if p.CopperClearanceOverride.Value() > settingsClearance.Value() {
		return *p.CopperClearanceOverride
	}
	return settingsClearance
}

// Segment is a connected net fragment: junctions, traces, vias and the
// board-level pads they attach to, all sharing one optional net.
type Segment struct {
	ID       uuid.UUID
	Net      *string
	NetClass *NetClass
	Junctions []Junction
	Traces    []Trace
	Vias      []Via
	Pads      []Pad
}

// IsEmpty reports whether the segment carries no net items at all (a stale
// leftover that should be flagged).
func (s Segment) IsEmpty() bool {
	return len(s.Junctions) == 0 && len(s.Traces) == 0 && len(s.Vias) == 0 && len(s.Pads) == 0
}

// Plane is a large copper fill whose actual area is its precomputed
// fragments (built by an external plane-fragment pass before the DRC runs).
type Plane struct {
	ID        uuid.UUID
	Net       *string
	NetClass  *NetClass
	Layer     layer.Layer
	MinWidth  geom.UnsignedLength
	Outline   geom.Path
	Fragments []geom.Path
}

// Polygon is a board- or device-local drawn outline, optionally filled.
type Polygon struct {
	ID        uuid.UUID
	Layer     layer.Layer
	LineWidth geom.UnsignedLength
	Filled    bool
	Path      geom.Path
}

// Circle is a board- or device-local drawn circle, optionally filled.
type Circle struct {
	ID        uuid.UUID
	Center    geom.Point
	Diameter  geom.PositiveLength
	Layer     layer.Layer
	LineWidth geom.UnsignedLength
	Filled    bool
}

// StrokeText is rendered font outline geometry, already stroked into paths
// by an external text-shaping step.
type StrokeText struct {
	ID          uuid.UUID
	Position    geom.Point
	Rotation    geom.Angle
	Mirror      bool
	Layer       layer.Layer
	StrokeWidth geom.UnsignedLength
	Height      geom.UnsignedLength
	Paths       []geom.Path
}

// ZoneRules is the set of restrictions a Zone enforces; any combination may
// be set.
type ZoneRules struct {
	NoCopper   bool
	NoExposure bool
	NoDevices  bool
}

// IsEmpty reports whether no rule is set, in which case the zone is
// reported as useless.
func (r ZoneRules) IsEmpty() bool { return !r.NoCopper && !r.NoExposure && !r.NoDevices }

// FootprintLayers selects top/inner/bottom for a device-local zone; the
// concrete copper/mask layer is resolved against the device's mirror state
// when the zone is evaluated.
type FootprintLayers struct {
	Top, Inner, Bottom bool
}

// Zone is a user-drawn keepout region. Exactly one of BoardLayers or
// FootprintLayers is meaningful, matching which kind of zone this is.
type Zone struct {
	ID              uuid.UUID
	BoardLayers     []layer.Layer
	FootprintLayers *FootprintLayers
	Rules           ZoneRules
	Outline         geom.Path
}

// Device is a placed component instance: its pads, library-local graphics,
// and keepout zones.
type Device struct {
	ID           uuid.UUID
	InstanceName string
	Position     geom.Point
	Rotation     geom.Angle
	Mirror       bool
	Pads         []Pad
	Polygons     []Polygon
	Circles      []Circle
	StrokeTexts  []StrokeText
	Holes        []Hole
	Zones        []Zone
}

// AnchorKind discriminates which kind of net item an AirWire endpoint
// attaches to.
type AnchorKind int

const (
	AnchorPad AnchorKind = iota
	AnchorJunction
	AnchorVia
)

// Anchor is one endpoint of an AirWire.
type Anchor struct {
	Kind     AnchorKind
	ID       uuid.UUID
	Position geom.Point
}

// AirWire is a visual connection between two net anchors that are
// electrically required to be connected but are not yet routed.
type AirWire struct {
	Anchor1, Anchor2 Anchor
	Net              string
}
