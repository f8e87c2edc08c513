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

// Package rules implements the individual design-rule checks: one routine
// per rule, each consuming a board.Data snapshot (and, for the two Stage-2
// checks, a CopperLookup) and returning the messages it finds.
package rules

import (
	"github.com/google/uuid"

	"github.com/LibrePCB/LibrePCB-sub022/board"
	"github.com/LibrePCB/LibrePCB-sub022/clipper"
	"github.com/LibrePCB/LibrePCB-sub022/drc/message"
	"github.com/LibrePCB/LibrePCB-sub022/geom"
	"github.com/LibrePCB/LibrePCB-sub022/layer"
)

// clearanceSlack is subtracted from every outward clearance offset to
// absorb arc-flattening error, per spec.md §4.5's "arc tolerance slack"
// idiom.
const clearanceSlack = geom.MaxArcTolerance + 1

// CopperLookup is the read side of drc.CalculatedData. Declaring it here
// instead of importing package drc keeps rules free of a dependency cycle
// (the scheduler in package drc calls into rules); *drc.CalculatedData
// satisfies this interface structurally.
type CopperLookup interface {
	CopperPaths(l layer.Layer) (clipper.Paths64, bool)
	AllCopperAnywhere() (clipper.Paths64, error)
	AllCopperEverywhere() (clipper.Paths64, error)
}

// path64ToPath converts a flattened integer polygon back to a straight-edge
// geom.Path, for use as a message location.
func path64ToPath(p clipper.Path64) geom.Path {
	out := make(geom.Path, len(p))
	for i, pt := range p {
		out[i] = geom.Vertex{Position: geom.Point{X: geom.Length(pt.X), Y: geom.Length(pt.Y)}}
	}
	return out
}

func paths64ToPaths(ps clipper.Paths64) []geom.Path {
	out := make([]geom.Path, len(ps))
	for i, p := range ps {
		out[i] = path64ToPath(p)
	}
	return out
}

// offsetOutward grows (or, for negative delta, shrinks) paths by delta with
// rounded joins at the module's fixed arc tolerance.
func offsetOutward(paths clipper.Paths64, delta geom.Length) (clipper.Paths64, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	return clipper.Offset(paths, float64(delta), float64(geom.MaxArcTolerance), clipper.JoinRound, clipper.EndPolygon)
}

// intersectNonEmpty intersects a and b and reports whether any area
// survives, returning the flattened overlap paths for use as locations.
func intersectNonEmpty(a, b clipper.Paths64) (clipper.Paths64, bool, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, false, nil
	}
	tree, err := clipper.IntersectToTree(a, b)
	if err != nil {
		return nil, false, err
	}
	flat, err := clipper.FlattenTree(tree)
	if err != nil {
		return nil, false, err
	}
	return flat, len(flat) > 0, nil
}

// uniteAll unions every non-empty path set in sets into one.
func uniteAll(sets ...clipper.Paths64) (clipper.Paths64, error) {
	var all clipper.Paths64
	for _, s := range sets {
		all = append(all, s...)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return clipper.Unite(all)
}

// boardOutlinePolygons returns every polygon drawn on the board outline
// layer specifically (not cutouts), without unioning them: the
// board-outline sanity check needs individual contours, not a merged area.
func boardOutlinePolygons(data *board.Data) []board.Polygon {
	var out []board.Polygon
	for _, p := range data.BoardPolygons {
		if p.Layer == layer.BoardOutlines {
			out = append(out, p)
		}
	}
	return out
}

// boardEdgePolygons returns every polygon drawn on any of the three
// board-edge layers (outline, cutout, plated cutout).
func boardEdgePolygons(data *board.Data) []board.Polygon {
	var out []board.Polygon
	for _, p := range data.BoardPolygons {
		if p.Layer.IsBoardOutlineOrCutout() {
			out = append(out, p)
		}
	}
	return out
}

// boardEdgeRestrictedArea implements the restricted-area construction
// shared by spec.md §4.5.2 (copper↔board) and §4.5.5 (drill↔board): the
// outline-strokes of every board outline/cutout polygon, stroked at
// 2*clearance-2*maxArcTol (floored at 1nm), unioned together.
func boardEdgeRestrictedArea(data *board.Data, clearance geom.Length) (clipper.Paths64, error) {
	width := 2*clearance - 2*geom.MaxArcTolerance
	if width < 1 {
		width = 1
	}
	var collected clipper.Paths64
	for _, p := range boardEdgePolygons(data) {
		for _, s := range p.Path.ToOutlineStrokes(width) {
			collected = append(collected, flattenPolygonPath(s))
		}
	}
	if len(collected) == 0 {
		return nil, nil
	}
	return clipper.Unite(collected)
}

// transformHolePath applies a pad's or device's absolute position,
// rotation and mirror to a library-local hole/geometry path, preserving
// arcs (mirror first, per pathgen's transformPoint convention, so the
// winding direction and arc sign stay consistent with everything else
// built from the same transform order).
func transformHolePath(p geom.Path, pos geom.Point, rot geom.Angle, mirror bool) geom.Path {
	if mirror {
		p = p.Mirror(0)
	}
	p = p.Rotate(geom.Point{}, rot)
	return p.Translate(pos.X, pos.Y)
}

// transformHole returns a copy of h with its path moved into absolute
// board coordinates via transformHolePath.
func transformHole(h board.Hole, pos geom.Point, rot geom.Angle, mirror bool) board.Hole {
	transformed := transformHolePath(h.Path.Path(), pos, rot, mirror)
	np, _ := geom.NewNonEmptyPath(transformed)
	h.Path = np
	return h
}

// holeFromPoint builds a single-point (round drill) Hole at an absolute
// position, used to fold vias into the shared drill-item collection.
func holeFromPoint(id uuid.UUID, pos geom.Point, diameter geom.Length) (board.Hole, bool) {
	d, err := geom.NewPositiveLength(diameter)
	if err != nil {
		return board.Hole{}, false
	}
	np, _ := geom.NewNonEmptyPath(geom.Path{{Position: pos}})
	return board.Hole{ID: id, Diameter: d, Path: np}, true
}

// drillItem is one drill-bearing object considered by the drill↔drill and
// drill↔board-edge checks: a via's own drill, a pad hole, a board hole, or
// a device hole, all normalized to an absolute-coordinate board.Hole.
type drillItem struct {
	ref  message.ObjectRef
	hole board.Hole
}

// collectDrillItems gathers every drill-bearing object in data, in
// absolute board coordinates, per spec.md §4.5.4/§4.5.5/§4.5.9.
func collectDrillItems(data *board.Data) []drillItem {
	var items []drillItem

	for _, seg := range data.Segments {
		for _, v := range seg.Vias {
			if h, ok := holeFromPoint(v.ID, v.Position, v.DrillDiameter.Value()); ok {
				items = append(items, drillItem{ref: message.ObjectRef{Kind: message.ObjectVia, ID: v.ID, Net: seg.Net}, hole: h})
			}
		}
		for _, pad := range seg.Pads {
			for _, h := range pad.Holes {
				abs := transformHole(h, pad.Position, pad.Rotation, pad.Mirror)
				items = append(items, drillItem{ref: message.ObjectRef{Kind: message.ObjectHole, ID: h.ID, Net: seg.Net}, hole: abs})
			}
		}
	}

	for _, h := range data.BoardHoles {
		items = append(items, drillItem{ref: message.ObjectRef{Kind: message.ObjectHole, ID: h.ID}, hole: h})
	}

	for _, dev := range data.Devices {
		devID := dev.ID
		for _, h := range dev.Holes {
			abs := transformHole(h, dev.Position, dev.Rotation, dev.Mirror)
			items = append(items, drillItem{ref: message.ObjectRef{Kind: message.ObjectHole, ID: h.ID, DeviceID: &devID}, hole: abs})
		}
		for _, pad := range dev.Pads {
			for _, h := range pad.Holes {
				abs := transformHole(h, pad.Position, pad.Rotation, pad.Mirror)
				items = append(items, drillItem{ref: message.ObjectRef{Kind: message.ObjectHole, ID: h.ID, DeviceID: &devID, Net: pad.Net}, hole: abs})
			}
		}
	}

	return items
}

// pointInPaths reports whether pt lies inside an odd number of the given
// contours (even-odd rule), used by the invalid-pad-connection check to
// test a pad's local origin against its own copper geometry.
func pointInPaths(paths clipper.Paths64, pt clipper.Point64) bool {
	inside := false
	for _, poly := range paths {
		n := len(poly)
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			pi, pj := poly[i], poly[j]
			if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
				xint := float64(pj.X-pi.X)*float64(pt.Y-pi.Y)/float64(pj.Y-pi.Y) + float64(pi.X)
				if float64(pt.X) < xint {
					inside = !inside
				}
			}
		}
	}
	return inside
}

func flattenPolygonPath(p geom.Path) clipper.Path64 {
	pts := p.Flatten(geom.MaxArcTolerance)
	out := make(clipper.Path64, len(pts))
	for i, pt := range pts {
		out[i] = clipper.Point64{X: int64(pt.X), Y: int64(pt.Y)}
	}
	return out
}
