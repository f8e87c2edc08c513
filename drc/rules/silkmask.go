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
	"github.com/LibrePCB/LibrePCB-sub022/layer"
)

// boardArea returns the board's own drawn shape: the union of outline
// polygons with every cutout subtracted.
func boardArea(data *board.Data) (clipper.Paths64, error) {
	var outlines, cutouts clipper.Paths64
	for _, p := range data.BoardPolygons {
		switch p.Layer {
		case layer.BoardOutlines:
			outlines = append(outlines, flattenPolygonPath(p.Path))
		case layer.BoardCutouts, layer.BoardPlatedCutouts:
			cutouts = append(cutouts, flattenPolygonPath(p.Path))
		}
	}
	if len(outlines) == 0 {
		return nil, nil
	}
	united, err := clipper.Unite(outlines)
	if err != nil {
		return nil, err
	}
	if len(cutouts) == 0 {
		return united, nil
	}
	cutUnited, err := clipper.Unite(cutouts)
	if err != nil {
		return nil, err
	}
	return clipper.Subtract(united, cutUnited)
}

// CheckSilkscreenStopmaskClearance implements spec.md §4.5.6. For each
// board side with silkscreen layers enabled, it builds a restricted area
// from the board shape (widened near the edge by clearance, same
// construction as the copper↔board check) intersected with the stop-mask
// openings on that side grown by clearance, then reports every silkscreen
// stroke text that overlaps it.
func CheckSilkscreenStopmaskClearance(data *board.Data) ([]message.Message, error) {
	clearance := data.Settings.MinSilkscreenStopmaskClearance.Value()
	if clearance == 0 {
		return nil, nil
	}

	sides := []struct {
		silk     []layer.Layer
		stopMask layer.Layer
	}{
		{data.TopSilkscreen, layer.TopStopMask},
		{data.BottomSilkscreen, layer.BottomStopMask},
	}

	area, err := boardArea(data)
	if err != nil {
		return nil, err
	}
	edgeBand, err := boardEdgeRestrictedArea(data, clearance)
	if err != nil {
		return nil, err
	}
	seed, err := uniteAll(area, edgeBand)
	if err != nil {
		return nil, err
	}
	if len(seed) == 0 {
		return nil, nil
	}

	var out []message.Message
	for _, side := range sides {
		if len(side.silk) == 0 {
			continue
		}

		gen := pathgen.New()
		if err := gen.AddStopMaskOpenings(data, side.stopMask, clearance); err != nil {
			return nil, err
		}
		var openings clipper.Paths64
		gen.TakePathsTo(&openings)
		if len(openings) == 0 {
			continue
		}

		restricted, found, err := intersectNonEmpty(seed, openings)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		silkLayers := make(map[layer.Layer]bool, len(side.silk))
		for _, l := range side.silk {
			silkLayers[l] = true
		}

		check := func(st board.StrokeText, transform bool, dev board.Device) error {
			area, err := pathgen.StrokeTextOutlines(st.Paths, st.StrokeWidth.Value(), 0)
			if err != nil {
				return err
			}
			if transform {
				area = pathgen.TransformPaths(area, dev.Position, dev.Rotation, dev.Mirror)
			}
			locs, found, err := intersectNonEmpty(area, restricted)
			if err != nil {
				return err
			}
			if found {
				out = append(out, message.SilkscreenStopmaskClearanceViolation(st.ID, paths64ToPaths(locs)))
			}
			return nil
		}

		for _, st := range data.BoardStrokeTexts {
			if !silkLayers[st.Layer] {
				continue
			}
			if err := check(st, false, board.Device{}); err != nil {
				return nil, err
			}
		}
		for _, dev := range data.Devices {
			for _, st := range dev.StrokeTexts {
				if !silkLayers[st.Layer] {
					continue
				}
				if err := check(st, true, dev); err != nil {
					return nil, err
				}
			}
		}
	}

	return out, nil
}
