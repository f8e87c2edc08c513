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

func collectDeviceShapes(dev board.Device, outlineLayer, courtyardLayer layer.Layer) (clipper.Paths64, clipper.Paths64, error) {
	var outline, courtyard clipper.Paths64
	for _, p := range dev.Polygons {
		l := pathgen.EffectiveLayer(p.Layer, dev.Mirror)
		if l != outlineLayer && l != courtyardLayer {
			continue
		}
		area, err := pathgen.PolygonOutlines(p.Path, p.LineWidth.Value(), p.Filled, 0)
		if err != nil {
			return nil, nil, err
		}
		area = pathgen.TransformPaths(area, dev.Position, dev.Rotation, dev.Mirror)
		if l == outlineLayer {
			outline = append(outline, area...)
		} else {
			courtyard = append(courtyard, area...)
		}
	}
	for _, c := range dev.Circles {
		l := pathgen.EffectiveLayer(c.Layer, dev.Mirror)
		if l != outlineLayer && l != courtyardLayer {
			continue
		}
		area, err := pathgen.CircleOutlines(c.Center, c.Diameter.Value(), c.LineWidth.Value(), c.Filled, 0)
		if err != nil {
			return nil, nil, err
		}
		area = pathgen.TransformPaths(area, dev.Position, dev.Rotation, dev.Mirror)
		if l == outlineLayer {
			outline = append(outline, area...)
		} else {
			courtyard = append(courtyard, area...)
		}
	}
	var err error
	if len(outline) > 0 {
		if outline, err = clipper.Unite(outline); err != nil {
			return nil, nil, err
		}
	}
	if len(courtyard) > 0 {
		if courtyard, err = clipper.Unite(courtyard); err != nil {
			return nil, nil, err
		}
	}
	return outline, courtyard, nil
}

// CheckDeviceClearances implements spec.md §4.5.15: on each board side,
// every pair of devices is checked for package-outline overlap (error) and
// outline-into-courtyard intrusion (warning).
func CheckDeviceClearances(data *board.Data) ([]message.Message, error) {
	var out []message.Message

	sides := []struct {
		outline   layer.Layer
		courtyard layer.Layer
	}{
		{layer.TopDeviceOutlines, layer.TopCourtyard},
		{layer.BottomDeviceOutlines, layer.BottomCourtyard},
	}

	for _, side := range sides {
		type shape struct {
			dev       board.Device
			outline   clipper.Paths64
			courtyard clipper.Paths64
		}
		var shapes []shape
		for _, dev := range data.Devices {
			outline, courtyard, err := collectDeviceShapes(dev, side.outline, side.courtyard)
			if err != nil {
				return nil, err
			}
			if len(outline) == 0 && len(courtyard) == 0 {
				continue
			}
			shapes = append(shapes, shape{dev: dev, outline: outline, courtyard: courtyard})
		}

		for i := 0; i < len(shapes); i++ {
			for j := i + 1; j < len(shapes); j++ {
				a, b := shapes[i], shapes[j]
				if locs, found, err := intersectNonEmpty(a.outline, b.outline); err != nil {
					return nil, err
				} else if found {
					out = append(out, message.OverlappingDevicesViolation(a.dev.ID, b.dev.ID, paths64ToPaths(locs)))
					continue
				}
				if locs, found, err := intersectNonEmpty(a.outline, b.courtyard); err != nil {
					return nil, err
				} else if found {
					out = append(out, message.DeviceInCourtyardViolation(a.dev.ID, b.dev.ID, paths64ToPaths(locs)))
				}
				if locs, found, err := intersectNonEmpty(b.outline, a.courtyard); err != nil {
					return nil, err
				} else if found {
					out = append(out, message.DeviceInCourtyardViolation(b.dev.ID, a.dev.ID, paths64ToPaths(locs)))
				}
			}
		}
	}

	return out, nil
}
