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
	"github.com/LibrePCB/LibrePCB-sub022/layer"
)

// CheckUsedLayers implements spec.md §4.5.17.
func CheckUsedLayers(data *board.Data) ([]message.Message, error) {
	used := make(map[layer.Layer]bool)

	for _, p := range data.BoardPolygons {
		if p.Layer.IsCopper() {
			used[p.Layer] = true
		}
	}
	for _, st := range data.BoardStrokeTexts {
		if st.Layer.IsCopper() {
			used[st.Layer] = true
		}
	}
	for _, pl := range data.Planes {
		used[pl.Layer] = true
	}
	for _, seg := range data.Segments {
		for _, t := range seg.Traces {
			used[t.Layer] = true
		}
	}
	for _, dev := range data.Devices {
		for _, p := range dev.Polygons {
			l := pathgen.EffectiveLayer(p.Layer, dev.Mirror)
			if l.IsCopper() {
				used[l] = true
			}
		}
		for _, c := range dev.Circles {
			l := pathgen.EffectiveLayer(c.Layer, dev.Mirror)
			if l.IsCopper() {
				used[l] = true
			}
		}
	}

	enabled := make(map[layer.Layer]bool, len(data.EnabledCopperLayers))
	for _, l := range data.EnabledCopperLayers {
		enabled[l] = true
	}

	var out []message.Message
	for l := range used {
		if !enabled[l] {
			out = append(out, message.DisabledLayerUsedViolation(l.String()))
		}
	}
	for _, l := range data.EnabledCopperLayers {
		if l == layer.TopCopper || l == layer.BottomCopper {
			continue
		}
		if !used[l] {
			out = append(out, message.UnusedLayerViolation(l.String()))
		}
	}

	return out, nil
}
