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
	"github.com/google/uuid"

	"github.com/LibrePCB/LibrePCB-sub022/geom"
	"github.com/LibrePCB/LibrePCB-sub022/layer"
)

// Data is the immutable input snapshot the DRC consumes. Once built from a
// live board, nothing in it changes for the lifetime of a check run: worker
// threads read it concurrently without locks. Every field is a plain value
// or slice copied out of the live board at snapshot time, so mutating the
// live board afterwards (the host keeps editing while the DRC runs in the
// background) cannot perturb an in-flight run.
type Data struct {
	Settings Settings

	EnabledCopperLayers []layer.Layer
	TopSilkscreen       []layer.Layer
	BottomSilkscreen    []layer.Layer

	NetClasses map[string]*NetClass

	Segments []Segment
	Planes   []Plane

	BoardPolygons    []Polygon
	BoardStrokeTexts []StrokeText
	BoardHoles       []Hole
	BoardZones       []Zone

	Devices []Device

	AirWires           []AirWire
	UnplacedComponents map[uuid.UUID]string

	Quick bool
}

// NewData builds an empty snapshot with initialized maps/slices, ready for
// a caller (normally a one-shot snapshot-building pass over a live board,
// out of scope for this core) to populate.
func NewData(settings Settings, quick bool) *Data {
	return &Data{
		Settings:           settings,
		NetClasses:         make(map[string]*NetClass),
		UnplacedComponents: make(map[uuid.UUID]string),
		Quick:              quick,
	}
}

// Clone returns a shallow copy of d: slices and maps are copied by
// reference, their backing storage is not duplicated (Data is never
// mutated after construction, so sharing the underlying storage across
// worker goroutines is safe and is the whole point of the O(1) per-worker
// "clone").
func (d *Data) Clone() *Data {
	c := *d
	return &c
}

// GetMinCopperCopperClearance returns max(settings clearance, net class
// override), falling back to the settings value when nc is nil or carries
// no override.
func (d *Data) GetMinCopperCopperClearance(nc *NetClass) geom.UnsignedLength {
	base := d.Settings.MinCopperCopperClearance
	if nc == nil || nc.MinCopperCopperClearance == nil {
		return base
	}
	if nc.MinCopperCopperClearance.Value() > base.Value() {
		return *nc.MinCopperCopperClearance
	}
	return base
}

// GetMinCopperWidth returns max(settings min width, net class override).
func (d *Data) GetMinCopperWidth(nc *NetClass) geom.UnsignedLength {
	base := d.Settings.MinCopperWidth
	if nc == nil || nc.MinCopperWidth == nil {
		return base
	}
	if nc.MinCopperWidth.Value() > base.Value() {
		return *nc.MinCopperWidth
	}
	return base
}

// GetMinViaDrillDiameter returns max(settings min PTH drill, net class
// override).
func (d *Data) GetMinViaDrillDiameter(nc *NetClass) geom.UnsignedLength {
	base := d.Settings.MinPthDrillDiameter
	if nc == nil || nc.MinViaDrillDiameter == nil {
		return base
	}
	if nc.MinViaDrillDiameter.Value() > base.Value() {
		return *nc.MinViaDrillDiameter
	}
	return base
}
