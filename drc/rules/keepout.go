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
	"github.com/google/uuid"

	"github.com/LibrePCB/LibrePCB-sub022/board"
	"github.com/LibrePCB/LibrePCB-sub022/board/pathgen"
	"github.com/LibrePCB/LibrePCB-sub022/clipper"
	"github.com/LibrePCB/LibrePCB-sub022/drc/message"
	"github.com/LibrePCB/LibrePCB-sub022/geom"
	"github.com/LibrePCB/LibrePCB-sub022/layer"
)

// resolvedZone is a board or device keepout zone after its layer sets have
// been resolved against the current copper stack.
type resolvedZone struct {
	id              uuid.UUID
	area            clipper.Paths64
	noCopperLayers  []layer.Layer
	noExposureLayers []layer.Layer
	noDeviceLayers  []layer.Layer
	owner           *uuid.UUID // the device this zone belongs to, if any
}

func layerContains(set []layer.Layer, l layer.Layer) bool {
	for _, s := range set {
		if s == l {
			return true
		}
	}
	return false
}

// stopMaskLayerFor returns the stop-mask layer paired with a copper layer,
// and false for inner layers (which have none).
func stopMaskLayerFor(l layer.Layer) (layer.Layer, bool) {
	switch l {
	case layer.TopCopper:
		return layer.TopStopMask, true
	case layer.BottomCopper:
		return layer.BottomStopMask, true
	default:
		return 0, false
	}
}

// deviceLayersFor returns the package-outline and documentation layers
// paired with a copper layer, and false for inner layers (which have
// none).
func deviceLayersFor(l layer.Layer) ([2]layer.Layer, bool) {
	switch l {
	case layer.TopCopper:
		return [2]layer.Layer{layer.TopDeviceOutlines, layer.TopDocumentation}, true
	case layer.BottomCopper:
		return [2]layer.Layer{layer.BottomDeviceOutlines, layer.BottomDocumentation}, true
	default:
		return [2]layer.Layer{}, false
	}
}

// resolveZone applies spec.md §4.5.11's layer-set derivation to a single
// zone (board or device), already given in absolute copper layers.
func resolveZone(id uuid.UUID, rules board.ZoneRules, copperLayers []layer.Layer, enabled map[layer.Layer]bool, outline clipper.Paths64, owner *uuid.UUID) resolvedZone {
	rz := resolvedZone{id: id, area: outline, owner: owner}

	var effective []layer.Layer
	for _, l := range copperLayers {
		if enabled[l] {
			effective = append(effective, l)
		}
	}

	if rules.NoCopper {
		rz.noCopperLayers = effective
	}
	if rules.NoExposure {
		for _, l := range effective {
			if sm, ok := stopMaskLayerFor(l); ok {
				rz.noExposureLayers = append(rz.noExposureLayers, sm)
			}
		}
	}
	if rules.NoDevices {
		for _, l := range effective {
			if dl, ok := deviceLayersFor(l); ok {
				rz.noDeviceLayers = append(rz.noDeviceLayers, dl[0], dl[1])
			}
		}
	}

	return rz
}

func footprintCopperLayers(fl *board.FootprintLayers, mirror bool, enabledCopperLayers []layer.Layer) []layer.Layer {
	var out []layer.Layer
	if fl == nil {
		return out
	}
	if fl.Top {
		if mirror {
			out = append(out, layer.BottomCopper)
		} else {
			out = append(out, layer.TopCopper)
		}
	}
	if fl.Bottom {
		if mirror {
			out = append(out, layer.TopCopper)
		} else {
			out = append(out, layer.BottomCopper)
		}
	}
	if fl.Inner {
		for _, l := range enabledCopperLayers {
			if l.IsInner() {
				out = append(out, l)
			}
		}
	}
	return out
}

// CheckKeepoutZones implements spec.md §4.5.11.
func CheckKeepoutZones(data *board.Data) ([]message.Message, error) {
	enabled := make(map[layer.Layer]bool, len(data.EnabledCopperLayers))
	for _, l := range data.EnabledCopperLayers {
		enabled[l] = true
	}

	var zones []resolvedZone
	var out []message.Message

	for _, z := range data.BoardZones {
		outline := clipper.Paths64{flattenPolygonPath(z.Outline)}
		rz := resolveZone(z.ID, z.Rules, z.BoardLayers, enabled, outline, nil)
		if len(rz.noCopperLayers) == 0 && len(rz.noExposureLayers) == 0 && len(rz.noDeviceLayers) == 0 {
			out = append(out, message.UselessZoneViolation(z.ID))
		}
		zones = append(zones, rz)
	}
	for _, dev := range data.Devices {
		devID := dev.ID
		for _, z := range dev.Zones {
			copperLayers := footprintCopperLayers(z.FootprintLayers, dev.Mirror, data.EnabledCopperLayers)
			outline := pathgen.TransformPaths(clipper.Paths64{flattenPolygonPath(z.Outline)}, dev.Position, dev.Rotation, dev.Mirror)
			rz := resolveZone(z.ID, z.Rules, copperLayers, enabled, outline, &devID)
			if len(rz.noCopperLayers) == 0 && len(rz.noExposureLayers) == 0 && len(rz.noDeviceLayers) == 0 {
				out = append(out, message.UselessZoneViolation(z.ID))
			}
			zones = append(zones, rz)
		}
	}

	for _, zone := range zones {
		if len(zone.area) == 0 {
			continue
		}

		deviceInKeepout := make(map[uuid.UUID][][]geom.Path)

		for _, dev := range data.Devices {
			if zone.owner != nil && dev.ID == *zone.owner {
				continue
			}
			for _, pad := range dev.Pads {
				for l := range pad.Geometries {
					if layerContains(zone.noCopperLayers, l) {
						area, err := pathgen.PadOutlines(pad, l, 0)
						if err != nil {
							return nil, err
						}
						if locs, found, err := intersectNonEmpty(area, zone.area); err != nil {
							return nil, err
						} else if found {
							out = append(out, message.CopperInKeepoutZoneViolation(zone.id,
								message.ObjectRef{Kind: message.ObjectPad, ID: pad.ID, Net: pad.Net, Layer: l.String()}, paths64ToPaths(locs)))
						}
					}
					if layerContains(zone.noExposureLayers, l) {
						area, err := pathgen.PadOutlines(pad, l, 0)
						if err != nil {
							return nil, err
						}
						if locs, found, err := intersectNonEmpty(area, zone.area); err != nil {
							return nil, err
						} else if found {
							out = append(out, message.ExposureInKeepoutZoneViolation(zone.id,
								message.ObjectRef{Kind: message.ObjectPad, ID: pad.ID, Net: pad.Net, Layer: l.String()}, paths64ToPaths(locs)))
						}
					}
				}
			}
			for _, p := range dev.Polygons {
				l := pathgen.EffectiveLayer(p.Layer, dev.Mirror)
				if !layerContains(zone.noCopperLayers, l) && !layerContains(zone.noExposureLayers, l) && !layerContains(zone.noDeviceLayers, l) {
					continue
				}
				area, err := pathgen.PolygonOutlines(p.Path, p.LineWidth.Value(), p.Filled, 0)
				if err != nil {
					return nil, err
				}
				area = pathgen.TransformPaths(area, dev.Position, dev.Rotation, dev.Mirror)
				locs, found, err := intersectNonEmpty(area, zone.area)
				if err != nil {
					return nil, err
				}
				if !found {
					continue
				}
				ref := message.ObjectRef{Kind: message.ObjectPolygon, ID: p.ID, Layer: l.String()}
				switch {
				case layerContains(zone.noCopperLayers, l):
					out = append(out, message.CopperInKeepoutZoneViolation(zone.id, ref, paths64ToPaths(locs)))
				case layerContains(zone.noExposureLayers, l):
					out = append(out, message.ExposureInKeepoutZoneViolation(zone.id, ref, paths64ToPaths(locs)))
				case layerContains(zone.noDeviceLayers, l):
					deviceInKeepout[dev.ID] = append(deviceInKeepout[dev.ID], paths64ToPaths(locs))
				}
			}
			for _, c := range dev.Circles {
				l := pathgen.EffectiveLayer(c.Layer, dev.Mirror)
				if !layerContains(zone.noCopperLayers, l) && !layerContains(zone.noExposureLayers, l) && !layerContains(zone.noDeviceLayers, l) {
					continue
				}
				area, err := pathgen.CircleOutlines(c.Center, c.Diameter.Value(), c.LineWidth.Value(), c.Filled, 0)
				if err != nil {
					return nil, err
				}
				area = pathgen.TransformPaths(area, dev.Position, dev.Rotation, dev.Mirror)
				locs, found, err := intersectNonEmpty(area, zone.area)
				if err != nil {
					return nil, err
				}
				if !found {
					continue
				}
				ref := message.ObjectRef{Kind: message.ObjectCircle, ID: c.ID, Layer: l.String()}
				switch {
				case layerContains(zone.noCopperLayers, l):
					out = append(out, message.CopperInKeepoutZoneViolation(zone.id, ref, paths64ToPaths(locs)))
				case layerContains(zone.noExposureLayers, l):
					out = append(out, message.ExposureInKeepoutZoneViolation(zone.id, ref, paths64ToPaths(locs)))
				case layerContains(zone.noDeviceLayers, l):
					deviceInKeepout[dev.ID] = append(deviceInKeepout[dev.ID], paths64ToPaths(locs))
				}
			}
		}

		for devID, locSlices := range deviceInKeepout {
			var all []geom.Path
			for _, s := range locSlices {
				all = append(all, s...)
			}
			out = append(out, message.DeviceInKeepoutZoneViolation(zone.id, devID, all))
		}

		for _, seg := range data.Segments {
			for _, v := range seg.Vias {
				noCopperHit := false
				for _, l := range zone.noCopperLayers {
					if v.IsOnLayer(l) {
						noCopperHit = true
						break
					}
				}
				if noCopperHit {
					area := clipper.Paths64{pathgen.ViaOutline(v, 0)}
					if locs, found, err := intersectNonEmpty(area, zone.area); err != nil {
						return nil, err
					} else if found {
						out = append(out, message.CopperInKeepoutZoneViolation(zone.id,
							message.ObjectRef{Kind: message.ObjectVia, ID: v.ID, Net: seg.Net}, paths64ToPaths(locs)))
					}
				}
				for _, l := range zone.noExposureLayers {
					var dia *geom.UnsignedLength
					switch l {
					case layer.TopStopMask:
						dia = v.StopMaskDiameterTop
					case layer.BottomStopMask:
						dia = v.StopMaskDiameterBottom
					}
					if dia == nil {
						continue
					}
					d := dia.Value()
					if d <= 0 {
						continue
					}
					area := clipper.Paths64{flattenPolygonPath(geom.Circle(d).Translate(v.Position.X, v.Position.Y))}
					if locs, found, err := intersectNonEmpty(area, zone.area); err != nil {
						return nil, err
					} else if found {
						out = append(out, message.ExposureInKeepoutZoneViolation(zone.id,
							message.ObjectRef{Kind: message.ObjectVia, ID: v.ID, Net: seg.Net}, paths64ToPaths(locs)))
					}
				}
			}
			for _, t := range seg.Traces {
				if !layerContains(zone.noCopperLayers, t.Layer) {
					continue
				}
				area := clipper.Paths64{pathgen.TraceOutline(t, 0)}
				if locs, found, err := intersectNonEmpty(area, zone.area); err != nil {
					return nil, err
				} else if found {
					out = append(out, message.CopperInKeepoutZoneViolation(zone.id,
						message.ObjectRef{Kind: message.ObjectTrace, ID: t.ID, Net: seg.Net, Layer: t.Layer.String()}, paths64ToPaths(locs)))
				}
			}
		}

		for _, p := range data.BoardPolygons {
			if !layerContains(zone.noCopperLayers, p.Layer) && !layerContains(zone.noExposureLayers, p.Layer) {
				continue
			}
			area, err := pathgen.PolygonOutlines(p.Path, p.LineWidth.Value(), p.Filled, 0)
			if err != nil {
				return nil, err
			}
			locs, found, err := intersectNonEmpty(area, zone.area)
			if err != nil {
				return nil, err
			}
			if !found {
				continue
			}
			ref := message.ObjectRef{Kind: message.ObjectPolygon, ID: p.ID, Layer: p.Layer.String()}
			if layerContains(zone.noCopperLayers, p.Layer) {
				out = append(out, message.CopperInKeepoutZoneViolation(zone.id, ref, paths64ToPaths(locs)))
			} else {
				out = append(out, message.ExposureInKeepoutZoneViolation(zone.id, ref, paths64ToPaths(locs)))
			}
		}
	}

	return out, nil
}
