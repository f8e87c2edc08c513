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

package message

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/LibrePCB/LibrePCB-sub022/geom"
)

func mm(l geom.Length) string {
	return fmt.Sprintf("%.4f mm", float64(l)/1e6)
}

func CopperCopperClearanceViolation(obj1, obj2 ObjectRef, layers []string, clearance geom.Length, locations []geom.Path) Message {
	fields := append(obj1.fields("obj1"), obj2.fields("obj2")...)
	for i, l := range layers {
		fields = append(fields, F(fmt.Sprintf("layer%d", i), l))
	}
	return New(SeverityError,
		"Clearance (copper)",
		fmt.Sprintf("Clearance between %s and %s is smaller than %s.", obj1.Kind, obj2.Kind, mm(clearance)),
		locations, "copper_copper_clearance", fields...)
}

func CopperBoardClearanceViolation(obj ObjectRef, clearance geom.Length, locations []geom.Path) Message {
	return New(SeverityError,
		"Clearance (board edge)",
		fmt.Sprintf("Clearance to the board edge is smaller than %s.", mm(clearance)),
		locations, "copper_board_clearance", obj.fields("obj")...)
}

func CopperHoleClearanceViolation(holeID uuid.UUID, clearance geom.Length, locations []geom.Path) Message {
	return New(SeverityError,
		"Clearance (hole)",
		fmt.Sprintf("Clearance between copper and a hole is smaller than %s.", mm(clearance)),
		locations, "copper_hole_clearance", F("hole", UUIDToken(holeID)))
}

func DrillDrillClearanceViolation(obj1, obj2 ObjectRef, clearance geom.Length, locations []geom.Path) Message {
	fields := append(obj1.fields("obj1"), obj2.fields("obj2")...)
	return New(SeverityError,
		"Clearance (drill)",
		fmt.Sprintf("Clearance between two drills is smaller than %s.", mm(clearance)),
		locations, "drill_drill_clearance", fields...)
}

func DrillBoardClearanceViolation(obj ObjectRef, clearance geom.Length, locations []geom.Path) Message {
	return New(SeverityError,
		"Clearance (drill to board edge)",
		fmt.Sprintf("Clearance between a drill and the board edge is smaller than %s.", mm(clearance)),
		locations, "drill_board_clearance", obj.fields("obj")...)
}

func SilkscreenStopmaskClearanceViolation(textID uuid.UUID, locations []geom.Path) Message {
	return New(SeverityWarning,
		"Clearance (silkscreen)",
		"A silkscreen text is too close to (or overlapping) a stop-mask opening.",
		locations, "silkscreen_stopmask_clearance", F("text", UUIDToken(textID)))
}

func MinimumCopperWidthViolation(obj ObjectRef, width, min geom.Length, locations []geom.Path) Message {
	return New(SeverityError,
		"Minimum copper width",
		fmt.Sprintf("Copper width %s is smaller than the minimum of %s.", mm(width), mm(min)),
		locations, "minimum_copper_width", obj.fields("obj")...)
}

func MinimumAnnularRingViolation(obj ObjectRef, actual, min geom.Length, locations []geom.Path) Message {
	return New(SeverityError,
		"Minimum annular ring",
		fmt.Sprintf("Annular ring %s is smaller than the minimum of %s.", mm(actual), mm(min)),
		locations, "minimum_annular_ring", obj.fields("obj")...)
}

func MinimumDrillDiameterViolation(holeID uuid.UUID, diameter, min geom.Length) Message {
	return New(SeverityError,
		"Minimum drill diameter",
		fmt.Sprintf("Drill diameter %s is smaller than the minimum of %s.", mm(diameter), mm(min)),
		nil, "minimum_drill_diameter", F("hole", UUIDToken(holeID)))
}

func MinimumSlotWidthViolation(holeID uuid.UUID, diameter, min geom.Length) Message {
	return New(SeverityError,
		"Minimum slot width",
		fmt.Sprintf("Slot width %s is smaller than the minimum of %s.", mm(diameter), mm(min)),
		nil, "minimum_slot_width", F("hole", UUIDToken(holeID)))
}

func MinimumSilkscreenWidthViolation(obj ObjectRef, width, min geom.Length, locations []geom.Path) Message {
	return New(SeverityWarning,
		"Minimum silkscreen width",
		fmt.Sprintf("Silkscreen width %s is smaller than the minimum of %s.", mm(width), mm(min)),
		locations, "minimum_silkscreen_width", obj.fields("obj")...)
}

func MinimumSilkscreenTextHeightViolation(textID uuid.UUID, height, min geom.Length, locations []geom.Path) Message {
	return New(SeverityWarning,
		"Minimum silkscreen text height",
		fmt.Sprintf("Text height %s is smaller than the minimum of %s.", mm(height), mm(min)),
		locations, "minimum_silkscreen_text_height", F("text", UUIDToken(textID)))
}

func CopperInKeepoutZoneViolation(zoneID uuid.UUID, obj ObjectRef, locations []geom.Path) Message {
	fields := append([]field{F("zone", UUIDToken(zoneID))}, obj.fields("obj")...)
	return New(SeverityError,
		"Copper in keepout zone",
		"Copper is located inside a keepout zone that forbids copper.",
		locations, "copper_in_keepout_zone", fields...)
}

func ExposureInKeepoutZoneViolation(zoneID uuid.UUID, obj ObjectRef, locations []geom.Path) Message {
	fields := append([]field{F("zone", UUIDToken(zoneID))}, obj.fields("obj")...)
	return New(SeverityError,
		"Exposure in keepout zone",
		"A stop-mask opening is located inside a keepout zone that forbids exposure.",
		locations, "exposure_in_keepout_zone", fields...)
}

func DeviceInKeepoutZoneViolation(zoneID, deviceID uuid.UUID, locations []geom.Path) Message {
	return New(SeverityError,
		"Device in keepout zone",
		"A device body is located inside a keepout zone that forbids devices.",
		locations, "device_in_keepout_zone", F("zone", UUIDToken(zoneID)), F("device", UUIDToken(deviceID)))
}

func UselessZoneViolation(zoneID uuid.UUID) Message {
	return New(SeverityWarning,
		"Useless zone",
		"This keepout zone has no effective layer or carries no active rule.",
		nil, "useless_zone", F("zone", UUIDToken(zoneID)))
}

func UselessViaViolation(viaID uuid.UUID) Message {
	return New(SeverityWarning,
		"Useless via",
		"This via only spans a single copper layer and has no effect.",
		nil, "useless_via", F("via", UUIDToken(viaID)))
}

func ForbiddenViaViolation(viaID uuid.UUID, reason string) Message {
	return New(SeverityError,
		"Forbidden via",
		fmt.Sprintf("This via is %s, which is not allowed by the board settings.", reason),
		nil, "forbidden_via", F("via", UUIDToken(viaID)), F("reason", reason))
}

func ForbiddenSlotViolation(holeID uuid.UUID, policy string) Message {
	return New(SeverityWarning,
		"Forbidden slot",
		fmt.Sprintf("This hole is a slot shape not permitted by the %s policy.", policy),
		nil, "forbidden_slot", F("hole", UUIDToken(holeID)), F("policy", policy))
}

func InvalidPadConnectionViolation(padID uuid.UUID, l string, location geom.Point) Message {
	return New(SeverityError,
		"Invalid pad connection",
		"A trace connects to a pad on a layer where the pad has no copper.",
		[]geom.Path{{{Position: location}}}, "invalid_pad_connection", F("pad", UUIDToken(padID)), F("layer", l))
}

func OverlappingDevicesViolation(dev1, dev2 uuid.UUID, locations []geom.Path) Message {
	return New(SeverityError,
		"Overlapping devices",
		"Two device package outlines overlap.",
		locations, "overlapping_devices", F("device1", UUIDToken(dev1)), F("device2", UUIDToken(dev2)))
}

func DeviceInCourtyardViolation(dev1, dev2 uuid.UUID, locations []geom.Path) Message {
	return New(SeverityWarning,
		"Device in courtyard",
		"A device's package outline intrudes into another device's courtyard.",
		locations, "device_in_courtyard", F("device1", UUIDToken(dev1)), F("device2", UUIDToken(dev2)))
}

func OpenBoardOutlinePolygonViolation(polyID uuid.UUID, locations []geom.Path) Message {
	return New(SeverityError,
		"Open board outline polygon",
		"A board outline/cutout polygon is not closed.",
		locations, "open_board_outline_polygon", F("polygon", UUIDToken(polyID)))
}

func MissingBoardOutlineViolation() Message {
	return New(SeverityError,
		"Missing board outline",
		"The board has no closed outline polygon.",
		nil, "missing_board_outline")
}

func MultipleBoardOutlinesViolation(count int) Message {
	return New(SeverityError,
		"Multiple board outlines",
		fmt.Sprintf("The board has %d closed outline polygons; exactly one is expected.", count),
		nil, "multiple_board_outlines", F("count", IntToken(count)))
}

func MinimumBoardOutlineInnerRadiusViolation(locations []geom.Path) Message {
	return New(SeverityError,
		"Minimum board outline inner radius",
		"An inner corner of the board outline is sharper than the milling tool can manufacture.",
		locations, "minimum_board_outline_inner_radius")
}

func DisabledLayerUsedViolation(l string) Message {
	return New(SeverityWarning,
		"Disabled layer used",
		fmt.Sprintf("Layer %s is used but not enabled in the board's layer stack.", l),
		nil, "disabled_layer_used", F("layer", l))
}

func UnusedLayerViolation(l string) Message {
	return New(SeverityWarning,
		"Unused layer",
		fmt.Sprintf("Layer %s is enabled but not used by any object.", l),
		nil, "unused_layer", F("layer", l))
}

func UnplacedComponentViolation(componentID uuid.UUID, name string) Message {
	return New(SeverityError,
		"Unplaced component",
		fmt.Sprintf("Component %q has not been assigned a footprint placement.", name),
		nil, "unplaced_component", F("component", UUIDToken(componentID)))
}

func MissingConnectionViolation(net string, a1, a2 geom.Point) Message {
	const obroundWidth = geom.Length(50_000)
	return New(SeverityError,
		"Missing connection",
		fmt.Sprintf("Net %q has an unrouted connection.", net),
		[]geom.Path{geom.Obround(a1, a2, obroundWidth)}, "missing_connection",
		F("p1x", IntToken(int(a1.X))), F("p1y", IntToken(int(a1.Y))),
		F("p2x", IntToken(int(a2.X))), F("p2y", IntToken(int(a2.Y))))
}

func EmptySegmentViolation(segID uuid.UUID) Message {
	return New(SeverityWarning,
		"Empty segment",
		"This net segment contains no junctions, traces, vias, or pads.",
		nil, "empty_segment", F("segment", UUIDToken(segID)))
}

func UnconnectedJunctionViolation(juncID uuid.UUID) Message {
	return New(SeverityWarning,
		"Unconnected junction",
		"This junction has no traces attached to it.",
		nil, "unconnected_junction", F("junction", UUIDToken(juncID)))
}
