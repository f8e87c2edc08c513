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

// Package board holds the read-only input snapshot the design-rule check
// consumes: design rule settings, net classes, and every board entity
// (traces, vias, pads, planes, polygons, holes, zones, devices, airwires).
package board

import "github.com/LibrePCB/LibrePCB-sub022/geom"

// AllowedSlots is the policy for which hole shapes are permitted without a
// warning.
type AllowedSlots int

const (
	SlotsNone AllowedSlots = iota
	SlotsSingleSegmentStraight
	SlotsMultiSegmentStraight
	SlotsAny
)

// Settings is the global design-rule bundle, the minimums and allowances
// every rule check falls back to when a net class does not override them.
// Field set follows the real board design rules bundle: stop mask and
// restring ratios are tracked even though this DRC core's checks only
// consume the clearance/width/drill/slot subset (§3.3); the rest is carried
// because a settings bundle here always travels as one unit with the
// persisted board.
type Settings struct {
	Name        string
	Description string

	MinCopperCopperClearance geom.UnsignedLength
	MinCopperBoardClearance  geom.UnsignedLength
	MinCopperNpthClearance   geom.UnsignedLength
	MinDrillDrillClearance   geom.UnsignedLength
	MinDrillBoardClearance   geom.UnsignedLength
	MinSilkscreenStopmaskClearance geom.UnsignedLength

	MinCopperWidth geom.UnsignedLength

	MinPthAnnularRing geom.UnsignedLength

	MinNpthDrillDiameter geom.UnsignedLength
	MinPthDrillDiameter  geom.UnsignedLength
	MinNpthSlotWidth     geom.UnsignedLength
	MinPthSlotWidth      geom.UnsignedLength

	MinSilkscreenWidth     geom.UnsignedLength
	MinSilkscreenTextHeight geom.UnsignedLength

	MinOutlineToolDiameter geom.UnsignedLength

	AllowedNpthSlots AllowedSlots
	AllowedPthSlots  AllowedSlots

	BlindViasAllowed  bool
	BuriedViasAllowed bool

	StopMaskClearanceRatio geom.UnsignedRatio
	StopMaskClearanceMin   geom.UnsignedLength
	StopMaskClearanceMax   geom.UnsignedLength

	RestringPadRatio geom.UnsignedRatio
	RestringPadMin   geom.UnsignedLength
	RestringPadMax   geom.UnsignedLength
	RestringViaRatio geom.UnsignedRatio
	RestringViaMin   geom.UnsignedLength
	RestringViaMax   geom.UnsignedLength
}

// MinEdgeRadius returns the minimum inner-corner radius a board outline may
// have, derived from the outline tool diameter per spec.md §4.5.16
// ("minEdgeRadius = tool/2").
func (s Settings) MinEdgeRadius() geom.UnsignedLength {
	v, _ := geom.NewUnsignedLength(geom.Length(s.MinOutlineToolDiameter.Value()) / 2)
	return v
}
