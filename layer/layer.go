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

// Package layer identifies the fixed set of board layers the design-rule
// check reasons about: copper layers (top, bottom, and an arbitrary number
// of inner layers), mechanical/outline layers, and the various overlay,
// mask, and keepout layers used by the clearance checks.
package layer

import "fmt"

// Layer is a closed enumeration of board layers. Numeric values follow the
// real layer ID space (general layers below 200, top-side layers at
// 200-299, copper layers at 300-400, bottom-side layers at 400-502, with
// BottomCopper at 400 counting as both copper and bottom-side) so that
// "is this id a copper layer" and "mirror this id to the other side" stay
// simple range/arithmetic checks instead of a lookup table.
type Layer int

const (
	BoardOutlines        Layer = 10
	BoardCutouts         Layer = 11
	BoardPlatedCutouts   Layer = 12
	Drills               Layer = 20 // NPTH
	Vias                 Layer = 30 // PTH
	ViaRestrict          Layer = 40
	ThtPads              Layer = 50 // PTH

	TopDeviceOutlines Layer = 200 // package outlines
	TopCourtyard      Layer = 201
	TopDocumentation  Layer = 202
	TopTestPoints     Layer = 210
	TopGlue           Layer = 220
	TopPaste          Layer = 230
	TopOverlayNames   Layer = 240
	TopOverlayValues  Layer = 250
	TopOverlay        Layer = 260 // top silkscreen/legend
	TopStopMask       Layer = 270
	TopDeviceKeepout  Layer = 280
	TopCopperRestrict Layer = 290

	TopCopper    Layer = 300
	BottomCopper Layer = 400

	BottomCopperRestrict Layer = 410
	BottomDeviceKeepout  Layer = 420
	BottomStopMask       Layer = 430
	BottomOverlay        Layer = 440 // bottom silkscreen/legend
	BottomOverlayValues  Layer = 450
	BottomOverlayNames   Layer = 460
	BottomPaste          Layer = 470
	BottomGlue           Layer = 480
	BottomTestPoints     Layer = 490
	BottomDeviceOutlines Layer = 500 // package outlines
	BottomCourtyard      Layer = 501
	BottomDocumentation  Layer = 502
)

const (
	copperLayersStart = 300
	copperLayersEnd   = 401 // exclusive
	topLayersStart    = 200
	topLayersEnd      = 300 // exclusive
	bottomLayersStart = 400
	bottomLayersEnd   = 503 // exclusive
)

// InnerCopper returns the layer identifying the n'th inner copper layer
// (1-based). It panics if n is out of the supported range, since a caller
// constructing one always knows the board's layer count up front.
func InnerCopper(n int) Layer {
	if n < 1 || n > 99 {
		panic(fmt.Sprintf("layer: inner copper index %d out of range", n))
	}
	return Layer(copperLayersStart + n)
}

// IsCopper reports whether l is any copper layer (top, bottom, or inner).
func (l Layer) IsCopper() bool {
	return l >= copperLayersStart && l < copperLayersEnd
}

// IsTop reports whether l lies on the top side of the board (copper or
// non-copper).
func (l Layer) IsTop() bool {
	return l == TopCopper || (l >= topLayersStart && l < topLayersEnd)
}

// IsBottom reports whether l lies on the bottom side of the board (copper
// or non-copper).
func (l Layer) IsBottom() bool {
	return l == BottomCopper || (l >= bottomLayersStart && l < bottomLayersEnd)
}

// IsInner reports whether l is a copper layer strictly between the top and
// bottom copper layers.
func (l Layer) IsInner() bool {
	return l.IsCopper() && l != TopCopper && l != BottomCopper
}

// CopperNumber returns 1 for TopCopper, n+1 for InnerCopper(n) and 101 for
// BottomCopper (whatever the number of inner layers), and false if l is not
// a copper layer.
func (l Layer) CopperNumber() (int, bool) {
	if !l.IsCopper() {
		return 0, false
	}
	return int(l) - copperLayersStart + 1, true
}

// IsStopMask reports whether l is a solder stop mask layer on either side.
func (l Layer) IsStopMask() bool {
	return l == TopStopMask || l == BottomStopMask
}

// IsOverlay reports whether l is a silkscreen/legend layer (names, values,
// or the freeform overlay itself) on either side.
func (l Layer) IsOverlay() bool {
	switch l {
	case TopOverlay, TopOverlayNames, TopOverlayValues,
		BottomOverlay, BottomOverlayNames, BottomOverlayValues:
		return true
	default:
		return false
	}
}

// IsDeviceKeepout reports whether l is a component keepout layer on either
// side.
func (l Layer) IsDeviceKeepout() bool {
	return l == TopDeviceKeepout || l == BottomDeviceKeepout
}

// IsPackageOutline reports whether l is a device package-outline layer on
// either side, used by the device-clearance and keepout-zone NoDevices
// checks.
func (l Layer) IsPackageOutline() bool {
	return l == TopDeviceOutlines || l == BottomDeviceOutlines
}

// IsCourtyard reports whether l is a device courtyard layer on either side.
func (l Layer) IsCourtyard() bool {
	return l == TopCourtyard || l == BottomCourtyard
}

// IsDocumentation reports whether l is a device documentation layer on
// either side.
func (l Layer) IsDocumentation() bool {
	return l == TopDocumentation || l == BottomDocumentation
}

// IsBoardOutlineOrCutout reports whether l is one of the three layers a
// physical board edge is drawn on (outline, cutout, plated cutout).
func (l Layer) IsBoardOutlineOrCutout() bool {
	return l == BoardOutlines || l == BoardCutouts || l == BoardPlatedCutouts
}

// Mirror returns the layer on the opposite side of the board, or l
// unchanged if it has no opposite (board outline, drills, vias) or no
// defined partner (inner copper layers mirror to themselves, since the
// stackup is symmetric from the DRC's point of view).
func (l Layer) Mirror() Layer {
	switch {
	case l == TopCopper:
		return BottomCopper
	case l == BottomCopper:
		return TopCopper
	case l.IsInner():
		return l
	case l >= topLayersStart && l < topLayersEnd:
		if bottom, ok := mirrorTopToBottom[l]; ok {
			return bottom
		}
		return l
	case l >= bottomLayersStart && l < bottomLayersEnd:
		return mirrorBottomToTop(l)
	default:
		return l
	}
}

// mirrorTopToBottom holds the explicit top<->bottom layer pairing, since
// the two layer bands are not laid out in mirrored numeric order (e.g.
// TopOverlayNames=240 pairs with BottomOverlayNames=460, not with a fixed
// offset partner).
var mirrorTopToBottom = map[Layer]Layer{
	TopDeviceOutlines: BottomDeviceOutlines,
	TopCourtyard:      BottomCourtyard,
	TopDocumentation:  BottomDocumentation,
	TopTestPoints:     BottomTestPoints,
	TopGlue:           BottomGlue,
	TopPaste:          BottomPaste,
	TopOverlayNames:   BottomOverlayNames,
	TopOverlayValues:  BottomOverlayValues,
	TopOverlay:        BottomOverlay,
	TopStopMask:       BottomStopMask,
	TopDeviceKeepout:  BottomDeviceKeepout,
	TopCopperRestrict: BottomCopperRestrict,
}

var mirrorBottomToTopMap = func() map[Layer]Layer {
	m := make(map[Layer]Layer, len(mirrorTopToBottom))
	for top, bottom := range mirrorTopToBottom {
		m[bottom] = top
	}
	return m
}()

func mirrorBottomToTop(l Layer) Layer {
	if top, ok := mirrorBottomToTopMap[l]; ok {
		return top
	}
	return l
}

// String implements fmt.Stringer with the layer's conventional name.
func (l Layer) String() string {
	switch l {
	case BoardOutlines:
		return "BoardOutlines"
	case BoardCutouts:
		return "BoardCutouts"
	case BoardPlatedCutouts:
		return "BoardPlatedCutouts"
	case Drills:
		return "Drills"
	case Vias:
		return "Vias"
	case ViaRestrict:
		return "ViaRestrict"
	case ThtPads:
		return "ThtPads"
	case TopDeviceOutlines:
		return "TopDeviceOutlines"
	case TopCourtyard:
		return "TopCourtyard"
	case TopDocumentation:
		return "TopDocumentation"
	case TopTestPoints:
		return "TopTestPoints"
	case TopGlue:
		return "TopGlue"
	case TopPaste:
		return "TopPaste"
	case TopOverlayNames:
		return "TopOverlayNames"
	case TopOverlayValues:
		return "TopOverlayValues"
	case TopOverlay:
		return "TopOverlay"
	case TopStopMask:
		return "TopStopMask"
	case TopDeviceKeepout:
		return "TopDeviceKeepout"
	case TopCopperRestrict:
		return "TopCopperRestrict"
	case TopCopper:
		return "TopCopper"
	case BottomCopper:
		return "BottomCopper"
	case BottomCopperRestrict:
		return "BottomCopperRestrict"
	case BottomDeviceKeepout:
		return "BottomDeviceKeepout"
	case BottomStopMask:
		return "BottomStopMask"
	case BottomOverlay:
		return "BottomOverlay"
	case BottomOverlayValues:
		return "BottomOverlayValues"
	case BottomOverlayNames:
		return "BottomOverlayNames"
	case BottomPaste:
		return "BottomPaste"
	case BottomGlue:
		return "BottomGlue"
	case BottomTestPoints:
		return "BottomTestPoints"
	case BottomDeviceOutlines:
		return "BottomDeviceOutlines"
	case BottomCourtyard:
		return "BottomCourtyard"
	case BottomDocumentation:
		return "BottomDocumentation"
	default:
		if l.IsInner() {
			n, _ := l.CopperNumber()
			return fmt.Sprintf("InnerCopper%d", n-1)
		}
		return fmt.Sprintf("Layer(%d)", int(l))
	}
}
