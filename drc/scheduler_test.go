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

package drc

import (
	"testing"

	"github.com/google/uuid"

	"github.com/LibrePCB/LibrePCB-sub022/board"
	"github.com/LibrePCB/LibrePCB-sub022/geom"
	"github.com/LibrePCB/LibrePCB-sub022/layer"
)

const mm geom.Length = 1_000_000

// countText returns how many messages carry the given Text label (the
// short, message-kind-identifying string every catalog constructor sets).
func countText(result Result, text string) int {
	n := 0
	for _, m := range result.Messages {
		if m.Text == text {
			n++
		}
	}
	return n
}

func rectPath(x0, y0, x1, y1 geom.Length) geom.Path {
	return geom.Path{
		{Position: geom.Point{X: x0, Y: y0}},
		{Position: geom.Point{X: x1, Y: y0}},
		{Position: geom.Point{X: x1, Y: y1}},
		{Position: geom.Point{X: x0, Y: y1}},
		{Position: geom.Point{X: x0, Y: y0}},
	}
}

func ratio(t *testing.T, ppm geom.Ratio) geom.UnsignedLimitedRatio {
	t.Helper()
	r, err := geom.NewUnsignedLimitedRatio(ppm)
	if err != nil {
		t.Fatalf("ratio: %v", err)
	}
	return r
}

func posLen(t *testing.T, l geom.Length) geom.PositiveLength {
	t.Helper()
	p, err := geom.NewPositiveLength(l)
	if err != nil {
		t.Fatalf("positive length: %v", err)
	}
	return p
}

func unsLen(t *testing.T, l geom.Length) geom.UnsignedLength {
	t.Helper()
	u, err := geom.NewUnsignedLength(l)
	if err != nil {
		t.Fatalf("unsigned length: %v", err)
	}
	return u
}

// Scenario 1 (spec.md §8.1): two 0.2mm-wide traces on different nets,
// 0.25mm apart centre to centre (0.05mm edge to edge), Cu-Cu clearance set
// to 0.2mm.
func TestCopperCopperClearanceCrossNet(t *testing.T) {
	netA, netB := "A", "B"
	settings := board.Settings{MinCopperCopperClearance: unsLen(t, 200_000)}
	data := board.NewData(settings, false)
	data.EnabledCopperLayers = []layer.Layer{layer.TopCopper}
	data.Segments = []board.Segment{
		{ID: uuid.New(), Net: &netA, Traces: []board.Trace{
			{ID: uuid.New(), P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 10 * mm, Y: 0}, Width: posLen(t, 200_000), Layer: layer.TopCopper},
		}},
		{ID: uuid.New(), Net: &netB, Traces: []board.Trace{
			{ID: uuid.New(), P1: geom.Point{X: 0, Y: 250_000}, P2: geom.Point{X: 10 * mm, Y: 250_000}, Width: posLen(t, 200_000), Layer: layer.TopCopper},
		}},
	}

	result := NewScheduler(data, nil).Run()
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if got := countText(result, "Clearance (copper)"); got != 1 {
		t.Fatalf("expected exactly 1 copper clearance violation, got %d", got)
	}
}

// Scenario 2 (spec.md §8.2): same geometry as scenario 1 but both traces
// share net A — the same-net exemption must suppress the violation.
func TestCopperCopperClearanceSameNetExempt(t *testing.T) {
	netA := "A"
	settings := board.Settings{MinCopperCopperClearance: unsLen(t, 200_000)}
	data := board.NewData(settings, false)
	data.EnabledCopperLayers = []layer.Layer{layer.TopCopper}
	data.Segments = []board.Segment{
		{ID: uuid.New(), Net: &netA, Traces: []board.Trace{
			{ID: uuid.New(), P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 10 * mm, Y: 0}, Width: posLen(t, 200_000), Layer: layer.TopCopper},
		}},
		{ID: uuid.New(), Net: &netA, Traces: []board.Trace{
			{ID: uuid.New(), P1: geom.Point{X: 0, Y: 250_000}, P2: geom.Point{X: 10 * mm, Y: 250_000}, Width: posLen(t, 200_000), Layer: layer.TopCopper},
		}},
	}

	result := NewScheduler(data, nil).Run()
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if got := countText(result, "Clearance (copper)"); got != 0 {
		t.Fatalf("expected zero copper clearance violations under same-net exemption, got %d", got)
	}
}

// Scenario 3 (spec.md §8.3): one via, pad 0.6mm, drill 0.5mm, minimum
// annular ring 0.1mm. (0.6-0.5)/2 = 0.05mm < 0.1mm.
func TestMinimumAnnularRingVia(t *testing.T) {
	settings := board.Settings{MinPthAnnularRing: unsLen(t, 100_000)}
	data := board.NewData(settings, false)
	data.EnabledCopperLayers = []layer.Layer{layer.TopCopper, layer.BottomCopper}
	data.Segments = []board.Segment{
		{ID: uuid.New(), Vias: []board.Via{
			{
				ID:            uuid.New(),
				Position:      geom.Point{X: 0, Y: 0},
				DrillDiameter: posLen(t, 500_000),
				PadSize:       posLen(t, 600_000),
				StartLayer:    layer.TopCopper,
				EndLayer:      layer.BottomCopper,
			},
		}},
	}

	result := NewScheduler(data, nil).Run()
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if got := countText(result, "Minimum annular ring"); got != 1 {
		t.Fatalf("expected exactly 1 minimum annular ring violation, got %d", got)
	}
}

// Scenario 4 (spec.md §8.4): a blind via (top -> inner-1) is forbidden when
// blindViasAllowed is false, and allowed once the flag is flipped.
func TestForbiddenBlindVia(t *testing.T) {
	buildData := func(blindAllowed bool) *board.Data {
		settings := board.Settings{BlindViasAllowed: blindAllowed}
		data := board.NewData(settings, false)
		data.EnabledCopperLayers = []layer.Layer{layer.TopCopper, layer.InnerCopper(1), layer.BottomCopper}
		span := board.LayerSpan{Start: layer.TopCopper, End: layer.InnerCopper(1)}
		data.Segments = []board.Segment{
			{ID: uuid.New(), Vias: []board.Via{
				{
					ID:             uuid.New(),
					Position:       geom.Point{X: 0, Y: 0},
					DrillDiameter:  posLen(t, 300_000),
					PadSize:        posLen(t, 600_000),
					StartLayer:     layer.TopCopper,
					EndLayer:       layer.InnerCopper(1),
					DrillLayerSpan: &span,
				},
			}},
		}
		return data
	}

	forbidden := NewScheduler(buildData(false), nil).Run()
	if got := countText(forbidden, "Forbidden via"); got != 1 {
		t.Fatalf("expected exactly 1 forbidden via violation when blind vias disallowed, got %d", got)
	}

	allowed := NewScheduler(buildData(true), nil).Run()
	if got := countText(allowed, "Forbidden via"); got != 0 {
		t.Fatalf("expected zero forbidden via violations once blind vias are allowed, got %d", got)
	}
}

// Scenario 5 (spec.md §8.5): a top-copper NoCopper board zone (10mm square
// at the origin) and a device pad at its center must collide.
func TestKeepoutCopper(t *testing.T) {
	settings := board.Settings{}
	data := board.NewData(settings, false)
	data.EnabledCopperLayers = []layer.Layer{layer.TopCopper}

	zoneID := uuid.New()
	data.BoardZones = []board.Zone{
		{
			ID:          zoneID,
			BoardLayers: []layer.Layer{layer.TopCopper},
			Rules:       board.ZoneRules{NoCopper: true},
			Outline:     rectPath(0, 0, 10*mm, 10*mm),
		},
	}

	pad := board.Pad{
		ID:       uuid.New(),
		Position: geom.Point{X: 5 * mm, Y: 5 * mm},
		Geometries: map[layer.Layer][]board.PadGeometry{
			layer.TopCopper: {{
				Kind:        board.PadRoundedRect,
				BaseWidth:   1 * mm,
				BaseHeight:  1 * mm,
				CornerRatio: ratio(t, 0),
			}},
		},
	}
	data.Devices = []board.Device{
		{ID: uuid.New(), Pads: []board.Pad{pad}},
	}

	result := NewScheduler(data, nil).Run()
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if got := countText(result, "Copper in keepout zone"); got != 1 {
		t.Fatalf("expected exactly 1 copper-in-keepout-zone violation, got %d", got)
	}
}

// Scenario 6 (spec.md §8.6): a closed board outline with a 0.5mm notch
// violates a 1mm minimum inner corner radius (tool diameter 2mm).
func TestBoardOutlineInnerRadius(t *testing.T) {
	settings := board.Settings{MinOutlineToolDiameter: unsLen(t, 2*mm)}
	data := board.NewData(settings, false)

	notched := geom.Path{
		{Position: geom.Point{X: 0, Y: 0}},
		{Position: geom.Point{X: 10 * mm, Y: 0}},
		{Position: geom.Point{X: 10 * mm, Y: 10 * mm}},
		{Position: geom.Point{X: 5_500_000, Y: 10 * mm}},
		{Position: geom.Point{X: 5_500_000, Y: 9_500_000}},
		{Position: geom.Point{X: 4_500_000, Y: 9_500_000}},
		{Position: geom.Point{X: 4_500_000, Y: 10 * mm}},
		{Position: geom.Point{X: 0, Y: 10 * mm}},
		{Position: geom.Point{X: 0, Y: 0}},
	}
	data.BoardPolygons = []board.Polygon{
		{ID: uuid.New(), Layer: layer.BoardOutlines, Path: notched},
	}

	result := NewScheduler(data, nil).Run()
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if got := countText(result, "Minimum board outline inner radius"); got != 1 {
		t.Fatalf("expected exactly 1 minimum board outline inner radius violation, got %d", got)
	}
}
