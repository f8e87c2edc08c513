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

// Package message defines the DRC's reportable message type and the
// deterministic approval-key derivation every check relies on to let hosts
// persist "this violation is approved" across reruns.
package message

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/LibrePCB/LibrePCB-sub022/geom"
)

// Severity classifies how serious a violation is.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "Error"
	}
	return "Warning"
}

// Message is one reportable DRC finding.
type Message struct {
	Severity    Severity
	Text        string
	Description string
	Locations   []geom.Path
	approvalKey uuid.UUID
}

// ApprovalKey returns the deterministic identity UUID hosts persist to mark
// this specific violation reviewed.
func (m Message) ApprovalKey() uuid.UUID { return m.approvalKey }

// approvalNamespace is a fixed, arbitrary UUID used as the UUIDv5 namespace
// for every approval key. It must never change: existing persisted
// approvals are keyed against it.
var approvalNamespace = uuid.MustParse("1f2e3d4c-5b6a-4798-9c1d-0a1b2c3d4e5f")

// field is one named leaf of an approval-key identity tree.
type field struct {
	Name  string
	Value string
}

// F builds a field for use with Build. Field order does not matter at the
// call site: Build sorts by name before serializing.
func F(name, value string) field { return field{Name: name, Value: value} }

// Build canonicalizes kind and fields into the S-expression-like byte form
// `(kind (name value) ...)`, fields sorted by name, and derives a UUIDv5
// approval key from it. No transient indices or iteration order leak in:
// callers pass only semantic identities (entity UUIDs, layer tokens, net
// names, enumerated kind tags).
func Build(kind string, fields ...field) uuid.UUID {
	sorted := make([]field, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var buf bytes.Buffer
	buf.WriteByte('(')
	buf.WriteString(kind)
	for _, f := range sorted {
		fmt.Fprintf(&buf, " (%s %s)", f.Name, f.Value)
	}
	buf.WriteByte(')')
	return uuid.NewSHA1(approvalNamespace, buf.Bytes())
}

// UUIDToken and IntToken format the leaf value types the
// approval-key tree is allowed to carry, per spec.md §6.3.
func UUIDToken(id uuid.UUID) string { return id.String() }

func IntToken(i int) string { return fmt.Sprintf("%d", i) }

// ObjectKind discriminates the kind of board entity a ObjectRef identifies.
// The original implementation stores each colliding object as a union of
// pointer kinds (pad, trace, via, plane, polygon, circle, stroke text) plus
// its owning segment/device; here that becomes a tagged variant carrying
// only identity fields, so a Message can outlive the Data snapshot it was
// produced from.
type ObjectKind int

const (
	ObjectPad ObjectKind = iota
	ObjectTrace
	ObjectVia
	ObjectPlane
	ObjectPolygon
	ObjectCircle
	ObjectStrokeText
	ObjectHole
	ObjectZone
	ObjectDevice
	ObjectJunction
	ObjectSegment
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectPad:
		return "pad"
	case ObjectTrace:
		return "trace"
	case ObjectVia:
		return "via"
	case ObjectPlane:
		return "plane"
	case ObjectPolygon:
		return "polygon"
	case ObjectCircle:
		return "circle"
	case ObjectStrokeText:
		return "stroke_text"
	case ObjectHole:
		return "hole"
	case ObjectZone:
		return "zone"
	case ObjectDevice:
		return "device"
	case ObjectJunction:
		return "junction"
	case ObjectSegment:
		return "segment"
	default:
		return "unknown"
	}
}

// ObjectRef identifies one board entity involved in a violation: the
// entity's own UUID, the layer it was evaluated on (if any), its net (if
// any), and the device that owns it (if it is device sub-geometry). It
// never holds a pointer into Data.
type ObjectRef struct {
	Kind     ObjectKind
	ID       uuid.UUID
	Layer    string // layer token, empty if not layer-specific
	Net      *string
	DeviceID *uuid.UUID
}

// fields renders r as the nested field set a catalog constructor embeds
// under a "obj1"/"obj2"-style prefix.
func (r ObjectRef) fields(prefix string) []field {
	fs := []field{
		F(prefix+"_kind", r.Kind.String()),
		F(prefix+"_id", UUIDToken(r.ID)),
	}
	if r.Layer != "" {
		fs = append(fs, F(prefix+"_layer", r.Layer))
	}
	if r.DeviceID != nil {
		fs = append(fs, F(prefix+"_device", UUIDToken(*r.DeviceID)))
	}
	return fs
}

// New constructs a Message with its approval key derived from kind+fields.
func New(severity Severity, text, description string, locations []geom.Path, kind string, fields ...field) Message {
	return Message{
		Severity:    severity,
		Text:        text,
		Description: description,
		Locations:   locations,
		approvalKey: Build(kind, fields...),
	}
}
