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

// Package drc implements the design-rule-check scheduler, its shared
// intermediate results, and the orchestrator the host drives.
package drc

import (
	"sort"
	"sync"

	"github.com/LibrePCB/LibrePCB-sub022/clipper"
	"github.com/LibrePCB/LibrePCB-sub022/layer"
)

// CalculatedData is the mutable, mutex-protected result Stage-1 jobs
// populate and Stage-2 jobs read. Writers own disjoint keys (one job per
// copper layer), so the mutex only defends against the degenerate case,
// not real contention.
type CalculatedData struct {
	mu                  sync.Mutex
	copperPathsPerLayer map[layer.Layer]clipper.Paths64
}

// NewCalculatedData returns an empty, ready-to-populate instance.
func NewCalculatedData() *CalculatedData {
	return &CalculatedData{copperPathsPerLayer: make(map[layer.Layer]clipper.Paths64)}
}

// SetCopperPaths records the full copper polygon set for layer l. Called
// exactly once per layer, by that layer's Stage-1 job.
func (c *CalculatedData) SetCopperPaths(l layer.Layer, paths clipper.Paths64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.copperPathsPerLayer[l] = paths
}

// CopperPaths returns the copper polygon set for layer l, and whether
// Stage-1 has populated it.
func (c *CalculatedData) CopperPaths(l layer.Layer) (clipper.Paths64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.copperPathsPerLayer[l]
	return p, ok
}

// CopperLayers returns every layer Stage-1 has populated, sorted by layer
// ID for deterministic iteration by Stage-2 consumers.
func (c *CalculatedData) CopperLayers() []layer.Layer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]layer.Layer, 0, len(c.copperPathsPerLayer))
	for l := range c.copperPathsPerLayer {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllCopperAnywhere unions every populated layer's copper into one set,
// the "copper anywhere" area the copper-hole check needs.
func (c *CalculatedData) AllCopperAnywhere() (clipper.Paths64, error) {
	c.mu.Lock()
	var all clipper.Paths64
	for _, paths := range c.copperPathsPerLayer {
		all = append(all, paths...)
	}
	c.mu.Unlock()
	if len(all) == 0 {
		return nil, nil
	}
	return clipper.Unite(all)
}

// AllCopperEverywhere intersects every populated layer's copper, the
// through-copper area the annular-ring check subtracts pad holes against.
func (c *CalculatedData) AllCopperEverywhere() (clipper.Paths64, error) {
	c.mu.Lock()
	layers := make([]clipper.Paths64, 0, len(c.copperPathsPerLayer))
	for _, paths := range c.copperPathsPerLayer {
		layers = append(layers, paths)
	}
	c.mu.Unlock()
	if len(layers) == 0 {
		return nil, nil
	}
	result := layers[0]
	for _, next := range layers[1:] {
		tree, err := clipper.IntersectToTree(result, next)
		if err != nil {
			return nil, err
		}
		flat, err := clipper.FlattenTree(tree)
		if err != nil {
			return nil, err
		}
		result = flat
	}
	return result, nil
}
