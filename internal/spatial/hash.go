// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package spatial

import (
	"math"
	"sync"
)

// HashGrid divides the plane into square cells for fast proximity queries.
type HashGrid struct {
	mu       sync.RWMutex
	cells    map[CellKey]*Cell // Grid cells containing entries
	cellSize float64           // Cell edge length in layout units
	entries  map[string]*Entry // Index by ID for fast lookup/removal
}

// CellKey represents a grid cell coordinate.
type CellKey struct {
	X, Y int
}

// Cell contains all entries in a grid cell.
type Cell struct {
	entries []*Entry
}

// Entry is a point stored in the grid.
type Entry struct {
	ID      string
	X       float64
	Y       float64
	cellKey CellKey // Cached cell key for fast removal
}

// NewHashGrid creates a grid with the given cell edge length. Non-positive
// sizes fall back to 1.
func NewHashGrid(cellSize float64) *HashGrid {
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		cellSize = 1
	}

	return &HashGrid{
		cells:    make(map[CellKey]*Cell),
		cellSize: cellSize,
		entries:  make(map[string]*Entry),
	}
}

// CellSize returns the cell edge length.
func (g *HashGrid) CellSize() float64 {
	return g.cellSize
}

func (g *HashGrid) cellKey(x, y float64) CellKey {
	return CellKey{
		X: int(math.Floor(x / g.cellSize)),
		Y: int(math.Floor(y / g.cellSize)),
	}
}

// Insert adds a point to the grid.
// If a point with the same ID exists, it's moved.
func (g *HashGrid) Insert(id string, x, y float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.entries[id]; ok {
		g.removeFromCellUnlocked(existing)
	}

	key := g.cellKey(x, y)
	entry := &Entry{ID: id, X: x, Y: y, cellKey: key}

	cell, exists := g.cells[key]
	if !exists {
		cell = &Cell{entries: make([]*Entry, 0, 4)}
		g.cells[key] = cell
	}
	cell.entries = append(cell.entries, entry)

	g.entries[id] = entry
}

// Remove removes a point by ID.
func (g *HashGrid) Remove(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, exists := g.entries[id]
	if !exists {
		return false
	}

	g.removeFromCellUnlocked(entry)
	delete(g.entries, id)
	return true
}

// removeFromCellUnlocked removes an entry from its cell (caller must hold lock).
func (g *HashGrid) removeFromCellUnlocked(entry *Entry) {
	cell, exists := g.cells[entry.cellKey]
	if !exists {
		return
	}

	for i, e := range cell.entries {
		if e.ID == entry.ID {
			// Swap with last and truncate
			cell.entries[i] = cell.entries[len(cell.entries)-1]
			cell.entries = cell.entries[:len(cell.entries)-1]
			break
		}
	}

	if len(cell.entries) == 0 {
		delete(g.cells, entry.cellKey)
	}
}

// Get returns a copy of the entry stored under id.
func (g *HashGrid) Get(id string) (Entry, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	entry, exists := g.entries[id]
	if !exists {
		return Entry{}, false
	}
	return *entry, true
}

// QueryNearby returns every point within radius of (x, y), inclusive.
func (g *HashGrid) QueryNearby(x, y, radius float64) []Entry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	cellsToCheck := int(math.Ceil(radius / g.cellSize))
	center := g.cellKey(x, y)

	var results []Entry
	for dx := -cellsToCheck; dx <= cellsToCheck; dx++ {
		for dy := -cellsToCheck; dy <= cellsToCheck; dy++ {
			cell, exists := g.cells[CellKey{X: center.X + dx, Y: center.Y + dy}]
			if !exists {
				continue
			}
			for _, entry := range cell.entries {
				if distance(x, y, entry.X, entry.Y) <= radius {
					results = append(results, *entry)
				}
			}
		}
	}
	return results
}

// Nearest returns the distance from (x, y) to the closest point, searching no
// further than limit. ok is false when no point lies within limit.
//
// Cells are visited in square rings around the query cell. Every point in
// ring r+1 is at least r·cellSize away, so the search stops as soon as the
// best distance found is no greater than that bound.
func (g *HashGrid) Nearest(x, y, limit float64) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if len(g.entries) == 0 {
		return 0, false
	}

	center := g.cellKey(x, y)
	maxRing := int(math.Ceil(limit/g.cellSize)) + 1
	best := math.Inf(1)

	for r := 0; r <= maxRing; r++ {
		g.visitRing(center, r, func(e *Entry) {
			if d := distance(x, y, e.X, e.Y); d < best {
				best = d
			}
		})
		if best <= float64(r)*g.cellSize {
			break
		}
	}

	if best > limit {
		return 0, false
	}
	return best, true
}

// visitRing calls fn for every entry in the cells at Chebyshev distance r
// from center.
func (g *HashGrid) visitRing(center CellKey, r int, fn func(*Entry)) {
	visit := func(cx, cy int) {
		cell, exists := g.cells[CellKey{X: cx, Y: cy}]
		if !exists {
			return
		}
		for _, e := range cell.entries {
			fn(e)
		}
	}

	if r == 0 {
		visit(center.X, center.Y)
		return
	}
	for dx := -r; dx <= r; dx++ {
		visit(center.X+dx, center.Y-r)
		visit(center.X+dx, center.Y+r)
	}
	for dy := -r + 1; dy <= r-1; dy++ {
		visit(center.X-r, center.Y+dy)
		visit(center.X+r, center.Y+dy)
	}
}

// Size returns the total number of points.
func (g *HashGrid) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// NumCells returns the number of non-empty cells.
func (g *HashGrid) NumCells() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cells)
}

// Clear removes all points.
func (g *HashGrid) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cells = make(map[CellKey]*Cell)
	g.entries = make(map[string]*Entry)
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
