// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

/*
Package spatial provides a planar spatial hash for proximity queries.

The point packer uses it to answer "how far is the nearest existing point"
while scoring placement candidates. Instead of comparing a candidate to every
point in a segment, only the cells around it are visited, growing outwards one
ring at a time until no closer point can exist.

# Structure

	cells   map[CellKey]*Cell   // points bucketed by floor(x/size), floor(y/size)
	entries map[string]*Entry   // index by ID for O(1) removal

# Time Complexity

  - Insert: O(1)
  - Remove: O(k) where k = entries in the point's cell
  - QueryNearby: O(k) where k = entries in the visited cells
  - Nearest: O(k) over the rings needed to prove the nearest distance

# Thread Safety

All methods are safe for concurrent use (sync.RWMutex). Returned entries are
copies.

# Usage Example

	grid := spatial.NewHashGrid(4)
	grid.Insert("0:1:0", 2.5, 3.0)
	grid.Insert("0:1:1", 7.0, 1.5)

	if dist, ok := grid.Nearest(5, 2, 10); ok {
	    fmt.Printf("nearest point is %.2f away\n", dist)
	}
*/
package spatial
