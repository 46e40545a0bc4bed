// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package spatial

import (
	"math"
	"math/rand"
	"strconv"
	"sync"
	"testing"
)

func TestHashGrid_BasicOperations(t *testing.T) {
	t.Parallel()

	grid := NewHashGrid(5)
	grid.Insert("a", 1, 1)
	grid.Insert("b", 12, 3)
	grid.Insert("c", -4, 7)

	if grid.Size() != 3 {
		t.Errorf("Size() = %d, want 3", grid.Size())
	}
	if grid.NumCells() != 3 {
		t.Errorf("NumCells() = %d, want 3", grid.NumCells())
	}

	entry, found := grid.Get("b")
	if !found {
		t.Fatal("Get('b') should return true")
	}
	if entry.X != 12 || entry.Y != 3 {
		t.Errorf("Get('b') = (%v, %v), want (12, 3)", entry.X, entry.Y)
	}

	if _, found := grid.Get("nonexistent"); found {
		t.Error("Get('nonexistent') should return false")
	}
}

func TestHashGrid_InsertMoves(t *testing.T) {
	t.Parallel()

	grid := NewHashGrid(5)
	grid.Insert("a", 1, 1)
	grid.Insert("a", 21, 21)

	if grid.Size() != 1 {
		t.Errorf("Size() after move = %d, want 1", grid.Size())
	}
	if grid.NumCells() != 1 {
		t.Errorf("NumCells() after move = %d, want 1 (old cell dropped)", grid.NumCells())
	}
	if got := grid.QueryNearby(1, 1, 2); len(got) != 0 {
		t.Errorf("old position still returned: %v", got)
	}
}

func TestHashGrid_Remove(t *testing.T) {
	t.Parallel()

	grid := NewHashGrid(5)
	grid.Insert("a", 1, 1)
	grid.Insert("b", 2, 2)

	if !grid.Remove("a") {
		t.Error("Remove('a') should return true")
	}
	if grid.Size() != 1 {
		t.Errorf("Size() after remove = %d, want 1", grid.Size())
	}
	if grid.Remove("nonexistent") {
		t.Error("Remove('nonexistent') should return false")
	}

	grid.Remove("b")
	if grid.NumCells() != 0 {
		t.Errorf("NumCells() = %d, want 0 after removing every point", grid.NumCells())
	}
}

func TestHashGrid_QueryNearby(t *testing.T) {
	t.Parallel()

	grid := NewHashGrid(2)
	grid.Insert("origin", 0, 0)
	grid.Insert("close", 1, 1)  // ~1.41
	grid.Insert("mid", 3, 4)    // 5
	grid.Insert("far", -9, 12)  // 15

	tests := []struct {
		radius float64
		want   int
	}{
		{0.5, 1},
		{2, 2},
		{5, 3},
		{20, 4},
	}
	for _, tt := range tests {
		if got := grid.QueryNearby(0, 0, tt.radius); len(got) != tt.want {
			t.Errorf("QueryNearby(r=%v) returned %d entries, want %d", tt.radius, len(got), tt.want)
		}
	}
}

func TestHashGrid_Nearest(t *testing.T) {
	t.Parallel()

	grid := NewHashGrid(1)
	if _, ok := grid.Nearest(0, 0, 100); ok {
		t.Error("Nearest() on an empty grid should report no point")
	}

	grid.Insert("p", 10, 0)
	grid.Insert("q", 0, 6)

	dist, ok := grid.Nearest(0, 0, 100)
	if !ok || dist != 6 {
		t.Errorf("Nearest() = %v, %v, want 6, true", dist, ok)
	}
	if _, ok := grid.Nearest(0, 0, 5); ok {
		t.Error("Nearest() should honour the search limit")
	}
}

func TestHashGrid_NearestMatchesBruteForce(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for _, cellSize := range []float64{0.5, 3, 25} {
		grid := NewHashGrid(cellSize)
		pts := make([][2]float64, 200)
		for i := range pts {
			pts[i] = [2]float64{rng.Float64() * 100, rng.Float64() * 60}
			grid.Insert(strconv.Itoa(i), pts[i][0], pts[i][1])
		}

		for q := 0; q < 100; q++ {
			x, y := rng.Float64()*100, rng.Float64()*60
			want := math.Inf(1)
			for _, p := range pts {
				want = math.Min(want, math.Hypot(p[0]-x, p[1]-y))
			}
			got, ok := grid.Nearest(x, y, 200)
			if !ok || math.Abs(got-want) > 1e-12 {
				t.Fatalf("cell %v: Nearest(%v, %v) = %v, %v, want %v", cellSize, x, y, got, ok, want)
			}
		}
	}
}

func TestHashGrid_Clear(t *testing.T) {
	t.Parallel()

	grid := NewHashGrid(0) // falls back to 1
	if grid.CellSize() != 1 {
		t.Errorf("CellSize() = %v, want 1", grid.CellSize())
	}
	grid.Insert("a", 1, 1)
	grid.Clear()
	if grid.Size() != 0 || grid.NumCells() != 0 {
		t.Errorf("Clear() left Size=%d NumCells=%d", grid.Size(), grid.NumCells())
	}
}

func TestHashGrid_Concurrent(t *testing.T) {
	t.Parallel()

	grid := NewHashGrid(4)

	var wg sync.WaitGroup
	numGoroutines := 20
	numOps := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOps; j++ {
				grid.Insert(strconv.Itoa(id*numOps+j), float64(id), float64(j))
			}
		}(i)
	}
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOps; j++ {
				grid.Nearest(float64(id), float64(j), 10)
			}
		}(i)
	}
	wg.Wait()

	if grid.Size() != numGoroutines*numOps {
		t.Errorf("Size() = %d, want %d", grid.Size(), numGoroutines*numOps)
	}
}

func BenchmarkHashGrid_Nearest(b *testing.B) {
	grid := NewHashGrid(2)
	for i := 0; i < 10000; i++ {
		grid.Insert(strconv.Itoa(i), float64(i%200), float64(i/200))
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		grid.Nearest(100.5, 25.5, 50)
	}
}
