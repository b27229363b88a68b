// This file is part of Zoomcore.
//
// Zoomcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zoomcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zoomcore.  If not, see <https://www.gnu.org/licenses/>.

package zoomer

import "testing"

// property 1: coord is strictly monotonic and every error is non-negative.
func TestRulerMonotonicity(t *testing.T) {
	old := newRuler(50)
	old.initLinear(-2, 2)

	r := newRuler(200)
	r.makeRuler(-1, 1.3, old.nearest, old.err)

	for i := 1; i < r.len(); i++ {
		if r.coord[i] <= r.coord[i-1] {
			t.Fatalf("coord not strictly monotonic at %d: %v <= %v", i, r.coord[i], r.coord[i-1])
		}
	}
	for i, e := range r.err {
		if e < 0 {
			t.Fatalf("negative error at %d: %v", i, e)
		}
	}
}

// property 2: if every new coord coincides with an old sample, every error
// is zero and the returned exact count equals N.
func TestRulerExactMatchPreservation(t *testing.T) {
	old := newRuler(9)
	old.initLinear(0, 8) // nearest[i] == i, integers 0..8

	r := newRuler(9)
	exact := r.makeRuler(0, 8, old.nearest, old.err)

	if exact != 9 {
		t.Fatalf("expected 9 exact matches, got %d", exact)
	}
	for i, e := range r.err {
		if e != 0 {
			t.Fatalf("expected zero error at %d, got %v", i, e)
		}
	}
}

// property 3: after marking, every maximal run of consecutive indices
// sharing a from value collapses to exactly one retained (non -1) index,
// and it is the one with the smallest error in that run.
func TestMarkDuplicatesLaw(t *testing.T) {
	r := newRuler(6)
	r.from = []int{1, 2, 2, 2, 5, 5}
	r.err = []float64{0.4, 0.3, 0.1, 0.2, 0.9, 0.05}

	r.markDuplicates()

	// run [1,2,3] all share from==2; only the min-error index (2, err 0.1)
	// should survive.
	if r.from[1] != noFrom {
		t.Errorf("expected index 1 marked stale, from=%v", r.from[1])
	}
	if r.from[3] != noFrom {
		t.Errorf("expected index 3 marked stale, from=%v", r.from[3])
	}
	if r.from[2] != 2 {
		t.Errorf("expected index 2 (min error in its run) retained, from=%v", r.from[2])
	}

	// run [4,5] share from==5; index 5 has the smaller error.
	if r.from[4] != noFrom {
		t.Errorf("expected index 4 marked stale, from=%v", r.from[4])
	}
	if r.from[5] != 5 {
		t.Errorf("expected index 5 retained, from=%v", r.from[5])
	}

	// no retained index may share its from value with an adjacent retained
	// index.
	for i, f := range r.from {
		if f == noFrom {
			continue
		}
		if i > 0 && r.from[i-1] == f {
			t.Errorf("index %d not isolated from left neighbour sharing from=%d", i, f)
		}
		if i < len(r.from)-1 && r.from[i+1] == f {
			t.Errorf("index %d not isolated from right neighbour sharing from=%d", i, f)
		}
	}
}

func TestRulerReachedLimits(t *testing.T) {
	r := newRuler(4)
	r.initLinear(0, 1)
	if r.reachedLimits() {
		t.Fatal("fresh ruler should not report reached limits")
	}

	radius := 2.0
	for i := 0; i < 1100; i++ {
		radius /= 2
		r.initLinear(-radius, radius)
		if r.reachedLimits() {
			return
		}
	}
	t.Fatal("expected reachedLimits to eventually trip as radius halves toward float64 precision")
}
