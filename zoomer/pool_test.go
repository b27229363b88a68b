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

// property 8: allocating N frames of identical dimensions, releasing them
// all, and allocating N more yields the same buffer identities back.
func TestPoolReuse(t *testing.T) {
	var p framePool

	const n = 5
	frames := make([]*Frame, n)
	for i := 0; i < n; i++ {
		frames[i] = p.alloc(i, 32, 32, 32, 32, 0)
	}

	identities := make(map[*Frame]bool, n)
	for _, f := range frames {
		identities[f] = true
	}

	for _, f := range frames {
		p.release(f)
	}

	reused := make([]*Frame, n)
	for i := 0; i < n; i++ {
		reused[i] = p.alloc(n+i, 32, 32, 32, 32, 0)
	}

	for _, f := range reused {
		if !identities[f] {
			t.Fatalf("allocated frame %p was not one of the original pool entries", f)
		}
	}
}

// a dimension mismatch left behind by a resize must never be handed back
// out; the pool should discard it and allocate fresh.
func TestPoolDiscardsMismatchedDimensions(t *testing.T) {
	var p framePool

	f := p.alloc(0, 16, 16, 16, 16, 0)
	p.release(f)

	g := p.alloc(1, 32, 32, 32, 32, 0)
	if g == f {
		t.Fatal("pool handed back a dimension-mismatched frame")
	}
	if len(p.free) != 0 {
		t.Fatalf("mismatched entry should have been discarded, free list has %d entries", len(p.free))
	}
}
