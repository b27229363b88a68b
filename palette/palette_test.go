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

package palette

import (
	"testing"
	"time"

	"github.com/jetsetilly/zoomcore/zoomer"
)

func TestBuildTransparentIndex(t *testing.T) {
	g := New(0.1)
	pal := g.Build(256)
	if pal[zoomer.TransparentIndex] != 0 {
		t.Fatalf("transparent index = %#x, want 0", pal[zoomer.TransparentIndex])
	}
}

func TestBuildFullyOpaqueElsewhere(t *testing.T) {
	g := New(0.1)
	pal := g.Build(256)
	for i, c := range pal {
		if i == zoomer.TransparentIndex {
			continue
		}
		if c&0xff000000 != 0xff000000 {
			t.Fatalf("pal[%d] = %#x, want alpha byte 0xff", i, c)
		}
	}
}

func TestAdvanceWrapsPhase(t *testing.T) {
	g := New(1) // one full cycle per second
	g.Advance(2500 * time.Millisecond)
	if g.phase < 0 || g.phase >= 1 {
		t.Fatalf("phase = %v, want in [0,1)", g.phase)
	}
}

func TestBuildDeterministicAtFixedPhase(t *testing.T) {
	g := New(0)
	a := g.Build(128)
	b := g.Build(128)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pal[%d] differs between two builds at the same phase: %#x vs %#x", i, a[i], b[i])
		}
	}
}
