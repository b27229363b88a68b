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

package fractal

import "testing"

func TestOriginIsInterior(t *testing.T) {
	m := New(100)
	if got := m.Escape(0, 0); got != uint32(m.MaxIter) {
		t.Fatalf("Escape(0,0) = %v, want %v (origin never escapes)", got, m.MaxIter)
	}
}

func TestFarPointEscapesQuickly(t *testing.T) {
	m := New(1000)
	got := m.Escape(10, 10)
	if got >= uint32(m.MaxIter) {
		t.Fatalf("Escape(10,10) = %v, want < MaxIter (far outside the set)", got)
	}
	if got > 10 {
		t.Fatalf("Escape(10,10) = %v, want a handful of iterations", got)
	}
}

func TestEscapeIsDeterministic(t *testing.T) {
	m := New(500)
	a := m.Escape(-0.5, 0.3)
	b := m.Escape(-0.5, 0.3)
	if a != b {
		t.Fatalf("Escape not deterministic: %v vs %v", a, b)
	}
}

func TestDefaultMaxIterOnNonPositive(t *testing.T) {
	m := New(0)
	if m.MaxIter != 1000 {
		t.Fatalf("MaxIter = %v, want default 1000", m.MaxIter)
	}
}
