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

package zerr_test

import (
	"testing"

	"github.com/jetsetilly/zoomcore/internal/zerr"
)

func TestSurfaceUnavailable(t *testing.T) {
	e := zerr.New(zerr.SurfaceUnavailable)
	if e.Error() != "surface did not report a usable size" {
		t.Errorf("unexpected error message: %q", e.Error())
	}
}

func TestRenderFailure(t *testing.T) {
	e := zerr.New(zerr.RenderFailure, "buffer too small")
	if e.Error() != "render failure: buffer too small" {
		t.Errorf("unexpected error message: %q", e.Error())
	}
}

func TestUnknownErrno(t *testing.T) {
	e := zerr.New(zerr.Errno(99))
	if e.Error() != "zoomer: unknown error 99" {
		t.Errorf("unexpected fallback message: %q", e.Error())
	}
}
