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

import "math"

// noFrom marks a ruler stop as a stale duplicate: free to overwrite, and
// the next updateLines call must prefer recomputing it even if its
// numeric error happens to be small.
const noFrom = -1

// ruler is a per-axis table mapping each of N new coordinate stops to the
// nearest sample inherited from the previous axis. One ruler per axis, held
// by a View.
type ruler struct {
	coord   []float64 // logical target coordinate of each stop
	nearest []float64 // coordinate of the chosen old sample
	err     []float64 // |coord[i] - nearest[i]|, always >= 0
	from    []int     // index into the previous axis, or noFrom
}

func newRuler(n int) *ruler {
	return &ruler{
		coord:   make([]float64, n),
		nearest: make([]float64, n),
		err:     make([]float64, n),
		from:    make([]int, n),
	}
}

// resize grows or shrinks the ruler's backing slices to length n, reusing
// capacity where possible.
func (r *ruler) resize(n int) {
	grow := func(s []float64) []float64 {
		if cap(s) >= n {
			return s[:n]
		}
		return make([]float64, n)
	}
	r.coord = grow(r.coord)
	r.nearest = grow(r.nearest)
	r.err = grow(r.err)
	if cap(r.from) >= n {
		r.from = r.from[:n]
	} else {
		r.from = make([]int, n)
	}
}

func (r *ruler) len() int { return len(r.coord) }

// exactCount returns the number of stops with zero residual error. Used by
// View.updateQuality (after SetPosition, Fill and UpdateLines) to approximate how many pixels are exactly
// computed (see Stats.CntPixels).
func (r *ruler) exactCount() int {
	n := 0
	for _, e := range r.err {
		if e == 0 {
			n++
		}
	}
	return n
}

// worst returns the index and value of the largest error on the axis, or
// (-1, 0) if every stop is already exact.
func (r *ruler) worst() (idx int, errval float64) {
	idx = -1
	for i, e := range r.err {
		if e > errval {
			errval = e
			idx = i
		}
	}
	return idx, errval
}

// reachedLimits reports whether two adjacent coordinate stops have become
// numerically indistinguishable: the floating point step between them has
// underflowed to zero. This is View.ReachedLimits' per-axis test.
func (r *ruler) reachedLimits() bool {
	for i := 1; i < len(r.coord); i++ {
		if r.coord[i] == r.coord[i-1] {
			return true
		}
	}
	return false
}

// initLinear fills the ruler with N coordinates evenly spaced across
// [start, end], and no inherited sample: every stop's nearest equals its
// own coordinate (zero error) and from is noFrom (nothing to warp from).
// This is the no-previous-view initialization path of setPosition; pixels
// must be filled separately (see View.Fill).
//
// The index used to address coord/nearest (named j here) must be the
// axis's own loop variable, using a shared "i" across both the x- and
// y-axis initialization is a classic copy-paste bug in code ported from a
// single shared-index original; this implementation tiles each axis with
// its own independent loop variable.
func (r *ruler) initLinear(start, end float64) {
	n := len(r.coord)
	if n == 1 {
		r.coord[0] = start
		r.nearest[0] = start
		r.err[0] = 0
		r.from[0] = noFrom
		return
	}
	step := (end - start) / float64(n-1)
	for j := 0; j < n; j++ {
		c := start + step*float64(j)
		r.coord[j] = c
		r.nearest[j] = c
		r.err[j] = 0
		r.from[j] = noFrom
	}
}

// makeRuler builds this ruler's coord/nearest/err/from tables for a new
// axis range [start, end] of length N, against the previous axis's
// oldNearest/oldErr tables (length M, oldNearest monotonically
// non-decreasing). It returns the number of stops for which the residual
// error is exactly zero.
//
// Single linear sweep with two cursors, O(N+M): for each new stop, advance
// the old cursor while doing so strictly improves (or ties, preferring to
// advance) the distance to the candidate old sample.
func (r *ruler) makeRuler(start, end float64, oldNearest, oldErr []float64) int {
	n := len(r.coord)
	m := len(oldNearest)
	_ = oldErr // carried for interface fidelity; unused by the sweep itself

	exact := 0

	if m == 0 {
		r.initLinear(start, end)
		return 0
	}

	iOld := 0
	for iNew := 0; iNew < n; iNew++ {
		var curr float64
		if n == 1 {
			curr = start
		} else {
			curr = start + (end-start)*float64(iNew)/float64(n-1)
		}

		for iOld < m-1 && math.Abs(curr-oldNearest[iOld+1]) <= math.Abs(curr-oldNearest[iOld]) {
			iOld++
		}

		nearest := oldNearest[iOld]
		e := math.Abs(curr - nearest)

		r.coord[iNew] = curr
		r.nearest[iNew] = nearest
		r.err[iNew] = e
		r.from[iNew] = iOld

		if e == 0 {
			exact++
		}
	}

	return exact
}

// markDuplicates keeps, for every run of consecutive stops sharing the same
// from value, only the stop with the smallest residual error (the earlier
// one on a tie) and marks the rest noFrom. The forward pass compares each
// stop with its run's current survivor rather than only with its left
// neighbour, so runs of any length collapse onto one stop; the backward
// pass repeats the pairwise check on adjacent stops from the other end.
func (r *ruler) markDuplicates() {
	n := len(r.from)
	keep := 0
	for i := 1; i < n; i++ {
		if r.from[i] == noFrom || r.from[keep] == noFrom || r.from[i] != r.from[keep] {
			keep = i
			continue
		}
		if r.err[i] >= r.err[keep] {
			r.from[i] = noFrom
		} else {
			r.from[keep] = noFrom
			keep = i
		}
	}
	for i := n - 2; i >= 0; i-- {
		if r.from[i] == noFrom || r.from[i+1] == noFrom {
			continue
		}
		if r.from[i] == r.from[i+1] {
			if r.err[i] >= r.err[i+1] {
				r.from[i] = noFrom
			} else {
				r.from[i+1] = noFrom
			}
		}
	}
}
