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

//go:build statsview
// +build statsview

// Package zmetrics is an optional package, built only when the +statsview
// build constraint is present, that exposes a Zoomer's moving averages
// through a go-echarts/statsview dashboard, generalized from runtime-only
// metrics to the scheduler's own per-phase averages.
package zmetrics

import (
	"expvar"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/jetsetilly/zoomcore/internal/zlog"
	"github.com/jetsetilly/zoomcore/zoomer"
)

// Address is the local HTTP address the dashboard is served from.
const Address = "localhost:12600"

const url = "/debug/statsview"

var (
	copyMs   = expvar.NewFloat("zoomer_avg_copy_ms")
	updateMs = expvar.NewFloat("zoomer_avg_update_ms")
	renderMs = expvar.NewFloat("zoomer_avg_render_ms")
	paintMs  = expvar.NewFloat("zoomer_avg_paint_ms")
	fps      = expvar.NewFloat("zoomer_frame_rate")
	dropped  = expvar.NewInt("zoomer_dropped_count")
	logLines = expvar.NewInt("zoomer_log_lines")
)

// Launch starts the statsview HTTP server and a background goroutine that
// samples z's Averages/FrameRate/DroppedCount into expvar counters every
// period.
func Launch(z *zoomer.Zoomer, period time.Duration, output io.Writer) {
	viewer.SetConfiguration(viewer.WithAddr(Address))
	mgr := statsview.New()
	mgr.Start()

	go sample(z, period)

	fmt.Fprintf(output, "stats server available at %s%s\n", Address, url)
}

func sample(z *zoomer.Zoomer, period time.Duration) {
	if period <= 0 {
		period = time.Second
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for range ticker.C {
		c, u, r, p := z.Averages()
		copyMs.Set(float64(c) / float64(time.Millisecond))
		updateMs.Set(float64(u) / float64(time.Millisecond))
		renderMs.Set(float64(r) / float64(time.Millisecond))
		paintMs.Set(float64(p) / float64(time.Millisecond))
		fps.Set(z.FrameRate())
		dropped.Set(int64(z.DroppedCount()))

		zlog.BorrowLog(func(entries []zlog.Entry) {
			logLines.Set(int64(len(entries)))
		})
	}
}

// Available reports whether a statsview dashboard can be launched; always
// true when this file is built.
func Available() bool { return true }
