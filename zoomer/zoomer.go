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

// Package zoomer implements the progressive reprojection engine: a Ruler
// per axis, a View that warps one frame's pixels into the next and
// recomputes the worst-error line per time slice, and a Zoomer scheduler
// that drives COPY/UPDATE/RENDER/PAINT against a display clock using two
// alternating Views and (optionally) a pair of off-thread render workers.
package zoomer

import (
	"time"

	"github.com/jetsetilly/zoomcore/internal/zlog"
)

// State is one of the five phases the scheduler's state machine moves
// through on every mainloop tick.
type State int

const (
	StateStop State = iota
	StateCopy
	StateUpdate
	StateRender
	StatePaint
)

func (s State) String() string {
	switch s {
	case StateStop:
		return "STOP"
	case StateCopy:
		return "COPY"
	case StateUpdate:
		return "UPDATE"
	case StateRender:
		return "RENDER"
	case StatePaint:
		return "PAINT"
	default:
		return "?"
	}
}

// vsyncLostThreshold is how far past an expected display deadline the
// scheduler will tolerate before concluding the clock has been suspended
// (e.g. a background browser tab) and resyncing.
const vsyncLostThreshold = 2 * time.Second

// Zoomer is the scheduler: it owns the pair of Views, the frame pool and
// the render workers, and drives the COPY -> (RENDER+UPDATE) -> PAINT state
// machine.
type Zoomer struct {
	surface     Surface
	enableAngle bool
	cfg         Config
	cb          Callbacks

	state   State
	frameNr int

	views     [2]*View
	calcIdx   int
	lastViewW int
	lastViewH int

	pool framePool

	workerIn  [2]chan *Frame
	workerOut chan workerResult
	inline    bool

	// pendingRender/pendingPaint hold the frame awaiting its next inline
	// step; only used when cfg.DisableWW is set (inline == true).
	pendingRender *Frame
	pendingPaint  *Frame

	center struct {
		x, y, radius, angle float64
	}

	frameRate float64

	avgCopy, avgUpdate, avgRender, avgPaint time.Duration

	stateStartCopy time.Time

	timeLastWake  time.Time
	timeLastDrop  time.Time
	timeLastFrame time.Time

	cntDropped int

	// updateEnd/updateNextSync are recomputed each time COPY hands control
	// to UPDATE and consulted by every UPDATE tick until the transition
	// back to COPY.
	updateEnd     time.Time
	updateNextSync time.Time

	reachedLimits bool
}

type workerResult struct {
	worker int
	frame  *Frame
}

// New constructs a Zoomer bound to surface. enableAngle decides whether the
// pixel buffer is sized for arbitrary rotation. cb.OnUpdatePixel should be
// set before Run is called, or UPDATE will never improve a frame's
// quality.
func New(surface Surface, enableAngle bool, cfg Config, cb Callbacks) *Zoomer {
	cfg.sanitize()

	z := &Zoomer{
		surface:     surface,
		enableAngle: enableAngle,
		cfg:         cfg,
		cb:          cb,
		frameRate:   cfg.FrameRate,
		inline:      cfg.DisableWW,
		state:       StateCopy,
	}

	viewW, viewH := surface.Size()
	z.lastViewW, z.lastViewH = viewW, viewH
	z.views[0] = newView(viewW, viewH, enableAngle)
	z.views[1] = newView(viewW, viewH, enableAngle)

	if !z.inline {
		z.workerOut = make(chan workerResult, 2)
		for w := 0; w < 2; w++ {
			z.workerIn[w] = make(chan *Frame, 1)
			go z.renderWorker(w)
		}
	}

	now := time.Now()
	z.timeLastWake = now
	z.timeLastFrame = now

	return z
}

func (z *Zoomer) calcView() *View { return z.views[z.calcIdx] }
func (z *Zoomer) dispView() *View { return z.views[1-z.calcIdx] }

// State returns the scheduler's current phase.
func (z *Zoomer) State() State { return z.state }

// FrameRate returns the scheduler's current (possibly throttled down)
// target frame rate.
func (z *Zoomer) FrameRate() float64 { return z.frameRate }

// DroppedCount returns the number of frames the renderer has refused to
// produce because their deadline had already passed.
func (z *Zoomer) DroppedCount() int { return z.cntDropped }

// ReachedLimits reports whether the calc View's zoom has exhausted float64
// precision on either axis. Advisory only; see View.ReachedLimits.
func (z *Zoomer) ReachedLimits() bool { return z.reachedLimits }

// Averages returns the scheduler's current low-pass moving average
// duration for each of the four phases. Diagnostic only; see
// internal/zmetrics for a live dashboard built on these values.
func (z *Zoomer) Averages() (copy, update, render, paint time.Duration) {
	return z.avgCopy, z.avgUpdate, z.avgRender, z.avgPaint
}

// SetPosition is the authoritative way to move the view: call it from
// inside OnBeginFrame, using the calcView/dispView arguments that callback
// receives.
func (z *Zoomer) SetPosition(centerX, centerY, radius, angle float64) {
	z.center.x, z.center.y, z.center.radius, z.center.angle = centerX, centerY, radius, angle
}

// renderWorker is a render worker: it receives Frames by exclusive
// channel transfer, renders them, and posts the result back. No shared
// mutable memory exists between the worker and the scheduler beyond the
// Frame itself, which is owned by exactly one side at any moment.
func (z *Zoomer) renderWorker(id int) {
	for frame := range z.workerIn[id] {
		if z.cb.OnRenderFrame != nil {
			z.cb.OnRenderFrame(z, frame)
		}
		RenderFrame(frame, time.Now())
		z.workerOut <- workerResult{worker: id, frame: frame}
	}
}

// Run drives the scheduler's mainloop until stop is closed or StateStop is
// reached. It is intended to be called in its own goroutine; the calling
// program's other goroutines (input handling, GUI event pump) are
// unaffected by it, the same separation of concerns a guiLoop/mainloop
// split provides.
func (z *Zoomer) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			z.state = StateStop
			return
		case res := <-z.workerOut:
			z.handleWorkerResult(res)
			continue
		default:
		}

		z.checkVsync()

		switch z.state {
		case StateStop:
			return
		case StateCopy:
			z.tickCopy()
		case StateUpdate:
			z.tickUpdate()
		case StateRender:
			z.tickRender()
		case StatePaint:
			z.tickPaint()
		}
	}
}

// tickCopy implements the COPY phase.
func (z *Zoomer) tickCopy() {
	now := time.Now()
	z.stateStartCopy = now

	viewW, viewH := z.surface.Size()
	var resizedFrom *View
	if viewW != z.lastViewW || viewH != z.lastViewH {
		resizedFrom = z.handleResize(viewW, viewH)
	} else {
		z.calcIdx = 1 - z.calcIdx
	}

	calc, disp := z.calcView(), z.dispView()

	pixelW, pixelH := calc.pixelW, calc.pixelH

	z.frameNr++
	frame := z.pool.alloc(z.frameNr, viewW, viewH, pixelW, pixelH, z.center.angle)
	if z.cb.OnInitFrame != nil {
		z.cb.OnInitFrame(z, frame)
	}

	if prevFrame := disp.Frame(); prevFrame != nil {
		prevFrame.TimeExpire = now.Add(2 * time.Duration(float64(time.Second)/z.frameRate))
	}

	if z.cb.OnBeginFrame != nil {
		z.cb.OnBeginFrame(z, calc, disp)
	}

	// resizedFrom is the view holding the most recently computed frame right
	// up until the surface changed size; it carries the one Frame worth
	// inheriting from across the dimension change, even though it's about to
	// be discarded along with the View it was bound to.
	prev := resizedFrom
	if prev == nil && disp.Frame() != nil {
		prev = disp
	}
	calc.SetPosition(frame, z.center.x, z.center.y, z.center.radius, prev)
	if prev == nil {
		calc.Fill(z.cb.calcFunc(z, frame))
	}
	z.reachedLimits = calc.ReachedLimits()

	z.pushAvg(&z.avgCopy, time.Since(now))

	outgoing := disp.DetachFrame()
	if outgoing == nil {
		z.state = StateUpdate
		z.scheduleUpdateWindow(now)
		return
	}

	if z.inline {
		z.pendingRender = outgoing
		z.state = StateRender
		return
	}

	z.workerIn[outgoing.FrameNr&1] <- outgoing
	z.state = StateUpdate
	z.scheduleUpdateWindow(now)
}

// scheduleUpdateWindow computes the deadline UPDATE must respect before it
// has to hand control back to COPY.
func (z *Zoomer) scheduleUpdateWindow(copyStart time.Time) {
	idle := time.Since(z.timeLastWake) > z.cfg.WakeTimeout

	frameInterval := time.Duration(float64(time.Second) / z.frameRate)
	nextsync := copyStart.Add(frameInterval - z.avgCopy - z.avgPaint)
	if z.inline {
		nextsync = nextsync.Add(-z.avgRender)
	}

	if idle {
		nextsync = copyStart.Add(z.cfg.UpdateIdleBurst)
	}

	z.updateNextSync = nextsync
	end := time.Now().Add(z.cfg.UpdateSlice)
	if end.After(nextsync) {
		end = nextsync
	}
	z.updateEnd = end
}

// tickUpdate implements the UPDATE phase.
func (z *Zoomer) tickUpdate() {
	start := time.Now()
	calc := z.calcView()
	frame := calc.Frame()

	calcFn := z.cb.calcFunc(z, frame)
	for time.Now().Before(z.updateEnd) {
		calc.UpdateLines(calcFn)
	}

	now := time.Now()
	if frame != nil {
		z.pushAvg(&z.avgUpdate, now.Sub(start))
	}

	if !now.Before(z.updateNextSync) {
		z.timeLastWake = now
		z.state = StateCopy
		return
	}

	end := now.Add(z.cfg.UpdateSlice)
	if end.After(z.updateNextSync) {
		end = z.updateNextSync
	}
	z.updateEnd = end

	// nothing left to improve and we still have time before the next
	// sync point: avoid busy-spinning the host CPU.
	if idx, _ := calc.xRuler.worst(); idx < 0 {
		if idx2, _ := calc.yRuler.worst(); idx2 < 0 {
			if d := z.updateNextSync.Sub(now); d > time.Millisecond {
				time.Sleep(d)
			}
		}
	}
}

// tickRender implements the RENDER phase used only when workers are
// disabled (cfg.DisableWW).
func (z *Zoomer) tickRender() {
	frame := z.pendingRender
	z.pendingRender = nil

	if z.cb.OnRenderFrame != nil {
		z.cb.OnRenderFrame(z, frame)
	}

	start := time.Now()
	RenderFrame(frame, start)
	z.pushAvg(&z.avgRender, time.Since(start))

	if frame.Stats.DurationRender == 0 {
		z.recordDrop()
		z.pool.release(frame)
		z.state = StateCopy
		return
	}

	z.pendingPaint = frame
	z.state = StatePaint
}

// tickPaint implements the PAINT phase. It is only reached in inline mode
// (cfg.DisableWW); in worker mode, painting happens directly from
// handleWorkerResult, which runs in parallel with UPDATE rather than as a
// state of its own.
func (z *Zoomer) tickPaint() {
	frame := z.pendingPaint
	z.pendingPaint = nil
	z.paint(frame)
	z.state = StateUpdate
	z.scheduleUpdateWindow(z.stateStartCopy)
}

func (z *Zoomer) paint(frame *Frame) {
	start := time.Now()
	if z.cb.OnPutImageData != nil {
		z.cb.OnPutImageData(z, frame)
	}
	z.pushAvg(&z.avgPaint, time.Since(start))

	z.timeLastFrame = time.Now()

	if z.cb.OnEndFrame != nil {
		z.cb.OnEndFrame(z, frame)
	}

	z.pool.release(frame)
}

// handleWorkerResult is the worker-return path that runs in parallel with
// UPDATE: a rendered (or dropped) frame comes back from whichever worker
// produced it.
func (z *Zoomer) handleWorkerResult(res workerResult) {
	frame := res.frame

	if frame.Stats.Dropped || frame.Stats.DurationRender == 0 {
		z.recordDrop()
		z.pool.release(frame)
		return
	}

	z.paint(frame)
}

// recordDrop counts a dropped frame and, if two drops have now occurred
// more than 2 seconds apart, throttles the target frame rate down by 5%.
func (z *Zoomer) recordDrop() {
	now := time.Now()
	z.cntDropped++

	if !z.timeLastDrop.IsZero() && now.Sub(z.timeLastDrop) > 2*time.Second {
		z.frameRate *= 0.95
		zlog.Logf(zlog.Allow, "zoomer", "throttling frame rate to %.2f after repeated drops", z.frameRate)
	}
	z.timeLastDrop = now
}

// pushAvg updates a low-pass moving average in place using cfg.Coef.
func (z *Zoomer) pushAvg(avg *time.Duration, sample time.Duration) {
	if *avg == 0 {
		*avg = sample
		return
	}
	f := z.cfg.Coef
	*avg = time.Duration((1-f)*float64(*avg) + f*float64(sample))
}

// handleResize recreates both Views for a new surface size, returning the
// View that holds the most recently computed Frame (the calc View, before
// COPY would have swapped it to display) so that Frame can be warped into
// the first new-dimension frame exactly once. A Frame already in flight to
// a worker is not returned here; it completes, is painted and released as
// usual, and pool.alloc later discards it because its dimensions no longer
// match, since neither new View still tracks it.
func (z *Zoomer) handleResize(viewW, viewH int) *View {
	z.lastViewW, z.lastViewH = viewW, viewH

	latest := z.calcView()

	for i := range z.views {
		z.views[i] = newView(viewW, viewH, z.enableAngle)
	}
	z.calcIdx = 0

	pixelW, pixelH := z.views[0].pixelW, z.views[0].pixelH
	if z.cb.OnResize != nil {
		z.cb.OnResize(z, viewW, viewH, pixelW, pixelH)
	}

	if latest.Frame() == nil {
		return nil
	}
	return latest
}

// checkVsync resyncs the scheduler's clock if more than
// vsyncLostThreshold has elapsed since the last frame was painted,
// recovering from e.g. a suspended background tab.
func (z *Zoomer) checkVsync() {
	if z.timeLastFrame.IsZero() {
		return
	}
	if time.Since(z.timeLastFrame) > vsyncLostThreshold {
		zlog.Log(zlog.Allow, "zoomer", "vsync lost, resyncing")
		z.timeLastFrame = time.Now()
		z.timeLastWake = time.Now()
		z.state = StateCopy
	}
}
