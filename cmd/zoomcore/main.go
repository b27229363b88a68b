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

// Command zoomcore drives the zoomer engine against an SDL2 window, with
// the Mandelbrot set as its pixel formula and an animated HSV palette. It
// is a thin reference wiring, grounded on gopher2600.go's top-level
// construction and shutdown sequence, and modalflag for its command line.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/jetsetilly/zoomcore/fractal"
	"github.com/jetsetilly/zoomcore/internal/zlog"
	"github.com/jetsetilly/zoomcore/modalflag"
	"github.com/jetsetilly/zoomcore/palette"
	"github.com/jetsetilly/zoomcore/surfacesdl"
	"github.com/jetsetilly/zoomcore/zoomer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)

	width := md.AddInt("w", 1024, "window width")
	height := md.AddInt("h", 768, "window height")
	fps := md.AddFloat64("fps", 30, "target frame rate")
	maxIter := md.AddInt("maxiter", 1000, "maximum escape-time iterations")
	paletteSpeed := md.AddFloat64("palettespeed", 0.05, "palette hue cycles per second")
	radius := md.AddFloat64("radius", 2, "initial view radius on the complex plane")
	centerX := md.AddFloat64("cx", -0.5, "initial view center, real part")
	centerY := md.AddFloat64("cy", 0, "initial view center, imaginary part")
	disableWW := md.AddBool("inline", false, "render inline instead of on worker goroutines")

	switch res, err := md.Parse(); res {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	zlog.SetEcho(os.Stderr)

	surf, err := surfacesdl.New("zoomcore", *width, *height)
	if err != nil {
		return err
	}
	defer surf.Close()

	hk, err := newHotkeys()
	if err != nil {
		zlog.Logf(zlog.Allow, "zoomcore", "hotkeys unavailable: %v", err)
	} else {
		defer hk.restore()
	}

	mandel := fractal.New(*maxIter)
	pal := palette.New(*paletteSpeed)

	var mu sync.Mutex
	center := struct{ x, y, radius, angle float64 }{x: *centerX, y: *centerY, radius: *radius}
	lastTick := time.Now()

	cb := zoomer.Callbacks{
		OnInitFrame: func(_ *zoomer.Zoomer, frame *zoomer.Frame) {
			frame.Palette = pal.Build(*maxIter)
		},
		OnBeginFrame: func(z *zoomer.Zoomer, _, _ *zoomer.View) {
			now := time.Now()
			pal.Advance(now.Sub(lastTick))
			lastTick = now

			mu.Lock()
			x, y, r, a := center.x, center.y, center.radius, center.angle
			mu.Unlock()
			z.SetPosition(x, y, r, a)
		},
		OnUpdatePixel: func(_ *zoomer.Zoomer, _ *zoomer.Frame, x, y float64) uint32 {
			return mandel.Escape(x, y)
		},
		OnRenderFrame: func(_ *zoomer.Zoomer, frame *zoomer.Frame) {
			frame.Palette = pal.Build(*maxIter)
		},
		OnPutImageData: surf.PutImageData,
	}

	cfg := zoomer.DefaultConfig()
	cfg.FrameRate = *fps
	cfg.DisableWW = *disableWW

	z := zoomer.New(surf, false, cfg, cb)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		z.Run(stop)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	const zoomStep = 0.98

loop:
	for {
		select {
		case <-sig:
			break loop
		case ev := <-surf.Events:
			if ev.ID == surfacesdl.EventQuit {
				break loop
			}
		case k := <-hk.keysOrNil():
			mu.Lock()
			switch k {
			case 'q':
				mu.Unlock()
				break loop
			case '+':
				center.radius *= zoomStep
			case '-':
				center.radius /= zoomStep
			case 'r':
				center.radius = *radius
				center.x, center.y = *centerX, *centerY
			}
			mu.Unlock()
		}
	}

	close(stop)
	wg.Wait()

	return nil
}
