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

// Package surfacesdl is a reference implementation of zoomer.Surface, an
// SDL2 window with a streaming texture, following the window/renderer/
// texture setup of a gui/sdlplay-style package and the WaitEventTimeout
// polling loop of a gui/sdlimgui-style package.
package surfacesdl

import (
	"encoding/binary"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/zoomcore/internal/zerr"
	"github.com/jetsetilly/zoomcore/internal/zlog"
	"github.com/jetsetilly/zoomcore/zoomer"
)

// EventID identifies what an Event reports.
type EventID int

const (
	EventQuit EventID = iota
	EventResize
)

// Event is pushed to Events whenever something the host program's own
// loop needs to react to happens: a window close request, or a resize
// (which the Zoomer will itself pick up on its next COPY tick via Size,
// but a caller may still want to know when one occurred).
type Event struct {
	ID   EventID
	W, H int
}

// Surface is a resizable SDL2 window streaming a zoomer.Frame.RGBA buffer
// to a texture every paint. It implements zoomer.Surface and is intended
// to be wired as Callbacks.OnPutImageData via (*Surface).PutImageData.
type Surface struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	mu   sync.Mutex
	viewW, viewH int

	rowBytes []byte

	Events chan Event

	quit chan struct{}
}

// New opens an SDL2 window of the given title and initial size and starts
// its event pump. Call Close when done.
func New(title string, w, h int) (*Surface, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, zerr.New(zerr.SurfaceUnavailable, err)
	}

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(w), int32(h),
		sdl.WINDOW_RESIZABLE|sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, zerr.New(zerr.SurfaceUnavailable, err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, zerr.New(zerr.SurfaceUnavailable, err)
	}

	s := &Surface{
		window:   window,
		renderer: renderer,
		viewW:    w,
		viewH:    h,
		Events:   make(chan Event, 8),
		quit:     make(chan struct{}),
	}

	if err := s.createTexture(w, h); err != nil {
		return nil, err
	}

	go s.eventLoop()

	return s, nil
}

func (s *Surface) createTexture(w, h int) error {
	tex, err := s.renderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_ABGR8888),
		sdl.TEXTUREACCESS_STREAMING,
		int32(w), int32(h))
	if err != nil {
		return zerr.New(zerr.SurfaceUnavailable, err)
	}
	if s.texture != nil {
		s.texture.Destroy()
	}
	s.texture = tex
	s.rowBytes = make([]byte, w*h*4)
	return nil
}

// Size implements zoomer.Surface.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewW, s.viewH
}

// PutImageData uploads frame.RGBA to the streaming texture and presents
// it. Wire as Callbacks.OnPutImageData.
func (s *Surface) PutImageData(_ *zoomer.Zoomer, frame *zoomer.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	need := frame.ViewW * frame.ViewH * 4
	if cap(s.rowBytes) < need {
		s.rowBytes = make([]byte, need)
	}
	buf := s.rowBytes[:need]
	for i, px := range frame.RGBA {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], px)
	}

	if err := s.texture.Update(nil, buf, frame.ViewW*4); err != nil {
		zlog.Logf(zlog.Allow, "surfacesdl", "texture update failed: %v", err)
		return
	}
	if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
		zlog.Logf(zlog.Allow, "surfacesdl", "renderer copy failed: %v", err)
		return
	}
	s.renderer.Present()
}

// eventLoop polls SDL for window events using WaitEventTimeout rather than
// a busy PollEvent loop, and recreates the streaming texture in place
// whenever the window is resized.
func (s *Surface) eventLoop() {
	for {
		select {
		case <-s.quit:
			return
		default:
		}

		ev := sdl.WaitEventTimeout(200)
		if ev == nil {
			continue
		}

		switch e := ev.(type) {
		case *sdl.QuitEvent:
			select {
			case s.Events <- Event{ID: EventQuit}:
			default:
			}

		case *sdl.WindowEvent:
			if e.Event != sdl.WINDOWEVENT_RESIZED && e.Event != sdl.WINDOWEVENT_SIZE_CHANGED {
				continue
			}
			w, h := int(e.Data1), int(e.Data2)

			s.mu.Lock()
			s.viewW, s.viewH = w, h
			_ = s.createTexture(w, h)
			s.mu.Unlock()

			select {
			case s.Events <- Event{ID: EventResize, W: w, H: h}:
			default:
			}
		}
	}
}

// Close tears down the window, renderer and texture and stops the event
// pump.
func (s *Surface) Close() {
	close(s.quit)
	if s.texture != nil {
		s.texture.Destroy()
	}
	s.renderer.Destroy()
	s.window.Destroy()
	sdl.Quit()
}
