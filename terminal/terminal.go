package terminal

import (
	"math"

	"github.com/esimov/ascii-particles/engine"
	particle "github.com/esimov/ascii-particles/particle-system"
	"github.com/nsf/termbox-go"
	"go.uber.org/zap"
)

const block = '█'

// Terminal renders simulation frames with termbox. The world rectangle is
// stretched over the whole screen.
type Terminal struct {
	backbuf  []termbox.Cell
	bbw, bbh int
	world    particle.Rect
	events   chan termbox.Event
	done     chan struct{}
	log      *zap.SugaredLogger
}

// New returns a terminal host showing the world rectangle.
func New(world particle.Rect, log *zap.SugaredLogger) *Terminal {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Terminal{
		world:  world,
		events: make(chan termbox.Event, 16),
		done:   make(chan struct{}),
		log:    log,
	}
}

// Open initializes the screen and starts listening for key and resize events.
func (t *Terminal) Open() error {
	if err := termbox.Init(); err != nil {
		return err
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.SetOutputMode(termbox.Output256)
	t.reallocBackBuffer(termbox.Size())
	t.log.Infow("terminal opened", "width", t.bbw, "height", t.bbh)

	go t.pollEvents()
	return nil
}

// Close stops the event listener and restores the terminal.
func (t *Terminal) Close() {
	termbox.Interrupt()
	<-t.done
	termbox.Close()
}

func (t *Terminal) pollEvents() {
	defer close(t.done)
	for {
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		t.events <- ev
	}
}

// Bounds returns the world rectangle, or nil while the terminal has no
// visible cells.
func (t *Terminal) Bounds() particle.Bounds {
	if t.bbw <= 0 || t.bbh <= 0 {
		return nil
	}
	return t.world
}

// Render handles pending events, then draws the frame.
func (t *Terminal) Render(f particle.Frame) error {
events:
	for {
		select {
		case ev := <-t.events:
			if err := t.handle(ev); err != nil {
				return err
			}
		default:
			break events
		}
	}

	t.draw(f)
	copy(termbox.CellBuffer(), t.backbuf)
	return termbox.Flush()
}

func (t *Terminal) handle(ev termbox.Event) error {
	switch ev.Type {
	case termbox.EventKey:
		if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' {
			return engine.ErrQuit
		}
	case termbox.EventResize:
		t.reallocBackBuffer(ev.Width, ev.Height)
		t.log.Debugw("terminal resized", "width", ev.Width, "height", ev.Height)
	case termbox.EventError:
		return ev.Err
	}
	return nil
}

func (t *Terminal) reallocBackBuffer(w, h int) {
	t.bbw, t.bbh = w, h
	if w < 0 || h < 0 {
		t.bbw, t.bbh = 0, 0
	}
	t.backbuf = make([]termbox.Cell, t.bbw*t.bbh)
}

// draw clears the back buffer to black and paints every sprite as the
// block of cells covered by its square marker.
func (t *Terminal) draw(f particle.Frame) {
	bg := termbox.Cell{Ch: ' ', Fg: termbox.ColorBlack, Bg: termbox.ColorBlack}
	for i := range t.backbuf {
		t.backbuf[i] = bg
	}
	if t.bbw == 0 || t.bbh == 0 {
		return
	}

	half := f.Size / 2
	for _, s := range f.Sprites {
		x0, y0 := t.cellAt(particle.Vec{X: s.Pos.X - half, Y: s.Pos.Y + half})
		x1, y1 := t.cellAt(particle.Vec{X: s.Pos.X + half, Y: s.Pos.Y - half})
		fg := paletteColor(s.Color)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				t.backbuf[t.bbw*y+x] = termbox.Cell{Ch: block, Fg: fg, Bg: termbox.ColorBlack}
			}
		}
	}
}

// cellAt maps a world point to the nearest cell, clamped to the screen.
// World y grows upwards, screen rows grow downwards.
func (t *Terminal) cellAt(p particle.Vec) (int, int) {
	fx := (p.X - t.world.Min.X) / t.world.Width()
	fy := (t.world.Max.Y - p.Y) / t.world.Height()
	return clamp(int(math.Floor(fx*float64(t.bbw))), t.bbw-1),
		clamp(int(math.Floor(fy*float64(t.bbh))), t.bbh-1)
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// paletteColor returns the closest entry of the 6x6x6 color cube of the
// 256 color palette. Output256 attributes are palette indices plus one.
func paletteColor(c particle.Color) termbox.Attribute {
	r, g, b := c.RGB255()
	level := func(v uint8) int {
		return int(math.Round(float64(v) / 255 * 5))
	}
	return termbox.Attribute(16 + 36*level(r) + 6*level(g) + level(b) + 1)
}
