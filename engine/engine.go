package engine

import (
	"context"
	"errors"
	"time"

	particle "github.com/esimov/ascii-particles/particle-system"
	"go.uber.org/zap"
)

// ErrQuit is returned by a Renderer to stop the loop without an error.
var ErrQuit = errors.New("quit")

// Renderer is the host a Loop draws into.
type Renderer interface {
	// Bounds returns the visible area, or nil when no viewport is available.
	Bounds() particle.Bounds
	// Render draws a frame. It must not retain f.Sprites after returning.
	Render(f particle.Frame) error
}

// Loop owns the frame counter and drives one simulation at a fixed rate.
type Loop struct {
	sim      *particle.Simulation
	renderer Renderer
	log      *zap.SugaredLogger
	interval time.Duration
	frame    uint64
}

// New returns a loop ticking fps times per second.
func New(sim *particle.Simulation, r Renderer, fps int, log *zap.SugaredLogger) *Loop {
	if fps <= 0 {
		fps = 60
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Loop{
		sim:      sim,
		renderer: r,
		log:      log,
		interval: time.Second / time.Duration(fps),
	}
}

// Frame returns the number of the next frame to run.
func (l *Loop) Frame() uint64 {
	return l.frame
}

// Step runs a single frame. The frame counter advances even when the host
// has no viewport and the tick is skipped; nothing is rendered then.
func (l *Loop) Step() (particle.Stats, error) {
	n := l.frame
	l.frame++

	st := l.sim.Tick(n, l.renderer.Bounds())
	if st.Skipped {
		l.log.Debugw("tick skipped, no viewport", "frame", n)
		return st, nil
	}
	if st.Explosions > 0 || st.Dropped > 0 {
		l.log.Debugw("tick",
			"frame", n,
			"explosions", st.Explosions,
			"spawned", st.Spawned,
			"dropped", st.Dropped,
			"removed", st.Removed,
			"live", st.Live,
		)
	}
	return st, l.renderer.Render(l.sim.Frame(n))
}

// Run steps the loop until ctx is done or the renderer asks to quit.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.log.Infow("simulation started", "interval", l.interval, "capacity", l.sim.System().Cap())
	for {
		if _, err := l.Step(); err != nil {
			if errors.Is(err, ErrQuit) {
				l.log.Infow("simulation stopped", "frames", l.frame)
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			l.log.Infow("simulation stopped", "frames", l.frame)
			return nil
		case <-ticker.C:
		}
	}
}
