package render

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// FrameFunc draws one frame onto the canvas. It must return quickly.
type FrameFunc func(c *Canvas)

// Ticker delivers one tick per display refresh.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

// NewTicker returns a wall-clock Ticker firing fps times per second.
func NewTicker(fps int) Ticker {
	if fps <= 0 {
		fps = 60
	}
	return timeTicker{t: time.NewTicker(time.Second / time.Duration(fps))}
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// Loop drives a FrameFunc once per refresh until stopped.
//
// Frames and queued tasks always run on the goroutine that calls Tick (or
// Run), one after another. Input handlers running elsewhere hand their
// mutations to Do so renderer state has a single writer.
type Loop struct {
	canvas *Canvas
	log    *zap.Logger

	mu      sync.Mutex
	onFrame FrameFunc
	running bool
	done    chan struct{}
	queue   []func()

	// Counters are written by the ticking goroutine and read by Stop and
	// Frames from any goroutine.
	frames  atomic.Uint64
	skipped atomic.Uint64
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log *zap.Logger) LoopOption {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoop creates a stopped loop drawing onto canvas.
func NewLoop(canvas *Canvas, opts ...LoopOption) *Loop {
	l := &Loop{canvas: canvas, log: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Canvas returns the surface the loop draws on.
func (l *Loop) Canvas() *Canvas {
	return l.canvas
}

// Start begins invoking onFrame on every tick. It is a no-op when the
// surface is not attached or the loop is already running, and reports
// whether the loop was started.
func (l *Loop) Start(onFrame FrameFunc) bool {
	if onFrame == nil || l.canvas == nil || !l.canvas.Attached() {
		l.log.Debug("render loop not started: surface unavailable")
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return false
	}
	l.onFrame = onFrame
	l.running = true
	l.done = make(chan struct{})
	l.log.Debug("render loop started")
	return true
}

// Stop cancels all future frames. A frame already in progress completes.
// Stop is idempotent and safe on a loop that never started.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	close(l.done)
	l.log.Debug("render loop stopped", zap.Uint64("frames", l.frames.Load()), zap.Uint64("skipped", l.skipped.Load()))
}

// Running reports whether the loop has been started and not stopped.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Do queues fn to run on the loop goroutine before the next frame.
func (l *Loop) Do(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
}

// Resize queues a surface resize. It is applied between frames so the frame
// being drawn keeps the dimensions it started with.
func (l *Loop) Resize(width, height float64) {
	l.Do(func() {
		l.canvas.Resize(width, height)
		w, h := l.canvas.pixelSize()
		l.log.Debug("surface resized",
			zap.Float64("width", width),
			zap.Float64("height", height),
			zap.Int("pixel_width", w),
			zap.Int("pixel_height", h),
		)
	})
}

// Frames returns the number of frames drawn so far.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// Tick runs queued tasks and then, if the loop is running and the surface is
// attached, one frame. It reports whether a frame was drawn.
func (l *Loop) Tick() bool {
	l.mu.Lock()
	tasks := l.queue
	l.queue = nil
	l.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}

	l.mu.Lock()
	running, onFrame := l.running, l.onFrame
	l.mu.Unlock()
	if !running {
		return false
	}
	if !l.canvas.Attached() {
		l.skipped.Add(1)
		return false
	}
	return l.frame(onFrame)
}

func (l *Loop) frame(onFrame FrameFunc) (drawn bool) {
	defer func() {
		if r := recover(); r != nil {
			l.skipped.Add(1)
			l.log.Error("frame panicked", zap.Error(fmt.Errorf("%v", r)))
			drawn = false
		}
	}()
	l.canvas.Clear()
	onFrame(l.canvas)
	l.frames.Add(1)
	return true
}

// Run calls Tick on every tick of t until ctx is cancelled or the loop is
// stopped. It returns nil immediately if the loop is not running.
//
// Run suits a single loop whose host has no refresh callback. Hosts that
// present several loops together call Tick from their own refresh instead.
func (l *Loop) Run(ctx context.Context, t Ticker) error {
	defer t.Stop()

	l.mu.Lock()
	running, done := l.running, l.done
	l.mu.Unlock()
	if !running {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			return nil
		case <-t.C():
			l.Tick()
		}
	}
}
