package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/denwilliams/go-wakeuplight/internal/effect"
	"github.com/denwilliams/go-wakeuplight/internal/light"
	"github.com/denwilliams/go-wakeuplight/internal/logging"
)

var (
	ErrStopped   = errors.New("runner stopped")
	ErrQueueFull = errors.New("command queue full")
)

const commandQueueSize = 16

// Renderer pushes a frame to an output. Render is called from the control
// loop and must not block.
type Renderer interface {
	Render(f *effect.Frame) error
}

type StateEmitter interface {
	EmitState(ctx context.Context, state light.State) error
}

type Options struct {
	NumLEDs           int
	TickInterval      time.Duration
	References        light.References
	StartupEffect     string
	StartupBrightness uint8
	Renderers         []Renderer
	Emitter           StateEmitter

	// Now defaults to time.Now.
	Now func() time.Time
}

// Runner owns the active effect and the frame. Both are only touched from
// the goroutine running Run; commands from other goroutines are queued.
type Runner struct {
	opts Options

	active *effect.Effect
	frame  *effect.Frame

	commands chan *light.Command
	done     chan struct{}
	stopOnce sync.Once

	mu    sync.RWMutex
	state light.State
}

func New(opts Options) *Runner {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = 20 * time.Millisecond
	}

	r := &Runner{
		opts:     opts,
		frame:    effect.NewFrame(opts.NumLEDs),
		commands: make(chan *light.Command, commandQueueSize),
		done:     make(chan struct{}),
	}

	begin := effect.Level{Color: effect.Black, Brightness: opts.StartupBrightness}
	if opts.StartupEffect == light.EffectWarmwhite {
		r.active = effect.NewWarmwhite(begin, opts.Now())
	} else {
		r.active = effect.NewRainbow(begin, opts.Now())
	}
	r.setState(light.Report(r.active))

	return r
}

// Run drives the control loop until ctx is cancelled. The startup state is
// published first.
func (r *Runner) Run(ctx context.Context) error {
	defer r.stopOnce.Do(func() { close(r.done) })

	logging.Info("Starting effect loop with %s, ticking every %s", r.active, r.opts.TickInterval)
	r.emit(ctx, r.State())

	ticker := time.NewTicker(r.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("Effect loop stopped")
			return nil
		case cmd := <-r.commands:
			r.Apply(ctx, cmd)
		case <-ticker.C:
			r.Tick()
		}
	}
}

// HandleCommand queues cmd for the control loop without blocking. A command
// arriving while the queue is full is rejected with ErrQueueFull.
func (r *Runner) HandleCommand(cmd *light.Command) error {
	if cmd == nil {
		return nil
	}
	select {
	case <-r.done:
		return ErrStopped
	default:
	}
	select {
	case r.commands <- cmd:
		return nil
	default:
		commandsDropped.Inc()
		return ErrQueueFull
	}
}

// Tick advances the active effect once and renders the frame if it changed.
// Only call it from the loop goroutine.
func (r *Runner) Tick() {
	elapsed := r.opts.Now().Sub(r.active.Started())
	if !r.active.Advance(elapsed, r.frame) {
		return
	}

	ticksAdvanced.WithLabelValues(r.active.Kind().String()).Inc()
	brightness.Set(float64(r.active.Current().Brightness))

	for _, out := range r.opts.Renderers {
		if err := out.Render(r.frame); err != nil {
			renderErrors.Inc()
			logging.Warn("Render failed: %s", err)
		}
	}
}

// Apply replaces the active effect with the one cmd resolves to and
// publishes the new target state. Only call it from the loop goroutine.
func (r *Runner) Apply(ctx context.Context, cmd *light.Command) {
	next := light.Interpret(cmd, r.active, r.opts.Now(), r.opts.References)
	r.active = next

	commandsApplied.WithLabelValues(next.Kind().String()).Inc()
	logging.Info("Applied command %s: %s", cmd, next)

	state := light.Report(next)
	r.setState(state)
	r.emit(ctx, state)
}

// State returns the last reported state. Safe for concurrent use.
func (r *Runner) State() light.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *Runner) setState(s light.State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

func (r *Runner) emit(ctx context.Context, s light.State) {
	if r.opts.Emitter == nil {
		return
	}
	if err := r.opts.Emitter.EmitState(ctx, s); err != nil {
		logging.Warn("Failed to publish state: %s", err)
	}
}
