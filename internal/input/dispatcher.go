package input

import (
	"io"
	"log/slog"
	"time"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

// Result describes how a sequence was resolved.
type Result struct {
	// Sequence is the sequence that was matched, or the full sequence
	// when nothing matched.
	Sequence string

	// Handled is true when a handler claimed the sequence.
	Handled bool

	// Scoped is true when the focused context's keymap claimed it.
	Scoped bool

	// State is the global state consulted.
	State string

	// Dropped is the number of leading tokens removed before a match.
	Dropped int
}

// Observer is notified of every dispatch.
type Observer func(Result)

// Dispatcher turns raw key events into handler calls. It normalizes each
// event, accumulates chords, and resolves the sequence against the focused
// context first and the global keymap second. When neither handles the
// sequence the oldest token is dropped and resolution is retried.
//
// A Dispatcher is not safe for concurrent use; feed it from the input loop.
type Dispatcher struct {
	normalizer  *key.Normalizer
	accumulator *key.Accumulator
	keymap      *keymap.Keymap
	focus       FocusProvider
	metrics     *Metrics
	observers   []Observer
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock sets the time source used for events without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithFocus sets the active editing context accessor.
func WithFocus(focus FocusProvider) Option {
	return func(d *Dispatcher) {
		d.focus = focus
	}
}

// NewDispatcher creates a dispatcher over the global keymap. The keymap's
// active state is set from config.
func NewDispatcher(km *keymap.Keymap, config Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		normalizer:  key.NewNormalizer(),
		accumulator: key.NewAccumulator(config.Delay),
		keymap:      km,
		metrics:     NewMetrics(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.State != "" {
		km.SetState(config.State)
	}
	return d
}

// Keymap returns the global keymap.
func (d *Dispatcher) Keymap() *keymap.Keymap {
	return d.keymap
}

// Metrics returns the dispatcher's counters.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Pending returns the sequence accumulated so far.
func (d *Dispatcher) Pending() key.Sequence {
	return d.accumulator.Pending()
}

// Observe adds an observer called after every dispatch.
func (d *Dispatcher) Observe(fn Observer) {
	d.observers = append(d.observers, fn)
}

// HandleKeyEvent processes one key event. It returns true when a handler
// claimed the accumulated sequence; the event's default action and
// propagation are then suppressed and the chord starts over.
// Modifier-only and unrecognized keys change nothing and return false.
func (d *Dispatcher) HandleKeyEvent(ev *key.Event) bool {
	start := time.Now()
	defer func() {
		d.metrics.recordKeyEvent(time.Since(start))
	}()

	tok, ok := d.normalizer.Normalize(ev)
	if !ok {
		d.metrics.recordIgnored()
		return false
	}

	at := ev.Timestamp
	if at.IsZero() {
		at = d.now()
	}
	seq := d.accumulator.Accept(tok, at)

	if !d.Dispatch(seq) {
		return false
	}

	ev.PreventDefault()
	ev.StopPropagation()
	d.accumulator.Reset()
	return true
}

// Dispatch resolves a sequence, dropping leading tokens until a handler
// claims it or nothing is left.
func (d *Dispatcher) Dispatch(seq key.Sequence) bool {
	r := d.resolve(seq)
	d.metrics.recordResult(r)
	for _, obs := range d.observers {
		obs(r)
	}

	if r.Handled {
		d.logger.Debug("key sequence handled", "sequence", r.Sequence, "state", r.State, "scoped", r.Scoped, "dropped", r.Dropped)
	} else if r.Sequence != "" {
		d.logger.Debug("key sequence unhandled", "sequence", r.Sequence, "state", r.State)
	}
	return r.Handled
}

func (d *Dispatcher) resolve(seq key.Sequence) Result {
	scope := d.currentScope()
	state := d.globalState(scope)
	r := Result{Sequence: seq.String(), State: state}

	for candidate, dropped := seq, 0; !candidate.IsEmpty(); candidate, dropped = candidate.Tail(1), dropped+1 {
		s := candidate.String()

		if scope != nil && scope.Handle(s, "") {
			return Result{Sequence: s, Handled: true, Scoped: true, State: state, Dropped: dropped}
		}
		if d.keymap.Handle(s, state) {
			return Result{Sequence: s, Handled: true, State: state, Dropped: dropped}
		}
	}
	return r
}

func (d *Dispatcher) currentScope() keymap.Scope {
	if d.focus == nil {
		return nil
	}
	return d.focus.Current()
}

// globalState picks the global keymap state: the focused context's state
// when the global keymap knows it, the global active state otherwise.
func (d *Dispatcher) globalState(scope keymap.Scope) string {
	if scope != nil {
		if name := scope.State(); name != "" && d.keymap.HasState(name) {
			return name
		}
	}
	return d.keymap.State()
}
