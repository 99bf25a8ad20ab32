// Package runner advances a simulation on its own goroutine for drivers
// that do not have a frame loop of their own.
package runner

import (
	"sync"
	"time"
)

// Target is what the runner advances.
type Target interface {
	Step()
	Generation() int
	Population() int
}

// RunningState is the runner mode reported in a Status.
type RunningState int

const (
	StateManual RunningState = iota
	StateRun
	StateFinished
)

func (s RunningState) String() string {
	switch s {
	case StateManual:
		return "waiting"
	case StateRun:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Options configure the run loop.
type Options struct {
	// Interval is the pause between generations while running.
	Interval time.Duration
	// MaxSteps finishes the run once the generation count reaches it.
	// Zero runs until stopped.
	MaxSteps int
}

// Default option values.
const (
	DefInterval = 100 * time.Millisecond
	DefMaxSteps = 0
)

// DefaultOptions is used when New is given nil options.
var DefaultOptions = Options{Interval: DefInterval, MaxSteps: DefMaxSteps}

// Status describes the runner at one moment.
type Status struct {
	Generation int
	Population int
	Mode       RunningState
	StepTime   time.Duration
}

// Viewer is notified after every command the runner executes.
type Viewer interface {
	Register(r *Runner)
	Refresh()
}

// Runner serialises every access to its target on a single goroutine.
// Commands return immediately; status changes are written to the state
// channel when one was supplied, and the caller must keep draining it.
type Runner struct {
	target  Target
	stateCh chan Status

	mu       sync.Mutex
	options  Options
	status   Status
	views    []Viewer
	stopRun  chan struct{}
	closeOne sync.Once

	controlCh chan func()
	closeCh   chan struct{}
	done      chan struct{}
}

// New starts a runner for t.
func New(t Target, o *Options, stateCh chan Status) *Runner {
	if o == nil {
		o = &DefaultOptions
	}
	r := &Runner{
		target:    t,
		stateCh:   stateCh,
		options:   *o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		done:      make(chan struct{}),
	}
	r.sample()
	go r.mainLoop()
	return r
}

// RegisterViewer adds v to the viewers refreshed after each command.
func (r *Runner) RegisterViewer(v Viewer) {
	r.mu.Lock()
	r.views = append(r.views, v)
	r.mu.Unlock()
	v.Register(r)
}

// Status returns the latest status.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Options returns the current options.
func (r *Runner) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.options
}

// SetInterval changes the pause between generations. A running loop picks
// it up on its next generation.
func (r *Runner) SetInterval(d time.Duration) {
	r.mu.Lock()
	r.options.Interval = d
	r.mu.Unlock()
}

// Run starts advancing the target every interval.
func (r *Runner) Run() { r.send(r.run) }

// Stop halts a run.
func (r *Runner) Stop() { r.send(r.stop) }

// Step advances one generation when not running.
func (r *Runner) Step() {
	r.send(func() {
		if r.stopRun == nil {
			r.step()
		}
	})
}

// Do runs fn on the runner goroutine and refreshes the viewers afterwards.
func (r *Runner) Do(fn func()) {
	r.send(func() {
		fn()
		r.sample()
		r.refreshViews()
	})
}

// Sync is Do, but waits for fn to finish. It returns false when the
// runner closed before fn could run.
func (r *Runner) Sync(fn func()) bool {
	finished := make(chan struct{})
	if !r.send(func() {
		defer close(finished)
		fn()
		r.sample()
		r.refreshViews()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-r.done:
		return false
	}
}

// Close stops the run loop and the main goroutine. It is safe to call more
// than once.
func (r *Runner) Close() {
	r.closeOne.Do(func() { close(r.closeCh) })
	<-r.done
}

func (r *Runner) send(fn func()) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.controlCh <- fn:
		return true
	case <-r.done:
		return false
	}
}

func (r *Runner) mainLoop() {
	defer close(r.done)
	for {
		select {
		case cmd := <-r.controlCh:
			cmd()
		case <-r.closeCh:
			if r.stopRun != nil {
				close(r.stopRun)
				r.stopRun = nil
			}
			return
		}
	}
}

func (r *Runner) run() {
	if r.stopRun != nil {
		return
	}
	if r.finished() {
		r.switchState(StateFinished)
		return
	}
	stop := make(chan struct{})
	r.stopRun = stop
	r.switchState(StateRun)
	r.refreshViews()
	go r.loop(stop)
}

func (r *Runner) loop(stop chan struct{}) {
	for {
		stepped := make(chan struct{})
		if !r.send(func() {
			defer close(stepped)
			select {
			case <-stop:
				return
			default:
			}
			r.step()
		}) {
			return
		}
		select {
		case <-stepped:
		case <-r.done:
			return
		}

		interval := r.Options().Interval
		if interval <= 0 {
			select {
			case <-stop:
				return
			case <-r.done:
				return
			default:
			}
			continue
		}
		timer := time.NewTimer(interval)
		select {
		case <-stop:
			timer.Stop()
			return
		case <-r.done:
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (r *Runner) stop() {
	if r.stopRun == nil {
		return
	}
	close(r.stopRun)
	r.stopRun = nil
	r.switchState(StateManual)
	r.refreshViews()
}

func (r *Runner) step() {
	start := time.Now()
	r.target.Step()
	elapsed := time.Since(start)

	r.sample()
	r.mu.Lock()
	r.status.StepTime = elapsed
	r.mu.Unlock()

	switch {
	case r.finished():
		if r.stopRun != nil {
			close(r.stopRun)
			r.stopRun = nil
		}
		r.switchState(StateFinished)
	case r.stopRun != nil:
		r.switchState(StateRun)
	default:
		r.switchState(StateManual)
	}
	r.refreshViews()
}

// sample copies the target counters into the status.
func (r *Runner) sample() {
	gen, pop := r.target.Generation(), r.target.Population()
	r.mu.Lock()
	r.status.Generation = gen
	r.status.Population = pop
	r.mu.Unlock()
}

func (r *Runner) finished() bool {
	limit := r.Options().MaxSteps
	return limit > 0 && r.target.Generation() >= limit
}

// switchState records the mode and publishes the status.
func (r *Runner) switchState(to RunningState) {
	r.mu.Lock()
	r.status.Mode = to
	st := r.status
	r.mu.Unlock()
	if r.stateCh != nil {
		select {
		case r.stateCh <- st:
		case <-r.closeCh:
		}
	}
}

func (r *Runner) refreshViews() {
	r.mu.Lock()
	views := append([]Viewer(nil), r.views...)
	r.mu.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}
