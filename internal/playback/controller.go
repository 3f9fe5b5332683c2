package playback

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexander-akhmetov/stageplay/internal/clock"
	"github.com/alexander-akhmetov/stageplay/internal/debug"
	"github.com/alexander-akhmetov/stageplay/internal/stage"
)

// DefaultInterval is the tick cadence used when none is configured.
const DefaultInterval = 2 * time.Second

// Observer receives the new current index after every tick, the terminal
// tick included. The next tick is not armed until every observer has
// returned, so a slow observer delays the run.
type Observer func(index int)

// Controller plays a stage catalog forward one stage per interval.
//
// All state transitions happen under mu, so ticks from the clock and calls
// from the caller are serialized. Observers are called outside mu, in tick
// order, and may call back into the controller, Reset included.
type Controller struct {
	catalog  *stage.Catalog
	interval time.Duration
	policy   RestartPolicy
	clock    clock.Clock

	mu        sync.Mutex
	state     State
	timer     clock.Timer
	runID     string
	startedAt time.Time
	endedAt   time.Time

	notifyMu  sync.Mutex
	obsMu     sync.Mutex
	observers map[int]Observer
	nextObsID int
}

// Option configures a Controller.
type Option func(*Controller)

// WithInterval sets the tick interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithRestartPolicy sets what Start does while a run is in progress.
func WithRestartPolicy(p RestartPolicy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) { c.clock = clk }
}

// New creates a controller in the not-started state.
func New(catalog *stage.Catalog, opts ...Option) (*Controller, error) {
	if catalog == nil || catalog.Size() == 0 {
		return nil, stage.ErrEmptyCatalog
	}
	c := &Controller{
		catalog:   catalog,
		interval:  DefaultInterval,
		policy:    RestartIgnore,
		clock:     clock.Real(),
		state:     Initial(),
		observers: make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Catalog returns the catalog being played.
func (c *Controller) Catalog() *stage.Catalog {
	return c.catalog
}

// Interval returns the tick interval.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// Start begins a run. While a run is in progress it is a no-op unless the
// controller uses RestartRestart. It reports whether a new run began.
func (c *Controller) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Running() {
		if c.policy != RestartRestart {
			debug.Logf("playback: start ignored, run %s in progress at index %d", c.runID, c.state.Index)
			return false
		}
		debug.Logf("playback: restarting run %s", c.runID)
		c.stopTimerLocked()
	}

	c.state = c.state.Begin()
	c.runID = uuid.NewString()
	c.startedAt = c.clock.Now()
	c.endedAt = time.Time{}
	c.scheduleLocked()
	debug.Logf("playback: run %s started (epoch %d, %d stages, interval %s)", c.runID, c.state.Epoch, c.catalog.Size(), c.interval)
	return true
}

// Reset cancels any pending tick and returns to the not-started state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.state = c.state.Reset()
	c.runID = ""
	c.startedAt = time.Time{}
	c.endedAt = time.Time{}
	debug.Logf("playback: reset (epoch %d)", c.state.Epoch)
}

// scheduleLocked arms the single timer for the next tick under the current epoch.
func (c *Controller) scheduleLocked() {
	c.scheduleAfterLocked(c.interval)
}

func (c *Controller) scheduleAfterLocked(d time.Duration) {
	epoch := c.state.Epoch
	c.timer = c.clock.AfterFunc(d, func() { c.onTick(epoch) })
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) onTick(epoch uint64) {
	c.mu.Lock()
	if epoch != c.state.Epoch || !c.state.Running() {
		debug.Logf("playback: stale tick discarded (tick epoch %d, current %d)", epoch, c.state.Epoch)
		c.mu.Unlock()
		return
	}

	firedAt := c.clock.Now()
	c.timer = nil
	c.state = c.state.Advance(c.catalog.Size())
	index := c.state.Index
	if !c.state.Running() {
		c.endedAt = firedAt
		debug.Logf("playback: run %s completed at index %d", c.runID, index)
	}
	c.mu.Unlock()

	c.notify(index)

	// The next tick is armed only once observers have returned, so ticks of
	// one run never overlap their callbacks.
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.state.Epoch || !c.state.Running() || c.timer != nil {
		return
	}
	c.scheduleAfterLocked(max(0, c.interval-c.clock.Now().Sub(firedAt)))
}

// notify calls observers in registration order. notifyMu keeps notifications
// from a restarted run from interleaving with the previous run's; it is
// never held together with mu.
func (c *Controller) notify(index int) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	for _, obs := range c.snapshotObservers() {
		obs(index)
	}
}

// Subscribe registers an observer and returns a function that removes it.
func (c *Controller) Subscribe(obs Observer) (unsubscribe func()) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()

	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = obs

	var once sync.Once
	return func() {
		once.Do(func() {
			c.obsMu.Lock()
			delete(c.observers, id)
			c.obsMu.Unlock()
		})
	}
}

func (c *Controller) snapshotObservers() []Observer {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()

	ids := make([]int, 0, len(c.observers))
	for id := range c.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Observer, len(ids))
	for i, id := range ids {
		out[i] = c.observers[id]
	}
	return out
}

// State returns a snapshot of the run state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentIndex returns the current stage index, -1 when nothing is current.
func (c *Controller) CurrentIndex() int {
	return c.State().Index
}

// IsRunning reports whether a run is in progress.
func (c *Controller) IsRunning() bool {
	return c.State().Running()
}

// CurrentStage returns the stage at the current index, if any.
func (c *Controller) CurrentStage() (stage.Stage, bool) {
	idx := c.CurrentIndex()
	if idx < 0 {
		return stage.Stage{}, false
	}
	s, err := c.catalog.Get(idx)
	if err != nil {
		return stage.Stage{}, false
	}
	return s, true
}

// StatusOf returns the derived status of stage i.
func (c *Controller) StatusOf(i int) (Status, error) {
	if i < 0 || i >= c.catalog.Size() {
		return StatusIdle, fmt.Errorf("status of stage: %w: %d not in [0, %d]", stage.ErrOutOfRange, i, c.catalog.Size()-1)
	}
	return c.State().StatusOf(i), nil
}
