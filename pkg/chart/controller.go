package chart

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-drift/driftkit/pkg/errors"
	"github.com/go-drift/driftkit/pkg/state"
	"github.com/go-drift/driftkit/pkg/timing"
)

// DefaultResizeDelay is how long resize reports are debounced before they
// reach the engine. Container resizes arrive in bursts; one engine resize
// per burst is enough.
const DefaultResizeDelay = 80 * time.Millisecond

// ChartController manages a chart engine's lifecycle on behalf of a host
// component: it queues options until the engine attaches, merges updates,
// debounces resizes, applies themes with version gating, and exposes the
// loading state reactively.
//
// Create with [NewChartController] and manage lifecycle with the host's
// controller-disposal convention:
//
//	s.chart = chart.NewChartController()
//	s.chart.OnError = func(err error) { s.showToast(err) }
//	s.chart.SetOptions(chart.Options{"series": series})
//	s.chart.Attach(engine) // whenever the surface is ready
//
// Engine failures are reported through the errors package and, when set,
// the OnError callback. Set callback fields before Attach.
type ChartController struct {
	// OnReady is called once the engine has attached and initialized.
	OnReady func()

	// OnError is called when the engine rejects an operation.
	OnError func(err error)

	mu       sync.Mutex
	engine   Engine
	attached bool
	options  Options
	theme    *Theme
	width    float64
	height   float64
	sized    bool

	loading *state.Observable[bool]
	resize  *timing.Debouncer
}

// NewChartController creates a detached controller. Options and theme set
// before Attach are queued and applied during engine initialization.
func NewChartController() *ChartController {
	return &ChartController{
		options: Options{},
		loading: state.NewObservable(false),
		resize:  timing.NewDebouncer(DefaultResizeDelay),
	}
}

// SetScheduler replaces the deferred-continuation source for the resize
// debouncer. A nil scheduler restores the default timer-based one.
func (c *ChartController) SetScheduler(scheduler timing.Scheduler) {
	c.resize.SetScheduler(scheduler)
}

// Attach binds the engine and initializes it with the queued options and
// theme. Attaching twice, or attaching a nil engine, is an error.
func (c *ChartController) Attach(engine Engine) error {
	if engine == nil {
		return c.fail("chart.ChartController.Attach", errors.KindEngine,
			fmt.Errorf("nil engine"))
	}

	c.mu.Lock()
	if c.attached {
		c.mu.Unlock()
		return c.fail("chart.ChartController.Attach", errors.KindEngine,
			fmt.Errorf("engine already attached"))
	}
	if c.theme != nil && !c.theme.CompatibleWith(engine.Version()) {
		theme := c.theme
		c.mu.Unlock()
		return c.fail("chart.ChartController.Attach", errors.KindTheme,
			fmt.Errorf("theme %q requires engine %s, have %s",
				theme.Name, theme.MinEngineVersion, engine.Version()))
	}
	initial := c.initialOptionsLocked()
	sized := c.sized
	width, height := c.width, c.height
	c.mu.Unlock()

	if err := engine.Init(initial); err != nil {
		return c.fail("chart.ChartController.Attach", errors.KindEngine, err)
	}

	c.mu.Lock()
	c.engine = engine
	c.attached = true
	onReady := c.OnReady
	c.mu.Unlock()

	if sized {
		if err := engine.Resize(width, height); err != nil {
			c.fail("chart.ChartController.Attach", errors.KindEngine, err)
		}
	}
	if onReady != nil {
		onReady()
	}
	return nil
}

// IsAttached returns true once an engine is bound and initialized.
func (c *ChartController) IsAttached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attached
}

// SetOptions replaces the option tree. An attached engine receives the
// full tree immediately; otherwise it is queued for Attach.
func (c *ChartController) SetOptions(opts Options) error {
	if opts == nil {
		opts = Options{}
	}
	c.mu.Lock()
	c.options = opts
	engine, attached := c.engine, c.attached
	full := c.initialOptionsLocked()
	c.mu.Unlock()

	if !attached {
		return nil
	}
	if err := engine.ApplyOptions(full); err != nil {
		return c.fail("chart.ChartController.SetOptions", errors.KindEngine, err)
	}
	return nil
}

// UpdateOptions deep-merges a patch into the option tree. An attached
// engine receives just the patch; the merged tree is kept for re-attach.
func (c *ChartController) UpdateOptions(patch Options) error {
	if len(patch) == 0 {
		return nil
	}
	c.mu.Lock()
	c.options = c.options.Merge(patch)
	engine, attached := c.engine, c.attached
	c.mu.Unlock()

	if !attached {
		return nil
	}
	if err := engine.ApplyOptions(patch); err != nil {
		return c.fail("chart.ChartController.UpdateOptions", errors.KindEngine, err)
	}
	return nil
}

// Options returns a copy of the current option tree, theme folded in.
func (c *ChartController) Options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialOptionsLocked()
}

// UseTheme applies a theme. Against an attached engine the theme's minimum
// version is checked first; an incompatible theme is rejected without
// touching the engine.
func (c *ChartController) UseTheme(theme *Theme) error {
	c.mu.Lock()
	engine, attached := c.engine, c.attached
	if attached && theme != nil && !theme.CompatibleWith(engine.Version()) {
		c.mu.Unlock()
		return c.fail("chart.ChartController.UseTheme", errors.KindTheme,
			fmt.Errorf("theme %q requires engine %s, have %s",
				theme.Name, theme.MinEngineVersion, engine.Version()))
	}
	c.theme = theme
	c.mu.Unlock()

	if !attached || theme == nil {
		return nil
	}
	if err := engine.ApplyOptions(theme.Options()); err != nil {
		return c.fail("chart.ChartController.UseTheme", errors.KindEngine, err)
	}
	return nil
}

// Theme returns the active theme, or nil.
func (c *ChartController) Theme() *Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// Resize records the new surface size and forwards it to the engine after
// the debounce window. Call on every container size report; only the last
// size of a burst reaches the engine.
func (c *ChartController) Resize(width, height float64) {
	c.mu.Lock()
	c.width, c.height = width, height
	c.sized = true
	c.mu.Unlock()

	c.resize.Call(c.flushResize)
}

// FlushResize pushes a pending debounced resize to the engine immediately.
func (c *ChartController) FlushResize() {
	c.resize.Flush()
}

// SetLoading toggles the loading flag and the engine's loading indicator.
func (c *ChartController) SetLoading(loading bool) {
	c.mu.Lock()
	engine, attached := c.engine, c.attached
	c.mu.Unlock()

	if c.loading.Value() != loading {
		c.loading.Set(loading)
	}
	if attached {
		engine.SetLoading(loading)
	}
}

// Loading returns the observable loading flag.
func (c *ChartController) Loading() *state.Observable[bool] {
	return c.loading
}

// Dispose cancels pending work and disposes the engine. The controller
// cannot be reused after Dispose.
func (c *ChartController) Dispose() {
	c.resize.Dispose()

	c.mu.Lock()
	engine, attached := c.engine, c.attached
	c.engine = nil
	c.attached = false
	c.mu.Unlock()

	if attached {
		engine.Dispose()
	}
}

// flushResize delivers the most recent size to the engine.
func (c *ChartController) flushResize() {
	c.mu.Lock()
	engine, attached := c.engine, c.attached
	width, height := c.width, c.height
	c.mu.Unlock()

	if !attached {
		return
	}
	if err := engine.Resize(width, height); err != nil {
		c.fail("chart.ChartController.Resize", errors.KindEngine, err)
	}
}

// initialOptionsLocked folds the theme into the option tree.
func (c *ChartController) initialOptionsLocked() Options {
	if c.theme == nil {
		return Options{}.Merge(c.options)
	}
	return c.theme.Options().Merge(c.options)
}

// fail reports an error and forwards it to OnError.
func (c *ChartController) fail(op string, kind errors.ErrorKind, err error) error {
	kitErr := &errors.KitError{Op: op, Kind: kind, Err: err}
	errors.Report(kitErr)

	c.mu.Lock()
	onError := c.OnError
	c.mu.Unlock()
	if onError != nil {
		onError(kitErr)
	}
	return kitErr
}
