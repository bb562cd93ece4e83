package observe

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-drift/driftkit/pkg/state"
)

// Orientation describes the aspect of the host window.
type Orientation int

const (
	// OrientationPortrait means height is greater than or equal to width.
	OrientationPortrait Orientation = iota
	// OrientationLandscape means width is greater than height.
	OrientationLandscape
)

// String returns a human-readable representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case OrientationPortrait:
		return "portrait"
	case OrientationLandscape:
		return "landscape"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// WindowMetrics is a snapshot of the host window geometry, in logical pixels.
type WindowMetrics struct {
	Width            float64
	Height           float64
	DevicePixelRatio float64
}

// Orientation derives the window orientation from the metrics.
func (m WindowMetrics) Orientation() Orientation {
	if m.Width > m.Height {
		return OrientationLandscape
	}
	return OrientationPortrait
}

// Breakpoint names a minimum window width. Matching is mobile-first: a
// breakpoint matches whenever the window is at least MinWidth wide.
type Breakpoint struct {
	Name     string
	MinWidth float64
}

// DefaultBreakpoints is the standard six-step responsive scale.
var DefaultBreakpoints = []Breakpoint{
	{Name: "xs", MinWidth: 0},
	{Name: "sm", MinWidth: 576},
	{Name: "md", MinWidth: 768},
	{Name: "lg", MinWidth: 992},
	{Name: "xl", MinWidth: 1200},
	{Name: "xxl", MinWidth: 1600},
}

// BreakpointObserver matches window metrics against an ordered breakpoint
// scale and exposes the widest matching breakpoint reactively.
//
// The host feeds it metrics via SetMetrics whenever the window geometry
// changes; listeners are notified only when the matched breakpoint or the
// orientation actually changes, not on every resize tick.
type BreakpointObserver struct {
	mu          sync.Mutex
	breakpoints []Breakpoint
	metrics     WindowMetrics
	hasMetrics  bool

	current     *state.Observable[string]
	orientation *state.Observable[Orientation]
}

// NewBreakpointObserver creates an observer over the given scale. A nil or
// empty scale uses DefaultBreakpoints. The scale is copied and kept sorted
// by ascending MinWidth.
func NewBreakpointObserver(breakpoints []Breakpoint) *BreakpointObserver {
	if len(breakpoints) == 0 {
		breakpoints = DefaultBreakpoints
	}
	scale := make([]Breakpoint, len(breakpoints))
	copy(scale, breakpoints)
	sort.SliceStable(scale, func(i, j int) bool { return scale[i].MinWidth < scale[j].MinWidth })

	return &BreakpointObserver{
		breakpoints: scale,
		current:     state.NewObservable(""),
		orientation: state.NewObservable(OrientationPortrait),
	}
}

// SetMetrics records a new window geometry and notifies observers if the
// matched breakpoint or orientation changed.
func (o *BreakpointObserver) SetMetrics(m WindowMetrics) {
	o.mu.Lock()
	o.metrics = m
	o.hasMetrics = true
	name := o.matchLocked(m.Width)
	o.mu.Unlock()

	if o.current.Value() != name {
		o.current.Set(name)
	}
	if orient := m.Orientation(); o.orientation.Value() != orient {
		o.orientation.Set(orient)
	}
}

// Current returns the name of the widest matching breakpoint, or "" before
// the first SetMetrics.
func (o *BreakpointObserver) Current() string {
	return o.current.Value()
}

// Changes returns an observable of the current breakpoint name.
func (o *BreakpointObserver) Changes() *state.Observable[string] {
	return o.current
}

// Orientation returns the orientation of the last reported metrics.
func (o *BreakpointObserver) Orientation() Orientation {
	return o.orientation.Value()
}

// OrientationChanges returns an observable of the window orientation.
func (o *BreakpointObserver) OrientationChanges() *state.Observable[Orientation] {
	return o.orientation
}

// Matches reports whether the window is at least as wide as the named
// breakpoint. Unknown names and missing metrics never match.
func (o *BreakpointObserver) Matches(name string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.hasMetrics {
		return false
	}
	for _, bp := range o.breakpoints {
		if bp.Name == name {
			return o.metrics.Width >= bp.MinWidth
		}
	}
	return false
}

// Metrics returns the last reported window metrics.
func (o *BreakpointObserver) Metrics() WindowMetrics {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.metrics
}

// matchLocked returns the widest breakpoint whose MinWidth fits width.
func (o *BreakpointObserver) matchLocked(width float64) string {
	name := ""
	for _, bp := range o.breakpoints {
		if width >= bp.MinWidth {
			name = bp.Name
		}
	}
	return name
}
