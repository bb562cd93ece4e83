// Package chart provides a lifecycle wrapper around an external charting
// engine: option management, debounced resizing, theming, and a reactive
// loading flag.
//
// The package draws nothing itself. A host embeds a concrete [Engine]
// (a canvas renderer, a JavaScript chart bridge, a test fake) and drives it
// through a [ChartController], which survives the engine attaching late,
// queues options until it arrives, and routes engine failures through the
// errors package.
package chart

// Options is a chart configuration tree, shaped like the nested option
// objects charting engines consume. Values are scalars, []any, or nested
// Options/map[string]any.
type Options map[string]any

// Merge deep-merges patch into a copy of o and returns the copy. Nested
// maps merge key by key; any other value in patch replaces the original.
func (o Options) Merge(patch Options) Options {
	merged := make(Options, len(o)+len(patch))
	for k, v := range o {
		merged[k] = v
	}
	for k, v := range patch {
		existing, haveExisting := merged[k]
		patchMap, patchIsMap := toOptions(v)
		existingMap, existingIsMap := toOptions(existing)
		if haveExisting && patchIsMap && existingIsMap {
			merged[k] = existingMap.Merge(patchMap)
			continue
		}
		merged[k] = v
	}
	return merged
}

func toOptions(v any) (Options, bool) {
	switch m := v.(type) {
	case Options:
		return m, true
	case map[string]any:
		return Options(m), true
	default:
		return nil, false
	}
}

// Engine is the surface a concrete charting implementation exposes to the
// controller. All methods are called from the controller's goroutine.
type Engine interface {
	// Init prepares the engine with the initial option tree.
	Init(opts Options) error
	// ApplyOptions applies an option patch to a prepared engine.
	ApplyOptions(opts Options) error
	// Resize adjusts the drawing surface, in logical pixels.
	Resize(width, height float64) error
	// SetLoading toggles the engine's built-in loading indicator.
	SetLoading(loading bool)
	// Version returns the engine's semantic version, used for theme
	// compatibility gating.
	Version() string
	// Dispose releases the engine's resources.
	Dispose()
}
