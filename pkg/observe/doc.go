// Package observe provides host-environment observation utilities:
// breakpoint (media-query style) matching over window metrics, and scroll
// position tracking.
//
// The package owns no event source. The host pushes measurements in —
// window metrics on resize, scroll offsets on scroll — and the observers
// turn them into stable reactive values that only notify on real changes.
//
//	bp := observe.NewBreakpointObserver(nil) // default breakpoints
//	bp.Changes().AddListener(func(name string) { relayout(name) })
//	bp.SetMetrics(observe.WindowMetrics{Width: 1024, Height: 768})
//
//	scroll := observe.NewScrollTracker()
//	scroll.Scrolling().AddListener(func(active bool) { toolbar.SetCompact(active) })
//	scroll.Report(offset, 0, contentHeight-viewportHeight)
package observe
