package observe

import "testing"

func TestBreakpointObserver_MatchesWidestBreakpoint(t *testing.T) {
	tests := []struct {
		width float64
		want  string
	}{
		{320, "xs"},
		{575, "xs"},
		{576, "sm"},
		{767, "sm"},
		{768, "md"},
		{991, "md"},
		{992, "lg"},
		{1199, "lg"},
		{1200, "xl"},
		{1599, "xl"},
		{1600, "xxl"},
		{2560, "xxl"},
	}
	for _, tt := range tests {
		o := NewBreakpointObserver(nil)
		o.SetMetrics(WindowMetrics{Width: tt.width, Height: 800})
		if got := o.Current(); got != tt.want {
			t.Errorf("width %.0f matched %q, want %q", tt.width, got, tt.want)
		}
	}
}

func TestBreakpointObserver_CurrentEmptyBeforeMetrics(t *testing.T) {
	o := NewBreakpointObserver(nil)
	if o.Current() != "" {
		t.Errorf("Current() = %q before metrics, want empty", o.Current())
	}
	if o.Matches("xs") {
		t.Error("Matches should be false before any metrics arrive")
	}
}

func TestBreakpointObserver_MobileFirstMatching(t *testing.T) {
	o := NewBreakpointObserver(nil)
	o.SetMetrics(WindowMetrics{Width: 1000, Height: 800})

	// 1000px is lg; everything at or below lg matches, xl and above do not.
	for _, name := range []string{"xs", "sm", "md", "lg"} {
		if !o.Matches(name) {
			t.Errorf("Matches(%q) = false at 1000px, want true", name)
		}
	}
	for _, name := range []string{"xl", "xxl"} {
		if o.Matches(name) {
			t.Errorf("Matches(%q) = true at 1000px, want false", name)
		}
	}
	if o.Matches("nonexistent") {
		t.Error("unknown breakpoint name must not match")
	}
}

func TestBreakpointObserver_NotifiesOnlyOnChange(t *testing.T) {
	o := NewBreakpointObserver(nil)

	changes := 0
	o.Changes().AddListener(func(string) { changes++ })

	o.SetMetrics(WindowMetrics{Width: 800, Height: 600}) // md
	o.SetMetrics(WindowMetrics{Width: 820, Height: 600}) // still md
	o.SetMetrics(WindowMetrics{Width: 840, Height: 600}) // still md
	o.SetMetrics(WindowMetrics{Width: 1000, Height: 600}) // lg

	if changes != 2 {
		t.Errorf("listener fired %d times, want 2 (md, lg)", changes)
	}
}

func TestBreakpointObserver_CustomScaleSorted(t *testing.T) {
	o := NewBreakpointObserver([]Breakpoint{
		{Name: "wide", MinWidth: 1000},
		{Name: "narrow", MinWidth: 0},
	})

	o.SetMetrics(WindowMetrics{Width: 500, Height: 900})
	if o.Current() != "narrow" {
		t.Errorf("Current() = %q, want narrow", o.Current())
	}

	o.SetMetrics(WindowMetrics{Width: 1400, Height: 900})
	if o.Current() != "wide" {
		t.Errorf("Current() = %q, want wide", o.Current())
	}
}

func TestBreakpointObserver_Orientation(t *testing.T) {
	o := NewBreakpointObserver(nil)

	flips := 0
	o.OrientationChanges().AddListener(func(Orientation) { flips++ })

	o.SetMetrics(WindowMetrics{Width: 400, Height: 800})
	if o.Orientation() != OrientationPortrait {
		t.Errorf("Orientation() = %v, want portrait", o.Orientation())
	}

	o.SetMetrics(WindowMetrics{Width: 800, Height: 400})
	if o.Orientation() != OrientationLandscape {
		t.Errorf("Orientation() = %v, want landscape", o.Orientation())
	}

	o.SetMetrics(WindowMetrics{Width: 900, Height: 400})
	if flips != 1 {
		t.Errorf("orientation listener fired %d times, want 1", flips)
	}
}

func TestWindowMetrics_SquareIsPortrait(t *testing.T) {
	m := WindowMetrics{Width: 500, Height: 500}
	if m.Orientation() != OrientationPortrait {
		t.Error("square window should report portrait")
	}
}
