package chart

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/driftkit/pkg/errors"
)

// Theme is a declarative chart styling document, typically loaded from a
// YAML file shipped with the host application:
//
//	name: midnight
//	minEngineVersion: 5.4.0
//	background: "#101418"
//	textColor: "#e8e8e8"
//	axisColor: "#3a3f44"
//	palette:
//	  - "#4e79a7"
//	  - "#f28e2b"
//	  - "#e15759"
type Theme struct {
	// Name identifies the theme in a Registry.
	Name string `yaml:"name"`
	// MinEngineVersion is the lowest engine version the theme renders
	// correctly on, in semver form with or without a leading "v". Empty
	// means no requirement.
	MinEngineVersion string `yaml:"minEngineVersion"`
	// Palette lists series colors in assignment order.
	Palette []string `yaml:"palette"`
	// Background is the chart background color.
	Background string `yaml:"background"`
	// TextColor is the default label color.
	TextColor string `yaml:"textColor"`
	// AxisColor is the axis line and tick color.
	AxisColor string `yaml:"axisColor"`
}

// ParseTheme decodes a YAML theme document. A theme without a name is
// rejected.
func ParseTheme(data []byte) (*Theme, error) {
	var theme Theme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, &errors.KitError{
			Op:   "chart.ParseTheme",
			Kind: errors.KindTheme,
			Err:  err,
		}
	}
	if theme.Name == "" {
		return nil, &errors.KitError{
			Op:   "chart.ParseTheme",
			Kind: errors.KindTheme,
			Err:  fmt.Errorf("theme has no name"),
		}
	}
	if theme.MinEngineVersion != "" && !semver.IsValid(canonicalVersion(theme.MinEngineVersion)) {
		return nil, &errors.KitError{
			Op:   "chart.ParseTheme",
			Kind: errors.KindTheme,
			Err:  fmt.Errorf("theme %q: invalid minEngineVersion %q", theme.Name, theme.MinEngineVersion),
		}
	}
	return &theme, nil
}

// LoadThemeFile reads and parses a YAML theme file.
func LoadThemeFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.KitError{
			Op:   "chart.LoadThemeFile",
			Kind: errors.KindTheme,
			Err:  err,
		}
	}
	return ParseTheme(data)
}

// CompatibleWith reports whether the theme may be applied to an engine of
// the given version. Unparseable engine versions are treated as too old
// whenever the theme states a requirement.
func (t *Theme) CompatibleWith(engineVersion string) bool {
	if t.MinEngineVersion == "" {
		return true
	}
	min := canonicalVersion(t.MinEngineVersion)
	have := canonicalVersion(engineVersion)
	if !semver.IsValid(min) {
		return true
	}
	if !semver.IsValid(have) {
		return false
	}
	return semver.Compare(have, min) >= 0
}

// Options folds the theme into an engine option tree.
func (t *Theme) Options() Options {
	opts := Options{}
	if t.Background != "" {
		opts["backgroundColor"] = t.Background
	}
	if len(t.Palette) > 0 {
		colors := make([]any, len(t.Palette))
		for i, c := range t.Palette {
			colors[i] = c
		}
		opts["color"] = colors
	}
	text := Options{}
	if t.TextColor != "" {
		text["color"] = t.TextColor
	}
	if len(text) > 0 {
		opts["textStyle"] = text
	}
	if t.AxisColor != "" {
		axis := Options{"lineStyle": Options{"color": t.AxisColor}}
		opts["axisLine"] = axis
	}
	return opts
}

// canonicalVersion normalizes a version string to semver's "v"-prefixed
// form.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// Registry is a concurrency-safe, name-keyed theme collection.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]*Theme
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{themes: make(map[string]*Theme)}
}

// Register adds or replaces a theme under its name. Nil and nameless
// themes are rejected.
func (r *Registry) Register(theme *Theme) error {
	if theme == nil || theme.Name == "" {
		return &errors.KitError{
			Op:   "chart.Registry.Register",
			Kind: errors.KindTheme,
			Err:  fmt.Errorf("theme must have a name"),
		}
	}
	r.mu.Lock()
	r.themes[theme.Name] = theme
	r.mu.Unlock()
	return nil
}

// Lookup returns the theme registered under name, if any.
func (r *Registry) Lookup(name string) (*Theme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	theme, ok := r.themes[name]
	return theme, ok
}

// Names returns the registered theme names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
