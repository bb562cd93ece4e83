// Package input provides input-masking formatters for numeric text fields.
//
// A Formatter rewrites a proposed edit before it reaches the field, the way
// a keystroke filter does in a host UI framework. Formatters are pure: they
// receive the previous and proposed editing values and return the value the
// field should actually take, with the caret re-anchored across any
// characters the mask removed.
//
//	mask := input.Chain(
//	    input.Decimal(input.DecimalOptions{Precision: 2}),
//	    input.Clamp(0, 9999),
//	)
//	next := mask.Format(oldValue, proposedValue)
package input

// EditingValue is a text-field snapshot: the content plus the selection,
// expressed as byte offsets into Text. A collapsed selection (Base ==
// Extent) is a plain caret.
type EditingValue struct {
	Text   string
	Base   int
	Extent int
}

// Collapsed creates an editing value with the caret at offset.
func Collapsed(text string, offset int) EditingValue {
	return EditingValue{Text: text, Base: offset, Extent: offset}
}

// IsCollapsed returns true if the selection has no length.
func (v EditingValue) IsCollapsed() bool {
	return v.Base == v.Extent
}

// Formatter rewrites a proposed edit.
//
// old is the field's value before the edit; proposed is the value the edit
// would produce. The returned value replaces proposed. Formatters must not
// assume proposed differs from old.
type Formatter interface {
	Format(old, proposed EditingValue) EditingValue
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(old, proposed EditingValue) EditingValue

// Format calls f.
func (f FormatterFunc) Format(old, proposed EditingValue) EditingValue {
	return f(old, proposed)
}

// Chain applies formatters left to right, feeding each one's output to the
// next as the proposed value.
func Chain(formatters ...Formatter) Formatter {
	return FormatterFunc(func(old, proposed EditingValue) EditingValue {
		value := proposed
		for _, f := range formatters {
			value = f.Format(old, value)
		}
		return value
	})
}
