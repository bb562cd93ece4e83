package input

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// IntegerOptions configures the Integer mask.
type IntegerOptions struct {
	// AllowNegative permits a single leading minus sign.
	AllowNegative bool
	// AllowLeadingZeros keeps zeros in front of other digits ("007").
	// When false the mask rewrites "007" to "7"; a lone "0" always survives.
	AllowLeadingZeros bool
	// MaxDigits caps the number of digits when positive.
	MaxDigits int
}

// Integer returns a mask that keeps only a well-formed integer: digits,
// optionally preceded by a minus sign. Everything else in the proposed text
// is dropped and the caret is re-anchored.
func Integer(opts IntegerOptions) Formatter {
	return FormatterFunc(func(_, proposed EditingValue) EditingValue {
		digits := 0
		filtered := filterText(proposed, func(r rune, kept string) bool {
			switch {
			case r >= '0' && r <= '9':
				if opts.MaxDigits > 0 && digits >= opts.MaxDigits {
					return false
				}
				digits++
				return true
			case r == '-':
				return opts.AllowNegative && kept == ""
			default:
				return false
			}
		})
		if !opts.AllowLeadingZeros {
			filtered = stripLeadingZeros(filtered)
		}
		return filtered
	})
}

// DecimalOptions configures the Decimal mask.
type DecimalOptions struct {
	// AllowNegative permits a single leading minus sign.
	AllowNegative bool
	// Precision caps the number of digits after the separator when
	// positive; zero or negative means unlimited.
	Precision int
	// Separator is the decimal separator rune; '.' when zero.
	Separator rune
}

// Decimal returns a mask that keeps only a well-formed decimal number:
// digits with at most one separator, optionally preceded by a minus sign.
func Decimal(opts DecimalOptions) Formatter {
	sep := opts.Separator
	if sep == 0 {
		sep = '.'
	}
	return FormatterFunc(func(_, proposed EditingValue) EditingValue {
		sepSeen := false
		fraction := 0
		return filterText(proposed, func(r rune, kept string) bool {
			switch {
			case r >= '0' && r <= '9':
				if sepSeen {
					if opts.Precision > 0 && fraction >= opts.Precision {
						return false
					}
					fraction++
				}
				return true
			case r == sep:
				if sepSeen {
					return false
				}
				sepSeen = true
				return true
			case r == '-':
				return opts.AllowNegative && kept == ""
			default:
				return false
			}
		})
	})
}

// Clamp returns a mask that forces parseable values into [min, max].
// Partial input that does not yet parse ("", "-", "1.") passes through
// untouched so the user can keep typing.
func Clamp(min, max float64) Formatter {
	return FormatterFunc(func(_, proposed EditingValue) EditingValue {
		n, err := strconv.ParseFloat(proposed.Text, 64)
		if err != nil {
			return proposed
		}
		switch {
		case n < min:
			return clampedValue(min)
		case n > max:
			return clampedValue(max)
		default:
			return proposed
		}
	})
}

func clampedValue(n float64) EditingValue {
	text := strconv.FormatFloat(n, 'f', -1, 64)
	return Collapsed(text, len(text))
}

// filterText rebuilds the proposed text keeping only runes the keep
// function accepts, re-anchoring the selection across dropped runes. The
// keep function sees the text kept so far.
func filterText(v EditingValue, keep func(r rune, kept string) bool) EditingValue {
	var b strings.Builder
	base, extent := 0, 0
	for i, r := range v.Text {
		if !keep(r, b.String()) {
			continue
		}
		width := utf8.RuneLen(r)
		b.WriteRune(r)
		if i < v.Base {
			base += width
		}
		if i < v.Extent {
			extent += width
		}
	}
	return EditingValue{Text: b.String(), Base: base, Extent: extent}
}

// stripLeadingZeros removes zeros that precede another digit, keeping a
// lone zero, and shifts the selection left past removed bytes.
func stripLeadingZeros(v EditingValue) EditingValue {
	text := v.Text
	neg := strings.HasPrefix(text, "-")
	body := text
	if neg {
		body = text[1:]
	}

	trimmed := body
	for len(trimmed) > 1 && trimmed[0] == '0' && trimmed[1] >= '0' && trimmed[1] <= '9' {
		trimmed = trimmed[1:]
	}
	removed := len(body) - len(trimmed)
	if removed == 0 {
		return v
	}

	prefixLen := 0
	if neg {
		prefixLen = 1
	}
	adjust := func(offset int) int {
		if offset <= prefixLen {
			return offset
		}
		offset -= removed
		if offset < prefixLen {
			return prefixLen
		}
		return offset
	}

	result := trimmed
	if neg {
		result = "-" + trimmed
	}
	return EditingValue{Text: result, Base: adjust(v.Base), Extent: adjust(v.Extent)}
}
