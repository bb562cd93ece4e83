package chart

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Insets are the margins, in pixels, a chart grid should reserve around
// its plotting area so axis labels are not clipped.
type Insets struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// EstimateLabelInsets computes grid insets from the axis labels that will
// be drawn: the left inset fits the widest y-axis label, the bottom inset
// fits the x-axis label line height, and the top and right insets reserve
// half a line so edge labels can overhang the plot area.
//
// A nil face falls back to the fixed 7x13 face, which matches the default
// bitmap font of small canvas engines.
func EstimateLabelInsets(face font.Face, yLabels, xLabels []string) Insets {
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = metrics.Ascent.Ceil() + metrics.Descent.Ceil()
	}

	widest := 0
	for _, label := range yLabels {
		if w := font.MeasureString(face, label).Ceil(); w > widest {
			widest = w
		}
	}

	insets := Insets{
		Top:   (lineHeight + 1) / 2,
		Right: (lineHeight + 1) / 2,
	}
	if len(yLabels) > 0 {
		// Gap between label and axis line.
		insets.Left = widest + lineHeight/2
	}
	if len(xLabels) > 0 {
		insets.Bottom = lineHeight + lineHeight/2
		if last := xLabels[len(xLabels)-1]; last != "" {
			// The last x label overhangs the right edge by half its width.
			overhang := font.MeasureString(face, last).Ceil() / 2
			if overhang > insets.Right {
				insets.Right = overhang
			}
		}
	}
	return insets
}
