package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// fade band, as a fraction of the divider length from each end
const (
	fadeOuter = 0.10
	fadeInner = 0.30
)

// fadeAlpha scales opacity at position t in [0,1] along the divider:
// transparent at the ends, opaque through the middle.
func fadeAlpha(t float32) float32 {
	edge := t
	if 1-t < edge {
		edge = 1 - t
	}
	switch {
	case edge <= fadeOuter:
		return 0
	case edge >= fadeInner:
		return 1
	default:
		return (edge - fadeOuter) / (fadeInner - fadeOuter)
	}
}

// newFadedDivider is a one pixel rule that fades out toward both sides.
func newFadedDivider() fyne.CanvasObject {
	r := canvas.NewRasterWithPixels(func(x, _, w, _ int) color.Color {
		c := uiMutedTextColor
		if w > 1 {
			c.A = uint8(float32(c.A) * fadeAlpha(float32(x)/float32(w-1)))
		}
		return c
	})
	r.SetMinSize(fyne.NewSize(0, 1))
	return r
}
