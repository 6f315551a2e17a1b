package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/AkatukiSora/volley-stats/internal/stats"
)

var (
	uiMutedTextColor  = color.NRGBA{R: 0xA8, G: 0xAF, B: 0xB8, A: 0xFF}
	uiCardBorderColor = color.NRGBA{R: 0x8A, G: 0x92, B: 0x9C, A: 0x2E}
	uiSurfaceTint     = color.NRGBA{R: 0x72, G: 0x86, B: 0x9A, A: 0x12}
	uiSuccessAccent   = color.NRGBA{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF}
	uiDangerAccent    = color.NRGBA{R: 0xF4, G: 0x43, B: 0x36, A: 0xFF}
	uiWarnAccent      = color.NRGBA{R: 0xFF, G: 0xC1, B: 0x07, A: 0xFF}
	uiTrackColor      = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x10}
)

// categoryColors follows the score sheet convention: blues for points, reds for errors.
var categoryColors = map[stats.CategoryID]color.NRGBA{
	stats.CategoryServeSuccess: {R: 0xAD, G: 0xD8, B: 0xE6, A: 0xFF},
	stats.CategorySpikeSuccess: {R: 0x00, G: 0xBF, B: 0xFF, A: 0xFF},
	stats.CategoryBlockSuccess: {R: 0x1E, G: 0x5B, B: 0xFF, A: 0xFF},
	stats.CategoryServeMiss:    {R: 0xF0, G: 0x80, B: 0x80, A: 0xFF},
	stats.CategorySpikeMiss:    {R: 0xFF, G: 0x00, B: 0x00, A: 0xFF},
	stats.CategoryReceiveMiss:  {R: 0x8B, G: 0x00, B: 0x00, A: 0xFF},
}

func categoryColor(id stats.CategoryID) color.NRGBA {
	if c, ok := categoryColors[id]; ok {
		return c
	}
	return color.NRGBA{R: 0x90, G: 0xA4, B: 0xAE, A: 0xFF}
}

func newSectionCard(content fyne.CanvasObject) fyne.CanvasObject {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	bg.CornerRadius = 10

	tint := canvas.NewRectangle(uiSurfaceTint)
	tint.CornerRadius = 10

	border := canvas.NewRectangle(color.Transparent)
	border.CornerRadius = 10
	border.StrokeColor = uiCardBorderColor
	border.StrokeWidth = 1

	return container.NewStack(bg, tint, border, container.NewPadded(content))
}

func newSectionTitle(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func newSubtleText(content string) *canvas.Text {
	t := canvas.NewText(content, uiMutedTextColor)
	t.TextSize = theme.TextSize() * 0.86
	return t
}

func newSwatch(c color.Color) fyne.CanvasObject {
	r := canvas.NewRectangle(c)
	r.CornerRadius = 2
	r.SetMinSize(fyne.NewSize(12, 12))
	return container.NewCenter(r)
}

func newCenteredEmptyState(message string) fyne.CanvasObject {
	label := widget.NewLabel(message)
	label.Alignment = fyne.TextAlignCenter
	label.Wrapping = fyne.TextWrapWord

	card := newSectionCard(container.NewPadded(label))
	widthLock := canvas.NewRectangle(color.Transparent)
	widthLock.SetMinSize(fyne.NewSize(420, 0))

	return container.NewCenter(container.NewStack(widthLock, card))
}
