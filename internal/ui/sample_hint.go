package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/AkatukiSora/volley-stats/internal/stats"
)

// lowSampleAttempts is the attempt count below which a rate gets flagged.
const lowSampleAttempts = 5

// isLowSample reports a defined rate resting on only a handful of attempts.
func isLowSample(e stats.Efficiency) bool {
	return e.Defined() && e.Attempts < lowSampleAttempts
}

// sampleHintIcon is a small "!" badge that reports hover in and out.
type sampleHintIcon struct {
	widget.BaseWidget
	onHover func(bool)
}

func newSampleHintIcon(onHover func(bool)) *sampleHintIcon {
	w := &sampleHintIcon{onHover: onHover}
	w.ExtendBaseWidget(w)
	return w
}

func (w *sampleHintIcon) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewCircle(color.NRGBA{R: uiWarnAccent.R, G: uiWarnAccent.G, B: uiWarnAccent.B, A: 0x24})
	bg.StrokeColor = uiWarnAccent
	bg.StrokeWidth = 1.5

	mark := canvas.NewText("!", uiWarnAccent) //i18n:ignore symbol, not text
	mark.TextStyle = fyne.TextStyle{Bold: true}
	mark.Alignment = fyne.TextAlignCenter
	mark.TextSize = 13

	return widget.NewSimpleRenderer(container.NewStack(bg, container.NewCenter(mark)))
}

func (w *sampleHintIcon) MinSize() fyne.Size {
	return fyne.NewSize(22, 22)
}

func (w *sampleHintIcon) MouseIn(*desktop.MouseEvent) {
	if w.onHover != nil {
		w.onHover(true)
	}
}

func (w *sampleHintIcon) MouseMoved(*desktop.MouseEvent) {}

func (w *sampleHintIcon) MouseOut() {
	if w.onHover != nil {
		w.onHover(false)
	}
}

// newLowSampleLegend explains the badge; hint shows the hovered row's detail.
func newLowSampleLegend(hint *widget.Label) fyne.CanvasObject {
	mark := canvas.NewText("!", uiWarnAccent) //i18n:ignore symbol, not text
	mark.TextStyle = fyne.TextStyle{Bold: true}
	mark.TextSize = theme.TextSize() * 0.95

	legend := widget.NewLabel(lang.X("charts.low_sample_legend", "! marks a rate based on fewer than {{.N}} attempts.", map[string]any{"N": lowSampleAttempts}))
	legend.Wrapping = fyne.TextWrapWord

	return container.NewPadded(container.NewVBox(container.NewBorder(nil, nil, mark, nil, legend), hint))
}
