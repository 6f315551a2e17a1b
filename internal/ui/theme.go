package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// courtTheme is a dark theme with the court-orange accent used across the app.
type courtTheme struct{}

var _ fyne.Theme = (*courtTheme)(nil)

func newCourtTheme() fyne.Theme {
	return courtTheme{}
}

func (t courtTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0xF2, G: 0x8C, B: 0x28, A: 0xFF}
	case theme.ColorNameFocus:
		return color.NRGBA{R: 0xF7, G: 0xA8, B: 0x5C, A: 0xAA}
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xF2, G: 0x8C, B: 0x28, A: 0x40}
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 0x1F, G: 0x25, B: 0x2C, A: 0xFF}
	case theme.ColorNameError:
		return uiDangerAccent
	case theme.ColorNameSuccess:
		return uiSuccessAccent
	default:
		return theme.DarkTheme().Color(name, theme.VariantDark)
	}
}

func (t courtTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DarkTheme().Font(style)
}

func (t courtTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DarkTheme().Icon(name)
}

func (t courtTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText {
		return 13
	}
	return theme.DarkTheme().Size(name)
}
