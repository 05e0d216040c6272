package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// variantTheme pins the default theme to one variant so the header toggle
// can switch between light and dark regardless of the OS setting.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}

func newVariantTheme(v fyne.ThemeVariant) fyne.Theme {
	return &variantTheme{Theme: theme.DefaultTheme(), variant: v}
}

func toggleVariant(v fyne.ThemeVariant) fyne.ThemeVariant {
	if v == theme.VariantDark {
		return theme.VariantLight
	}
	return theme.VariantDark
}
