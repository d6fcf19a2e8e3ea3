package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// TablePlanTheme wraps the default Fyne theme with compact sizing and a
// selectable light or dark variant.
type TablePlanTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	fixed   bool // false follows the system variant
}

// NewTablePlanTheme creates a TablePlanTheme that follows the system variant.
func NewTablePlanTheme() *TablePlanTheme {
	return &TablePlanTheme{base: theme.DefaultTheme()}
}

// NewTablePlanThemeWithVariant creates a TablePlanTheme with a specific light/dark variant.
func NewTablePlanThemeWithVariant(variant fyne.ThemeVariant) *TablePlanTheme {
	return &TablePlanTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
		fixed:   true,
	}
}

// ThemeFor maps the config theme name ("light", "dark", anything else for
// system) to a theme.
func ThemeFor(name string) *TablePlanTheme {
	switch name {
	case "light":
		return NewTablePlanThemeWithVariant(theme.VariantLight)
	case "dark":
		return NewTablePlanThemeWithVariant(theme.VariantDark)
	default:
		return NewTablePlanTheme()
	}
}

// Variant reports the fixed variant and whether one is set.
func (t *TablePlanTheme) Variant() (fyne.ThemeVariant, bool) {
	return t.variant, t.fixed
}

// Color delegates to the base theme, overriding the variant when fixed.
func (t *TablePlanTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.fixed {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *TablePlanTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *TablePlanTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *TablePlanTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
