package gui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"quill/internal/settings"
)

// quillTheme projects the appearance state onto fyne's theme system so
// font size, colors, and line spacing follow the settings panel.
type quillTheme struct {
	base       fyne.Theme
	appearance *settings.Appearance
}

func newQuillTheme(appearance *settings.Appearance) *quillTheme {
	return &quillTheme{
		base:       theme.DefaultTheme(),
		appearance: appearance,
	}
}

func (t *quillTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameInputBackground:
		return toNRGBA(t.appearance.Background())
	case theme.ColorNameForeground:
		return toNRGBA(t.appearance.Foreground())
	}
	return t.base.Color(name, variant)
}

func (t *quillTheme) Font(style fyne.TextStyle) fyne.Resource {
	if t.appearance.FontFamily() == settings.FontMonospace {
		style.Monospace = true
	} else {
		style.Monospace = false
	}
	return t.base.Font(style)
}

func (t *quillTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *quillTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return float32(t.appearance.FontSize())
	case theme.SizeNameLineSpacing:
		// Spacing is a multiplier over the font size; fyne wants the
		// extra pixels between lines.
		return float32(t.appearance.FontSize() * (t.appearance.LineSpacing() - 1.0))
	}
	return t.base.Size(name)
}

func toNRGBA(c settings.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func fromColor(c color.Color) settings.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return settings.RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

// parseHex reads the "#rrggbb" colors the highlighter produces.
func parseHex(s string) (color.NRGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
