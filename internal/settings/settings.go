// Package settings holds the in-memory appearance state driven by the
// settings panel. The state lives for one run of the application and
// always starts from the same defaults; nothing here touches disk.
package settings

import "fmt"

// Font size and line spacing bounds enforced by the setters.
const (
	MinFontSize    = 10.0
	MaxFontSize    = 100.0
	MinLineSpacing = 1.0
	MaxLineSpacing = 5.0
)

// FontFamily selects between the two editor font classes.
type FontFamily string

const (
	FontMonospace    FontFamily = "monospace"
	FontProportional FontFamily = "proportional"
)

// RGBA is an 8-bit-per-channel color.
type RGBA struct {
	R, G, B, A uint8
}

// Hex renders the color as "#rrggbb"; alpha is not part of the hex form.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var (
	White = RGBA{255, 255, 255, 255}
	Black = RGBA{0, 0, 0, 255}
)

// Appearance is the mutable display state: font, colors, spacing, and
// whether the settings panel itself is showing.
type Appearance struct {
	fontSize     float64
	background   RGBA
	foreground   RGBA
	fontFamily   FontFamily
	lineSpacing  float64
	panelVisible bool
}

// New returns the appearance every run starts with: 14pt monospace,
// black on white, 1.5 line spacing, panel hidden.
func New() *Appearance {
	return &Appearance{
		fontSize:    14.0,
		background:  White,
		foreground:  Black,
		fontFamily:  FontMonospace,
		lineSpacing: 1.5,
	}
}

// Reset puts every field back to its startup default, including hiding
// the panel.
func (a *Appearance) Reset() {
	*a = *New()
}

func (a *Appearance) FontSize() float64      { return a.fontSize }
func (a *Appearance) Background() RGBA       { return a.background }
func (a *Appearance) Foreground() RGBA       { return a.foreground }
func (a *Appearance) FontFamily() FontFamily { return a.fontFamily }
func (a *Appearance) LineSpacing() float64   { return a.lineSpacing }
func (a *Appearance) PanelVisible() bool     { return a.panelVisible }

// SetFontSize clamps size into [MinFontSize, MaxFontSize] and applies it.
func (a *Appearance) SetFontSize(size float64) {
	if size < MinFontSize {
		size = MinFontSize
	}
	if size > MaxFontSize {
		size = MaxFontSize
	}
	a.fontSize = size
}

// SetLineSpacing clamps spacing into [MinLineSpacing, MaxLineSpacing]
// and applies it.
func (a *Appearance) SetLineSpacing(spacing float64) {
	if spacing < MinLineSpacing {
		spacing = MinLineSpacing
	}
	if spacing > MaxLineSpacing {
		spacing = MaxLineSpacing
	}
	a.lineSpacing = spacing
}

func (a *Appearance) SetBackground(c RGBA) {
	a.background = c
}

func (a *Appearance) SetForeground(c RGBA) {
	a.foreground = c
}

// SetFontFamily applies family; unrecognized values are ignored so a
// stray string can't wedge the editor font.
func (a *Appearance) SetFontFamily(family FontFamily) {
	if family != FontMonospace && family != FontProportional {
		return
	}
	a.fontFamily = family
}

// TogglePanel flips the settings panel between shown and hidden and
// reports the new state.
func (a *Appearance) TogglePanel() bool {
	a.panelVisible = !a.panelVisible
	return a.panelVisible
}
