package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	a := New()

	assert.Equal(t, 14.0, a.FontSize())
	assert.Equal(t, White, a.Background())
	assert.Equal(t, Black, a.Foreground())
	assert.Equal(t, FontMonospace, a.FontFamily())
	assert.Equal(t, 1.5, a.LineSpacing())
	assert.False(t, a.PanelVisible())
}

func TestFontSizeClamping(t *testing.T) {
	a := New()

	a.SetFontSize(24)
	assert.Equal(t, 24.0, a.FontSize())

	a.SetFontSize(3)
	assert.Equal(t, MinFontSize, a.FontSize())

	a.SetFontSize(500)
	assert.Equal(t, MaxFontSize, a.FontSize())
}

func TestLineSpacingClamping(t *testing.T) {
	a := New()

	a.SetLineSpacing(2.0)
	assert.Equal(t, 2.0, a.LineSpacing())

	a.SetLineSpacing(0.2)
	assert.Equal(t, MinLineSpacing, a.LineSpacing())

	a.SetLineSpacing(9.9)
	assert.Equal(t, MaxLineSpacing, a.LineSpacing())
}

func TestColors(t *testing.T) {
	a := New()

	a.SetBackground(RGBA{30, 30, 46, 255})
	a.SetForeground(RGBA{205, 214, 244, 255})

	assert.Equal(t, "#1e1e2e", a.Background().Hex())
	assert.Equal(t, "#cdd6f4", a.Foreground().Hex())
}

func TestFontFamily(t *testing.T) {
	a := New()

	a.SetFontFamily(FontProportional)
	assert.Equal(t, FontProportional, a.FontFamily())

	a.SetFontFamily(FontFamily("wingdings"))
	assert.Equal(t, FontProportional, a.FontFamily())
}

func TestTogglePanel(t *testing.T) {
	a := New()

	assert.True(t, a.TogglePanel())
	assert.True(t, a.PanelVisible())
	assert.False(t, a.TogglePanel())
	assert.False(t, a.PanelVisible())
}

func TestReset(t *testing.T) {
	a := New()
	a.SetFontSize(40)
	a.SetBackground(Black)
	a.TogglePanel()

	a.Reset()

	assert.Equal(t, 14.0, a.FontSize())
	assert.Equal(t, White, a.Background())
	assert.False(t, a.PanelVisible())
}
