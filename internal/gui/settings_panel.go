package gui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"quill/internal/settings"
)

// createSettingsPanel builds the appearance panel. Every control writes
// straight into the appearance state and re-applies the theme, so
// changes show up immediately; nothing here is persisted between runs.
func (a *App) createSettingsPanel() fyne.CanvasObject {
	fontSizeValue := widget.NewLabel(fmt.Sprintf("%.0f", a.appearance.FontSize()))
	fontSizeSlider := widget.NewSlider(settings.MinFontSize, settings.MaxFontSize)
	fontSizeSlider.SetValue(a.appearance.FontSize())
	fontSizeSlider.OnChanged = func(value float64) {
		a.appearance.SetFontSize(value)
		fontSizeValue.SetText(fmt.Sprintf("%.0f", a.appearance.FontSize()))
		a.applyAppearance()
	}

	spacingValue := widget.NewLabel(fmt.Sprintf("%.1f", a.appearance.LineSpacing()))
	spacingSlider := widget.NewSlider(settings.MinLineSpacing, settings.MaxLineSpacing)
	spacingSlider.Step = 0.1
	spacingSlider.SetValue(a.appearance.LineSpacing())
	spacingSlider.OnChanged = func(value float64) {
		a.appearance.SetLineSpacing(value)
		spacingValue.SetText(fmt.Sprintf("%.1f", a.appearance.LineSpacing()))
		a.applyAppearance()
	}

	backgroundButton := widget.NewButton("Background Color…", func() {
		a.pickColor("Background Color", "Pick the editor background", func(c color.Color) {
			a.appearance.SetBackground(fromColor(c))
			a.applyAppearance()
		})
	})

	foregroundButton := widget.NewButton("Text Color…", func() {
		a.pickColor("Text Color", "Pick the editor text color", func(c color.Color) {
			a.appearance.SetForeground(fromColor(c))
			a.applyAppearance()
		})
	})

	fontFamilyRadio := widget.NewRadioGroup([]string{"Monospace", "Proportional"}, func(value string) {
		switch value {
		case "Monospace":
			a.appearance.SetFontFamily(settings.FontMonospace)
		case "Proportional":
			a.appearance.SetFontFamily(settings.FontProportional)
		}
		a.applyAppearance()
	})
	fontFamilyRadio.SetSelected("Monospace")

	resetButton := widget.NewButton("Reset to Defaults", func() {
		a.appearance.Reset()
		fontSizeSlider.SetValue(a.appearance.FontSize())
		spacingSlider.SetValue(a.appearance.LineSpacing())
		fontFamilyRadio.SetSelected("Monospace")
		a.applyAppearance()
		// Reset also hides the panel; the toolbar button brings it back.
		a.settingsPanel.Hide()
	})

	card := widget.NewCard("Appearance", "", container.NewVBox(
		widget.NewLabel("Font Size"),
		container.NewBorder(nil, nil, nil, fontSizeValue, fontSizeSlider),
		widget.NewLabel("Line Spacing"),
		container.NewBorder(nil, nil, nil, spacingValue, spacingSlider),
		widget.NewSeparator(),
		backgroundButton,
		foregroundButton,
		widget.NewSeparator(),
		widget.NewLabel("Font Family"),
		fontFamilyRadio,
		widget.NewSeparator(),
		resetButton,
	))

	return container.NewGridWrap(fyne.NewSize(280, 600), container.NewVScroll(card))
}

func (a *App) pickColor(title, message string, onPicked func(color.Color)) {
	picker := dialog.NewColorPicker(title, message, onPicked, a.mainWindow)
	picker.Advanced = true
	picker.Show()
}

// applyAppearance pushes the current appearance into the fyne theme.
func (a *App) applyAppearance() {
	a.fyneApp.Settings().SetTheme(newQuillTheme(a.appearance))
}
