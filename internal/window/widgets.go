package window

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// ============ COLOR SWATCH WIDGET ============

// colorSwatch previews the pending fill; tapping it opens the picker.
type colorSwatch struct {
	widget.BaseWidget
	rect  *canvas.Rectangle
	onTap func()
}

func newColorSwatch(c color.Color, onTap func()) *colorSwatch {
	rect := canvas.NewRectangle(c)
	rect.CornerRadius = 4
	rect.StrokeColor = color.Black
	rect.StrokeWidth = 1
	rect.SetMinSize(fyne.NewSize(36, 36))

	s := &colorSwatch{rect: rect, onTap: onTap}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) setColor(c color.Color) {
	s.rect.FillColor = c
	s.rect.Refresh()
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.onTap != nil {
		s.onTap()
	}
}
