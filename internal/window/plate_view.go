package window

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/platemapper/internal/plate"
	"github.com/PixPMusic/platemapper/internal/render"
)

// ============ PLATE VIEW WIDGET ============

// plateView draws a plate with the same scene the exporters use. Tapping a
// well reports it to onTap.
type plateView struct {
	widget.BaseWidget
	plate    *plate.Plate
	selected map[plate.Well]bool
	onTap    func(plate.Well)
}

func newPlateView(p *plate.Plate, onTap func(plate.Well)) *plateView {
	v := &plateView{plate: p, selected: map[plate.Well]bool{}, onTap: onTap}
	v.ExtendBaseWidget(v)
	return v
}

func (v *plateView) setPlate(p *plate.Plate) {
	v.plate = p
}

func (v *plateView) setSelected(selected map[plate.Well]bool) {
	v.selected = selected
}

func (v *plateView) CreateRenderer() fyne.WidgetRenderer {
	r := &plateRenderer{view: v, bg: canvas.NewRectangle(render.Background.MustNRGBA())}
	r.rebuild()
	return r
}

// wellAt maps a position inside the widget to a well.
func (v *plateView) wellAt(pos fyne.Position) (plate.Well, bool) {
	f := v.plate.Format()
	size := v.Size()
	return render.WellAt(float64(size.Width), float64(size.Height), f.Rows, f.Cols, float64(pos.X), float64(pos.Y))
}

func (v *plateView) Tapped(ev *fyne.PointEvent) {
	if w, ok := v.wellAt(ev.Position); ok && v.onTap != nil {
		v.onTap(w)
	}
}

type wellObjects struct {
	circle *canvas.Circle
	lines  []*canvas.Text
}

type plateRenderer struct {
	view    *plateView
	bg      *canvas.Rectangle
	scene   render.Scene
	wells   []wellObjects
	objects []fyne.CanvasObject
}

// rebuild recreates the canvas objects from a fresh scene.
func (r *plateRenderer) rebuild() {
	r.scene = render.Build(r.view.plate)
	r.wells = make([]wellObjects, len(r.scene.Wells))
	r.objects = []fyne.CanvasObject{r.bg}

	ink := render.Ink.MustNRGBA()
	highlight := theme.Color(theme.ColorNamePrimary)
	for i, ws := range r.scene.Wells {
		c := canvas.NewCircle(ws.Fill.MustNRGBA())
		c.StrokeColor = ws.Outline.MustNRGBA()
		c.StrokeWidth = 1
		if r.view.selected[ws.Well] {
			c.StrokeColor = highlight
			c.StrokeWidth = 3
		}
		r.objects = append(r.objects, c)

		lines := make([]*canvas.Text, len(ws.Lines))
		for j, line := range ws.Lines {
			t := canvas.NewText(line, ink)
			t.Alignment = fyne.TextAlignCenter
			lines[j] = t
			r.objects = append(r.objects, t)
		}
		r.wells[i] = wellObjects{circle: c, lines: lines}
	}
}

func (r *plateRenderer) Layout(size fyne.Size) {
	r.bg.Move(fyne.NewPos(0, 0))
	r.bg.Resize(size)

	w, h := float64(size.Width), float64(size.Height)
	rows, cols := r.scene.Rows, r.scene.Cols
	scale := render.ScaleFor(w, h, rows, cols)
	fontScale := 0.0
	if base := r.scene.Scale(); base > 0 {
		fontScale = scale / base * r.scene.FontScale()
	}

	for i, ws := range r.scene.Wells {
		cx, cy := render.Project(w, h, rows, cols, ws.CX, ws.CY)
		rad := ws.Radius * scale
		obj := r.wells[i]
		obj.circle.Move(fyne.NewPos(float32(cx-rad), float32(cy-rad)))
		obj.circle.Resize(fyne.NewSize(float32(2*rad), float32(2*rad)))

		textSize := ws.FontSize * fontScale
		lineHeight := textSize * 1.2
		top := cy - lineHeight*float64(len(obj.lines))/2
		for j, t := range obj.lines {
			t.TextSize = float32(textSize)
			t.Move(fyne.NewPos(float32(cx-rad), float32(top+float64(j)*lineHeight)))
			t.Resize(fyne.NewSize(float32(2*rad), float32(lineHeight)))
		}
	}
}

func (r *plateRenderer) MinSize() fyne.Size {
	rows, cols := r.scene.Rows, r.scene.Cols
	if cols == 0 {
		return fyne.NewSize(480, 320)
	}
	return fyne.NewSize(480, float32(480*rows/cols))
}

func (r *plateRenderer) Refresh() {
	r.rebuild()
	r.Layout(r.view.Size())
	canvas.Refresh(r.view)
}

func (r *plateRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *plateRenderer) Destroy() {}
