package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

var (
	labelFontOnce sync.Once
	labelFont     *truetype.Font
	labelFontErr  error
)

func loadLabelFont() (*truetype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = freetype.ParseFont(goregular.TTF)
	})
	return labelFont, labelFontErr
}

// Image rasterises the scene.
func Image(s Scene) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(s.Background.MustNRGBA()), image.Point{}, draw.Src)

	f, err := loadLabelFont()
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}

	scale := s.Scale()
	fontScale := s.FontScale()
	for _, shape := range s.Wells {
		cx, cy := s.ToPixels(shape.CX, shape.CY)
		drawDisc(img, cx, cy, shape.Radius*scale, shape.Fill.MustNRGBA(), shape.Outline.MustNRGBA())
		if len(shape.Lines) == 0 {
			continue
		}
		if err := drawLines(img, f, shape.Lines, cx, cy, shape.FontSize*fontScale); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// WritePNG rasterises the scene and encodes it as PNG.
func WritePNG(w io.Writer, s Scene) error {
	img, err := Image(s)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// drawDisc fills a circle and strokes a one pixel outline.
func drawDisc(img *image.RGBA, cx, cy, r float64, fill, outline color.NRGBA) {
	bounds := img.Bounds()
	minX, maxX := int(cx-r-1), int(cx+r+1)
	minY, maxY := int(cy-r-1), int(cy+r+1)

	r2 := r * r
	inner := r - 1
	inner2 := inner * inner
	for y := minY; y <= maxY; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := minX; x <= maxX; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			d2 := dx*dx + dy*dy
			switch {
			case d2 > r2:
			case d2 >= inner2:
				img.Set(x, y, outline)
			default:
				img.Set(x, y, fill)
			}
		}
	}
}

func drawLines(img *image.RGBA, f *truetype.Font, lines []string, cx, cy, size float64) error {
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72})
	defer face.Close()

	c := freetype.NewContext()
	c.SetFont(f)
	c.SetFontSize(size)
	c.SetDPI(72)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(Ink.MustNRGBA()))

	metrics := face.Metrics()
	// baseline sits half a cap height below the line centre
	half := (metrics.Ascent - metrics.Descent) / 2
	for i, off := range lineOffsets(len(lines), size) {
		width := font.MeasureString(face, lines[i])
		pt := fixed.Point26_6{
			X: fixed.Int26_6(cx*64) - width/2,
			Y: fixed.Int26_6((cy+off)*64) + half,
		}
		if _, err := c.DrawString(lines[i], pt); err != nil {
			return fmt.Errorf("draw label %q: %w", lines[i], err)
		}
	}
	return nil
}
