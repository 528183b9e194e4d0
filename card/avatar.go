package card

import (
	"image"

	"emperror.dev/errors"
	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// Fit centre-crops src to a square and scales it to size x size.
func Fit(src image.Image, size int) *image.RGBA {
	b := src.Bounds()

	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, image.Rect(x0, y0, x0+side, y0+side), draw.Src, nil)
	return dst
}

// Circle returns a copy of src where everything outside the inscribed circle is transparent.
func Circle(src *image.RGBA) (*image.RGBA, error) {
	b := src.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	mc := gg.NewContext(b.Dx(), b.Dy())
	defer mc.Close()

	mc.DrawEllipse(w/2, h/2, w/2, h/2)
	mc.SetRGB(1, 1, 1)
	if err := mc.Fill(); err != nil {
		return nil, errors.Wrap(err, "filling mask")
	}
	if err := mc.FlushGPU(); err != nil {
		return nil, errors.Wrap(err, "flushing mask")
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.DrawMask(dst, dst.Bounds(), src, b.Min, mc.Image(), image.Point{}, draw.Over)
	return dst, nil
}
