package export

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

// Raster renders the board at scale pixels per surface unit. When template
// is non-nil it is drawn first, scaled to fit the surface and centered.
func Raster(b Board, scale float64, template image.Image) *image.NRGBA {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(b.Width * scale))
	h := int(math.Ceil(b.Height * scale))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if template != nil {
		draw.CatmullRom.Scale(img, containRect(template.Bounds(), img.Bounds()), template, template.Bounds(), draw.Over, nil)
	}

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	d := rasterx.NewDasher(w, h, scanner)
	dot := rasterx.NewFiller(w, h, scanner)
	for _, st := range b.Strokes {
		pts := st.Path.Points()
		switch len(pts) {
		case 0:
			continue
		case 1:
			dot.SetColor(st.Color.NRGBA())
			rasterx.AddCircle(pts[0].X*scale, pts[0].Y*scale, st.Width*scale/2, dot)
			dot.Draw()
			dot.Clear()
			continue
		}

		width := fixed.Int26_6(st.Width * scale * 64)
		d.SetStroke(width, 4*64, rasterx.RoundCap, nil, rasterx.RoundGap, rasterx.Round, nil, 0)
		d.SetColor(st.Color.NRGBA())
		d.Start(rasterx.ToFixedP(pts[0].X*scale, pts[0].Y*scale))
		for _, p := range pts[1:] {
			d.Line(rasterx.ToFixedP(p.X*scale, p.Y*scale))
		}
		d.Stop(false)
		d.Draw()
		d.Clear()
	}
	return img
}

// containRect fits src into dst keeping its aspect ratio.
func containRect(src, dst image.Rectangle) image.Rectangle {
	sw, sh := float64(src.Dx()), float64(src.Dy())
	dw, dh := float64(dst.Dx()), float64(dst.Dy())
	if sw == 0 || sh == 0 {
		return image.Rectangle{}
	}
	k := math.Min(dw/sw, dh/sh)
	w, h := int(sw*k), int(sh*k)
	x0 := dst.Min.X + (dst.Dx()-w)/2
	y0 := dst.Min.Y + (dst.Dy()-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}

func WritePNG(w io.Writer, b Board, scale float64, template image.Image) error {
	if err := png.Encode(w, Raster(b, scale, template)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// LoadTemplate decodes a PNG or JPEG template image.
func LoadTemplate(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode template %s: %w", path, err)
	}
	return img, nil
}
