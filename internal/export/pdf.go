package export

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// mmPerUnit maps surface units onto the page.
const mmPerUnit = 0.25

func newPDF(b Board) *gofpdf.Fpdf {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: b.Width * mmPerUnit, Ht: b.Height * mmPerUnit},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	for _, st := range b.Strokes {
		c := st.Color.NRGBA()
		p.SetDrawColor(int(c.R), int(c.G), int(c.B))
		p.SetFillColor(int(c.R), int(c.G), int(c.B))
		p.SetLineWidth(st.Width * mmPerUnit)

		pts := st.Path.Points()
		if len(pts) == 1 {
			p.Circle(pts[0].X*mmPerUnit, pts[0].Y*mmPerUnit, st.Width*mmPerUnit/2, "F")
			continue
		}
		for i := 1; i < len(pts); i++ {
			p.Line(
				pts[i-1].X*mmPerUnit, pts[i-1].Y*mmPerUnit,
				pts[i].X*mmPerUnit, pts[i].Y*mmPerUnit,
			)
		}
	}
	return p
}

// WritePDF renders the strokes of b as a one-page PDF.
func WritePDF(w io.Writer, b Board) error {
	return newPDF(b).Output(w)
}

func WritePDFFile(path string, b Board) error {
	return newPDF(b).OutputFileAndClose(path)
}
