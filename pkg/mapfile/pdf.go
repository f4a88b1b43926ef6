// PDF output via gofpdf. The page is the tight crop, measured in points.

package mapfile

import (
	"image/color"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/ha1tch/subwaymap/pkg/subway"
)

const pdfFamily = "Go"

// pdfDate is stamped as the creation date so identical maps produce
// identical files.
var pdfDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// pdfPath adapts a gofpdf document to pathSink.
type pdfPath struct {
	pdf *gofpdf.Fpdf
}

func (p pdfPath) moveTo(x, y float64) { p.pdf.MoveTo(x, y) }
func (p pdfPath) lineTo(x, y float64) { p.pdf.LineTo(x, y) }
func (p pdfPath) cubeTo(x1, y1, x2, y2, x, y float64) {
	p.pdf.CurveBezierCubicTo(x1, y1, x2, y2, x, y)
}
func (p pdfPath) closePath() { p.pdf.ClosePath() }

func pdfStyle(t *subway.Text) string {
	s := ""
	if t.Weight == subway.WeightBold {
		s += "B"
	}
	if t.Slant == subway.SlantItalic {
		s += "I"
	}
	return s
}

func pdfLinecap(c subway.CapStyle) string {
	switch c {
	case subway.CapProjecting:
		return "square"
	case subway.CapButt:
		return "butt"
	}
	return "round"
}

func setFill(pdf *gofpdf.Fpdf, c color.NRGBA) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setDraw(pdf *gofpdf.Fpdf, c color.NRGBA) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

// WritePDF writes the canvas to w as a single page PDF.
func WritePDF(w io.Writer, c *subway.Canvas) error {
	crop := Bounds(c)
	tr := transform{canvas: c, origin: crop, scale: 72}
	faces := newFaceCache(72)
	defer faces.close()

	pw, ph := crop.Width()*72, crop.Height()*72
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(pdfDate)
	pdf.SetCatalogSort(true)
	for _, style := range []string{"", "B", "I", "BI"} {
		key := fontKey{}
		if style == "B" || style == "BI" {
			key.weight = subway.WeightBold
		}
		if style == "I" || style == "BI" {
			key.slant = subway.SlantItalic
		}
		pdf.AddUTF8FontFromBytes(pdfFamily, style, ttf(key))
	}
	pdf.AddPage()

	setFill(pdf, c.Page)
	pdf.Rect(0, 0, pw, ph, "F")
	plot := tr.plot()
	setFill(pdf, c.Plot)
	pdf.Rect(plot.MinX, plot.MinY, plot.Width(), plot.Height(), "F")

	for _, it := range c.Items() {
		switch it := it.(type) {
		case *subway.Circle:
			cx, cy := tr.point(it.Center)
			rx, ry := tr.radii(it)
			pdf.ClipRect(plot.MinX, plot.MinY, plot.Width(), plot.Height(), false)
			setFill(pdf, it.Color)
			setDraw(pdf, it.Color)
			pdf.SetLineWidth(tr.pt(it.EdgeWidth))
			pdf.Ellipse(cx, cy, rx, ry, 0, "FD")
			pdf.ClipEnd()

		case *subway.Polyline:
			pdf.ClipRect(plot.MinX, plot.MinY, plot.Width(), plot.Height(), false)
			setDraw(pdf, it.Color)
			pdf.SetLineWidth(tr.pt(it.Width))
			pdf.SetLineCapStyle(pdfLinecap(it.Cap))
			pdf.SetLineJoinStyle("round")
			dashes := []float64{}
			for _, d := range it.Dashes() {
				dashes = append(dashes, tr.pt(d))
			}
			pdf.SetDashPattern(dashes, 0)
			for i, p := range it.Points {
				x, y := tr.point(p)
				if i == 0 {
					pdf.MoveTo(x, y)
				} else {
					pdf.LineTo(x, y)
				}
			}
			pdf.DrawPath("D")
			pdf.SetDashPattern([]float64{}, 0)
			pdf.ClipEnd()

		case *subway.Text:
			lay := faces.layout(tr, it)
			if it.Box != nil {
				setFill(pdf, it.Box.Fill)
				setDraw(pdf, it.Box.Edge)
				pdf.SetLineWidth(lay.edge)
				pdf.SetAlpha(float64(it.Box.Fill.A)/255, "Normal")
				roundRectPath(pdfPath{pdf}, lay.frame, lay.radius)
				pdf.DrawPath("FD")
				pdf.SetAlpha(1, "Normal")
			}
			pdf.SetFont(pdfFamily, pdfStyle(it), it.Size)
			pdf.SetTextColor(int(it.Color.R), int(it.Color.G), int(it.Color.B))
			pdf.Text(lay.x, lay.baseline, it.Content)
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
