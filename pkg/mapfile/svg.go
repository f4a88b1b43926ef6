// Native SVG output. Coordinates are in points; the viewBox is the tight crop.

package mapfile

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"strings"

	"github.com/ha1tch/subwaymap/pkg/subway"
)

// svgPath builds an SVG path "d" attribute.
type svgPath struct {
	sb strings.Builder
}

func (p *svgPath) moveTo(x, y float64) { fmt.Fprintf(&p.sb, "M%.2f,%.2f ", x, y) }
func (p *svgPath) lineTo(x, y float64) { fmt.Fprintf(&p.sb, "L%.2f,%.2f ", x, y) }
func (p *svgPath) cubeTo(x1, y1, x2, y2, x, y float64) {
	fmt.Fprintf(&p.sb, "C%.2f,%.2f %.2f,%.2f %.2f,%.2f ", x1, y1, x2, y2, x, y)
}
func (p *svgPath) closePath() { p.sb.WriteString("Z") }

func svgColor(c color.NRGBA) string {
	return subway.Hex(c)
}

// svgOpacity returns an opacity attribute for translucent colors.
func svgOpacity(attr string, c color.NRGBA) string {
	if c.A == 255 {
		return ""
	}
	return fmt.Sprintf(` %s="%.3f"`, attr, float64(c.A)/255)
}

// svgAnchor returns the text-anchor attribute for an alignment. Text is
// positioned at its anchor so viewers without the Go font still align it.
func svgAnchor(a subway.HAlign) string {
	switch a {
	case subway.HAlignCenter:
		return ` text-anchor="middle"`
	case subway.HAlignRight:
		return ` text-anchor="end"`
	}
	return ""
}

func svgLinecap(c subway.CapStyle) string {
	switch c {
	case subway.CapProjecting:
		return "square"
	case subway.CapButt:
		return "butt"
	}
	return "round"
}

// GenerateSVG renders the canvas to an SVG document.
func GenerateSVG(c *subway.Canvas) string {
	crop := Bounds(c)
	tr := transform{canvas: c, origin: crop, scale: 72}
	faces := newFaceCache(72)
	defer faces.close()

	w, h := crop.Width()*72, crop.Height()*72
	plot := tr.plot()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.2fpt" height="%.2fpt" viewBox="0 0 %.2f %.2f">
<defs>
  <clipPath id="plot">
    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>
  </clipPath>
</defs>
<style>
  text { font-family: "Go", sans-serif; white-space: pre; }
</style>
`, w, h, w, h, plot.MinX, plot.MinY, plot.Width(), plot.Height()))

	// Backgrounds
	sb.WriteString(fmt.Sprintf(`<rect width="%.2f" height="%.2f" fill="%s"/>
`, w, h, svgColor(c.Page)))
	sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>
`, plot.MinX, plot.MinY, plot.Width(), plot.Height(), svgColor(c.Plot)))

	sb.WriteString(`<g clip-path="url(#plot)">` + "\n")
	clipped := true
	for _, it := range c.Items() {
		_, isText := it.(*subway.Text)
		if isText == clipped {
			// Text is never clipped; shapes always are.
			if clipped {
				sb.WriteString("</g>\n")
			} else {
				sb.WriteString(`<g clip-path="url(#plot)">` + "\n")
			}
			clipped = !clipped
		}

		switch it := it.(type) {
		case *subway.Circle:
			cx, cy := tr.point(it.Center)
			rx, ry := tr.radii(it)
			sb.WriteString(fmt.Sprintf(`<ellipse cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>
`, cx, cy, rx, ry, svgColor(it.Color), svgColor(it.Color), tr.pt(it.EdgeWidth)))

		case *subway.Polyline:
			pts := make([]string, len(it.Points))
			for i, p := range it.Points {
				x, y := tr.point(p)
				pts[i] = fmt.Sprintf("%.2f,%.2f", x, y)
			}
			dash := ""
			if d := it.Dashes(); d != nil {
				parts := make([]string, len(d))
				for i, v := range d {
					parts[i] = fmt.Sprintf("%.2f", tr.pt(v))
				}
				dash = fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, ","))
			}
			sb.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="%s" stroke-linejoin="round"%s/>
`, strings.Join(pts, " "), svgColor(it.Color), tr.pt(it.Width), svgLinecap(it.Cap), dash))

		case *subway.Text:
			lay := faces.layout(tr, it)
			if it.Box != nil {
				var p svgPath
				roundRectPath(&p, lay.frame, lay.radius)
				sb.WriteString(fmt.Sprintf(`<path d="%s" fill="%s"%s stroke="%s"%s stroke-width="%.2f"/>
`, p.sb.String(), svgColor(it.Box.Fill), svgOpacity("fill-opacity", it.Box.Fill),
					svgColor(it.Box.Edge), svgOpacity("stroke-opacity", it.Box.Edge), lay.edge))
			}
			style := ""
			if it.Weight == subway.WeightBold {
				style += ` font-weight="bold"`
			}
			if it.Slant == subway.SlantItalic {
				style += ` font-style="italic"`
			}
			sb.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f"%s font-size="%.2f" fill="%s"%s>%s</text>
`, lay.anchor, lay.baseline, svgAnchor(it.HAlign), tr.pt(it.Size), svgColor(it.Color), style, html.EscapeString(it.Content)))
		}
	}
	if clipped {
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG writes the SVG document for the canvas to w.
func WriteSVG(w io.Writer, c *subway.Canvas) error {
	_, err := io.WriteString(w, GenerateSVG(c))
	return err
}
