// Package mapfile serializes subway map canvases to raster images, SVG and
// PDF.
package mapfile

import (
	"math"

	"github.com/ha1tch/subwaymap/pkg/subway"
)

// padInches is the margin kept around the content when cropping.
const padInches = 0.1

// kappa places cubic Bézier control points for a quarter ellipse.
const kappa = 0.5522847498

// pathSink receives closed outlines in device units. Each backend adapts it
// to its own path API.
type pathSink interface {
	moveTo(x, y float64)
	lineTo(x, y float64)
	cubeTo(x1, y1, x2, y2, x, y float64)
	closePath()
}

// ellipsePath emits an ellipse as four cubic segments.
func ellipsePath(p pathSink, cx, cy, rx, ry float64) {
	kx, ky := rx*kappa, ry*kappa
	p.moveTo(cx+rx, cy)
	p.cubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.cubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.cubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.cubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.closePath()
}

// roundRectPath emits a rectangle with circular corners of radius rad.
func roundRectPath(p pathSink, r subway.Rect, rad float64) {
	rad = math.Max(0, math.Min(rad, math.Min(r.Width(), r.Height())/2))
	k := rad * kappa
	p.moveTo(r.MinX+rad, r.MinY)
	p.lineTo(r.MaxX-rad, r.MinY)
	p.cubeTo(r.MaxX-rad+k, r.MinY, r.MaxX, r.MinY+rad-k, r.MaxX, r.MinY+rad)
	p.lineTo(r.MaxX, r.MaxY-rad)
	p.cubeTo(r.MaxX, r.MaxY-rad+k, r.MaxX-rad+k, r.MaxY, r.MaxX-rad, r.MaxY)
	p.lineTo(r.MinX+rad, r.MaxY)
	p.cubeTo(r.MinX+rad-k, r.MaxY, r.MinX, r.MaxY-rad+k, r.MinX, r.MaxY-rad)
	p.lineTo(r.MinX, r.MinY+rad)
	p.cubeTo(r.MinX, r.MinY+rad-k, r.MinX+rad-k, r.MinY, r.MinX+rad, r.MinY)
	p.closePath()
}

// transform maps canvas coordinates to device units for one output. The
// device origin is the top-left corner of the crop.
type transform struct {
	canvas *subway.Canvas
	origin subway.Rect // crop, inches
	scale  float64     // device units per inch
}

// point maps a logical point to device units.
func (t transform) point(p subway.Point) (x, y float64) {
	ix, iy := t.canvas.ToInches(p)
	return (ix - t.origin.MinX) * t.scale, (iy - t.origin.MinY) * t.scale
}

// pt converts a length in points to device units.
func (t transform) pt(v float64) float64 {
	return v / 72 * t.scale
}

// rect maps a rectangle in figure inches to device units.
func (t transform) rect(r subway.Rect) subway.Rect {
	return subway.Rect{
		MinX: (r.MinX - t.origin.MinX) * t.scale,
		MinY: (r.MinY - t.origin.MinY) * t.scale,
		MaxX: (r.MaxX - t.origin.MinX) * t.scale,
		MaxY: (r.MaxY - t.origin.MinY) * t.scale,
	}
}

// radii returns the device radii of a data-space circle.
func (t transform) radii(c *subway.Circle) (rx, ry float64) {
	return c.Radius * t.canvas.ScaleX() * t.scale, c.Radius * t.canvas.ScaleY() * t.scale
}

// plot returns the plot area in device units.
func (t transform) plot() subway.Rect {
	return t.rect(t.canvas.PlotRect())
}

// circleExtent is the device extent of a circle including its edge.
func circleExtent(t transform, c *subway.Circle) subway.Rect {
	cx, cy := t.point(c.Center)
	rx, ry := t.radii(c)
	e := t.pt(c.EdgeWidth) / 2
	return subway.Rect{MinX: cx - rx - e, MinY: cy - ry - e, MaxX: cx + rx + e, MaxY: cy + ry + e}
}

// polylineExtent is the device extent of a stroked polyline.
func polylineExtent(t transform, p *subway.Polyline) subway.Rect {
	var r subway.Rect
	for i, pt := range p.Points {
		x, y := t.point(pt)
		if i == 0 {
			r = subway.Rect{MinX: x, MinY: y, MaxX: x, MaxY: y}
			continue
		}
		r.MinX, r.MaxX = math.Min(r.MinX, x), math.Max(r.MaxX, x)
		r.MinY, r.MaxY = math.Min(r.MinY, y), math.Max(r.MaxY, y)
	}
	return r.Inset(t.pt(p.Width) / 2)
}

// Bounds returns the tight crop of the canvas in figure inches: the extent of
// everything drawn, shapes clipped to the plot area, plus a small margin.
// An empty canvas yields the whole figure.
func Bounds(c *subway.Canvas) subway.Rect {
	t := transform{canvas: c, scale: 72}
	faces := newFaceCache(72)
	defer faces.close()

	plot := t.plot()
	var ext subway.Rect
	for _, it := range c.Items() {
		switch it := it.(type) {
		case *subway.Circle:
			ext = ext.Union(circleExtent(t, it).Intersect(plot))
		case *subway.Polyline:
			ext = ext.Union(polylineExtent(t, it).Intersect(plot))
		case *subway.Text:
			ext = ext.Union(faces.layout(t, it).extent())
		}
	}
	if ext.Empty() {
		return c.PlotRect()
	}
	inches := subway.Rect{MinX: ext.MinX / 72, MinY: ext.MinY / 72, MaxX: ext.MaxX / 72, MaxY: ext.MaxY / 72}
	return inches.Inset(padInches)
}

// PixelSize returns the raster dimensions of the crop at dpi.
func PixelSize(crop subway.Rect, dpi float64) (width, height int) {
	width = int(math.Round(crop.Width() * dpi))
	height = int(math.Round(crop.Height() * dpi))
	return max(width, 1), max(height, 1)
}
