package mapfile

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/subwaymap/pkg/subway"
)

// MaxPixels is the largest raster side accepted by Rasterize.
const MaxPixels = 1<<16 - 1

var (
	// ErrInvalidDPI is returned for a non-positive or non-finite resolution.
	ErrInvalidDPI = errors.New("dpi must be a positive number")
	// ErrImageTooLarge is returned when a side of the raster would reach
	// 2^16 pixels.
	ErrImageTooLarge = errors.New("image size too large")
)

// Rasterize renders the cropped canvas at dpi into an RGBA image.
func Rasterize(c *subway.Canvas, dpi float64) (*image.RGBA, error) {
	if !(dpi > 0) || math.IsInf(dpi, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDPI, dpi)
	}
	crop := Bounds(c)
	fw, fh := math.Round(crop.Width()*dpi), math.Round(crop.Height()*dpi)
	if fw > MaxPixels || fh > MaxPixels {
		return nil, fmt.Errorf("%w: %.0fx%.0f pixels at %v dpi, each side must be less than %d",
			ErrImageTooLarge, fw, fh, dpi, MaxPixels+1)
	}
	w, h := PixelSize(crop, dpi)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c.Page), image.Point{}, draw.Src)

	r := &rasterizer{
		img:   img,
		tr:    transform{canvas: c, origin: crop, scale: dpi},
		faces: newFaceCache(dpi),
	}
	defer r.faces.close()

	r.clip = pixelRect(r.tr.plot()).Intersect(img.Bounds())
	draw.Draw(img, r.clip, image.NewUniform(c.Plot), image.Point{}, draw.Src)

	for _, it := range c.Items() {
		switch it := it.(type) {
		case *subway.Circle:
			r.circle(it)
		case *subway.Polyline:
			r.polyline(it)
		case *subway.Text:
			r.text(it)
		}
	}
	return img, nil
}

// pixelRect rounds a device rectangle outwards to whole pixels.
func pixelRect(r subway.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.MinX)), int(math.Floor(r.MinY)),
		int(math.Ceil(r.MaxX)), int(math.Ceil(r.MaxY)),
	)
}

type rasterizer struct {
	img   *image.RGBA
	clip  image.Rectangle // plot area, shapes never paint outside it
	tr    transform
	faces *faceCache
}

// shapeLayer is a private raster for one shape, sized to the shape's
// bounds. rasterx works on a scanner the size of its target, so drawing each
// shape into its own small layer keeps memory proportional to the shape.
type shapeLayer struct {
	img    *image.RGBA
	dx, dy float64
	filler *rasterx.Filler
	dasher *rasterx.Dasher
}

func newShapeLayer(bounds image.Rectangle) *shapeLayer {
	w, h := bounds.Dx(), bounds.Dy()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &shapeLayer{
		img:    img,
		dx:     float64(bounds.Min.X),
		dy:     float64(bounds.Min.Y),
		filler: rasterx.NewFiller(w, h, scanner),
		dasher: rasterx.NewDasher(w, h, scanner),
	}
}

func (l *shapeLayer) fixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round((x - l.dx) * 64)),
		Y: fixed.Int26_6(math.Round((y - l.dy) * 64)),
	}
}

// rasterPath adapts a rasterx Adder to pathSink.
type rasterPath struct {
	l *shapeLayer
	a rasterx.Adder
}

func (p rasterPath) moveTo(x, y float64) { p.a.Start(p.l.fixed(x, y)) }
func (p rasterPath) lineTo(x, y float64) { p.a.Line(p.l.fixed(x, y)) }
func (p rasterPath) cubeTo(x1, y1, x2, y2, x, y float64) {
	p.a.CubeBezier(p.l.fixed(x1, y1), p.l.fixed(x2, y2), p.l.fixed(x, y))
}
func (p rasterPath) closePath() { p.a.Stop(true) }

func (l *shapeLayer) fill(col color.NRGBA, build func(pathSink)) {
	l.filler.Clear()
	build(rasterPath{l, l.filler})
	l.filler.SetColor(col)
	l.filler.Draw()
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }

func capFunc(c subway.CapStyle) rasterx.CapFunc {
	switch c {
	case subway.CapProjecting:
		return rasterx.SquareCap
	case subway.CapButt:
		return rasterx.ButtCap
	}
	return rasterx.RoundCap
}

// strokeClosed strokes a closed outline with round joins.
func (l *shapeLayer) strokeClosed(col color.NRGBA, width float64, build func(pathSink)) {
	l.dasher.Clear()
	l.dasher.SetStroke(toFixed(width), toFixed(4), rasterx.RoundCap, rasterx.RoundCap,
		rasterx.RoundGap, rasterx.Round, nil, 0)
	build(rasterPath{l, l.dasher})
	l.dasher.SetColor(col)
	l.dasher.Draw()
}

// strokeOpen strokes an open polyline given in device units.
func (l *shapeLayer) strokeOpen(col color.NRGBA, width float64, capStyle subway.CapStyle, dashes []float64, pts [][2]float64) {
	l.dasher.Clear()
	cf := capFunc(capStyle)
	l.dasher.SetStroke(toFixed(width), toFixed(4), cf, cf, rasterx.RoundGap, rasterx.Round, dashes, 0)
	for i, p := range pts {
		if i == 0 {
			l.dasher.Start(l.fixed(p[0], p[1]))
		} else {
			l.dasher.Line(l.fixed(p[0], p[1]))
		}
	}
	l.dasher.Stop(false)
	l.dasher.SetColor(col)
	l.dasher.Draw()
}

// paint draws into a layer covering bounds and composites the part inside
// clip onto the image.
func (r *rasterizer) paint(bounds subway.Rect, clip image.Rectangle, fn func(l *shapeLayer)) {
	area := pixelRect(bounds.Inset(2))
	dst := area.Intersect(clip)
	if dst.Empty() {
		return
	}
	l := newShapeLayer(area)
	fn(l)
	draw.Draw(r.img, dst, l.img, dst.Min.Sub(area.Min), draw.Over)
}

func (r *rasterizer) circle(c *subway.Circle) {
	cx, cy := r.tr.point(c.Center)
	rx, ry := r.tr.radii(c)
	e := r.tr.pt(c.EdgeWidth) / 2
	r.paint(circleExtent(r.tr, c), r.clip, func(l *shapeLayer) {
		// The edge is stroked in the fill color, so fill the outer outline.
		l.fill(c.Color, func(p pathSink) { ellipsePath(p, cx, cy, rx+e, ry+e) })
	})
}

func (r *rasterizer) polyline(pl *subway.Polyline) {
	pts := make([][2]float64, len(pl.Points))
	for i, p := range pl.Points {
		pts[i][0], pts[i][1] = r.tr.point(p)
	}
	var dashes []float64
	for _, d := range pl.Dashes() {
		dashes = append(dashes, r.tr.pt(d))
	}
	width := r.tr.pt(pl.Width)
	r.paint(polylineExtent(r.tr, pl).Inset(width), r.clip, func(l *shapeLayer) {
		l.strokeOpen(pl.Color, width, pl.Cap, dashes, pts)
	})
}

func (r *rasterizer) text(t *subway.Text) {
	lay := r.faces.layout(r.tr, t)
	if t.Box != nil {
		r.paint(lay.extent(), r.img.Bounds(), func(l *shapeLayer) {
			outline := func(p pathSink) { roundRectPath(p, lay.frame, lay.radius) }
			l.fill(t.Box.Fill, outline)
			if lay.edge > 0 {
				l.strokeClosed(t.Box.Edge, lay.edge, outline)
			}
		})
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(t.Color),
		Face: r.faces.face(t),
		Dot:  fixed.Point26_6{X: toFixed(lay.x), Y: toFixed(lay.baseline)},
	}
	d.DrawString(t.Content)
}
