// Package subway provides the drawing model and primitives for subway-style
// maps of a filesystem hierarchy.
package subway

import (
	"image/color"
	"sort"
)

// Logical extent of the plot area on both axes.
const (
	LogicalMin = 0.0
	LogicalMax = 100.0
)

// Drawing layers. Items render in ascending layer order, then in the order
// they were added.
const (
	LayerLine        = 2
	LayerStation     = 3
	LayerInterchange = 4
	LayerLabel       = 5
)

// Point is a position in logical (data) units. Y grows upwards.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Empty reports whether the rectangle contains no area.
func (r Rect) Empty() bool { return r.MinX >= r.MaxX || r.MinY >= r.MaxY }

// Union returns the smallest rectangle containing both r and o.
// An empty rectangle is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Intersect returns the overlap of r and o, which may be empty.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		MinX: max(r.MinX, o.MinX),
		MinY: max(r.MinY, o.MinY),
		MaxX: min(r.MaxX, o.MaxX),
		MaxY: min(r.MaxY, o.MaxY),
	}
}

// Inset grows the rectangle by d on every side (shrinks for negative d).
func (r Rect) Inset(d float64) Rect {
	return Rect{r.MinX - d, r.MinY - d, r.MaxX + d, r.MaxY + d}
}

// Item is anything that can be placed on a canvas.
type Item interface {
	Layer() int
}

// Circle is a filled circle in data coordinates. On a non-square figure it
// renders as an ellipse, exactly like a data-space patch would.
type Circle struct {
	Center    Point
	Radius    float64 // data units
	Color     color.NRGBA
	EdgeWidth float64 // points, stroked in Color
	Z         int
}

func (c *Circle) Layer() int { return c.Z }

// Polyline is an open path through two or more points.
type Polyline struct {
	Points []Point
	Color  color.NRGBA
	Width  float64 // points
	Style  LineStyle
	Cap    CapStyle
	Z      int
}

func (p *Polyline) Layer() int { return p.Z }

// Dashes returns the on/off dash pattern in points, or nil for solid lines.
// Patterns scale with the line width.
func (p *Polyline) Dashes() []float64 {
	var base []float64
	switch p.Style {
	case StyleDashed:
		base = []float64{3.7, 1.6}
	case StyleDotted:
		base = []float64{1, 1.65}
	case StyleDashDot:
		base = []float64{6.4, 1.6, 1, 1.6}
	default:
		return nil
	}
	out := make([]float64, len(base))
	for i, d := range base {
		out[i] = d * p.Width
	}
	return out
}

// Text is a single line of text anchored at Pos.
type Text struct {
	Pos     Point
	Content string
	Size    float64 // points
	Weight  FontWeight
	Slant   FontSlant
	HAlign  HAlign
	VAlign  VAlign
	Color   color.NRGBA
	Box     *TextBox // optional background
	Z       int
}

func (t *Text) Layer() int { return t.Z }

// TextBox is the rounded background drawn behind a Text.
type TextBox struct {
	Pad       float64 // fraction of the font size, also the corner radius
	Fill      color.NRGBA
	Edge      color.NRGBA
	EdgeWidth float64 // points
}

// Canvas is a drawing surface with a fixed logical extent mapped onto a
// physical figure size.
type Canvas struct {
	Width  float64 // figure width in inches
	Height float64 // figure height in inches
	Page   color.NRGBA
	Plot   color.NRGBA

	items []Item
}

// NewCanvas creates an empty canvas.
func NewCanvas(width, height float64, page, plot color.NRGBA) *Canvas {
	return &Canvas{Width: width, Height: height, Page: page, Plot: plot}
}

// Add appends items to the canvas.
func (c *Canvas) Add(items ...Item) {
	c.items = append(c.items, items...)
}

// Len returns the number of items on the canvas.
func (c *Canvas) Len() int { return len(c.items) }

// Items returns the items in render order.
func (c *Canvas) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Layer() < out[j].Layer()
	})
	return out
}

// ScaleX returns inches per logical unit along x.
func (c *Canvas) ScaleX() float64 { return c.Width / (LogicalMax - LogicalMin) }

// ScaleY returns inches per logical unit along y.
func (c *Canvas) ScaleY() float64 { return c.Height / (LogicalMax - LogicalMin) }

// ToInches maps a logical point to figure inches, origin top-left, y down.
func (c *Canvas) ToInches(p Point) (x, y float64) {
	x = (p.X - LogicalMin) * c.ScaleX()
	y = (LogicalMax - p.Y) * c.ScaleY()
	return x, y
}

// PlotRect returns the plot area in figure inches.
func (c *Canvas) PlotRect() Rect {
	return Rect{0, 0, c.Width, c.Height}
}
