package subway

import "image/color"

// Defaults for the drawing primitives.
const (
	DefaultStationSize = 0.8
	DefaultLineWidth   = 4.0
	DefaultEdgeWidth   = 1.0 // circle edge, points

	interchangeRing = 1.2 // outer ring radius relative to the station size
)

// Options configures a MapRenderer.
type Options struct {
	Width     float64 // figure width in inches
	Height    float64 // figure height in inches
	PageColor color.NRGBA
	PlotColor color.NRGBA
}

// DefaultOptions returns a 20x16 inch figure on a light gray page.
func DefaultOptions() Options {
	return Options{
		Width:     20,
		Height:    16,
		PageColor: ColorPage,
		PlotColor: ColorPlot,
	}
}

// LabelOptions controls AddLabel.
type LabelOptions struct {
	FontSize   float64
	HAlign     HAlign
	VAlign     VAlign
	OffsetX    float64
	OffsetY    float64
	Background bool
	Weight     FontWeight
	Slant      FontSlant
	Color      color.NRGBA
}

// DefaultLabelOptions returns a 9pt left aligned label two units to the right
// of its anchor, vertically centered.
func DefaultLabelOptions() LabelOptions {
	return LabelOptions{
		FontSize: 9,
		HAlign:   HAlignLeft,
		VAlign:   VAlignCenter,
		OffsetX:  2,
		Color:    ColorBlack,
	}
}

// MapRenderer owns a canvas and draws stations, lines, labels and the
// legend onto it.
type MapRenderer struct {
	canvas   *Canvas
	stations map[string]Point
}

// NewMapRenderer creates a renderer with an empty canvas.
func NewMapRenderer(opts Options) *MapRenderer {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.PageColor == (color.NRGBA{}) {
		opts.PageColor = def.PageColor
	}
	if opts.PlotColor == (color.NRGBA{}) {
		opts.PlotColor = def.PlotColor
	}
	return &MapRenderer{
		canvas:   NewCanvas(opts.Width, opts.Height, opts.PageColor, opts.PlotColor),
		stations: make(map[string]Point),
	}
}

// Canvas returns the canvas being drawn on.
func (m *MapRenderer) Canvas() *Canvas { return m.canvas }

// Stations returns a copy of the station positions keyed by name.
func (m *MapRenderer) Stations() map[string]Point {
	out := make(map[string]Point, len(m.stations))
	for k, v := range m.stations {
		out[k] = v
	}
	return out
}

// DrawStation draws a station marker and records its position under name.
// Interchange stations get a white ring 1.2 times the size behind the colored
// disc.
func (m *MapRenderer) DrawStation(x, y float64, name string, c color.NRGBA, interchange bool, size float64) {
	p := Point{x, y}
	if interchange {
		m.canvas.Add(
			&Circle{Center: p, Radius: size * interchangeRing, Color: ColorWhite, EdgeWidth: DefaultEdgeWidth, Z: LayerStation},
			&Circle{Center: p, Radius: size, Color: c, EdgeWidth: DefaultEdgeWidth, Z: LayerInterchange},
		)
	} else {
		m.canvas.Add(&Circle{Center: p, Radius: size, Color: c, EdgeWidth: DefaultEdgeWidth, Z: LayerStation})
	}
	m.stations[name] = p
}

// DrawLine draws a round-capped line through points. Fewer than two points
// draws nothing.
func (m *MapRenderer) DrawLine(points []Point, c color.NRGBA, width float64, style LineStyle) {
	m.addPolyline(points, c, width, style, CapRound)
}

func (m *MapRenderer) addPolyline(points []Point, c color.NRGBA, width float64, style LineStyle, capStyle CapStyle) {
	if len(points) < 2 {
		return
	}
	pts := make([]Point, len(points))
	copy(pts, points)
	m.canvas.Add(&Polyline{Points: pts, Color: c, Width: width, Style: style, Cap: capStyle, Z: LayerLine})
}

// AddLabel places text at (x+OffsetX, y+OffsetY).
func (m *MapRenderer) AddLabel(x, y float64, text string, opts LabelOptions) {
	t := &Text{
		Pos:     Point{x + opts.OffsetX, y + opts.OffsetY},
		Content: text,
		Size:    opts.FontSize,
		Weight:  opts.Weight,
		Slant:   opts.Slant,
		HAlign:  opts.HAlign,
		VAlign:  opts.VAlign,
		Color:   opts.Color,
		Z:       LayerLabel,
	}
	if t.Color == (color.NRGBA{}) {
		t.Color = ColorBlack
	}
	if opts.Background {
		t.Box = &TextBox{
			Pad:       0.3,
			Fill:      WithAlpha(ColorWhite, 0.9),
			Edge:      WithAlpha(ColorGray, 0.9),
			EdgeWidth: DefaultEdgeWidth,
		}
	}
	m.canvas.Add(t)
}

// DrawLegend draws the title block and one swatch per thematic line.
func (m *MapRenderer) DrawLegend() {
	const legendX, legendY = 5.0, 8.0

	title := LabelOptions{FontSize: 24, Weight: WeightBold, VAlign: VAlignBaseline}
	m.AddLabel(legendX, legendY+18, "PsProc Filesystem", title)
	title.FontSize = 20
	m.AddLabel(legendX, legendY+15, "Subway Map", title)

	for i, entry := range ThemeLines {
		y := legendY - float64(i)*2
		m.addPolyline([]Point{{legendX, y}, {legendX + 4, y}}, entry.Color, DefaultLineWidth, StyleSolid, CapProjecting)
		m.AddLabel(legendX+5, y, entry.Name, LabelOptions{FontSize: 10, VAlign: VAlignCenter})
	}
}
