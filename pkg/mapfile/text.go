package mapfile

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/subwaymap/pkg/subway"
)

type fontKey struct {
	weight subway.FontWeight
	slant  subway.FontSlant
}

var (
	fontsOnce sync.Once
	fonts     map[fontKey]*opentype.Font
)

// ttf returns the embedded Go font file for a weight and slant.
func ttf(k fontKey) []byte {
	switch {
	case k.weight == subway.WeightBold && k.slant == subway.SlantItalic:
		return gobolditalic.TTF
	case k.weight == subway.WeightBold:
		return gobold.TTF
	case k.slant == subway.SlantItalic:
		return goitalic.TTF
	}
	return goregular.TTF
}

func loadFont(k fontKey) *opentype.Font {
	fontsOnce.Do(func() {
		fonts = make(map[fontKey]*opentype.Font)
		for _, w := range []subway.FontWeight{subway.WeightNormal, subway.WeightBold} {
			for _, s := range []subway.FontSlant{subway.SlantNormal, subway.SlantItalic} {
				key := fontKey{w, s}
				f, err := opentype.Parse(ttf(key))
				if err != nil {
					panic(err) // should never happen with embedded fonts
				}
				fonts[key] = f
			}
		}
	})
	return fonts[k]
}

type faceKey struct {
	fontKey
	size float64
}

// faceCache holds font faces for one output resolution. Faces are not safe
// for concurrent use, so each render owns its cache.
type faceCache struct {
	dpi   float64
	faces map[faceKey]font.Face
}

func newFaceCache(dpi float64) *faceCache {
	return &faceCache{dpi: dpi, faces: make(map[faceKey]font.Face)}
}

func (fc *faceCache) face(t *subway.Text) font.Face {
	key := faceKey{fontKey{t.Weight, t.Slant}, t.Size}
	if f, ok := fc.faces[key]; ok {
		return f
	}
	f, err := opentype.NewFace(loadFont(key.fontKey), &opentype.FaceOptions{
		Size:    t.Size,
		DPI:     fc.dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		panic(err)
	}
	fc.faces[key] = f
	return f
}

func (fc *faceCache) close() {
	for _, f := range fc.faces {
		f.Close()
	}
}

// textLayout is a positioned line of text in device units.
type textLayout struct {
	x, baseline float64     // glyph origin
	anchor      float64     // anchor x, the left, center or right edge per HAlign
	ink         subway.Rect // advance width by ascent+descent
	frame       subway.Rect // background box, equal to ink without one
	radius      float64     // background corner radius
	edge        float64     // background edge width
}

// extent is everything the text paints, including its background edge.
func (l textLayout) extent() subway.Rect {
	return l.frame.Inset(l.edge / 2)
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// layout measures t and applies its alignment.
func (fc *faceCache) layout(tr transform, t *subway.Text) textLayout {
	face := fc.face(t)
	width := toFloat(font.MeasureString(face, t.Content))
	m := face.Metrics()
	ascent, descent := toFloat(m.Ascent), toFloat(m.Descent)

	ax, ay := tr.point(t.Pos)
	x := ax
	switch t.HAlign {
	case subway.HAlignCenter:
		x = ax - width/2
	case subway.HAlignRight:
		x = ax - width
	}
	baseline := ay
	switch t.VAlign {
	case subway.VAlignCenter:
		baseline = ay + (ascent-descent)/2
	case subway.VAlignTop:
		baseline = ay + ascent
	case subway.VAlignBottom:
		baseline = ay - descent
	}

	l := textLayout{
		x:        x,
		anchor:   ax,
		baseline: baseline,
		ink:      subway.Rect{MinX: x, MinY: baseline - ascent, MaxX: x + width, MaxY: baseline + descent},
	}
	l.frame = l.ink
	if t.Box != nil {
		pad := tr.pt(t.Box.Pad * t.Size)
		l.frame = l.ink.Inset(pad)
		l.radius = pad
		l.edge = tr.pt(t.Box.EdgeWidth)
	}
	return l
}
