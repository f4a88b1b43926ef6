// Package preview shows a subway map canvas in the terminal.
//
// Each terminal cell shows two vertically stacked pixels using the upper
// half block glyph with truecolor foreground and background.
package preview

import (
	"context"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/term"

	"github.com/ha1tch/subwaymap/pkg/mapfile"
	"github.com/ha1tch/subwaymap/pkg/subway"
)

const upperHalf = '▀'

// supersample renders this many times larger than the terminal before
// scaling down, which keeps thin lines and small text legible.
const supersample = 4

var styleHelp = tcell.StyleDefault.Foreground(tcell.ColorGray)

// Viewer draws a canvas onto a tcell screen.
type Viewer struct {
	screen tcell.Screen
	canvas *subway.Canvas

	// cached frame for the last screen size
	frame      *image.RGBA
	cols, rows int
}

// NewViewer creates a viewer for an initialized screen.
func NewViewer(screen tcell.Screen, c *subway.Canvas) *Viewer {
	return &Viewer{screen: screen, canvas: c}
}

// Show displays the canvas until the user quits or ctx is cancelled. It is a
// no-op when stdout is not a terminal.
func Show(ctx context.Context, c *subway.Canvas) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	return NewViewer(screen, c).Run(ctx)
}

// Run is the event loop. It redraws on resize and returns on q, Esc, Ctrl-C
// or cancellation.
func (v *Viewer) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			v.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		if err := v.Draw(); err != nil {
			return err
		}
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if isQuit(ev) {
				return nil
			}
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Draw paints the canvas scaled to the screen, leaving the bottom row for a
// help line.
func (v *Viewer) Draw() error {
	w, h := v.screen.Size()
	v.screen.Clear()
	rows := h - 1
	if w <= 0 || rows <= 0 {
		return nil
	}
	if v.frame == nil || v.cols != w || v.rows != rows {
		frame, err := Frame(v.canvas, w, rows*2)
		if err != nil {
			return err
		}
		v.frame, v.cols, v.rows = frame, w, rows
	}

	page := cellColor(v.canvas.Page)
	b := v.frame.Bounds()
	// Center the frame.
	ox := (w - b.Dx()) / 2
	oy := (rows*2 - b.Dy()) / 4
	for y := 0; y < rows; y++ {
		for x := 0; x < w; x++ {
			px := x - ox
			top, bottom := page, page
			if px >= 0 && px < b.Dx() {
				if py := (y - oy) * 2; py >= 0 && py < b.Dy() {
					top = cellColor(v.frame.RGBAAt(px, py))
				}
				if py := (y-oy)*2 + 1; py >= 0 && py < b.Dy() {
					bottom = cellColor(v.frame.RGBAAt(px, py))
				}
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			v.screen.SetContent(x, y, upperHalf, nil, style)
		}
	}
	drawString(v.screen, 0, h-1, " q: quit ", styleHelp)
	return nil
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// cellColor converts a pixel to a terminal color.
func cellColor(c color.Color) tcell.Color {
	cf, _ := colorful.MakeColor(c)
	r, g, b := cf.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Frame rasterizes the canvas to fit within width x height pixels while
// keeping its aspect ratio.
func Frame(c *subway.Canvas, width, height int) (*image.RGBA, error) {
	crop := mapfile.Bounds(c)
	dpi := math.Min(float64(width)/crop.Width(), float64(height)/crop.Height())
	w, h := mapfile.PixelSize(crop, dpi)
	w, h = min(w, width), min(h, height)

	large, err := mapfile.Rasterize(c, dpi*supersample)
	if err != nil {
		return nil, err
	}
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(frame, frame.Bounds(), large, large.Bounds(), draw.Over, nil)
	return frame, nil
}
