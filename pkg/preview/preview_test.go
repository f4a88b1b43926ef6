package preview

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/ha1tch/subwaymap/pkg/subway"
)

func testCanvas() *subway.Canvas {
	m := subway.NewMapRenderer(subway.DefaultOptions())
	m.GenerateMap()
	return m.Canvas()
}

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func TestFrameFits(t *testing.T) {
	c := testCanvas()
	tests := []struct {
		w, h int
	}{
		{80, 48},
		{40, 100},
		{200, 20},
	}

	for _, tt := range tests {
		frame, err := Frame(c, tt.w, tt.h)
		if err != nil {
			t.Fatalf("Frame(%d, %d) failed: %v", tt.w, tt.h, err)
		}
		b := frame.Bounds()
		if b.Dx() > tt.w || b.Dy() > tt.h {
			t.Errorf("Frame(%d, %d) is %dx%d, larger than requested", tt.w, tt.h, b.Dx(), b.Dy())
		}
		// One dimension fills the space.
		if b.Dx() < tt.w-1 && b.Dy() < tt.h-1 {
			t.Errorf("Frame(%d, %d) is %dx%d, expected one side to fit exactly", tt.w, tt.h, b.Dx(), b.Dy())
		}
	}
}

func TestDraw(t *testing.T) {
	s := newTestScreen(t, 60, 25)
	v := NewViewer(s, testCanvas())
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	for _, pos := range [][2]int{{0, 0}, {30, 12}, {59, 23}} {
		r, _, _, _ := s.GetContent(pos[0], pos[1])
		if r != upperHalf {
			t.Errorf("Cell %v = %q, want %q", pos, r, upperHalf)
		}
	}
	if r, _, _, _ := s.GetContent(1, 24); r != 'q' {
		t.Errorf("Expected help line on the last row, got %q", r)
	}

	// The frame is cached until the size changes.
	frame := v.frame
	if err := v.Draw(); err != nil {
		t.Fatal(err)
	}
	if v.frame != frame {
		t.Error("Expected cached frame to be reused")
	}
	s.SetSize(30, 12)
	if err := v.Draw(); err != nil {
		t.Fatal(err)
	}
	if v.frame == frame || v.cols != 30 || v.rows != 11 {
		t.Errorf("Expected frame rebuilt for 30x11, got %dx%d", v.cols, v.rows)
	}
}

func TestDrawTinyScreen(t *testing.T) {
	s := newTestScreen(t, 10, 1)
	v := NewViewer(s, testCanvas())
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if v.frame != nil {
		t.Error("No frame should be rendered without room for the map")
	}
}

func TestRunQuits(t *testing.T) {
	keys := []struct {
		name string
		key  tcell.Key
		r    rune
	}{
		{"q", tcell.KeyRune, 'q'},
		{"Q", tcell.KeyRune, 'Q'},
		{"escape", tcell.KeyEscape, 0},
		{"ctrl-c", tcell.KeyCtrlC, 0},
	}

	for _, k := range keys {
		t.Run(k.name, func(t *testing.T) {
			s := newTestScreen(t, 40, 20)
			s.InjectKey(k.key, k.r, tcell.ModNone)

			done := make(chan error, 1)
			go func() { done <- NewViewer(s, testCanvas()).Run(context.Background()) }()
			select {
			case err := <-done:
				if err != nil {
					t.Errorf("Run returned %v", err)
				}
			case <-time.After(10 * time.Second):
				t.Fatal("Run did not return after quit key")
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	s := newTestScreen(t, 40, 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- NewViewer(s, testCanvas()).Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestShowWithoutTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("stdout is a terminal")
	}
	if err := Show(context.Background(), testCanvas()); err != nil {
		t.Errorf("Show should be a no-op without a terminal, got %v", err)
	}
}
