package mapfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ha1tch/subwaymap/pkg/subway"
)

// smallCanvas exercises every item type while staying cheap to render.
func smallCanvas() *subway.Canvas {
	m := subway.NewMapRenderer(subway.Options{Width: 4, Height: 3})
	m.DrawLine([]subway.Point{{X: 10, Y: 10}, {X: 50, Y: 50}, {X: 90, Y: 50}}, subway.ColorNetwork, 4, subway.StyleSolid)
	m.DrawLine([]subway.Point{{X: 10, Y: 80}, {X: 90, Y: 80}}, subway.ColorConfig, 2, subway.StyleDashed)
	m.DrawStation(50, 50, "hub", subway.ColorBlack, true, 3)
	m.DrawStation(90, 50, "end", subway.ColorNetwork, false, 2)
	opts := subway.DefaultLabelOptions()
	opts.Background = true
	m.AddLabel(50, 50, "hub <&>", opts)
	return m.Canvas()
}

func TestSaveFormats(t *testing.T) {
	tests := []struct {
		file  string
		magic string
	}{
		{"map.png", "\x89PNG\r\n\x1a\n"},
		{"map", "\x89PNG\r\n\x1a\n"},
		{"map.jpg", "\xff\xd8\xff"},
		{"map.gif", "GIF8"},
		{"map.tiff", "II*\x00"},
		{"map.bmp", "BM"},
		{"map.svg", "<?xml"},
		{"map.pdf", "%PDF-"},
	}

	c := smallCanvas()
	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := Save(c, path, SaveOptions{DPI: 30}); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Reading output: %v", err)
			}
			if !bytes.HasPrefix(data, []byte(tt.magic)) {
				t.Errorf("Expected %q prefix, got %q", tt.magic, data[:min(len(data), 8)])
			}
		})
	}

	// Temporary files never survive a successful save.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(tests) {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("Expected %d files, got %v", len(tests), names)
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.svg")
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Save(smallCanvas(), path, DefaultSaveOptions()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "stale") || !strings.Contains(string(data), "<svg") {
		t.Error("Expected the existing file to be replaced")
	}
}

func TestSaveErrors(t *testing.T) {
	dir := t.TempDir()
	c := smallCanvas()

	tests := []struct {
		name    string
		path    string
		opts    SaveOptions
		wantErr error
	}{
		{"unknown extension", filepath.Join(dir, "map.webp"), DefaultSaveOptions(), ErrUnsupportedFormat},
		{"zero dpi", filepath.Join(dir, "map.png"), SaveOptions{DPI: 0}, ErrInvalidDPI},
		{"missing directory", filepath.Join(dir, "missing", "map.png"), DefaultSaveOptions(), os.ErrNotExist},
		{"too large", filepath.Join(dir, "huge.png"), SaveOptions{DPI: 40000}, ErrImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Save(c, tt.path, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Save error = %v, want %v", err, tt.wantErr)
			}
			if _, err := os.Stat(tt.path); !os.IsNotExist(err) {
				t.Errorf("Expected no file at %s", tt.path)
			}
		})
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected an empty directory after failures, got %d entries", len(entries))
	}
}

func TestSVGIgnoresDPI(t *testing.T) {
	c := smallCanvas()
	var a, b bytes.Buffer
	if err := Render(&a, c, FormatSVG, SaveOptions{DPI: 72}); err != nil {
		t.Fatal(err)
	}
	if err := Render(&b, c, FormatSVG, SaveOptions{DPI: 600}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("SVG output should not depend on DPI")
	}
}

func TestDeterministicOutput(t *testing.T) {
	c := mapCanvas()
	for _, f := range []Format{FormatPNG, FormatSVG} {
		t.Run(f.String(), func(t *testing.T) {
			var a, b bytes.Buffer
			if err := Render(&a, c, f, SaveOptions{DPI: 20}); err != nil {
				t.Fatal(err)
			}
			if err := Render(&b, c, f, SaveOptions{DPI: 20}); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(a.Bytes(), b.Bytes()) {
				t.Errorf("Two renders of the same map differ (%d vs %d bytes)", a.Len(), b.Len())
			}
		})
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, mapCanvas()); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("Expected PDF header, got %q", buf.Bytes()[:min(buf.Len(), 8)])
	}
	if !bytes.Contains(buf.Bytes(), []byte("%%EOF")) {
		t.Error("Expected PDF trailer")
	}
}
