package mapfile

import (
	"errors"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"map.png", FormatPNG, false},
		{"map", FormatPNG, false},
		{"out/MAP.PNG", FormatPNG, false},
		{"map.jpg", FormatJPEG, false},
		{"map.jpeg", FormatJPEG, false},
		{"map.gif", FormatGIF, false},
		{"map.tif", FormatTIFF, false},
		{"map.tiff", FormatTIFF, false},
		{"map.bmp", FormatBMP, false},
		{"map.svg", FormatSVG, false},
		{"map.pdf", FormatPDF, false},
		{"map.webp", 0, true},
		{"map.txt", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("Expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsRaster(t *testing.T) {
	for _, f := range []Format{FormatPNG, FormatJPEG, FormatGIF, FormatTIFF, FormatBMP} {
		if !f.IsRaster() {
			t.Errorf("%s should be a raster format", f)
		}
	}
	for _, f := range []Format{FormatSVG, FormatPDF} {
		if f.IsRaster() {
			t.Errorf("%s should not be a raster format", f)
		}
	}
}
