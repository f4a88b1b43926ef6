package mapfile

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Format is an output file format.
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatGIF
	FormatTIFF
	FormatBMP
	FormatSVG
	FormatPDF
)

// ErrUnsupportedFormat is returned for an output extension with no encoder.
var ErrUnsupportedFormat = errors.New("unsupported output format")

var extensions = map[string]Format{
	"":      FormatPNG,
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".bmp":  FormatBMP,
	".svg":  FormatSVG,
	".pdf":  FormatPDF,
}

// FormatFromPath infers the format from the file extension. A path without
// an extension is written as PNG.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extensions[ext]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return f, nil
}

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	case FormatTIFF:
		return "tiff"
	case FormatBMP:
		return "bmp"
	case FormatSVG:
		return "svg"
	case FormatPDF:
		return "pdf"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// IsRaster reports whether the format is a pixel image whose size depends on
// the DPI.
func (f Format) IsRaster() bool {
	return f != FormatSVG && f != FormatPDF
}

// EncodeRaster writes img in a raster format.
func EncodeRaster(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case FormatGIF:
		return gif.Encode(w, img, &gif.Options{NumColors: 256, Drawer: draw.FloydSteinberg})
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case FormatBMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %s is not a raster format", ErrUnsupportedFormat, f)
}
