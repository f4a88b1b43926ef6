package mapfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ha1tch/subwaymap/pkg/subway"
)

// DefaultDPI is the raster resolution used when none is given.
const DefaultDPI = 300

// SaveOptions configures Render and Save.
type SaveOptions struct {
	DPI float64 // raster formats only
}

// DefaultSaveOptions returns 300 DPI.
func DefaultSaveOptions() SaveOptions {
	return SaveOptions{DPI: DefaultDPI}
}

// Render writes the canvas to w in format f.
func Render(w io.Writer, c *subway.Canvas, f Format, opts SaveOptions) error {
	switch f {
	case FormatSVG:
		return WriteSVG(w, c)
	case FormatPDF:
		return WritePDF(w, c)
	}
	img, err := Rasterize(c, opts.DPI)
	if err != nil {
		return err
	}
	return EncodeRaster(w, img, f)
}

// Save renders the canvas to path, inferring the format from the extension.
// The file is written to a temporary name in the same directory and renamed
// into place, so a failure never leaves a partial file behind.
func Save(c *subway.Canvas, path string, opts SaveOptions) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Render(&buf, c, f, opts); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			tmp.Close()
			os.Remove(name)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(name, path); err != nil {
		return err
	}
	ok = true
	return nil
}
