package output

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/df07/skirt/pkg/renderer"
)

// ErrUnsupportedFormat is returned for output extensions without an encoder
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format identifies an image encoding
type Format string

const (
	PNG  Format = "png"
	TIFF Format = "tiff"
	PFM  Format = "pfm"
	PPM  Format = "ppm"
)

// FormatFromPath picks the encoder from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".pfm":
		return PFM, nil
	case ".ppm":
		return PPM, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// SaveFilm writes film to path, creating the parent directory if needed
func SaveFilm(path string, film *renderer.Film) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(file, format, film); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

// Encode writes film to w in the given format
func Encode(w io.Writer, format Format, film *renderer.Film) error {
	switch format {
	case PNG:
		return png.Encode(w, film.Image())
	case TIFF:
		return tiff.Encode(w, film.Image(), &tiff.Options{Compression: tiff.Deflate})
	case PFM:
		return EncodePFM(w, film)
	case PPM:
		return EncodePPM(w, film)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// EncodePFM writes linear radiance as a little-endian color PFM. PFM stores
// the bottom row first.
func EncodePFM(w io.Writer, film *renderer.Film) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "PF\n%d %d\n-1.0\n", film.Width, film.Height); err != nil {
		return err
	}

	row := make([]byte, film.Width*3*4)
	for y := film.Height - 1; y >= 0; y-- {
		for x := 0; x < film.Width; x++ {
			c := film.At(x, y)
			off := x * 12
			binary.LittleEndian.PutUint32(row[off:], math.Float32bits(float32(c.X)))
			binary.LittleEndian.PutUint32(row[off+4:], math.Float32bits(float32(c.Y)))
			binary.LittleEndian.PutUint32(row[off+8:], math.Float32bits(float32(c.Z)))
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodePPM writes the gamma-corrected 8-bit image as plain-text P3
func EncodePPM(w io.Writer, film *renderer.Film) error {
	img := film.Image()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", film.Width, film.Height); err != nil {
		return err
	}
	for y := 0; y < film.Height; y++ {
		for x := 0; x < film.Width; x++ {
			c := img.RGBAAt(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
