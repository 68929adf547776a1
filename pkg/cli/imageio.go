package cli

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fepozopo/rasterlab/pkg/stdimg"
	"golang.org/x/image/bmp"
)

// decodeFallback decodes formats the image package does not know. It is set
// by the imagick build.
var decodeFallback func(data []byte) (image.Image, error)

// saveFormats maps output extensions to encoders.
var saveFormats = map[string]func(w io.Writer, img image.Image) error{
	".bmp":  bmp.Encode,
	".png":  png.Encode,
	".jpg":  encodeJPEG,
	".jpeg": encodeJPEG,
	".gif":  encodeGIF,
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 92})
}

func encodeGIF(w io.Writer, img image.Image) error {
	return gif.Encode(w, img, nil)
}

// LoadImage reads and decodes path. BMP, PNG, JPEG and GIF are always
// available; other formats need the imagick build.
func LoadImage(path string) (image.Image, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	img, format, err := image.Decode(bytes.NewReader(b))
	if err == nil {
		return img, format, nil
	}
	if decodeFallback != nil {
		if img, ferr := decodeFallback(b); ferr == nil {
			return img, "magick", nil
		}
	}
	return nil, "", fmt.Errorf("failed to decode %s: %w", path, err)
}

// LoadRaster reads path into a raster.
func LoadRaster(path string) (*stdimg.Raster, error) {
	img, _, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return stdimg.FromImage(img)
}

// SaveImage encodes img by the extension of path, creating parent
// directories as needed. Unknown extensions are written as BMP.
func SaveImage(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	enc, ok := saveFormats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		enc = saveFormats[".bmp"]
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := enc(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

// ResolveOutputPath picks where a result is written. An empty out becomes
// <outputDir>/<command>.bmp, and a path without a known image extension gets
// .bmp appended.
func ResolveOutputPath(out, outputDir, command string) string {
	if strings.TrimSpace(out) == "" {
		return filepath.Join(outputDir, command+".bmp")
	}
	if _, ok := saveFormats[strings.ToLower(filepath.Ext(out))]; !ok {
		return out + ".bmp"
	}
	return out
}

// ImageInfo returns a one line summary of r.
func ImageInfo(r *stdimg.Raster) string {
	return fmt.Sprintf("Width: %d, Height: %d, Channels: %d", r.Width, r.Height, r.Channels)
}
