//go:build imagick

package cli

import (
	"bytes"
	"image"
	"image/png"

	"gopkg.in/gographics/imagick.v3/imagick"
)

func init() {
	imagick.Initialize()
	decodeFallback = decodeWithMagick
}

// decodeWithMagick converts any format ImageMagick reads to PNG and decodes
// that.
func decodeWithMagick(data []byte) (image.Image, error) {
	mw := imagick.NewMagickWand()
	defer mw.Destroy()
	if err := mw.ReadImageBlob(data); err != nil {
		return nil, err
	}
	if err := mw.SetImageFormat("PNG"); err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(mw.GetImageBlob()))
}
