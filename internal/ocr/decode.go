package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/joseph-ayodele/ecoscan/constants"

	// registered decoders
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxPixels matches Pillow's decompression-bomb error threshold.
const DefaultMaxPixels int64 = 178_956_970

type decodedImage struct {
	png    []byte
	format string
	width  int
	height int
}

// decodeImage validates data with the registered decoders and re-encodes it
// as PNG so tesseract always sees one format on stdin. Images larger than
// maxPixels are rejected from their header, before any pixel is allocated.
func decodeImage(data []byte, maxPixels int64) (decodedImage, error) {
	if len(data) == 0 {
		return decodedImage{}, fmt.Errorf("empty image payload")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return decodedImage{}, fmt.Errorf("decode image header: %w", err)
	}
	if px := int64(cfg.Width) * int64(cfg.Height); maxPixels > 0 && px > maxPixels {
		return decodedImage{}, fmt.Errorf("image is %dx%d (%d pixels), limit is %d", cfg.Width, cfg.Height, px, maxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return decodedImage{}, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return decodedImage{}, fmt.Errorf("encode png: %w", err)
	}
	return decodedImage{
		png:    buf.Bytes(),
		format: constants.NormalizeFormat(format),
		width:  b.Dx(),
		height: b.Dy(),
	}, nil
}
