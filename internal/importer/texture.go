package importer

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	"os"

	// Registered image decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/quantmind-br/xnpak/internal/domain"
)

// Texture is a decoded image in straight-alpha RGBA8
type Texture struct {
	Width  int
	Height int
	Pixels []byte // Width*Height*4 bytes, row-major
}

// DecodeTexture reads an image file and converts it to RGBA8
func DecodeTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImportIO, err)
	}
	defer f.Close()

	src, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", domain.ErrUnsupportedEncoding, err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var dst *image.NRGBA
	if n, ok := src.(*image.NRGBA); ok && n.Stride == w*4 && bounds.Min == (image.Point{}) {
		dst = n
	} else {
		dst = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	}

	return &Texture{
		Width:  w,
		Height: h,
		Pixels: dst.Pix[:w*h*4],
	}, nil
}

// ImportTexture returns the raw interleaved RGBA8 pixels of an image file
func ImportTexture(path string) ([]byte, error) {
	tex, err := DecodeTexture(path)
	if err != nil {
		return nil, err
	}
	return tex.Pixels, nil
}
