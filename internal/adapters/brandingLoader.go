package adapters

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/morgansundqvist/musecase/internal/ports"
)

const (
	BrandingWidth  = 200
	BrandingHeight = 100
)

// BrandingLoader prepares the sidebar image once at startup.
type BrandingLoader struct {
	reader ports.FileReader
	width  int
	height int
}

func NewBrandingLoader(reader ports.FileReader) *BrandingLoader {
	return &BrandingLoader{reader: reader, width: BrandingWidth, height: BrandingHeight}
}

// Load decodes a JPEG or PNG and returns it resized as PNG bytes.
func (b *BrandingLoader) Load(path string) ([]byte, error) {
	raw, err := b.reader.ReadFileContent(path)
	if err != nil {
		return nil, fmt.Errorf("read branding image %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode branding image %s: %w", path, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, dst); err != nil {
		return nil, fmt.Errorf("encode branding image: %w", err)
	}
	return out.Bytes(), nil
}
