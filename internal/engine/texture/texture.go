// Package texture decodes the ground and water textures of a map to RGBA.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"path"
	"strings"

	"golang.org/x/image/bmp"
)

// Texture errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported texture format")
	ErrInvalidTGA        = errors.New("invalid TGA data")
)

// Decode decodes a texture by the extension of name. BMP and TGA textures
// have the RO magenta key made transparent; JPEG textures are opaque.
func Decode(name string, data []byte) (*image.RGBA, error) {
	var (
		img image.Image
		err error
		key bool
	)
	switch ext := strings.ToLower(path.Ext(strings.ReplaceAll(name, "\\", "/"))); ext {
	case ".bmp":
		img, err = bmp.Decode(bytes.NewReader(data))
		key = true
	case ".tga":
		img, err = DecodeTGA(data)
		key = true
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	rgba := ToRGBA(img)
	if key {
		ApplyMagentaKey(rgba)
	}
	return rgba, nil
}

// ToRGBA converts img to *image.RGBA, returning it unchanged when it already
// is one.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

// IsMagentaKey reports whether a color is the RO transparency key. The
// tolerance absorbs BMP encoder variations.
func IsMagentaKey(r, g, b uint8) bool {
	return r >= 250 && g <= 10 && b >= 250
}

// ApplyMagentaKey makes magenta texels transparent black, so filtering does
// not bleed the key color into neighbours.
func ApplyMagentaKey(img *image.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if IsMagentaKey(img.Pix[i], img.Pix[i+1], img.Pix[i+2]) {
			copy(img.Pix[i:i+4], []byte{0, 0, 0, 0})
		}
	}
}

// TGA image types.
const (
	tgaTypeTrueColor = 2
	tgaTypeRLE       = 10
)

// DecodeTGA decodes an uncompressed or RLE compressed 24/32-bit TGA image.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("%w: header truncated", ErrInvalidTGA)
	}

	idLength := int(data[0])
	colorMapType, imageType := data[1], data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	switch {
	case colorMapType != 0:
		return nil, fmt.Errorf("%w: color-mapped images", ErrUnsupportedFormat)
	case imageType != tgaTypeTrueColor && imageType != tgaTypeRLE:
		return nil, fmt.Errorf("%w: TGA type %d", ErrUnsupportedFormat, imageType)
	case bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("%w: TGA depth %d", ErrUnsupportedFormat, bpp)
	case 18+idLength > len(data):
		return nil, fmt.Errorf("%w: id truncated", ErrInvalidTGA)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	pixels := data[18+idLength:]
	size := bpp / 8
	total := width * height

	set := func(n int, px []byte) {
		x, y := n%width, n/width
		if !topToBottom {
			y = height - 1 - y
		}
		c := color.RGBA{R: px[2], G: px[1], B: px[0], A: 255}
		if size == 4 {
			c.A = px[3]
		}
		img.SetRGBA(x, y, c)
	}

	if imageType == tgaTypeTrueColor {
		if len(pixels) < total*size {
			return nil, fmt.Errorf("%w: pixel data truncated", ErrInvalidTGA)
		}
		for n := range total {
			set(n, pixels[n*size:])
		}
		return img, nil
	}

	n, pos := 0, 0
	for n < total {
		if pos >= len(pixels) {
			return nil, fmt.Errorf("%w: RLE data truncated", ErrInvalidTGA)
		}
		packet := pixels[pos]
		pos++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			if pos+size > len(pixels) {
				return nil, fmt.Errorf("%w: RLE data truncated", ErrInvalidTGA)
			}
			for i := 0; i < count && n < total; i++ {
				set(n, pixels[pos:])
				n++
			}
			pos += size
			continue
		}

		for i := 0; i < count && n < total; i++ {
			if pos+size > len(pixels) {
				return nil, fmt.Errorf("%w: RLE data truncated", ErrInvalidTGA)
			}
			set(n, pixels[pos:])
			pos += size
			n++
		}
	}
	return img, nil
}
