package sprite

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// Texture errors.
var (
	// ErrInvalidTextureData is returned when texture pixel data does not
	// match the declared dimensions.
	ErrInvalidTextureData = errors.New("sprite: texture data does not match dimensions")

	// ErrInvalidTextureSize is returned when a texture has a zero or
	// negative dimension.
	ErrInvalidTextureSize = errors.New("sprite: texture dimensions must be > 0")
)

// TextureID identifies a texture within a layer. IDs are assigned by the
// host application and must be unique per layer.
type TextureID uint32

// Texture is the CPU-side pixel data registered with a layer. The pixels
// live in the layer's atlas once AddTexture succeeds; the Texture itself is
// retained so the atlas can be rebuilt when more textures arrive.
type Texture struct {
	id     TextureID
	width  int
	height int
	img    *image.RGBA
}

// NewTexture creates a texture from raw RGBA pixel data. pixels must hold
// exactly width*height*4 bytes in row-major RGBA order.
func NewTexture(id TextureID, width, height int, pixels []byte) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidTextureData, len(pixels), width*height*4)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)

	return &Texture{id: id, width: width, height: height, img: img}, nil
}

// NewTextureFromImage creates a texture from an image. The image is copied
// into RGBA form; the source is not retained.
func NewTextureFromImage(id TextureID, src image.Image) (*Texture, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), src, bounds.Min, draw.Src)

	return &Texture{id: id, width: w, height: h, img: img}, nil
}

// ID returns the texture's identifier.
func (t *Texture) ID() TextureID { return t.id }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Image returns the texture's pixel data.
func (t *Texture) Image() *image.RGBA { return t.img }
