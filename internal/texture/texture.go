// Package texture loads image files from disk into the in-memory format
// internal/drawers samples from, replacing texture.go's LoadTexture, which
// read the same way via image.Decode but panicked through log.Fatal on
// error and kept its own parallel Texture/Get/ConvertPosition type instead
// of handing the pixels to a sampler table.
package texture

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/ghetty3d/polycore/internal/drawers"
)

// Load decodes the image file at path and returns it as a drawers.Texture,
// row-major top-to-bottom like image.Image itself.
func Load(path string) (*drawers.Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]drawers.Color, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[y*width+x] = drawers.Color{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: uint8(a >> 8),
			}
		}
	}

	return &drawers.Texture{Width: width, Height: height, Pixels: pixels}, nil
}
