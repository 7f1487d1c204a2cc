package colors

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

//Downsample shrinks the image by the given factor to bound clustering cost,
//which grows superlinearly with pixel count. Factor must be in (0,1], values
//outside that range would produce a degenerate zero-pixel image and are
//rejected rather than clamped silently.
func Downsample(img image.Image, factor float64) (image.Image, error) {
	if factor <= 0 || factor > 1 {
		return nil, fmt.Errorf("Downsample: factor %v out of range (0,1]", factor)
	}

	bounds := img.Bounds()
	width := uint(float64(bounds.Dx()) * factor)
	height := uint(float64(bounds.Dy()) * factor)

	//a tiny source image with a small factor still needs at least one pixel
	if width == 0 {
		width = 1
	}
	if height == 0 {
		height = 1
	}

	return resize.Resize(width, height, img, resize.Bilinear), nil
}

//Pixels flattens an image into RGB triplets, dropping alpha
func Pixels(img image.Image) [][3]uint8 {
	bounds := img.Bounds()
	pixels := make([][3]uint8, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
		}
	}

	return pixels
}
