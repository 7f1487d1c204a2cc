package colors

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/draw"

	//register the decoders for every accepted upload format
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

//Load decodes an uploaded image and normalizes it to RGBA so the rest of the
//pipeline never has to care about the source color mode
func Load(data []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("Load: could not decode image, got '%v'", err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	return rgba, nil
}

//Hash returns the content identity of a decoded image, used as the cache key
//prefix. Two uploads with identical pixels hash the same regardless of the
//container format they arrived in.
func Hash(img *image.RGBA) string {
	sum := sha256.Sum256(img.Pix)
	return hex.EncodeToString(sum[:])
}
