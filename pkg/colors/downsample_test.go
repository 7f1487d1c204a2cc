package colors

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestDownsample_Dimensions(t *testing.T) {
	img := solidImage(200, 100, color.RGBA{10, 20, 30, 255})

	tests := []struct {
		factor  float64
		width   int
		height  int
	}{
		{1.0, 200, 100},
		{0.5, 100, 50},
		{0.1, 20, 10},
	}

	for _, tt := range tests {
		small, err := Downsample(img, tt.factor)
		if err != nil {
			t.Fatalf("Downsample(%v) failed, got '%v'", tt.factor, err)
		}
		b := small.Bounds()
		if b.Dx() != tt.width || b.Dy() != tt.height {
			t.Errorf("Downsample(%v) = %dx%d, expected %dx%d", tt.factor, b.Dx(), b.Dy(), tt.width, tt.height)
		}
	}
}

func TestDownsample_RejectsBadFactor(t *testing.T) {
	img := solidImage(10, 10, color.RGBA{0, 0, 0, 255})

	for _, factor := range []float64{0, -0.5, 1.5} {
		if _, err := Downsample(img, factor); err == nil {
			t.Errorf("Downsample(%v) did not fail", factor)
		}
	}
}

func TestDownsample_TinyImageKeepsOnePixel(t *testing.T) {
	img := solidImage(3, 3, color.RGBA{0, 0, 0, 255})

	small, err := Downsample(img, 0.1)
	if err != nil {
		t.Fatalf("Downsample failed, got '%v'", err)
	}
	if small.Bounds().Dx() < 1 || small.Bounds().Dy() < 1 {
		t.Errorf("downsampled image degenerated to %v", small.Bounds())
	}
}

func TestPixels_Flattens(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 0, 255, 255})

	pixels := Pixels(img)
	if len(pixels) != 2 {
		t.Fatalf("got %d pixels, expected 2", len(pixels))
	}
	if pixels[0] != [3]uint8{255, 0, 0} || pixels[1] != [3]uint8{0, 0, 255} {
		t.Errorf("pixels = %v", pixels)
	}
}

func TestLoad_NormalizesToRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode failed, got '%v'", err)
	}

	img, err := Load(buf.Bytes())
	if err != nil {
		t.Fatalf("Load failed, got '%v'", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}
}

func TestLoad_RejectsGarbage(t *testing.T) {
	if _, err := Load([]byte("definitely not an image")); err == nil {
		t.Errorf("Load of garbage bytes did not fail")
	}
}

func TestHash_ContentIdentity(t *testing.T) {
	a := solidImage(10, 10, color.RGBA{1, 2, 3, 255})
	b := solidImage(10, 10, color.RGBA{1, 2, 3, 255})
	c := solidImage(10, 10, color.RGBA{3, 2, 1, 255})

	if Hash(a) != Hash(b) {
		t.Errorf("identical images hash differently")
	}
	if Hash(a) == Hash(c) {
		t.Errorf("different images hash identically")
	}
}
