package renderer

import (
	"image"
	"image/color"
	"testing"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Red 0.2126 + green 0.7152 + blue 0.0722 + black 0 = 1.0, averaged over 4
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminance %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_Empty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if lum := CalculateAverageLuminance(img); lum != 0 {
		t.Errorf("Expected 0 for empty image, got %f", lum)
	}
}

func TestRenderStats_Add(t *testing.T) {
	var stats RenderStats
	stats.add(10, 40)
	stats.add(10, 20)

	if stats.TotalPixels != 20 || stats.TotalSamples != 60 || stats.Rows != 2 {
		t.Errorf("Unexpected totals: %+v", stats)
	}
	if stats.AverageSamples != 3 {
		t.Errorf("Expected average 3, got %f", stats.AverageSamples)
	}
}

func TestFlipVertical(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(y), uint8(x), 0, 255})
		}
	}

	flipped := FlipVertical(img)
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			got := flipped.RGBAAt(x, y)
			want := img.RGBAAt(x, 2-y)
			if got != want {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}
