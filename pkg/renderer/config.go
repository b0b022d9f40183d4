package renderer

import (
	"fmt"
)

// Config contains image and scheduling settings for a render
type Config struct {
	Width      int   // Image width in pixels
	Height     int   // Image height in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count, 1 = sequential)
	Seed       int64 // Base seed; row j samples from Seed+j
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	width := 1200
	return Config{
		Width:      width,
		Height:     HeightForAspect(width, 16.0/9.0),
		NumWorkers: 0,
		Seed:       42,
	}
}

// HeightForAspect derives an image height from a width and aspect ratio,
// never returning less than one row
func HeightForAspect(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return width
	}
	height := int(float64(width) / aspectRatio)
	if height < 1 {
		height = 1
	}
	return height
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	return nil
}

// AspectRatio returns width / height
func (c Config) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}
