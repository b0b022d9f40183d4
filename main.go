package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/luminara/pkg/core"
	"github.com/df07/luminara/pkg/renderer"
	"github.com/df07/luminara/pkg/scene"
)

func main() {
	defaults := renderer.DefaultConfig()
	sampling := scene.DefaultSamplingConfig()

	// Parse command line flags
	sceneType := flag.String("scene", "book-cover", "Scene type: "+strings.Join(scene.Names(), ", "))
	width := flag.Int("width", defaults.Width, "Image width in pixels")
	height := flag.Int("height", 0, "Image height in pixels (0 = derive from 16:9 aspect ratio)")
	samples := flag.Int("samples", sampling.SamplesPerPixel, "Samples per pixel")
	depth := flag.Int("depth", sampling.MaxDepth, "Maximum ray bounce depth")
	seed := flag.Int64("seed", defaults.Seed, "Random seed for scene layout and sampling")
	workers := flag.Int("workers", defaults.NumWorkers, "Number of parallel workers (0 = CPU count, 1 = sequential)")
	objPath := flag.String("obj", "", "Wavefront OBJ file for the mesh scene")
	output := flag.String("output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Luminara Raytracer")
		fmt.Println("Usage: luminara [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  simple     - Three spheres and two triangles on a green ground")
		fmt.Println("  book-cover - Random field of small spheres around three large ones")
		fmt.Println("  mesh       - OBJ mesh (-obj) on a grey ground, octahedron by default")
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.png")
		return
	}

	config := renderer.Config{
		Width:      *width,
		Height:     *height,
		NumWorkers: *workers,
		Seed:       *seed,
	}
	if config.Height == 0 {
		config.Height = renderer.HeightForAspect(config.Width, 16.0/9.0)
	}
	if err := config.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	fmt.Println("Starting Luminara Raytracer...")
	logger := renderer.NewDefaultLogger()

	selectedScene, err := createScene(*sceneType, config, *objPath, logger)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}
	selectedScene.SamplingConfig = scene.SamplingConfig{
		SamplesPerPixel: *samples,
		MaxDepth:        *depth,
	}
	fmt.Printf("Using %s scene (%d objects)...\n", *sceneType, selectedScene.GetPrimitiveCount())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	raytracer := renderer.NewRaytracer(selectedScene, config, logger)
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render completed in %v\n", stats.Elapsed)
	fmt.Printf("Samples per pixel: %.1f (%d workers), average luminance %.3f\n",
		stats.AverageSamples, stats.NumWorkers, renderer.CalculateAverageLuminance(img))

	filename := *output
	if filename == "" {
		// Create timestamped filename
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", *sceneType, fmt.Sprintf("render_%s.png", timestamp))
	}

	if err := savePNG(filename, img); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene builds a named scene sized for the render configuration
func createScene(sceneType string, config renderer.Config, objPath string, logger core.Logger) (*scene.Scene, error) {
	return scene.New(sceneType, scene.Options{
		AspectRatio: config.AspectRatio(),
		Seed:        config.Seed,
		Mesh:        scene.MeshConfig{Path: objPath},
		Logger:      logger,
	})
}

// savePNG writes a rendered image with its top scanline first
func savePNG(filename string, img *image.RGBA) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, renderer.FlipVertical(img)); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}
