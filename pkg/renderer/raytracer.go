package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/df07/luminara/pkg/core"
	"github.com/df07/luminara/pkg/integrator"
	"github.com/df07/luminara/pkg/scene"
)

// Raytracer handles the rendering process
type Raytracer struct {
	scene      *scene.Scene
	width      int
	height     int
	config     Config
	sampling   scene.SamplingConfig
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a new raytracer using a path tracing integrator.
// The scene's sampling settings are captured here; later changes to
// scene.SamplingConfig do not affect this raytracer.
func NewRaytracer(scene *scene.Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = discardLogger{}
	}
	return &Raytracer{
		scene:      scene,
		width:      config.Width,
		height:     config.Height,
		config:     config,
		sampling:   scene.SamplingConfig,
		integrator: integrator.NewPathTracingIntegrator(scene.SamplingConfig),
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integrator integrator.Integrator) {
	rt.integrator = integrator
}

// vec3ToColor converts a linear color to RGBA with gamma 2 correction and clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0).Sqrt()

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// newImage allocates the output buffer; row y of the image is scanline y,
// counted from the bottom of the view
func (rt *Raytracer) newImage() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
}

// RenderRow renders scanline j into img and returns the number of samples taken
func (rt *Raytracer) RenderRow(img *image.RGBA, j int, sampler core.Sampler) int {
	camera := rt.scene.Camera
	samplesPerPixel := rt.sampling.SamplesPerPixel
	samples := 0

	for i := 0; i < rt.width; i++ {
		// Accumulate color from multiple samples
		colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}

		for sample := 0; sample < samplesPerPixel; sample++ {
			// Convert pixel coordinates to normalized coordinates with jitter
			s := (float64(i) + sampler.Get1D()) / float64(rt.width)
			t := (float64(j) + sampler.Get1D()) / float64(rt.height)

			ray := camera.GetRay(s, t, sampler)
			colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.scene, sampler))
			samples++
		}

		if samplesPerPixel > 0 {
			colorAccum = colorAccum.Multiply(1.0 / float64(samplesPerPixel))
		}
		img.SetRGBA(i, j, vec3ToColor(colorAccum))
	}

	return samples
}

// RenderPass renders the whole image on the calling goroutine.
// Each row draws from its own seeded sampler, so the result matches a
// parallel render with the same seed. The context is checked before each row.
func (rt *Raytracer) RenderPass(ctx context.Context) (*image.RGBA, RenderStats, error) {
	start := time.Now()
	img := rt.newImage()
	stats := RenderStats{NumWorkers: 1}
	interval := progressInterval(rt.height)

	for j := rt.height - 1; j >= 0; j-- {
		if err := ctx.Err(); err != nil {
			return nil, stats, fmt.Errorf("render canceled after %d of %d rows: %w", stats.Rows, rt.height, err)
		}
		if (rt.height-1-j)%interval == 0 {
			rt.logger.Printf("Scanlines remaining: %d\n", j+1)
		}

		samples := rt.RenderRow(img, j, core.NewSeededSampler(rt.config.Seed, j))
		stats.add(rt.width, samples)
	}

	stats.Elapsed = time.Since(start)
	rt.logger.Printf("Done: %d pixels, %d samples in %v\n", stats.TotalPixels, stats.TotalSamples, stats.Elapsed)
	return img, stats, nil
}

// Render validates the configuration and renders the image, in parallel
// unless the configuration asks for a single worker
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid render config: %w", err)
	}
	if rt.sampling.SamplesPerPixel <= 0 {
		return nil, RenderStats{}, fmt.Errorf("samples per pixel must be positive, got %d", rt.sampling.SamplesPerPixel)
	}

	if rt.config.NumWorkers == 1 {
		return rt.RenderPass(ctx)
	}
	return rt.RenderParallel(ctx)
}

// RenderParallel renders rows concurrently on a worker pool
func (rt *Raytracer) RenderParallel(ctx context.Context) (*image.RGBA, RenderStats, error) {
	start := time.Now()
	img := rt.newImage()

	workerPool := NewWorkerPool(rt, img, rt.config.NumWorkers)
	stats := RenderStats{NumWorkers: workerPool.GetNumWorkers()}

	rt.logger.Printf("Rendering %dx%d, %d samples per pixel (using %d workers)...\n",
		rt.width, rt.height, rt.sampling.SamplesPerPixel, workerPool.GetNumWorkers())

	workerPool.Start()

	// Submit all rows as tasks, top scanline first
	go func() {
		defer workerPool.Stop()
		for j := rt.height - 1; j >= 0; j-- {
			select {
			case <-ctx.Done():
				return
			default:
			}
			workerPool.SubmitTask(RowTask{Row: j, Seed: rt.config.Seed})
		}
	}()

	interval := progressInterval(rt.height)
	for {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}
		stats.add(rt.width, result.Samples)

		if remaining := rt.height - stats.Rows; remaining%interval == 0 {
			rt.logger.Printf("Scanlines remaining: %d\n", remaining)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, stats, fmt.Errorf("render canceled after %d of %d rows: %w", stats.Rows, rt.height, err)
	}

	stats.Elapsed = time.Since(start)
	rt.logger.Printf("Done: %d pixels, %d samples in %v\n", stats.TotalPixels, stats.TotalSamples, stats.Elapsed)
	return img, stats, nil
}

// progressInterval logs roughly ten progress lines per render
func progressInterval(height int) int {
	interval := height / 10
	if interval < 1 {
		interval = 1
	}
	return interval
}
