package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ShadowAcneEpsilon is the minimum hit distance for every ray, which keeps
// bounce rays from re-hitting the surface they start on
const ShadowAcneEpsilon = 1e-3

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 80,
		MaxDepth:        10,
	}
}

// RenderOptions controls how the pixel loop is scheduled
type RenderOptions struct {
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; row y uses Seed+y
}

// DefaultRenderOptions returns sensible default values
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		NumWorkers: 0,
		Seed:       42,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
	GetWorld() core.Shape
}

// Raytracer handles the rendering process.
// It holds no mutable state while rendering, so workers share one instance.
type Raytracer struct {
	scene  Scene
	width  int
	height int
	config SamplingConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	return &Raytracer{
		scene:  scene,
		width:  width,
		height: height,
		config: DefaultSamplingConfig(),
		logger: discardLogger{},
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// SetLogger routes progress messages to logger
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = discardLogger{}
	}
	rt.logger = logger
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	topColor, bottomColor := rt.scene.GetBackgroundColors()

	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	return core.Lerp(bottomColor, topColor, t)
}

// RayColor returns the light arriving along r, following at most depth bounces
func (rt *Raytracer) RayColor(r core.Ray, depth int, random *rand.Rand) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := rt.scene.GetWorld().Hit(r, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return rt.backgroundGradient(r)
	}

	if hit.Material == nil {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, random)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth-1, random))
}

// SamplePixel averages SamplesPerPixel jittered rays through pixel (x, y)
func (rt *Raytracer) SamplePixel(x, y int, random *rand.Rand) PixelStats {
	camera := rt.scene.GetCamera()
	var ps PixelStats

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		u := (float64(x) + random.Float64()) / float64(rt.width)
		v := (float64(y) + random.Float64()) / float64(rt.height)

		ps.AddSample(rt.RayColor(camera.GetRay(u, v), rt.config.MaxDepth, random))
	}

	return ps
}

// renderRow renders row y into img and returns the number of samples taken
func (rt *Raytracer) renderRow(img *image.RGBA, y int, random *rand.Rand) int {
	samples := 0
	for x := 0; x < rt.width; x++ {
		ps := rt.SamplePixel(x, y, random)
		img.SetRGBA(x, y, vec3ToColor(ps.GetColor()))
		samples += ps.SampleCount
	}
	return samples
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// Render renders the full image. Rows are distributed over a worker pool; each row
// draws from its own seeded generator, so the image does not depend on the worker count.
func (rt *Raytracer) Render(ctx context.Context, options RenderOptions) (*image.RGBA, RenderStats, error) {
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", rt.width, rt.height)
	}
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))

	pool := NewWorkerPool(ctx, rt, img, options.NumWorkers)
	pool.Start()

	rt.logger.Printf("Rendering %dx%d, %d samples per pixel, %d bounces (using %d workers)...\n",
		rt.width, rt.height, rt.config.SamplesPerPixel, rt.config.MaxDepth, pool.GetNumWorkers())

	for y := 0; y < rt.height; y++ {
		pool.SubmitTask(RowTask{
			Row:    y,
			Random: rand.New(rand.NewSource(options.Seed + int64(y))),
		})
	}

	stats := RenderStats{
		TotalPixels: rt.width * rt.height,
		Workers:     pool.GetNumWorkers(),
	}
	progress := newProgressReporter(rt.logger, rt.height)

	for i := 0; i < rt.height; i++ {
		result, ok := pool.GetResult()
		if !ok {
			pool.Stop()
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			pool.Stop()
			return nil, RenderStats{}, result.Error
		}

		stats.TotalSamples += result.Samples
		progress.rowDone()
	}
	pool.Stop()

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	stats.Duration = time.Since(startTime)

	rt.logger.Printf("Render completed in %v\n", stats.Duration)

	return img, stats, nil
}
