package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Config represents a complete render configuration
type Config struct {
	Image    ImageConfig    `yaml:"image"`
	Sampling SamplingConfig `yaml:"sampling"`
	Camera   CameraConfig   `yaml:"camera"`
	Render   RenderConfig   `yaml:"render"`
	Output   OutputConfig   `yaml:"output"`
	Scene    string         `yaml:"scene"` // Built-in name, scene file path or discovered scene ID
}

// ImageConfig contains output image dimensions
type ImageConfig struct {
	Width       int     `yaml:"width"`
	AspectRatio float64 `yaml:"aspect_ratio"` // Height is derived as width / aspect_ratio
}

// SamplingConfig contains per-pixel sampling settings
type SamplingConfig struct {
	SamplesPerPixel int `yaml:"samples_per_pixel"`
	MaxDepth        int `yaml:"max_depth"`
}

// CameraConfig contains the pinhole camera parameters
type CameraConfig struct {
	Zoom        float64   `yaml:"zoom"` // Viewport height in world units
	FocalLength float64   `yaml:"focal_length"`
	Position    []float64 `yaml:"position"`
}

// RenderConfig contains scheduling settings
type RenderConfig struct {
	Workers int   `yaml:"workers"` // 0 means one per CPU
	Seed    int64 `yaml:"seed"`
}

// OutputConfig contains where the image is written
type OutputConfig struct {
	Path string `yaml:"path"` // .png or .ppm
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Image: ImageConfig{
			Width:       400,
			AspectRatio: 16.0 / 9.0,
		},
		Sampling: SamplingConfig{
			SamplesPerPixel: 80,
			MaxDepth:        10,
		},
		Camera: CameraConfig{
			Zoom:        2.0,
			FocalLength: 1.0,
			Position:    []float64{0, 0, 0},
		},
		Render: RenderConfig{
			Workers: 0,
			Seed:    42,
		},
		Output: OutputConfig{
			Path: "output/render.png",
		},
		Scene: "default",
	}
}

// LoadConfig loads the configuration from a file.
// Defaults are returned alongside any error so callers may carry on with them.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	// Fields absent from the file keep their defaults
	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks that every setting is usable for a render
func (c *Config) Validate() error {
	if c.Image.Width <= 0 {
		return fmt.Errorf("image width must be positive, got %d", c.Image.Width)
	}
	if c.Image.AspectRatio <= 0 {
		return fmt.Errorf("aspect ratio must be positive, got %g", c.Image.AspectRatio)
	}
	if c.Sampling.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.Sampling.SamplesPerPixel)
	}
	if c.Sampling.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.Sampling.MaxDepth)
	}
	if c.Camera.Zoom <= 0 {
		return fmt.Errorf("camera zoom must be positive, got %g", c.Camera.Zoom)
	}
	if c.Camera.FocalLength <= 0 {
		return fmt.Errorf("camera focal length must be positive, got %g", c.Camera.FocalLength)
	}
	if len(c.Camera.Position) != 3 {
		return fmt.Errorf("camera position needs 3 components, got %d", len(c.Camera.Position))
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Render.Workers)
	}
	return nil
}

// ImageHeight returns the image height implied by width and aspect ratio
func (c *Config) ImageHeight() int {
	return int(float64(c.Image.Width) / c.Image.AspectRatio)
}

// NewCamera builds the camera described by the config
func (c *Config) NewCamera() *renderer.Camera {
	position := core.NewVec3(c.Camera.Position[0], c.Camera.Position[1], c.Camera.Position[2])
	return renderer.NewCamera(c.Camera.Zoom*c.Image.AspectRatio, c.Camera.Zoom, c.Camera.FocalLength, position)
}

// SamplingSettings converts the sampling section for the raytracer
func (c *Config) SamplingSettings() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		SamplesPerPixel: c.Sampling.SamplesPerPixel,
		MaxDepth:        c.Sampling.MaxDepth,
	}
}

// RenderOptions converts the render section for the raytracer
func (c *Config) RenderOptions() renderer.RenderOptions {
	return renderer.RenderOptions{
		NumWorkers: c.Render.Workers,
		Seed:       c.Render.Seed,
	}
}
