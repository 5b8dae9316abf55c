package imageio

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, top row first
}

// At returns the color at pixel (x, y)
func (d *ImageData) At(x, y int) core.Vec3 {
	return d.Pixels[y*d.Width+x]
}

// Save writes img to path, choosing the encoder from the file extension.
// Missing parent directories are created.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		if err := gg.SavePNG(path, img); err != nil {
			return fmt.Errorf("failed to save PNG: %w", err)
		}
		return nil
	case ".ppm":
		return SavePPM(path, img)
	default:
		return fmt.Errorf("unsupported image format %q (use .png or .ppm)", filepath.Ext(path))
	}
}

// SavePPM writes img to path as an ASCII PPM file
func SavePPM(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PPM file: %w", err)
	}

	if err := WritePPM(file, img); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close PPM file: %w", err)
	}
	return nil
}

// WritePPM encodes img as ASCII P3 with one "r g b" line per pixel
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	out := bufio.NewWriter(w)

	fmt.Fprintf(out, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			fmt.Fprintf(out, "%d %d %d\n", r>>8, g>>8, b>>8)
		}
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM data: %w", err)
	}
	return nil
}

// LoadImage loads a PNG or JPEG image and converts it to Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	img, err := gg.LoadImage(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}
