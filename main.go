package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("raytracer", flag.ContinueOnError)

	configPath := flags.String("config", "", "Path to a YAML render config")
	sceneName := flags.String("scene", "", "Built-in scene name, scene file path or scene ID under scenes/")
	outPath := flags.String("out", "", "Output image path (.png or .ppm)")
	width := flags.Int("width", 0, "Image width in pixels")
	samples := flags.Int("samples", 0, "Samples per pixel")
	depth := flags.Int("depth", 0, "Maximum ray bounce depth")
	workers := flags.Int("workers", 0, "Number of parallel workers (0 = use CPU count)")
	seed := flags.Int64("seed", 0, "Base random seed")
	list := flags.Bool("list", false, "List available scenes and exit")
	help := flags.Bool("help", false, "Show help information")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *help {
		fmt.Println("Weekend Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flags.SetOutput(os.Stdout)
		flags.PrintDefaults()
		fmt.Println()
		return listScenes()
	}

	if *list {
		return listScenes()
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags given explicitly override the config file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneName
		case "out":
			cfg.Output.Path = *outPath
		case "width":
			cfg.Image.Width = *width
		case "samples":
			cfg.Sampling.SamplesPerPixel = *samples
		case "depth":
			cfg.Sampling.MaxDepth = *depth
		case "workers":
			cfg.Render.Workers = *workers
		case "seed":
			cfg.Render.Seed = *seed
		}
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	selectedScene, err := createScene(cfg.Scene, cfg.Image.AspectRatio)
	if err != nil {
		return err
	}
	selectedScene.Camera = cfg.NewCamera()

	fmt.Printf("Using scene %s (%d spheres)...\n", selectedScene.Name, selectedScene.GetPrimitiveCount())

	raytracer := renderer.NewRaytracer(selectedScene, cfg.Image.Width, cfg.ImageHeight())
	raytracer.SetSamplingConfig(cfg.SamplingSettings())
	raytracer.SetLogger(renderer.NewDefaultLogger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := raytracer.Render(ctx, cfg.RenderOptions())
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Printf("Samples per pixel: %.1f over %d pixels\n", stats.AverageSamples, stats.TotalPixels)
	fmt.Printf("Average luminance: %.4f\n", renderer.CalculateAverageLuminance(img))

	if err := imageio.Save(cfg.Output.Path, img); err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", cfg.Output.Path)
	return nil
}

// createScene resolves name as a built-in scene, then a scene file path,
// then a scene ID discovered in the scenes directory
func createScene(name string, aspectRatio float64) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("no scene given")
	}

	if s, err := scene.NewBuiltinScene(name, aspectRatio); err == nil {
		return s, nil
	}

	if isSceneFile(name) {
		if _, err := os.Stat(name); err == nil {
			return scene.LoadSceneFile(name, aspectRatio)
		}
	}

	if info, ok := scene.FindScene(scene.FindScenesDir(), name, renderer.NewDefaultLogger()); ok {
		return scene.LoadSceneFile(info.FilePath, aspectRatio)
	}

	return nil, fmt.Errorf("unknown scene %q (built-in: %s)", name, strings.Join(scene.BuiltinSceneNames(), ", "))
}

func isSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func listScenes() error {
	scenes, err := scene.ListAllScenes(scene.FindScenesDir(), renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	fmt.Println("Available scenes:")
	for _, info := range scenes {
		line := fmt.Sprintf("  %-16s %s [%s]", info.ID, info.DisplayName, info.Group)
		if info.Description != "" {
			line += " - " + info.Description
		}
		fmt.Println(line)
	}
	return nil
}
