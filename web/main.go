package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"github.com/df07/go-weekend-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "", "Directory of YAML scene files (default: scenes/ or ../scenes/)")
	flag.Parse()

	dir := *scenesDir
	if dir == "" {
		dir = scene.FindScenesDir()
	}

	// Create and start web server
	webServer := server.NewServer(*port, dir)

	log.Printf("Weekend Raytracer Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
