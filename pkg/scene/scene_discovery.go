package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // File name without extension, or the built-in name
	Name        string // Scene name
	DisplayName string // Human readable name
	Description string // Optional description
	Group       string // Grouping category
	Type        string // "builtin" or "file"
	FilePath    string // Path to the YAML file (file type only)
}

// DefaultScenesDirs are searched in order when no directory is given
var DefaultScenesDirs = []string{"scenes", "../scenes"}

// FindScenesDir returns the first default scenes directory that exists, or ""
func FindScenesDir() string {
	for _, path := range DefaultScenesDirs {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListScenes scans dir for YAML scene files and returns their metadata.
// Files that fail to parse are reported through logger and skipped.
func ListScenes(dir string, logger core.Logger) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, ext := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, ext))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			if logger != nil {
				logger.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			}
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the header fields of a scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return SceneInfo{}, fmt.Errorf("failed to open file: %w", err)
	}

	var header struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Group       string `yaml:"group"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return SceneInfo{}, fmt.Errorf("failed to parse file: %w", err)
	}

	base := filepath.Base(filePath)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	info := SceneInfo{
		ID:          id,
		Name:        header.Name,
		Description: header.Description,
		Group:       header.Group,
		Type:        "file",
		FilePath:    filePath,
	}
	if info.Name == "" {
		info.Name = id
	}
	if info.Group == "" {
		info.Group = "Scene Files"
	}
	info.DisplayName = titleCase(info.Name)

	return info, nil
}

// ListAllScenes returns built-in scenes followed by files discovered in dir
func ListAllScenes(dir string, logger core.Logger) ([]SceneInfo, error) {
	var all []SceneInfo
	for _, name := range BuiltinSceneNames() {
		all = append(all, SceneInfo{
			ID:          name,
			Name:        name,
			DisplayName: titleCase(name),
			Group:       "Built-in",
			Type:        "builtin",
		})
	}

	files, err := ListScenes(dir, logger)
	if err != nil {
		return nil, err
	}
	return append(all, files...), nil
}

// FindScene looks up a discovered scene file by ID
func FindScene(dir, id string, logger core.Logger) (SceneInfo, bool) {
	scenes, err := ListScenes(dir, logger)
	if err != nil {
		return SceneInfo{}, false
	}
	for _, info := range scenes {
		if info.ID == id {
			return info, true
		}
	}
	return SceneInfo{}, false
}

// titleCase turns a scene ID like "single-sphere" into "Single Sphere"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
