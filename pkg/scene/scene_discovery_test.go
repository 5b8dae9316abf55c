package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type testLogger struct {
	messages []string
}

func (l *testLogger) Printf(format string, args ...interface{}) {
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"single-sphere", "Single Sphere"},
		{"glass_row", "Glass Row"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		file     string
		content  string
		expected SceneInfo
	}{
		{
			file:    "complete.yaml",
			content: "name: glass-row\ndescription: Three glass spheres\ngroup: Glass\n",
			expected: SceneInfo{
				ID:          "complete",
				Name:        "glass-row",
				DisplayName: "Glass Row",
				Description: "Three glass spheres",
				Group:       "Glass",
				Type:        "file",
			},
		},
		{
			file:    "no_metadata.yml",
			content: "spheres: []\n",
			expected: SceneInfo{
				ID:          "no_metadata",
				Name:        "no_metadata", // From filename
				DisplayName: "No Metadata",
				Group:       "Scene Files", // Default group
				Type:        "file",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.file, tc.content)
			tc.expected.FilePath = path

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}
			if result != tc.expected {
				t.Errorf("ParseSceneMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestListScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "zeta.yaml", "name: zeta\n")
	writeSceneFile(t, dir, "alpha.yml", "name: alpha\n")
	writeSceneFile(t, dir, "broken.yaml", "name: [unterminated\n")
	writeSceneFile(t, dir, "notes.txt", "name: ignored\n")

	logger := &testLogger{}
	scenes, err := ListScenes(dir, logger)
	if err != nil {
		t.Fatalf("ListScenes() error: %v", err)
	}

	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d: %+v", len(scenes), scenes)
	}
	if scenes[0].ID != "alpha" || scenes[1].ID != "zeta" {
		t.Errorf("Expected scenes sorted by display name, got %s, %s", scenes[0].ID, scenes[1].ID)
	}
	if len(logger.messages) != 1 {
		t.Errorf("Expected one warning for the broken file, got %v", logger.messages)
	}
}

func TestListScenes_EmptyDirectory(t *testing.T) {
	scenes, err := ListScenes("", nil)
	if err != nil {
		t.Fatalf("ListScenes() error: %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}

	scenes, err = ListScenes(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("ListScenes() error: %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "custom.yaml", "name: custom\n")

	scenes, err := ListAllScenes(dir, nil)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	builtins := BuiltinSceneNames()
	if len(scenes) != len(builtins)+1 {
		t.Fatalf("Expected %d scenes, got %d", len(builtins)+1, len(scenes))
	}
	for i, name := range builtins {
		if scenes[i].ID != name || scenes[i].Type != "builtin" {
			t.Errorf("Expected builtin %q at %d, got %+v", name, i, scenes[i])
		}
	}
	if last := scenes[len(scenes)-1]; last.ID != "custom" || last.Type != "file" {
		t.Errorf("Expected custom file scene last, got %+v", last)
	}
}

func TestFindScene(t *testing.T) {
	dir := t.TempDir()
	path := writeSceneFile(t, dir, "custom.yaml", "name: custom\n")

	info, ok := FindScene(dir, "custom", nil)
	if !ok {
		t.Fatal("Expected to find scene")
	}
	if info.FilePath != path {
		t.Errorf("Expected path %s, got %s", path, info.FilePath)
	}

	if _, ok := FindScene(dir, "other", nil); ok {
		t.Error("Expected not to find unknown scene")
	}
}
