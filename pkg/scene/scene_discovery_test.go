package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"glass_balls", "Glass Balls"},
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

func TestParseDescriptionMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.yaml",
			content: `# Scene: Cornell Box
# Variant: Empty Room
# Description: Classic Cornell box with no objects
# Group: Cornell Variants

LookAt: {from: [278, 278, -800], to: [278, 278, 0]}`,
			expected: SceneInfo{
				ID:          "file:complete_metadata",
				Name:        "Cornell Box",
				DisplayName: "Cornell Box - Empty Room",
				Description: "Classic Cornell box with no objects",
				Group:       "Cornell Variants",
				Type:        "description",
				Variant:     "Empty Room",
			},
		},
		{
			name: "partial_metadata.yaml",
			content: `# Scene: Glass
# Description: Glass balls

LookAt: {from: [0, 0, 5], to: [0, 0, 0]}`,
			expected: SceneInfo{
				ID:          "file:partial_metadata",
				Name:        "Glass",
				DisplayName: "Glass",
				Description: "Glass balls",
				Group:       "Scene Descriptions",
				Type:        "description",
			},
		},
		{
			name:    "no_metadata.yaml",
			content: `LookAt: {from: [0, 0, 5], to: [0, 0, 0]}`,
			expected: SceneInfo{
				ID:          "file:no_metadata",
				Name:        "No Metadata",
				DisplayName: "No Metadata",
				Group:       "Scene Descriptions",
				Type:        "description",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("Failed to write test file: %v", err)
			}

			result, err := ParseDescriptionMetadata(path)
			if err != nil {
				t.Fatalf("ParseDescriptionMetadata() error: %v", err)
			}

			tc.expected.FilePath = path
			if diff := cmp.Diff(tc.expected, result); diff != "" {
				t.Errorf("ParseDescriptionMetadata() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListDescriptionScenesMissingDirectory(t *testing.T) {
	scenes, err := ListDescriptionScenes(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Errorf("ListDescriptionScenes() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty slice, got %v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.yaml":   "# Scene: Bravo\n# Group: Tests\n",
		"a.yml":    "# Scene: Alpha\n# Group: Tests\n",
		"skip.txt": "# Scene: Ignored\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}

	builtIn := response.Groups[0]
	if builtIn.Name != "Built-in Scenes" {
		t.Errorf("Expected built-in group first, got %q", builtIn.Name)
	}
	var ids []string
	for _, s := range builtIn.Scenes {
		ids = append(ids, s.ID)
	}
	if diff := cmp.Diff(Names(), ids); diff != "" {
		t.Errorf("Built-in scene IDs mismatch (-want +got):\n%s", diff)
	}

	tests := response.Groups[1]
	if tests.Name != "Tests" || len(tests.Scenes) != 2 {
		t.Fatalf("Unexpected description group %+v", tests)
	}
	if tests.Scenes[0].Name != "Alpha" || tests.Scenes[1].Name != "Bravo" {
		t.Errorf("Expected descriptions sorted by name, got %q, %q", tests.Scenes[0].Name, tests.Scenes[1].Name)
	}
}
