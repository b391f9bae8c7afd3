package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func writeStyleFile(t *testing.T, root, category, name, content string) {
	t.Helper()
	dir := filepath.Join(root, "styles", category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadStyleGroups(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "prompt-styler-storage-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	writeStyleFile(t, tmpDir, "Mood", "mood.json",
		`[{"name": "Dark", "prompt": "dark {prompt}", "negative_prompt": "bright"},
		  {"name": "Light", "prompt": "light {prompt}"}]`)
	writeStyleFile(t, tmpDir, "Camera", "camera.yaml",
		"- name: Macro\n  prompt: \"macro shot of {prompt}\"\n  negative_prompt: wide angle\n")

	store, err := NewStorage(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	groups, err := store.LoadStyleGroups()
	if err != nil {
		t.Fatalf("Failed to load style groups: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}

	// Sorted path order: Camera before Mood
	if groups[0].Category != "Camera" {
		t.Errorf("Expected first group 'Camera', got '%s'", groups[0].Category)
	}
	if len(groups[0].Templates) != 1 {
		t.Fatalf("Expected 1 template in Camera, got %d", len(groups[0].Templates))
	}
	if groups[0].Templates[0].NegativePrompt != "wide angle" {
		t.Errorf("Expected negative 'wide angle', got '%s'", groups[0].Templates[0].NegativePrompt)
	}

	mood := groups[1]
	if mood.Category != "Mood" {
		t.Errorf("Expected second group 'Mood', got '%s'", mood.Category)
	}
	if len(mood.Templates) != 2 {
		t.Fatalf("Expected 2 templates in Mood, got %d", len(mood.Templates))
	}
	if mood.Templates[0].Name != "Dark" || mood.Templates[1].Name != "Light" {
		t.Errorf("Expected insertion order Dark, Light; got %s, %s",
			mood.Templates[0].Name, mood.Templates[1].Name)
	}
	if mood.Templates[0].Category != "Mood" {
		t.Errorf("Expected category 'Mood' on template, got '%s'", mood.Templates[0].Category)
	}
}

func TestLoadStyleGroupsSkipsMalformedAndIncomplete(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "prompt-styler-storage-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	writeStyleFile(t, tmpDir, "Broken", "broken.json", `{not json at all`)
	writeStyleFile(t, tmpDir, "Partial", "partial.json",
		`[{"name": "NoPrompt"},
		  {"prompt": "no name {prompt}"},
		  {"name": "Good", "prompt": "good {prompt}", "extra_field": "ignored"}]`)
	writeStyleFile(t, tmpDir, "Hidden", ".hidden.json", `[{"name": "X", "prompt": "x"}]`)

	store, err := NewStorage(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	groups, err := store.LoadStyleGroups()
	if err != nil {
		t.Fatalf("Malformed files should not fail the scan: %v", err)
	}

	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}
	if groups[0].Category != "Partial" {
		t.Errorf("Expected group 'Partial', got '%s'", groups[0].Category)
	}
	if len(groups[0].Templates) != 1 || groups[0].Templates[0].Name != "Good" {
		t.Errorf("Expected only the complete record 'Good' to load, got %+v", groups[0].Templates)
	}
}

func TestLoadStyleGroupsMissingDir(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "prompt-styler-storage-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	store, err := NewStorage(filepath.Join(tmpDir, "nope"))
	if err != nil {
		t.Fatal(err)
	}

	groups, err := store.LoadStyleGroups()
	if err != nil {
		t.Fatalf("Missing styles dir should not be an error: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("Expected no groups, got %d", len(groups))
	}
}

func TestInitLibrarySeedsStarterStyles(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "prompt-styler-storage-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	store, err := NewStorage(filepath.Join(tmpDir, "library"))
	if err != nil {
		t.Fatal(err)
	}

	if err := store.InitLibrary(); err != nil {
		t.Fatalf("Failed to init library: %v", err)
	}

	groups, err := store.LoadStyleGroups()
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) == 0 {
		t.Fatal("Expected starter styles after init, got none")
	}

	// Init again should not duplicate or fail
	if err := store.InitLibrary(); err != nil {
		t.Fatalf("Second init should be a no-op: %v", err)
	}
}
