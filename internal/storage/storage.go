package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dpshade/prompt-styler/internal/models"
	"gopkg.in/yaml.v3"
)

// Storage handles all file system operations for style definitions
type Storage struct {
	rootPath string
}

// StyleGroup is one category directory worth of templates, in file order
type StyleGroup struct {
	Category  string
	Templates []*models.Template
}

// NewStorage creates a new storage instance rooted at rootPath,
// defaulting to ~/.prompt-styler when rootPath is empty
func NewStorage(rootPath string) (*Storage, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".prompt-styler")
	}

	return &Storage{rootPath: rootPath}, nil
}

// GetBaseDir returns the root path of the storage
func (s *Storage) GetBaseDir() string {
	return s.rootPath
}

// StylesDir returns the directory scanned for category subdirectories
func (s *Storage) StylesDir() string {
	return filepath.Join(s.rootPath, "styles")
}

// InitLibrary creates the directory structure for a style library and seeds
// a starter category so new installs have something to select
func (s *Storage) InitLibrary() error {
	dirs := []string{
		s.rootPath,
		s.StylesDir(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return s.seedStarterStyles()
}

// styleDef mirrors one record of a definition file. Name and Prompt are
// pointers so a missing field can be told apart from an empty one; records
// missing either are skipped. Extra fields are ignored.
type styleDef struct {
	Name           *string `json:"name" yaml:"name"`
	Prompt         *string `json:"prompt" yaml:"prompt"`
	NegativePrompt string  `json:"negative_prompt" yaml:"negative_prompt"`
}

// LoadStyleGroups scans styles/<category>/ for definition files and returns
// the parsed groups. Files are visited in sorted path order so template
// insertion order is deterministic. Unreadable or malformed files are logged
// and skipped; the scan never fails because of bad style data.
func (s *Storage) LoadStyleGroups() ([]*StyleGroup, error) {
	stylesDir := s.StylesDir()
	if _, err := os.Stat(stylesDir); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: styles directory not found: %s\n", stylesDir)
		return nil, nil
	}

	var paths []string
	for _, pattern := range []string{"*/*.json", "*/*.yaml", "*/*.yml"} {
		matches, err := filepath.Glob(filepath.Join(stylesDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan styles directory: %w", err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	groups := make(map[string]*StyleGroup)
	var order []string

	for _, path := range paths {
		if strings.HasPrefix(filepath.Base(path), ".") {
			continue
		}

		defs, err := s.loadStyleFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", path, err)
			continue
		}

		category := filepath.Base(filepath.Dir(path))
		group, ok := groups[category]
		if !ok {
			group = &StyleGroup{Category: category}
			groups[category] = group
			order = append(order, category)
		}

		relPath, _ := filepath.Rel(s.rootPath, path)
		for _, def := range defs {
			if def.Name == nil || def.Prompt == nil {
				continue
			}
			group.Templates = append(group.Templates, &models.Template{
				Name:           *def.Name,
				Prompt:         *def.Prompt,
				NegativePrompt: def.NegativePrompt,
				Category:       category,
				FilePath:       relPath,
			})
		}
	}

	result := make([]*StyleGroup, 0, len(order))
	for _, category := range order {
		result = append(result, groups[category])
	}
	return result, nil
}

// loadStyleFile parses a single definition file, JSON or YAML by extension
func (s *Storage) loadStyleFile(path string) ([]styleDef, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read style file: %w", err)
	}

	var defs []styleDef
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &defs); err != nil {
			return nil, fmt.Errorf("failed to parse style file: %w", err)
		}
	default:
		if err := json.Unmarshal(content, &defs); err != nil {
			return nil, fmt.Errorf("failed to parse style file: %w", err)
		}
	}

	return defs, nil
}

// SaveStyleFile writes a definition file under styles/<category>/
func (s *Storage) SaveStyleFile(category, name string, templates []*models.Template) error {
	dir := filepath.Join(s.StylesDir(), category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	defs := make([]map[string]string, 0, len(templates))
	for _, tmpl := range templates {
		def := map[string]string{
			"name":   tmpl.Name,
			"prompt": tmpl.Prompt,
		}
		if tmpl.NegativePrompt != "" {
			def["negative_prompt"] = tmpl.NegativePrompt
		}
		defs = append(defs, def)
	}

	content, err := json.MarshalIndent(defs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize styles: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write style file: %w", err)
	}

	return nil
}

// seedStarterStyles writes a small default pack unless styles already exist
func (s *Storage) seedStarterStyles() error {
	entries, err := os.ReadDir(s.StylesDir())
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return nil
	}

	starter := map[string][]*models.Template{
		"Basics": {
			{Name: "Enhance", Prompt: "masterpiece, best quality, {prompt}, highly detailed", NegativePrompt: "low quality, worst quality"},
			{Name: "Photographic", Prompt: "cinematic photo of {prompt}, 35mm photograph, film, bokeh", NegativePrompt: "drawing, painting, illustration"},
			{Name: "Digital Art", Prompt: "concept art of {prompt}, digital artwork, illustrative", NegativePrompt: "photo, photorealistic"},
		},
		"Lighting": {
			{Name: "Neon", Prompt: "neon lighting, {prompt}, vibrant glow", NegativePrompt: "flat lighting"},
			{Name: "Golden Hour", Prompt: "{prompt}, golden hour, warm sunlight", NegativePrompt: ""},
		},
	}

	for category, templates := range starter {
		if err := s.SaveStyleFile(category, strings.ToLower(category)+".json", templates); err != nil {
			return err
		}
	}

	return nil
}
