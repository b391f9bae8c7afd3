// Package service provides business logic for style template management:
// it owns the storage scan, builds the read-only template index once, and
// exposes lookup and search over it.
package service

import (
	"fmt"
	"os"

	"github.com/dpshade/prompt-styler/internal/models"
	"github.com/dpshade/prompt-styler/internal/storage"
	"github.com/sahilm/fuzzy"
)

// Service wires storage and the template index together. The index is
// rebuilt only by an explicit Reload; everything else is a read.
type Service struct {
	storage *storage.Storage
	index   *Index
}

// NewService creates a service rooted at rootPath (or PROMPT_STYLER_DIR /
// the default library location when empty) and builds the template index
func NewService(rootPath string) (*Service, error) {
	if rootPath == "" {
		rootPath = os.Getenv("PROMPT_STYLER_DIR")
	}

	store, err := storage.NewStorage(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	svc := &Service{storage: store}
	if err := svc.Reload(); err != nil {
		return nil, err
	}

	return svc, nil
}

// Reload rescans the style directories and swaps in a fresh index
func (s *Service) Reload() error {
	groups, err := s.storage.LoadStyleGroups()
	if err != nil {
		return fmt.Errorf("failed to load styles: %w", err)
	}
	s.index = BuildIndex(groups)
	return nil
}

// Index returns the read-only template store
func (s *Service) Index() *Index {
	return s.index
}

// InitLibrary initializes the style library directory structure
func (s *Service) InitLibrary() error {
	return s.storage.InitLibrary()
}

// BaseDir returns the library root path
func (s *Service) BaseDir() string {
	return s.storage.GetBaseDir()
}

// Categories returns all category names, sorted
func (s *Service) Categories() []string {
	return s.index.Categories()
}

// CategoryMap returns category -> style names for UI population
func (s *Service) CategoryMap() map[string][]string {
	return s.index.CategoryMap()
}

// FlatKeys returns all "category: name" keys, sorted
func (s *Service) FlatKeys() []string {
	return s.index.FlatKeys()
}

// StyleNames returns bare style names across all categories, sorted
func (s *Service) StyleNames() []string {
	return s.index.StyleNames()
}

// GetTemplate resolves a flat "category: name" key, nil when absent
func (s *Service) GetTemplate(flatKey string) *models.Template {
	return s.index.LookupFlatKey(flatKey)
}

// ListTemplates returns every template in flat-key order
func (s *Service) ListTemplates() []*models.Template {
	templates := make([]*models.Template, 0, s.index.Len())
	for _, key := range s.index.FlatKeys() {
		if tmpl := s.index.LookupFlatKey(key); tmpl != nil {
			templates = append(templates, tmpl)
		}
	}
	return templates
}

// SearchStyles fuzzy-matches the query against flat keys and prompt text,
// best matches first. An empty query returns everything.
func (s *Service) SearchStyles(query string) []*models.Template {
	templates := s.ListTemplates()
	if query == "" {
		return templates
	}

	searchStrings := make([]string, len(templates))
	for i, tmpl := range templates {
		searchStrings[i] = fmt.Sprintf("%s %s %s", tmpl.FlatKey(), tmpl.Prompt, tmpl.NegativePrompt)
	}

	matches := fuzzy.Find(query, searchStrings)

	results := make([]*models.Template, 0, len(matches))
	for _, match := range matches {
		results = append(results, templates[match.Index])
	}
	return results
}
