package service

import (
	"sort"
	"strings"

	"github.com/dpshade/prompt-styler/internal/models"
	"github.com/dpshade/prompt-styler/internal/storage"
)

// Index is the read-only template store built once from loaded style groups.
// Within a category names are unique (later definitions win); the same name
// may appear in several categories, which is why flat keys carry the
// category. Safe for concurrent reads, never mutated after build.
type Index struct {
	byCategory    map[string]map[string]*models.Template
	categoryNames map[string][]string // insertion order within a category
	categories    []string            // sorted
	flatKeys      []string            // sorted "category: name" keys
	styleNames    map[string]struct{} // names across all categories
}

// BuildIndex constructs an Index from style groups in load order
func BuildIndex(groups []*storage.StyleGroup) *Index {
	idx := &Index{
		byCategory:    make(map[string]map[string]*models.Template),
		categoryNames: make(map[string][]string),
		styleNames:    make(map[string]struct{}),
	}

	for _, group := range groups {
		for _, tmpl := range group.Templates {
			byName, ok := idx.byCategory[group.Category]
			if !ok {
				byName = make(map[string]*models.Template)
				idx.byCategory[group.Category] = byName
			}
			if _, exists := byName[tmpl.Name]; !exists {
				idx.categoryNames[group.Category] = append(idx.categoryNames[group.Category], tmpl.Name)
				idx.flatKeys = append(idx.flatKeys, tmpl.FlatKey())
			}
			byName[tmpl.Name] = tmpl
			idx.styleNames[tmpl.Name] = struct{}{}
		}
	}

	for category := range idx.byCategory {
		idx.categories = append(idx.categories, category)
	}
	sort.Strings(idx.categories)
	sort.Strings(idx.flatKeys)

	return idx
}

// Categories returns all category names, sorted
func (idx *Index) Categories() []string {
	return idx.categories
}

// CategoryMap returns category -> style names (insertion order), the shape
// served to UI clients for populating selectors
func (idx *Index) CategoryMap() map[string][]string {
	result := make(map[string][]string, len(idx.categoryNames))
	for category, names := range idx.categoryNames {
		result[category] = append([]string(nil), names...)
	}
	return result
}

// FlatKeys returns every "category: name" key, sorted lexicographically
func (idx *Index) FlatKeys() []string {
	return idx.flatKeys
}

// StyleNames returns the bare style names across all categories, sorted.
// This is the permissive single-select validation list: it cannot tell two
// categories' same-named styles apart.
func (idx *Index) StyleNames() []string {
	names := make([]string, 0, len(idx.styleNames))
	for name := range idx.styleNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasCategory reports whether a category exists
func (idx *Index) HasCategory(category string) bool {
	_, ok := idx.byCategory[category]
	return ok
}

// Lookup returns the template registered under (category, name), or nil
func (idx *Index) Lookup(category, name string) *models.Template {
	byName, ok := idx.byCategory[category]
	if !ok {
		return nil
	}
	return byName[name]
}

// LookupFlatKey resolves a "category: name" key. Empty keys, the "None"
// sentinel, malformed keys, and unknown pairs all resolve to nil; a failed
// lookup is never an error.
func (idx *Index) LookupFlatKey(flatKey string) *models.Template {
	if flatKey == "" || flatKey == models.NoneKey {
		return nil
	}
	category, name, found := strings.Cut(flatKey, ": ")
	if !found {
		return nil
	}
	return idx.Lookup(category, name)
}

// Len returns the total number of templates in the index
func (idx *Index) Len() int {
	return len(idx.flatKeys)
}
