// Package styler implements the style applicators: single-style application
// against a (category, name) pair and ordered multi-slot application against
// flat "category: name" keys, plus the output normalization that keeps the
// merged prompt strings well-formed.
//
// Both applicators fail soft: unknown categories, styles, and slot keys leave
// the running prompt pair untouched. They never return errors and never
// mutate the template store they read from.
package styler

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/dpshade/prompt-styler/internal/models"
)

// Resolver is the read side of the template store the applicators need
type Resolver interface {
	HasCategory(category string) bool
	Lookup(category, name string) *models.Template
	LookupFlatKey(flatKey string) *models.Template
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	spacedComma   = regexp.MustCompile(`\s,\s`)
)

// CollapseWhitespace reduces whitespace runs to single spaces and trims
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// tidy normalizes a merged prompt: whitespace runs collapsed, trimmed,
// space-comma-space tightened to ", "
func tidy(s string) string {
	s = CollapseWhitespace(s)
	return spacedComma.ReplaceAllString(s, ", ")
}

// tidyPositive additionally collapses the " . . " artifact left when two
// period-terminated templates meet
func tidyPositive(s string) string {
	return strings.ReplaceAll(tidy(s), " . . ", " . ")
}

// Single applies exactly one template, addressed by category and style name
type Single struct {
	resolver Resolver
}

// NewSingle creates a single-style applicator over the given store
func NewSingle(resolver Resolver) *Single {
	return &Single{resolver: resolver}
}

// Apply merges the named style into the prompt pair with both branches
// enabled. An unknown category is a silent no-op; a style name that exists
// but not under this category logs a warning and is also a no-op, because
// the permissive name-only selector can hand us any category's style name.
func (a *Single) Apply(positive, negative, category, style string, weight float64, logPrompt bool) (string, string) {
	if !a.resolver.HasCategory(category) {
		return positive, negative
	}

	tmpl := a.resolver.Lookup(category, style)
	if tmpl == nil {
		log.Printf("[Styler] Warning: style '%s' not found in category '%s', skipping", style, category)
		return positive, negative
	}

	pos, neg := tmpl.ApplyWeighted(positive, negative, true, true, weight)

	pos = CollapseWhitespace(pos)
	neg = CollapseWhitespace(neg)

	if logPrompt {
		log.Printf("[Styler] Applied: %s -> %s (w=%s)", category, style, models.FormatWeight(weight))
	}

	return pos, neg
}

// Multi applies an ordered sequence of optional styles resolved by flat key
type Multi struct {
	resolver  Resolver
	slotCount int
	name      string
}

// NewMulti creates a multi-style applicator with a fixed slot count.
// Counts outside the supported node variants fall back to the default of 6.
func NewMulti(resolver Resolver, slotCount int) *Multi {
	if !ValidSlotCount(slotCount) {
		log.Printf("[MultiStyler] Warning: unsupported slot count %d, using %d", slotCount, DefaultSlotCount)
		slotCount = DefaultSlotCount
	}
	return &Multi{
		resolver:  resolver,
		slotCount: slotCount,
		name:      "MultiStyler" + strconv.Itoa(slotCount),
	}
}

// SlotCount returns the fixed number of slots this applicator accepts
func (a *Multi) SlotCount() int {
	return a.slotCount
}

// Apply weights the base prompts, then folds the slots over the running
// pair from the highest slot down to slot 1, so slot 1's style ends up as
// the outermost wrapper. Empty, "None", and unresolvable slot keys are
// skipped without touching the running pair. The result is normalized
// before it is returned.
func (a *Multi) Apply(positive string, positiveWeight float64, negative string, negativeWeight float64, slots []models.StyleSlot, logPrompt bool) (string, string) {
	pos := strings.TrimSpace(positive)
	if pos != "" && positiveWeight != 1.0 {
		pos = "(" + pos + ":" + models.FormatWeight(positiveWeight) + ")"
	}

	neg := strings.TrimSpace(negative)
	if neg != "" && negativeWeight != 1.0 {
		neg = "(" + neg + ":" + models.FormatWeight(negativeWeight) + ")"
	}

	for i := a.slotCount; i >= 1; i-- {
		if i > len(slots) {
			continue
		}
		slot := slots[i-1]
		if slot.Empty() {
			continue
		}

		tmpl := a.resolver.LookupFlatKey(slot.Key)
		if tmpl == nil {
			continue
		}

		pos, neg = tmpl.ApplyWeighted(pos, neg, slot.PositiveOn, slot.NegativeOn, slot.Weight)
	}

	pos = tidyPositive(pos)
	neg = tidy(neg)

	if logPrompt {
		log.Printf("[%s] Final Pos: %s", a.name, pos)
		log.Printf("[%s] Final Neg: %s", a.name, neg)
	}

	return pos, neg
}
