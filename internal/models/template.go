package models

import (
	"math"
	"strconv"
	"strings"
)

// Placeholder is the substitution token a style prompt may contain.
// A template holds at most one; extra occurrences fall back to plain
// substitution of the whole string.
const Placeholder = "{prompt}"

// NoneKey is the sentinel slot value meaning "no style selected".
const NoneKey = "None"

// Template represents a single style template: a positive prompt fragment
// with an optional {prompt} placeholder, and an optional negative addition.
// Templates are built once at load time and never mutated.
type Template struct {
	Name           string `yaml:"name" json:"name"`
	Prompt         string `yaml:"prompt" json:"prompt"`
	NegativePrompt string `yaml:"negative_prompt" json:"negative_prompt"`

	// Set by the loader, not part of the definition file
	Category string `yaml:"-" json:"-"`
	FilePath string `yaml:"-" json:"-"`
}

// FlatKey returns the "category: name" key identifying this template
// across all categories.
func (t *Template) FlatKey() string {
	return t.Category + ": " + t.Name
}

// Replace performs plain placeholder substitution without weighting.
// The style's negative text is prepended to the current negative prompt.
func (t *Template) Replace(positive, negative string) (string, string) {
	pos := strings.ReplaceAll(t.Prompt, Placeholder, positive)
	neg := joinNonEmpty(", ", t.NegativePrompt, negative)
	return pos, neg
}

// ApplyWeighted merges this style into the current prompt pair with an
// emphasis weight. A weight of exactly 1.0 produces no emphasis syntax.
//
// When the prompt splits into exactly two fragments around the placeholder
// (the "prefix {prompt} suffix" shape), each non-empty fragment is weighted
// independently so the user's text keeps its own weight. Any other shape is
// substituted textually and weighted as a whole.
func (t *Template) ApplyWeighted(currentPositive, currentNegative string, enablePos, enableNeg bool, weight float64) (string, string) {
	posResult := currentPositive

	if enablePos {
		parts := strings.Split(t.Prompt, Placeholder)

		styled := make([]string, len(parts))
		for i, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if weight != 1.0 {
				styled[i] = "(" + part + ":" + FormatWeight(weight) + ")"
			} else {
				styled[i] = part
			}
		}

		if len(parts) == 2 {
			posResult = joinNonEmpty(" ", styled[0], currentPositive, styled[1])
		} else {
			// No placeholder, or more than one: substitute and wrap whole
			res := strings.ReplaceAll(t.Prompt, Placeholder, currentPositive)
			if weight != 1.0 {
				res = "(" + res + ":" + FormatWeight(weight) + ")"
			}
			posResult = res
		}
	}

	negResult := currentNegative

	if enableNeg && t.NegativePrompt != "" {
		cleanNeg := strings.TrimSpace(t.NegativePrompt)
		if weight != 1.0 {
			cleanNeg = "(" + cleanNeg + ":" + FormatWeight(weight) + ")"
		}
		// Style negative comes first
		negResult = joinNonEmpty(", ", cleanNeg, currentNegative)
	}

	return posResult, negResult
}

// FormatWeight renders an emphasis weight rounded to 2 decimal places,
// always keeping at least one decimal digit ("2.0", "1.24").
func FormatWeight(weight float64) string {
	rounded := math.Round(weight*100) / 100
	s := strconv.FormatFloat(rounded, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

// joinNonEmpty joins the non-empty parts with sep, preserving order.
func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
