package models

import (
	"strings"
	"testing"
)

func TestApplyWeightedStandardCase(t *testing.T) {
	tmpl := &Template{Name: "Epic", Prompt: "epic {prompt} scene"}

	pos, neg := tmpl.ApplyWeighted("a cat", "", true, true, 2.0)

	if pos != "(epic:2.0) a cat (scene:2.0)" {
		t.Errorf("Expected '(epic:2.0) a cat (scene:2.0)', got '%s'", pos)
	}
	if neg != "" {
		t.Errorf("Expected empty negative, got '%s'", neg)
	}
}

func TestApplyWeightedUnitWeightAddsNoEmphasis(t *testing.T) {
	tmpl := &Template{
		Name:           "Neon",
		Prompt:         "neon {prompt} glow",
		NegativePrompt: "dull",
	}

	pos, neg := tmpl.ApplyWeighted("a city", "low quality", true, true, 1.0)

	if strings.Contains(pos, "(") || strings.Contains(pos, ")") {
		t.Errorf("Weight 1.0 should not introduce emphasis syntax, got '%s'", pos)
	}
	if pos != "neon a city glow" {
		t.Errorf("Expected 'neon a city glow', got '%s'", pos)
	}
	if neg != "dull, low quality" {
		t.Errorf("Expected 'dull, low quality', got '%s'", neg)
	}
}

func TestApplyWeightedNegativeOrdering(t *testing.T) {
	tmpl := &Template{
		Name:           "Sharp",
		Prompt:         "{prompt}",
		NegativePrompt: "blurry",
	}

	_, neg := tmpl.ApplyWeighted("x", "low quality", true, true, 1.0)

	if neg != "blurry, low quality" {
		t.Errorf("Expected style negative first 'blurry, low quality', got '%s'", neg)
	}
}

func TestApplyWeightedNegativeWeighting(t *testing.T) {
	tmpl := &Template{
		Name:           "Sharp",
		Prompt:         "{prompt}",
		NegativePrompt: " blurry ",
	}

	_, neg := tmpl.ApplyWeighted("x", "grain", true, true, 1.5)

	if neg != "(blurry:1.5), grain" {
		t.Errorf("Expected '(blurry:1.5), grain', got '%s'", neg)
	}
}

func TestApplyWeightedNoPlaceholderWrapsWhole(t *testing.T) {
	tmpl := &Template{Name: "Plain", Prompt: "vivid colors"}

	pos, _ := tmpl.ApplyWeighted("a dog", "", true, true, 1.3)

	if pos != "(vivid colors:1.3)" {
		t.Errorf("Expected '(vivid colors:1.3)', got '%s'", pos)
	}
}

func TestApplyWeightedMultiplePlaceholdersWrapsWhole(t *testing.T) {
	tmpl := &Template{Name: "Twice", Prompt: "{prompt} and {prompt}"}

	pos, _ := tmpl.ApplyWeighted("a dog", "", true, true, 2.0)

	if pos != "(a dog and a dog:2.0)" {
		t.Errorf("Expected '(a dog and a dog:2.0)', got '%s'", pos)
	}

	pos, _ = tmpl.ApplyWeighted("a dog", "", true, true, 1.0)
	if pos != "a dog and a dog" {
		t.Errorf("Expected 'a dog and a dog', got '%s'", pos)
	}
}

func TestApplyWeightedPrefixOnly(t *testing.T) {
	tmpl := &Template{Name: "Prefix", Prompt: "masterpiece {prompt}"}

	pos, _ := tmpl.ApplyWeighted("a bird", "", true, true, 1.2)

	if pos != "(masterpiece:1.2) a bird" {
		t.Errorf("Expected '(masterpiece:1.2) a bird', got '%s'", pos)
	}
}

func TestApplyWeightedDisabledBranches(t *testing.T) {
	tmpl := &Template{
		Name:           "Off",
		Prompt:         "style {prompt} here",
		NegativePrompt: "bad",
	}

	pos, neg := tmpl.ApplyWeighted("keep pos", "keep neg", false, false, 3.0)

	if pos != "keep pos" {
		t.Errorf("Disabled positive branch should pass through, got '%s'", pos)
	}
	if neg != "keep neg" {
		t.Errorf("Disabled negative branch should pass through, got '%s'", neg)
	}
}

func TestApplyWeightedEmptyCurrentPrompt(t *testing.T) {
	tmpl := &Template{Name: "Solo", Prompt: "ornate {prompt} frame"}

	pos, _ := tmpl.ApplyWeighted("", "", true, true, 1.0)

	if pos != "ornate frame" {
		t.Errorf("Empty current positive should be dropped from join, got '%s'", pos)
	}
}

func TestReplace(t *testing.T) {
	tmpl := &Template{
		Name:           "Legacy",
		Prompt:         "retro {prompt} poster",
		NegativePrompt: "modern",
	}

	pos, neg := tmpl.Replace("a car", "ugly")

	if pos != "retro a car poster" {
		t.Errorf("Expected 'retro a car poster', got '%s'", pos)
	}
	if neg != "modern, ugly" {
		t.Errorf("Expected 'modern, ugly', got '%s'", neg)
	}
}

func TestFormatWeight(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.0, "1.0"},
		{2.0, "2.0"},
		{1.5, "1.5"},
		{1.24, "1.24"},
		{1.236, "1.24"},
		{1.005, "1.0"}, // 1.005 is below the half in binary floating point
		{0.3, "0.3"},
		{10.0, "10.0"},
	}

	for _, c := range cases {
		if got := FormatWeight(c.in); got != c.want {
			t.Errorf("FormatWeight(%v): expected '%s', got '%s'", c.in, c.want, got)
		}
	}
}

func TestFlatKey(t *testing.T) {
	tmpl := &Template{Name: "Neon", Category: "Lighting"}
	if tmpl.FlatKey() != "Lighting: Neon" {
		t.Errorf("Expected 'Lighting: Neon', got '%s'", tmpl.FlatKey())
	}
}
