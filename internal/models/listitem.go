package models

import "strings"

// Implement list.Item interface for the bubbles list component

// FilterValue returns the value used for filtering in lists
func (t Template) FilterValue() string {
	return cleanString(t.Category + " " + t.Name)
}

// Title satisfies the list.Item interface
func (t Template) Title() string {
	return cleanString(t.FlatKey())
}

// Description satisfies the list.Item interface
func (t Template) Description() string {
	desc := t.Prompt
	if t.NegativePrompt != "" {
		desc += " • neg: " + t.NegativePrompt
	}

	desc = cleanString(desc)

	// Truncate so the row fits a list line
	maxLength := 100
	if len(desc) > maxLength {
		desc = desc[:maxLength-3] + "..."
	}
	return desc
}

// cleanString removes control characters that might break list rendering
// and collapses whitespace runs.
func cleanString(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(' ')
		} else if r >= 32 && r != 127 {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}

	return strings.TrimSpace(cleaned)
}
