package models

// StyleSlot is one position in a multi-style application: which template to
// apply (by flat "category: name" key), its weight, and whether the positive
// and negative branches are enabled.
type StyleSlot struct {
	Key        string  `json:"style"`
	Weight     float64 `json:"weight"`
	PositiveOn bool    `json:"pos_on"`
	NegativeOn bool    `json:"neg_on"`
}

// EmptySlot reports whether the slot selects no style at all.
func (s StyleSlot) Empty() bool {
	return s.Key == "" || s.Key == NoneKey
}

// PromptPair carries a positive/negative prompt pair through the applicators.
type PromptPair struct {
	Positive string `json:"positive"`
	Negative string `json:"negative"`
}
