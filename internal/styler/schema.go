package styler

import "fmt"

// Weight bounds advertised to host UIs. The applicators themselves never
// clamp; callers are expected to respect the declared range.
const (
	WeightMin  = 0.0
	WeightMax  = 10.0
	WeightStep = 0.1

	// Slot weights exclude zero so a slot is disabled by its toggles, not
	// by a dead weight
	SlotWeightMin = 0.1

	DefaultSlotCount = 6
)

// SlotCounts lists the supported multi-applicator variants
var SlotCounts = []int{2, 4, 6, 8}

// ValidSlotCount reports whether n is a supported multi-applicator size
func ValidSlotCount(n int) bool {
	for _, c := range SlotCounts {
		if n == c {
			return true
		}
	}
	return false
}

// Param describes one typed input parameter for host UI schema generation
type Param struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"` // STRING, FLOAT, BOOLEAN, COMBO
	Default any      `json:"default,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Step    *float64 `json:"step,omitempty"`
	Options []string `json:"options,omitempty"`
}

func floatPtr(v float64) *float64 { return &v }

func weightParam(name string, min float64) Param {
	return Param{
		Name:    name,
		Type:    "FLOAT",
		Default: 1.0,
		Min:     floatPtr(min),
		Max:     floatPtr(WeightMax),
		Step:    floatPtr(WeightStep),
	}
}

// SingleSchema describes the single-style applicator's parameters. The
// style selector deliberately lists names from every category so a UI that
// swaps the name list client-side still validates server-side.
func SingleSchema(categories, styleNames []string) []Param {
	return []Param{
		{Name: "text_positive", Type: "STRING", Default: ""},
		{Name: "text_negative", Type: "STRING", Default: ""},
		{Name: "category", Type: "COMBO", Options: categories},
		{Name: "style", Type: "COMBO", Options: styleNames},
		weightParam("weight", WeightMin),
		{Name: "log_prompt", Type: "BOOLEAN", Default: true},
	}
}

// MultiSchema describes a multi-style applicator's parameters for the given
// slot count: base prompt/weight pairs followed by per-slot selector,
// weight, and branch toggles.
func MultiSchema(slotCount int, flatKeys []string) []Param {
	options := append([]string{"None"}, flatKeys...)

	params := []Param{
		{Name: "text_positive", Type: "STRING", Default: ""},
		weightParam("text_positive_weight", WeightMin),
		{Name: "text_negative", Type: "STRING", Default: ""},
		weightParam("text_negative_weight", WeightMin),
	}

	for i := 1; i <= slotCount; i++ {
		params = append(params,
			Param{Name: fmt.Sprintf("style_%d", i), Type: "COMBO", Default: "None", Options: options},
			weightParam(fmt.Sprintf("style_%d_weight", i), SlotWeightMin),
			Param{Name: fmt.Sprintf("style_%d_pos_on", i), Type: "BOOLEAN", Default: true},
			Param{Name: fmt.Sprintf("style_%d_neg_on", i), Type: "BOOLEAN", Default: true},
		)
	}

	params = append(params, Param{Name: "log_prompt", Type: "BOOLEAN", Default: true})
	return params
}
