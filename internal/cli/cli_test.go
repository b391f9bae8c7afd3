package cli

import "testing"

func TestParseSlotSpec(t *testing.T) {
	slot, err := parseSlotSpec("Mood: Dark")
	if err != nil {
		t.Fatal(err)
	}
	if slot.Key != "Mood: Dark" || slot.Weight != 1.0 || !slot.PositiveOn || !slot.NegativeOn {
		t.Errorf("Unexpected slot for plain spec: %+v", slot)
	}

	slot, err = parseSlotSpec("Mood: Dark@1.5")
	if err != nil {
		t.Fatal(err)
	}
	if slot.Key != "Mood: Dark" || slot.Weight != 1.5 {
		t.Errorf("Expected weight 1.5 for 'Mood: Dark', got %+v", slot)
	}

	slot, err = parseSlotSpec("Mood: Dark@0.8!n")
	if err != nil {
		t.Fatal(err)
	}
	if slot.NegativeOn || !slot.PositiveOn {
		t.Errorf("Expected negative branch disabled, got %+v", slot)
	}

	slot, err = parseSlotSpec("Mood: Dark!p!n")
	if err != nil {
		t.Fatal(err)
	}
	if slot.PositiveOn || slot.NegativeOn {
		t.Errorf("Expected both branches disabled, got %+v", slot)
	}

	slot, err = parseSlotSpec("-")
	if err != nil {
		t.Fatal(err)
	}
	if !slot.Empty() {
		t.Errorf("Expected '-' to parse as an empty slot, got %+v", slot)
	}

	if _, err := parseSlotSpec("Mood: Dark@abc"); err == nil {
		t.Error("Expected an error for a malformed weight")
	}
}
