package labels

import "testing"

func TestLabelSetIsDense(t *testing.T) {
	if Count() != 5 {
		t.Fatalf("expected 5 labels, got %d", Count())
	}
	seenNames := map[string]bool{}
	seenColors := map[string]bool{}
	for i, l := range All() {
		if int(l) != i {
			t.Errorf("label at position %d has id %d", i, int(l))
		}
		if !l.Valid() {
			t.Errorf("label %d should be valid", i)
		}
		if seenNames[l.Name()] {
			t.Errorf("duplicate label name %q", l.Name())
		}
		seenNames[l.Name()] = true
		if seenColors[l.Color()] {
			t.Errorf("duplicate label color %q", l.Color())
		}
		seenColors[l.Color()] = true
	}
}

func TestFromIndex(t *testing.T) {
	tests := []struct {
		index int
		ok    bool
		name  string
	}{
		{0, true, "affected_individuals"},
		{1, true, "infrastructure_and_utility_damage"},
		{4, true, "rescue_volunteering_or_donation"},
		{5, false, ""},
		{-1, false, ""},
	}

	for _, tt := range tests {
		l, ok := FromIndex(tt.index)
		if ok != tt.ok {
			t.Errorf("FromIndex(%d) ok = %v, want %v", tt.index, ok, tt.ok)
			continue
		}
		if ok && l.Name() != tt.name {
			t.Errorf("FromIndex(%d) name = %q, want %q", tt.index, l.Name(), tt.name)
		}
	}
}

func TestFromNameRoundTrip(t *testing.T) {
	for _, l := range All() {
		got, ok := FromName(l.Name())
		if !ok || got != l {
			t.Errorf("FromName(%q) = %v, %v; want %v, true", l.Name(), got, ok, l)
		}
	}
	if _, ok := FromName("no_such_label"); ok {
		t.Error("FromName should reject unknown names")
	}
}

func TestInvalidLabelRendering(t *testing.T) {
	bad := Label(9)
	if bad.Valid() {
		t.Fatal("label 9 should be invalid")
	}
	if bad.DisplayName() != bad.Name() {
		t.Errorf("invalid label display name should fall back to machine name")
	}
	if bad.Color() != "#000000" {
		t.Errorf("invalid label color = %q", bad.Color())
	}
}
