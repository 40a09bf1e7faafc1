package classify_test

import (
	"testing"

	"github.com/windfab/towerdesk/classify"
	"github.com/windfab/towerdesk/record"
)

var table = classify.Table{
	{Keywords: []string{"plate", "철판"}, Label: "Steel Plate"},
	{Keywords: []string{"flange", "플랜지"}, Label: "Flange"},
	{Keywords: []string{"paint", "coating", "도료"}, Label: "Paint & Coating"},
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"first rule", "s355 steel plate 20mm", "Steel Plate"},
		{"korean keyword", "포스코 철판 납품", "Steel Plate"},
		{"case insensitive", "Tower FLANGE forging", "Flange"},
		{"later rule", "epoxy coating supplier", "Paint & Coating"},
		{"table order wins over later match", "plate and paint combo", "Steel Plate"},
		{"no match", "crane rental", classify.DefaultLabel},
		{"empty text", "", classify.DefaultLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify.Classify(tt.text, table); got != tt.expected {
				t.Errorf("Classify(%q) = %q, expected %q", tt.text, got, tt.expected)
			}
		})
	}
}

// Property: classification is idempotent.
func TestClassify_Deterministic(t *testing.T) {
	inputs := []string{"steel plate", "flange", "도료", "nothing known", ""}
	for _, text := range inputs {
		first := classify.Classify(text, table)
		second := classify.Classify(text, table)
		if first != second {
			t.Errorf("Classify(%q) not deterministic: %q then %q", text, first, second)
		}
	}
}

func TestClassify_EmptyKeywordNeverMatches(t *testing.T) {
	bad := classify.Table{{Keywords: []string{""}, Label: "Everything"}}
	if got := classify.Classify("anything", bad); got != classify.DefaultLabel {
		t.Errorf("empty keyword matched: %q", got)
	}
}

func TestText(t *testing.T) {
	rec := record.Record{
		"supplier_name":  "PosCo",
		"specialization": []string{"철판", "Plate"},
		"notes":          nil,
	}
	got := classify.Text(rec, []string{"supplier_name", "specialization", "notes", "missing"})
	expected := "posco 철판 plate"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
