package models

import (
	"reflect"
	"testing"
)

func TestFields_SetGet(t *testing.T) {
	values := map[string]string{
		FieldLocationState:      "New York",
		FieldLocationCity:       "Buffalo",
		FieldCountry:            "US",
		FieldJobTitle:           "Software Engineer",
		FieldEmployer:           "Google Inc",
		FieldSkill:              "Python",
		FieldMetricType:         "Hourly Rate",
		FieldPageNumber:         "3",
		FieldUniqueID:           "abc123def456",
		FieldAdditionalEmployer: "Acme",
		FieldLocationInfo:       "Austin-TX",
	}

	var f Fields
	for _, name := range FieldNames {
		if err := f.Set(name, values[name]); err != nil {
			t.Fatalf("Set(%q) error = %v", name, err)
		}
	}
	if !reflect.DeepEqual(f.Map(), values) {
		t.Errorf("Map() = %v, want %v", f.Map(), values)
	}
	if f.PageNumber != 3 {
		t.Errorf("PageNumber = %d, want 3", f.PageNumber)
	}
}

func TestFields_SetErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"unknown field", "salary", "1"},
		{"non-numeric page", FieldPageNumber, "two"},
		{"zero page", FieldPageNumber, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Fields
			if err := f.Set(tt.field, tt.value); err == nil {
				t.Errorf("Set(%q, %q) error = nil, want error", tt.field, tt.value)
			}
		})
	}
}

func TestFields_IsEmpty(t *testing.T) {
	var f Fields
	if !f.IsEmpty() {
		t.Error("zero Fields not empty")
	}
	if err := f.Set(FieldPageNumber, ""); err != nil || !f.IsEmpty() {
		t.Errorf("Set(page_number, \"\") = %v, IsEmpty = %v", err, f.IsEmpty())
	}
	f.Country = "US"
	if f.IsEmpty() {
		t.Error("Fields with country reported empty")
	}
}

func TestUnclassified(t *testing.T) {
	got := Unclassified("/about")
	if got.Section != SectionOther || got.Category != CategoryOther || !got.Fields.IsEmpty() {
		t.Errorf("Unclassified() = %+v", got)
	}
}
