package core

import (
	"reflect"
	"testing"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   Category
	}{
		{"putting-off label", []string{"@putting-off"}, CategoryPuttingOff},
		{"underscore variant", []string{"putting_off"}, CategoryPuttingOff},
		{"strategy beside other labels", []string{"@strategy", "urgent"}, CategoryStrategy},
		{"no labels defaults to timely", nil, CategoryTimely},
		{"explicit timely", []string{"@timely"}, CategoryTimely},
		{"unrelated labels default to timely", []string{"urgent", "home"}, CategoryTimely},
		{"case insensitive", []string{"@PUTTING-OFF"}, CategoryPuttingOff},
		{"mixed case strategy", []string{"Strategy-Work"}, CategoryStrategy},
		{"putting-off wins over strategy", []string{"@strategy", "@putting-off"}, CategoryPuttingOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.labels); got != tt.want {
				t.Errorf("Categorize(%v) = %v, want %v", tt.labels, got, tt.want)
			}
		})
	}
}

func TestApplyCategory(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		cat    Category
		want   []string
	}{
		{
			name:   "swaps category label and keeps the rest",
			labels: []string{"@strategy", "urgent"},
			cat:    CategoryPuttingOff,
			want:   []string{"urgent", "@putting-off"},
		},
		{
			name:   "no prior category label",
			labels: []string{"urgent"},
			cat:    CategoryTimely,
			want:   []string{"urgent", "@timely"},
		},
		{
			name:   "empty label set",
			labels: nil,
			cat:    CategoryStrategy,
			want:   []string{"@strategy"},
		},
		{
			name:   "strips multiple category labels",
			labels: []string{"@timely", "@strategy", "home"},
			cat:    CategoryPuttingOff,
			want:   []string{"home", "@putting-off"},
		},
		{
			name:   "same category is idempotent",
			labels: []string{"@timely", "home"},
			cat:    CategoryTimely,
			want:   []string{"home", "@timely"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyCategory(tt.labels, tt.cat)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ApplyCategory(%v, %v) = %v, want %v", tt.labels, tt.cat, got, tt.want)
			}
		})
	}
}

func TestCategoryValid(t *testing.T) {
	for _, cat := range []Category{CategoryPuttingOff, CategoryStrategy, CategoryTimely} {
		if !cat.Valid() {
			t.Errorf("expected %v valid", cat)
		}
	}
	if Category("urgent").Valid() {
		t.Error("expected arbitrary string invalid")
	}
	if Category("").Valid() {
		t.Error("expected empty category invalid")
	}
}
