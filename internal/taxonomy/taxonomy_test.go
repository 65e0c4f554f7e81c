package taxonomy

import "testing"

func TestCategoryLookups(t *testing.T) {
	tests := []struct {
		name        string
		category    string
		subcategory string
		wantCat     string
		wantSub     string
	}{
		{"known pair", "electronics", "phones", "Электроника", "Телефоны"},
		{"unknown subcategory falls back to id", "electronics", "tablets", "Электроника", "tablets"},
		{"unknown category falls back to id", "vehicles", "cars", "vehicles", "cars"},
		{"empty subcategory", "home", "", "Дом и сад", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryName(tt.category); got != tt.wantCat {
				t.Fatalf("CategoryName=%q want=%q", got, tt.wantCat)
			}
			if got := SubcategoryName(tt.category, tt.subcategory); got != tt.wantSub {
				t.Fatalf("SubcategoryName=%q want=%q", got, tt.wantSub)
			}
		})
	}
}

func TestCategoryByIDMiss(t *testing.T) {
	if _, ok := CategoryByID("nope"); ok {
		t.Fatal("expected miss for unknown id")
	}
}
