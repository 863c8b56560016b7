package food

import "strings"

// Category is the food group of an entry.
type Category string

const (
	CategoryVegetable Category = "Vegetable"
	CategoryProtein   Category = "Protein"
	CategoryFruit     Category = "Fruit"
	CategoryGrain     Category = "Grain"
	CategorySnack     Category = "Snack"
	CategoryLiquid    Category = "Liquid"
	CategoryOther     Category = "Other"

	// CategoryAll is the filter wildcard. It is never stored on an entry.
	CategoryAll Category = "All"
)

var categories = []Category{
	CategoryVegetable,
	CategoryProtein,
	CategoryFruit,
	CategoryGrain,
	CategorySnack,
	CategoryLiquid,
	CategoryOther,
}

// Categories returns the entry categories in display order.
// The first one is the default category of a new entry.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// DefaultCategory is the category a fresh form starts with.
func DefaultCategory() Category {
	return categories[0]
}

// FilterCategories returns CategoryAll followed by every entry category,
// which is the option list of the history filter.
func FilterCategories() []Category {
	return append([]Category{CategoryAll}, categories...)
}

// IsValid reports whether c is one of the entry categories.
// CategoryAll is not valid on an entry.
func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Index returns the position of c in Categories(), or -1.
func (c Category) Index() int {
	for i, known := range categories {
		if c == known {
			return i
		}
	}
	return -1
}

// ParseCategory resolves a category name case-insensitively.
// "all" resolves to CategoryAll; callers that need an entry category
// must check IsValid.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(CategoryAll)) {
		return CategoryAll, true
	}
	for _, known := range categories {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// Next returns the category after c in options, wrapping around.
// Unknown values restart at the first option.
func Next(options []Category, c Category) Category {
	for i, o := range options {
		if o == c {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// Prev returns the category before c in options, wrapping around.
func Prev(options []Category, c Category) Category {
	for i, o := range options {
		if o == c {
			return options[(i-1+len(options))%len(options)]
		}
	}
	return options[0]
}
