package models

import "strings"

// Category classifies a post. The set is closed: new values need a release.
type Category string

const (
	CategoryWedding   Category = "Wedding"
	CategoryPortraits Category = "Portraits"
	CategoryEvents    Category = "Events"
	CategoryProducts  Category = "Products"
)

// Categories lists every allowed category in display order.
var Categories = []Category{
	CategoryWedding,
	CategoryPortraits,
	CategoryEvents,
	CategoryProducts,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryNames returns the categories as plain strings, e.g. for SQL checks.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}

func categoryList() string {
	return strings.Join(CategoryNames(), ", ")
}
