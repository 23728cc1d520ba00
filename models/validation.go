package models

import (
	"strings"

	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

// ValidateCreate checks a full post: title, content and category are required.
// It returns a copy with text fields trimmed.
func ValidateCreate(in PostInput) (PostInput, error) {
	return validate(in, false)
}

// ValidateUpdate applies the create rules to every field that is present.
func ValidateUpdate(in PostInput) (PostInput, error) {
	return validate(in, true)
}

func validate(in PostInput, partial bool) (PostInput, error) {
	out := PostInput{}
	violations := map[string]string{}

	requireText := func(field, label string, v *string) *string {
		if v == nil {
			if !partial {
				violations[field] = label + " is required"
			}
			return nil
		}
		trimmed := strings.TrimSpace(*v)
		if trimmed == "" {
			violations[field] = label + " is required"
		}
		return &trimmed
	}

	out.Title = requireText("title", "Title", in.Title)
	out.Content = requireText("content", "Content", in.Content)

	if in.ImageURL != nil {
		url := strings.TrimSpace(*in.ImageURL)
		// an empty url on create is the same as no image
		if url != "" || partial {
			out.ImageURL = &url
		}
	}

	switch {
	case in.Category == nil && !partial:
		violations["category"] = "Category is required"
	case in.Category != nil:
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			violations["category"] = "Category is required"
		} else if !Category(category).Valid() {
			violations["category"] = "Category must be one of: " + categoryList()
		}
		out.Category = &category
	}

	if len(violations) > 0 {
		return PostInput{}, utils.NewValidationError(violations)
	}
	return out, nil
}
