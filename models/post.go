package models

import (
	"time"
)

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Title     string    `json:"title" gorm:"type:text;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	ImageURL  string    `json:"imageUrl,omitempty" gorm:"column:image_url"`
	Category  Category  `json:"category" gorm:"type:varchar(32);not null;index;check:category IN ('Wedding','Portraits','Events','Products')"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;index"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`
}

func (Post) TableName() string {
	return "posts"
}

// PostInput carries client supplied fields. A nil pointer means "not sent",
// which matters for partial updates.
type PostInput struct {
	Title    *string `json:"title" form:"title"`
	Content  *string `json:"content" form:"content"`
	ImageURL *string `json:"imageUrl" form:"imageUrl"`
	Category *string `json:"category" form:"category"`
}

// Apply copies every present field of a validated input onto p.
func (in PostInput) Apply(p *Post) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.Category != nil {
		p.Category = Category(*in.Category)
	}
}

// ListFilter narrows a post listing. Zero Category means all categories.
type ListFilter struct {
	Category Category
	Limit    int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// EffectiveLimit applies the default and the upper bound.
func (f ListFilter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}
