package specification

import (
	"encoding/json"

	"gorm.io/gorm"
)

// TitleOrContentLike does a case-insensitive literal match over title and
// content.
type TitleOrContentLike struct {
	Query string
}

func (s TitleOrContentLike) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("(title ILIKE ? OR content ILIKE ?)", pattern, pattern)
}

// HasTag matches entries whose jsonb tags array contains the given tag.
type HasTag struct {
	Tag string
}

func (s HasTag) Apply(db *gorm.DB) *gorm.DB {
	needle, _ := json.Marshal([]string{s.Tag})
	return db.Where("tags @> ?", string(needle))
}
