package entity

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a single journal record. Tags keep the order the user typed them
// in and are not deduplicated here.
type Entry struct {
	Id        uuid.UUID
	Title     string
	Content   string
	Tags      []string
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
