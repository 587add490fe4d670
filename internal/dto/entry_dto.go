package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEntryRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

// UpdateEntryRequest is a partial patch: only fields that are present are
// persisted. An all-nil patch is rejected by the service.
type UpdateEntryRequest struct {
	Id      uuid.UUID
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

type EntryResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	UserId    uuid.UUID  `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type DeleteEntryResponse struct {
	Id uuid.UUID `json:"id"`
}
