package mapper

import (
	"encoding/json"
	"time"

	"journal-be/internal/entity"
	"journal-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EntryMapper struct{}

func NewEntryMapper() *EntryMapper {
	return &EntryMapper{}
}

func (m *EntryMapper) ToEntity(e *model.Entry) *entity.Entry {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	// Tags column is a jsonb array; a row predating the column or a null
	// payload maps to an empty slice, never nil.
	tags := []string{}
	if len(e.Tags) > 0 {
		_ = json.Unmarshal(e.Tags, &tags)
		if tags == nil {
			tags = []string{}
		}
	}

	return &entity.Entry{
		Id:        e.Id,
		Title:     e.Title,
		Content:   e.Content,
		Tags:      tags,
		UserId:    e.UserId,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: e.DeletedAt.Valid,
	}
}

func (m *EntryMapper) ToModel(e *entity.Entry) *model.Entry {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, _ := json.Marshal(tags)

	return &model.Entry{
		Id:        e.Id,
		Title:     e.Title,
		Content:   e.Content,
		Tags:      datatypes.JSON(tagsJSON),
		UserId:    e.UserId,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *EntryMapper) ToEntities(entries []*model.Entry) []*entity.Entry {
	entities := make([]*entity.Entry, len(entries))
	for i, e := range entries {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
