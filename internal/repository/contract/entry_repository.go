package contract

import (
	"context"

	"journal-be/internal/entity"
	"journal-be/internal/repository/specification"
)

type EntryRepository interface {
	Create(ctx context.Context, entry *entity.Entry) error
	Update(ctx context.Context, entry *entity.Entry) error
	// Delete removes the rows matched by the specifications and reports how
	// many were affected, so callers can tell a miss from a delete.
	Delete(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Entry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Entry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
