package implementation

import (
	"context"
	"encoding/json"

	"journal-be/internal/model"
	"journal-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SystemLogRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) contract.SystemLogRepository {
	return &SystemLogRepositoryImpl{db: db}
}

func (r *SystemLogRepositoryImpl) Append(ctx context.Context, level, module, message string, details map[string]interface{}) error {
	row := model.SystemLog{
		Level:   level,
		Module:  &module,
		Message: message,
	}

	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			return err
		}
		s := string(payload)
		row.Details = &s
	}

	return r.db.WithContext(ctx).Create(&row).Error
}
