package contract

import "context"

// SystemLogRepository appends activity rows. Details is an optional JSON
// payload.
type SystemLogRepository interface {
	Append(ctx context.Context, level, module, message string, details map[string]interface{}) error
}
