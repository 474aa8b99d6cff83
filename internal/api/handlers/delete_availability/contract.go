package delete_availability

import (
	"context"

	"github.com/google/uuid"
)

type AvailabilityService interface {
	Deactivate(ctx context.Context, slotID, userID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
