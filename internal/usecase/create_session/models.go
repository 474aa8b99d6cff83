package create_session

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на бронирование подслота
type Request struct {
	UserID             uuid.UUID // спортсмен
	MentorID           uuid.UUID
	AvailabilitySlotID uuid.UUID // исходное окно
	StartTime          time.Time // начало подслота
	Notes              *string
}

// Response модель ответа с созданной сессией
type Response struct {
	ID                 uuid.UUID
	MentorID           uuid.UUID
	UserID             uuid.UUID
	AvailabilitySlotID uuid.UUID
	StartTime          time.Time
	EndTime            time.Time
	DurationMinutes    int
	Status             string
	Notes              *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
