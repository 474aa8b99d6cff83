package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение свободных подслотов
type Request struct {
	MentorID  uuid.UUID // ID ментора
	WeekStart time.Time // Начало окна (полночь UTC)
}

// Response модель ответа со списком свободных подслотов
type Response struct {
	MentorID    uuid.UUID
	WeekStart   time.Time
	WeekEnd     time.Time // не включительно
	UnitMinutes int
	Slots       []Slot
}

// Slot свободный подслот
type Slot struct {
	AvailabilitySlotID uuid.UUID // исходное окно
	StartTime          time.Time
	EndTime            time.Time
	DurationMinutes    int
	IsRecurring        bool
	RecurringPattern   *string
}
