package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExpandedSlot конкретное вхождение окна доступности (или его часть после нарезки).
// Не сохраняется в БД.
type ExpandedSlot struct {
	OriginalSlotID   uuid.UUID // ID исходного окна, общий для всех вхождений
	MentorID         uuid.UUID
	StartTime        time.Time
	EndTime          time.Time
	IsRecurring      bool
	RecurringPattern *RecurringPattern
}

// Duration длительность вхождения
func (s *ExpandedSlot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Key ключ слота для сопоставления с бронированиями
func (s *ExpandedSlot) Key() SlotKey {
	return NewSlotKey(s.OriginalSlotID, s.StartTime)
}

// SlotKey пара (исходное окно, момент начала).
// Момент хранится в наносекундах Unix, поэтому не зависит от часового пояса значения.
type SlotKey struct {
	SlotID        uuid.UUID
	StartUnixNano int64
}

func NewSlotKey(slotID uuid.UUID, start time.Time) SlotKey {
	return SlotKey{SlotID: slotID, StartUnixNano: start.UTC().UnixNano()}
}
