package get_available_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/ptr"
)

// defaultWindowDays длина окна поиска по умолчанию
const defaultWindowDays = 7

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MentorID == uuid.Nil {
		return fmt.Errorf("%w: mentorID is required", ErrInvalidInput)
	}

	if req.WeekStart.IsZero() {
		return fmt.Errorf("%w: weekStart is required", ErrInvalidInput)
	}

	return nil
}

// window возвращает [начало, конец) окна поиска, начиная с полуночи UTC
func window(weekStart time.Time, days int) (time.Time, time.Time) {
	ws := weekStart.UTC()
	start := time.Date(ws.Year(), ws.Month(), ws.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, days)
}

// sessionsRange диапазон начал сессий, которые могут пересечься с подслотами окна
func sessionsRange(windowStart, windowEnd time.Time) (time.Time, time.Time) {
	margin := time.Duration(domain.MaxSessionUnitMinutes) * time.Minute
	return windowStart.Add(-margin), windowEnd.Add(margin)
}

// clipToWindow оставляет подслоты, начинающиеся в [windowStart, windowEnd)
func clipToWindow(subSlots []domain.ExpandedSlot, windowStart, windowEnd time.Time) []domain.ExpandedSlot {
	out := make([]domain.ExpandedSlot, 0, len(subSlots))
	for _, s := range subSlots {
		if s.StartTime.Before(windowStart) || !s.StartTime.Before(windowEnd) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// filterBookable оставляет подслоты, удовлетворяющие minBookingNotice и advanceBookingDays
func filterBookable(subSlots []domain.ExpandedSlot, settings *domain.MentorSettings, now time.Time) []domain.ExpandedSlot {
	out := make([]domain.ExpandedSlot, 0, len(subSlots))
	for _, s := range subSlots {
		if settings.IsBookable(s.StartTime, now) {
			out = append(out, s)
		}
	}
	return out
}

// toResponseSlots конвертирует подслоты в модель ответа
func toResponseSlots(subSlots []domain.ExpandedSlot) []Slot {
	out := make([]Slot, 0, len(subSlots))
	for _, s := range subSlots {
		slot := Slot{
			AvailabilitySlotID: s.OriginalSlotID,
			StartTime:          s.StartTime,
			EndTime:            s.EndTime,
			DurationMinutes:    int(s.Duration() / time.Minute),
			IsRecurring:        s.IsRecurring,
		}
		if s.RecurringPattern != nil {
			slot.RecurringPattern = ptr.Ptr(string(*s.RecurringPattern))
		}
		out = append(out, slot)
	}
	return out
}
