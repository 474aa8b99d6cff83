package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecurringPattern шаблон повторения окна доступности
type RecurringPattern string

const (
	PatternDaily   RecurringPattern = "daily"
	PatternWeekly  RecurringPattern = "weekly"
	PatternMonthly RecurringPattern = "monthly"
)

// AvailabilitySlot окно доступности ментора.
// Для повторяющихся окон StartTime/EndTime задают первое вхождение (якорь),
// длительность сохраняется для всех вхождений.
type AvailabilitySlot struct {
	ID               uuid.UUID
	MentorID         uuid.UUID
	StartTime        time.Time
	EndTime          time.Time
	IsRecurring      bool
	RecurringPattern *RecurringPattern // только для IsRecurring
	RecurringEndDate *time.Time        // nil = без ограничения
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Duration длительность одного вхождения
func (s *AvailabilitySlot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Recurrence возвращает правило повторения.
// Для неповторяющегося окна возвращает ErrNotRecurring.
func (s *AvailabilitySlot) Recurrence() (Recurrence, error) {
	if !s.IsRecurring {
		return nil, ErrNotRecurring
	}
	if s.RecurringPattern == nil {
		return nil, ErrMissingRecurringPattern
	}
	return ParseRecurrence(*s.RecurringPattern)
}

// Validate проверяет, что окно можно развернуть
func (s *AvailabilitySlot) Validate() error {
	if !s.EndTime.After(s.StartTime) {
		return fmt.Errorf("%w: start=%s end=%s", ErrInvalidTimeRange,
			s.StartTime.Format(time.RFC3339), s.EndTime.Format(time.RFC3339))
	}

	if !s.IsRecurring {
		return nil
	}

	if _, err := s.Recurrence(); err != nil {
		return err
	}

	if s.RecurringEndDate != nil && s.RecurringEndDate.Before(s.StartTime) {
		return ErrRecurringEndBeforeStart
	}

	return nil
}

// HasEndDate true, если у повторения есть дата окончания
func (s *AvailabilitySlot) HasEndDate() bool {
	return s.IsRecurring && s.RecurringEndDate != nil
}
