package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MentorSettings настройки бронирования ментора
type MentorSettings struct {
	MentorID                uuid.UUID
	SessionUnitMinutes      int // длина подслота
	AdvanceBookingDays      int // 0 = без ограничения
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultMentorSettings настройки для ментора без сохранённой записи
func DefaultMentorSettings(mentorID uuid.UUID) *MentorSettings {
	return &MentorSettings{
		MentorID:                mentorID,
		SessionUnitMinutes:      DefaultSessionUnitMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}

func (s *MentorSettings) Unit() time.Duration {
	return time.Duration(s.SessionUnitMinutes) * time.Minute
}

func (s *MentorSettings) MinNotice() time.Duration {
	return time.Duration(s.MinBookingNoticeMinutes) * time.Minute
}

// HasAdvanceBookingLimit true, если есть ограничение на бронирование вперёд
func (s *MentorSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// LatestBookableStart самое позднее допустимое начало сессии.
// ok=false, если ограничения нет.
func (s *MentorSettings) LatestBookableStart(now time.Time) (time.Time, bool) {
	if !s.HasAdvanceBookingLimit() {
		return time.Time{}, false
	}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, s.AdvanceBookingDays+1), true
}

// IsBookable проверяет ограничения по времени для начала сессии
func (s *MentorSettings) IsBookable(start, now time.Time) bool {
	if start.Before(now.Add(s.MinNotice())) {
		return false
	}
	if latest, ok := s.LatestBookableStart(now); ok && !start.Before(latest) {
		return false
	}
	return true
}

// Validate проверяет границы значений
func (s *MentorSettings) Validate() error {
	if s.SessionUnitMinutes < MinSessionUnitMinutes || s.SessionUnitMinutes > MaxSessionUnitMinutes {
		return fmt.Errorf("%w: sessionUnitMinutes must be between %d and %d",
			ErrInvalidSettings, MinSessionUnitMinutes, MaxSessionUnitMinutes)
	}
	if minutesPerDay%s.SessionUnitMinutes != 0 {
		return fmt.Errorf("%w: sessionUnitMinutes must divide a day", ErrInvalidSettings)
	}
	if s.AdvanceBookingDays < MinAdvanceBookingDays || s.AdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidSettings, MinAdvanceBookingDays, MaxAdvanceBookingDays)
	}
	if s.MinBookingNoticeMinutes < MinBookingNoticeMinutes || s.MinBookingNoticeMinutes > MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidSettings, MinBookingNoticeMinutes, MaxBookingNoticeMinutes)
	}
	return nil
}
