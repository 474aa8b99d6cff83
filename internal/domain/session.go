package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus статус сессии
type SessionStatus string

const (
	StatusPending           SessionStatus = "pending"
	StatusConfirmed         SessionStatus = "confirmed"
	StatusCompleted         SessionStatus = "completed"
	StatusCancelledByUser   SessionStatus = "cancelled_by_user"
	StatusCancelledByMentor SessionStatus = "cancelled_by_mentor"
	StatusNoShow            SessionStatus = "no_show"
	StatusExpired           SessionStatus = "expired"
)

// Session забронированная сессия с ментором.
// AvailabilitySlotID ссылается на исходное окно, StartTime на конкретный подслот.
type Session struct {
	ID                 uuid.UUID
	MentorID           uuid.UUID
	UserID             uuid.UUID
	AvailabilitySlotID uuid.UUID
	StartTime          time.Time
	EndTime            time.Time
	Status             SessionStatus
	Notes              *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive true, если сессия занимает слот (pending или confirmed)
func (s *Session) IsActive() bool {
	return s.Status == StatusPending || s.Status == StatusConfirmed
}

// CanBeCancelled отменить можно только активную сессию
func (s *Session) CanBeCancelled() bool {
	return s.IsActive()
}

// IsCancelled true для отменённых пользователем или ментором
func (s *Session) IsCancelled() bool {
	return s.Status == StatusCancelledByUser || s.Status == StatusCancelledByMentor
}

// IsParticipant true, если userID участник сессии (спортсмен или ментор)
func (s *Session) IsParticipant(userID uuid.UUID) bool {
	return s.UserID == userID || s.MentorID == userID
}

// CanTransitionTo разрешённые ментору переходы статуса:
// pending -> confirmed, confirmed -> completed | no_show
func (s *Session) CanTransitionTo(next SessionStatus) bool {
	switch s.Status {
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusNoShow
	default:
		return false
	}
}

// Key ключ занятого подслота
func (s *Session) Key() SlotKey {
	return NewSlotKey(s.AvailabilitySlotID, s.StartTime)
}

// Duration длительность сессии
func (s *Session) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// MentorSessionsFilter фильтр сессий ментора
type MentorSessionsFilter struct {
	MentorID        uuid.UUID      // Обязательный параметр
	From            *time.Time     // start_time >= From
	To              *time.Time     // start_time < To
	Status          *SessionStatus // Фильтр по статусу
	IncludeInactive bool           // Включать завершённые и отменённые
}
