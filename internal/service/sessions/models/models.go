package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid session status")

	// ErrInvalidPeriod возвращается, когда from >= to
	ErrInvalidPeriod = errors.New("invalid period")
)

// Request модели

// CancelSessionRequest запрос на отмену сессии
type CancelSessionRequest struct {
	UserID             uuid.UUID
	CancellationReason string
}

// UpdateStatusRequest запрос на смену статуса ментором
type UpdateStatusRequest struct {
	UserID uuid.UUID
	Status string
}

// GetUserSessionsRequest запрос сессий спортсмена
type GetUserSessionsRequest struct {
	RequesterID uuid.UUID
	UserID      uuid.UUID
	Status      *string
}

// GetMentorSessionsRequest запрос расписания ментора
type GetMentorSessionsRequest struct {
	RequesterID     uuid.UUID
	MentorID        uuid.UUID
	From            *time.Time
	To              *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetMentorSessionsRequest) ToDomainFilter() (domain.MentorSessionsFilter, error) {
	filter := domain.MentorSessionsFilter{
		MentorID:        r.MentorID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return filter, ErrInvalidPeriod
	}

	if r.Status != nil {
		status, err := ToDomainSessionStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID                 uuid.UUID `json:"id"`
	MentorID           uuid.UUID `json:"mentorId"`
	UserID             uuid.UUID `json:"userId"`
	AvailabilitySlotID uuid.UUID `json:"availabilitySlotId"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	DurationMinutes    int       `json:"durationMinutes"`
	Status             string    `json:"status"`
	Notes              *string   `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // RFC3339

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionListResponse ответ со списком сессий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:                 s.ID,
		MentorID:           s.MentorID,
		UserID:             s.UserID,
		AvailabilitySlotID: s.AvailabilitySlotID,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		DurationMinutes:    int(s.Duration() / time.Minute),
		Status:             string(s.Status),
		Notes:              s.Notes,
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}

	if s.CancelledAt != nil {
		cancelled := s.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	resp := &SessionListResponse{
		Sessions: make([]SessionResponse, 0, len(sessions)),
	}

	for _, s := range sessions {
		if r := FromDomainSession(s); r != nil {
			resp.Sessions = append(resp.Sessions, *r)
		}
	}

	return resp
}

// ToDomainSessionStatus валидирует строковый статус
func ToDomainSessionStatus(status string) (domain.SessionStatus, error) {
	st, ok := domain.ParseSessionStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return st, nil
}
