package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// UpdateSettingsRequest частичное обновление настроек.
// nil означает "оставить текущее значение".
type UpdateSettingsRequest struct {
	UserID                  uuid.UUID
	MentorID                uuid.UUID
	SessionUnitMinutes      *int
	AdvanceBookingDays      *int
	MinBookingNoticeMinutes *int
}

// ApplyTo накладывает изменения на текущие настройки
func (r *UpdateSettingsRequest) ApplyTo(s *domain.MentorSettings) *domain.MentorSettings {
	updated := *s
	if r.SessionUnitMinutes != nil {
		updated.SessionUnitMinutes = *r.SessionUnitMinutes
	}
	if r.AdvanceBookingDays != nil {
		updated.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		updated.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
	return &updated
}

// SettingsResponse настройки ментора
type SettingsResponse struct {
	MentorID                uuid.UUID  `json:"mentorId"`
	SessionUnitMinutes      int        `json:"sessionUnitMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	IsDefault               bool       `json:"isDefault"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.MentorSettings, isDefault bool) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		MentorID:                s.MentorID,
		SessionUnitMinutes:      s.SessionUnitMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		IsDefault:               isDefault,
	}
	if !isDefault && !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		resp.UpdatedAt = &t
	}

	return resp
}
