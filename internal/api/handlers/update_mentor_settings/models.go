package update_mentor_settings

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model, отсутствующие поля не меняются
type UpdateSettingsRequest struct {
	SessionUnitMinutes      *int `json:"sessionUnitMinutes" validate:"omitempty,min=5,max=240"`
	AdvanceBookingDays      *int `json:"advanceBookingDays" validate:"omitempty,min=0,max=365"`
	MinBookingNoticeMinutes *int `json:"minBookingNoticeMinutes" validate:"omitempty,min=0,max=10080"`
}

func (r *UpdateSettingsRequest) ToServiceRequest(userID, mentorID uuid.UUID) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:                  userID,
		MentorID:                mentorID,
		SessionUnitMinutes:      r.SessionUnitMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}
