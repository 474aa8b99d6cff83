package create_session

import (
	"time"

	"github.com/google/uuid"

	createSession "github.com/m04kA/SMC-MentorshipService/internal/usecase/create_session"
)

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	MentorID           string  `json:"mentorId" validate:"required,uuid"`
	AvailabilitySlotID string  `json:"availabilitySlotId" validate:"required,uuid"`
	StartTime          string  `json:"startTime" validate:"required"` // RFC3339
	Notes              *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID                 uuid.UUID `json:"id"`
	MentorID           uuid.UUID `json:"mentorId"`
	UserID             uuid.UUID `json:"userId"`
	AvailabilitySlotID uuid.UUID `json:"availabilitySlotId"`
	StartTime          string    `json:"startTime"`
	EndTime            string    `json:"endTime"`
	DurationMinutes    int       `json:"durationMinutes"`
	Status             string    `json:"status"`
	Notes              *string   `json:"notes,omitempty"`
	CreatedAt          string    `json:"createdAt"`
	UpdatedAt          string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSessionRequest) ToUseCaseRequest(userID uuid.UUID) (*createSession.Request, error) {
	mentorID, err := uuid.Parse(r.MentorID)
	if err != nil {
		return nil, err
	}

	slotID, err := uuid.Parse(r.AvailabilitySlotID)
	if err != nil {
		return nil, err
	}

	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createSession.Request{
		UserID:             userID,
		MentorID:           mentorID,
		AvailabilitySlotID: slotID,
		StartTime:          startTime,
		Notes:              r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createSession.Response) *SessionResponse {
	return &SessionResponse{
		ID:                 resp.ID,
		MentorID:           resp.MentorID,
		UserID:             resp.UserID,
		AvailabilitySlotID: resp.AvailabilitySlotID,
		StartTime:          resp.StartTime.UTC().Format(time.RFC3339),
		EndTime:            resp.EndTime.UTC().Format(time.RFC3339),
		DurationMinutes:    resp.DurationMinutes,
		Status:             resp.Status,
		Notes:              resp.Notes,
		CreatedAt:          resp.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
