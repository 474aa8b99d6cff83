package cancel_session

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/service/sessions/models"
)

// CancelSessionRequest HTTP request model, тело необязательно
type CancelSessionRequest struct {
	CancellationReason string `json:"cancellationReason" validate:"max=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelSessionRequest) ToServiceRequest(userID uuid.UUID) *models.CancelSessionRequest {
	return &models.CancelSessionRequest{
		UserID:             userID,
		CancellationReason: r.CancellationReason,
	}
}
