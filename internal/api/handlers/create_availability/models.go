package create_availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability/models"
)

// CreateAvailabilityRequest HTTP request model
type CreateAvailabilityRequest struct {
	StartTime        time.Time `json:"startTime" validate:"required"`
	EndTime          time.Time `json:"endTime" validate:"required"`
	IsRecurring      bool      `json:"isRecurring"`
	RecurringPattern *string   `json:"recurringPattern" validate:"omitempty,oneof=daily weekly monthly"`
	// RecurringEndDate RFC3339 или YYYY-MM-DD (дата включается целиком)
	RecurringEndDate *string `json:"recurringEndDate"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateAvailabilityRequest) ToServiceRequest(userID, mentorID uuid.UUID) (*models.CreateSlotRequest, error) {
	req := &models.CreateSlotRequest{
		UserID:           userID,
		MentorID:         mentorID,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		IsRecurring:      r.IsRecurring,
		RecurringPattern: r.RecurringPattern,
	}

	if r.RecurringEndDate != nil && *r.RecurringEndDate != "" {
		end, err := parseEndDate(*r.RecurringEndDate)
		if err != nil {
			return nil, err
		}
		req.RecurringEndDate = &end
	}

	return req, nil
}

func parseEndDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	day, err := handlers.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid recurringEndDate %q", s)
	}
	return day.Add(24*time.Hour - time.Nanosecond), nil
}
