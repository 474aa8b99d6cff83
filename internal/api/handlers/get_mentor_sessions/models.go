package get_mentor_sessions

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/service/sessions/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров.
// to включает указанный день: в фильтр уходит полночь следующего дня.
func ToServiceRequest(mentorID, requesterID uuid.UUID, fromStr, toStr, statusStr, includeInactiveStr string) (*models.GetMentorSessionsRequest, error) {
	from, err := handlers.ParseOptionalDate(fromStr)
	if err != nil {
		return nil, err
	}

	to, err := handlers.ParseOptionalDate(toStr)
	if err != nil {
		return nil, err
	}
	if to != nil {
		next := to.AddDate(0, 0, 1)
		to = &next
	}

	includeInactive, err := handlers.ParseOptionalBool(includeInactiveStr)
	if err != nil {
		return nil, err
	}

	return &models.GetMentorSessionsRequest{
		RequesterID:     requesterID,
		MentorID:        mentorID,
		From:            from,
		To:              to,
		Status:          handlers.OptionalString(statusStr),
		IncludeInactive: includeInactive,
	}, nil
}
