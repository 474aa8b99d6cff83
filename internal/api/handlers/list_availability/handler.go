package list_availability

import (
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
)

const msgInvalidMentorID = "некорректный ID ментора"

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathUUID(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/availability - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	result, err := h.service.ListByMentor(r.Context(), mentorID)
	if err != nil {
		h.logger.Error("GET /mentors/{id}/availability - Failed to list slots: mentor_id=%s, error=%v", mentorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Slots)
}
