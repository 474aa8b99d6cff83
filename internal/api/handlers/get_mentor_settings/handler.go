package get_mentor_settings

import (
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
)

const msgInvalidMentorID = "некорректный ID ментора"

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathUUID(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/settings - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	settings, err := h.service.Get(r.Context(), mentorID)
	if err != nil {
		h.logger.Error("GET /mentors/{id}/settings - Failed to get settings: mentor_id=%s, error=%v", mentorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, settings)
}
