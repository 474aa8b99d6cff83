package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-MentorshipService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgMissingWeek     = "параметр weekStart обязателен"
	msgInvalidWeek     = "некорректный формат weekStart, ожидается YYYY-MM-DD"
	msgMentorNotFound  = "ментор не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/available-slots
// Query params: weekStart (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mentorID, err := handlers.PathUUID(r, "mentorId")
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/available-slots - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	weekStartStr := r.URL.Query().Get("weekStart")
	if weekStartStr == "" {
		handlers.RespondBadRequest(w, msgMissingWeek)
		return
	}

	weekStart, err := handlers.ParseDate(weekStartStr)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/available-slots - Invalid weekStart=%s: %v", weekStartStr, err)
		handlers.RespondBadRequest(w, msgInvalidWeek)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		MentorID:  mentorID,
		WeekStart: weekStart,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMentorNotFound):
			h.logger.Warn("GET /mentors/{id}/available-slots - Mentor not found: mentor_id=%s", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /mentors/{id}/available-slots - Failed to get slots: mentor_id=%s, error=%v",
				mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mentors/{id}/available-slots - Slots retrieved: mentor_id=%s, week=%s, count=%d",
		mentorID, weekStartStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
