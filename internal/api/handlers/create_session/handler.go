package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MentorshipService/internal/api/handlers"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	createSession "github.com/m04kA/SMC-MentorshipService/internal/usecase/create_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат startTime, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotAvailable   = "выбранный слот уже занят"
	msgMentorNotFound     = "ментор не найден"
	msgSlotNotFound       = "окно доступности не найдено"
	msgInvalidTimeSlot    = "время начала не совпадает ни с одним слотом"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgSelfBooking        = "нельзя записаться к самому себе"
)

type Handler struct {
	useCase CreateSessionUseCase
	logger  Logger
}

func NewHandler(useCase CreateSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSessionRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /sessions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSession.ErrSlotNotAvailable):
			h.logger.Warn("POST /sessions - Slot not available: user_id=%s, slot_id=%s, start=%s",
				userID, req.AvailabilitySlotID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createSession.ErrMentorNotFound):
			h.logger.Warn("POST /sessions - Mentor not found: mentor_id=%s", req.MentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, createSession.ErrSlotNotFound):
			h.logger.Warn("POST /sessions - Slot not found: slot_id=%s", req.AvailabilitySlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createSession.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createSession.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createSession.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createSession.ErrSelfBooking):
			handlers.RespondBadRequest(w, msgSelfBooking)

		case errors.Is(err, createSession.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /sessions - Failed to create session: user_id=%s, mentor_id=%s, error=%v",
				userID, req.MentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session created: session_id=%s, user_id=%s, mentor_id=%s",
		result.ID, userID, result.MentorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
