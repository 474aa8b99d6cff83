package sessions

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/session"
	"github.com/m04kA/SMC-MentorshipService/internal/service/sessions/models"
)

// Service сервис для работы с сессиями
type Service struct {
	sessionRepo SessionRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(sessionRepo SessionRepository, logger Logger) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// GetByID получает сессию по ID.
// Видеть сессию могут только её участники: спортсмен и ментор.
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching session id=%s for user=%s", id, userID)

	session, err := s.getSession(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if !session.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%s to session id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainSession(session), nil
}

// GetUserSessions история сессий спортсмена. Доступно только ему самому.
func (s *Service) GetUserSessions(ctx context.Context, req *models.GetUserSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("GetUserSessions: fetching sessions for user=%s, status=%v", req.UserID, req.Status)

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserSessions: user=%s requested sessions of user=%s", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	var status *domain.SessionStatus
	if req.Status != nil {
		st, err := models.ToDomainSessionStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserSessions: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	sessions, err := s.sessionRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserSessions: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserSessions: fetched %d sessions for user=%s", len(sessions), req.UserID)
	return models.FromDomainSessionList(sessions), nil
}

// GetMentorSessions расписание ментора с фильтрацией по периоду и статусу.
// Доступно только самому ментору.
func (s *Service) GetMentorSessions(ctx context.Context, req *models.GetMentorSessionsRequest) (*models.SessionListResponse, error) {
	logMsg := fmt.Sprintf("GetMentorSessions: fetching sessions for mentor=%s", req.MentorID)
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.RequesterID != req.MentorID {
		s.logger.Warn("GetMentorSessions: user=%s is not mentor=%s", req.RequesterID, req.MentorID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetMentorSessions: invalid filter for mentor=%s: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sessions, err := s.sessionRepo.GetByMentorWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetMentorSessions: repository error for mentor=%s: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: GetMentorSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMentorSessions: fetched %d sessions for mentor=%s", len(sessions), req.MentorID)
	return models.FromDomainSessionList(sessions), nil
}

// Cancel отменяет сессию.
// Спортсмен получает статус cancelled_by_user, ментор cancelled_by_mentor.
// После отмены подслот снова появляется в свободных.
func (s *Service) Cancel(ctx context.Context, sessionID uuid.UUID, req *models.CancelSessionRequest) error {
	s.logger.Info("Cancel: cancelling session id=%s by user=%s", sessionID, req.UserID)

	if utf8.RuneCountInString(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	session, err := s.getSession(ctx, sessionID, "Cancel")
	if err != nil {
		return err
	}

	var cancelStatus domain.SessionStatus
	switch req.UserID {
	case session.UserID:
		cancelStatus = domain.StatusCancelledByUser
	case session.MentorID:
		cancelStatus = domain.StatusCancelledByMentor
	default:
		s.logger.Warn("Cancel: access denied for user=%s to session id=%s", req.UserID, sessionID)
		return ErrAccessDenied
	}

	if !session.CanBeCancelled() {
		s.logger.Warn("Cancel: session id=%s cannot be cancelled, status=%s", sessionID, session.Status)
		return ErrCannotCancel
	}

	if err := s.sessionRepo.Cancel(ctx, sessionID, cancelStatus, req.CancellationReason); err != nil {
		// Сессия успела перейти в неактивный статус между чтением и обновлением
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Cancel: session id=%s is no longer active", sessionID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for session id=%s: %v", sessionID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: cancelled session id=%s with status=%s", sessionID, cancelStatus)
	return nil
}

// UpdateStatus меняет статус сессии. Доступно только ментору сессии.
func (s *Service) UpdateStatus(ctx context.Context, sessionID uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: session id=%s to status=%s by user=%s", sessionID, req.Status, req.UserID)

	newStatus, err := models.ToDomainSessionStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	session, err := s.getSession(ctx, sessionID, "UpdateStatus")
	if err != nil {
		return err
	}

	if session.MentorID != req.UserID {
		s.logger.Warn("UpdateStatus: user=%s is not mentor of session id=%s", req.UserID, sessionID)
		return ErrAccessDenied
	}

	if !session.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for session id=%s",
			session.Status, newStatus, sessionID)
		return ErrInvalidTransition
	}

	if err := s.sessionRepo.UpdateStatus(ctx, sessionID, newStatus); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("UpdateStatus: repository error for session id=%s: %v", sessionID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: session id=%s is now %s", sessionID, newStatus)
	return nil
}

func (s *Service) getSession(ctx context.Context, id uuid.UUID, op string) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("%s: session id=%s not found", op, id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("%s: repository error for session id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return session, nil
}
