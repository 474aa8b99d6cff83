package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	availabilityRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-MentorshipService/internal/service/availability/models"
)

// Service сервис для управления окнами доступности менторов
type Service struct {
	repo          AvailabilityRepository
	profileClient ProfileServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo AvailabilityRepository, profileClient ProfileServiceClient, logger Logger) *Service {
	return &Service{
		repo:          repo,
		profileClient: profileClient,
		logger:        logger,
	}
}

// Create создаёт окно доступности.
// Создать окно может только сам ментор.
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: mentor=%s, start=%s, end=%s, recurring=%t",
		req.MentorID, req.StartTime, req.EndTime, req.IsRecurring)

	if req.UserID != req.MentorID {
		s.logger.Warn("Create: user=%s tried to create slot for mentor=%s", req.UserID, req.MentorID)
		return nil, ErrAccessDenied
	}

	if err := s.checkMentor(ctx, req.MentorID); err != nil {
		return nil, err
	}

	slot := req.ToDomainSlot()
	if !req.IsRecurring && (req.RecurringPattern != nil || req.RecurringEndDate != nil) {
		return nil, fmt.Errorf("%w: recurring fields set for one-off slot", ErrInvalidInput)
	}
	if err := slot.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("Create: repository error for mentor=%s: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created slot id=%s for mentor=%s", created.ID, created.MentorID)
	return models.FromDomainSlot(created), nil
}

// ListByMentor возвращает активные окна ментора (определения, без разворачивания)
func (s *Service) ListByMentor(ctx context.Context, mentorID uuid.UUID) (*models.SlotListResponse, error) {
	slots, err := s.repo.GetActiveByMentor(ctx, mentorID)
	if err != nil {
		s.logger.Error("ListByMentor: repository error for mentor=%s: %v", mentorID, err)
		return nil, fmt.Errorf("%w: ListByMentor - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(slots), nil
}

// Deactivate мягко удаляет окно. Доступно только владельцу.
func (s *Service) Deactivate(ctx context.Context, slotID, userID uuid.UUID) error {
	s.logger.Info("Deactivate: slot=%s by user=%s", slotID, userID)

	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("Deactivate: repository error for slot=%s: %v", slotID, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	if slot.MentorID != userID {
		s.logger.Warn("Deactivate: user=%s is not owner of slot=%s", userID, slotID)
		return ErrAccessDenied
	}

	if !slot.IsActive {
		return ErrSlotNotFound
	}

	if err := s.repo.Deactivate(ctx, slotID); err != nil {
		if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("Deactivate: repository error for slot=%s: %v", slotID, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: slot=%s deactivated", slotID)
	return nil
}

// checkMentor проверяет, что пользователь существует и является ментором
func (s *Service) checkMentor(ctx context.Context, mentorID uuid.UUID) error {
	profile, err := s.profileClient.GetProfile(ctx, mentorID)
	if err != nil {
		if errors.Is(err, profileservice.ErrProfileNotFound) {
			s.logger.Warn("checkMentor: profile=%s not found", mentorID)
			return ErrMentorNotFound
		}
		s.logger.Error("checkMentor: failed to get profile=%s: %v", mentorID, err)
		return fmt.Errorf("%w: checkMentor - failed to get profile: %v", ErrInternal, err)
	}

	if !profile.IsMentor() {
		s.logger.Warn("checkMentor: profile=%s is not an active mentor", mentorID)
		return ErrAccessDenied
	}

	return nil
}
