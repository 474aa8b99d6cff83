package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-MentorshipService/internal/service/settings/models"
)

// Service сервис настроек бронирования ментора
type Service struct {
	repo          SettingsRepository
	profileClient ProfileServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, profileClient ProfileServiceClient, logger Logger) *Service {
	return &Service{
		repo:          repo,
		profileClient: profileClient,
		logger:        logger,
	}
}

// Get возвращает настройки ментора.
// Если настройки не сохранены, отдаются значения по умолчанию с IsDefault=true.
func (s *Service) Get(ctx context.Context, mentorID uuid.UUID) (*models.SettingsResponse, error) {
	current, isDefault, err := s.load(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(current, isDefault), nil
}

// Update частично обновляет настройки. Доступно только самому ментору.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: settings for mentor=%s by user=%s", req.MentorID, req.UserID)

	// 1. Права доступа
	if req.UserID != req.MentorID {
		s.logger.Warn("Update: user=%s tried to update settings of mentor=%s", req.UserID, req.MentorID)
		return nil, ErrAccessDenied
	}

	profile, err := s.profileClient.GetProfile(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, profileservice.ErrProfileNotFound) {
			return nil, ErrMentorNotFound
		}
		s.logger.Error("Update: failed to get profile=%s: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: Update - failed to get profile: %v", ErrInternal, err)
	}
	if !profile.IsMentor() {
		s.logger.Warn("Update: profile=%s is not an active mentor", req.MentorID)
		return nil, ErrAccessDenied
	}

	// 2. Накладываем изменения на текущие настройки
	current, _, err := s.load(ctx, req.MentorID)
	if err != nil {
		return nil, err
	}
	updated := req.ApplyTo(current)

	// 3. Валидация
	if err := updated.Validate(); err != nil {
		s.logger.Warn("Update: invalid settings for mentor=%s: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Сохранение
	saved, err := s.repo.Upsert(ctx, updated)
	if err != nil {
		s.logger.Error("Update: repository error for mentor=%s: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: mentor=%s settings saved: unit=%d, advance=%d, notice=%d",
		saved.MentorID, saved.SessionUnitMinutes, saved.AdvanceBookingDays, saved.MinBookingNoticeMinutes)
	return models.FromDomainSettings(saved, false), nil
}

func (s *Service) load(ctx context.Context, mentorID uuid.UUID) (*domain.MentorSettings, bool, error) {
	current, err := s.repo.GetByMentorID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultMentorSettings(mentorID), true, nil
		}
		s.logger.Error("load: repository error for mentor=%s: %v", mentorID, err)
		return nil, false, fmt.Errorf("%w: load - repository error: %v", ErrInternal, err)
	}
	return current, false, nil
}
