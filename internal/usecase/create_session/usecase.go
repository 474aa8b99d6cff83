package create_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/availability"
	sessionRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/session"
	settingsRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-MentorshipService/internal/slots"
)

// UseCase use case для бронирования подслота
type UseCase struct {
	availabilityRepo AvailabilityRepository
	sessionRepo      SessionRepository
	settingsRepo     SettingsRepository
	profileClient    ProfileServiceClient
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	sessionRepo SessionRepository,
	settingsRepo SettingsRepository,
	profileClient ProfileServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		sessionRepo:      sessionRepo,
		settingsRepo:     settingsRepo,
		profileClient:    profileClient,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case бронирования.
// Проверка и вставка идут в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSession: user=%s, mentor=%s, slot=%s, start=%s",
		req.UserID, req.MentorID, req.AvailabilitySlotID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	start := req.StartTime.UTC()

	// 3. Проверяем ментора
	profile, err := uc.profileClient.GetProfile(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, profileservice.ErrProfileNotFound) {
			uc.logger.Warn("CreateSession: mentor=%s not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("CreateSession: failed to get profile=%s: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}
	if !profile.IsMentor() {
		uc.logger.Warn("CreateSession: profile=%s is not an active mentor", req.MentorID)
		return nil, ErrMentorNotFound
	}

	var result *domain.Session

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Настройки ментора
		settings, err := uc.settingsRepo.GetByMentorID(txCtx, req.MentorID)
		if err != nil {
			if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Error("CreateSession: failed to get settings: %v", err)
				return fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
			}
			settings = domain.DefaultMentorSettings(req.MentorID)
		}

		// 4.2. Исходное окно
		slot, err := uc.availabilityRepo.GetByID(txCtx, req.AvailabilitySlotID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateSession: slot=%s not found", req.AvailabilitySlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateSession: failed to get slot=%s: %v", req.AvailabilitySlotID, err)
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}
		if slot.MentorID != req.MentorID || !slot.IsActive {
			uc.logger.Warn("CreateSession: slot=%s is inactive or belongs to another mentor", slot.ID)
			return ErrSlotNotFound
		}

		// 4.3. startTime должен совпадать с началом подслота этого окна
		sub, ok := locateSubSlot(slot, start, settings.Unit())
		if !ok {
			uc.logger.Warn("CreateSession: start=%s is not a sub-slot of slot=%s",
				start.Format(time.RFC3339), slot.ID)
			return ErrInvalidTimeSlot
		}

		// 4.4. Ограничения по времени бронирования
		if err := validateBookingTime(sub.StartTime, now, settings); err != nil {
			uc.logger.Warn("CreateSession: booking time validation failed: %v", err)
			return err
		}

		// 4.5. Подслот не должен быть занят или перекрыт активной сессией
		existing, err := uc.sessionRepo.GetActiveBySlotInRange(txCtx, slot.ID, sub.StartTime, sub.EndTime)
		if err != nil {
			uc.logger.Error("CreateSession: failed to get sessions: %v", err)
			return fmt.Errorf("%w: failed to get sessions: %w", ErrInternal, err)
		}
		free := slots.FilterOverlapping(slots.FilterBooked([]domain.ExpandedSlot{sub}, existing), existing)
		if len(free) == 0 {
			uc.logger.Warn("CreateSession: sub-slot slot=%s start=%s already booked",
				slot.ID, sub.StartTime.Format(time.RFC3339))
			return ErrSlotNotAvailable
		}

		// 4.6. Создаём сессию в статусе pending
		created, err := uc.sessionRepo.Create(txCtx, &domain.Session{
			MentorID:           req.MentorID,
			UserID:             req.UserID,
			AvailabilitySlotID: slot.ID,
			StartTime:          sub.StartTime,
			EndTime:            sub.EndTime,
			Status:             domain.StatusPending,
			Notes:              req.Notes,
		})
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSlotAlreadyBooked) {
				uc.logger.Warn("CreateSession: concurrent booking of slot=%s start=%s",
					slot.ID, sub.StartTime.Format(time.RFC3339))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateSession: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		uc.logger.Error("CreateSession: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.IncSessionsCreated()
	}

	uc.logger.Info("CreateSession: created session id=%s", result.ID)

	return &Response{
		ID:                 result.ID,
		MentorID:           result.MentorID,
		UserID:             result.UserID,
		AvailabilitySlotID: result.AvailabilitySlotID,
		StartTime:          result.StartTime,
		EndTime:            result.EndTime,
		DurationMinutes:    int(result.Duration() / time.Minute),
		Status:             string(result.Status),
		Notes:              result.Notes,
		CreatedAt:          result.CreatedAt,
		UpdatedAt:          result.UpdatedAt,
	}, nil
}

// isDomainError ошибки use case, которые отдаются наружу как есть
func isDomainError(err error) bool {
	for _, target := range []error{
		ErrSlotNotFound,
		ErrInvalidTimeSlot,
		ErrTooLateToBook,
		ErrDateTooFarInFuture,
		ErrSlotNotAvailable,
		ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
