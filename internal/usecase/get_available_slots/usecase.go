package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-MentorshipService/internal/slots"
)

// UseCase use case для получения свободных подслотов ментора на неделю
type UseCase struct {
	availabilityRepo AvailabilityRepository
	sessionRepo      SessionRepository
	settingsRepo     SettingsRepository
	profileClient    ProfileServiceClient
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
	windowDays       int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	sessionRepo SessionRepository,
	settingsRepo SettingsRepository,
	profileClient ProfileServiceClient,
	metrics Metrics,
	windowDays int,
	logger Logger,
) *UseCase {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}

	return &UseCase{
		availabilityRepo: availabilityRepo,
		sessionRepo:      sessionRepo,
		settingsRepo:     settingsRepo,
		profileClient:    profileClient,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		windowDays:       windowDays,
	}
}

// Execute выполняет use case получения свободных подслотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: mentor=%s, weekStart=%s", req.MentorID, req.WeekStart.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Границы окна и текущее время
	windowStart, windowEnd := window(req.WeekStart, uc.windowDays)
	now := uc.timeProvider.Now()

	// 3. Проверяем ментора
	profile, err := uc.profileClient.GetProfile(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, profileservice.ErrProfileNotFound) {
			uc.logger.Warn("GetAvailableSlots: mentor=%s not found", req.MentorID)
			return nil, ErrMentorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get profile=%s: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}
	if !profile.IsMentor() {
		uc.logger.Warn("GetAvailableSlots: profile=%s is not an active mentor", req.MentorID)
		return nil, ErrMentorNotFound
	}

	// 4. Параллельно читаем окна, активные сессии и настройки.
	// Сессии берём с запасом на максимальную длину подслота: подслот в конце окна
	// выходит за windowEnd, а сессия прошлой длины могла начаться до windowStart.
	sessionsFrom, sessionsTo := sessionsRange(windowStart, windowEnd)
	var (
		availability []*domain.AvailabilitySlot
		sessions     []*domain.Session
		settings     *domain.MentorSettings
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res, err := uc.availabilityRepo.GetActiveByMentorInRange(gctx, req.MentorID, windowStart, windowEnd)
		if err != nil {
			return fmt.Errorf("failed to get availability: %v", err)
		}
		availability = res
		return nil
	})

	g.Go(func() error {
		res, err := uc.sessionRepo.GetActiveByMentorInRange(gctx, req.MentorID, sessionsFrom, sessionsTo)
		if err != nil {
			return fmt.Errorf("failed to get sessions: %v", err)
		}
		sessions = res
		return nil
	})

	g.Go(func() error {
		res, err := uc.settingsRepo.GetByMentorID(gctx, req.MentorID)
		if err != nil {
			if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				settings = domain.DefaultMentorSettings(req.MentorID)
				return nil
			}
			return fmt.Errorf("failed to get settings: %v", err)
		}
		settings = res
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.logger.Error("GetAvailableSlots: mentor=%s: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 5. Некорректные окна пропускаются при разворачивании, здесь только логируем
	for _, s := range availability {
		if err := s.Validate(); err != nil {
			uc.logger.Warn("GetAvailableSlots: skipping malformed slot id=%s: %v", s.ID, err)
		}
	}

	// 6. Разворачиваем, режем на подслоты, оставляем начинающиеся в окне, убираем занятые
	expanded := slots.Expand(availability, windowStart, windowEnd)
	subSlots := clipToWindow(slots.SplitIntoFixedSlots(expanded, settings.Unit()), windowStart, windowEnd)
	free := slots.FilterOverlapping(slots.FilterBooked(subSlots, sessions), sessions)

	// 7. Ограничения по времени бронирования
	bookable := filterBookable(free, settings, now)

	uc.logger.Info("GetAvailableSlots: mentor=%s: %d occurrences, %d sub-slots, %d free, %d bookable",
		req.MentorID, len(expanded), len(subSlots), len(free), len(bookable))

	if uc.metrics != nil {
		uc.metrics.ObserveAvailableSlots(len(bookable))
	}

	return &Response{
		MentorID:    req.MentorID,
		WeekStart:   windowStart,
		WeekEnd:     windowEnd,
		UnitMinutes: settings.SessionUnitMinutes,
		Slots:       toResponseSlots(bookable),
	}, nil
}
