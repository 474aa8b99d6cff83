package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/profileservice"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	// GetActiveByMentorInRange окна ментора, которые могут дать вхождения в [from, to)
	GetActiveByMentorInRange(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]*domain.AvailabilitySlot, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	// GetActiveByMentorInRange pending и confirmed сессии ментора, начинающиеся в [from, to)
	GetActiveByMentorInRange(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]*domain.Session, error)
}

// SettingsRepository интерфейс репозитория настроек ментора
type SettingsRepository interface {
	GetByMentorID(ctx context.Context, mentorID uuid.UUID) (*domain.MentorSettings, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*profileservice.Profile, error)
}

// Metrics метрики use case
type Metrics interface {
	ObserveAvailableSlots(count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
