package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/profileservice"
)

// SettingsRepository интерфейс репозитория настроек ментора
type SettingsRepository interface {
	GetByMentorID(ctx context.Context, mentorID uuid.UUID) (*domain.MentorSettings, error)
	Upsert(ctx context.Context, s *domain.MentorSettings) (*domain.MentorSettings, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*profileservice.Profile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
