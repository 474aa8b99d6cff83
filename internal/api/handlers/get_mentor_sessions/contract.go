package get_mentor_sessions

import (
	"context"

	"github.com/m04kA/SMC-MentorshipService/internal/service/sessions/models"
)

type SessionService interface {
	GetMentorSessions(ctx context.Context, req *models.GetMentorSessionsRequest) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
