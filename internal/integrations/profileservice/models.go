package profileservice

import "github.com/google/uuid"

// Role роль пользователя в ProfileService
type Role string

const (
	RoleMentor  Role = "mentor"
	RoleAthlete Role = "athlete"
)

// Profile профиль пользователя из ProfileService
type Profile struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Role     Role      `json:"role"`
	IsActive bool      `json:"is_active"`
}

// IsMentor true для активного ментора
func (p *Profile) IsMentor() bool {
	return p.Role == RoleMentor && p.IsActive
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
