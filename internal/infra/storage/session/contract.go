package session

import "github.com/m04kA/SMC-MentorshipService/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

type scanner interface {
	Scan(dest ...interface{}) error
}
