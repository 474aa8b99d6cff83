package domain

// Значения настроек по умолчанию
const (
	DefaultSessionUnitMinutes      = 15
	DefaultAdvanceBookingDays      = 0  // 0 = без ограничения
	DefaultMinBookingNoticeMinutes = 60 // 1 час
)

// Границы бизнес-валидации
const (
	MinSessionUnitMinutes       = 5
	MaxSessionUnitMinutes       = 240 // 4 часа
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 неделя
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500

	minutesPerDay = 24 * 60
)

// DateFormat формат даты в query параметрах
const DateFormat = "2006-01-02"

// ActiveStatuses статусы, занимающие подслот
var ActiveStatuses = []SessionStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, освобождающие подслот
var InactiveStatuses = []SessionStatus{
	StatusCompleted,
	StatusCancelledByUser,
	StatusCancelledByMentor,
	StatusNoShow,
	StatusExpired,
}

// AllStatuses все допустимые статусы
var AllStatuses = append(append([]SessionStatus{}, ActiveStatuses...), InactiveStatuses...)

// ParseSessionStatus проверяет строковый статус
func ParseSessionStatus(s string) (SessionStatus, bool) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}
