package domain

import (
	"fmt"
	"time"
)

// Recurrence правило повторения. Реализации ограничены этим пакетом:
// Daily, Weekly, Monthly.
type Recurrence interface {
	// Pattern значение, хранимое в БД
	Pattern() RecurringPattern
	// At начало n-го вхождения (n >= 0), считается от якоря, а не от предыдущего вхождения
	At(anchor time.Time, n int) time.Time
	// MaxStep верхняя граница расстояния между соседними вхождениями
	MaxStep() time.Duration

	sealed()
}

// Daily каждый день в то же время
type Daily struct{}

func (Daily) Pattern() RecurringPattern { return PatternDaily }

func (Daily) At(anchor time.Time, n int) time.Time {
	return anchor.AddDate(0, 0, n)
}

// 25 часов с учётом перевода часов
func (Daily) MaxStep() time.Duration { return 25 * time.Hour }

func (Daily) sealed() {}

// Weekly каждую неделю в тот же день недели
type Weekly struct{}

func (Weekly) Pattern() RecurringPattern { return PatternWeekly }

func (Weekly) At(anchor time.Time, n int) time.Time {
	return anchor.AddDate(0, 0, 7*n)
}

func (Weekly) MaxStep() time.Duration { return 7*24*time.Hour + time.Hour }

func (Weekly) sealed() {}

// Monthly каждый месяц в тот же день месяца.
// Если в месяце нет такого дня, берётся последний день месяца: 31 января -> 29 февраля -> 31 марта.
type Monthly struct{}

func (Monthly) Pattern() RecurringPattern { return PatternMonthly }

func (Monthly) At(anchor time.Time, n int) time.Time {
	year, month, day := anchor.Date()
	hour, minute, sec := anchor.Clock()

	first := time.Date(year, month+time.Month(n), 1, hour, minute, sec, anchor.Nanosecond(), anchor.Location())
	if last := DaysInMonth(first); day > last {
		day = last
	}

	return first.AddDate(0, 0, day-1)
}

func (Monthly) MaxStep() time.Duration { return 31*24*time.Hour + time.Hour }

func (Monthly) sealed() {}

// ParseRecurrence возвращает правило для шаблона
func ParseRecurrence(pattern RecurringPattern) (Recurrence, error) {
	switch pattern {
	case PatternDaily:
		return Daily{}, nil
	case PatternWeekly:
		return Weekly{}, nil
	case PatternMonthly:
		return Monthly{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecurringPattern, pattern)
	}
}

// DaysInMonth количество дней в месяце даты t
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
