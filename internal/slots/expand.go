// Package slots разворачивает окна доступности менторов в конкретные слоты,
// режет их на подслоты фиксированной длины и убирает занятые.
// Функции пакета чистые: без ввода-вывода и общего состояния.
package slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// Expand возвращает вхождения окон, попадающие в полуинтервал [windowStart, windowEnd).
//
// Неактивные окна и окна, не проходящие Validate, пропускаются молча.
// Разовое окно попадает в результат, если пересекается с интервалом.
// Вхождение повторяющегося окна попадает в результат, если его начало лежит в интервале
// и не позже RecurringEndDate. Результат отсортирован по началу, затем по ID окна.
func Expand(slots []*domain.AvailabilitySlot, windowStart, windowEnd time.Time) []domain.ExpandedSlot {
	result := make([]domain.ExpandedSlot, 0)
	if !windowEnd.After(windowStart) {
		return result
	}

	for _, slot := range slots {
		if slot == nil || !slot.IsActive {
			continue
		}
		if slot.Validate() != nil {
			continue
		}

		if !slot.IsRecurring {
			if slot.StartTime.Before(windowEnd) && slot.EndTime.After(windowStart) {
				result = append(result, occurrence(slot, slot.StartTime))
			}
			continue
		}

		result = appendOccurrences(result, slot, windowStart, windowEnd)
	}

	sortSlots(result)
	return result
}

// appendOccurrences добавляет вхождения повторяющегося окна.
// Первое рассматриваемое вхождение выбирается с запасом через MaxStep,
// поэтому якорь далеко в прошлом не требует перебора всех вхождений.
func appendOccurrences(dst []domain.ExpandedSlot, slot *domain.AvailabilitySlot, windowStart, windowEnd time.Time) []domain.ExpandedSlot {
	rule, err := slot.Recurrence()
	if err != nil {
		return dst
	}

	anchor := slot.StartTime
	n := 0
	if gap := windowStart.Sub(anchor); gap > 0 {
		n = int(gap / rule.MaxStep())
	}

	for ; ; n++ {
		start := rule.At(anchor, n)
		if !start.Before(windowEnd) {
			break
		}
		if slot.RecurringEndDate != nil && start.After(*slot.RecurringEndDate) {
			break
		}
		if start.Before(windowStart) {
			continue
		}
		dst = append(dst, occurrence(slot, start))
	}

	return dst
}

func occurrence(slot *domain.AvailabilitySlot, start time.Time) domain.ExpandedSlot {
	return domain.ExpandedSlot{
		OriginalSlotID:   slot.ID,
		MentorID:         slot.MentorID,
		StartTime:        start,
		EndTime:          start.Add(slot.Duration()),
		IsRecurring:      slot.IsRecurring,
		RecurringPattern: slot.RecurringPattern,
	}
}

func sortSlots(s []domain.ExpandedSlot) {
	sort.SliceStable(s, func(i, j int) bool {
		if !s[i].StartTime.Equal(s[j].StartTime) {
			return s[i].StartTime.Before(s[j].StartTime)
		}
		return s[i].OriginalSlotID.String() < s[j].OriginalSlotID.String()
	})
}
