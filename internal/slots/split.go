package slots

import (
	"time"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// SplitIntoFixedSlots режет каждое вхождение на подряд идущие подслоты длиной unit.
// Остаток короче unit отбрасывается. При unit <= 0 результат пустой.
func SplitIntoFixedSlots(slots []domain.ExpandedSlot, unit time.Duration) []domain.ExpandedSlot {
	result := make([]domain.ExpandedSlot, 0)
	if unit <= 0 {
		return result
	}

	for _, slot := range slots {
		for start := slot.StartTime; !start.Add(unit).After(slot.EndTime); start = start.Add(unit) {
			sub := slot
			sub.StartTime = start
			sub.EndTime = start.Add(unit)
			result = append(result, sub)
		}
	}

	return result
}

// UnitFromMinutes переводит длину подслота из настроек в Duration
func UnitFromMinutes(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}
