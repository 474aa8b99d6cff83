package slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// FilterBooked убирает подслоты, занятые активными сессиями (pending, confirmed).
// Совпадение по паре (ID исходного окна, момент начала). Порядок сохраняется.
func FilterBooked(subSlots []domain.ExpandedSlot, sessions []*domain.Session) []domain.ExpandedSlot {
	booked := BookedKeys(sessions)

	result := make([]domain.ExpandedSlot, 0, len(subSlots))
	for _, s := range subSlots {
		if _, taken := booked[s.Key()]; taken {
			continue
		}
		result = append(result, s)
	}

	return result
}

// BookedKeys множество занятых подслотов
func BookedKeys(sessions []*domain.Session) map[domain.SlotKey]struct{} {
	booked := make(map[domain.SlotKey]struct{}, len(sessions))
	for _, s := range sessions {
		if s == nil || !s.IsActive() {
			continue
		}
		booked[s.Key()] = struct{}{}
	}
	return booked
}

// FilterOverlapping убирает подслоты, пересекающиеся по времени с активной сессией того же окна.
// Нужен, когда длина подслота изменилась после бронирования и начала больше не совпадают.
func FilterOverlapping(subSlots []domain.ExpandedSlot, sessions []*domain.Session) []domain.ExpandedSlot {
	bySlot := make(map[uuid.UUID][]*domain.Session, len(sessions))
	for _, s := range sessions {
		if s == nil || !s.IsActive() {
			continue
		}
		bySlot[s.AvailabilitySlotID] = append(bySlot[s.AvailabilitySlotID], s)
	}

	result := make([]domain.ExpandedSlot, 0, len(subSlots))
	for _, sub := range subSlots {
		if overlapsAny(sub, bySlot[sub.OriginalSlotID]) {
			continue
		}
		result = append(result, sub)
	}

	return result
}

func overlapsAny(sub domain.ExpandedSlot, sessions []*domain.Session) bool {
	for _, s := range sessions {
		if s.StartTime.Before(sub.EndTime) && s.EndTime.After(sub.StartTime) {
			return true
		}
	}
	return false
}
