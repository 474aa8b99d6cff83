package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-MentorshipService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	MentorID    uuid.UUID      `json:"mentorId"`
	WeekStart   string         `json:"weekStart"` // "2024-01-08"
	WeekEnd     string         `json:"weekEnd"`   // не включительно
	UnitMinutes int            `json:"unitMinutes"`
	Slots       []SlotResponse `json:"slots"`
}

// SlotResponse свободный подслот
type SlotResponse struct {
	AvailabilitySlotID uuid.UUID `json:"availabilitySlotId"`
	StartTime          string    `json:"startTime"` // RFC3339, UTC
	EndTime            string    `json:"endTime"`
	DurationMinutes    int       `json:"durationMinutes"`
	IsRecurring        bool      `json:"isRecurring"`
	RecurringPattern   *string   `json:"recurringPattern,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			AvailabilitySlotID: s.AvailabilitySlotID,
			StartTime:          s.StartTime.UTC().Format(time.RFC3339),
			EndTime:            s.EndTime.UTC().Format(time.RFC3339),
			DurationMinutes:    s.DurationMinutes,
			IsRecurring:        s.IsRecurring,
			RecurringPattern:   s.RecurringPattern,
		}
	}

	return &AvailableSlotsResponse{
		MentorID:    resp.MentorID,
		WeekStart:   resp.WeekStart.Format(domain.DateFormat),
		WeekEnd:     resp.WeekEnd.Format(domain.DateFormat),
		UnitMinutes: resp.UnitMinutes,
		Slots:       slots,
	}
}
