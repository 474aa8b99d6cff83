package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/pkg/ptr"
)

// CreateSlotRequest запрос на создание окна доступности
type CreateSlotRequest struct {
	UserID           uuid.UUID // кто создаёт
	MentorID         uuid.UUID
	StartTime        time.Time
	EndTime          time.Time
	IsRecurring      bool
	RecurringPattern *string
	RecurringEndDate *time.Time
}

// ToDomainSlot конвертирует запрос в domain модель
func (r *CreateSlotRequest) ToDomainSlot() *domain.AvailabilitySlot {
	slot := &domain.AvailabilitySlot{
		MentorID:    r.MentorID,
		StartTime:   r.StartTime.UTC(),
		EndTime:     r.EndTime.UTC(),
		IsRecurring: r.IsRecurring,
		IsActive:    true,
	}

	if r.IsRecurring {
		if r.RecurringPattern != nil {
			slot.RecurringPattern = ptr.Ptr(domain.RecurringPattern(*r.RecurringPattern))
		}
		if r.RecurringEndDate != nil {
			slot.RecurringEndDate = ptr.Ptr(r.RecurringEndDate.UTC())
		}
	}

	return slot
}

// SlotResponse окно доступности
type SlotResponse struct {
	ID               uuid.UUID  `json:"id"`
	MentorID         uuid.UUID  `json:"mentorId"`
	StartTime        time.Time  `json:"startTime"`
	EndTime          time.Time  `json:"endTime"`
	DurationMinutes  int        `json:"durationMinutes"`
	IsRecurring      bool       `json:"isRecurring"`
	RecurringPattern *string    `json:"recurringPattern,omitempty"`
	RecurringEndDate *time.Time `json:"recurringEndDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// SlotListResponse список окон
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.AvailabilitySlot) *SlotResponse {
	if s == nil {
		return nil
	}

	resp := &SlotResponse{
		ID:               s.ID,
		MentorID:         s.MentorID,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		DurationMinutes:  int(s.Duration() / time.Minute),
		IsRecurring:      s.IsRecurring,
		RecurringEndDate: s.RecurringEndDate,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}

	if s.RecurringPattern != nil {
		resp.RecurringPattern = ptr.Ptr(string(*s.RecurringPattern))
	}

	return resp
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.AvailabilitySlot) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(slots))}
	for _, s := range slots {
		if r := FromDomainSlot(s); r != nil {
			resp.Slots = append(resp.Slots, *r)
		}
	}
	return resp
}
