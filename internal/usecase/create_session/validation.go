package create_session

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
	"github.com/m04kA/SMC-MentorshipService/internal/slots"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.MentorID == uuid.Nil {
		return fmt.Errorf("%w: mentorID is required", ErrInvalidInput)
	}

	if req.AvailabilitySlotID == uuid.Nil {
		return fmt.Errorf("%w: availabilitySlotID is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.UserID == req.MentorID {
		return ErrSelfBooking
	}

	return nil
}

// locateSubSlot находит подслот окна, начинающийся ровно в start.
// Разворачивает только одно окно на интервале, который может содержать нужное вхождение.
func locateSubSlot(slot *domain.AvailabilitySlot, start time.Time, unit time.Duration) (domain.ExpandedSlot, bool) {
	start = start.UTC()

	occurrences := slots.Expand([]*domain.AvailabilitySlot{slot}, start.Add(-slot.Duration()), start.Add(unit))
	for _, sub := range slots.SplitIntoFixedSlots(occurrences, unit) {
		if sub.OriginalSlotID == slot.ID && sub.StartTime.Equal(start) {
			return sub, true
		}
	}

	return domain.ExpandedSlot{}, false
}

// validateBookingTime проверяет minBookingNotice и advanceBookingDays
func validateBookingTime(start, now time.Time, settings *domain.MentorSettings) error {
	if start.Before(now.Add(settings.MinNotice())) {
		return fmt.Errorf("%w: must book at least %d minutes in advance",
			ErrTooLateToBook, settings.MinBookingNoticeMinutes)
	}

	if latest, ok := settings.LatestBookableStart(now); ok && !start.Before(latest) {
		return fmt.Errorf("%w: can only book %d days in advance",
			ErrDateTooFarInFuture, settings.AdvanceBookingDays)
	}

	return nil
}
