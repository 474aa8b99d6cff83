package create_session

import "errors"

var (
	// ErrMentorNotFound возвращается, когда ментор не найден
	ErrMentorNotFound = errors.New("mentor not found")

	// ErrSlotNotFound возвращается, когда окно не найдено, неактивно или принадлежит другому ментору
	ErrSlotNotFound = errors.New("availability slot not found")

	// ErrInvalidTimeSlot возвращается, когда startTime не совпадает с началом подслота
	ErrInvalidTimeSlot = errors.New("start time does not match any sub-slot")

	// ErrTooLateToBook возвращается, когда нарушено minBookingNotice
	ErrTooLateToBook = errors.New("too late to book this slot")

	// ErrDateTooFarInFuture возвращается, когда нарушено advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда подслот уже занят
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrSelfBooking возвращается, когда ментор пытается записаться сам к себе
	ErrSelfBooking = errors.New("cannot book a session with yourself")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
