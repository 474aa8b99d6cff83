package domain

import "errors"

var (
	ErrInvalidTimeRange        = errors.New("domain: end time must be after start time")
	ErrNotRecurring            = errors.New("domain: slot is not recurring")
	ErrMissingRecurringPattern = errors.New("domain: recurring slot has no pattern")
	ErrUnknownRecurringPattern = errors.New("domain: unknown recurring pattern")
	ErrRecurringEndBeforeStart = errors.New("domain: recurring end date is before slot start")
	ErrInvalidSettings         = errors.New("domain: invalid mentor settings")
)
