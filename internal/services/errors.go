package services

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every service error wraps exactly one of these so the HTTP
// layer can map it to a status code with errors.Is.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

func invalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

var (
	ErrMissingToken       = fmt.Errorf("%w: missing token", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrAccountLocked      = fmt.Errorf("%w: account temporarily locked", ErrForbidden)
	ErrAccountDisabled    = fmt.Errorf("%w: account disabled", ErrForbidden)

	ErrInvalidAmount       = invalidArgument("amount must be greater than 0")
	ErrAmountTooLarge      = invalidArgument("amount must not exceed 99999999.99")
	ErrInvalidRedirectURL  = invalidArgument("redirectUrl must be an absolute http(s) URL")
	ErrDonationNotFound    = fmt.Errorf("%w: donation not found", ErrNotFound)
	ErrDonationNotPending  = invalidArgument("donation is not pending")
	ErrInvalidPaymentState = invalidArgument("status must be completed or failed")

	ErrEventNotFound = fmt.Errorf("%w: event not found", ErrNotFound)

	ErrInvalidEmail       = invalidArgument("a valid email is required")
	ErrSubscriberNotFound = fmt.Errorf("%w: subscriber not found", ErrNotFound)
)

// Message returns the client-facing text of a service error: the part after
// the kind prefix.
func Message(err error) string {
	for _, kind := range []error{ErrUnauthorized, ErrForbidden, ErrInvalidArgument, ErrNotFound} {
		if errors.Is(err, kind) {
			if msg, ok := strings.CutPrefix(err.Error(), kind.Error()+": "); ok {
				return msg
			}
			return err.Error()
		}
	}
	return "Internal server error"
}
