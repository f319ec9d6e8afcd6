package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", ErrInvalidToken, "invalid or expired token"},
		{"forbidden", ErrAccountLocked, "account temporarily locked"},
		{"invalid argument", ErrInvalidAmount, "amount must be greater than 0"},
		{"not found", ErrEventNotFound, "event not found"},
		{"wrapped", fmt.Errorf("handler: %w", ErrDonationNotFound), "handler: not found: donation not found"},
		{"internal", errors.New("connection refused"), "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}

func TestErrorKinds(t *testing.T) {
	assert.ErrorIs(t, ErrMissingToken, ErrUnauthorized)
	assert.ErrorIs(t, ErrAccountDisabled, ErrForbidden)
	assert.ErrorIs(t, ErrDonationNotPending, ErrInvalidArgument)
	assert.ErrorIs(t, ErrSubscriberNotFound, ErrNotFound)
}
