package dto

import "github.com/google/uuid"

// DonationIntentRequest records a pending monetary donation before the donor
// is sent to the payment page. A nil DonationID creates a new donation.
type DonationIntentRequest struct {
	Amount      *float64   `json:"amount"`
	DonationID  *uuid.UUID `json:"donationId"`
	RedirectURL string     `json:"redirectUrl"`
	Notes       string     `json:"notes"`
}

type MonetaryDonationRequest struct {
	Amount *float64 `json:"amount"`
	Notes  string   `json:"notes"`
}

type ItemDonationRequest struct {
	ItemName       string   `json:"itemName"`
	Description    string   `json:"description"`
	Quantity       int      `json:"quantity"`
	EstimatedValue *float64 `json:"estimatedValue"`
}

type DonationResponse struct {
	Success     bool      `json:"success"`
	DonationID  uuid.UUID `json:"donationId"`
	RedirectURL string    `json:"redirectUrl,omitempty"`
	Message     string    `json:"message"`
}

// PaymentWebhookRequest is sent by the payment processor once a donation
// has been settled or rejected.
type PaymentWebhookRequest struct {
	DonationID uuid.UUID `json:"donationId"`
	Status     string    `json:"status"`
	Reference  string    `json:"reference"`
}
