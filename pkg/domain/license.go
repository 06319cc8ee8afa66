package domain

import (
	"time"

	"github.com/google/uuid"
)

// Seats is the store's plan and seat usage (the licenses page).
type Seats struct {
	StoreID     uuid.UUID `json:"store_id"`
	PlanCode    string    `json:"plan_code"`
	SeatLimit   int       `json:"seat_limit"`
	ActiveUsers int       `json:"active_users"`
}

// Available returns the number of unused seats, never negative.
func (s Seats) Available() int {
	if n := s.SeatLimit - s.ActiveUsers; n > 0 {
		return n
	}
	return 0
}

// Invite is a staff invite code issued for the store.
type Invite struct {
	ID        uuid.UUID  `json:"id"`
	StoreID   uuid.UUID  `json:"store_id"`
	Code      string     `json:"code"`
	Role      string     `json:"role"`
	MaxUses   int        `json:"max_uses"`
	UsedCount int        `json:"used_count"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Usable reports whether the invite can still be redeemed at now.
func (i Invite) Usable(now time.Time) bool {
	if i.UsedCount >= i.MaxUses {
		return false
	}
	return i.ExpiresAt == nil || i.ExpiresAt.After(now)
}

// InviteRequest is the payload for creating an invite.
type InviteRequest struct {
	Role       string     `json:"role"`
	MaxUses    int        `json:"max_uses"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CodeLength int        `json:"code_length,omitempty"`
}

// Store is a shop registered in VLP.
type Store struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	PostalCode    string    `json:"postal_code,omitempty"`
	Address1      string    `json:"address1,omitempty"`
	Address2      string    `json:"address2,omitempty"`
	Tel           string    `json:"tel,omitempty"`
	Email         string    `json:"email,omitempty"`
	InvoiceNumber string    `json:"invoice_number,omitempty"`
}
