package models

import (
	"time"

	"github.com/google/uuid"
)

// Card is a named record owned by a user.
type Card struct {
	// ID is the unique identifier for the card (UUID format).
	ID string `json:"id"`

	// Name is the display name of the card.
	Name string `json:"name"`

	// OwnerID is the ID of the user the card belongs to.
	// It is taken from the request as-is and never checked against users.
	OwnerID string `json:"ownerId"`

	// CreatedAt is the Unix timestamp when the card was created.
	CreatedAt int64 `json:"createdAt"`
}

// NewCard is a validated card creation payload.
type NewCard struct {
	Name   string `json:"name" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

// Card builds the record to persist, with a generated ID and timestamp.
func (n NewCard) Card() *Card {
	return &Card{
		ID:        uuid.New().String(),
		Name:      n.Name,
		OwnerID:   n.UserID,
		CreatedAt: time.Now().Unix(),
	}
}

// CardFilter selects cards. OwnerID is an equality match and NameContains
// a case-sensitive substring match; nil fields are ignored.
type CardFilter struct {
	OwnerID      *string
	NameContains *string
}
