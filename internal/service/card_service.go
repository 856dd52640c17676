package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/cardstash/internal/models"
	"github.com/mmynk/cardstash/internal/storage"
)

// CardService creates and searches cards.
type CardService struct {
	cards  storage.CardStore
	logger *slog.Logger
}

// NewCardService creates a new CardService with the given storage backend.
func NewCardService(cards storage.CardStore, logger *slog.Logger) *CardService {
	return &CardService{cards: cards, logger: logger}
}

// Create stores a card owned by the user named in the payload. The owner is
// not checked against existing users.
func (s *CardService) Create(ctx context.Context, in models.NewCard) (*models.Card, error) {
	card := in.Card()
	if err := s.cards.CreateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.logger.Info("Card created", "card_id", card.ID, "owner_id", card.OwnerID)
	return card, nil
}

// Search returns the cards matching the filter. An empty filter returns
// every card.
func (s *CardService) Search(ctx context.Context, filter models.CardFilter) ([]*models.Card, error) {
	cards, err := s.cards.FindCards(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}

	s.logger.Debug("Card search", "results", len(cards))
	return cards, nil
}
