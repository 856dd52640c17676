package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/cardstash/internal/models"
)

const cardColumns = "id, name, owner_id, created_at"

// CreateCard inserts a new card.
func (s *PostgresStore) CreateCard(ctx context.Context, card *models.Card) error {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	if card.CreatedAt == 0 {
		card.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO cards ("+cardColumns+") VALUES ($1, $2, $3, $4)",
		card.ID, card.Name, card.OwnerID, card.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// FindCards retrieves cards matching the filter. strpos keeps the name
// match case-sensitive without LIKE escaping.
func (s *PostgresStore) FindCards(ctx context.Context, filter models.CardFilter) ([]*models.Card, error) {
	var conds conditions
	if filter.OwnerID != nil {
		conds.add("owner_id = ?", *filter.OwnerID)
	}
	if filter.NameContains != nil && *filter.NameContains != "" {
		conds.add("strpos(name, ?) > 0", *filter.NameContains)
	}

	query := "SELECT " + cardColumns + " FROM cards" + conds.String() + " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, conds.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find cards: %w", err)
	}
	defer rows.Close()

	cards := []*models.Card{}
	for rows.Next() {
		card := &models.Card{}
		if err := rows.Scan(&card.ID, &card.Name, &card.OwnerID, &card.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}
	return cards, nil
}
