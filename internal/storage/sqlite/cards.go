package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/cardstash/internal/models"
)

const cardColumns = "id, name, owner_id, created_at"

// CreateCard inserts a new card into the database.
func (s *SQLiteStore) CreateCard(ctx context.Context, card *models.Card) error {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	if card.CreatedAt == 0 {
		card.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO cards ("+cardColumns+") VALUES (?, ?, ?, ?)",
		card.ID, card.Name, card.OwnerID, card.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}

	return nil
}

// FindCards retrieves cards matching the filter.
// instr is used instead of LIKE so the name match stays case-sensitive
// and treats % and _ literally.
func (s *SQLiteStore) FindCards(ctx context.Context, filter models.CardFilter) ([]*models.Card, error) {
	var conds []string
	var args []any
	if filter.OwnerID != nil {
		conds = append(conds, "owner_id = ?")
		args = append(args, *filter.OwnerID)
	}
	if filter.NameContains != nil && *filter.NameContains != "" {
		conds = append(conds, "instr(name, ?) > 0")
		args = append(args, *filter.NameContains)
	}

	query := "SELECT " + cardColumns + " FROM cards" + where(conds) + " ORDER BY created_at, rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
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
