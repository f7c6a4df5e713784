package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuseats/payroll-backend-go/internal/domain/canteen"
	"github.com/campuseats/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type canteenRepository struct {
	db *database.DB
}

// NewCanteenRepository creates a new canteen repository
func NewCanteenRepository(db *database.DB) canteen.CanteenRepository {
	return &canteenRepository{db: db}
}

// GetName retrieves a canteen's display name
func (r *canteenRepository) GetName(ctx context.Context, id string) (string, error) {
	q := GetQuerier(ctx, r.db)

	var name string
	err := q.QueryRow(ctx, `SELECT name FROM canteens WHERE id = $1`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", canteen.ErrCanteenNotFound
		}
		return "", fmt.Errorf("failed to get canteen name: %w", err)
	}

	return name, nil
}
