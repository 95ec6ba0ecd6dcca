package calculation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fkhayef/warikan/internal/database"
)

// Repository handles calculation persistence
type Repository struct {
	db *database.DB
}

// NewRepository creates a new calculation repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `
	SELECT id, roster_id, target_total, rounding_unit, max_rounds, rounds, converged,
	       achieved_total, difference, seed, weights, shares, created_at
	FROM calculations
`

// Create stores a calculation
func (r *Repository) Create(ctx context.Context, c *Calculation) error {
	weights, err := json.Marshal(c.Weights)
	if err != nil {
		return fmt.Errorf("failed to encode weights: %w", err)
	}
	shares, err := json.Marshal(c.Shares)
	if err != nil {
		return fmt.Errorf("failed to encode shares: %w", err)
	}

	query := `
		INSERT INTO calculations (
			id, roster_id, target_total, rounding_unit, max_rounds, rounds, converged,
			achieved_total, difference, seed, weights, shares, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		c.RosterID,
		c.TargetTotal,
		c.RoundingUnit,
		c.MaxRounds,
		c.Rounds,
		c.Converged,
		c.AchievedTotal,
		c.Difference,
		c.Seed,
		string(weights),
		string(shares),
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create calculation: %w", err)
	}
	return nil
}

// GetByID retrieves a calculation by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Calculation, error) {
	c, err := scanCalculation(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}
	return c, nil
}

// List retrieves a page of calculations, newest first
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Calculation, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calculations`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count calculations: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	var calculations []*Calculation
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan calculation: %w", err)
		}
		calculations = append(calculations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list calculations: %w", err)
	}

	return calculations, total, nil
}

// Delete removes a calculation, reporting whether it existed
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM calculations WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete calculation: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row scanner) (*Calculation, error) {
	c := &Calculation{}
	var weights, shares []byte
	err := row.Scan(
		&c.ID,
		&c.RosterID,
		&c.TargetTotal,
		&c.RoundingUnit,
		&c.MaxRounds,
		&c.Rounds,
		&c.Converged,
		&c.AchievedTotal,
		&c.Difference,
		&c.Seed,
		&weights,
		&shares,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(weights, &c.Weights); err != nil {
		return nil, fmt.Errorf("failed to decode weights: %w", err)
	}
	if err := json.Unmarshal(shares, &c.Shares); err != nil {
		return nil, fmt.Errorf("failed to decode shares: %w", err)
	}
	return c, nil
}
