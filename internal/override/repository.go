package override

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fkhayef/warikan/internal/database"
)

// Repository handles override rule persistence
type Repository struct {
	db *database.DB
}

// NewRepository creates a new override rule repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

const ruleColumns = `id, label, patterns, multiplier, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (*Rule, error) {
	rule := &Rule{}
	var patterns []byte
	if err := row.Scan(
		&rule.ID,
		&rule.Label,
		&patterns,
		&rule.Multiplier,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(patterns, &rule.Patterns); err != nil {
		return nil, fmt.Errorf("failed to decode patterns of rule %d: %w", rule.ID, err)
	}
	return rule, nil
}

// Create inserts a new rule
func (r *Repository) Create(ctx context.Context, req *CreateRuleRequest) (*Rule, error) {
	patterns, err := json.Marshal(req.Patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patterns: %w", err)
	}

	query := `
		INSERT INTO override_rules (label, patterns, multiplier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id
	`

	var id int64
	err = r.db.QueryRowContext(ctx, query, req.Label, string(patterns), req.Multiplier, time.Now().UTC()).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create override rule: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID retrieves a rule by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Rule, error) {
	query := `SELECT ` + ruleColumns + ` FROM override_rules WHERE id = $1`

	rule, err := scanRule(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get override rule: %w", err)
	}
	return rule, nil
}

// List retrieves a page of rules in insertion order
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Rule, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM override_rules`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count override rules: %w", err)
	}

	query := `SELECT ` + ruleColumns + ` FROM override_rules ORDER BY id LIMIT $1 OFFSET $2`
	rules, err := r.query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return rules, total, nil
}

// ListAll retrieves every rule in insertion order, which is the match order
func (r *Repository) ListAll(ctx context.Context) ([]*Rule, error) {
	return r.query(ctx, `SELECT `+ruleColumns+` FROM override_rules ORDER BY id`)
}

func (r *Repository) query(ctx context.Context, query string, args ...any) ([]*Rule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list override rules: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan override rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate override rules: %w", err)
	}
	return rules, nil
}

// Update modifies an existing rule
func (r *Repository) Update(ctx context.Context, rule *Rule) (*Rule, error) {
	patterns, err := json.Marshal(rule.Patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patterns: %w", err)
	}

	query := `
		UPDATE override_rules
		SET label = $2, patterns = $3, multiplier = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, rule.ID, rule.Label, string(patterns), rule.Multiplier, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to update override rule: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, rule.ID)
}

// Delete removes a rule, reporting whether it existed
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM override_rules WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete override rule: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete override rule: %w", err)
	}
	return n > 0, nil
}
