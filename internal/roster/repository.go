package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fkhayef/warikan/internal/database"
)

// Repository handles roster and member persistence
type Repository struct {
	db *database.DB
}

// NewRepository creates a new roster repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a roster together with its initial members
func (r *Repository) Create(ctx context.Context, req *CreateRosterRequest) (int64, error) {
	var id int64
	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		now := time.Now().UTC()
		query := `
			INSERT INTO rosters (name, description, created_at, updated_at)
			VALUES ($1, $2, $3, $3)
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query, req.Name, req.Description, now).Scan(&id); err != nil {
			return fmt.Errorf("failed to create roster: %w", err)
		}

		for i := range req.Members {
			if _, err := insertMember(ctx, tx, id, i+1, &req.Members[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a roster by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Roster, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM rosters
		WHERE id = $1
	`

	roster := &Roster{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&roster.ID,
		&roster.Name,
		&roster.Description,
		&roster.CreatedAt,
		&roster.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}

	return roster, nil
}

// List retrieves a page of rosters, newest first
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Roster, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rosters`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rosters: %w", err)
	}

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM rosters
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rosters: %w", err)
	}
	defer rows.Close()

	var rosters []*Roster
	for rows.Next() {
		roster := &Roster{}
		if err := rows.Scan(
			&roster.ID,
			&roster.Name,
			&roster.Description,
			&roster.CreatedAt,
			&roster.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan roster: %w", err)
		}
		rosters = append(rosters, roster)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list rosters: %w", err)
	}

	return rosters, total, nil
}

// Update modifies an existing roster, reporting whether it existed
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateRosterRequest) (bool, error) {
	query := `
		UPDATE rosters
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, req.Name, req.Description, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to update roster: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// Delete removes a roster and, through the foreign key, its members
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rosters WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete roster: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// AddMember appends a member at the end of the roster
func (r *Repository) AddMember(ctx context.Context, rosterID int64, req *MemberRequest) (*Member, error) {
	var member *Member
	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		var last sql.NullInt64
		query := `SELECT MAX(position) FROM roster_members WHERE roster_id = $1`
		if err := tx.QueryRowContext(ctx, query, rosterID).Scan(&last); err != nil {
			return fmt.Errorf("failed to find last position: %w", err)
		}

		var err error
		member, err = insertMember(ctx, tx, rosterID, int(last.Int64)+1, req)
		if err != nil {
			return err
		}
		return touch(ctx, tx, rosterID)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// GetMember retrieves a single member of a roster
func (r *Repository) GetMember(ctx context.Context, rosterID, memberID int64) (*Member, error) {
	query := `
		SELECT id, roster_id, position, name, role_class, override_multiplier
		FROM roster_members
		WHERE roster_id = $1 AND id = $2
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, rosterID, memberID).Scan(
		&member.ID,
		&member.RosterID,
		&member.Position,
		&member.Name,
		&member.RoleClass,
		&member.OverrideMultiplier,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// GetMembers retrieves all members of a roster in position order
func (r *Repository) GetMembers(ctx context.Context, rosterID int64) ([]*Member, error) {
	query := `
		SELECT id, roster_id, position, name, role_class, override_multiplier
		FROM roster_members
		WHERE roster_id = $1
		ORDER BY position, id
	`

	rows, err := r.db.QueryContext(ctx, query, rosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		member := &Member{}
		if err := rows.Scan(
			&member.ID,
			&member.RosterID,
			&member.Position,
			&member.Name,
			&member.RoleClass,
			&member.OverrideMultiplier,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}

	return members, nil
}

// UpdateMember overwrites a member's name, role and override
func (r *Repository) UpdateMember(ctx context.Context, member *Member) error {
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		query := `
			UPDATE roster_members
			SET name = $3, role_class = $4, override_multiplier = $5
			WHERE roster_id = $1 AND id = $2
		`
		if _, err := tx.ExecContext(ctx, query,
			member.RosterID, member.ID, member.Name, string(member.RoleClass), member.OverrideMultiplier); err != nil {
			return fmt.Errorf("failed to update member: %w", err)
		}
		return touch(ctx, tx, member.RosterID)
	})
}

// RemoveMember deletes a member, reporting whether it existed
func (r *Repository) RemoveMember(ctx context.Context, rosterID, memberID int64) (bool, error) {
	var found bool
	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM roster_members WHERE roster_id = $1 AND id = $2`, rosterID, memberID)
		if err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if found = n > 0; !found {
			return nil
		}
		return touch(ctx, tx, rosterID)
	})
	return found, err
}

func insertMember(ctx context.Context, q database.Querier, rosterID int64, position int, req *MemberRequest) (*Member, error) {
	query := `
		INSERT INTO roster_members (roster_id, position, name, role_class, override_multiplier)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	member := &Member{
		RosterID:           rosterID,
		Position:           position,
		Name:               req.Name,
		RoleClass:          req.RoleClass,
		OverrideMultiplier: req.OverrideMultiplier,
	}
	err := q.QueryRowContext(ctx, query, rosterID, position, req.Name, string(req.RoleClass), req.OverrideMultiplier).Scan(&member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return member, nil
}

func touch(ctx context.Context, q database.Querier, rosterID int64) error {
	if _, err := q.ExecContext(ctx, `UPDATE rosters SET updated_at = $2 WHERE id = $1`, rosterID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to touch roster: %w", err)
	}
	return nil
}
