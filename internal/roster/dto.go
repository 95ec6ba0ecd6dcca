package roster

import "github.com/fkhayef/warikan/internal/fairshare"

// CreateRosterRequest represents the request to create a roster
type CreateRosterRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Description *string         `json:"description,omitempty"`
	Members     []MemberRequest `json:"members,omitempty"`
}

// UpdateRosterRequest represents the request to update a roster
type UpdateRosterRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// MemberRequest represents a participant to add to a roster
type MemberRequest struct {
	Name               string              `json:"name" validate:"required"`
	RoleClass          fairshare.RoleClass `json:"role_class" validate:"required"`
	OverrideMultiplier *float64            `json:"override_multiplier,omitempty"`
}

// UpdateMemberRequest represents the request to change a roster member
type UpdateMemberRequest struct {
	Name               *string              `json:"name,omitempty"`
	RoleClass          *fairshare.RoleClass `json:"role_class,omitempty"`
	OverrideMultiplier *float64             `json:"override_multiplier,omitempty"`
	// ClearOverride drops a previously set override multiplier
	ClearOverride bool `json:"clear_override,omitempty"`
}

// RosterResponse represents the response for a roster
type RosterResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
	Members     []*MemberResponse `json:"members,omitempty"`
}

// MemberResponse represents a member in a roster response
type MemberResponse struct {
	ID                 int64               `json:"id"`
	Position           int                 `json:"position"`
	Name               string              `json:"name"`
	RoleClass          fairshare.RoleClass `json:"role_class"`
	OverrideMultiplier *float64            `json:"override_multiplier,omitempty"`
}

// ToResponse converts a Roster model to a RosterResponse DTO
func (r *Roster) ToResponse() *RosterResponse {
	return &RosterResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   r.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:                 m.ID,
		Position:           m.Position,
		Name:               m.Name,
		RoleClass:          m.RoleClass,
		OverrideMultiplier: m.OverrideMultiplier,
	}
}
