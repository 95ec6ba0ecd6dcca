package roster

import (
	"time"

	"github.com/fkhayef/warikan/internal/fairshare"
)

// Roster is a saved list of participants that can be split again later
type Roster struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Member is one participant on a roster; Position keeps the entry order
type Member struct {
	ID                 int64               `json:"id"`
	RosterID           int64               `json:"roster_id"`
	Position           int                 `json:"position"`
	Name               string              `json:"name"`
	RoleClass          fairshare.RoleClass `json:"role_class"`
	OverrideMultiplier *float64            `json:"override_multiplier,omitempty"`
}

// Participant converts a member to solver input
func (m *Member) Participant() fairshare.Participant {
	return fairshare.Participant{
		Name:      m.Name,
		RoleClass: m.RoleClass,
		Override:  m.OverrideMultiplier,
	}
}
