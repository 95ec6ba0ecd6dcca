package calculation

import "github.com/fkhayef/warikan/internal/fairshare"

// CalculateRequest represents the request to split a total.
// Exactly one of Participants or RosterID must be given.
type CalculateRequest struct {
	Participants       []ParticipantRequest `json:"participants,omitempty"`
	RosterID           *int64               `json:"roster_id,omitempty"`
	TargetTotal        float64              `json:"target_total" validate:"required,gt=0"`
	RoundingUnit       *float64             `json:"rounding_unit,omitempty"`
	MaxRounds          *int                 `json:"max_rounds,omitempty"`
	Seed               *int64               `json:"seed,omitempty"`
	RequireConvergence bool                 `json:"require_convergence,omitempty"`
}

// ParticipantRequest is an inline participant
type ParticipantRequest struct {
	Name               string              `json:"name" validate:"required"`
	RoleClass          fairshare.RoleClass `json:"role_class" validate:"required"`
	OverrideMultiplier *float64            `json:"override_multiplier,omitempty"`
}

// CalculationResponse represents the response for a calculation
type CalculationResponse struct {
	ID            string                 `json:"id"`
	RosterID      *int64                 `json:"roster_id,omitempty"`
	TargetTotal   float64                `json:"target_total"`
	RoundingUnit  float64                `json:"rounding_unit"`
	MaxRounds     int                    `json:"max_rounds"`
	Rounds        int                    `json:"rounds"`
	Converged     bool                   `json:"converged"`
	AchievedTotal float64                `json:"achieved_total"`
	Difference    float64                `json:"difference"`
	Seed          *int64                 `json:"seed,omitempty"`
	Weights       []fairshare.RoleWeight `json:"weights"`
	Shares        []*ShareResponse       `json:"shares"`
	CreatedAt     string                 `json:"created_at"`
}

// ShareResponse represents one participant's share
type ShareResponse struct {
	Name               string              `json:"name"`
	RoleClass          fairshare.RoleClass `json:"role_class"`
	OverrideMultiplier *float64            `json:"override_multiplier,omitempty"`
	EffectiveWeight    float64             `json:"effective_weight"`
	RawShare           float64             `json:"raw_share"`
	RoundedShare       float64             `json:"rounded_share"`
}

// ToResponse converts a Calculation model to a CalculationResponse DTO
func (c *Calculation) ToResponse() *CalculationResponse {
	shares := make([]*ShareResponse, len(c.Shares))
	for i, s := range c.Shares {
		shares[i] = &ShareResponse{
			Name:               s.Participant.Name,
			RoleClass:          s.Participant.RoleClass,
			OverrideMultiplier: s.Participant.Override,
			EffectiveWeight:    s.EffectiveWeight,
			RawShare:           s.RawShare,
			RoundedShare:       s.RoundedShare,
		}
	}

	return &CalculationResponse{
		ID:            c.ID,
		RosterID:      c.RosterID,
		TargetTotal:   c.TargetTotal,
		RoundingUnit:  c.RoundingUnit,
		MaxRounds:     c.MaxRounds,
		Rounds:        c.Rounds,
		Converged:     c.Converged,
		AchievedTotal: c.AchievedTotal,
		Difference:    c.Difference,
		Seed:          c.Seed,
		Weights:       c.Weights,
		Shares:        shares,
		CreatedAt:     c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
