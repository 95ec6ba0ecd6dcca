package calculation

import (
	"time"

	"github.com/fkhayef/warikan/internal/fairshare"
)

// Calculation is a stored solver run
type Calculation struct {
	ID            string                `json:"id"`
	RosterID      *int64                `json:"roster_id,omitempty"`
	TargetTotal   float64               `json:"target_total"`
	RoundingUnit  float64               `json:"rounding_unit"`
	MaxRounds     int                   `json:"max_rounds"`
	Rounds        int                   `json:"rounds"`
	Converged     bool                  `json:"converged"`
	AchievedTotal float64               `json:"achieved_total"`
	Difference    float64               `json:"difference"`
	Seed          *int64                `json:"seed,omitempty"`
	Weights       fairshare.WeightTable `json:"weights"`
	Shares        []fairshare.Share     `json:"shares"`
	CreatedAt     time.Time             `json:"created_at"`
}

// Result rebuilds the solver result the calculation was created from
func (c *Calculation) Result() *fairshare.Result {
	return &fairshare.Result{
		Shares:        c.Shares,
		TargetTotal:   c.TargetTotal,
		RoundingUnit:  c.RoundingUnit,
		AchievedTotal: c.AchievedTotal,
		Difference:    c.Difference,
		Weights:       c.Weights,
		Rounds:        c.Rounds,
		MaxRounds:     c.MaxRounds,
		Converged:     c.Converged,
	}
}
