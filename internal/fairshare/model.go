package fairshare

import (
	"fmt"
	"sort"
)

// RoleClass is the seniority tier that determines a participant's base weight
type RoleClass string

const (
	RoleExecutive  RoleClass = "executive"
	RoleManager    RoleClass = "manager"
	RoleSupervisor RoleClass = "supervisor"
	RoleLead       RoleClass = "lead"
	RoleStaff      RoleClass = "staff"
)

// Participant is one person taking part in the split
type Participant struct {
	Name      string    `json:"name"`
	RoleClass RoleClass `json:"role_class"`
	// Override is an admin-assigned factor applied on top of the role weight.
	// Nil means 1.0.
	Override *float64 `json:"override_multiplier,omitempty"`
}

// OverrideMultiplier returns the participant's override factor, defaulting to 1.0
func (p Participant) OverrideMultiplier() float64 {
	if p.Override == nil {
		return 1.0
	}
	return *p.Override
}

// RoleWeight is a single entry of a WeightTable
type RoleWeight struct {
	Role   RoleClass `json:"role" yaml:"role"`
	Weight float64   `json:"weight" yaml:"weight"`
}

// WeightTable maps role classes to multipliers. Entries are kept ordered from
// the heaviest to the lightest role; the last entry is the anchor and is never
// adjusted while solving.
type WeightTable []RoleWeight

// DefaultWeights returns a fresh copy of the built-in weight table
func DefaultWeights() WeightTable {
	return WeightTable{
		{Role: RoleExecutive, Weight: 1.6},
		{Role: RoleManager, Weight: 1.4},
		{Role: RoleSupervisor, Weight: 1.2},
		{Role: RoleLead, Weight: 1.1},
		{Role: RoleStaff, Weight: 1.0},
	}
}

// NewWeightTable validates entries and orders them heaviest first.
// Ties keep their input order, so the last of several lightest roles anchors.
func NewWeightTable(entries []RoleWeight) (WeightTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: weight table is empty", ErrInvalidInput)
	}

	seen := make(map[RoleClass]bool, len(entries))
	table := make(WeightTable, len(entries))
	for i, e := range entries {
		if e.Role == "" {
			return nil, fmt.Errorf("%w: weight table entry %d has no role", ErrInvalidInput, i)
		}
		if seen[e.Role] {
			return nil, fmt.Errorf("%w: role %q listed twice", ErrInvalidInput, e.Role)
		}
		if !isPositiveFinite(e.Weight) {
			return nil, fmt.Errorf("%w: weight for role %q must be positive", ErrInvalidInput, e.Role)
		}
		seen[e.Role] = true
		table[i] = e
	}

	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Weight > table[j].Weight
	})
	return table, nil
}

// Clone returns an independent copy of the table
func (t WeightTable) Clone() WeightTable {
	out := make(WeightTable, len(t))
	copy(out, t)
	return out
}

// Weight looks up the multiplier for a role class
func (t WeightTable) Weight(role RoleClass) (float64, bool) {
	for _, e := range t {
		if e.Role == role {
			return e.Weight, true
		}
	}
	return 0, false
}

// Has reports whether the table defines a weight for the role
func (t WeightTable) Has(role RoleClass) bool {
	_, ok := t.Weight(role)
	return ok
}

// Anchor returns the lightest role class
func (t WeightTable) Anchor() RoleClass {
	if len(t) == 0 {
		return ""
	}
	return t[len(t)-1].Role
}

// Roles lists the role classes in table order
func (t WeightTable) Roles() []RoleClass {
	roles := make([]RoleClass, len(t))
	for i, e := range t {
		roles[i] = e.Role
	}
	return roles
}

// Share is one participant's slice of the total
type Share struct {
	Participant     Participant `json:"participant"`
	EffectiveWeight float64     `json:"effective_weight"`
	RawShare        float64     `json:"raw_share"`
	RoundedShare    float64     `json:"rounded_share"`
}

// Result is the outcome of the last computed round of a solve
type Result struct {
	Shares        []Share     `json:"shares"`
	TargetTotal   float64     `json:"target_total"`
	RoundingUnit  float64     `json:"rounding_unit"`
	AchievedTotal float64     `json:"achieved_total"`
	Difference    float64     `json:"difference"`
	Weights       WeightTable `json:"weights"`
	Rounds        int         `json:"rounds"`
	MaxRounds     int         `json:"max_rounds"`
	Converged     bool        `json:"converged"`
}

// CheckConverged returns a *NonConvergenceError when the solve ran out of
// rounds. Callers that accept best-effort splits simply ignore it.
func (r *Result) CheckConverged() error {
	if r.Converged {
		return nil
	}
	return &NonConvergenceError{
		Rounds:       r.Rounds,
		Difference:   r.Difference,
		RoundingUnit: r.RoundingUnit,
	}
}
