package override

import "time"

// Rule assigns a multiplier to everyone whose name matches one of its patterns
type Rule struct {
	ID         int64     `json:"id"`
	Label      string    `json:"label"`
	Patterns   []string  `json:"patterns"`
	Multiplier float64   `json:"multiplier"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Resolution is the outcome of resolving one participant name
type Resolution struct {
	Name       string  `json:"name"`
	Normalized string  `json:"normalized"`
	Multiplier float64 `json:"multiplier"`
	RuleID     *int64  `json:"rule_id,omitempty"`
	RuleLabel  string  `json:"rule_label,omitempty"`
}

// Matched reports whether a rule applied
func (r *Resolution) Matched() bool {
	return r.RuleID != nil
}
