package override

// CreateRuleRequest represents the request to create an override rule
type CreateRuleRequest struct {
	Label      string   `json:"label" validate:"required,min=1,max=100"`
	Patterns   []string `json:"patterns" validate:"required,min=1"`
	Multiplier float64  `json:"multiplier" validate:"required,gt=0"`
}

// UpdateRuleRequest represents the request to update an override rule
type UpdateRuleRequest struct {
	Label      *string   `json:"label,omitempty"`
	Patterns   *[]string `json:"patterns,omitempty"`
	Multiplier *float64  `json:"multiplier,omitempty"`
}

// RuleResponse represents the response for an override rule
type RuleResponse struct {
	ID         int64    `json:"id"`
	Label      string   `json:"label"`
	Patterns   []string `json:"patterns"`
	Multiplier float64  `json:"multiplier"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

// ToResponse converts a Rule model to a RuleResponse DTO
func (r *Rule) ToResponse() *RuleResponse {
	return &RuleResponse{
		ID:         r.ID,
		Label:      r.Label,
		Patterns:   r.Patterns,
		Multiplier: r.Multiplier,
		CreatedAt:  r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:  r.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
