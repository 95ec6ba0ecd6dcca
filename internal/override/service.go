package override

import (
	"context"
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"
)

// Common errors
var (
	ErrRuleNotFound      = errors.New("override rule not found")
	ErrInvalidLabel      = errors.New("label is required")
	ErrNoPatterns        = errors.New("at least one non-empty pattern is required")
	ErrInvalidMultiplier = errors.New("multiplier must be positive")
)

// Store is the persistence the service needs
type Store interface {
	Create(ctx context.Context, req *CreateRuleRequest) (*Rule, error)
	GetByID(ctx context.Context, id int64) (*Rule, error)
	List(ctx context.Context, limit, offset int) ([]*Rule, int, error)
	ListAll(ctx context.Context) ([]*Rule, error)
	Update(ctx context.Context, rule *Rule) (*Rule, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Service handles override rule business logic
type Service struct {
	store   Store
	matcher *Matcher
	logger  *zap.Logger
}

// NewService creates a new override service
func NewService(store Store, matcher *Matcher, logger *zap.Logger) *Service {
	return &Service{store: store, matcher: matcher, logger: logger}
}

// Create validates and stores a new rule
func (s *Service) Create(ctx context.Context, req *CreateRuleRequest) (*Rule, error) {
	req.Label = strings.TrimSpace(req.Label)
	req.Patterns = CleanPatterns(req.Patterns)
	if err := ValidateRule(req.Label, req.Patterns, req.Multiplier); err != nil {
		return nil, err
	}

	rule, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("override rule created",
		zap.Int64("rule_id", rule.ID),
		zap.Strings("patterns", rule.Patterns),
		zap.Float64("multiplier", rule.Multiplier))
	return rule, nil
}

// GetByID retrieves a rule by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Rule, error) {
	rule, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}
	return rule, nil
}

// List retrieves a page of rules in match order
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Rule, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.List(ctx, perPage, offset)
}

// Update applies a partial update to a rule
func (s *Service) Update(ctx context.Context, id int64, req *UpdateRuleRequest) (*Rule, error) {
	rule, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		rule.Label = strings.TrimSpace(*req.Label)
	}
	if req.Patterns != nil {
		rule.Patterns = CleanPatterns(*req.Patterns)
	}
	if req.Multiplier != nil {
		rule.Multiplier = *req.Multiplier
	}
	if err := ValidateRule(rule.Label, rule.Patterns, rule.Multiplier); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, rule)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrRuleNotFound
	}
	return updated, nil
}

// Delete removes a rule
func (s *Service) Delete(ctx context.Context, id int64) error {
	found, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrRuleNotFound
	}
	return nil
}

// Resolve finds the multiplier for a single name
func (s *Service) Resolve(ctx context.Context, name string) (*Resolution, error) {
	resolutions, err := s.ResolveAll(ctx, []string{name})
	if err != nil {
		return nil, err
	}
	return &resolutions[0], nil
}

// ResolveAll resolves several names against one snapshot of the rules
func (s *Service) ResolveAll(ctx context.Context, names []string) ([]Resolution, error) {
	rules, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Resolution, len(names))
	for i, name := range names {
		out[i] = s.matcher.Resolve(name, rules)
		if out[i].Matched() {
			s.logger.Debug("override rule matched",
				zap.String("name", name),
				zap.Int64("rule_id", *out[i].RuleID),
				zap.Float64("multiplier", out[i].Multiplier))
		}
	}
	return out, nil
}

// CleanPatterns trims patterns and drops the blank ones
func CleanPatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateRule checks a rule after its label and patterns were cleaned
func ValidateRule(label string, patterns []string, multiplier float64) error {
	if label == "" {
		return ErrInvalidLabel
	}
	if len(patterns) == 0 {
		return ErrNoPatterns
	}
	if !(multiplier > 0) || math.IsInf(multiplier, 0) {
		return ErrInvalidMultiplier
	}
	return nil
}
