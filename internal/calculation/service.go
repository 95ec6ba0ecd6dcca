package calculation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fkhayef/warikan/internal/fairshare"
	"github.com/fkhayef/warikan/internal/override"
)

// Common errors
var (
	ErrCalculationNotFound = errors.New("calculation not found")
	ErrNoSource            = errors.New("either participants or roster_id is required")
	ErrAmbiguousSource     = errors.New("participants and roster_id cannot both be given")
)

// ParticipantSource loads saved participant lists; implemented by the roster service
type ParticipantSource interface {
	Participants(ctx context.Context, rosterID int64) ([]fairshare.Participant, error)
}

// OverrideResolver finds name-based multipliers; implemented by the override service
type OverrideResolver interface {
	ResolveAll(ctx context.Context, names []string) ([]override.Resolution, error)
}

// Defaults fill in request fields that were left out
type Defaults struct {
	RoundingUnit float64
	MaxRounds    int
}

// Service runs and stores fair-share calculations
type Service struct {
	repo      *Repository
	solver    *fairshare.Solver
	rosters   ParticipantSource
	overrides OverrideResolver
	defaults  Defaults
	logger    *zap.Logger
}

// NewService builds the solver from opts and wires it with its collaborators
func NewService(
	repo *Repository,
	opts fairshare.Options,
	rosters ParticipantSource,
	overrides OverrideResolver,
	defaults Defaults,
	logger *zap.Logger,
) (*Service, error) {
	if defaults.MaxRounds <= 0 {
		defaults.MaxRounds = fairshare.DefaultMaxRounds
	}

	opts.OnRound = func(st fairshare.RoundStats) {
		logger.Debug("solver round",
			zap.Int("round", st.Round),
			zap.Float64("achieved_total", st.AchievedTotal),
			zap.Float64("difference", st.Difference),
			zap.Bool("converged", st.Converged))
	}
	solver, err := fairshare.NewSolver(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to configure solver: %w", err)
	}

	return &Service{
		repo:      repo,
		solver:    solver,
		rosters:   rosters,
		overrides: overrides,
		defaults:  defaults,
		logger:    logger,
	}, nil
}

// Weights returns the starting weight table of the solver
func (s *Service) Weights() fairshare.WeightTable {
	return s.solver.Weights()
}

// Calculate solves and stores a split. The stored calculation is returned even
// when RequireConvergence is set and the split missed the target; the error is
// then a *fairshare.NonConvergenceError.
func (s *Service) Calculate(ctx context.Context, req *CalculateRequest) (*Calculation, error) {
	participants, err := s.participants(ctx, req)
	if err != nil {
		return nil, err
	}

	unit := s.defaults.RoundingUnit
	if req.RoundingUnit != nil {
		unit = *req.RoundingUnit
	}
	maxRounds := s.defaults.MaxRounds
	if req.MaxRounds != nil {
		maxRounds = *req.MaxRounds
	}

	solveReq := fairshare.Request{
		Participants: participants,
		TargetTotal:  req.TargetTotal,
		RoundingUnit: unit,
		MaxRounds:    maxRounds,
	}
	if req.Seed != nil {
		solveReq.Rand = fairshare.NewSeededRand(uint64(*req.Seed))
	}

	result, err := s.solver.Solve(solveReq)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate calculation id: %w", err)
	}

	calc := &Calculation{
		ID:            id.String(),
		RosterID:      req.RosterID,
		TargetTotal:   result.TargetTotal,
		RoundingUnit:  result.RoundingUnit,
		MaxRounds:     result.MaxRounds,
		Rounds:        result.Rounds,
		Converged:     result.Converged,
		AchievedTotal: result.AchievedTotal,
		Difference:    result.Difference,
		Seed:          req.Seed,
		Weights:       result.Weights,
		Shares:        result.Shares,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, calc); err != nil {
		return nil, err
	}

	s.logger.Info("calculation stored",
		zap.String("calculation_id", calc.ID),
		zap.Int("participants", len(calc.Shares)),
		zap.Int("rounds", calc.Rounds),
		zap.Bool("converged", calc.Converged),
		zap.Float64("difference", calc.Difference))

	if req.RequireConvergence {
		return calc, calc.Result().CheckConverged()
	}
	return calc, nil
}

// GetByID retrieves a stored calculation
func (s *Service) GetByID(ctx context.Context, id string) (*Calculation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrCalculationNotFound
	}

	calc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if calc == nil {
		return nil, ErrCalculationNotFound
	}
	return calc, nil
}

// List retrieves a page of stored calculations, newest first
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Calculation, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Delete removes a stored calculation
func (s *Service) Delete(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrCalculationNotFound
	}
	return nil
}

// participants collects solver input and fills in overrides from the rule
// repository for everyone who does not carry an explicit one
func (s *Service) participants(ctx context.Context, req *CalculateRequest) ([]fairshare.Participant, error) {
	var participants []fairshare.Participant
	switch {
	case req.RosterID != nil && len(req.Participants) > 0:
		return nil, ErrAmbiguousSource
	case req.RosterID != nil:
		var err error
		participants, err = s.rosters.Participants(ctx, *req.RosterID)
		if err != nil {
			return nil, err
		}
	case len(req.Participants) > 0:
		participants = make([]fairshare.Participant, len(req.Participants))
		for i, p := range req.Participants {
			participants[i] = fairshare.Participant{
				Name:      p.Name,
				RoleClass: p.RoleClass,
				Override:  p.OverrideMultiplier,
			}
		}
	default:
		return nil, ErrNoSource
	}

	if s.overrides == nil {
		return participants, nil
	}

	var names []string
	var idx []int
	for i, p := range participants {
		if p.Override == nil {
			names = append(names, p.Name)
			idx = append(idx, i)
		}
	}
	if len(names) == 0 {
		return participants, nil
	}

	resolutions, err := s.overrides.ResolveAll(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve overrides: %w", err)
	}
	for j, res := range resolutions {
		if res.Matched() {
			m := res.Multiplier
			participants[idx[j]].Override = &m
		}
	}
	return participants, nil
}
