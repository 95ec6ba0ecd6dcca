// Package fairshare splits a total between participants in proportion to
// role-class weights and snaps every share to a rounding unit.
//
// Rounded shares rarely add up to the target on the first try, so the solver
// repeatedly nudges the non-anchor role weights up or down until the rounded
// total lands within one rounding unit of the target, or a fixed number of
// rounds has been spent. A small random jitter is applied to weights now and
// then to break exact cycles. Without a seeded random source two solves of the
// same input may return different splits.
//
// Shares are rounded half to even: 2.5 units becomes 2, 3.5 units becomes 4.
package fairshare

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Defaults for the refinement loop
const (
	DefaultMaxRounds       = 25
	DefaultCoarseThreshold = 1000.0
	DefaultCoarseRate      = 0.01
	DefaultFineRate        = 0.005
	DefaultMutationRate    = 0.02
	DefaultJitterMin       = 0.95
	DefaultJitterMax       = 1.05
)

// RandSource supplies uniform floats in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// NewSeededRand returns a deterministic source for reproducible solves
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newUnseededRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// RoundStats describes one completed round
type RoundStats struct {
	Round         int
	AchievedTotal float64
	Difference    float64
	Converged     bool
}

// Options tunes the refinement loop. Use DefaultOptions and change what you
// need: a zero rate or threshold is honoured as given. Only when all of
// CoarseThreshold, CoarseRate, FineRate and MutationRate are zero do they fall
// back to the defaults together; the jitter range does the same for a zero
// JitterMin and JitterMax.
type Options struct {
	Weights         WeightTable
	CoarseThreshold float64
	CoarseRate      float64
	FineRate        float64
	MutationRate    float64
	JitterMin       float64
	JitterMax       float64

	// OnRound, when set, is called after every round
	OnRound func(RoundStats)
}

// DefaultOptions returns the reference tuning with the default weight table
func DefaultOptions() Options {
	return Options{
		Weights:         DefaultWeights(),
		CoarseThreshold: DefaultCoarseThreshold,
		CoarseRate:      DefaultCoarseRate,
		FineRate:        DefaultFineRate,
		MutationRate:    DefaultMutationRate,
		JitterMin:       DefaultJitterMin,
		JitterMax:       DefaultJitterMax,
	}
}

// Solver holds validated options; it is safe for concurrent use as long as
// each Request brings its own RandSource (or none).
type Solver struct {
	opts Options
}

// NewSolver validates options and fills in defaults
func NewSolver(opts Options) (*Solver, error) {
	def := DefaultOptions()
	if opts.Weights == nil {
		opts.Weights = def.Weights
	} else {
		table, err := NewWeightTable(opts.Weights)
		if err != nil {
			return nil, err
		}
		opts.Weights = table
	}
	if opts.CoarseThreshold == 0 && opts.CoarseRate == 0 && opts.FineRate == 0 && opts.MutationRate == 0 {
		opts.CoarseThreshold = def.CoarseThreshold
		opts.CoarseRate = def.CoarseRate
		opts.FineRate = def.FineRate
		opts.MutationRate = def.MutationRate
	}
	if opts.JitterMin == 0 && opts.JitterMax == 0 {
		opts.JitterMin = def.JitterMin
		opts.JitterMax = def.JitterMax
	}

	if opts.CoarseThreshold < 0 || math.IsNaN(opts.CoarseThreshold) {
		return nil, fmt.Errorf("%w: coarse threshold must not be negative", ErrInvalidInput)
	}
	if !validRate(opts.CoarseRate) || !validRate(opts.FineRate) {
		return nil, fmt.Errorf("%w: adjustment rates must be between 0 and 1", ErrInvalidInput)
	}
	if opts.MutationRate < 0 || opts.MutationRate > 1 {
		return nil, fmt.Errorf("%w: mutation rate must be between 0 and 1", ErrInvalidInput)
	}
	if !isPositiveFinite(opts.JitterMin) || opts.JitterMax < opts.JitterMin || math.IsInf(opts.JitterMax, 0) {
		return nil, fmt.Errorf("%w: jitter range must be positive and ordered", ErrInvalidInput)
	}

	return &Solver{opts: opts}, nil
}

// Weights returns a copy of the starting weight table
func (s *Solver) Weights() WeightTable {
	return s.opts.Weights.Clone()
}

// Request is the input of a single solve
type Request struct {
	Participants []Participant
	TargetTotal  float64
	RoundingUnit float64
	MaxRounds    int

	// Rand drives the jitter step. Nil gets a fresh unseeded source.
	Rand RandSource
}

// Solve splits the total with default options
func Solve(participants []Participant, targetTotal, roundingUnit float64, maxRounds int) (*Result, error) {
	s, err := NewSolver(Options{})
	if err != nil {
		return nil, err
	}
	return s.Solve(Request{
		Participants: participants,
		TargetTotal:  targetTotal,
		RoundingUnit: roundingUnit,
		MaxRounds:    maxRounds,
	})
}

// Solve runs the refinement loop and returns the last computed round.
// A result that missed the target has Converged set to false; see
// Result.CheckConverged.
func (s *Solver) Solve(req Request) (*Result, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	rng := req.Rand
	if rng == nil {
		rng = newUnseededRand()
	}

	weights := s.opts.Weights.Clone()
	anchor := weights.Anchor()

	var result *Result
	for round := 1; round <= req.MaxRounds; round++ {
		result = evaluate(req, weights)
		result.Rounds = round

		// Sums of unit multiples pick up float noise for fractional units
		if math.Abs(result.Difference) <= req.RoundingUnit*(1+1e-9) {
			result.Converged = true
		}
		if s.opts.OnRound != nil {
			s.opts.OnRound(RoundStats{
				Round:         round,
				AchievedTotal: result.AchievedTotal,
				Difference:    result.Difference,
				Converged:     result.Converged,
			})
		}
		if result.Converged || round == req.MaxRounds {
			break
		}

		s.refine(weights, anchor, result.Difference, rng)
	}

	return result, nil
}

func (s *Solver) validate(req Request) error {
	if len(req.Participants) == 0 {
		return ErrNoParticipants
	}
	if !isPositiveFinite(req.TargetTotal) {
		return ErrInvalidTotal
	}
	if !isPositiveFinite(req.RoundingUnit) {
		return ErrInvalidRoundingUnit
	}
	if req.MaxRounds <= 0 {
		return ErrInvalidMaxRounds
	}
	for i, p := range req.Participants {
		if !s.opts.Weights.Has(p.RoleClass) {
			return fmt.Errorf("%w %q for participant %d (%s)", ErrUnknownRole, p.RoleClass, i, p.Name)
		}
		if p.Override != nil && !isPositiveFinite(*p.Override) {
			return fmt.Errorf("%w: participant %d (%s)", ErrInvalidOverride, i, p.Name)
		}
	}
	return nil
}

// evaluate computes shares for the current weights
func evaluate(req Request, weights WeightTable) *Result {
	shares := make([]Share, len(req.Participants))

	var totalWeight float64
	for i, p := range req.Participants {
		base, _ := weights.Weight(p.RoleClass)
		shares[i].Participant = p
		shares[i].EffectiveWeight = base * p.OverrideMultiplier()
		totalWeight += shares[i].EffectiveWeight
	}

	var achieved float64
	for i := range shares {
		raw := shares[i].EffectiveWeight / totalWeight * req.TargetTotal
		shares[i].RawShare = raw
		shares[i].RoundedShare = roundToUnit(raw, req.RoundingUnit)
		achieved += shares[i].RoundedShare
	}

	return &Result{
		Shares:        shares,
		TargetTotal:   req.TargetTotal,
		RoundingUnit:  req.RoundingUnit,
		AchievedTotal: achieved,
		Difference:    achieved - req.TargetTotal,
		Weights:       weights.Clone(),
		MaxRounds:     req.MaxRounds,
	}
}

// refine scales every non-anchor weight against the sign of the difference,
// occasionally adding a random jitter factor
func (s *Solver) refine(weights WeightTable, anchor RoleClass, difference float64, rng RandSource) {
	rate := s.opts.FineRate
	if math.Abs(difference) > s.opts.CoarseThreshold {
		rate = s.opts.CoarseRate
	}

	factor := 1 + rate
	if difference > 0 {
		factor = 1 - rate
	}

	for i := range weights {
		if weights[i].Role == anchor {
			continue
		}
		weights[i].Weight *= factor
		if rng.Float64() < s.opts.MutationRate {
			weights[i].Weight *= s.opts.JitterMin + rng.Float64()*(s.opts.JitterMax-s.opts.JitterMin)
		}
	}
}

// roundToUnit snaps value to the nearest multiple of unit, ties to even
func roundToUnit(value, unit float64) float64 {
	return unit * math.RoundToEven(value/unit)
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func validRate(v float64) bool {
	return v > 0 && v < 1
}
