package fairshare

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is wrapped by every validation failure
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConverged marks a best-effort result that missed the target
	ErrNotConverged = errors.New("split did not converge")

	ErrNoParticipants      = fmt.Errorf("%w: at least one participant is required", ErrInvalidInput)
	ErrInvalidTotal        = fmt.Errorf("%w: target total must be positive", ErrInvalidInput)
	ErrInvalidRoundingUnit = fmt.Errorf("%w: rounding unit must be positive", ErrInvalidInput)
	ErrInvalidMaxRounds    = fmt.Errorf("%w: max rounds must be positive", ErrInvalidInput)
	ErrUnknownRole         = fmt.Errorf("%w: unknown role class", ErrInvalidInput)
	ErrInvalidOverride     = fmt.Errorf("%w: override multiplier must be positive", ErrInvalidInput)
)

// NonConvergenceError reports how far off the last round was
type NonConvergenceError struct {
	Rounds       int
	Difference   float64
	RoundingUnit float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("split did not converge after %d rounds: difference %.2f exceeds rounding unit %.2f",
		e.Rounds, e.Difference, e.RoundingUnit)
}

func (e *NonConvergenceError) Unwrap() error {
	return ErrNotConverged
}
