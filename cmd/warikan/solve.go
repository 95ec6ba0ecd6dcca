package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fkhayef/warikan/internal/fairshare"
	"github.com/fkhayef/warikan/internal/override"
)

type solveOptions struct {
	file      string
	rulesFile string
	total     float64
	unit      float64
	rounds    int
	seed      uint64
	asJSON    bool
	strict    bool
	matchMode string
}

func newSolveCmd(a *app) *cobra.Command {
	var o solveOptions

	cmd := &cobra.Command{
		Use:   "solve -f party.yaml",
		Short: "Split a total between the participants of a party file",
		Long: `Reads participants from a YAML party file and prints each share.

Participants without an explicit override pick one up from --rules.
Flags win over the total and unit given in the file.

Example:
  warikan solve -f party.yaml --total 48000 --unit 1000
  warikan solve -f party.yaml --rules rules.yaml --seed 7 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.solve(cmd, &o)
		},
	}

	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Party file (YAML)")
	cmd.Flags().StringVar(&o.rulesFile, "rules", "", "Override rules file (YAML)")
	cmd.Flags().Float64Var(&o.total, "total", 0, "Total to split")
	cmd.Flags().Float64Var(&o.unit, "unit", 0, "Rounding unit (default SOLVER_ROUNDING_UNIT)")
	cmd.Flags().IntVar(&o.rounds, "rounds", 0, "Maximum refinement rounds (default SOLVER_MAX_ROUNDS)")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "Seed for a reproducible split")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "Fail when the split does not converge")
	cmd.Flags().StringVar(&o.matchMode, "match", "", "Override match mode: contains or exact (default OVERRIDE_MATCH_MODE)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (a *app) solve(cmd *cobra.Command, o *solveOptions) error {
	party, err := loadParty(o.file)
	if err != nil {
		return err
	}
	participants := party.participants()

	if o.rulesFile != "" {
		matcher, err := a.matcher(o.matchMode)
		if err != nil {
			return err
		}
		rules, err := loadRules(o.rulesFile)
		if err != nil {
			return err
		}
		applyRules(participants, matcher, rules)
	}

	total := party.Total
	if cmd.Flags().Changed("total") {
		total = o.total
	}
	unit := a.cfg.Solver.RoundingUnit
	if party.Unit > 0 {
		unit = party.Unit
	}
	if cmd.Flags().Changed("unit") {
		unit = o.unit
	}
	rounds := a.cfg.Solver.MaxRounds
	if cmd.Flags().Changed("rounds") {
		rounds = o.rounds
	}

	opts, err := a.cfg.Solver.SolverOptions()
	if err != nil {
		return err
	}
	opts.OnRound = func(st fairshare.RoundStats) {
		a.logger.Debug("solver round",
			zap.Int("round", st.Round),
			zap.Float64("achieved_total", st.AchievedTotal),
			zap.Float64("difference", st.Difference))
	}
	solver, err := fairshare.NewSolver(opts)
	if err != nil {
		return err
	}

	req := fairshare.Request{
		Participants: participants,
		TargetTotal:  total,
		RoundingUnit: unit,
		MaxRounds:    rounds,
	}
	if cmd.Flags().Changed("seed") {
		req.Rand = fairshare.NewSeededRand(o.seed)
	}

	result, err := solver.Solve(req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if o.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	} else {
		fmt.Fprintln(out, renderResult(result))
	}

	if o.strict {
		return result.CheckConverged()
	}
	return nil
}

func (a *app) matcher(flag string) (*override.Matcher, error) {
	mode := a.cfg.OverrideMatchMode
	if flag != "" {
		mode = flag
	}
	m, err := override.ParseMatchMode(mode)
	if err != nil {
		return nil, err
	}
	return override.NewMatcher(m), nil
}

// applyRules gives every participant without an explicit override the
// multiplier of the first matching rule
func applyRules(participants []fairshare.Participant, matcher *override.Matcher, rules []*override.Rule) {
	for i := range participants {
		if participants[i].Override != nil {
			continue
		}
		if rule, ok := matcher.Match(participants[i].Name, rules); ok {
			m := rule.Multiplier
			participants[i].Override = &m
		}
	}
}
