package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newMatchCmd(a *app) *cobra.Command {
	var (
		rulesFile string
		matchMode string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "match NAME --rules rules.yaml",
		Short: "Show which override rule applies to a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matcher, err := a.matcher(matchMode)
			if err != nil {
				return err
			}
			rules, err := loadRules(rulesFile)
			if err != nil {
				return err
			}

			res := matcher.Resolve(args[0], rules)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			if res.Matched() {
				fmt.Fprintf(out, "%s → %s (%s) ×%g\n", res.Name, res.Normalized, res.RuleLabel, res.Multiplier)
			} else {
				fmt.Fprintf(out, "%s → %s (no rule) ×%g\n", res.Name, res.Normalized, res.Multiplier)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "", "Override rules file (YAML)")
	cmd.Flags().StringVar(&matchMode, "match", "", "Match mode: contains or exact (default OVERRIDE_MATCH_MODE)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the resolution as JSON")
	_ = cmd.MarkFlagRequired("rules")

	return cmd
}
