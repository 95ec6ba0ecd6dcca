package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fkhayef/warikan/internal/fairshare"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

func renderResult(r *fairshare.Result) string {
	rows := make([][]string, len(r.Shares))
	for i, s := range r.Shares {
		override := "-"
		if s.Participant.Override != nil {
			override = formatAmount(*s.Participant.Override)
		}
		rows[i] = []string{
			s.Participant.Name,
			string(s.Participant.RoleClass),
			override,
			strconv.FormatFloat(s.EffectiveWeight, 'f', 3, 64),
			strconv.FormatFloat(s.RawShare, 'f', 1, 64),
			formatAmount(s.RoundedShare),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("NAME", "ROLE", "OVERRIDE", "WEIGHT", "RAW", "SHARE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 2:
				return numberStyle
			default:
				return cellStyle
			}
		})

	status := okStyle.Render(fmt.Sprintf("converged in %d round(s)", r.Rounds))
	if !r.Converged {
		status = warnStyle.Render(fmt.Sprintf("did not converge after %d round(s)", r.Rounds))
	}

	return fmt.Sprintf("%s\ntotal %s of %s (difference %s, unit %s), %s",
		t.Render(),
		formatAmount(r.AchievedTotal),
		formatAmount(r.TargetTotal),
		formatAmount(r.Difference),
		formatAmount(r.RoundingUnit),
		status)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
