package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/warikan/internal/fairshare"
	"github.com/fkhayef/warikan/internal/override"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SOLVER_ROUNDING_UNIT", "500")
	t.Setenv("SOLVER_WEIGHTS_FILE", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const party = `
total: 10000
participants:
  - name: 田中部長
    role: manager
  - name: 鈴木さん
    role: staff
  - name: 伊藤
    role: staff
`

const rules = `
rules:
  - label: guest of honour
    patterns: [鈴木]
    multiplier: 3
  - label: everyone named 鈴木 again
    patterns: [鈴木]
    multiplier: 9
`

func TestSolve_JSON(t *testing.T) {
	path := writeFile(t, "party.yaml", party)

	out, err := run(t, "solve", "-f", path, "--json")
	require.NoError(t, err)

	var result fairshare.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Converged)
	assert.Equal(t, 10000.0, result.AchievedTotal)
	require.Len(t, result.Shares, 3)
	assert.Equal(t, 4000.0, result.Shares[0].RoundedShare)
	assert.Equal(t, 3000.0, result.Shares[1].RoundedShare)
}

func TestSolve_RulesAndFlags(t *testing.T) {
	partyPath := writeFile(t, "party.yaml", party)
	rulesPath := writeFile(t, "rules.yaml", rules)

	out, err := run(t, "solve", "-f", partyPath, "--rules", rulesPath, "--total", "5400", "--unit", "1", "--json")
	require.NoError(t, err)

	var result fairshare.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 5400.0, result.TargetTotal)
	require.NotNil(t, result.Shares[1].Participant.Override)
	assert.Equal(t, 3.0, *result.Shares[1].Participant.Override, "first rule wins")
	assert.Nil(t, result.Shares[2].Participant.Override)
	// weights 1.4 : 3 : 1
	assert.Equal(t, 1400.0, result.Shares[0].RoundedShare)
	assert.Equal(t, 3000.0, result.Shares[1].RoundedShare)
	assert.Equal(t, 1000.0, result.Shares[2].RoundedShare)
}

func TestSolve_Table(t *testing.T) {
	path := writeFile(t, "party.yaml", party)

	out, err := run(t, "solve", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "田中部長")
	assert.Contains(t, out, "4000")
	assert.Contains(t, out, "converged in 1 round(s)")
}

func TestSolve_Strict(t *testing.T) {
	path := writeFile(t, "party.yaml", `
total: 1000
participants:
  - {name: a, role: staff}
  - {name: b, role: staff}
  - {name: c, role: staff}
  - {name: d, role: staff}
  - {name: e, role: staff}
  - {name: f, role: staff}
  - {name: g, role: staff}
`)

	out, err := run(t, "solve", "-f", path, "--unit", "100", "--rounds", "5", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "did not converge after 5 round(s)")

	_, err = run(t, "solve", "-f", path, "--unit", "100", "--rounds", "5", "--seed", "1", "--strict")
	require.Error(t, err)
	var nce *fairshare.NonConvergenceError
	require.ErrorAs(t, err, &nce)
	assert.Equal(t, 5, nce.Rounds)
}

func TestSolve_Errors(t *testing.T) {
	_, err := run(t, "solve")
	assert.Error(t, err, "party file is required")

	_, err = run(t, "solve", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeFile(t, "party.yaml", "participants:\n  - {name: a, role: intern}\ntotal: 100\n")
	_, err = run(t, "solve", "-f", path)
	assert.ErrorIs(t, err, fairshare.ErrUnknownRole)
}

func TestMatch(t *testing.T) {
	rulesPath := writeFile(t, "rules.yaml", rules)

	out, err := run(t, "match", "鈴木様", "--rules", rulesPath, "--json")
	require.NoError(t, err)

	var res override.Resolution
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "鈴木", res.Normalized)
	assert.Equal(t, 3.0, res.Multiplier)
	require.NotNil(t, res.RuleID)
	assert.Equal(t, int64(1), *res.RuleID)

	out, err = run(t, "match", "伊藤", "--rules", rulesPath)
	require.NoError(t, err)
	assert.Contains(t, out, "no rule")

	out, err = run(t, "match", "鈴木一郎", "--rules", rulesPath, "--match", "exact", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1.0, res.Multiplier)
}

func TestLoadRules_RejectsInvalidRules(t *testing.T) {
	tests := []struct {
		name string
		rule string
		want error
	}{
		{"zero multiplier", "{label: x, patterns: [a], multiplier: 0}", override.ErrInvalidMultiplier},
		{"infinite multiplier", "{label: x, patterns: [a], multiplier: .inf}", override.ErrInvalidMultiplier},
		{"blank label", "{label: '  ', patterns: [a], multiplier: 1}", override.ErrInvalidLabel},
		{"no patterns", "{label: x, patterns: [], multiplier: 1}", override.ErrNoPatterns},
		{"blank patterns", "{label: x, patterns: ['', ' '], multiplier: 1}", override.ErrNoPatterns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "rules.yaml", "rules:\n  - "+tt.rule+"\n")
			_, err := loadRules(path)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadRules_TrimsPatterns(t *testing.T) {
	path := writeFile(t, "rules.yaml", "rules:\n  - {label: ' vip ', patterns: [' 山田 ', ''], multiplier: 0.5}\n")
	rules, err := loadRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "vip", rules[0].Label)
	assert.Equal(t, []string{"山田"}, rules[0].Patterns)
}
