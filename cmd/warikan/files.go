package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fkhayef/warikan/internal/fairshare"
	"github.com/fkhayef/warikan/internal/override"
)

// partyFile is the YAML layout read by "warikan solve":
//
//	total: 48000
//	unit: 500
//	participants:
//	  - name: 田中
//	    role: manager
//	  - name: 鈴木
//	    role: staff
//	    override: 0.5
type partyFile struct {
	Total        float64      `yaml:"total"`
	Unit         float64      `yaml:"unit"`
	Participants []partyEntry `yaml:"participants"`
}

type partyEntry struct {
	Name     string              `yaml:"name"`
	Role     fairshare.RoleClass `yaml:"role"`
	Override *float64            `yaml:"override"`
}

// rulesFile is the YAML layout of override rules; earlier rules win:
//
//	rules:
//	  - label: guest of honour
//	    patterns: [山田, yamada]
//	    multiplier: 0.5
type rulesFile struct {
	Rules []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	Label      string   `yaml:"label"`
	Patterns   []string `yaml:"patterns"`
	Multiplier float64  `yaml:"multiplier"`
}

func loadParty(path string) (*partyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read party file: %w", err)
	}

	var party partyFile
	if err := yaml.Unmarshal(data, &party); err != nil {
		return nil, fmt.Errorf("failed to parse party file %s: %w", path, err)
	}
	return &party, nil
}

func (p *partyFile) participants() []fairshare.Participant {
	out := make([]fairshare.Participant, len(p.Participants))
	for i, e := range p.Participants {
		out[i] = fairshare.Participant{Name: e.Name, RoleClass: e.Role, Override: e.Override}
	}
	return out
}

// loadRules reads a rules file; rule IDs follow file order starting at 1
func loadRules(path string) ([]*override.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	rules := make([]*override.Rule, len(file.Rules))
	for i, r := range file.Rules {
		label := strings.TrimSpace(r.Label)
		patterns := override.CleanPatterns(r.Patterns)
		if err := override.ValidateRule(label, patterns, r.Multiplier); err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i+1, label, err)
		}
		rules[i] = &override.Rule{
			ID:         int64(i + 1),
			Label:      label,
			Patterns:   patterns,
			Multiplier: r.Multiplier,
		}
	}
	return rules, nil
}
