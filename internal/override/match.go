package override

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// DefaultMultiplier applies when no rule matches
const DefaultMultiplier = 1.0

// MatchMode selects how normalised names are compared
type MatchMode string

const (
	// MatchContains accepts equality or substring containment either way.
	// Short patterns match broadly: "山" matches every name containing it.
	MatchContains MatchMode = "contains"
	// MatchExact accepts equal normalised names only
	MatchExact MatchMode = "exact"
)

// ParseMatchMode validates a configured match mode
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case MatchContains, "":
		return MatchContains, nil
	case MatchExact:
		return MatchExact, nil
	default:
		return "", fmt.Errorf("unknown override match mode: %q", s)
	}
}

// honorifics that may trail a name; at most one is stripped
var honorifics = []string{
	"-chan", "-sama", "-dono", "-san", "-kun",
	"ちゃん", "さま", "さん", "くん", "様", "君", "殿", "氏",
}

// NormalizeName folds width and case and strips one trailing honorific,
// so "山田さん", "山田様" and "ＹＡＭＡＤＡ-san" compare as "山田" / "yamada"
func NormalizeName(name string) string {
	n := strings.TrimSpace(width.Fold.String(name))
	// Casers keep state, so each call gets its own
	n = cases.Fold().String(n)

	for _, h := range honorifics {
		if len(n) > len(h) && strings.HasSuffix(n, h) {
			n = strings.TrimSpace(strings.TrimSuffix(n, h))
			break
		}
	}
	return n
}

// Matcher picks the first rule whose patterns match a name
type Matcher struct {
	mode MatchMode
}

// NewMatcher creates a matcher for the given mode
func NewMatcher(mode MatchMode) *Matcher {
	if mode == "" {
		mode = MatchContains
	}
	return &Matcher{mode: mode}
}

// Mode returns the comparison mode
func (m *Matcher) Mode() MatchMode {
	return m.mode
}

// Match returns the first matching rule in slice order.
// Names or patterns that normalise to nothing never match.
func (m *Matcher) Match(name string, rules []*Rule) (*Rule, bool) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil, false
	}

	for _, rule := range rules {
		for _, pattern := range rule.Patterns {
			p := NormalizeName(pattern)
			if p == "" {
				continue
			}
			if m.matches(normalized, p) {
				return rule, true
			}
		}
	}
	return nil, false
}

// Resolve matches a name and reports the multiplier to apply
func (m *Matcher) Resolve(name string, rules []*Rule) Resolution {
	res := Resolution{
		Name:       name,
		Normalized: NormalizeName(name),
		Multiplier: DefaultMultiplier,
	}
	if rule, ok := m.Match(name, rules); ok {
		id := rule.ID
		res.Multiplier = rule.Multiplier
		res.RuleID = &id
		res.RuleLabel = rule.Label
	}
	return res
}

func (m *Matcher) matches(name, pattern string) bool {
	if name == pattern {
		return true
	}
	if m.mode == MatchExact {
		return false
	}
	return strings.Contains(name, pattern) || strings.Contains(pattern, name)
}

// FindMatchingMultiplier resolves a name with substring matching; rules are
// tried in slice order and 1.0 is returned when none match
func FindMatchingMultiplier(name string, rules []*Rule) float64 {
	return NewMatcher(MatchContains).Resolve(name, rules).Multiplier
}
