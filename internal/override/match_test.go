package override

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"山田", "山田"},
		{"山田さん", "山田"},
		{"山田様", "山田"},
		{"  山田くん ", "山田"},
		{"花子ちゃん", "花子"},
		{"Tanaka-San", "tanaka"},
		{"ＹＡＭＡＤＡ", "yamada"},
		{"さん", "さん"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestFindMatchingMultiplier(t *testing.T) {
	rules := []*Rule{
		{ID: 1, Label: "yamada", Patterns: []string{"山田"}, Multiplier: 1.5},
		{ID: 2, Label: "sato", Patterns: []string{"佐藤さん", "sato"}, Multiplier: 0.8},
	}

	t.Run("honorifics do not matter", func(t *testing.T) {
		assert.Equal(t, 1.5, FindMatchingMultiplier("山田", rules))
		assert.Equal(t, FindMatchingMultiplier("山田", rules), FindMatchingMultiplier("山田さん", rules))
		assert.Equal(t, 0.8, FindMatchingMultiplier("佐藤", rules))
		assert.Equal(t, 0.8, FindMatchingMultiplier("Sato-kun", rules))
	})

	t.Run("substring either way matches", func(t *testing.T) {
		assert.Equal(t, 1.5, FindMatchingMultiplier("山田太郎", rules))
		assert.Equal(t, 0.8, FindMatchingMultiplier("sa", rules))
	})

	t.Run("no match yields the default", func(t *testing.T) {
		assert.Equal(t, DefaultMultiplier, FindMatchingMultiplier("田中", rules))
		assert.Equal(t, DefaultMultiplier, FindMatchingMultiplier("", rules))
		assert.Equal(t, DefaultMultiplier, FindMatchingMultiplier("山田", nil))
	})

	t.Run("first rule in order wins", func(t *testing.T) {
		overlapping := []*Rule{
			{ID: 1, Patterns: []string{"山"}, Multiplier: 2.0},
			{ID: 2, Patterns: []string{"山田"}, Multiplier: 1.5},
		}
		assert.Equal(t, 2.0, FindMatchingMultiplier("山田", overlapping))
	})

	t.Run("patterns that normalise to nothing are ignored", func(t *testing.T) {
		blank := []*Rule{{ID: 1, Patterns: []string{"  "}, Multiplier: 3.0}}
		assert.Equal(t, DefaultMultiplier, FindMatchingMultiplier("山田", blank))
	})
}

func TestMatcher_ExactMode(t *testing.T) {
	rules := []*Rule{{ID: 7, Label: "yamada", Patterns: []string{"山田"}, Multiplier: 1.5}}
	m := NewMatcher(MatchExact)

	res := m.Resolve("山田さん", rules)
	assert.True(t, res.Matched())
	assert.Equal(t, int64(7), *res.RuleID)
	assert.Equal(t, "yamada", res.RuleLabel)
	assert.Equal(t, "山田", res.Normalized)

	res = m.Resolve("山田太郎", rules)
	assert.False(t, res.Matched())
	assert.Equal(t, DefaultMultiplier, res.Multiplier)
}

func TestParseMatchMode(t *testing.T) {
	mode, err := ParseMatchMode("EXACT")
	assert.NoError(t, err)
	assert.Equal(t, MatchExact, mode)

	mode, err = ParseMatchMode("")
	assert.NoError(t, err)
	assert.Equal(t, MatchContains, mode)

	_, err = ParseMatchMode("fuzzy")
	assert.Error(t, err)
}
