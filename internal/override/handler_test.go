package override

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fkhayef/warikan/internal/testutil"
)

func setupHandler(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := NewService(NewRepository(db), NewMatcher(MatchContains), zap.NewNop())
	return NewHandler(svc).Routes()
}

func TestHandler_RuleLifecycle(t *testing.T) {
	h := setupHandler(t)

	// Create
	w := testutil.Do(t, h, http.MethodPost, "/", CreateRuleRequest{
		Label:      "Yamada discount",
		Patterns:   []string{"山田", " "},
		Multiplier: 0.5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created RuleResponse
	env := testutil.Decode(t, w, &created)
	assert.True(t, env.Success)
	assert.Equal(t, []string{"山田"}, created.Patterns)
	assert.Equal(t, 0.5, created.Multiplier)

	// Match
	w = testutil.Do(t, h, http.MethodGet, "/match?name=%E5%B1%B1%E7%94%B0%E3%81%95%E3%82%93", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res Resolution
	testutil.Decode(t, w, &res)
	assert.Equal(t, 0.5, res.Multiplier)
	require.NotNil(t, res.RuleID)
	assert.Equal(t, created.ID, *res.RuleID)

	// Update
	w = testutil.Do(t, h, http.MethodPut, "/1", map[string]any{"multiplier": 1.25})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated RuleResponse
	testutil.Decode(t, w, &updated)
	assert.Equal(t, 1.25, updated.Multiplier)
	assert.Equal(t, "Yamada discount", updated.Label)

	// List
	testutil.Do(t, h, http.MethodPost, "/", CreateRuleRequest{Label: "second", Patterns: []string{"佐藤"}, Multiplier: 2})
	w = testutil.Do(t, h, http.MethodGet, "/?per_page=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page []RuleResponse
	env = testutil.Decode(t, w, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "Yamada discount", page[0].Label)
	assert.Equal(t, 2, env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)

	// Delete
	w = testutil.Do(t, h, http.MethodDelete, "/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = testutil.Do(t, h, http.MethodGet, "/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = testutil.Do(t, h, http.MethodDelete, "/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Validation(t *testing.T) {
	h := setupHandler(t)

	tests := []struct {
		name string
		body any
		code string
	}{
		{"missing label", CreateRuleRequest{Patterns: []string{"a"}, Multiplier: 1}, "INVALID_INPUT"},
		{"blank patterns", CreateRuleRequest{Label: "x", Patterns: []string{" "}, Multiplier: 1}, "INVALID_INPUT"},
		{"zero multiplier", CreateRuleRequest{Label: "x", Patterns: []string{"a"}}, "INVALID_INPUT"},
		{"malformed body", "not an object", "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.Do(t, h, http.MethodPost, "/", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := testutil.Decode(t, w, nil)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}

	w := testutil.Do(t, h, http.MethodGet, "/match", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
