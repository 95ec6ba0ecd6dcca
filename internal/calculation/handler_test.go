package calculation

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fkhayef/warikan/internal/fairshare"
	"github.com/fkhayef/warikan/internal/override"
	"github.com/fkhayef/warikan/internal/roster"
	"github.com/fkhayef/warikan/internal/testutil"
)

type fixture struct {
	handler   http.Handler
	service   *Service
	rosters   *roster.Service
	overrides *override.Service
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	rosters := roster.NewService(roster.NewRepository(db), fairshare.DefaultWeights())
	overrides := override.NewService(override.NewRepository(db), override.NewMatcher(override.MatchContains), logger)
	svc, err := NewService(NewRepository(db), fairshare.Options{}, rosters, overrides,
		Defaults{RoundingUnit: 500, MaxRounds: fairshare.DefaultMaxRounds}, logger)
	require.NoError(t, err)

	h := NewHandler(svc)
	r := h.Routes()
	r.Get("/roles", h.Roles)

	return &fixture{handler: r, service: svc, rosters: rosters, overrides: overrides}
}

func staff(names ...string) []ParticipantRequest {
	out := make([]ParticipantRequest, len(names))
	for i, n := range names {
		out[i] = ParticipantRequest{Name: n, RoleClass: fairshare.RoleStaff}
	}
	return out
}

func intp(v int) *int           { return &v }
func int64p(v int64) *int64     { return &v }
func floatp(v float64) *float64 { return &v }

func TestHandler_CalculateInline(t *testing.T) {
	f := setup(t)

	w := testutil.Do(t, f.handler, http.MethodPost, "/", CalculateRequest{
		Participants: []ParticipantRequest{
			{Name: "Tanaka", RoleClass: fairshare.RoleManager},
			{Name: "Suzuki", RoleClass: fairshare.RoleStaff},
			{Name: "Ito", RoleClass: fairshare.RoleStaff},
		},
		TargetTotal: 10000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var calc CalculationResponse
	env := testutil.Decode(t, w, &calc)
	assert.True(t, env.Success)
	assert.NotEmpty(t, calc.ID)
	assert.True(t, calc.Converged)
	assert.Equal(t, 500.0, calc.RoundingUnit)
	assert.Equal(t, 10000.0, calc.AchievedTotal)
	require.Len(t, calc.Shares, 3)
	assert.Equal(t, 4000.0, calc.Shares[0].RoundedShare)
	assert.Equal(t, 3000.0, calc.Shares[1].RoundedShare)

	// Stored and retrievable
	w = testutil.Do(t, f.handler, http.MethodGet, "/"+calc.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stored CalculationResponse
	testutil.Decode(t, w, &stored)
	assert.Equal(t, calc.Shares, stored.Shares)
	assert.Equal(t, calc.Weights, stored.Weights)

	// Delete
	w = testutil.Do(t, f.handler, http.MethodDelete, "/"+calc.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = testutil.Do(t, f.handler, http.MethodGet, "/"+calc.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_CalculateAppliesOverrideRules(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.overrides.Create(ctx, &override.CreateRuleRequest{
		Label:      "guest of honour",
		Patterns:   []string{"鈴木"},
		Multiplier: 3,
	})
	require.NoError(t, err)

	w := testutil.Do(t, f.handler, http.MethodPost, "/", CalculateRequest{
		Participants: []ParticipantRequest{
			{Name: "鈴木さん", RoleClass: fairshare.RoleStaff},
			{Name: "伊藤", RoleClass: fairshare.RoleStaff},
			// explicit overrides win over rules
			{Name: "鈴木一郎", RoleClass: fairshare.RoleStaff, OverrideMultiplier: floatp(1)},
		},
		TargetTotal:  5000,
		RoundingUnit: floatp(1),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var calc CalculationResponse
	testutil.Decode(t, w, &calc)
	require.Len(t, calc.Shares, 3)
	assert.Equal(t, 3000.0, calc.Shares[0].RoundedShare)
	require.NotNil(t, calc.Shares[0].OverrideMultiplier)
	assert.Equal(t, 3.0, *calc.Shares[0].OverrideMultiplier)
	assert.Equal(t, 1000.0, calc.Shares[1].RoundedShare)
	assert.Nil(t, calc.Shares[1].OverrideMultiplier)
	assert.Equal(t, 1000.0, calc.Shares[2].RoundedShare)
}

func TestHandler_CalculateFromRoster(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	r, _, err := f.rosters.Create(ctx, &roster.CreateRosterRequest{
		Name: "Team",
		Members: []roster.MemberRequest{
			{Name: "A", RoleClass: fairshare.RoleStaff},
			{Name: "B", RoleClass: fairshare.RoleStaff},
		},
	})
	require.NoError(t, err)

	w := testutil.Do(t, f.handler, http.MethodPost, "/", CalculateRequest{
		RosterID:     &r.ID,
		TargetTotal:  10000,
		RoundingUnit: floatp(1),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var calc CalculationResponse
	testutil.Decode(t, w, &calc)
	require.NotNil(t, calc.RosterID)
	assert.Equal(t, r.ID, *calc.RosterID)
	assert.Equal(t, 5000.0, calc.Shares[0].RoundedShare)
	assert.Equal(t, "B", calc.Shares[1].Name)
}

func TestHandler_CalculateErrors(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"no participants", CalculateRequest{TargetTotal: 100}, http.StatusBadRequest, "INVALID_INPUT"},
		{"both sources", CalculateRequest{Participants: staff("a"), RosterID: int64p(1), TargetTotal: 100}, http.StatusBadRequest, "INVALID_INPUT"},
		{"zero total", CalculateRequest{Participants: staff("a")}, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown role", CalculateRequest{
			Participants: []ParticipantRequest{{Name: "a", RoleClass: "intern"}},
			TargetTotal:  100,
		}, http.StatusBadRequest, "INVALID_INPUT"},
		{"zero rounds", CalculateRequest{Participants: staff("a"), TargetTotal: 100, MaxRounds: intp(0)}, http.StatusBadRequest, "INVALID_INPUT"},
		{"missing roster", CalculateRequest{RosterID: int64p(99), TargetTotal: 100}, http.StatusNotFound, "NOT_FOUND"},
		{"malformed body", "nope", http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.Do(t, f.handler, http.MethodPost, "/", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			env := testutil.Decode(t, w, nil)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestHandler_RequireConvergence(t *testing.T) {
	f := setup(t)

	// Seven staff sharing 1000 in units of 100 can never land within one unit
	body := CalculateRequest{
		Participants:       staff("a", "b", "c", "d", "e", "f", "g"),
		TargetTotal:        1000,
		RoundingUnit:       floatp(100),
		MaxRounds:          intp(10),
		Seed:               int64p(7),
		RequireConvergence: true,
	}

	w := testutil.Do(t, f.handler, http.MethodPost, "/", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	var calc CalculationResponse
	env := testutil.Decode(t, w, &calc)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NON_CONVERGENCE", env.Error.Code)
	assert.False(t, calc.Converged)
	assert.Equal(t, 10, calc.Rounds)
	assert.Equal(t, -300.0, calc.Difference)

	// The best-effort result is still kept
	w = testutil.Do(t, f.handler, http.MethodGet, "/"+calc.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Without the flag the same split is a plain success
	body.RequireConvergence = false
	w = testutil.Do(t, f.handler, http.MethodPost, "/", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.Do(t, f.handler, http.MethodGet, "/?per_page=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page []CalculationResponse
	env = testutil.Decode(t, w, &page)
	require.Len(t, page, 1)
	assert.Equal(t, 2, env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)
}

func TestHandler_SeededCalculationsRepeat(t *testing.T) {
	f := setup(t)

	body := CalculateRequest{
		Participants: []ParticipantRequest{
			{Name: "a", RoleClass: fairshare.RoleExecutive},
			{Name: "b", RoleClass: fairshare.RoleSupervisor},
			{Name: "c", RoleClass: fairshare.RoleLead},
			{Name: "d", RoleClass: fairshare.RoleStaff},
		},
		TargetTotal:  12345,
		RoundingUnit: floatp(100),
		Seed:         int64p(42),
	}

	var first, second CalculationResponse
	testutil.Decode(t, testutil.Do(t, f.handler, http.MethodPost, "/", body), &first)
	testutil.Decode(t, testutil.Do(t, f.handler, http.MethodPost, "/", body), &second)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Shares, second.Shares)
	assert.Equal(t, first.Rounds, second.Rounds)
	require.NotNil(t, second.Seed)
	assert.Equal(t, int64(42), *second.Seed)
}

func TestHandler_Roles(t *testing.T) {
	f := setup(t)

	w := testutil.Do(t, f.handler, http.MethodGet, "/roles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var weights []fairshare.RoleWeight
	testutil.Decode(t, w, &weights)
	require.Len(t, weights, 5)
	assert.Equal(t, fairshare.RoleExecutive, weights[0].Role)
	assert.Equal(t, fairshare.RoleStaff, weights[4].Role)
	assert.Equal(t, 1.0, weights[4].Weight)
}

func TestHandler_GetUnknownID(t *testing.T) {
	f := setup(t)

	for _, id := range []string{"not-a-uuid", "0190b6a4-7c2e-7000-8000-000000000000"} {
		w := testutil.Do(t, f.handler, http.MethodGet, "/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, id)
	}
}
