package roster

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/warikan/internal/fairshare"
	"github.com/fkhayef/warikan/internal/testutil"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewService(NewRepository(db), fairshare.DefaultWeights())
}

func ptr(f float64) *float64 { return &f }

func TestHandler_RosterLifecycle(t *testing.T) {
	h := NewHandler(setupService(t)).Routes()

	// Create with members
	w := testutil.Do(t, h, http.MethodPost, "/", CreateRosterRequest{
		Name: "Year-end party",
		Members: []MemberRequest{
			{Name: "Tanaka", RoleClass: fairshare.RoleExecutive},
			{Name: " Suzuki ", RoleClass: fairshare.RoleStaff, OverrideMultiplier: ptr(0.5)},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created RosterResponse
	testutil.Decode(t, w, &created)
	require.Len(t, created.Members, 2)
	assert.Equal(t, "Tanaka", created.Members[0].Name)
	assert.Equal(t, 1, created.Members[0].Position)
	assert.Equal(t, "Suzuki", created.Members[1].Name)
	require.NotNil(t, created.Members[1].OverrideMultiplier)
	assert.Equal(t, 0.5, *created.Members[1].OverrideMultiplier)

	// Add member goes to the end
	w = testutil.Do(t, h, http.MethodPost, "/1/members", MemberRequest{Name: "Sato", RoleClass: fairshare.RoleManager})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var added MemberResponse
	testutil.Decode(t, w, &added)
	assert.Equal(t, 3, added.Position)

	// Clear an override
	path := "/1/members/" + itoa(created.Members[1].ID)
	w = testutil.Do(t, h, http.MethodPut, path, map[string]any{"clear_override": true, "role_class": "lead"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated MemberResponse
	testutil.Decode(t, w, &updated)
	assert.Nil(t, updated.OverrideMultiplier)
	assert.Equal(t, fairshare.RoleLead, updated.RoleClass)

	// Members in order
	w = testutil.Do(t, h, http.MethodGet, "/1/members", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var members []MemberResponse
	testutil.Decode(t, w, &members)
	require.Len(t, members, 3)
	assert.Equal(t, []string{"Tanaka", "Suzuki", "Sato"}, []string{members[0].Name, members[1].Name, members[2].Name})

	// Remove
	w = testutil.Do(t, h, http.MethodDelete, "/1/members/"+itoa(added.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = testutil.Do(t, h, http.MethodDelete, "/1/members/"+itoa(added.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Rename
	w = testutil.Do(t, h, http.MethodPut, "/1", map[string]any{"name": "Welcome party"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var renamed RosterResponse
	testutil.Decode(t, w, &renamed)
	assert.Equal(t, "Welcome party", renamed.Name)

	// List
	w = testutil.Do(t, h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []RosterResponse
	env := testutil.Decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, 1, env.Meta.Total)

	// Delete cascades to members
	w = testutil.Do(t, h, http.MethodDelete, "/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = testutil.Do(t, h, http.MethodGet, "/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = testutil.Do(t, h, http.MethodGet, "/1/members", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Validation(t *testing.T) {
	h := NewHandler(setupService(t)).Routes()

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"blank name", http.MethodPost, "/", CreateRosterRequest{Name: " "}, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown role", http.MethodPost, "/", CreateRosterRequest{
			Name:    "x",
			Members: []MemberRequest{{Name: "a", RoleClass: "intern"}},
		}, http.StatusBadRequest, "INVALID_INPUT"},
		{"negative override", http.MethodPost, "/", CreateRosterRequest{
			Name:    "x",
			Members: []MemberRequest{{Name: "a", RoleClass: fairshare.RoleStaff, OverrideMultiplier: ptr(-1)}},
		}, http.StatusBadRequest, "INVALID_INPUT"},
		{"malformed body", http.MethodPost, "/", "nope", http.StatusBadRequest, "BAD_REQUEST"},
		{"bad id", http.MethodGet, "/abc", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing roster", http.MethodGet, "/42", nil, http.StatusNotFound, "NOT_FOUND"},
		{"member on missing roster", http.MethodPost, "/42/members",
			MemberRequest{Name: "a", RoleClass: fairshare.RoleStaff}, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.Do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			env := testutil.Decode(t, w, nil)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestService_Participants(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	roster, _, err := svc.Create(ctx, &CreateRosterRequest{
		Name: "Offsite",
		Members: []MemberRequest{
			{Name: "Kato", RoleClass: fairshare.RoleSupervisor},
			{Name: "Ito", RoleClass: fairshare.RoleStaff, OverrideMultiplier: ptr(2)},
		},
	})
	require.NoError(t, err)

	participants, err := svc.Participants(ctx, roster.ID)
	require.NoError(t, err)
	require.Len(t, participants, 2)
	assert.Equal(t, "Kato", participants[0].Name)
	assert.Nil(t, participants[0].Override)
	assert.Equal(t, 2.0, participants[1].OverrideMultiplier())

	empty, _, err := svc.Create(ctx, &CreateRosterRequest{Name: "Empty"})
	require.NoError(t, err)
	_, err = svc.Participants(ctx, empty.ID)
	assert.ErrorIs(t, err, ErrEmptyRoster)

	_, err = svc.Participants(ctx, 999)
	assert.ErrorIs(t, err, ErrRosterNotFound)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
