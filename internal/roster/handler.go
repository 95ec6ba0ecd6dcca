package roster

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/warikan/pkg/response"
)

// Handler handles HTTP requests for roster operations
type Handler struct {
	service *Service
}

// NewHandler creates a new roster handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for roster endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	// Member management
	r.Post("/{id}/members", h.AddMember)
	r.Get("/{id}/members", h.GetMembers)
	r.Put("/{id}/members/{memberId}", h.UpdateMember)
	r.Delete("/{id}/members/{memberId}", h.RemoveMember)

	return r
}

// Create handles POST /rosters
// @Summary      Create a new roster
// @Description  Create a named, ordered list of participants that calculations can reuse
// @Tags         rosters
// @Accept       json
// @Produce      json
// @Param        request body CreateRosterRequest true "Roster creation request"
// @Success      201 {object} response.APIResponse{data=RosterResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /rosters [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	roster, members, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			response.InvalidInput(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create roster")
		return
	}

	response.JSON(w, http.StatusCreated, withMembers(roster, members))
}

// GetByID handles GET /rosters/{id}
// @Summary      Get roster by ID
// @Description  Get a roster with all its members in order
// @Tags         rosters
// @Produce      json
// @Param        id path int true "Roster ID"
// @Success      200 {object} response.APIResponse{data=RosterResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /rosters/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid roster ID")
	if !ok {
		return
	}

	roster, members, err := h.service.GetByIDWithMembers(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRosterNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get roster")
		return
	}

	response.JSON(w, http.StatusOK, withMembers(roster, members))
}

// List handles GET /rosters
// @Summary      List rosters
// @Description  Get a paginated list of rosters, newest first
// @Tags         rosters
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]RosterResponse}
// @Router       /rosters [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	rosters, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list rosters")
		return
	}

	rosterResponses := make([]*RosterResponse, len(rosters))
	for i, roster := range rosters {
		rosterResponses[i] = roster.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, rosterResponses, response.NewMeta(page, perPage, total))
}

// Update handles PUT /rosters/{id}
// @Summary      Update roster
// @Description  Rename a roster or change its description
// @Tags         rosters
// @Accept       json
// @Produce      json
// @Param        id path int true "Roster ID"
// @Param        request body UpdateRosterRequest true "Roster update request"
// @Success      200 {object} response.APIResponse{data=RosterResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /rosters/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid roster ID")
	if !ok {
		return
	}

	var req UpdateRosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	roster, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrRosterNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if isValidationError(err) {
			response.InvalidInput(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update roster")
		return
	}

	response.JSON(w, http.StatusOK, roster.ToResponse())
}

// Delete handles DELETE /rosters/{id}
// @Summary      Delete roster
// @Description  Delete a roster and its members; stored calculations are kept
// @Tags         rosters
// @Produce      json
// @Param        id path int true "Roster ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /rosters/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid roster ID")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrRosterNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete roster")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Roster deleted successfully"})
}

// AddMember handles POST /rosters/{id}/members
// @Summary      Add member to roster
// @Description  Append a participant to the end of the roster
// @Tags         rosters
// @Accept       json
// @Produce      json
// @Param        id path int true "Roster ID"
// @Param        request body MemberRequest true "Member to add"
// @Success      201 {object} response.APIResponse{data=MemberResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /rosters/{id}/members [post]
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	rosterID, ok := parseID(w, r, "id", "Invalid roster ID")
	if !ok {
		return
	}

	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	member, err := h.service.AddMember(r.Context(), rosterID, &req)
	if err != nil {
		if errors.Is(err, ErrRosterNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if isValidationError(err) {
			response.InvalidInput(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to add member")
		return
	}

	response.JSON(w, http.StatusCreated, member.ToResponse())
}

// GetMembers handles GET /rosters/{id}/members
// @Summary      Get roster members
// @Description  Get all members of a roster in order
// @Tags         rosters
// @Produce      json
// @Param        id path int true "Roster ID"
// @Success      200 {object} response.APIResponse{data=[]MemberResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /rosters/{id}/members [get]
func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	rosterID, ok := parseID(w, r, "id", "Invalid roster ID")
	if !ok {
		return
	}

	members, err := h.service.GetMembers(r.Context(), rosterID)
	if err != nil {
		if errors.Is(err, ErrRosterNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get members")
		return
	}

	memberResponses := make([]*MemberResponse, len(members))
	for i, m := range members {
		memberResponses[i] = m.ToResponse()
	}

	response.JSON(w, http.StatusOK, memberResponses)
}

// UpdateMember handles PUT /rosters/{id}/members/{memberId}
// @Summary      Update roster member
// @Description  Change a member's name, role class or override multiplier
// @Tags         rosters
// @Accept       json
// @Produce      json
// @Param        id path int true "Roster ID"
// @Param        memberId path int true "Member ID"
// @Param        request body UpdateMemberRequest true "Member update request"
// @Success      200 {object} response.APIResponse{data=MemberResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /rosters/{id}/members/{memberId} [put]
func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	rosterID, ok := parseID(w, r, "id", "Invalid roster ID")
	if !ok {
		return
	}
	memberID, ok := parseID(w, r, "memberId", "Invalid member ID")
	if !ok {
		return
	}

	var req UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	member, err := h.service.UpdateMember(r.Context(), rosterID, memberID, &req)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if isValidationError(err) {
			response.InvalidInput(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update member")
		return
	}

	response.JSON(w, http.StatusOK, member.ToResponse())
}

// RemoveMember handles DELETE /rosters/{id}/members/{memberId}
// @Summary      Remove member from roster
// @Tags         rosters
// @Produce      json
// @Param        id path int true "Roster ID"
// @Param        memberId path int true "Member ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /rosters/{id}/members/{memberId} [delete]
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	rosterID, ok := parseID(w, r, "id", "Invalid roster ID")
	if !ok {
		return
	}
	memberID, ok := parseID(w, r, "memberId", "Invalid member ID")
	if !ok {
		return
	}

	if err := h.service.RemoveMember(r.Context(), rosterID, memberID); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to remove member")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Member removed successfully"})
}

func parseID(w http.ResponseWriter, r *http.Request, param, msg string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		response.BadRequest(w, msg)
		return 0, false
	}
	return id, true
}

func withMembers(roster *Roster, members []*Member) *RosterResponse {
	resp := roster.ToResponse()
	resp.Members = make([]*MemberResponse, len(members))
	for i, m := range members {
		resp.Members[i] = m.ToResponse()
	}
	return resp
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidName) || errors.Is(err, ErrUnknownRole) || errors.Is(err, ErrInvalidOverride)
}
