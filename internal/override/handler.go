package override

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/warikan/pkg/response"
)

// Handler handles HTTP requests for override rules
type Handler struct {
	service *Service
}

// NewHandler creates a new override handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for override endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/match", h.Match)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /overrides
// @Summary      Create an override rule
// @Description  Assign a multiplier to every participant whose name matches one of the patterns
// @Tags         overrides
// @Accept       json
// @Produce      json
// @Param        request body CreateRuleRequest true "Rule creation request"
// @Success      201 {object} response.APIResponse{data=RuleResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /overrides [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	rule, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			response.InvalidInput(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create override rule")
		return
	}

	response.JSON(w, http.StatusCreated, rule.ToResponse())
}

// List handles GET /overrides
// @Summary      List override rules
// @Description  Rules are listed in match order; the first matching rule wins
// @Tags         overrides
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]RuleResponse}
// @Router       /overrides [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	rules, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list override rules")
		return
	}

	resp := make([]*RuleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = rule.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, resp, response.NewMeta(page, perPage, total))
}

// Match handles GET /overrides/match
// @Summary      Resolve a name
// @Description  Show which rule, if any, applies to a participant name
// @Tags         overrides
// @Produce      json
// @Param        name query string true "Participant name"
// @Success      200 {object} response.APIResponse{data=Resolution}
// @Failure      400 {object} response.APIResponse
// @Router       /overrides/match [get]
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		response.BadRequest(w, "Query parameter 'name' is required")
		return
	}

	resolution, err := h.service.Resolve(r.Context(), name)
	if err != nil {
		response.InternalError(w, "Failed to resolve name")
		return
	}

	response.JSON(w, http.StatusOK, resolution)
}

// GetByID handles GET /overrides/{id}
// @Summary      Get override rule by ID
// @Tags         overrides
// @Produce      json
// @Param        id path int true "Rule ID"
// @Success      200 {object} response.APIResponse{data=RuleResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /overrides/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid rule ID")
		return
	}

	rule, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get override rule")
		return
	}

	response.JSON(w, http.StatusOK, rule.ToResponse())
}

// Update handles PUT /overrides/{id}
// @Summary      Update an override rule
// @Tags         overrides
// @Accept       json
// @Produce      json
// @Param        id path int true "Rule ID"
// @Param        request body UpdateRuleRequest true "Fields to change"
// @Success      200 {object} response.APIResponse{data=RuleResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /overrides/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid rule ID")
		return
	}

	var req UpdateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	rule, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if isValidationError(err) {
			response.InvalidInput(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update override rule")
		return
	}

	response.JSON(w, http.StatusOK, rule.ToResponse())
}

// Delete handles DELETE /overrides/{id}
// @Summary      Delete an override rule
// @Tags         overrides
// @Produce      json
// @Param        id path int true "Rule ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /overrides/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid rule ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrRuleNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete override rule")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Override rule deleted successfully"})
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidLabel) || errors.Is(err, ErrNoPatterns) || errors.Is(err, ErrInvalidMultiplier)
}
