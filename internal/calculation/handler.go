package calculation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/warikan/internal/fairshare"
	"github.com/fkhayef/warikan/internal/roster"
	"github.com/fkhayef/warikan/pkg/response"
)

// Handler handles HTTP requests for calculations
type Handler struct {
	service *Service
}

// NewHandler creates a new calculation handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for calculation endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /calculations
// @Summary      Split a total
// @Description  Split target_total between participants by role weight, rounding every share to rounding_unit.
// @Description  Participants come inline or from a roster. With require_convergence a split that misses the
// @Description  target is still stored but answered with 422 and the result in data.
// @Tags         calculations
// @Accept       json
// @Produce      json
// @Param        request body CalculateRequest true "Calculation request"
// @Success      201 {object} response.APIResponse{data=CalculationResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse{data=CalculationResponse}
// @Router       /calculations [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	calc, err := h.service.Calculate(r.Context(), &req)
	if err != nil {
		var nce *fairshare.NonConvergenceError
		switch {
		case errors.As(err, &nce) && calc != nil:
			response.ErrorWithData(w, http.StatusUnprocessableEntity, "NON_CONVERGENCE", err.Error(), calc.ToResponse())
		case errors.Is(err, roster.ErrRosterNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, fairshare.ErrInvalidInput),
			errors.Is(err, roster.ErrEmptyRoster),
			errors.Is(err, ErrNoSource),
			errors.Is(err, ErrAmbiguousSource):
			response.InvalidInput(w, err.Error())
		default:
			response.InternalError(w, "Failed to calculate split")
		}
		return
	}

	response.JSON(w, http.StatusCreated, calc.ToResponse())
}

// List handles GET /calculations
// @Summary      List calculations
// @Description  Get a paginated history of stored calculations, newest first
// @Tags         calculations
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]CalculationResponse}
// @Router       /calculations [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	calcs, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list calculations")
		return
	}

	resp := make([]*CalculationResponse, len(calcs))
	for i, c := range calcs {
		resp[i] = c.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, resp, response.NewMeta(page, perPage, total))
}

// GetByID handles GET /calculations/{id}
// @Summary      Get calculation by ID
// @Tags         calculations
// @Produce      json
// @Param        id path string true "Calculation ID"
// @Success      200 {object} response.APIResponse{data=CalculationResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /calculations/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	calc, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrCalculationNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get calculation")
		return
	}

	response.JSON(w, http.StatusOK, calc.ToResponse())
}

// Delete handles DELETE /calculations/{id}
// @Summary      Delete calculation
// @Tags         calculations
// @Produce      json
// @Param        id path string true "Calculation ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /calculations/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrCalculationNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete calculation")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Calculation deleted successfully"})
}

// Roles handles GET /roles
// @Summary      List role weights
// @Description  The starting weight of every role class, heaviest first. The last entry is the anchor and never moves.
// @Tags         calculations
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]fairshare.RoleWeight}
// @Router       /roles [get]
func (h *Handler) Roles(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.service.Weights())
}
