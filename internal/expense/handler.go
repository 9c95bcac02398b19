package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mshalabi/housemate/internal/house"
	"github.com/mshalabi/housemate/pkg/middleware"
	"github.com/mshalabi/housemate/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)

	return r
}

// Create handles POST /houses/{houseId}/expenses
// @Summary      Create a new expense
// @Description  Record an expense split among house members and update pairwise balances
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        houseId path string true "House ID"
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	houseID := chi.URLParam(r, "houseId")
	if uuid.Validate(houseID) != nil {
		response.BadRequest(w, "Invalid house ID")
		return
	}

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.CreateExpense(r.Context(), payerID, houseID, &req)
	if err != nil {
		switch {
		case errors.Is(err, house.ErrNotMember):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrInvalidAmount),
			errors.Is(err, ErrEmptySplit),
			errors.Is(err, ErrInvalidDate),
			errors.Is(err, ErrCategoryNotFound),
			errors.Is(err, ErrSplitNotInHouse):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create expense")
		}
		return
	}

	response.JSON(w, http.StatusCreated, result)
}

// List handles GET /houses/{houseId}/expenses
// @Summary      List house expenses
// @Description  Get all expenses of the house, newest first
// @Tags         expenses
// @Produce      json
// @Param        houseId path string true "House ID"
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/expenses [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	houseID := chi.URLParam(r, "houseId")
	if uuid.Validate(houseID) != nil {
		response.BadRequest(w, "Invalid house ID")
		return
	}

	result, err := h.service.ListHouseExpenses(r.Context(), userID, houseID)
	if err != nil {
		if errors.Is(err, house.ErrNotMember) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list expenses")
		return
	}

	response.JSON(w, http.StatusOK, result)
}
