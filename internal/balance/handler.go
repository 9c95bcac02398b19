package balance

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mshalabi/housemate/internal/house"
	"github.com/mshalabi/housemate/pkg/middleware"
	"github.com/mshalabi/housemate/pkg/response"
)

// Handler handles HTTP requests for balance reporting
type Handler struct {
	ledger *Ledger
}

// NewHandler creates a new balance handler
func NewHandler(ledger *Ledger) *Handler {
	return &Handler{ledger: ledger}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListHouseBalances)
	r.Get("/me", h.ListUserBalances)

	return r
}

// ListHouseBalances handles GET /houses/{houseId}/balances
// @Summary      List house balances
// @Description  Get all outstanding pairwise debts of the house in debtor/creditor form
// @Tags         balances
// @Produce      json
// @Param        houseId path string true "House ID"
// @Success      200 {object} response.APIResponse{data=[]BalanceEntry}
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/balances [get]
func (h *Handler) ListHouseBalances(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.ledger.HouseBalances(r.Context(), userID, houseID)
	if err != nil {
		if errors.Is(err, house.ErrNotMember) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list balances")
		return
	}

	response.JSON(w, http.StatusOK, entries)
}

// ListUserBalances handles GET /houses/{houseId}/balances/me
// @Summary      List the authenticated user's balances
// @Description  Get outstanding debts touching the authenticated user, tagged owes or owed_by
// @Tags         balances
// @Produce      json
// @Param        houseId path string true "House ID"
// @Success      200 {object} response.APIResponse{data=[]UserBalanceEntry}
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/balances/me [get]
func (h *Handler) ListUserBalances(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.ledger.UserBalances(r.Context(), userID, houseID)
	if err != nil {
		if errors.Is(err, house.ErrNotMember) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list balances")
		return
	}

	response.JSON(w, http.StatusOK, entries)
}
