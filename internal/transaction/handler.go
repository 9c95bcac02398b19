package transaction

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mshalabi/housemate/internal/house"
	"github.com/mshalabi/housemate/pkg/middleware"
	"github.com/mshalabi/housemate/pkg/response"
)

// Handler handles HTTP requests for the transaction feed
type Handler struct {
	service *Service
}

// NewHandler creates a new transaction handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for transaction endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	return r
}

// List handles GET /houses/{houseId}/transactions
// @Summary      Get the house transaction feed
// @Description  Merge expenses and payments into one chronological feed with the authenticated user's share of each expense
// @Tags         transactions
// @Produce      json
// @Param        houseId path string true "House ID"
// @Param        userOnly query bool false "Only transactions involving the authenticated user"
// @Param        startDate query string false "Window start (YYYY-MM-DD), defaults to one month ago"
// @Param        endDate query string false "Window end (YYYY-MM-DD), defaults to now"
// @Param        type query string false "Transaction type filter" Enums(all, expense, payment)
// @Success      200 {object} response.APIResponse{data=[]Entry}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/transactions [get]
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

	f := Filter{
		UserOnly: r.URL.Query().Get("userOnly") == "true",
		Kind:     Kind(r.URL.Query().Get("type")),
	}

	switch f.Kind {
	case "", KindAll, KindExpense, KindPayment:
	default:
		response.BadRequest(w, "Invalid type. Must be all, expense, or payment")
		return
	}

	if v := r.URL.Query().Get("startDate"); v != "" {
		start, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "Invalid startDate")
			return
		}
		f.Start = start
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		end, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "Invalid endDate")
			return
		}
		f.End = end
	}

	entries, err := h.service.HouseTransactions(r.Context(), userID, houseID, f)
	if err != nil {
		if errors.Is(err, house.ErrNotMember) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get transactions")
		return
	}

	response.JSON(w, http.StatusOK, entries)
}
