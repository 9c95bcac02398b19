package payment

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

// Handler handles HTTP requests for payment operations
type Handler struct {
	service *Service
}

// NewHandler creates a new payment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for payment endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)

	return r
}

// Create handles POST /houses/{houseId}/payments
// @Summary      Record a payment
// @Description  Record a payment between house members and reduce the corresponding debt
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        houseId path string true "House ID"
// @Param        request body CreatePaymentRequest true "Payment creation request"
// @Success      201 {object} response.APIResponse{data=PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/payments [post]
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

	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.CreatePayment(r.Context(), payerID, houseID, &req)
	if err != nil {
		switch {
		case errors.Is(err, house.ErrNotMember):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrInvalidAmount),
			errors.Is(err, ErrInvalidDate),
			errors.Is(err, ErrSelfPayment),
			errors.Is(err, ErrRecipientNotInHouse):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create payment")
		}
		return
	}

	response.JSON(w, http.StatusCreated, result)
}

// List handles GET /houses/{houseId}/payments
// @Summary      List house payments
// @Description  Get payments of the house, optionally only those involving the authenticated user
// @Tags         payments
// @Produce      json
// @Param        houseId path string true "House ID"
// @Param        userOnly query bool false "Only payments involving the authenticated user"
// @Success      200 {object} response.APIResponse{data=[]PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/payments [get]
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

	userOnly := r.URL.Query().Get("userOnly") == "true"

	result, err := h.service.ListHousePayments(r.Context(), userID, houseID, userOnly)
	if err != nil {
		if errors.Is(err, house.ErrNotMember) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list payments")
		return
	}

	response.JSON(w, http.StatusOK, result)
}
