package category

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mshalabi/housemate/internal/house"
	"github.com/mshalabi/housemate/pkg/middleware"
	"github.com/mshalabi/housemate/pkg/response"
)

// Handler handles HTTP requests for category operations
type Handler struct {
	service *Service
}

// NewHandler creates a new category handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for category endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	return r
}

// List handles GET /houses/{houseId}/categories
// @Summary      List house categories
// @Description  Get all categories of the house
// @Tags         categories
// @Produce      json
// @Param        houseId path string true "House ID"
// @Success      200 {object} response.APIResponse{data=[]Category}
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/categories [get]
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

	categories, err := h.service.ListHouseCategories(r.Context(), userID, houseID)
	if err != nil {
		if errors.Is(err, house.ErrNotMember) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list categories")
		return
	}

	response.JSON(w, http.StatusOK, categories)
}
