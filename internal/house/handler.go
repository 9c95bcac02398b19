package house

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mshalabi/housemate/pkg/middleware"
	"github.com/mshalabi/housemate/pkg/response"
)

// Handler handles HTTP requests for house operations
type Handler struct {
	service *Service
}

// NewHandler creates a new house handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for house endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/members", h.ListMembers)

	return r
}

// ListMembers handles GET /houses/{houseId}/members
// @Summary      List house members
// @Description  Get the display identities of all active members of the house
// @Tags         houses
// @Produce      json
// @Param        houseId path string true "House ID"
// @Success      200 {object} response.APIResponse{data=[]Member}
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/members [get]
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
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

	members, err := h.service.ListMembers(r.Context(), userID, houseID)
	if err != nil {
		if errors.Is(err, ErrNotMember) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list members")
		return
	}

	response.JSON(w, http.StatusOK, members)
}
