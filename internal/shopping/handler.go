package shopping

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

const forceSuggestion = `Set "force": true to add the item anyway`

// Handler handles HTTP requests for shopping list operations
type Handler struct {
	service *Service
}

// NewHandler creates a new shopping handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for shopping endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/items", h.Create)
	r.Get("/items", h.List)
	r.Post("/items/purchase", h.BatchPurchase)
	r.Get("/items/recurring/recent", h.RecentRecurring)
	r.Post("/items/{itemId}/purchase", h.Purchase)
	r.Delete("/items/{itemId}", h.Delete)
	r.Get("/history", h.History)

	return r
}

// Create handles POST /houses/{houseId}/shopping/items
// @Summary      Add a shopping item
// @Description  Add an item to the house's shopping list; warns when a similar recurring item will return soon
// @Tags         shopping
// @Accept       json
// @Produce      json
// @Param        houseId path string true "House ID"
// @Param        request body CreateItemRequest true "Item creation request"
// @Success      201 {object} response.APIResponse{data=ItemResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /houses/{houseId}/shopping/items [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		response.BadRequest(w, "Item name is required")
		return
	}

	result, err := h.service.AddItem(r.Context(), userID, houseID, &req)
	if err != nil {
		var dup *DuplicateItemError
		switch {
		case errors.As(err, &dup):
			response.ConflictWithWarnings(w, err.Error(), dup.Warnings, forceSuggestion)
		case errors.Is(err, house.ErrNotMember):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrCategoryNotFound),
			errors.Is(err, ErrAssigneeNotInHouse),
			errors.Is(err, ErrMissingInterval):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to add item")
		}
		return
	}

	response.JSON(w, http.StatusCreated, result)
}

// List handles GET /houses/{houseId}/shopping/items
// @Summary      List shopping items
// @Description  Get the house's shopping list, optionally filtered by category or assignee
// @Tags         shopping
// @Produce      json
// @Param        houseId path string true "House ID"
// @Param        includePurchased query bool false "Include already purchased items"
// @Param        categoryId query string false "Filter by category"
// @Param        assignedTo query string false "Filter by assigned user"
// @Success      200 {object} response.APIResponse{data=[]ItemResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/shopping/items [get]
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

	filter := ListFilter{
		IncludePurchased: r.URL.Query().Get("includePurchased") == "true",
		CategoryID:       r.URL.Query().Get("categoryId"),
		AssignedToID:     r.URL.Query().Get("assignedTo"),
	}

	result, err := h.service.ListItems(r.Context(), userID, houseID, filter)
	if err != nil {
		if errors.Is(err, house.ErrNotMember) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list items")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Purchase handles POST /houses/{houseId}/shopping/items/{itemId}/purchase
// @Summary      Purchase an item
// @Description  Mark a shopping item as purchased by the authenticated user
// @Tags         shopping
// @Produce      json
// @Param        houseId path string true "House ID"
// @Param        itemId path string true "Item ID"
// @Success      200 {object} response.APIResponse{data=ItemResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/shopping/items/{itemId}/purchase [post]
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	houseID := chi.URLParam(r, "houseId")
	itemID := chi.URLParam(r, "itemId")
	if uuid.Validate(houseID) != nil || uuid.Validate(itemID) != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	result, err := h.service.PurchaseItem(r.Context(), userID, houseID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, house.ErrNotMember), errors.Is(err, ErrItemNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrAlreadyPurchased):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to purchase item")
		}
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// BatchPurchase handles POST /houses/{houseId}/shopping/items/purchase
// @Summary      Purchase several items
// @Description  Mark several shopping items as purchased at once; a single invalid item fails the batch
// @Tags         shopping
// @Accept       json
// @Produce      json
// @Param        houseId path string true "House ID"
// @Param        request body BatchPurchaseRequest true "Batch purchase request"
// @Success      200 {object} response.APIResponse{data=[]ItemResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/shopping/items/purchase [post]
func (h *Handler) BatchPurchase(w http.ResponseWriter, r *http.Request) {
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

	var req BatchPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(req.ItemIDs) == 0 {
		response.BadRequest(w, "At least one item ID is required")
		return
	}

	result, err := h.service.BatchPurchaseItems(r.Context(), userID, houseID, req.ItemIDs)
	if err != nil {
		switch {
		case errors.Is(err, house.ErrNotMember), errors.Is(err, ErrItemNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrBatchInvalid):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to purchase items")
		}
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Delete handles DELETE /houses/{houseId}/shopping/items/{itemId}
// @Summary      Delete a shopping item
// @Description  Remove an item from the house's shopping list
// @Tags         shopping
// @Produce      json
// @Param        houseId path string true "House ID"
// @Param        itemId path string true "Item ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/shopping/items/{itemId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	houseID := chi.URLParam(r, "houseId")
	itemID := chi.URLParam(r, "itemId")
	if uuid.Validate(houseID) != nil || uuid.Validate(itemID) != nil {
		response.BadRequest(w, "Invalid ID")
		return
	}

	if err := h.service.DeleteItem(r.Context(), userID, houseID, itemID); err != nil {
		switch {
		case errors.Is(err, house.ErrNotMember), errors.Is(err, ErrItemNotFound):
			response.NotFound(w, err.Error())
		default:
			response.InternalError(w, "Failed to delete item")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

// RecentRecurring handles GET /houses/{houseId}/shopping/items/recurring/recent
// @Summary      List recently purchased recurring items
// @Description  Get recurring items purchased in the last 30 days with their return countdowns
// @Tags         shopping
// @Produce      json
// @Param        houseId path string true "House ID"
// @Success      200 {object} response.APIResponse{data=[]RecurringItemView}
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/shopping/items/recurring/recent [get]
func (h *Handler) RecentRecurring(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.RecentRecurringItems(r.Context(), userID, houseID)
	if err != nil {
		if errors.Is(err, house.ErrNotMember) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list recurring items")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// History handles GET /houses/{houseId}/shopping/history
// @Summary      Shopping purchase history
// @Description  Get the house's purchased items, newest first
// @Tags         shopping
// @Produce      json
// @Param        houseId path string true "House ID"
// @Success      200 {object} response.APIResponse{data=[]ItemResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /houses/{houseId}/shopping/history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.PurchaseHistory(r.Context(), userID, houseID)
	if err != nil {
		if errors.Is(err, house.ErrNotMember) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get purchase history")
		return
	}

	response.JSON(w, http.StatusOK, result)
}
