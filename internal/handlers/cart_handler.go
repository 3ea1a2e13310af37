package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/events"
	"shop-service/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	errs "shop-service/pkg/errors"
)

// CartHandler serves the /cart routes. Every response body carries the
// projected view recomputed against live item data by the store.
type CartHandler struct {
	logger   *zap.Logger
	carts    repository.CartRepository
	eventBus events.EventPublisher
}

func NewCartHandler(logger *zap.Logger, carts repository.CartRepository, eventBus events.EventPublisher) *CartHandler {
	return &CartHandler{
		logger:   logger,
		carts:    carts,
		eventBus: eventBus,
	}
}

// Create handles POST /cart
// @Summary      Create an empty cart
// @Tags         cart
// @Produce      json
// @Success      201  {object}  map[string]int64  "New cart id"
// @Router       /cart [post]
func (h *CartHandler) Create(c *gin.Context) {
	view, err := h.carts.AddEmpty(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to create cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errs.NewInternalError("failed to create cart", err))
		return
	}

	h.publish(c, events.CartCreatedEvent{CartID: view.ID, OccurredAt: time.Now().UTC()})

	h.logger.Info("Cart created", zap.Int64("cart_id", view.ID))
	c.Header("Location", fmt.Sprintf("/cart/%d", view.ID))
	c.JSON(http.StatusCreated, gin.H{"id": view.ID})
}

// GetByID handles GET /cart/:id
// @Summary      Get a cart
// @Description  Returns the projected view: per-line availability and a price recomputed from current item data.
// @Tags         cart
// @Produce      json
// @Param        id   path      int  true  "Cart id"
// @Success      200  {object}  CartResponse
// @Failure      404  {object}  errors.StandardError  "Cart not found"
// @Router       /cart/{id} [get]
func (h *CartHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.carts.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, errs.NewCartNotFound(id))
			return
		}
		h.logger.Error("Failed to get cart", zap.Int64("cart_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errs.NewInternalError("failed to get cart", err))
		return
	}

	c.JSON(http.StatusOK, cartResponseFrom(view))
}

// List handles GET /cart
// @Summary      List carts
// @Description  Filters run against the recomputed price and the summed line quantities (unavailable lines count toward quantity), then offset/limit paginates the filtered sequence.
// @Tags         cart
// @Produce      json
// @Param        offset        query  int     false  "Carts to skip (default 0)"
// @Param        limit         query  int     false  "Page size (default 10, min 1)"
// @Param        min_price     query  number  false  "Lower recomputed-price bound, inclusive"
// @Param        max_price     query  number  false  "Upper recomputed-price bound, inclusive"
// @Param        min_quantity  query  int     false  "Lower bound on summed line quantities"
// @Param        max_quantity  query  int     false  "Upper bound on summed line quantities"
// @Success      200  {array}   CartResponse
// @Failure      422  {object}  errors.StandardError  "Invalid query parameter"
// @Router       /cart [get]
func (h *CartHandler) List(c *gin.Context) {
	offset, limit, ok := parsePagination(c)
	if !ok {
		return
	}
	minPrice, ok := parseOptionalFloatQuery(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := parseOptionalFloatQuery(c, "max_price")
	if !ok {
		return
	}
	minQuantity, ok := parseOptionalIntQuery(c, "min_quantity")
	if !ok {
		return
	}
	maxQuantity, ok := parseOptionalIntQuery(c, "max_quantity")
	if !ok {
		return
	}

	views, err := h.carts.List(c.Request.Context(), domain.CartFilter{
		Offset:      offset,
		Limit:       limit,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		MinQuantity: minQuantity,
		MaxQuantity: maxQuantity,
	})
	if err != nil {
		h.logger.Error("Failed to list carts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errs.NewInternalError("failed to list carts", err))
		return
	}

	response := make([]CartResponse, len(views))
	for i, view := range views {
		response[i] = cartResponseFrom(view)
	}
	c.JSON(http.StatusOK, response)
}

// Put handles PUT /cart/:id
// @Summary      Replace or upsert a cart's lines
// @Description  Replaces the line set wholesale; each incoming line's name becomes that line's fallback name. With ?upsert=true the cart is created when absent; otherwise a missing cart reports 304.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id       path   int          true   "Cart id"
// @Param        upsert   query  bool         false  "Create the cart when absent"
// @Param        request  body   CartRequest  true   "New line set"
// @Success      200  {object}  CartResponse
// @Failure      304  "Cart not found"
// @Failure      422  {object}  errors.StandardError  "Invalid body"
// @Router       /cart/{id} [put]
func (h *CartHandler) Put(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid cart request", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("invalid request body", "items"))
		return
	}
	if !validLineQuantities(c, req.Items) {
		return
	}

	var view domain.CartView
	var err error
	if c.Query("upsert") == "true" {
		view, err = h.carts.Upsert(c.Request.Context(), id, req.asLines())
	} else {
		view, err = h.carts.Replace(c.Request.Context(), id, req.asLines())
	}
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			c.Status(http.StatusNotModified)
			return
		}
		h.logger.Error("Failed to update cart", zap.Int64("cart_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errs.NewInternalError("failed to update cart", err))
		return
	}

	h.publishCartUpdated(c, view)
	c.JSON(http.StatusOK, cartResponseFrom(view))
}

// Patch handles PATCH /cart/:id
// @Summary      Partially update a cart
// @Description  When the items field is present — even as an empty array — the line set is replaced wholesale; when absent the lines are left untouched. Unknown fields are rejected.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id       path  int               true  "Cart id"
// @Param        request  body  PatchCartRequest  true  "Fields to change"
// @Success      200  {object}  CartResponse
// @Failure      304  "Cart not found"
// @Failure      422  {object}  errors.StandardError  "Invalid body or unknown field"
// @Router       /cart/{id} [patch]
func (h *CartHandler) Patch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PatchCartRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.logger.Warn("Invalid cart patch request", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("invalid request body", "items"))
		return
	}
	if req.Items != nil && !validLineQuantities(c, *req.Items) {
		return
	}

	view, err := h.carts.Patch(c.Request.Context(), id, req.asPatch())
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			c.Status(http.StatusNotModified)
			return
		}
		h.logger.Error("Failed to patch cart", zap.Int64("cart_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errs.NewInternalError("failed to patch cart", err))
		return
	}

	h.publishCartUpdated(c, view)
	c.JSON(http.StatusOK, cartResponseFrom(view))
}

// AddItem handles POST /cart/:id/add/:item_id
// @Summary      Add an item to a cart
// @Description  Increments the matching line's quantity, or appends a new quantity-1 line at the end. Line order is insertion order and survives increments.
// @Tags         cart
// @Produce      json
// @Param        id       path  int  true  "Cart id"
// @Param        item_id  path  int  true  "Item id"
// @Success      200  {object}  CartResponse
// @Failure      404  {object}  errors.StandardError  "Cart not found"
// @Router       /cart/{id}/add/{item_id} [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	view, err := h.carts.AddItem(c.Request.Context(), cartID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, errs.NewCartNotFound(cartID))
			return
		}
		h.logger.Error("Failed to add item to cart",
			zap.Int64("cart_id", cartID),
			zap.Int64("item_id", itemID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errs.NewInternalError("failed to add item to cart", err))
		return
	}

	h.publish(c, events.CartItemAddedEvent{
		CartID:     cartID,
		ItemID:     itemID,
		OccurredAt: time.Now().UTC(),
	})
	c.JSON(http.StatusOK, cartResponseFrom(view))
}

func (h *CartHandler) publishCartUpdated(c *gin.Context, view domain.CartView) {
	h.publish(c, events.CartUpdatedEvent{
		CartID:     view.ID,
		Price:      view.Price,
		Quantity:   view.TotalQuantity(),
		OccurredAt: time.Now().UTC(),
	})
}

func (h *CartHandler) publish(c *gin.Context, event interface{}) {
	if err := h.eventBus.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("Failed to publish event", zap.Error(err))
	}
}

func validLineQuantities(c *gin.Context, items []CartLineRequest) bool {
	for _, item := range items {
		if item.Quantity < 1 {
			c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("quantity must be positive", "items.quantity"))
			return false
		}
	}
	return true
}
