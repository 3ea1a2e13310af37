package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"shop-service/internal/cache"
	"shop-service/internal/domain"
	"shop-service/internal/events"
	"shop-service/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	errs "shop-service/pkg/errors"
)

// ItemHandler serves the /item routes.
type ItemHandler struct {
	logger   *zap.Logger
	items    repository.ItemRepository
	cache    cache.Cache // nil when caching is disabled
	cacheTTL int
	eventBus events.EventPublisher
}

func NewItemHandler(logger *zap.Logger, items repository.ItemRepository, cacheClient cache.Cache, cacheTTL int, eventBus events.EventPublisher) *ItemHandler {
	return &ItemHandler{
		logger:   logger,
		items:    items,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		eventBus: eventBus,
	}
}

// Create handles POST /item
// @Summary      Create an item
// @Description  Stores a new catalog item and allocates its id.
// @Tags         item
// @Accept       json
// @Produce      json
// @Param        request  body      ItemRequest  true  "Item fields"
// @Success      201      {object}  ItemResponse
// @Failure      422      {object}  errors.StandardError  "Invalid body"
// @Router       /item [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid item request", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("invalid request body", "name, price"))
		return
	}

	item, err := h.items.Add(c.Request.Context(), *req.Name, *req.Price, req.Deleted)
	if err != nil {
		h.logger.Error("Failed to create item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errs.NewInternalError("failed to create item", err))
		return
	}

	h.invalidateItemCache(c)
	h.publish(c, events.ItemCreatedEvent{
		ItemID:     item.ID,
		Name:       item.Name,
		Price:      item.Price,
		OccurredAt: time.Now().UTC(),
	})

	h.logger.Info("Item created", zap.Int64("item_id", item.ID))
	c.Header("Location", fmt.Sprintf("/item/%d", item.ID))
	c.JSON(http.StatusCreated, itemResponseFrom(item))
}

// GetByID handles GET /item/:id
// @Summary      Get an item
// @Description  Returns an active item. Soft-deleted items are invisible here.
// @Tags         item
// @Produce      json
// @Param        id   path      int  true  "Item id"
// @Success      200  {object}  ItemResponse
// @Failure      404  {object}  errors.StandardError  "Item missing or deleted"
// @Router       /item/{id} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if h.cache != nil {
		var cached ItemResponse
		if err := cache.GetJSON(c.Request.Context(), h.cache, itemKey(id), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	item, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, errs.NewItemNotFound(id))
			return
		}
		h.logger.Error("Failed to get item", zap.Int64("item_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errs.NewInternalError("failed to get item", err))
		return
	}

	response := itemResponseFrom(item)
	if h.cache != nil {
		if err := cache.SetJSON(c.Request.Context(), h.cache, itemKey(id), response, cache.TTL(h.cacheTTL)); err != nil {
			h.logger.Warn("Failed to cache item", zap.Int64("item_id", id), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, response)
}

// List handles GET /item
// @Summary      List items
// @Description  Lists items filtered by inclusive price bounds and deletion visibility, paginated by offset/limit.
// @Tags         item
// @Produce      json
// @Param        offset        query  int     false  "Items to skip (default 0)"
// @Param        limit         query  int     false  "Page size (default 10, min 1)"
// @Param        min_price     query  number  false  "Lower price bound, inclusive"
// @Param        max_price     query  number  false  "Upper price bound, inclusive"
// @Param        show_deleted  query  bool    false  "Include soft-deleted items"
// @Success      200  {array}   ItemResponse
// @Failure      422  {object}  errors.StandardError  "Invalid query parameter"
// @Router       /item [get]
func (h *ItemHandler) List(c *gin.Context) {
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
	showDeleted := c.Query("show_deleted") == "true"

	filter := domain.ItemFilter{
		Offset:      offset,
		Limit:       limit,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		ShowDeleted: showDeleted,
	}

	cacheKey := itemListKey(filter)
	if h.cache != nil {
		var cached []ItemResponse
		if err := cache.GetJSON(c.Request.Context(), h.cache, cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	items, err := h.items.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errs.NewInternalError("failed to list items", err))
		return
	}

	response := make([]ItemResponse, len(items))
	for i, item := range items {
		response[i] = itemResponseFrom(item)
	}
	if h.cache != nil {
		if err := cache.SetJSON(c.Request.Context(), h.cache, cacheKey, response, cache.TTL(h.cacheTTL)); err != nil {
			h.logger.Warn("Failed to cache item list", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, response)
}

// Put handles PUT /item/:id
// @Summary      Replace or upsert an item
// @Description  Overwrites all item fields. With ?upsert=true the item is created when absent; otherwise a missing or deleted item reports 304.
// @Tags         item
// @Accept       json
// @Produce      json
// @Param        id       path   int          true   "Item id"
// @Param        upsert   query  bool         false  "Create the item when absent"
// @Param        request  body   ItemRequest  true   "Item fields"
// @Success      200  {object}  ItemResponse
// @Failure      304  "Item missing or deleted"
// @Failure      422  {object}  errors.StandardError  "Invalid body"
// @Router       /item/{id} [put]
func (h *ItemHandler) Put(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid item request", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("invalid request body", "name, price"))
		return
	}

	var item domain.Item
	var err error
	if c.Query("upsert") == "true" {
		item, err = h.items.Upsert(c.Request.Context(), id, *req.Name, *req.Price, req.Deleted)
	} else {
		item, err = h.items.Replace(c.Request.Context(), id, *req.Name, *req.Price, req.Deleted)
	}
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.Status(http.StatusNotModified)
			return
		}
		h.logger.Error("Failed to update item", zap.Int64("item_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errs.NewInternalError("failed to update item", err))
		return
	}

	h.invalidateItemCache(c)
	h.publish(c, events.ItemUpdatedEvent{
		ItemID:     item.ID,
		Name:       item.Name,
		Price:      item.Price,
		OccurredAt: time.Now().UTC(),
	})

	c.JSON(http.StatusOK, itemResponseFrom(item))
}

// Patch handles PATCH /item/:id
// @Summary      Partially update an item
// @Description  Overwrites only the supplied name/price. The deleted flag cannot be patched; unknown fields are rejected.
// @Tags         item
// @Accept       json
// @Produce      json
// @Param        id       path   int               true  "Item id"
// @Param        request  body   PatchItemRequest  true  "Fields to change"
// @Success      200  {object}  ItemResponse
// @Failure      304  "Item missing or deleted"
// @Failure      422  {object}  errors.StandardError  "Invalid body or unknown field"
// @Router       /item/{id} [patch]
func (h *ItemHandler) Patch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PatchItemRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.logger.Warn("Invalid patch request", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("invalid request body", "name, price"))
		return
	}
	if req.Price != nil && *req.Price < 0 {
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("price must be non-negative", "price"))
		return
	}

	item, err := h.items.Patch(c.Request.Context(), id, req.asPatch())
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			c.Status(http.StatusNotModified)
			return
		}
		h.logger.Error("Failed to patch item", zap.Int64("item_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errs.NewInternalError("failed to patch item", err))
		return
	}

	h.invalidateItemCache(c)
	h.publish(c, events.ItemUpdatedEvent{
		ItemID:     item.ID,
		Name:       item.Name,
		Price:      item.Price,
		OccurredAt: time.Now().UTC(),
	})

	c.JSON(http.StatusOK, itemResponseFrom(item))
}

// Delete handles DELETE /item/:id
// @Summary      Soft-delete an item
// @Description  Marks the item deleted. The row is retained so carts referencing it keep their history; deleting an absent id is a no-op.
// @Tags         item
// @Produce      json
// @Param        id   path  int  true  "Item id"
// @Success      200  "Item marked deleted (or id was absent)"
// @Router       /item/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.items.SoftDelete(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete item", zap.Int64("item_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errs.NewInternalError("failed to delete item", err))
		return
	}

	h.invalidateItemCache(c)
	h.publish(c, events.ItemDeletedEvent{ItemID: id, OccurredAt: time.Now().UTC()})

	h.logger.Info("Item deleted", zap.Int64("item_id", id))
	c.Status(http.StatusOK)
}

func (h *ItemHandler) invalidateItemCache(c *gin.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.DeleteByPattern(c.Request.Context(), "items:*"); err != nil {
		h.logger.Warn("Failed to invalidate item cache", zap.Error(err))
	}
}

func (h *ItemHandler) publish(c *gin.Context, event interface{}) {
	if err := h.eventBus.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("Failed to publish event", zap.Error(err))
	}
}

func itemKey(id int64) string {
	return fmt.Sprintf("items:id:%d", id)
}

func itemListKey(filter domain.ItemFilter) string {
	minPrice, maxPrice := "", ""
	if filter.MinPrice != nil {
		minPrice = fmt.Sprintf("%g", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		maxPrice = fmt.Sprintf("%g", *filter.MaxPrice)
	}
	return fmt.Sprintf("items:list:%d:%d:%s:%s:%t", filter.Offset, filter.Limit, minPrice, maxPrice, filter.ShowDeleted)
}
