package handlers

import (
	"net/http"
	"strconv"

	"shop-service/internal/domain"

	"github.com/gin-gonic/gin"

	errs "shop-service/pkg/errors"
)

// ItemResponse is the wire form of a catalog item.
type ItemResponse struct {
	ID      int64   `json:"id" example:"0"`
	Name    string  `json:"name" example:"milk"`
	Price   float64 `json:"price" example:"9.99"`
	Deleted bool    `json:"deleted" example:"false"`
}

func itemResponseFrom(item domain.Item) ItemResponse {
	return ItemResponse{
		ID:      item.ID,
		Name:    item.Name,
		Price:   item.Price,
		Deleted: item.Deleted,
	}
}

// ItemRequest is the body of item create/replace/upsert requests.
type ItemRequest struct {
	Name    *string  `json:"name" binding:"required"`
	Price   *float64 `json:"price" binding:"required,gte=0"`
	Deleted bool     `json:"deleted"`
}

// PatchItemRequest is the body of a partial item update. Unknown fields are
// rejected at decode time; in particular the deleted flag cannot be patched.
type PatchItemRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

func (r PatchItemRequest) asPatch() domain.ItemPatch {
	return domain.ItemPatch{Name: r.Name, Price: r.Price}
}

// CartLineResponse is the projected form of one cart line.
type CartLineResponse struct {
	ID        int64  `json:"id" example:"0"`
	Name      string `json:"name" example:"milk"`
	Quantity  int    `json:"quantity" example:"2"`
	Available bool   `json:"available" example:"true"`
}

// CartResponse is the wire form of a projected cart.
type CartResponse struct {
	ID    int64              `json:"id" example:"1"`
	Items []CartLineResponse `json:"items"`
	Price float64            `json:"price" example:"19.98"`
}

func cartResponseFrom(view domain.CartView) CartResponse {
	items := make([]CartLineResponse, len(view.Items))
	for i, line := range view.Items {
		items[i] = CartLineResponse{
			ID:        line.ItemID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Available: line.Available,
		}
	}
	return CartResponse{ID: view.ID, Items: items, Price: view.Price}
}

// CartLineRequest is one line in a cart replace/upsert body. Name and
// availability are transient projections: the name becomes the line's fallback
// name, availability is recomputed and never trusted.
type CartLineRequest struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Available bool   `json:"available"`
}

// CartRequest is the body of cart replace/upsert requests. Price is ignored:
// it is derived state and recomputed on every read.
type CartRequest struct {
	Items []CartLineRequest `json:"items"`
	Price float64           `json:"price"`
}

func (r CartRequest) asLines() []domain.CartLine {
	lines := make([]domain.CartLine, len(r.Items))
	for i, item := range r.Items {
		lines[i] = domain.CartLine{ItemID: item.ID, Name: item.Name, Quantity: item.Quantity}
	}
	return lines
}

// PatchCartRequest is the body of a partial cart update. Items is tri-state:
// absent leaves the line set untouched, present (even empty) replaces it.
type PatchCartRequest struct {
	Items *[]CartLineRequest `json:"items"`
	Price *float64           `json:"price"`
}

func (r PatchCartRequest) asPatch() domain.CartPatch {
	if r.Items == nil {
		return domain.CartPatch{}
	}
	lines := CartRequest{Items: *r.Items}.asLines()
	return domain.CartPatch{Lines: &lines}
}

// Query-parameter parsing shared by the list endpoints. Invalid values are
// reported as 422, matching the boundary contract.

func parsePagination(c *gin.Context) (offset, limit int, ok bool) {
	offset, ok = parseIntQuery(c, "offset", 0, 0)
	if !ok {
		return 0, 0, false
	}
	limit, ok = parseIntQuery(c, "limit", 10, 1)
	if !ok {
		return 0, 0, false
	}
	return offset, limit, true
}

func parseIntQuery(c *gin.Context, name string, defaultValue, min int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < min {
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("invalid query parameter", name))
		return 0, false
	}
	return value, true
}

func parseOptionalIntQuery(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("invalid query parameter", name))
		return nil, false
	}
	return &value, true
}

func parseOptionalFloatQuery(c *gin.Context, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("invalid query parameter", name))
		return nil, false
	}
	return &value, true
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("invalid path parameter", name))
		return 0, false
	}
	return id, true
}
