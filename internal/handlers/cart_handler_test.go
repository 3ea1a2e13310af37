package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop-service/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) CartResponse {
	t.Helper()
	var cart CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	return cart
}

func TestCreateCart_Success(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, "POST", "/cart", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/cart/0", w.Header().Get("Location"))

	var body map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(0), body["id"])
}

func TestGetCart_NotFound(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, "GET", "/cart/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCart_EmptyCart(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/cart", nil)

	w := env.do(t, "GET", "/cart/0", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	cart := decodeCart(t, w)
	assert.Empty(t, cart.Items)
	assert.InDelta(t, 0.0, cart.Price, 1e-8)
}

func TestAddItemToCart_PriceReflectsItem(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/item", gin.H{"name": "milk", "price": 9.99}) // id 0
	env.do(t, "POST", "/cart", nil)                                  // id 1

	w := env.do(t, "POST", "/cart/1/add/0", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "POST", "/cart/1/add/0", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	cart := decodeCart(t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "milk", cart.Items[0].Name)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.Items[0].Available)
	assert.InDelta(t, 19.98, cart.Price, 1e-8)
}

func TestAddItemToCart_MissingCart(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, "POST", "/cart/42/add/0", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddItemToCart_UnknownItemGetsPlaceholder(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/cart", nil)

	w := env.do(t, "POST", "/cart/0/add/77", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	cart := decodeCart(t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "item-77", cart.Items[0].Name)
	assert.False(t, cart.Items[0].Available)
	assert.InDelta(t, 0.0, cart.Price, 1e-8)
}

func TestGetCart_DeletedItemBecomesUnavailable(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/item", gin.H{"name": "milk", "price": 9.99}) // id 0
	env.do(t, "POST", "/cart", nil)                                  // id 1
	env.do(t, "POST", "/cart/1/add/0", nil)

	env.do(t, "DELETE", "/item/0", nil)

	w := env.do(t, "GET", "/cart/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	cart := decodeCart(t, w)
	require.Len(t, cart.Items, 1)
	assert.False(t, cart.Items[0].Available)
	assert.Equal(t, "milk", cart.Items[0].Name, "the fallback name survives the item")
	assert.InDelta(t, 0.0, cart.Price, 1e-8)
}

func TestGetCart_PriceChangeVisibleImmediately(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/item", gin.H{"name": "milk", "price": 10.0}) // id 0
	env.do(t, "POST", "/cart", nil)                                  // id 1
	env.do(t, "POST", "/cart/1/add/0", nil)

	env.doRaw(t, "PATCH", "/item/0", `{"price": 25.0}`)

	w := env.do(t, "GET", "/cart/1", nil)
	cart := decodeCart(t, w)
	assert.InDelta(t, 25.0, cart.Price, 1e-8)
}

func TestListCarts_PriceFilterUsesRecomputedPrice(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/item", gin.H{"name": "gum", "price": 0.5})    // id 0
	env.do(t, "POST", "/item", gin.H{"name": "steak", "price": 20.0}) // id 1
	env.do(t, "POST", "/cart", nil)                                   // id 2
	env.do(t, "POST", "/cart/2/add/0", nil)
	env.do(t, "POST", "/cart", nil) // id 3
	env.do(t, "POST", "/cart/3/add/1", nil)

	w := env.do(t, "GET", "/cart?min_price=10", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var carts []CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &carts))
	require.Len(t, carts, 1)
	assert.Equal(t, int64(3), carts[0].ID)

	// deleting the expensive item empties the result set
	env.do(t, "DELETE", "/item/1", nil)
	w = env.do(t, "GET", "/cart?min_price=10", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &carts))
	assert.Empty(t, carts)
}

func TestListCarts_QuantityFilter(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/item", gin.H{"name": "milk", "price": 1.0}) // id 0
	env.do(t, "POST", "/cart", nil)                                 // id 1
	env.do(t, "POST", "/cart/1/add/0", nil)
	env.do(t, "POST", "/cart/1/add/0", nil)
	env.do(t, "POST", "/cart", nil) // id 2
	env.do(t, "POST", "/cart/2/add/0", nil)

	w := env.do(t, "GET", "/cart?min_quantity=2", nil)
	var carts []CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &carts))
	require.Len(t, carts, 1)
	assert.Equal(t, int64(1), carts[0].ID)

	w = env.do(t, "GET", "/cart?max_quantity=1", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &carts))
	require.Len(t, carts, 1)
	assert.Equal(t, int64(2), carts[0].ID)
}

func TestListCarts_InvalidQuery(t *testing.T) {
	env := newTestEnv(t, false)

	assert.Equal(t, http.StatusUnprocessableEntity, env.do(t, "GET", "/cart?min_quantity=abc", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, env.do(t, "GET", "/cart?min_price=-1", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, env.do(t, "GET", "/cart?limit=-5", nil).Code)
}

func TestPutCart_ReplaceLines(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/item", gin.H{"name": "milk", "price": 2.0}) // id 0
	env.do(t, "POST", "/cart", nil)                                 // id 1

	w := env.do(t, "PUT", "/cart/1", gin.H{
		"items": []gin.H{{"id": 0, "name": "milk", "quantity": 3}},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	cart := decodeCart(t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.InDelta(t, 6.0, cart.Price, 1e-8)
}

func TestPutCart_MissingReports304(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, "PUT", "/cart/42", gin.H{"items": []gin.H{}})
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestPutCart_UpsertCreatesAtArbitraryID(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/item", gin.H{"name": "milk", "price": 2.0}) // id 0

	w := env.do(t, "PUT", "/cart/500?upsert=true", gin.H{
		"items": []gin.H{{"id": 0, "name": "milk", "quantity": 1}},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(500), decodeCart(t, w).ID)

	// the shared sequence jumps past the upserted id
	w = env.do(t, "POST", "/cart", nil)
	var body map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(501), body["id"])
}

func TestPutCart_ZeroQuantityRejected(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/cart", nil)

	w := env.do(t, "PUT", "/cart/0", gin.H{
		"items": []gin.H{{"id": 1, "name": "x", "quantity": 0}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPatchCart_AbsentItemsLeavesLines(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/item", gin.H{"name": "milk", "price": 2.0}) // id 0
	env.do(t, "POST", "/cart", nil)                                 // id 1
	env.do(t, "POST", "/cart/1/add/0", nil)

	w := env.doRaw(t, "PATCH", "/cart/1", `{}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeCart(t, w).Items, 1)
}

func TestPatchCart_EmptyItemsClearsLines(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/item", gin.H{"name": "milk", "price": 2.0}) // id 0
	env.do(t, "POST", "/cart", nil)                                 // id 1
	env.do(t, "POST", "/cart/1/add/0", nil)

	w := env.doRaw(t, "PATCH", "/cart/1", `{"items": []}`)
	assert.Equal(t, http.StatusOK, w.Code)
	cart := decodeCart(t, w)
	assert.Empty(t, cart.Items)
	assert.InDelta(t, 0.0, cart.Price, 1e-8)
}

func TestPatchCart_UnknownFieldRejected(t *testing.T) {
	env := newTestEnv(t, false)
	env.do(t, "POST", "/cart", nil)

	w := env.doRaw(t, "PATCH", "/cart/0", `{"bogus": 1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPatchCart_MissingReports304(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.doRaw(t, "PATCH", "/cart/42", `{}`)
	assert.Equal(t, http.StatusNotModified, w.Code)
}

func TestCartEvents_Published(t *testing.T) {
	env := newTestEnv(t, false)

	env.do(t, "POST", "/cart", nil)
	env.do(t, "POST", "/cart/0/add/5", nil)

	published := env.bus.Events()
	require.Len(t, published, 2)
	assert.IsType(t, events.CartCreatedEvent{}, published[0])
	assert.IsType(t, events.CartItemAddedEvent{}, published[1])
}
