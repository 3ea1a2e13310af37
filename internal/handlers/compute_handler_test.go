package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newComputeRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewComputeHandler(zap.NewNop())
	router := gin.New()
	router.GET("/fibonacci/:n", handler.Fibonacci)
	router.GET("/factorial", handler.Factorial)
	router.POST("/mean", handler.Mean)
	return router
}

func computeRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func resultString(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["result"]
}

func TestFibonacci(t *testing.T) {
	router := newComputeRouter(t)

	cases := map[string]string{
		"0":  "0",
		"1":  "1",
		"2":  "1",
		"10": "55",
		"90": "2880067194370816120", // past int64 territory soon after
	}
	for n, want := range cases {
		w := computeRequest(t, router, "GET", "/fibonacci/"+n, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, resultString(t, w), "fib(%s)", n)
	}
}

func TestFibonacci_Invalid(t *testing.T) {
	router := newComputeRouter(t)

	w := computeRequest(t, router, "GET", "/fibonacci/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = computeRequest(t, router, "GET", "/fibonacci/-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFactorial(t *testing.T) {
	router := newComputeRouter(t)

	w := computeRequest(t, router, "GET", "/factorial?n=0", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", resultString(t, w))

	w = computeRequest(t, router, "GET", "/factorial?n=25", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "15511210043330985984000000", resultString(t, w))
}

func TestFactorial_Invalid(t *testing.T) {
	router := newComputeRouter(t)

	w := computeRequest(t, router, "GET", "/factorial", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = computeRequest(t, router, "GET", "/factorial?n=abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = computeRequest(t, router, "GET", "/factorial?n=-3", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMean(t *testing.T) {
	router := newComputeRouter(t)

	w := computeRequest(t, router, "POST", "/mean", `[1, 2, 3, 4]`)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.InDelta(t, 2.5, body["result"], 1e-8)
}

func TestMean_Invalid(t *testing.T) {
	router := newComputeRouter(t)

	w := computeRequest(t, router, "POST", "/mean", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "missing body")

	w = computeRequest(t, router, "POST", "/mean", `{"not": "a list"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "malformed body")

	w = computeRequest(t, router, "POST", "/mean", `[]`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty list")
}
