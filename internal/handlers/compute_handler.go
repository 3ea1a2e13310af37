package handlers

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	errs "shop-service/pkg/errors"
)

// ComputeHandler serves the arithmetic utility routes. Results that can
// overflow int64 are produced with math/big and serialized as strings.
type ComputeHandler struct {
	logger *zap.Logger
}

func NewComputeHandler(logger *zap.Logger) *ComputeHandler {
	return &ComputeHandler{logger: logger}
}

// Fibonacci handles GET /fibonacci/:n
// @Summary      Nth Fibonacci number
// @Tags         compute
// @Produce      json
// @Param        n    path      int  true  "Index, zero-based"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  errors.StandardError  "Negative index"
// @Failure      422  {object}  errors.StandardError  "Not an integer"
// @Router       /fibonacci/{n} [get]
func (h *ComputeHandler) Fibonacci(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("n must be an integer", "n"))
		return
	}
	if n < 0 {
		c.JSON(http.StatusBadRequest, errs.NewInvalidArgument("n must be non-negative", "Parameter: n"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": fibonacci(n).String()})
}

// Factorial handles GET /factorial?n=
// @Summary      Factorial of n
// @Tags         compute
// @Produce      json
// @Param        n    query     int  true  "Operand"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  errors.StandardError  "Negative operand"
// @Failure      422  {object}  errors.StandardError  "Missing or non-integer n"
// @Router       /factorial [get]
func (h *ComputeHandler) Factorial(c *gin.Context) {
	raw, ok := c.GetQuery("n")
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("query parameter n is required", "n"))
		return
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("n must be an integer", "n"))
		return
	}
	if n < 0 {
		c.JSON(http.StatusBadRequest, errs.NewInvalidArgument("n must be non-negative", "Parameter: n"))
		return
	}

	result := new(big.Int).MulRange(1, n)
	c.JSON(http.StatusOK, gin.H{"result": result.String()})
}

// Mean handles POST /mean
// @Summary      Arithmetic mean of a list of numbers
// @Tags         compute
// @Accept       json
// @Produce      json
// @Param        request  body      []number  true  "Numbers to average"
// @Success      200      {object}  map[string]float64
// @Failure      400      {object}  errors.StandardError  "Empty list"
// @Failure      422      {object}  errors.StandardError  "Missing or malformed body"
// @Router       /mean [post]
func (h *ComputeHandler) Mean(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("request body is required", "body"))
		return
	}

	var values []float64
	if err := json.Unmarshal(body, &values); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errs.NewValidationError("body must be a JSON array of numbers", "body"))
		return
	}
	if len(values) == 0 {
		c.JSON(http.StatusBadRequest, errs.NewInvalidArgument("list must be non-empty", "Field: body"))
		return
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	c.JSON(http.StatusOK, gin.H{"result": sum / float64(len(values))})
}

// fibonacci iterates rather than recursing so large indices stay cheap.
func fibonacci(n int) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := 0; i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}
