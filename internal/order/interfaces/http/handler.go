// Package http 订单服务的 HTTP 处理器
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/cafekiosk/internal/order/application"
	orderdomain "github.com/wyfcoding/cafekiosk/internal/order/domain"
	stockdomain "github.com/wyfcoding/cafekiosk/internal/stock/domain"
	"github.com/wyfcoding/cafekiosk/pkg/logger"
	"github.com/wyfcoding/cafekiosk/pkg/metrics"
	"github.com/wyfcoding/cafekiosk/pkg/response"
)

// OrderHandler HTTP 处理器
// 负责处理与订单相关的 HTTP 请求
type OrderHandler struct {
	cmd *application.OrderCommandService
	m   *metrics.Metrics
}

// NewOrderHandler 创建 HTTP 处理器实例，m 可为 nil
func NewOrderHandler(cmd *application.OrderCommandService, m *metrics.Metrics) *OrderHandler {
	return &OrderHandler{cmd: cmd, m: m}
}

// RegisterRoutes 注册路由
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/orders")
	{
		api.POST("/new", h.PlaceOrder) // 下单
	}
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	ProductNumbers []string `json:"product_numbers" binding:"required,min=1"`
}

// PlaceOrder 下单
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := application.PlaceOrderCommand{
		ProductNumbers: req.ProductNumbers,
		RegisteredAt:   time.Now(),
	}

	result, err := h.cmd.PlaceOrder(c.Request.Context(), cmd)
	if err != nil {
		h.handlePlaceOrderError(c, err)
		return
	}

	if h.m != nil {
		h.m.OrdersPlacedTotal.Inc()
	}
	response.Success(c, result)
}

// handlePlaceOrderError 将业务错误映射为 HTTP 状态码
func (h *OrderHandler) handlePlaceOrderError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, application.ErrEmptyOrder):
		h.reject("empty_order")
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, orderdomain.ErrProductNotFound):
		h.reject("product_not_found")
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error())
	case errors.Is(err, stockdomain.ErrStockNotFound):
		h.reject("stock_not_found")
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error())
	case errors.Is(err, stockdomain.ErrInsufficientStock):
		h.reject("insufficient_stock")
		response.ErrorWithStatus(c, http.StatusConflict, err.Error())
	default:
		logger.Error(ctx, "Failed to place order", "error", err)
		h.reject("internal")
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to place order")
	}
}

func (h *OrderHandler) reject(reason string) {
	if h.m != nil {
		h.m.OrdersRejectedTotal.WithLabelValues(reason).Inc()
	}
}
