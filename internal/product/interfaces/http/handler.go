// Package http 商品服务的 HTTP 处理器
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/cafekiosk/internal/product/application"
	"github.com/wyfcoding/cafekiosk/internal/product/domain"
	"github.com/wyfcoding/cafekiosk/pkg/logger"
	"github.com/wyfcoding/cafekiosk/pkg/metrics"
	"github.com/wyfcoding/cafekiosk/pkg/response"
)

// ProductHandler HTTP 处理器
// 负责处理与商品相关的 HTTP 请求
type ProductHandler struct {
	cmd   *application.ProductCommandService
	query *application.ProductQueryService
	m     *metrics.Metrics
}

// NewProductHandler 创建 HTTP 处理器实例，m 可为 nil
func NewProductHandler(cmd *application.ProductCommandService, query *application.ProductQueryService, m *metrics.Metrics) *ProductHandler {
	return &ProductHandler{cmd: cmd, query: query, m: m}
}

// RegisterRoutes 注册路由
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/products")
	{
		api.POST("/new", h.CreateProduct)      // 创建商品
		api.GET("/selling", h.SellingProducts) // 展示商品列表
	}
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Type          string `json:"type" binding:"required"`
	SellingStatus string `json:"selling_status" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Price         int64  `json:"price" binding:"required,gt=0"`
}

// CreateProduct 创建商品
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := application.CreateProductCommand{
		Type:          req.Type,
		SellingStatus: req.SellingStatus,
		Name:          req.Name,
		Price:         req.Price,
	}

	result, err := h.cmd.CreateProduct(c.Request.Context(), cmd)
	if err != nil {
		h.handleCreateProductError(c, err)
		return
	}

	if h.m != nil {
		h.m.ProductsCreatedTotal.Inc()
	}
	response.Success(c, result)
}

// SellingProducts 展示商品列表
func (h *ProductHandler) SellingProducts(c *gin.Context) {
	products, err := h.query.GetSellingProducts(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list selling products", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list selling products")
		return
	}

	response.Success(c, products)
}

// handleCreateProductError 将业务错误映射为 HTTP 状态码
func (h *ProductHandler) handleCreateProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNameRequired),
		errors.Is(err, domain.ErrProductPriceInvalid),
		errors.Is(err, domain.ErrProductTypeInvalid),
		errors.Is(err, domain.ErrSellingStatusInvalid):
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrProductNumberExhausted):
		response.ErrorWithStatus(c, http.StatusConflict, err.Error())
	default:
		logger.Error(c.Request.Context(), "Failed to create product", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to create product")
	}
}
