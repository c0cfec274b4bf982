package application

import (
	"time"

	orderdomain "github.com/wyfcoding/cafekiosk/internal/order/domain"
)

// OrderResponse 下单响应
type OrderResponse struct {
	ID           uint                `json:"id"`
	RegisteredAt time.Time           `json:"registered_at"`
	TotalPrice   int64               `json:"total_price"`
	Lines        []OrderLineResponse `json:"lines"`
}

// OrderLineResponse 订单行响应
type OrderLineResponse struct {
	ProductNumber string `json:"product_number"`
	Price         int64  `json:"price"`
}

func toOrderResponse(o *orderdomain.Order) *OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, OrderLineResponse{
			ProductNumber: line.ProductNumber,
			Price:         line.Price,
		})
	}
	return &OrderResponse{
		ID:           o.ID,
		RegisteredAt: o.RegisteredAt,
		TotalPrice:   o.TotalPrice,
		Lines:        lines,
	}
}
