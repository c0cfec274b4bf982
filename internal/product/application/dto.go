package application

import "github.com/wyfcoding/cafekiosk/internal/product/domain"

// ProductResponse 商品响应
type ProductResponse struct {
	ID            uint   `json:"id"`
	ProductNumber string `json:"product_number"`
	Type          string `json:"type"`
	SellingStatus string `json:"selling_status"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
}

func toProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		ProductNumber: p.ProductNumber,
		Type:          string(p.Type),
		SellingStatus: string(p.SellingStatus),
		Name:          p.Name,
		Price:         p.Price,
	}
}
