package application

import (
	"context"

	"github.com/wyfcoding/cafekiosk/internal/product/domain"
)

// ProductQueryService 处理商品相关的查询操作
type ProductQueryService struct {
	repo domain.ProductRepository
}

// NewProductQueryService 创建 ProductQueryService 实例
func NewProductQueryService(repo domain.ProductRepository) *ProductQueryService {
	return &ProductQueryService{repo: repo}
}

// GetSellingProducts 返回对外展示的商品列表（在售与暂停销售）
func (s *ProductQueryService) GetSellingProducts(ctx context.Context) ([]*ProductResponse, error) {
	products, err := s.repo.FindBySellingStatuses(ctx, domain.ForDisplay())
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, toProductResponse(p))
	}
	return responses, nil
}
