// Package application 商品服务的应用层
package application

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wyfcoding/cafekiosk/internal/product/domain"
	"github.com/wyfcoding/cafekiosk/pkg/logger"
)

// Transactor 事务边界，实现方保证 fn 内的读写要么全部提交要么全部回滚
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	Type          string
	SellingStatus string
	Name          string
	Price         int64
}

// ProductCommandService 处理商品相关的命令操作
type ProductCommandService struct {
	repo domain.ProductRepository
	tx   Transactor
}

// NewProductCommandService 创建 ProductCommandService 实例
func NewProductCommandService(repo domain.ProductRepository, tx Transactor) *ProductCommandService {
	return &ProductCommandService{repo: repo, tx: tx}
}

// CreateProduct 创建商品：分配下一个商品编号并保存。
// 编号分配与保存在同一事务中执行，避免并发创建拿到相同编号
func (s *ProductCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*ProductResponse, error) {
	var created *domain.Product

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		number, err := s.nextProductNumber(ctx)
		if err != nil {
			return err
		}

		product, err := domain.NewProduct(
			number,
			domain.ProductType(cmd.Type),
			domain.SellingStatus(cmd.SellingStatus),
			cmd.Name,
			cmd.Price,
		)
		if err != nil {
			return err
		}

		if err := s.repo.Save(ctx, product); err != nil {
			return fmt.Errorf("failed to save product: %w", err)
		}

		created = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Product created",
		"product_number", created.ProductNumber,
		"type", created.Type,
		"price", created.Price,
	)

	return toProductResponse(created), nil
}

// nextProductNumber 计算下一个商品编号：目录为空时为 "001"，
// 否则为最大编号加一，三位零填充；超过 "999" 时返回编号耗尽错误
func (s *ProductCommandService) nextProductNumber(ctx context.Context) (string, error) {
	latest, err := s.repo.LatestProductNumber(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to query latest product number: %w", err)
	}

	if latest == "" {
		return "001", nil
	}

	n, err := strconv.Atoi(latest)
	if err != nil {
		return "", fmt.Errorf("malformed product number %q: %w", latest, err)
	}
	if n >= 999 {
		return "", domain.ErrProductNumberExhausted
	}

	return fmt.Sprintf("%03d", n+1), nil
}
