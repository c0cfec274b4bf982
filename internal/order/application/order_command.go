// Package application 订单服务的应用层
package application

import (
	"context"
	"errors"
	"sort"
	"time"

	orderdomain "github.com/wyfcoding/cafekiosk/internal/order/domain"
	productdomain "github.com/wyfcoding/cafekiosk/internal/product/domain"
	stockdomain "github.com/wyfcoding/cafekiosk/internal/stock/domain"
	"github.com/wyfcoding/cafekiosk/pkg/logger"
)

// ErrEmptyOrder 下单请求中的商品编号列表为空
var ErrEmptyOrder = errors.New("order must contain at least one product number")

// Transactor 事务边界，实现方保证 fn 内的读写要么全部提交要么全部回滚
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 下单成功事件发布接口，在事务提交后调用
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *orderdomain.Order) error
}

// Notifier 下单成功通知接口，在事务提交后调用
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, order *orderdomain.Order) error
}

// PlaceOrderCommand 下单命令
type PlaceOrderCommand struct {
	// 请求的商品编号，保持顺序，允许重复
	ProductNumbers []string
	// 下单时间，由调用方传入
	RegisteredAt time.Time
}

// OrderCommandService 处理订单相关的命令操作，
// 编排下单流程：解析商品 -> 统计库存需求 -> 扣减库存 -> 持久化订单
type OrderCommandService struct {
	orders    orderdomain.OrderRepository
	products  productdomain.ProductRepository
	stocks    stockdomain.StockRepository
	policy    productdomain.StockPolicy
	tx        Transactor
	publisher EventPublisher
	notifier  Notifier
}

// NewOrderCommandService 创建 OrderCommandService 实例。
// publisher 与 notifier 可为 nil，表示不发布事件/不发送通知
func NewOrderCommandService(
	orders orderdomain.OrderRepository,
	products productdomain.ProductRepository,
	stocks stockdomain.StockRepository,
	policy productdomain.StockPolicy,
	tx Transactor,
	publisher EventPublisher,
	notifier Notifier,
) *OrderCommandService {
	return &OrderCommandService{
		orders:    orders,
		products:  products,
		stocks:    stocks,
		policy:    policy,
		tx:        tx,
		publisher: publisher,
		notifier:  notifier,
	}
}

// PlaceOrder 下单。
// 步骤 2-4 在同一事务中执行：任一商品库存不足或任一步骤出错时整体回滚，
// 已尝试的扣减不会保留；要么订单存在且库存全部扣减，要么什么都没发生
func (s *OrderCommandService) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (*OrderResponse, error) {
	if len(cmd.ProductNumbers) == 0 {
		return nil, ErrEmptyOrder
	}

	var order *orderdomain.Order

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		// 1. 解析商品编号
		found, err := s.products.FindByNumbers(ctx, cmd.ProductNumbers)
		if err != nil {
			return err
		}
		resolved, err := orderdomain.ResolveProducts(cmd.ProductNumbers, found)
		if err != nil {
			return err
		}

		// 2. 统计管理库存商品的需求量
		demand := orderdomain.StockDemand(resolved, s.policy)

		// 3. 逐一扣减库存。按编号排序以固定加锁顺序，避免并发下单互相死锁
		for _, number := range sortedNumbers(demand) {
			if err := s.stocks.Deduct(ctx, number, demand[number]); err != nil {
				return err
			}
		}

		// 4. 构建并持久化订单
		order = orderdomain.NewOrder(resolved, cmd.RegisteredAt)
		return s.orders.Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Order placed",
		"order_id", order.ID,
		"total_price", order.TotalPrice,
		"line_count", len(order.Lines),
	)

	// 事务已提交，事件与通知的失败只记录日志，不影响下单结果
	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
			logger.Error(ctx, "Failed to publish order placed event", "order_id", order.ID, "error", err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyOrderPlaced(ctx, order); err != nil {
			logger.Error(ctx, "Failed to send order placed notification", "order_id", order.ID, "error", err)
		}
	}

	return toOrderResponse(order), nil
}

func sortedNumbers(demand map[string]int) []string {
	numbers := make([]string, 0, len(demand))
	for number := range demand {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)
	return numbers
}
