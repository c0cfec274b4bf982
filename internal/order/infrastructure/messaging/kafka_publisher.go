// Package messaging 提供下单事件的 Kafka 发布实现
package messaging

import (
	"context"
	"strconv"
	"time"

	"github.com/wyfcoding/cafekiosk/internal/order/application"
	"github.com/wyfcoding/cafekiosk/internal/order/domain"
	"github.com/wyfcoding/cafekiosk/pkg/mq"
)

// OrderPlacedEvent 下单成功事件载荷
type OrderPlacedEvent struct {
	OrderID      uint      `json:"order_id"`
	RegisteredAt time.Time `json:"registered_at"`
	TotalPrice   int64     `json:"total_price"`
	Lines        []Line    `json:"lines"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Line 事件中的订单行
type Line struct {
	ProductNumber string `json:"product_number"`
	Price         int64  `json:"price"`
}

// KafkaEventPublisher 将下单事件发布到 Kafka
type KafkaEventPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

var _ application.EventPublisher = (*KafkaEventPublisher)(nil)

// NewKafkaEventPublisher 创建事件发布器
func NewKafkaEventPublisher(producer *mq.KafkaProducer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

// PublishOrderPlaced 发布下单成功事件，以订单 ID 作为分区键
func (p *KafkaEventPublisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	event := OrderPlacedEvent{
		OrderID:      order.ID,
		RegisteredAt: order.RegisteredAt,
		TotalPrice:   order.TotalPrice,
		OccurredAt:   time.Now(),
	}
	for _, line := range order.Lines {
		event.Lines = append(event.Lines, Line{
			ProductNumber: line.ProductNumber,
			Price:         line.Price,
		})
	}

	return p.producer.SendMessage(ctx, p.topic, strconv.FormatUint(uint64(order.ID), 10), event)
}
