// Package application 通知服务的应用层
package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/cafekiosk/internal/notification/domain"
	orderapp "github.com/wyfcoding/cafekiosk/internal/order/application"
	orderdomain "github.com/wyfcoding/cafekiosk/internal/order/domain"
)

// OrderMailNotifier 下单成功后向运营邮箱发送邮件通知
type OrderMailNotifier struct {
	sender domain.Sender
	to     string
}

var _ orderapp.Notifier = (*OrderMailNotifier)(nil)

// NewOrderMailNotifier 创建下单邮件通知器
func NewOrderMailNotifier(sender domain.Sender, to string) *OrderMailNotifier {
	return &OrderMailNotifier{sender: sender, to: to}
}

// NotifyOrderPlaced 发送下单成功邮件
func (n *OrderMailNotifier) NotifyOrderPlaced(ctx context.Context, order *orderdomain.Order) error {
	subject := fmt.Sprintf("[kiosk] Order #%d placed", order.ID)
	content := fmt.Sprintf(
		"Order #%d registered at %s\nLines: %d\nTotal price: %d",
		order.ID,
		order.RegisteredAt.Format("2006-01-02 15:04:05"),
		len(order.Lines),
		order.TotalPrice,
	)
	return n.sender.Send(ctx, n.to, subject, content)
}
