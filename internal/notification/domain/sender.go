// Package domain 通知服务的领域模型
package domain

import "context"

// Sender 通知发送接口
type Sender interface {
	// Send 向目标地址发送一条通知
	Send(ctx context.Context, target string, subject string, content string) error
}
