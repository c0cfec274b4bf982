// Package contextx 提供事务在 context 中的传递，
// 仓储通过它加入调用方开启的事务，保证一次下单内的读写在同一事务中执行
package contextx

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// WithTx 将事务句柄放入 context
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// Tx 从 context 中取出事务句柄；不存在时回退到 fallback
func Tx(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback
}
