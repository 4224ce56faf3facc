package repository

import (
	"app/internal/domain/model"
	"context"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//管理者用の全注文一覧（新しい順、ユーザーをpopulate）
	ListAll(ctx context.Context) ([]model.Order, error)
	//ユーザーの注文一覧（新しい順）
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
