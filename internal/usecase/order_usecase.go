package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	orderRepo   repo.OrderRepository
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
	auditRepo   repo.AuditLogRepository
}

// DI
func NewOrderUsecase(
	orderRepo repo.OrderRepository,
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
	auditRepo repo.AuditLogRepository,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
	}
}

// カートの1明細（クライアントが持つスナップショット）
type OrderLineInput struct {
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Count       int64   `json:"count"`
}

type CreateOrderInput struct {
	Products      []OrderLineInput
	TransactionID string
	Amount        float64
	Address       string
}

// 注文確定のパイプライン。トランザクションではなく順番に実行する：
//  1. 明細ごとに在庫を減らしsoldを増やす
//  2. 購入履歴をユーザーへ追記する
//  3. 注文レコードを保存する
//
// 途中で失敗したらそこで中断してエラーを返す。済んだ手順は巻き戻さない
// （在庫減算は注文保存より必ず先）。
func (u *OrderUsecase) Create(ctx context.Context, userID int64, in CreateOrderInput) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Products) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "All fields are required")
	}
	for _, line := range in.Products {
		if line.ProductID <= 0 || line.Count < 1 {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "All fields are required")
		}
	}

	//在庫減算（注文保存より先。失敗したら注文は作られない）
	for _, line := range in.Products {
		if err := u.productRepo.DecreaseQuantity(ctx, line.ProductID, line.Count); err != nil {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "Could not update product")
		}
	}

	//購入履歴の追記（明細ごとに1行）
	entries := make([]model.PurchaseHistory, 0, len(in.Products))
	for _, line := range in.Products {
		entries = append(entries, model.PurchaseHistory{
			ProductID:     line.ProductID,
			Name:          line.Name,
			Description:   line.Description,
			Category:      line.Category,
			Quantity:      line.Count,
			TransactionID: in.TransactionID,
			Amount:        in.Amount,
		})
	}
	if err := u.userRepo.AppendHistory(ctx, userID, entries); err != nil {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Could not update user purchase history")
	}

	//注文保存
	items := make([]model.OrderItem, 0, len(in.Products))
	for _, line := range in.Products {
		items = append(items, model.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Count:     line.Count,
		})
	}

	order, err := u.orderRepo.Create(ctx, model.Order{
		UserID:        userID,
		Items:         items,
		TransactionID: in.TransactionID,
		Amount:        in.Amount,
		Address:       in.Address,
		Status:        model.OrderStatusNotProcessed,
	})
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return order, nil
}

// 管理者用の全注文一覧（新しい順）
func (u *OrderUsecase) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := u.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

// ステータスの一覧（読み取り専用）
func (u *OrderUsecase) StatusValues() []model.OrderStatus {
	return model.OrderStatusValues()
}

// ステータス更新。列挙のメンバーであれば無条件に設定する
// （順序は強制しない。観測された挙動のまま）。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, actorUserID int64, orderID int64, status string) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Order not found")
	}

	newStatus := model.OrderStatus(status)
	if !newStatus.Valid() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Invalid status")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		if err == repo.ErrNotFound {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "Order not found")
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ（UPDATE_ORDER_STATUS）
	beforeJSON := fmt.Sprintf(`{"status":%q}`, string(o.Status))
	afterJSON := fmt.Sprintf(`{"status":%q}`, string(newStatus))
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       model.AuditActionUpdateOrderStatus,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	o.Status = newStatus
	return o, nil
}
