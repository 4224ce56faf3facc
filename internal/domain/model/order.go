package model

import "time"

type OrderStatus string

const (
	OrderStatusNotProcessed OrderStatus = "Not processed"
	OrderStatusProcessing   OrderStatus = "Processing"
	OrderStatusShipped      OrderStatus = "Shipped"
	OrderStatusDelivered    OrderStatus = "Delivered"
	OrderStatusCancelled    OrderStatus = "Cancelled"
)

// ステータスの一覧（宣言は1箇所、読み取り専用で公開する）
func OrderStatusValues() []OrderStatus {
	return []OrderStatus{
		OrderStatusNotProcessed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// 列挙のメンバーかどうか
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatusValues() {
		if s == v {
			return true
		}
	}
	return false
}

// 管理者はどの値にも無条件で変更できる（順序は強制しない）
type Order struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"products"`

	TransactionID string      `gorm:"type:varchar(255);not null" json:"transaction_id"`
	Amount        float64     `gorm:"not null" json:"amount"`
	Address       string      `gorm:"type:text" json:"address"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;default:'Not processed'" json:"status"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
