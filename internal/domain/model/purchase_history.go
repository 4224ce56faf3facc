package model

import "time"

// ユーザーの購入履歴（注文確定時に明細ごとに1行追記する）
// 非正規化スナップショットなので以後は変更しない。
type PurchaseHistory struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	ProductID     int64     `gorm:"not null" json:"product_id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Category      string    `gorm:"type:varchar(255)" json:"category"`
	Quantity      int64     `gorm:"not null" json:"quantity"`
	TransactionID string    `gorm:"type:varchar(255);not null" json:"transaction_id"`
	Amount        float64   `gorm:"not null" json:"amount"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
