package model

import "time"

// 注文明細（注文時点の名前と価格のスナップショット）
type OrderItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"not null;index" json:"order_id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Count     int64     `gorm:"not null" json:"count"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
