package model

import "time"

type Product struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	CategoryID  int64   `gorm:"not null;index" json:"category_id"`

	//一覧・詳細でpopulateして返す
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Quantity int64 `gorm:"not null" json:"quantity"`
	Sold     int64 `gorm:"not null;default:0" json:"sold"`
	Shipping bool  `gorm:"not null;default:false" json:"shipping"`

	//写真は専用エンドポイントでのみ返す（JSONには出さない）
	Photo            []byte `gorm:"type:bytea" json:"-"`
	PhotoContentType string `gorm:"type:varchar(100)" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
