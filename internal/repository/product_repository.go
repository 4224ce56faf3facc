package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一覧取得（sortBy/order/limit）
type ProductListQuery struct {
	SortBy string
	Order  string
	Limit  int
}

// ファセット検索。空のファセットは条件を付けない（全除外ではない）。
type ProductFilterQuery struct {
	CategoryIDs []int64
	PriceMin    *float64
	PriceMax    *float64
	SortBy      string
	Order       string
	Skip        int
	Limit       int
}

// 商品の永続化（保存・取得）だけを約束。
// 一覧系は写真カラムを読まない。
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	ListFiltered(ctx context.Context, q ProductFilterQuery) ([]model.Product, error)
	ListRelated(ctx context.Context, productID int64, categoryID int64, limit int) ([]model.Product, error)
	Search(ctx context.Context, name string, categoryID *int64) ([]model.Product, error)
	//商品が参照しているカテゴリIDの一覧
	DistinctCategoryIDs(ctx context.Context) ([]int64, error)
	//カテゴリを参照している商品数（カテゴリ削除ブロックの判定に使う）
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	//販売時の在庫減算。quantityを減らしsoldを増やす（1商品につき1回の原子更新）。
	//在庫充足のガードは置かない（同時注文での売り越しは許容された挙動）。
	DecreaseQuantity(ctx context.Context, productID int64, count int64) error
}
