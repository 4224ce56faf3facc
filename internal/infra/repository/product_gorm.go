package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

// 一覧系のSELECT対象（写真バイナリは読まない）
var productColumnsWithoutPhoto = []string{
	"id", "name", "description", "price", "category_id",
	"quantity", "sold", "shipping", "created_at", "updated_at",
}

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// ソートキーはカラム名に変換できるものだけ通す
func sortColumn(sortBy string) string {
	switch sortBy {
	case "name":
		return "name"
	case "price":
		return "price"
	case "sold":
		return "sold"
	case "createdAt", "created_at":
		return "created_at"
	default:
		return "id"
	}
}

func sortDirection(order string) string {
	if strings.EqualFold(order, "desc") {
		return "desc"
	}
	return "asc"
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	var items []model.Product
	err := r.db.WithContext(ctx).
		Select(productColumnsWithoutPhoto).
		Preload("Category").
		Order(sortColumn(q.SortBy) + " " + sortDirection(q.Order)).
		Limit(q.Limit).
		Find(&items).Error
	if err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

// ファセット検索。値が空のファセットは条件ごと省く。
func (r *ProductGormRepository) ListFiltered(ctx context.Context, q repo.ProductFilterQuery) ([]model.Product, error) {
	tx := r.db.WithContext(ctx).Model(&model.Product{}).
		Select(productColumnsWithoutPhoto).
		Preload("Category")

	if len(q.CategoryIDs) > 0 {
		tx = tx.Where("category_id IN ?", q.CategoryIDs)
	}

	//価格は閉区間 [min, max]
	if q.PriceMin != nil {
		tx = tx.Where("price >= ?", *q.PriceMin)
	}
	if q.PriceMax != nil {
		tx = tx.Where("price <= ?", *q.PriceMax)
	}

	var items []model.Product
	err := tx.Order(sortColumn(q.SortBy) + " " + sortDirection(q.Order)).
		Offset(q.Skip).
		Limit(q.Limit).
		Find(&items).Error
	if err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

func (r *ProductGormRepository) ListRelated(ctx context.Context, productID int64, categoryID int64, limit int) ([]model.Product, error) {
	var items []model.Product
	err := r.db.WithContext(ctx).
		Select(productColumnsWithoutPhoto).
		Preload("Category").
		Where("category_id = ? AND id <> ?", categoryID, productID).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

// 名前の部分一致（大文字小文字を区別しない）。カテゴリで任意に絞る。
func (r *ProductGormRepository) Search(ctx context.Context, name string, categoryID *int64) ([]model.Product, error) {
	tx := r.db.WithContext(ctx).
		Select(productColumnsWithoutPhoto).
		Preload("Category").
		Where("name ILIKE ?", "%"+name+"%")

	if categoryID != nil {
		tx = tx.Where("category_id = ?", *categoryID)
	}

	var items []model.Product
	if err := tx.Find(&items).Error; err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

func (r *ProductGormRepository) DistinctCategoryIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Distinct("category_id").
		Order("category_id asc").
		Pluck("category_id", &ids).Error
	if err != nil {
		return []int64{}, err
	}
	return ids, nil
}

func (r *ProductGormRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ?", categoryID).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":               p.Name,
		"description":        p.Description,
		"price":              p.Price,
		"category_id":        p.CategoryID,
		"quantity":           p.Quantity,
		"shipping":           p.Shipping,
		"photo":              p.Photo,
		"photo_content_type": p.PhotoContentType,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 販売時の在庫減算。1商品1回のUPDATEで quantity を減らし sold を増やす。
// 在庫充足のガードは置かない（同時注文の売り越しは観測された仕様のまま）。
func (r *ProductGormRepository) DecreaseQuantity(ctx context.Context, productID int64, count int64) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", count),
			"sold":     gorm.Expr("sold + ?", count),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
