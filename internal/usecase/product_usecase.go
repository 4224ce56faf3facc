package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 写真は100MBまで
const MaxPhotoBytes = 100000000

// 一覧のデフォルト件数
const defaultListLimit = 6

// ファセット検索のデフォルト件数
const defaultFilterLimit = 100

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	auditRepo    repo.AuditLogRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	auditRepo repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		auditRepo:    auditRepo,
	}
}

// GET /products の入力DTO
type ListProductsInput struct {
	SortBy string
	Order  string
	Limit  int
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if in.Limit <= 0 {
		in.Limit = defaultListLimit
	}
	if in.Order == "" {
		in.Order = "asc"
	}

	items, err := u.productRepo.List(ctx, repo.ProductListQuery{
		SortBy: in.SortBy,
		Order:  in.Order,
		Limit:  in.Limit,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "Products not found")
	}
	return items, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Product not found")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 写真バイナリとContent-Typeを返す
func (u *ProductUsecase) GetPhoto(ctx context.Context, productID int64) ([]byte, string, error) {
	p, err := u.Get(ctx, productID)
	if err != nil {
		return nil, "", err
	}
	if len(p.Photo) == 0 {
		return nil, "", NewHTTPError(http.StatusBadRequest, "Photo not found")
	}
	return p.Photo, p.PhotoContentType, nil
}

// POST /products/by/search の入力DTO。
// 空のファセットは条件を付けない。priceは[min,max]の2要素。
type FilterProductsInput struct {
	Skip     int
	Limit    int
	SortBy   string
	Order    string
	Category []int64
	Price    []float64
}

// sizeはそのページの件数（呼び出し側がsize >= limitで「もっと見る」を判断する）
type FilterProductsOutput struct {
	Size int             `json:"size"`
	Data []model.Product `json:"data"`
}

func (u *ProductUsecase) Filter(ctx context.Context, in FilterProductsInput) (FilterProductsOutput, error) {
	if in.Limit <= 0 {
		in.Limit = defaultFilterLimit
	}
	if in.Skip < 0 {
		in.Skip = 0
	}
	if in.Order == "" {
		in.Order = "desc"
	}
	if len(in.Price) != 0 && len(in.Price) != 2 {
		return FilterProductsOutput{}, NewHTTPError(http.StatusBadRequest, "price filter must be [min, max]")
	}

	q := repo.ProductFilterQuery{
		CategoryIDs: in.Category,
		SortBy:      in.SortBy,
		Order:       in.Order,
		Skip:        in.Skip,
		Limit:       in.Limit,
	}
	if len(in.Price) == 2 {
		minPrice, maxPrice := in.Price[0], in.Price[1]
		q.PriceMin = &minPrice
		q.PriceMax = &maxPrice
	}

	items, err := u.productRepo.ListFiltered(ctx, q)
	if err != nil {
		return FilterProductsOutput{}, NewHTTPError(http.StatusBadRequest, "Products not found")
	}

	return FilterProductsOutput{Size: len(items), Data: items}, nil
}

// 名前の部分一致検索。categoryIDがnilなら全カテゴリ。
func (u *ProductUsecase) Search(ctx context.Context, search string, categoryID *int64) ([]model.Product, error) {
	if strings.TrimSpace(search) == "" {
		return []model.Product{}, nil
	}

	items, err := u.productRepo.Search(ctx, strings.TrimSpace(search), categoryID)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "Products not found")
	}
	return items, nil
}

// 同じカテゴリの商品（自分自身は除く）
func (u *ProductUsecase) Related(ctx context.Context, productID int64, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	p, err := u.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	items, err := u.productRepo.ListRelated(ctx, p.ID, p.CategoryID, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "Products not found")
	}
	return items, nil
}

// 商品が実際に参照しているカテゴリIDの一覧
func (u *ProductUsecase) UsedCategories(ctx context.Context) ([]int64, error) {
	ids, err := u.productRepo.DistinctCategoryIDs(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "Categories not found")
	}
	return ids, nil
}

type CreateProductInput struct {
	Name             string
	Description      string
	Price            float64
	CategoryID       int64
	Quantity         int64
	Shipping         bool
	Photo            []byte
	PhotoContentType string
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" || in.CategoryID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "All fields are required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Price must be >= 0")
	}
	if in.Quantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Quantity must be >= 0")
	}
	if len(in.Photo) > MaxPhotoBytes {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Image should be less than 100mb in size")
	}

	//カテゴリの存在チェック
	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "Category does not exist")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		Price:            in.Price,
		CategoryID:       in.CategoryID,
		Quantity:         in.Quantity,
		Shipping:         in.Shipping,
		Photo:            in.Photo,
		PhotoContentType: in.PhotoContentType,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 部分更新。nilのフィールドは既存値を保つ。
type UpdateProductInput struct {
	Name             *string
	Description      *string
	Price            *float64
	CategoryID       *int64
	Quantity         *int64
	Shipping         *bool
	Photo            []byte
	PhotoContentType string
}

func (u *ProductUsecase) Update(ctx context.Context, productID int64, in UpdateProductInput) (model.Product, error) {
	p, err := u.Get(ctx, productID)
	if err != nil {
		return model.Product{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "All fields are required")
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "Price must be >= 0")
		}
		p.Price = *in.Price
	}
	if in.CategoryID != nil {
		if _, err := u.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "Category does not exist")
		}
		p.CategoryID = *in.CategoryID
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "Quantity must be >= 0")
		}
		p.Quantity = *in.Quantity
	}
	if in.Shipping != nil {
		p.Shipping = *in.Shipping
	}
	if len(in.Photo) > 0 {
		if len(in.Photo) > MaxPhotoBytes {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "Image should be less than 100mb in size")
		}
		p.Photo = in.Photo
		p.PhotoContentType = in.PhotoContentType
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "Product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p.Photo = nil
	return p, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, actorUserID int64, productID int64) error {
	p, err := u.Get(ctx, productID)
	if err != nil {
		return err
	}

	if err := u.productRepo.Delete(ctx, p.ID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "Product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ（削除）
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       model.AuditActionDeleteProduct,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   p.ID,
		BeforeJSON:   fmt.Sprintf(`{"name":%q}`, p.Name),
		AfterJSON:    `{}`,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
