package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
	auditRepo    repo.AuditLogRepository
}

// DI
func NewCategoryUsecase(
	categoryRepo repo.CategoryRepository,
	productRepo repo.ProductRepository,
	auditRepo repo.AuditLogRepository,
) *CategoryUsecase {
	return &CategoryUsecase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		auditRepo:    auditRepo,
	}
}

func (u *CategoryUsecase) Create(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{Name: name})
	if err != nil {
		if isDuplicateKey(err) {
			return model.Category{}, NewHTTPError(http.StatusBadRequest, "Category already exists")
		}
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, categoryID int64) (model.Category, error) {
	if categoryID <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "Category does not exist")
	}

	c, err := u.categoryRepo.FindByID(ctx, categoryID)
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "Category does not exist")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, categoryID int64, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	c, err := u.Get(ctx, categoryID)
	if err != nil {
		return model.Category{}, err
	}

	c.Name = name
	if err := u.categoryRepo.Update(ctx, c); err != nil {
		if err == repo.ErrNotFound {
			return model.Category{}, NewHTTPError(http.StatusBadRequest, "Category does not exist")
		}
		if isDuplicateKey(err) {
			return model.Category{}, NewHTTPError(http.StatusBadRequest, "Category already exists")
		}
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// 参照している商品が1件でもあれば削除しない（孤児を作らない）
func (u *CategoryUsecase) Delete(ctx context.Context, actorUserID int64, categoryID int64) error {
	c, err := u.Get(ctx, categoryID)
	if err != nil {
		return err
	}

	n, err := u.productRepo.CountByCategory(ctx, c.ID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if n >= 1 {
		return NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Sorry. You cant delete %s. It has %d associated products.", c.Name, n))
	}

	if err := u.categoryRepo.Delete(ctx, c.ID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "Category does not exist")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ（削除）
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       model.AuditActionDeleteCategory,
		ResourceType: model.AuditResourceCategory,
		ResourceID:   c.ID,
		BeforeJSON:   fmt.Sprintf(`{"name":%q}`, c.Name),
		AfterJSON:    `{}`,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}
