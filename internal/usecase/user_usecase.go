package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type UserUsecase struct {
	userRepo  repo.UserRepository
	orderRepo repo.OrderRepository
	hasher    PasswordHasher
}

// DI
func NewUserUsecase(userRepo repo.UserRepository, orderRepo repo.OrderRepository, hasher PasswordHasher) *UserUsecase {
	return &UserUsecase{
		userRepo:  userRepo,
		orderRepo: orderRepo,
		hasher:    hasher,
	}
}

func (u *UserUsecase) GetProfile(ctx context.Context, userID int64) (model.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "User not found")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	safe := *user
	safe.PasswordHash = ""
	return safe, nil
}

type UpdateProfileInput struct {
	Name     string
	Password string
}

// 名前は必須。パスワードは空なら変更しない。ロールは変更できない。
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (model.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "User not found")
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user.Name = strings.TrimSpace(in.Name)

	if in.Password != "" {
		if len(in.Password) < 6 {
			return model.User{}, NewHTTPError(http.StatusBadRequest, "Password should be min 6 characters long")
		}
		hashed, err := u.hasher.Hash(in.Password)
		if err != nil {
			return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		user.PasswordHash = hashed
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		if err == repo.ErrUserNotFound {
			return model.User{}, NewHTTPError(http.StatusBadRequest, "User not found")
		}
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "User update failed")
	}

	safe := *user
	safe.PasswordHash = ""
	return safe, nil
}

// ユーザーの注文履歴（新しい順）
func (u *UserUsecase) PurchaseHistory(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}
