package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newUserUC(uRepo *UserRepoMock, oRepo *OrderRepoMock, hasher *HasherMock) *usecase.UserUsecase {
	if uRepo == nil {
		uRepo = new(UserRepoMock)
	}
	if oRepo == nil {
		oRepo = new(OrderRepoMock)
	}
	if hasher == nil {
		hasher = new(HasherMock)
	}
	return usecase.NewUserUsecase(uRepo, oRepo, hasher)
}

func TestUserUsecase_GetProfile_ScrubsCredentials(t *testing.T) {
	ctx := context.Background()

	uRepo := new(UserRepoMock)
	uc := newUserUC(uRepo, nil, nil)

	uRepo.On("FindByID", mock.Anything, int64(1)).
		Return(&model.User{ID: 1, Name: "Alice", PasswordHash: "hashed"}, nil)

	user, err := uc.GetProfile(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Empty(t, user.PasswordHash)
}

func TestUserUsecase_UpdateProfile_NameRequired(t *testing.T) {
	uc := newUserUC(nil, nil, nil)

	_, err := uc.UpdateProfile(context.Background(), 1, usecase.UpdateProfileInput{Name: " "})
	assertErrContains(t, err, "Name is required")
}

func TestUserUsecase_UpdateProfile_EmptyPasswordKeepsOld(t *testing.T) {
	ctx := context.Background()

	uRepo := new(UserRepoMock)
	hasher := new(HasherMock)
	uc := newUserUC(uRepo, nil, hasher)

	uRepo.On("FindByID", mock.Anything, int64(1)).
		Return(&model.User{ID: 1, Name: "Old", PasswordHash: "oldhash"}, nil)

	uRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Name == "New" && u.PasswordHash == "oldhash"
	})).Return(nil)

	user, err := uc.UpdateProfile(ctx, 1, usecase.UpdateProfileInput{Name: "New"})
	assert.NoError(t, err)
	assert.Equal(t, "New", user.Name)

	hasher.AssertNotCalled(t, "Hash", mock.Anything)
	uRepo.AssertExpectations(t)
}

func TestUserUsecase_UpdateProfile_ShortPassword(t *testing.T) {
	ctx := context.Background()

	uRepo := new(UserRepoMock)
	uc := newUserUC(uRepo, nil, nil)

	uRepo.On("FindByID", mock.Anything, int64(1)).
		Return(&model.User{ID: 1, Name: "Old"}, nil)

	_, err := uc.UpdateProfile(ctx, 1, usecase.UpdateProfileInput{Name: "New", Password: "p1"})
	assertErrContains(t, err, "min 6 characters")
}

func TestUserUsecase_UpdateProfile_RehashesNewPassword(t *testing.T) {
	ctx := context.Background()

	uRepo := new(UserRepoMock)
	hasher := new(HasherMock)
	uc := newUserUC(uRepo, nil, hasher)

	uRepo.On("FindByID", mock.Anything, int64(1)).
		Return(&model.User{ID: 1, Name: "Old", PasswordHash: "oldhash"}, nil)
	hasher.On("Hash", "newpass1").Return("newhash", nil)

	uRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.PasswordHash == "newhash"
	})).Return(nil)

	user, err := uc.UpdateProfile(ctx, 1, usecase.UpdateProfileInput{Name: "New", Password: "newpass1"})
	assert.NoError(t, err)
	//返すときはハッシュを消す
	assert.Empty(t, user.PasswordHash)

	uRepo.AssertExpectations(t)
	hasher.AssertExpectations(t)
}

func TestUserUsecase_PurchaseHistory_NewestFirst(t *testing.T) {
	ctx := context.Background()

	oRepo := new(OrderRepoMock)
	uc := newUserUC(nil, oRepo, nil)

	oRepo.On("ListByUserID", mock.Anything, int64(1)).
		Return([]model.Order{{ID: 2}, {ID: 1}}, nil)

	orders, err := uc.PurchaseHistory(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, int64(2), orders[0].ID)
}
