package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type AuthUsecase struct {
	userRepo repo.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

// DI
func NewAuthUsecase(
	userRepo repo.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// 会員登録実行。ロールは常にUSERで作る（昇格フローは無い）。
func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (model.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "Name is required")
	}
	if !isValidEmailFormat(in.Email) {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "A valid email is required")
	}
	if len(in.Password) < 6 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "Password should be min 6 characters long")
	}
	if !strings.ContainsAny(in.Password, "0123456789") {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "Password must contain a number")
	}

	// email重複チェック
	existing, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "Email is taken")
	}
	if err != nil && err != repo.ErrUserNotFound {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hashed,
		Role:         model.RoleUser,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return model.User{}, NewHTTPError(http.StatusBadRequest, "Email is taken")
		}
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// ハッシュはjsonタグで出ないが、念のため空にして返す
	safe := *user
	safe.PasswordHash = ""
	return safe, nil
}

type SigninInput struct {
	Email    string
	Password string
}

// クライアントに返すユーザー概要（資格情報は含めない）
type SigninUser struct {
	ID    int64      `json:"id"`
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  model.Role `json:"role"`
}

type SigninOutput struct {
	Token string     `json:"token"`
	User  SigninUser `json:"user"`

	//handlerがCookieの期限に使う
	ExpiresAt time.Time `json:"-"`
}

func (u *AuthUsecase) Signin(ctx context.Context, in SigninInput) (SigninOutput, error) {
	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err == repo.ErrUserNotFound {
		return SigninOutput{}, NewHTTPError(http.StatusBadRequest, "No user found. Please signup!")
	}
	if err != nil {
		return SigninOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return SigninOutput{}, NewHTTPError(http.StatusUnauthorized, "Email and password do not match")
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, u.clock.Now())
	if err != nil {
		return SigninOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return SigninOutput{
		Token: token,
		User: SigninUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
		ExpiresAt: expiresAt,
	}, nil
}

// メールチェック
func isValidEmailFormat(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
