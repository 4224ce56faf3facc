package middleware

import (
	"net/http"
	"strconv"

	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// :userIdのユーザーを解決し、tokenの本人と一致するか確認する。
// 一致したユーザーをcontextに入れる（後段のAdminRoleGuardとhandlerが使う）。
// identity解決の後・保護対象handlerの前に必ず挟む。
func OwnerGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_idを取得する
			rawUserID := c.Get(CtxUserIDKey)
			authUserID, ok := rawUserID.(int64)
			if !ok || authUserID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//パスの:userIdを解決する
			pathUserID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
			if err != nil || pathUserID <= 0 {
				return c.JSON(http.StatusBadRequest, errorJSON("User not found"))
			}

			profile, err := userRepo.FindByID(c.Request().Context(), pathUserID)
			if err != nil || profile == nil {
				return c.JSON(http.StatusBadRequest, errorJSON("User not found"))
			}

			//本人以外は拒否（失敗時は固定メッセージで閉じる）
			if profile.ID != authUserID {
				return c.JSON(http.StatusForbidden, errorJSON("Access denied!"))
			}

			c.Set(CtxProfileKey, profile)

			return next(c)
		}
	}
}
