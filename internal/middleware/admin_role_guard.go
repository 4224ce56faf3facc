package middleware

import (
	"net/http"

	"app/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//OwnerGuardが解決したユーザーのroleがADMINかどうかを確認します。

func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawProfile := c.Get(CtxProfileKey)
			profile, ok := rawProfile.(*model.User)
			if !ok || profile == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//USERは拒否、ADMINだけ許可
			if profile.Role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("Admin resource! Access denied!"))
			}

			return next(c)
		}
	}
}
