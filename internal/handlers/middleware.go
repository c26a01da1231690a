package handlers

import (
	"errors"
	"net/http"

	"studyhub/internal/models"
	"studyhub/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const userContextKey = "user"

// UserAuth resolves the session cookie to a stored user.
func (h *Handler) UserAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(services.TokenCookie)
		if err != nil || cookie.Value == "" {
			return fail(c, http.StatusUnauthorized, "Not authorized. Please login.")
		}

		claims, err := h.tokens.Verify(cookie.Value)
		if errors.Is(err, services.ErrTokenExpired) {
			return fail(c, http.StatusUnauthorized, "Session expired. Please login again.")
		}
		if err != nil {
			return fail(c, http.StatusUnauthorized, "Invalid token. Please login again.")
		}

		var user models.User
		err = h.db.WithContext(c.Request().Context()).Where("email = ?", claims.Email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "User not found. Please register.")
		}
		if err != nil {
			h.logger.Error("auth lookup failed", zap.Error(err))
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}

		c.Set(userContextKey, &user)
		return next(c)
	}
}

// IsAdmin must run after UserAuth.
func (h *Handler) IsAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := currentUser(c)
		if user == nil {
			return fail(c, http.StatusUnauthorized, "Not authorized, please login")
		}
		if !user.IsAdmin() {
			return fail(c, http.StatusForbidden, "Access denied. Only Admin can perform this action")
		}
		return next(c)
	}
}

func currentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
