package handlers

import (
	"net/http"
	"time"

	"studyhub/internal/models"

	"github.com/labstack/echo/v4"
)

func (h *Handler) GetUserData(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": currentUser(c)})
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var req struct {
		FullName      string `json:"fullName"`
		Phone         string `json:"phone"`
		Address       string `json:"address"`
		DateOfBirth   string `json:"dateOfBirth"`
		InstituteName string `json:"instituteName"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.FullName == "" {
		return fail(c, http.StatusBadRequest, "Full name is required")
	}

	updates := map[string]interface{}{
		"full_name":      req.FullName,
		"phone":          req.Phone,
		"address":        req.Address,
		"institute_name": req.InstituteName,
	}
	// An unparseable date leaves the stored value alone.
	if req.DateOfBirth != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if dob, err := time.Parse(layout, req.DateOfBirth); err == nil {
				updates["date_of_birth"] = dob
				break
			}
		}
	}

	user := currentUser(c)
	db := h.db.WithContext(c.Request().Context())
	if err := db.Model(user).Updates(updates).Error; err != nil {
		return h.serverError(c, "Internal server error", err)
	}
	var updated models.User
	if err := db.First(&updated, user.ID).Error; err != nil {
		return fail(c, http.StatusNotFound, "User not found")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    updated,
	})
}
