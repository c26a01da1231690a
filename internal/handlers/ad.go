package handlers

import (
	"net/http"

	"studyhub/internal/models"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListActiveAds(c echo.Context) error {
	var ads []models.Ad
	err := h.db.WithContext(c.Request().Context()).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&ads).Error
	if err != nil {
		return h.serverError(c, "Internal server error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "ads": ads})
}

func (h *Handler) CreateAd(c echo.Context) error {
	var req struct {
		Type          string `json:"type"`
		ScriptContent string `json:"scriptContent"`
		Link          string `json:"link"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	ad := models.Ad{Type: req.Type, IsActive: true}
	switch req.Type {
	case "":
		return fail(c, http.StatusBadRequest, "Ad type is required")
	case models.AdTypeScript:
		if req.ScriptContent == "" {
			return fail(c, http.StatusBadRequest, "Script content is required for script ads")
		}
		ad.ScriptContent = req.ScriptContent
	case models.AdTypeImage:
		if req.Link == "" {
			return fail(c, http.StatusBadRequest, "Link is required for image ads")
		}
		ad.Link = req.Link
	default:
		return fail(c, http.StatusBadRequest, "Ad type must be script or image")
	}

	if err := h.db.WithContext(c.Request().Context()).Create(&ad).Error; err != nil {
		return h.serverError(c, "Internal server error", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Advertisement created successfully",
		"ad":      ad,
	})
}

func (h *Handler) UpdateAdStatus(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Advertisement not found")
	}
	var req struct {
		IsActive *bool `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return fail(c, http.StatusBadRequest, "isActive is required")
	}

	db := h.db.WithContext(c.Request().Context())
	var ad models.Ad
	if err := db.First(&ad, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "Advertisement not found")
	}
	if err := db.Model(&ad).Update("is_active", *req.IsActive).Error; err != nil {
		return h.serverError(c, "Internal server error", err)
	}
	ad.IsActive = *req.IsActive

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Advertisement status updated",
		"ad":      ad,
	})
}

func (h *Handler) DeleteAd(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Advertisement not found")
	}
	res := h.db.WithContext(c.Request().Context()).Delete(&models.Ad{}, id)
	if res.Error != nil {
		return h.serverError(c, "Internal server error", res.Error)
	}
	if res.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "Advertisement not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Advertisement deleted successfully"})
}
