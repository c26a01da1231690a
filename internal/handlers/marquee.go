package handlers

import (
	"errors"
	"net/http"
	"strings"

	"studyhub/internal/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultMarquee = "Welcome to StudyHub!"

func (h *Handler) ActiveMarquee(c echo.Context) error {
	var msg models.MarqueeMessage
	err := h.db.WithContext(c.Request().Context()).
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusOK, echo.Map{"message": defaultMarquee})
	}
	if err != nil {
		h.logger.Error("fetch marquee failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch marquee message"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg.Message})
}

// CreateMarquee stores a new message as the only active one.
func (h *Handler) CreateMarquee(c echo.Context) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Message is required"})
	}

	msg := models.MarqueeMessage{Message: text, IsActive: true}
	err := h.db.WithContext(c.Request().Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MarqueeMessage{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(&msg).Error
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create marquee message"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Marquee message created successfully", "data": msg})
}

func (h *Handler) ListMarquee(c echo.Context) error {
	var msgs []models.MarqueeMessage
	if err := h.db.WithContext(c.Request().Context()).Order("created_at DESC").Find(&msgs).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch marquee messages"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(msgs), "data": msgs})
}

// UpdateMarquee edits a message; activating it deactivates every other one.
func (h *Handler) UpdateMarquee(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Message not found"})
	}
	var req struct {
		Message  string `json:"message"`
		IsActive *bool  `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	var msg models.MarqueeMessage
	err := h.db.WithContext(c.Request().Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&msg, id).Error; err != nil {
			return err
		}
		if req.IsActive != nil && *req.IsActive {
			if err := tx.Model(&models.MarqueeMessage{}).Where("id <> ? AND is_active = ?", id, true).Update("is_active", false).Error; err != nil {
				return err
			}
		}
		if text := strings.TrimSpace(req.Message); text != "" {
			msg.Message = text
		}
		if req.IsActive != nil {
			msg.IsActive = *req.IsActive
		}
		return tx.Save(&msg).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Message not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update marquee message"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Marquee message updated successfully", "data": msg})
}

func (h *Handler) DeleteMarquee(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Message not found"})
	}
	res := h.db.WithContext(c.Request().Context()).Delete(&models.MarqueeMessage{}, id)
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete marquee message"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Message not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Marquee message deleted successfully"})
}
