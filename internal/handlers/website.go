package handlers

import (
	"errors"
	"net/http"
	"strings"

	"studyhub/internal/models"
	"studyhub/internal/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type templateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Price       float64  `json:"price"`
	Contact     string   `json:"contact"`
	Category    string   `json:"category"`
}

func (r templateRequest) valid() bool {
	return r.Title != "" && r.Description != "" && r.Contact != "" && r.Category != "" &&
		len(r.Features) > 0 && r.Price >= 0
}

func (h *Handler) ListTemplates(c echo.Context) error {
	var templates []models.WebsiteTemplate
	if err := h.db.WithContext(c.Request().Context()).Order("created_at DESC").Find(&templates).Error; err != nil {
		return h.serverError(c, "Failed to fetch templates", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": templates})
}

func (h *Handler) CreateTemplate(c echo.Context) error {
	var req templateRequest
	if err := c.Bind(&req); err != nil || !req.valid() {
		return fail(c, http.StatusBadRequest, "Please provide all template fields")
	}
	tpl := models.WebsiteTemplate{
		Title:       req.Title,
		Description: req.Description,
		Features:    req.Features,
		Price:       req.Price,
		Contact:     req.Contact,
		Category:    req.Category,
	}
	if err := h.db.WithContext(c.Request().Context()).Create(&tpl).Error; err != nil {
		return h.serverError(c, "Failed to create template", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": tpl})
}

func (h *Handler) UpdateTemplate(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Template not found")
	}
	var req templateRequest
	if err := c.Bind(&req); err != nil || !req.valid() {
		return fail(c, http.StatusBadRequest, "Please provide all template fields")
	}

	db := h.db.WithContext(c.Request().Context())
	var tpl models.WebsiteTemplate
	if err := db.First(&tpl, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "Template not found")
	}
	tpl.Title = req.Title
	tpl.Description = req.Description
	tpl.Features = req.Features
	tpl.Price = req.Price
	tpl.Contact = req.Contact
	tpl.Category = req.Category
	if err := db.Save(&tpl).Error; err != nil {
		return h.serverError(c, "Failed to update template", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": tpl})
}

// DeleteTemplate also drops every order placed against the template.
func (h *Handler) DeleteTemplate(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Template not found")
	}
	err := h.db.WithContext(c.Request().Context()).Transaction(func(tx *gorm.DB) error {
		var tpl models.WebsiteTemplate
		if err := tx.First(&tpl, id).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", id).Delete(&models.WebsiteOrder{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tpl).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "Template not found")
	}
	if err != nil {
		return h.serverError(c, "Failed to delete template", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Template deleted successfully"})
}

func (h *Handler) CreateOrder(c echo.Context) error {
	var req struct {
		TemplateID   uint                 `json:"templateId"`
		CustomerInfo *models.CustomerInfo `json:"customerInfo"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	info := req.CustomerInfo
	if info == nil || info.Name == "" || info.Email == "" || info.Phone == "" || info.Business == "" {
		return fail(c, http.StatusBadRequest, "Please provide all required customer information")
	}
	info.Email = normalizeEmail(info.Email)

	db := h.db.WithContext(c.Request().Context())
	var tpl models.WebsiteTemplate
	if err := db.First(&tpl, req.TemplateID).Error; err != nil {
		return fail(c, http.StatusNotFound, "Template not found")
	}

	var pending int64
	err := db.Model(&models.WebsiteOrder{}).
		Where("customer_email = ? AND template_id = ? AND status = ?", info.Email, tpl.ID, models.RequestPending).
		Count(&pending).Error
	if err != nil {
		return h.serverError(c, "Failed to create order", err)
	}
	if pending > 0 {
		return fail(c, http.StatusBadRequest, "You already have a pending order for this template")
	}

	order := models.WebsiteOrder{
		TemplateID:   tpl.ID,
		Title:        tpl.Title,
		Price:        tpl.Price,
		CustomerInfo: *info,
		Status:       models.RequestPending,
	}
	if err := db.Create(&order).Error; err != nil {
		return h.serverError(c, "Failed to create order", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": order})
}

func (h *Handler) ListMyOrders(c echo.Context) error {
	var orders []models.WebsiteOrder
	err := h.db.WithContext(c.Request().Context()).
		Where("customer_email = ?", normalizeEmail(currentUser(c).Email)).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return h.serverError(c, "Failed to fetch orders", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": orders})
}

func (h *Handler) AdminListOrders(c echo.Context) error {
	var orders []models.WebsiteOrder
	if err := h.db.WithContext(c.Request().Context()).Order("created_at DESC").Find(&orders).Error; err != nil {
		return h.serverError(c, "Failed to fetch orders", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": orders})
}

// UpdateOrderStatus approves or rejects an order. The first approval assigns
// a four digit PIN that later status changes keep.
func (h *Handler) UpdateOrderStatus(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Order not found")
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	status := strings.ToLower(req.Status)
	if status != models.RequestApproved && status != models.RequestRejected {
		return fail(c, http.StatusBadRequest, `Invalid status. Must be "approved" or "rejected"`)
	}

	db := h.db.WithContext(c.Request().Context())
	var order models.WebsiteOrder
	if err := db.First(&order, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "Order not found")
	}
	order.Status = status
	if status == models.RequestApproved && order.PIN == "" {
		pin, err := services.GenerateCode(4)
		if err != nil {
			return h.serverError(c, "Failed to update order", err)
		}
		order.PIN = pin
	}
	if err := db.Model(&order).Updates(map[string]interface{}{"status": order.Status, "pin": order.PIN}).Error; err != nil {
		return h.serverError(c, "Failed to update order", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": order})
}
