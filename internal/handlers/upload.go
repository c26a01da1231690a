package handlers

import (
	"net/http"
	"strings"

	"studyhub/internal/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (h *Handler) UploadPDF(c echo.Context) error {
	user := currentUser(c)

	file, err := c.FormFile("pdf")
	if err != nil {
		return fail(c, http.StatusBadRequest, "No file uploaded")
	}
	if file.Size > h.maxUpload {
		return fail(c, http.StatusBadRequest, "File size exceeds upload limit")
	}
	if ct := file.Header.Get("Content-Type"); ct != "application/pdf" {
		return fail(c, http.StatusBadRequest, "Only PDF files are allowed")
	}

	category := c.FormValue("category")
	if !models.IsValidCategory(category) {
		return fail(c, http.StatusBadRequest, "Invalid category")
	}
	courseName := c.FormValue("courseName")
	instituteName := c.FormValue("instituteName")
	if courseName == "" || instituteName == "" {
		return fail(c, http.StatusBadRequest, "Course and institute name are required")
	}

	src, err := file.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "File upload failed")
	}
	defer src.Close()

	stored, err := h.storage.UploadPDF(c.Request().Context(), src)
	if err != nil {
		return h.serverError(c, "Server error", err)
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		title = file.Filename
	}
	pdf := models.PDF{
		Title:         title,
		URL:           stored.URL,
		PublicID:      stored.PublicID,
		Size:          file.Size,
		Category:      category,
		CourseName:    courseName,
		InstituteName: instituteName,
		UserID:        user.ID,
	}
	if err := h.db.WithContext(c.Request().Context()).Create(&pdf).Error; err != nil {
		// Row failed after the upload succeeded, so drop the orphaned asset.
		if derr := h.storage.Delete(c.Request().Context(), stored.PublicID); derr != nil {
			h.logger.Warn("orphaned upload", zap.String("public_id", stored.PublicID), zap.Error(derr))
		}
		return h.serverError(c, "Server error", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "PDF uploaded successfully",
		"data":    pdf,
	})
}

func (h *Handler) ListMyPDFs(c echo.Context) error {
	var pdfs []models.PDF
	err := h.db.WithContext(c.Request().Context()).
		Where("user_id = ?", currentUser(c).ID).
		Order("created_at DESC").
		Find(&pdfs).Error
	if err != nil {
		return h.serverError(c, "Server error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": pdfs})
}

func (h *Handler) DeleteMyPDF(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "PDF not found")
	}
	var pdf models.PDF
	if err := h.db.WithContext(c.Request().Context()).First(&pdf, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "PDF not found")
	}
	user := currentUser(c)
	if pdf.UserID != user.ID && !user.IsAdmin() {
		return fail(c, http.StatusForbidden, "You can only delete your own PDFs")
	}
	if err := h.removePDF(c, &pdf); err != nil {
		return h.serverError(c, "Server error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "PDF deleted successfully"})
}
