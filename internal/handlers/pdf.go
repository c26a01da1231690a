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

const randomSampleSize = 20

// categoryRoutes maps public listing paths to the category they serve.
var categoryRoutes = map[string]string{
	"/notes":         models.CategoryNote,
	"/slides":        models.CategorySlide,
	"/chowtha":       models.CategoryChowtha,
	"/lab-report":    models.CategoryLabReport,
	"/book":          models.CategoryBook,
	"/prev-question": models.CategoryPrevQuestion,
}

var categoryKeys = map[string]string{
	models.CategoryNote:         "notes",
	models.CategorySlide:        "slides",
	models.CategoryChowtha:      "chowthas",
	models.CategoryLabReport:    "labReports",
	models.CategoryBook:         "books",
	models.CategoryPrevQuestion: "questions",
}

func (h *Handler) ListByCategory(category string) echo.HandlerFunc {
	key := categoryKeys[category]
	return func(c echo.Context) error {
		var pdfs []models.PDF
		err := h.db.WithContext(c.Request().Context()).
			Where("category = ?", category).
			Order("created_at DESC").
			Find(&pdfs).Error
		if err != nil {
			return h.serverError(c, "Server error", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{key: pdfs}})
	}
}

func (h *Handler) RandomPDFs(c echo.Context) error {
	var pdfs []models.PDF
	err := h.db.WithContext(c.Request().Context()).
		Order("RANDOM()").
		Limit(randomSampleSize).
		Find(&pdfs).Error
	if err != nil {
		return h.serverError(c, "Server error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"pdfs": pdfs}})
}

func clientIP(c echo.Context) string {
	ip := strings.TrimSpace(c.RealIP())
	if ip == "::1" || ip == "::ffff:127.0.0.1" || ip == "127.0.0.1" {
		return "localhost"
	}
	return ip
}

var errAlreadyLiked = errors.New("already liked")

func (h *Handler) LikePDF(c echo.Context) error {
	id, ok := paramID(c, "noteId")
	if !ok {
		return fail(c, http.StatusNotFound, "Note not found")
	}
	ip := clientIP(c)

	var pdf models.PDF
	err := h.db.WithContext(c.Request().Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pdf, id).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.PDFLike{}).Where("pdf_id = ? AND ip = ?", id, ip).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errAlreadyLiked
		}
		if err := tx.Create(&models.PDFLike{PDFID: id, IP: ip}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyLiked
			}
			return err
		}
		if err := tx.Model(&pdf).UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
			return err
		}
		return tx.First(&pdf, id).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fail(c, http.StatusNotFound, "Note not found")
	case errors.Is(err, errAlreadyLiked):
		return fail(c, http.StatusBadRequest, "You already liked this note")
	case err != nil:
		return h.serverError(c, "Server error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"likes": pdf.Likes}})
}

func (h *Handler) AdminListPDFs(c echo.Context) error {
	var pdfs []models.PDF
	if err := h.db.WithContext(c.Request().Context()).Order("created_at DESC").Find(&pdfs).Error; err != nil {
		return h.serverError(c, "Server error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": pdfs})
}

// AdminGetUser returns the uploader of a PDF together with everything they uploaded.
func (h *Handler) AdminGetUser(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "PDF not found")
	}

	db := h.db.WithContext(c.Request().Context())
	var pdf models.PDF
	if err := db.First(&pdf, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "PDF not found")
	}
	var user models.User
	if err := db.First(&user, pdf.UserID).Error; err != nil {
		return fail(c, http.StatusNotFound, "User not found")
	}
	var pdfs []models.PDF
	if err := db.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&pdfs).Error; err != nil {
		return h.serverError(c, "Server error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"user": user, "pdfs": pdfs}})
}

func (h *Handler) AdminUpdatePDF(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "PDF not found")
	}
	var req struct {
		Title         string `json:"title"`
		Category      string `json:"category"`
		CourseName    string `json:"courseName"`
		InstituteName string `json:"instituteName"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Category != "" && !models.IsValidCategory(req.Category) {
		return fail(c, http.StatusBadRequest, "Invalid category")
	}

	db := h.db.WithContext(c.Request().Context())
	var pdf models.PDF
	if err := db.First(&pdf, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "PDF not found")
	}
	// Updates skips zero-valued fields, so omitted ones keep their value.
	err := db.Model(&pdf).Updates(models.PDF{
		Title:         req.Title,
		Category:      req.Category,
		CourseName:    req.CourseName,
		InstituteName: req.InstituteName,
	}).Error
	if err != nil {
		return h.serverError(c, "Server error", err)
	}
	if err := db.First(&pdf, id).Error; err != nil {
		return h.serverError(c, "Server error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "PDF updated successfully", "data": pdf})
}

func (h *Handler) AdminDeletePDF(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "PDF not found")
	}
	var pdf models.PDF
	if err := h.db.WithContext(c.Request().Context()).First(&pdf, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "PDF not found")
	}
	if err := h.removePDF(c, &pdf); err != nil {
		return h.serverError(c, "Server error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "PDF deleted successfully"})
}

// AdminDeleteUserAndPDFs removes a user, their stored files and their rows.
func (h *Handler) AdminDeleteUserAndPDFs(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "User not found")
	}

	ctx := c.Request().Context()
	db := h.db.WithContext(ctx)
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "User not found")
	}
	var pdfs []models.PDF
	if err := db.Where("user_id = ?", user.ID).Find(&pdfs).Error; err != nil {
		return h.serverError(c, "Server error", err)
	}

	for _, pdf := range pdfs {
		if err := h.storage.Delete(ctx, pdf.PublicID); err != nil {
			return h.serverError(c, "Failed to delete stored file", err)
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(pdfs))
		for _, pdf := range pdfs {
			ids = append(ids, pdf.ID)
		}
		if len(ids) > 0 {
			if err := tx.Where("pdf_id IN ?", ids).Delete(&models.PDFLike{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.PDF{}, ids).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.CourseRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return h.serverError(c, "Server error", err)
	}

	h.logger.Info("user removed", zap.Uint("user_id", user.ID), zap.Int("pdfs", len(pdfs)))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "User and associated PDFs deleted successfully",
		"data":    echo.Map{"deletedPdfs": len(pdfs)},
	})
}

func (h *Handler) removePDF(c echo.Context, pdf *models.PDF) error {
	ctx := c.Request().Context()
	if err := h.storage.Delete(ctx, pdf.PublicID); err != nil {
		return err
	}
	return h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pdf_id = ?", pdf.ID).Delete(&models.PDFLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(pdf).Error
	})
}
