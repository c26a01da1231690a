package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"studyhub/internal/models"
	"studyhub/internal/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const coursePINTTL = 7 * 24 * time.Hour

func (h *Handler) ListCourses(c echo.Context) error {
	courses, err := h.allCourses(c)
	if err != nil {
		return h.serverError(c, "Failed to fetch courses", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": courses})
}

func (h *Handler) AdminListCourses(c echo.Context) error {
	courses, err := h.allCourses(c)
	if err != nil {
		return h.serverError(c, "Failed to fetch courses", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"courses": courses}})
}

func (h *Handler) allCourses(c echo.Context) ([]models.Course, error) {
	var courses []models.Course
	err := h.db.WithContext(c.Request().Context()).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (h *Handler) CreateCourse(c echo.Context) error {
	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price"`
		Duration    int     `json:"duration"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" || req.Description == "" || req.Category == "" {
		return fail(c, http.StatusBadRequest, "Title, description and category are required")
	}
	if req.Price < 0 || req.Duration < 1 {
		return fail(c, http.StatusBadRequest, "Price must be non-negative and duration at least 1")
	}

	course := models.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Duration:    req.Duration,
	}
	if err := h.db.WithContext(c.Request().Context()).Create(&course).Error; err != nil {
		return h.serverError(c, "Failed to create course", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"course": course}})
}

// DeleteCourse also removes every request made for the course.
func (h *Handler) DeleteCourse(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return fail(c, http.StatusNotFound, "Course not found")
	}

	err := h.db.WithContext(c.Request().Context()).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, id).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.CourseRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "Course not found")
	}
	if err != nil {
		return h.serverError(c, "Failed to delete course", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Course deleted successfully"})
}

func (h *Handler) RequestCourse(c echo.Context) error {
	id, ok := paramID(c, "courseId")
	if !ok {
		return fail(c, http.StatusNotFound, "Course not found")
	}

	db := h.db.WithContext(c.Request().Context())
	var course models.Course
	if err := db.First(&course, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "Course not found")
	}

	var req struct {
		UserInfo *models.RequesterInfo `json:"userInfo"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	info := req.UserInfo
	if info == nil || strings.TrimSpace(info.Name) == "" || strings.TrimSpace(info.Institute) == "" ||
		strings.TrimSpace(info.Address) == "" || strings.TrimSpace(info.Phone) == "" {
		return fail(c, http.StatusBadRequest, "Please provide all required user information")
	}

	user := currentUser(c)
	request := models.CourseRequest{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   models.RequestPending,
		UserInfo: *info,
	}
	if err := db.Create(&request).Error; err != nil {
		return h.serverError(c, "Failed to request course", err)
	}
	request.User = user
	request.Course = &course

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"request": request}})
}

func (h *Handler) ListMyCourseRequests(c echo.Context) error {
	var requests []models.CourseRequest
	err := h.db.WithContext(c.Request().Context()).
		Preload("Course").
		Where("user_id = ?", currentUser(c).ID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return h.serverError(c, "Failed to fetch requests", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"requests": requests}})
}

func (h *Handler) AdminListCourseRequests(c echo.Context) error {
	var requests []models.CourseRequest
	err := h.db.WithContext(c.Request().Context()).
		Preload("User").
		Preload("Course").
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return h.serverError(c, "Failed to fetch requests", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"requests": requests}})
}

// ProcessCourseRequest approves or rejects a pending request; approval issues
// a six digit access PIN valid for a week.
func (h *Handler) ProcessCourseRequest(c echo.Context) error {
	id, ok := paramID(c, "requestId")
	if !ok {
		return fail(c, http.StatusNotFound, "Request not found")
	}
	var req struct {
		Action string `json:"action"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	db := h.db.WithContext(c.Request().Context())
	var request models.CourseRequest
	if err := db.Preload("User").Preload("Course").First(&request, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "Request not found")
	}
	if request.Status != models.RequestPending {
		return fail(c, http.StatusBadRequest, "Request has already been processed")
	}

	switch req.Action {
	case "approve":
		pin, err := services.GenerateCode(6)
		if err != nil {
			return h.serverError(c, "Failed to process request", err)
		}
		expires := time.Now().Add(coursePINTTL)
		request.Status = models.RequestApproved
		request.PIN = pin
		request.PINExpires = &expires
	case "reject":
		request.Status = models.RequestRejected
	default:
		return fail(c, http.StatusBadRequest, "Invalid action")
	}

	err := db.Model(&models.CourseRequest{}).Where("id = ?", request.ID).Updates(map[string]interface{}{
		"status":      request.Status,
		"pin":         request.PIN,
		"pin_expires": request.PINExpires,
	}).Error
	if err != nil {
		return h.serverError(c, "Failed to process request", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"request": request}})
}
