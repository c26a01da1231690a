package handlers

import (
	"net/http"
	"strconv"

	"studyhub/internal/config"
	"studyhub/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	db            *gorm.DB
	tokens        *services.TokenService
	mailer        services.Mailer
	storage       services.FileStorage
	logger        *zap.Logger
	secureCookies bool
	maxUpload     int64
}

func NewHandler(db *gorm.DB, cfg *config.Config, tokens *services.TokenService, mailer services.Mailer, storage services.FileStorage, logger *zap.Logger) *Handler {
	return &Handler{
		db:            db,
		tokens:        tokens,
		mailer:        mailer,
		storage:       storage,
		logger:        logger,
		secureCookies: cfg.IsProduction(),
		maxUpload:     cfg.MaxUploadSize,
	}
}

func RegisterRoutes(api *echo.Group, h *Handler) {
	auth := h.UserAuth
	admin := h.IsAdmin

	a := api.Group("/auth")
	a.POST("/register", h.Register)
	a.POST("/login", h.Login)
	a.POST("/logout", h.Logout)
	a.POST("/send-verify-otp", h.SendVerifyOTP, auth)
	a.POST("/verify-and-create", h.VerifyAndCreateUser)
	a.POST("/resend-verification", h.ResendVerification)
	a.POST("/is-auth", h.IsAuthenticated, auth)
	a.POST("/send-reset-otp", h.SendResetOTP)
	a.POST("/verify-reset-otp", h.VerifyResetOTP)
	a.POST("/reset-password", h.ResetPassword)

	u := api.Group("/users")
	u.GET("/user-data", h.GetUserData, auth)
	u.PUT("/edit-profile", h.UpdateProfile, auth)

	up := api.Group("/uploads")
	up.POST("/upload", h.UploadPDF, auth)
	up.GET("/pdfs", h.ListMyPDFs, auth)
	up.DELETE("/pdfs/:id", h.DeleteMyPDF, auth)

	p := api.Group("/pdfs")
	for path, category := range categoryRoutes {
		p.GET(path, h.ListByCategory(category))
	}
	p.GET("/random", h.RandomPDFs)
	p.POST("/notes/:noteId/like", h.LikePDF)
	p.GET("/pdfs", h.AdminListPDFs, auth, admin)
	p.GET("/pdfs/:id", h.AdminGetUser, auth, admin)
	p.PUT("/pdf/:id", h.AdminUpdatePDF, auth, admin)
	p.DELETE("/pdf/:id", h.AdminDeletePDF, auth, admin)
	p.DELETE("/users/:id", h.AdminDeleteUserAndPDFs, auth, admin)

	ads := api.Group("/ads")
	ads.GET("", h.ListActiveAds)
	ads.POST("", h.CreateAd, auth, admin)
	ads.PUT("/:id/status", h.UpdateAdStatus, auth, admin)
	ads.DELETE("/:id", h.DeleteAd, auth, admin)

	m := api.Group("/marquee")
	m.GET("/active", h.ActiveMarquee)
	m.POST("", h.CreateMarquee, auth, admin)
	m.GET("", h.ListMarquee, auth, admin)
	m.PUT("/:id", h.UpdateMarquee, auth, admin)
	m.DELETE("/:id", h.DeleteMarquee, auth, admin)

	c := api.Group("/courses")
	c.GET("", h.ListCourses)
	c.POST("/request/:courseId", h.RequestCourse, auth)
	c.GET("/requests", h.ListMyCourseRequests, auth)
	c.GET("/admin", h.AdminListCourses, auth, admin)
	c.POST("", h.CreateCourse, auth, admin)
	c.DELETE("/:id", h.DeleteCourse, auth, admin)
	c.GET("/admin/requests", h.AdminListCourseRequests, auth, admin)
	c.PUT("/admin/requests/:requestId", h.ProcessCourseRequest, auth, admin)

	w := api.Group("/website")
	w.GET("/templates", h.ListTemplates)
	w.POST("/templates/orders", h.CreateOrder, auth)
	w.GET("/orders", h.ListMyOrders, auth)
	w.POST("/templates", h.CreateTemplate, auth, admin)
	w.PUT("/templates/:id", h.UpdateTemplate, auth, admin)
	w.DELETE("/templates/:id", h.DeleteTemplate, auth, admin)
	w.GET("/admin/orders", h.AdminListOrders, auth, admin)
	w.PUT("/admin/orders/:id", h.UpdateOrderStatus, auth, admin)
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

func (h *Handler) serverError(c echo.Context, message string, err error) error {
	h.logger.Error(message,
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}

func paramID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
