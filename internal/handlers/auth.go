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

type credentials struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type codeRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (h *Handler) setSessionCookie(c echo.Context, token string, maxAge int) {
	sameSite := http.SameSiteStrictMode
	if h.secureCookies {
		sameSite = http.SameSiteNoneMode
	}
	c.SetCookie(&http.Cookie{
		Name:     services.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: sameSite,
		MaxAge:   maxAge,
	})
}

func (h *Handler) sendCode(c echo.Context, to, subject, heading, code string) error {
	body, err := services.RenderCodeEmail(heading, code)
	if err != nil {
		return err
	}
	return h.mailer.Send(c.Request().Context(), to, subject, body)
}

func sessionPayload(message string, user *models.User) echo.Map {
	return echo.Map{
		"success":           true,
		"message":           message,
		"id":                user.ID,
		"email":             user.Email,
		"fullName":          user.FullName,
		"isAccountVerified": user.IsAccountVerified,
		"role":              user.Role,
	}
}

func (h *Handler) Register(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Details are required")
	}

	db := h.db.WithContext(c.Request().Context())
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return h.serverError(c, "Failed to register", err)
	}
	if count > 0 {
		return fail(c, http.StatusBadRequest, "User already exists")
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		return h.serverError(c, "Failed to register", err)
	}
	code, err := services.GenerateCode(6)
	if err != nil {
		return h.serverError(c, "Failed to register", err)
	}

	pending := models.PendingUser{
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  hash,
		OTP:       code,
		ExpiresAt: time.Now().Add(services.OTPTTL),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", req.Email).Delete(&models.PendingUser{}).Error; err != nil {
			return err
		}
		return tx.Create(&pending).Error
	})
	if err != nil {
		return h.serverError(c, "Failed to register", err)
	}

	if err := h.sendCode(c, req.Email, "Welcome to StudyHub - Verify Your Email", "Account Verification", code); err != nil {
		return h.serverError(c, "Failed to send verification email", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Verification email sent"})
}

func (h *Handler) VerifyAndCreateUser(c echo.Context) error {
	var req codeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.OTP == "" {
		return fail(c, http.StatusBadRequest, "Email and OTP are required")
	}

	db := h.db.WithContext(c.Request().Context())
	var pending models.PendingUser
	if err := db.Where("email = ?", req.Email).First(&pending).Error; err != nil || pending.OTP != req.OTP {
		return fail(c, http.StatusBadRequest, "Invalid OTP")
	}
	if time.Now().After(pending.ExpiresAt) {
		return fail(c, http.StatusBadRequest, "OTP expired")
	}

	user := models.User{
		FullName:          pending.FullName,
		Email:             pending.Email,
		Password:          pending.Password,
		Role:              models.RoleUser,
		IsAccountVerified: true,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errUserExists
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Delete(&pending).Error
	})
	if errors.Is(err, errUserExists) {
		return fail(c, http.StatusBadRequest, "User already exists")
	}
	if err != nil {
		return h.serverError(c, "Failed to create account", err)
	}

	token, err := h.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return h.serverError(c, "Failed to create session", err)
	}
	h.setSessionCookie(c, token, int(services.TokenTTL.Seconds()))

	return c.JSON(http.StatusOK, sessionPayload("Account created successfully", &user))
}

var errUserExists = errors.New("user already exists")

func (h *Handler) ResendVerification(c echo.Context) error {
	var req codeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" {
		return fail(c, http.StatusBadRequest, "Email is required")
	}

	db := h.db.WithContext(c.Request().Context())
	var pending models.PendingUser
	if err := db.Where("email = ?", req.Email).First(&pending).Error; err != nil {
		return fail(c, http.StatusNotFound, "No pending registration for this email")
	}

	code, err := services.GenerateCode(6)
	if err != nil {
		return h.serverError(c, "Failed to resend code", err)
	}
	pending.OTP = code
	pending.ExpiresAt = time.Now().Add(services.OTPTTL)
	if err := db.Save(&pending).Error; err != nil {
		return h.serverError(c, "Failed to resend code", err)
	}

	if err := h.sendCode(c, req.Email, "New Verification Code", "New Verification Code", code); err != nil {
		return h.serverError(c, "Failed to send verification email", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "New verification code sent"})
}

func (h *Handler) Login(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "email and password is required")
	}

	var user models.User
	if err := h.db.WithContext(c.Request().Context()).Where("email = ?", req.Email).First(&user).Error; err != nil {
		return fail(c, http.StatusBadRequest, "User does not exist!")
	}
	if !services.CheckPassword(user.Password, req.Password) {
		return fail(c, http.StatusBadRequest, "Password is incorrect!")
	}

	token, err := h.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return h.serverError(c, "Failed to create session", err)
	}
	h.setSessionCookie(c, token, int(services.TokenTTL.Seconds()))

	return c.JSON(http.StatusOK, sessionPayload("Successfully logged in!", &user))
}

func (h *Handler) Logout(c echo.Context) error {
	h.setSessionCookie(c, "", -1)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Successfully logged out!"})
}

func (h *Handler) IsAuthenticated(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User is authenticated!"})
}

func (h *Handler) SendVerifyOTP(c echo.Context) error {
	user := currentUser(c)
	if user.IsAccountVerified {
		return fail(c, http.StatusBadRequest, "Account already verified")
	}

	code, err := services.GenerateCode(6)
	if err != nil {
		return h.serverError(c, "Internal server error", err)
	}
	expires := time.Now().Add(services.OTPTTL)
	user.VerifyOTP = code
	user.VerifyOTPExpireAt = &expires
	if err := h.db.WithContext(c.Request().Context()).Save(user).Error; err != nil {
		return h.serverError(c, "Internal server error", err)
	}

	if err := h.sendCode(c, user.Email, "Account Verification OTP", "Account Verification", code); err != nil {
		return h.serverError(c, "Failed to send OTP email", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Verification OTP sent to your email"})
}

func (h *Handler) SendResetOTP(c echo.Context) error {
	var req codeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" {
		return fail(c, http.StatusBadRequest, "Email is required")
	}

	db := h.db.WithContext(c.Request().Context())
	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "User not found")
	}

	code, err := services.GenerateCode(6)
	if err != nil {
		return h.serverError(c, "Internal server error", err)
	}
	expires := time.Now().Add(services.OTPTTL)
	user.ResetOTP = code
	user.ResetOTPExpireAt = &expires
	if err := db.Save(&user).Error; err != nil {
		return h.serverError(c, "Internal server error", err)
	}

	if err := h.sendCode(c, user.Email, "Password reset OTP", "Reset Password", code); err != nil {
		return h.serverError(c, "Failed to send OTP email", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "OTP sent to your email to reset password"})
}

// checkResetCode reports a client-facing message when the code does not
// match the one stored for user.
func checkResetCode(user *models.User, code string) string {
	if user.ResetOTP == "" || user.ResetOTP != code {
		return "Invalid OTP"
	}
	if user.ResetOTPExpireAt == nil || time.Now().After(*user.ResetOTPExpireAt) {
		return "OTP expired"
	}
	return ""
}

func (h *Handler) VerifyResetOTP(c echo.Context) error {
	var req codeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.OTP == "" {
		return fail(c, http.StatusBadRequest, "Email and OTP is required!")
	}

	var user models.User
	if err := h.db.WithContext(c.Request().Context()).Where("email = ?", req.Email).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "User not found")
	}
	if msg := checkResetCode(&user, req.OTP); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "OTP verified successfully"})
}

func (h *Handler) ResetPassword(c echo.Context) error {
	var req codeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		return fail(c, http.StatusBadRequest, "Email, OTP and new password are required!")
	}

	db := h.db.WithContext(c.Request().Context())
	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return fail(c, http.StatusNotFound, "User not found")
	}
	if msg := checkResetCode(&user, req.OTP); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	hash, err := services.HashPassword(req.NewPassword)
	if err != nil {
		return h.serverError(c, "Internal server error", err)
	}
	err = db.Model(&user).Updates(map[string]interface{}{
		"password":            hash,
		"reset_otp":           "",
		"reset_otp_expire_at": nil,
	}).Error
	if err != nil {
		return h.serverError(c, "Internal server error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Password updated successfully!"})
}
