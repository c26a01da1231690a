package handlers

import (
	"net/http"
	"testing"
	"time"

	"studyhub/internal/models"
	"studyhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_ThenVerifyCreatesUser(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"fullName": "Ada Lovelace",
		"email":    "Ada@Example.com",
		"password": "analytical",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "otp")

	var pending models.PendingUser
	require.NoError(t, ts.db.Where("email = ?", "ada@example.com").First(&pending).Error)
	require.Len(t, ts.mailer.sent, 1)
	assert.Contains(t, ts.mailer.sent[0].HTML, pending.OTP)

	rec = ts.do(t, http.MethodPost, "/api/auth/verify-and-create", map[string]string{
		"email": "ada@example.com",
		"otp":   pending.OTP,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "ada@example.com", body["email"])
	assert.Equal(t, true, body["isAccountVerified"])
	assert.Equal(t, models.RoleUser, body["role"])

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == services.TokenCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	var count int64
	ts.db.Model(&models.PendingUser{}).Count(&count)
	assert.Zero(t, count)
}

func TestRegister_RequiresAllFields(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", map[string]string{"email": "a@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.mailer.sent)
}

func TestRegister_ExistingUser(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "taken@example.com", models.RoleUser, "")

	rec := ts.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"fullName": "X", "email": "taken@example.com", "password": "pw",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", decode(t, rec)["message"])
}

func TestRegister_MailFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.mailer.err = errSMTPDown

	rec := ts.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"fullName": "X", "email": "x@example.com", "password": "pw",
	}, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestVerifyAndCreate_RejectsBadCodes(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.db.Create(&models.PendingUser{
		FullName: "P", Email: "p@example.com", Password: "hash", OTP: "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}).Error)

	rec := ts.do(t, http.MethodPost, "/api/auth/verify-and-create", map[string]string{
		"email": "p@example.com", "otp": "654321",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid OTP", decode(t, rec)["message"])

	rec = ts.do(t, http.MethodPost, "/api/auth/verify-and-create", map[string]string{
		"email": "p@example.com", "otp": "123456",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "OTP expired", decode(t, rec)["message"])
}

func TestResendVerification_RotatesCode(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, ts.db.Create(&models.PendingUser{
		FullName: "P", Email: "p@example.com", Password: "hash", OTP: "111111",
		ExpiresAt: time.Now().Add(-time.Minute),
	}).Error)

	rec := ts.do(t, http.MethodPost, "/api/auth/resend-verification", map[string]string{"email": "p@example.com"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pending models.PendingUser
	require.NoError(t, ts.db.Where("email = ?", "p@example.com").First(&pending).Error)
	assert.True(t, pending.ExpiresAt.After(time.Now()))
	require.Len(t, ts.mailer.sent, 1)
	assert.Contains(t, ts.mailer.sent[0].HTML, pending.OTP)

	rec = ts.do(t, http.MethodPost, "/api/auth/resend-verification", map[string]string{"email": "none@example.com"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "user@example.com", models.RoleUser, "correct")

	testCases := []struct {
		name     string
		body     map[string]string
		expected int
	}{
		{name: "missing password", body: map[string]string{"email": "user@example.com"}, expected: http.StatusBadRequest},
		{name: "unknown user", body: map[string]string{"email": "nobody@example.com", "password": "x"}, expected: http.StatusBadRequest},
		{name: "wrong password", body: map[string]string{"email": "user@example.com", "password": "wrong"}, expected: http.StatusBadRequest},
		{name: "success", body: map[string]string{"email": "user@example.com", "password": "correct"}, expected: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/auth/login", tc.body, nil)
			assert.Equal(t, tc.expected, rec.Code, rec.Body.String())
		})
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, services.TokenCookie, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestUserAuth(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "user@example.com", models.RoleUser, "")

	rec := ts.do(t, http.MethodPost, "/api/auth/is-auth", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/auth/is-auth", nil, &http.Cookie{Name: services.TokenCookie, Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token. Please login again.", decode(t, rec)["message"])

	ghost, err := ts.tokens.Issue("ghost@example.com", models.RoleUser)
	require.NoError(t, err)
	rec = ts.do(t, http.MethodPost, "/api/auth/is-auth", nil, &http.Cookie{Name: services.TokenCookie, Value: ghost})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/auth/is-auth", nil, ts.cookieFor(t, user))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIsAdmin_RejectsRegularUser(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "user@example.com", models.RoleUser, "")
	admin := ts.createUser(t, "admin@example.com", models.RoleAdmin, "")

	rec := ts.do(t, http.MethodGet, "/api/marquee", nil, ts.cookieFor(t, user))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/marquee", nil, ts.cookieFor(t, admin))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPasswordReset_RequiresValidCode(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "user@example.com", models.RoleUser, "old-password")

	rec := ts.do(t, http.MethodPost, "/api/auth/send-reset-otp", map[string]string{"email": "user@example.com"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user models.User
	require.NoError(t, ts.db.Where("email = ?", "user@example.com").First(&user).Error)
	require.NotEmpty(t, user.ResetOTP)

	rec = ts.do(t, http.MethodPost, "/api/auth/verify-reset-otp", map[string]string{"email": "user@example.com", "otp": "000000"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/auth/verify-reset-otp", map[string]string{"email": "user@example.com", "otp": user.ResetOTP}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/auth/reset-password", map[string]string{
		"email": "user@example.com", "otp": "000000", "newPassword": "new-password",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/auth/reset-password", map[string]string{
		"email": "user@example.com", "otp": user.ResetOTP, "newPassword": "new-password",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "user@example.com", "password": "new-password"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// the code is single use
	rec = ts.do(t, http.MethodPost, "/api/auth/verify-reset-otp", map[string]string{"email": "user@example.com", "otp": user.ResetOTP}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendVerifyOTP_AlreadyVerified(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "user@example.com", models.RoleUser, "")

	rec := ts.do(t, http.MethodPost, "/api/auth/send-verify-otp", nil, ts.cookieFor(t, user))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.mailer.sent)
}

func TestUpdateProfile(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "user@example.com", models.RoleUser, "")
	cookie := ts.cookieFor(t, user)

	rec := ts.do(t, http.MethodPut, "/api/users/edit-profile", map[string]string{"phone": "1"}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/users/edit-profile", map[string]string{
		"fullName":      "Renamed",
		"instituteName": "MIT",
		"dateOfBirth":   "2000-01-02",
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/users/user-data", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, "Renamed", got["fullName"])
	assert.Equal(t, "MIT", got["instituteName"])
	assert.NotContains(t, rec.Body.String(), "password")
}
