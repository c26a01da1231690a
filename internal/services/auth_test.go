package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret")

	raw, err := svc.Issue("a@example.com", "admin")
	require.NoError(t, err)

	claims, err := svc.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret")
	svc.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	raw, err := svc.Issue("a@example.com", "user")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_WrongSecret(t *testing.T) {
	raw, err := NewTokenService("secret").Issue("a@example.com", "user")
	require.NoError(t, err)

	_, err = NewTokenService("other").Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}

func TestGenerateCode_Length(t *testing.T) {
	for _, digits := range []int{4, 6} {
		for i := 0; i < 50; i++ {
			code, err := GenerateCode(digits)
			require.NoError(t, err)
			assert.Len(t, code, digits)
			assert.False(t, strings.HasPrefix(code, "0"))
		}
	}
}

func TestRenderCodeEmail_EscapesHeading(t *testing.T) {
	html, err := RenderCodeEmail("<b>Reset</b>", "123456")
	require.NoError(t, err)

	assert.Contains(t, html, "123456")
	assert.Contains(t, html, "&lt;b&gt;Reset&lt;/b&gt;")
}
