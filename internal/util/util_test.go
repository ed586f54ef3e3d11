package util

import (
	"codequest_backend/internal/model"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Email: "jwt@example.com"}
	user.ID = "user-1"

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jwt@example.com", claims.Email)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.Error(t, err)
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 10, ParseLimit("", 10, 100))
	assert.Equal(t, 10, ParseLimit("abc", 10, 100))
	assert.Equal(t, 10, ParseLimit("-3", 10, 100))
	assert.Equal(t, 25, ParseLimit("25", 10, 100))
	assert.Equal(t, 100, ParseLimit("5000", 10, 100))
}

func TestHandleError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: score out of range", ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: lesson \"x\"", ErrNotFound), http.StatusNotFound},
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrEmailRegistered, http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleError(c, tc.err)

		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		var body Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.code, body.Code)
		assert.NotEmpty(t, body.Message)
	}
}

func TestFileHelpers(t *testing.T) {
	assert.True(t, HasAllowedExtension("avatar.JPG", AllowedImageExtensions))
	assert.False(t, HasAllowedExtension("avatar.svg", AllowedImageExtensions))
	assert.True(t, IsImage("image/png"))
	assert.False(t, IsImage("application/octet-stream"))

	mimeType, err := ValidateMimeType(strings.NewReader("\x89PNG\r\n\x1a\n0000"), []string{MimeImage})
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)

	_, err = ValidateMimeType(strings.NewReader("just text"), []string{MimeImage})
	assert.Error(t, err)
}
