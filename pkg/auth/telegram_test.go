package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initData(user string, authDate int64) string {
	v := url.Values{}
	v.Set("user", user)
	v.Set("auth_date", strconv.FormatInt(authDate, 10))
	return v.Encode()
}

func TestExtractTelegramData(t *testing.T) {
	data, err := ExtractTelegramData(initData(`{"id":42,"username":"ann","first_name":"Ann","last_name":"Lee"}`, 1710093600))
	require.NoError(t, err)

	assert.Equal(t, int64(42), data.ID)
	assert.Equal(t, "ann", data.Username)
	assert.Equal(t, "Ann Lee", data.Name())
	assert.Equal(t, time.Date(2024, time.March, 10, 18, 0, 0, 0, time.UTC), data.AuthDate)

	_, err = ExtractTelegramData("user=%7B%7D")
	assert.Error(t, err)

	_, err = ExtractTelegramData(initData("not json", 1710093600))
	assert.Error(t, err)
}

func TestTelegramAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		debugMode      bool
		header         string
		expectedStatus int
	}{
		{
			name:           "Missing header",
			debugMode:      true,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong scheme",
			debugMode:      true,
			header:         "Bearer abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unsigned data rejected outside debug mode",
			header:         "Telegram " + initData(`{"id":42}`, time.Now().Unix()),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Debug mode trusts the payload",
			debugMode:      true,
			header:         "Telegram " + initData(`{"id":42}`, time.Now().Unix()),
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(NewTelegramAuth("token", tt.debugMode).TelegramAuthMiddleware())
			router.GET("/", func(c *gin.Context) {
				user, ok := UserFromContext(c)
				require.True(t, ok)
				c.JSON(http.StatusOK, gin.H{"id": user.ID})
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
