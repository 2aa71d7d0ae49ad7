package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestFormatBindingError_UsesJSONFieldNames(t *testing.T) {
	type registration struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	SetupValidator()
	gin.SetMode(gin.TestMode)

	var message string
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req registration
		if err := c.ShouldBindJSON(&req); err != nil {
			message = FormatBindingError(err)
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	body := strings.NewReader(`{"email": "not-an-email", "password": "short"}`)
	req := httptest.NewRequest(http.MethodPost, "/test", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, message, "email: invalid email format")
	assert.Contains(t, message, "password: must be at least 8 characters")
}

func TestFormatBindingError_PassesThroughNonValidationErrors(t *testing.T) {
	err := errors.New("unexpected EOF")
	assert.Equal(t, "unexpected EOF", FormatBindingError(err))
}
