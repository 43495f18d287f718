package http

import (
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// createTestContext creates a test Gin context for the given request.
func createTestContext(method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}
