package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newGuardedRouter(serviceKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ServiceKeyMiddleware(serviceKey))
	router.GET("/secret", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func getWithAuth(router *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestServiceKeyMiddleware(t *testing.T) {
	router := newGuardedRouter("s3cret")

	assert.Equal(t, http.StatusOK, getWithAuth(router, "Bearer s3cret").Code)
	assert.Equal(t, http.StatusOK, getWithAuth(router, "bearer s3cret").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithAuth(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithAuth(router, "Bearer wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithAuth(router, "s3cret").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithAuth(router, "Basic s3cret").Code)
}

func TestServiceKeyMiddlewareDisabledWhenEmpty(t *testing.T) {
	router := newGuardedRouter("")
	assert.Equal(t, http.StatusOK, getWithAuth(router, "").Code)
}
