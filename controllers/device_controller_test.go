package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRegisterDeviceWithoutPushService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// SNS misconfiguration leaves the app running without a push service;
	// registration must answer 503 instead of dereferencing it
	dc := NewDeviceController(nil)

	r := gin.New()
	r.POST("/devices", func(c *gin.Context) {
		c.Set("userID", uint(1))
		dc.Register(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/devices",
		strings.NewReader(`{"platform":"android","token":"tok"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if !strings.Contains(w.Body.String(), "push notifications unavailable") {
		t.Errorf("body = %s", w.Body.String())
	}
}
