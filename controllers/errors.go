package controllers

import (
	"errors"
	"net/http"

	"github.com/Makarios44/smart-plan-eats-sub000/llm"
	"github.com/Makarios44/smart-plan-eats-sub000/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates service and gateway errors into status
// codes and user-facing messages. Rate-limit and billing errors are passed
// through as-is so clients back off instead of hammering retry.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidProfileInput),
		errors.Is(err, services.ErrInvalidFeedbackInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "complete onboarding first"})
	case errors.Is(err, services.ErrDuplicateWeek):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, llm.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "the AI service is busy, try again in a minute"})
	case errors.Is(err, llm.ErrQuotaExhausted):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "the AI quota for this account is used up"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
