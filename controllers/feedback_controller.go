package controllers

import (
	"net/http"

	"github.com/Makarios44/smart-plan-eats-sub000/services"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	Feedback *services.FeedbackService
}

func NewFeedbackController(fs *services.FeedbackService) *FeedbackController {
	return &FeedbackController{Feedback: fs}
}

// Submit is the weekly check-in endpoint; it runs the adjustment engine.
func (fc *FeedbackController) Submit(c *gin.Context) {
	uid := c.GetUint("userID")

	var req services.WeeklyFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := fc.Feedback.Submit(uid, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (fc *FeedbackController) History(c *gin.Context) {
	uid := c.GetUint("userID")

	rows, err := fc.Feedback.History(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (fc *FeedbackController) Adjustments(c *gin.Context) {
	uid := c.GetUint("userID")

	rows, err := fc.Feedback.Adjustments(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
