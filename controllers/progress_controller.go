package controllers

import (
	"net/http"
	"time"

	"github.com/Makarios44/smart-plan-eats-sub000/services"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progress *services.ProgressService
}

func NewProgressController(ps *services.ProgressService) *ProgressController {
	return &ProgressController{Progress: ps}
}

func (pc *ProgressController) Summary(c *gin.Context) {
	uid := c.GetUint("userID")

	summary, err := pc.Progress.Summary(uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (pc *ProgressController) WeightHistory(c *gin.Context) {
	uid := c.GetUint("userID")

	points, err := pc.Progress.WeightHistory(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, points)
}

func (pc *ProgressController) WeeklyOverview(c *gin.Context) {
	uid := c.GetUint("userID")

	weekStr := c.Query("week_start")
	if weekStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'week_start' query param"})
		return
	}
	week, err := time.Parse("2006-01-02", weekStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	overview, err := pc.Progress.WeeklyOverview(uid, week)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, overview)
}
