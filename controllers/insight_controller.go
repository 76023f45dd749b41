package controllers

import (
	"errors"
	"net/http"

	"github.com/Makarios44/smart-plan-eats-sub000/models"
	"github.com/Makarios44/smart-plan-eats-sub000/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InsightController struct {
	Insights *services.InsightService
}

func NewInsightController(is *services.InsightService) *InsightController {
	return &InsightController{Insights: is}
}

// Generate creates a fresh predictive insight from the user's history.
func (ic *InsightController) Generate(c *gin.Context) {
	uid := c.GetUint("userID")

	insight, err := ic.Insights.GeneratePredictive(uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, insight)
}

func (ic *InsightController) Latest(c *gin.Context) {
	uid := c.GetUint("userID")

	insight, err := ic.Insights.Latest(uid, models.InsightPredictive)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no insight yet, generate one first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, insight)
}
