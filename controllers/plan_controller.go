package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Makarios44/smart-plan-eats-sub000/services"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	Plans *services.PlanService
}

func NewPlanController(ps *services.PlanService) *PlanController {
	return &PlanController{Plans: ps}
}

type generatePlanReq struct {
	WeekStart string `json:"week_start"` // YYYY-MM-DD, defaults to today
}

func (pc *PlanController) Generate(c *gin.Context) {
	uid := c.GetUint("userID")

	var req generatePlanReq
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weekStart := time.Now()
	if req.WeekStart != "" {
		parsed, err := time.Parse("2006-01-02", req.WeekStart)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week_start. Use YYYY-MM-DD"})
			return
		}
		weekStart = parsed
	}

	plan, err := pc.Plans.Generate(uid, weekStart)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (pc *PlanController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	plans, err := pc.Plans.List(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (pc *PlanController) Get(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	plan, err := pc.Plans.Get(uid, uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetShared serves a plan by share token; public, no auth group.
func (pc *PlanController) GetShared(c *gin.Context) {
	plan, err := pc.Plans.GetShared(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	c.JSON(http.StatusOK, plan)
}
