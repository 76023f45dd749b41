package controllers

import (
	"net/http"
	"strconv"

	"github.com/Makarios44/smart-plan-eats-sub000/services"

	"github.com/gin-gonic/gin"
)

// NutritionistController serves the coach panel: roster, per-client
// progress and the AI group analysis.
type NutritionistController struct {
	Group    *services.GroupService
	Progress *services.ProgressService
}

func NewNutritionistController(gs *services.GroupService, ps *services.ProgressService) *NutritionistController {
	return &NutritionistController{Group: gs, Progress: ps}
}

func (nc *NutritionistController) Clients(c *gin.Context) {
	uid := c.GetUint("userID")

	clients, err := nc.Group.Clients(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (nc *NutritionistController) AssignClient(c *gin.Context) {
	uid := c.GetUint("userID")

	clientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}

	if err := nc.Group.AssignClient(uid, uint(clientID)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client assigned"})
}

// ClientProgress lets a nutritionist view an assigned client's summary.
func (nc *NutritionistController) ClientProgress(c *gin.Context) {
	uid := c.GetUint("userID")

	clientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}

	// only clients on this nutritionist's roster
	clients, err := nc.Group.Clients(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	assigned := false
	for _, cl := range clients {
		if cl.UserID == uint(clientID) {
			assigned = true
			break
		}
	}
	if !assigned {
		c.JSON(http.StatusForbidden, gin.H{"error": "client is not assigned to you"})
		return
	}

	summary, err := nc.Progress.Summary(uint(clientID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (nc *NutritionistController) AnalyzeGroup(c *gin.Context) {
	uid := c.GetUint("userID")

	insight, err := nc.Group.AnalyzeGroup(uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, insight)
}
