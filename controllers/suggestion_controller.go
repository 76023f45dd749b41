package controllers

import (
	"net/http"

	"github.com/Makarios44/smart-plan-eats-sub000/services"

	"github.com/gin-gonic/gin"
)

type SuggestionController struct {
	Suggestions *services.SuggestionService
}

func NewSuggestionController(ss *services.SuggestionService) *SuggestionController {
	return &SuggestionController{Suggestions: ss}
}

func (sc *SuggestionController) FromPantry(c *gin.Context) {
	uid := c.GetUint("userID")

	suggestions, err := sc.Suggestions.SuggestFromPantry(uid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

type swapReq struct {
	Meal   string `json:"meal" binding:"required"`
	Reason string `json:"reason"`
}

func (sc *SuggestionController) Swap(c *gin.Context) {
	uid := c.GetUint("userID")

	var req swapReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions, err := sc.Suggestions.SuggestSwap(uid, req.Meal, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
