package controllers

import (
	"net/http"
	"strconv"

	"github.com/Makarios44/smart-plan-eats-sub000/config"
	"github.com/Makarios44/smart-plan-eats-sub000/services"

	"github.com/gin-gonic/gin"
)

func ListAlerts(c *gin.Context) {
	uid := c.GetUint("userID")

	alerts, err := services.ListAlerts(config.DB, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list alerts"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func MarkAlertRead(c *gin.Context) {
	uid := c.GetUint("userID")

	alertID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert id"})
		return
	}

	if err := services.MarkAlertRead(config.DB, uid, uint(alertID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark alert"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "alert marked as read"})
}
