package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const welcomeMessage = "Welcome to AI Content Writer API"

// getHome godoc
// @Summary Welcome message
// @Tags root
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": welcomeMessage})
}

// getHealth is the liveness probe. It does not touch the database.
func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
