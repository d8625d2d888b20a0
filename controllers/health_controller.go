package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health provides an unauthenticated liveness endpoint for the frontend and
// container orchestrators.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "✅ Gridline Backend está funcionando!",
	})
}
