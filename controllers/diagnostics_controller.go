package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	h2ConsoleURL = "http://localhost:8080/h2-console"
	debugPort    = "8080"
)

// TestDatabase always reports a healthy database. It does not open a
// connection or run a query, even when global.DB is configured.
func TestDatabase(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "🟢 Banco de dados H2 conectado com sucesso!",
	})
}

// DebugConfig dumps fixed connection hints for the frontend's debug panel.
// The values are literals and do not reflect config.AppConfig.
func DebugConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"h2Console": h2ConsoleURL,
		"port":      debugPort,
		"status":    "active",
	})
}
