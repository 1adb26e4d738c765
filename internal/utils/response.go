package utils

import "github.com/gin-gonic/gin"

// OK writes a success response: {"ok": true} merged with data.
func OK(c *gin.Context, data gin.H) {
	body := gin.H{"ok": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(200, body)
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"ok":    false,
		"error": msg,
	})
}
