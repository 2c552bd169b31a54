package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckAdmin gates moderation routes. Must run after CheckAuth.
func CheckAdmin(c *gin.Context) {
	if !c.GetBool("admin") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin privileges required"})
		return
	}
}
