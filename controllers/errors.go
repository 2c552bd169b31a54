package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GatherMatch/models"
)

// respondStoreError maps the store error taxonomy onto HTTP status codes.
// Anything unclassified is a 500.
func respondStoreError(c *gin.Context, err error) {
	var se *models.StoreError
	if errors.As(err, &se) {
		status := http.StatusInternalServerError
		switch se.Kind {
		case models.ErrorNotFound:
			status = http.StatusNotFound
		case models.ErrorValidation:
			status = http.StatusBadRequest
		case models.ErrorDuplicate:
			status = http.StatusConflict
		case models.ErrorUpstream:
			status = http.StatusBadGateway
		}
		if se.Err != nil {
			c.JSON(status, gin.H{"error": se.Message, "details": se.Err.Error()})
			return
		}
		c.JSON(status, gin.H{"error": se.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
}
