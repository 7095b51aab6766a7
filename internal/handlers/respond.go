package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"referral-system/internal/apperr"
)

// respondError translates a service error into an HTTP response. This is
// the only place error kinds map to status codes.
func respondError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindAuth:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.KindInvalidCode:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
