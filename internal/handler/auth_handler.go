package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me echoes the authenticated user id. User records themselves are owned by
// the identity provider; there is nothing else to return.
func Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"userId": userID})
}
