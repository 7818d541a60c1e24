package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageBody is the payload for endpoints that only confirm an action.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes payload with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Message writes a 200 response of the form {"message": msg}.
func Message(c *gin.Context, msg string) {
	JSON(c, http.StatusOK, MessageBody{Message: msg})
}
