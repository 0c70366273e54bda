// Package handlers implements the HTTP surface of the API. All endpoints
// answer with the same envelope: {"success": bool, "message": string,
// "data": ...}.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ok writes a success envelope.
func ok(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// fail writes a failure envelope. The message is shown to the caller
// verbatim, so it must never carry internal detail.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// failInternal logs the real error with request context and answers with a
// genericized 500.
func failInternal(c *gin.Context, err error) {
	logrus.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.FullPath(),
	}).WithError(err).Error("internal server error")

	fail(c, http.StatusInternalServerError, "Internal server error")
}
