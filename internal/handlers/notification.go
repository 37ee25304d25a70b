package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/footyalerts/footy-alerts/internal/services"
)

type NotificationHandler struct {
	notifierService services.NotifierService
}

func NewNotificationHandler(notifierService services.NotifierService) *NotificationHandler {
	return &NotificationHandler{notifierService: notifierService}
}

// SendTest pushes a test message to the caller's own registration so they
// can confirm notifications reach their browser.
func (nh *NotificationHandler) SendTest(c *gin.Context) {
	endpoint, ok := endpointParam(c)
	if !ok {
		return
	}

	if err := nh.notifierService.SendTestNotification(c.Request.Context(), endpoint); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}
