// internal/handlers/notify.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bazarco/backend/internal/i18n"
	"github.com/bazarco/backend/internal/services"
	"github.com/bazarco/backend/internal/utils"
)

type NotifyHandler struct {
	notifyService *services.NotifyService
}

func NewNotifyHandler(notifyService *services.NotifyService) *NotifyHandler {
	return &NotifyHandler{notifyService: notifyService}
}

// POST /notify
func (h *NotifyHandler) SignUp(c *gin.Context) {
	var req services.NotifyRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := h.notifyService.SignUp(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	message := utils.T(c, i18n.KeyNotifySuccess)
	if status == services.NotifyStatusAlreadyNotified {
		message = utils.T(c, i18n.KeyNotifyAlready)
	}
	utils.OKResponse(c, message, nil)
}
