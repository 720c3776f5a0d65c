package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/notification"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/response"
)

// @Summary      List notifications
// @Tags         Notification
// @Produce      json
// @Param        unread query bool false "Only unread"
// @Success      200  {object}  response.APIResponse[[]models.Notification]
// @Router       /api/v1/notifications [get]
func ApiListNotifications(svc *notification.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		unreadOnly := c.Query("unread") == "true"
		items, err := svc.ListByRecipient(c.Request.Context(), c.GetString("user_id"), unreadOnly)
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

// @Summary      Mark notification read
// @Tags         Notification
// @Produce      json
// @Param        id path string true "Notification id"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/notifications/{id}/read [post]
func ApiMarkNotificationRead(svc *notification.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.MarkRead(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

type markAllReadResult struct {
	Updated int64 `json:"updated"`
}

// @Summary      Mark all notifications read
// @Tags         Notification
// @Produce      json
// @Success      200  {object}  response.APIResponse[markAllReadResult]
// @Router       /api/v1/notifications/read-all [post]
func ApiMarkAllNotificationsRead(svc *notification.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.MarkAllRead(c.Request.Context(), c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusOK, response.Err(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(markAllReadResult{Updated: n}))
	}
}
