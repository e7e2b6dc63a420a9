package admin

import (
	"net/http"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/handler"
)

// NotificationHandler serves the admin notification feed.
type NotificationHandler struct {
	notifs domain.NotificationStore
}

func NewNotificationHandler(notifs domain.NotificationStore) *NotificationHandler {
	return &NotificationHandler{notifs: notifs}
}

// List handles GET /admin/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifs.ListNotifications(r.Context(), handler.QueryInt(r, "limit", 50))
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	unread, err := h.notifs.CountUnread(r.Context())
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"unread":        unread,
	})
}

// MarkRead handles PUT /admin/notifications/{notificationID}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := handler.URLParamInt64(r, "notificationID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	if err := h.notifs.MarkRead(r.Context(), id); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"read": true})
}

// MarkAllRead handles PUT /admin/notifications/read
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifs.MarkAllRead(r.Context()); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"read": true})
}

// Clear handles DELETE /admin/notifications
func (h *NotificationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.notifs.ClearNotifications(r.Context()); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"cleared": true})
}
