package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetNotificationsHandler handles GET /api/notifications.
func (h *Handler) GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	notifications, err := h.Notifications.ListForUser(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

// MarkNotificationReadHandler handles POST /api/notifications/{notificationId}/read.
func (h *Handler) MarkNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	if err := h.Notifications.MarkRead(r.Context(), notificationID, caller); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUnreadCountHandler handles GET /api/notifications/unread-count.
func (h *Handler) GetUnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	count, err := h.Notifications.CountUnread(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}
