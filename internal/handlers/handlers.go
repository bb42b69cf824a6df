package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"mutirao/internal/apperr"
)

// Handler wires the HTTP surface to the services.
type Handler struct {
	Requests      RequestsService
	Ratings       RatingsService
	Chats         ChatsService
	Notifications NotificationsService
	Validate      *validator.Validate
}

func NewHandler(requests RequestsService, ratings RatingsService, chats ChatsService, notifications NotificationsService) *Handler {
	return &Handler{
		Requests:      requests,
		Ratings:       ratings,
		Chats:         chats,
		Notifications: notifications,
		Validate:      validator.New(),
	}
}

// PingHandler answers "ok" for server checks.
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// callerID is the authenticated caller resolved upstream; auth middleware is
// an external collaborator, here it arrives as the userId query parameter.
func callerID(r *http.Request) string {
	return r.URL.Query().Get("userId")
}

// decodeBody unmarshals and validates a JSON payload, capping body size.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return false
	}
	if err := h.Validate.Struct(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError translates the engine's error taxonomy into an HTTP response.
func writeError(w http.ResponseWriter, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		http.Error(w, e.Message, apperr.Status(err))
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

type PaginationParams struct {
	Limit  int
	Offset int
}

// parsePaginationParams parses limit and offset with defaults and caps.
func parsePaginationParams(r *http.Request) PaginationParams {
	params := PaginationParams{Limit: 20, Offset: 0}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			params.Limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			params.Offset = o
		}
	}
	return params
}
