package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mutirao/models"
)

// OpenChatHandler handles POST /api/requests/{requestId}/chats. Opening the
// same pair from either side resolves to the same chat.
func (h *Handler) OpenChatHandler(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	var input models.OpenChatInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	chat, err := h.Chats.OpenOrGet(r.Context(), requestID, caller, input.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

// GetRequestChatsHandler handles GET /api/requests/{requestId}/chats.
func (h *Handler) GetRequestChatsHandler(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	chats, err := h.Chats.ListForRequest(r.Context(), requestID, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

// GetChatHandler handles GET /api/chats/{chatId}.
func (h *Handler) GetChatHandler(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	chat, err := h.Chats.Get(r.Context(), chatID, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

// GetChatMessagesHandler handles GET /api/chats/{chatId}/messages.
func (h *Handler) GetChatMessagesHandler(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	messages, err := h.Chats.Messages(r.Context(), chatID, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// PostMessageHandler handles POST /api/chats/{chatId}/messages.
func (h *Handler) PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	var input models.PostMessageInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	message, err := h.Chats.PostMessage(r.Context(), chatID, caller, input.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}
