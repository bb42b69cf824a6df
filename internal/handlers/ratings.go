package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mutirao/models"
)

// RateRequestHandler handles POST /api/requests/{requestId}/ratings.
func (h *Handler) RateRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	var input models.RateInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	rating, err := h.Ratings.Rate(r.Context(), requestID, caller, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rating)
}

// GetUserRatingsHandler handles GET /api/users/{userId}/ratings.
func (h *Handler) GetUserRatingsHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	ratings, err := h.Ratings.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

// GetUserRatingAverageHandler handles GET /api/users/{userId}/ratings/average.
func (h *Handler) GetUserRatingAverageHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	average, err := h.Ratings.AverageForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, average)
}
