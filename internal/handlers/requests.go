package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mutirao/models"
)

// CreateRequestHandler handles POST /api/requests.
func (h *Handler) CreateRequestHandler(w http.ResponseWriter, r *http.Request) {
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	var input models.CreateRequestInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	request, err := h.Requests.Create(r.Context(), caller, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

// GetRequestsHandler handles GET /api/requests with optional search, status
// and category filters. The viewer's "already interested" flag rides along
// when userId is present.
func (h *Handler) GetRequestsHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	filter := models.ListRequestsFilter{
		Search:     r.URL.Query().Get("search"),
		Status:     models.RequestStatus(r.URL.Query().Get("status")),
		CategoryID: r.URL.Query().Get("category"),
		Limit:      params.Limit,
		Offset:     params.Offset,
	}

	requests, err := h.Requests.List(r.Context(), callerID(r), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// GetRequestHandler handles GET /api/requests/{requestId}.
func (h *Handler) GetRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")

	request, err := h.Requests.Get(r.Context(), requestID, callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// EditRequestHandler handles PATCH /api/requests/{requestId}.
func (h *Handler) EditRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	var input models.UpdateRequestInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	request, err := h.Requests.Update(r.Context(), requestID, caller, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// DeleteRequestHandler handles DELETE /api/requests/{requestId}.
func (h *Handler) DeleteRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	if err := h.Requests.Delete(r.Context(), requestID, caller); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeclareInterestHandler handles POST /api/requests/{requestId}/interest.
func (h *Handler) DeclareInterestHandler(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	interest, err := h.Requests.DeclareInterest(r.Context(), requestID, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, interest)
}

// AssignHelperHandler handles POST /api/requests/{requestId}/helper.
func (h *Handler) AssignHelperHandler(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	var input models.AssignHelperInput
	if !h.decodeBody(w, r, &input) {
		return
	}

	request, err := h.Requests.AssignHelper(r.Context(), requestID, caller, input.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// FinalizeRequestHandler handles POST /api/requests/{requestId}/finalize.
func (h *Handler) FinalizeRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	request, err := h.Requests.Finalize(r.Context(), requestID, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// WithdrawHandler handles POST /api/requests/{requestId}/withdraw.
func (h *Handler) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	request, err := h.Requests.Withdraw(r.Context(), requestID, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// CancelRequestHandler handles POST /api/requests/{requestId}/cancel.
func (h *Handler) CancelRequestHandler(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestId")
	caller := callerID(r)
	if caller == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	request, err := h.Requests.Cancel(r.Context(), requestID, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// GetCategoriesHandler handles GET /api/categories.
func (h *Handler) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Requests.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
