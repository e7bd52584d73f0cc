package handler

import (
	"net/http"
	"time"

	"frotacheck/internal/auth"
	"frotacheck/internal/service"
)

type JourneyHandler struct {
	svc *service.JourneyService
}

func NewJourneyHandler(svc *service.JourneyService) *JourneyHandler {
	return &JourneyHandler{svc: svc}
}

// Current returns the entry the driver's journey screen shows: the open
// entry if one exists, otherwise today's closed entry, otherwise null.
func (h *JourneyHandler) Current(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	entry, err := h.svc.Current(claims.UserID, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *JourneyHandler) Clock(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	var req service.ClockRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := h.svc.Clock(claims.UserID, req, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
