package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"frotacheck/internal/auth"
	"frotacheck/internal/checklist"
	"frotacheck/internal/models"
	"frotacheck/internal/service"
)

type InspectionHandler struct {
	svc *service.InspectionService
}

func NewInspectionHandler(svc *service.InspectionService) *InspectionHandler {
	return &InspectionHandler{svc: svc}
}

// sessionView is the wire shape of a runtime session.
type sessionView struct {
	ID          string                   `json:"id"`
	State       string                   `json:"state"`
	EquipmentID string                   `json:"equipamentoId,omitempty"`
	Template    *models.Template         `json:"checklist,omitempty"`
	Answers     map[string]models.Answer `json:"respostas"`
	Violations  []checklist.Violation    `json:"pendencias,omitempty"`
}

func viewSession(s *checklist.Session) sessionView {
	return sessionView{
		ID:          s.ID(),
		State:       s.State().String(),
		EquipmentID: s.EquipmentID(),
		Template:    s.Template(),
		Answers:     s.Answers(),
		Violations:  s.Violations(),
	}
}

func (h *InspectionHandler) Start(w http.ResponseWriter, r *http.Request) {
	actor := auth.FromClaims(auth.GetUser(r.Context()))
	sess := h.svc.Start(actor)
	writeJSON(w, http.StatusCreated, viewSession(sess))
}

func (h *InspectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := auth.FromClaims(auth.GetUser(r.Context()))
	sess, err := h.svc.Get(chi.URLParam(r, "sessionId"), actor)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, viewSession(sess))
}

// SelectEquipment resolves the equipment's linked checklist into the
// session. A missing link or dangling template is not a failure: the
// session lands in its blocked state and the response says why.
func (h *InspectionHandler) SelectEquipment(w http.ResponseWriter, r *http.Request) {
	actor := auth.FromClaims(auth.GetUser(r.Context()))
	var req struct {
		EquipmentID string `json:"equipamentoId"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess, err := h.svc.Select(chi.URLParam(r, "sessionId"), actor, req.EquipmentID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, viewSession(sess))
	case errors.Is(err, checklist.ErrNoChecklistLinked), errors.Is(err, checklist.ErrTemplateNotFound):
		writeJSON(w, http.StatusOK, map[string]any{
			"session": viewSession(sess),
			"warning": err.Error(),
		})
	case errors.Is(err, checklist.ErrEquipmentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, checklist.ErrStaleResolution):
		writeError(w, http.StatusConflict, err.Error())
	case sess == nil:
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func (h *InspectionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	actor := auth.FromClaims(auth.GetUser(r.Context()))
	var req struct {
		FieldID   string `json:"campoId"`
		SubitemID string `json:"subitemId"`
		Value     string `json:"tipo"`
		Note      string `json:"texto"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess, err := h.svc.Answer(chi.URLParam(r, "sessionId"), actor, req.FieldID, req.SubitemID, req.Value, req.Note)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, viewSession(sess))
	case sess == nil:
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func (h *InspectionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor := auth.FromClaims(auth.GetUser(r.Context()))
	sub, sess, err := h.svc.Submit(chi.URLParam(r, "sessionId"), actor)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, sub)
	case errors.Is(err, checklist.ErrMissingAnswers):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      err.Error(),
			"pendencias": sess.Violations(),
		})
	case errors.Is(err, checklist.ErrIdentityUnresolved), errors.Is(err, checklist.ErrAnonymousSubmit):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, checklist.ErrNotReady):
		writeError(w, http.StatusConflict, err.Error())
	case sess == nil:
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

// History lists the driver's submissions from the last 30 days.
func (h *InspectionHandler) History(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUser(r.Context())
	subs, err := h.svc.History(claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *InspectionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := h.svc.GetSubmission(chi.URLParam(r, "subId"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
