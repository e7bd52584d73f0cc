package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"frotacheck/internal/models"
	"frotacheck/internal/service"
)

type EquipmentHandler struct {
	svc *service.LinkService
}

func NewEquipmentHandler(svc *service.LinkService) *EquipmentHandler {
	return &EquipmentHandler{svc: svc}
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	eq, err := h.svc.Get(chi.URLParam(r, "equipId"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Pending()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Equipment
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	eq, err := h.svc.Create(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, eq)
}

// Link points the equipment at a checklist template.
func (h *EquipmentHandler) Link(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID string `json:"checklistModeloId"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TemplateID == "" {
		writeError(w, http.StatusBadRequest, "checklistModeloId is required")
		return
	}
	eq, err := h.svc.Link(chi.URLParam(r, "equipId"), req.TemplateID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Unlink(w http.ResponseWriter, r *http.Request) {
	eq, err := h.svc.Unlink(chi.URLParam(r, "equipId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, eq)
}
