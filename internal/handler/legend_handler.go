package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"frotacheck/internal/models"
	"frotacheck/internal/service"
)

type LegendHandler struct {
	svc *service.LegendService
}

func NewLegendHandler(svc *service.LegendService) *LegendHandler {
	return &LegendHandler{svc: svc}
}

func (h *LegendHandler) List(w http.ResponseWriter, r *http.Request) {
	legends, err := h.svc.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, legends)
}

func (h *LegendHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Legend
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := h.svc.Create(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *LegendHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.Legend
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := h.svc.Update(chi.URLParam(r, "legendId"), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *LegendHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "legendId")
	if err := h.svc.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
