package handler

import (
	"net/http"

	"frotacheck/internal/repository"
	"frotacheck/internal/service"
)

type DashboardHandler struct {
	templateSvc *service.TemplateService
	linkSvc     *service.LinkService
	subRepo     *repository.SubmissionRepo
	equipRepo   *repository.EquipmentRepo
}

func NewDashboardHandler(templateSvc *service.TemplateService, linkSvc *service.LinkService, subRepo *repository.SubmissionRepo, equipRepo *repository.EquipmentRepo) *DashboardHandler {
	return &DashboardHandler{templateSvc: templateSvc, linkSvc: linkSvc, subRepo: subRepo, equipRepo: equipRepo}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	templates, _ := h.templateSvc.List()

	totalSubs := 0
	templateStats := make([]map[string]any, 0, len(templates))
	for _, t := range templates {
		count, _ := h.subRepo.CountByTemplate(t.ID)
		totalSubs += count
		templateStats = append(templateStats, map[string]any{
			"id":              t.ID,
			"titulo":          t.Title,
			"codigo":          t.Code,
			"submissionCount": count,
			"fieldCount":      len(t.Fields),
			"createdAt":       t.CreatedAt,
		})
	}

	equipCount, _ := h.equipRepo.Count()
	pending, _ := h.linkSvc.Pending()

	writeJSON(w, http.StatusOK, map[string]any{
		"templateCount":    len(templates),
		"submissionCount":  totalSubs,
		"equipmentCount":   equipCount,
		"pendingEquipment": len(pending),
		"templates":        templateStats,
	})
}
