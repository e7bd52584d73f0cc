package service

import (
	"errors"

	"frotacheck/internal/models"
	"frotacheck/internal/repository"
)

// LinkService manages equipment records and their weak reference to a
// checklist template. Zero or one active template per equipment; no
// versioning — relinking or editing the template silently changes what
// future inspections see.
type LinkService struct {
	equipment *repository.EquipmentRepo
	templates *repository.TemplateRepo
}

func NewLinkService(equipment *repository.EquipmentRepo, templates *repository.TemplateRepo) *LinkService {
	return &LinkService{equipment: equipment, templates: templates}
}

func (s *LinkService) List() ([]models.Equipment, error) {
	return s.equipment.FindAll()
}

func (s *LinkService) Get(id string) (*models.Equipment, error) {
	eq, err := s.equipment.FindByID(id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, errors.New("equipment not found")
	}
	return eq, nil
}

// Pending lists equipment still waiting for a template link.
func (s *LinkService) Pending() ([]models.Equipment, error) {
	return s.equipment.FindPending()
}

func (s *LinkService) Create(eq *models.Equipment) (*models.Equipment, error) {
	if eq.Name == "" {
		return nil, errors.New("equipment name is required")
	}
	if eq.Origin == "" {
		eq.Origin = "proprio"
	}
	if eq.Origin != "proprio" && eq.Origin != "alugado" {
		return nil, errors.New(`origin must be "proprio" or "alugado"`)
	}
	id, err := s.equipment.Create(eq)
	if err != nil {
		return nil, err
	}
	eq.ID = id
	return eq, nil
}

// Link points the equipment at a template. The template must exist; a
// link is never created dangling (it can still become dangling later if
// the template is deleted, which the runtime tolerates).
func (s *LinkService) Link(equipmentID, templateID string) (*models.Equipment, error) {
	eq, err := s.Get(equipmentID)
	if err != nil {
		return nil, err
	}
	t, err := s.templates.FindByID(templateID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.New("template not found")
	}
	if err := s.equipment.SetTemplate(equipmentID, &templateID); err != nil {
		return nil, err
	}
	eq.TemplateID = &templateID
	return eq, nil
}

// Unlink clears the equipment's template reference.
func (s *LinkService) Unlink(equipmentID string) (*models.Equipment, error) {
	eq, err := s.Get(equipmentID)
	if err != nil {
		return nil, err
	}
	if err := s.equipment.SetTemplate(equipmentID, nil); err != nil {
		return nil, err
	}
	eq.TemplateID = nil
	return eq, nil
}
