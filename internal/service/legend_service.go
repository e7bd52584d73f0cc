package service

import (
	"errors"

	"frotacheck/internal/models"
	"frotacheck/internal/repository"
)

type LegendService struct {
	legends *repository.LegendRepo
}

func NewLegendService(legends *repository.LegendRepo) *LegendService {
	return &LegendService{legends: legends}
}

func (s *LegendService) List() ([]models.Legend, error) {
	return s.legends.FindAll()
}

func (s *LegendService) Get(id string) (*models.Legend, error) {
	l, err := s.legends.FindByID(id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, errors.New("legend not found")
	}
	return l, nil
}

func (s *LegendService) Create(l *models.Legend) (*models.Legend, error) {
	if err := validateLegend(l); err != nil {
		return nil, err
	}
	id, err := s.legends.Create(l)
	if err != nil {
		return nil, err
	}
	l.ID = id
	return l, nil
}

func (s *LegendService) Update(id string, l *models.Legend) (*models.Legend, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	if err := validateLegend(l); err != nil {
		return nil, err
	}
	if err := s.legends.Update(id, l); err != nil {
		return nil, err
	}
	l.ID = id
	return l, nil
}

// Delete removes a legend. Subitems referencing it keep their id; the
// dangling reference degrades to a lookup miss at render time.
func (s *LegendService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.legends.Delete(id)
}

func validateLegend(l *models.Legend) error {
	if l.Code == "" || l.Color == "" || l.Description == "" || l.Action == "" {
		return errors.New("code, color, description and action are required")
	}
	return nil
}
