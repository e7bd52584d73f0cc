package service

import (
	"errors"
	"fmt"
	"time"

	"frotacheck/internal/checklist"
	"frotacheck/internal/models"
	"frotacheck/internal/repository"
)

type TemplateService struct {
	templates *repository.TemplateRepo
}

func NewTemplateService(templates *repository.TemplateRepo) *TemplateService {
	return &TemplateService{templates: templates}
}

// Create builds a new template from the submitted draft. The incoming
// fields are replayed through the editor so every structural rule (blank
// option trimming, stable id assignment, the validation triple) applies
// before anything touches the store.
func (s *TemplateService) Create(title, code, createdBy string, fields []models.Field) (*models.Template, error) {
	ed := checklist.NewEditor()
	if err := applyDraft(ed, title, code, fields); err != nil {
		return nil, err
	}
	t, err := ed.Build()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	t.CreatedBy = createdBy
	t.CreatedAt = now
	t.UpdatedAt = now

	id, err := s.templates.Create(t)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return t, nil
}

// Update replaces an existing template in place. Stable field and
// subitem ids carried by the request are preserved; new entries get
// fresh ids from the editor. All future inspections of every equipment
// linked to this template see the new revision.
func (s *TemplateService) Update(id, title, code string, fields []models.Field) (*models.Template, error) {
	existing, err := s.templates.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New("template not found")
	}

	ed := checklist.Edit(existing)
	if err := applyDraft(ed, title, code, fields); err != nil {
		return nil, err
	}
	t, err := ed.Build()
	if err != nil {
		return nil, err
	}

	t.CreatedBy = existing.CreatedBy
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.templates.Update(id, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) List() ([]models.Template, error) {
	return s.templates.FindAll()
}

func (s *TemplateService) Get(id string) (*models.Template, error) {
	t, err := s.templates.FindByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.New("template not found")
	}
	return t, nil
}

func (s *TemplateService) Delete(id string) error {
	t, err := s.templates.FindByID(id)
	if err != nil {
		return err
	}
	if t == nil {
		return errors.New("template not found")
	}
	return s.templates.Delete(id)
}

// applyDraft rebuilds the editor draft from the submitted fields using
// the editor's own operations.
func applyDraft(ed *checklist.Editor, title, code string, fields []models.Field) error {
	ed.SetTitle(title)
	ed.SetCode(code)

	for ed.FieldCount() > 0 {
		if err := ed.RemoveField(0); err != nil {
			return err
		}
	}

	for i, in := range fields {
		f := ed.AddField()
		if in.ID != "" {
			f.ID = in.ID
		}
		f.Title = in.Title
		if in.Type != "" {
			f.Type = in.Type
		}
		f.Required = in.Required
		f.Critical = in.Critical
		f.MinLength = in.MinLength
		f.MaxLength = in.MaxLength
		f.Placeholder = in.Placeholder
		f.Size = in.Size

		for _, opt := range in.Options {
			if err := ed.AddListOption(i, opt); err != nil {
				return fmt.Errorf("field %q: %w", in.Title, err)
			}
		}
		for _, sin := range in.Subitems {
			sub, err := ed.AddSubitem(i)
			if err != nil {
				return err
			}
			if sin.ID != "" {
				sub.ID = sin.ID
			}
			sub.Title = sin.Title
			sub.Required = sin.Required
			sub.Critical = sin.Critical
			sub.LegendID = sin.LegendID
		}
	}
	return nil
}
