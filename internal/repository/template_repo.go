package repository

import (
	"encoding/json"
	"fmt"

	"frotacheck/internal/docstore"
	"frotacheck/internal/models"
)

const TemplatesCollection = "templates_checklist"

type TemplateRepo struct {
	store *docstore.Store
}

func NewTemplateRepo(store *docstore.Store) *TemplateRepo {
	return &TemplateRepo{store: store}
}

func (r *TemplateRepo) Create(t *models.Template) (string, error) {
	return r.store.Insert(TemplatesCollection, templateToDoc(t))
}

func (r *TemplateRepo) FindAll() ([]models.Template, error) {
	docs, err := r.store.Find(TemplatesCollection, map[string]any{}, &docstore.FindOptions{
		Sort: map[string]int{"createdAt": -1},
	})
	if err != nil {
		return nil, err
	}
	templates := make([]models.Template, 0, len(docs))
	for _, d := range docs {
		t, err := docToTemplate(d)
		if err != nil {
			continue
		}
		templates = append(templates, *t)
	}
	return templates, nil
}

func (r *TemplateRepo) FindByID(id string) (*models.Template, error) {
	doc, err := r.store.Get(TemplatesCollection, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToTemplate(doc)
}

func (r *TemplateRepo) Update(id string, t *models.Template) error {
	return r.store.Update(TemplatesCollection, id, templateToDoc(t))
}

func (r *TemplateRepo) Delete(id string) error {
	return r.store.Delete(TemplatesCollection, id)
}

func (r *TemplateRepo) Count() (int, error) {
	return r.store.Count(TemplatesCollection, map[string]any{})
}

func templateToDoc(t *models.Template) map[string]any {
	data, _ := json.Marshal(t)
	var doc map[string]any
	json.Unmarshal(data, &doc)
	delete(doc, "_id")
	return doc
}

func docToTemplate(doc map[string]any) (*models.Template, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal template doc: %w", err)
	}
	var t models.Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("unmarshal template: %w", err)
	}
	// Legacy documents may lack arrays or type tags.
	t.Normalize()
	return &t, nil
}
