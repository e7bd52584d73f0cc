package repository

import (
	"encoding/json"
	"fmt"

	"frotacheck/internal/docstore"
	"frotacheck/internal/models"
)

const LegendsCollection = "legendas_checklist"

type LegendRepo struct {
	store *docstore.Store
}

func NewLegendRepo(store *docstore.Store) *LegendRepo {
	return &LegendRepo{store: store}
}

func (r *LegendRepo) Create(l *models.Legend) (string, error) {
	return r.store.Insert(LegendsCollection, legendToDoc(l))
}

func (r *LegendRepo) FindAll() ([]models.Legend, error) {
	docs, err := r.store.Find(LegendsCollection, map[string]any{}, &docstore.FindOptions{
		Sort: map[string]int{"codigo": 1},
	})
	if err != nil {
		return nil, err
	}
	legends := make([]models.Legend, 0, len(docs))
	for _, d := range docs {
		l, err := docToLegend(d)
		if err != nil {
			continue
		}
		legends = append(legends, *l)
	}
	return legends, nil
}

func (r *LegendRepo) FindByID(id string) (*models.Legend, error) {
	doc, err := r.store.Get(LegendsCollection, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToLegend(doc)
}

func (r *LegendRepo) Update(id string, l *models.Legend) error {
	return r.store.Update(LegendsCollection, id, legendToDoc(l))
}

func (r *LegendRepo) Delete(id string) error {
	return r.store.Delete(LegendsCollection, id)
}

func legendToDoc(l *models.Legend) map[string]any {
	data, _ := json.Marshal(l)
	var doc map[string]any
	json.Unmarshal(data, &doc)
	delete(doc, "_id")
	return doc
}

func docToLegend(doc map[string]any) (*models.Legend, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal legend doc: %w", err)
	}
	var l models.Legend
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("unmarshal legend: %w", err)
	}
	return &l, nil
}
