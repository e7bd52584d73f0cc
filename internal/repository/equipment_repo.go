package repository

import (
	"encoding/json"
	"fmt"

	"frotacheck/internal/docstore"
	"frotacheck/internal/models"
)

const EquipmentCollection = "equipamentos"

type EquipmentRepo struct {
	store *docstore.Store
}

func NewEquipmentRepo(store *docstore.Store) *EquipmentRepo {
	return &EquipmentRepo{store: store}
}

func (r *EquipmentRepo) Create(eq *models.Equipment) (string, error) {
	return r.store.Insert(EquipmentCollection, equipmentToDoc(eq))
}

func (r *EquipmentRepo) FindAll() ([]models.Equipment, error) {
	docs, err := r.store.Find(EquipmentCollection, map[string]any{}, &docstore.FindOptions{
		Sort: map[string]int{"nome": 1},
	})
	if err != nil {
		return nil, err
	}
	list := make([]models.Equipment, 0, len(docs))
	for _, d := range docs {
		eq, err := docToEquipment(d)
		if err != nil {
			continue
		}
		list = append(list, *eq)
	}
	return list, nil
}

func (r *EquipmentRepo) FindByID(id string) (*models.Equipment, error) {
	doc, err := r.store.Get(EquipmentCollection, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToEquipment(doc)
}

// FindPending returns equipment without a linked checklist template.
// The legacy data holds null, "" or a missing key for "no link", so the
// filtering happens here rather than in the store.
func (r *EquipmentRepo) FindPending() ([]models.Equipment, error) {
	all, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	pending := make([]models.Equipment, 0)
	for _, eq := range all {
		if eq.TemplateID == nil || *eq.TemplateID == "" {
			pending = append(pending, eq)
		}
	}
	return pending, nil
}

// SetTemplate links (or with nil, unlinks) the checklist template used
// at inspection time for this equipment.
func (r *EquipmentRepo) SetTemplate(id string, templateID *string) error {
	var value any
	if templateID != nil {
		value = *templateID
	}
	return r.store.Update(EquipmentCollection, id, map[string]any{"checklistModeloId": value})
}

func (r *EquipmentRepo) Update(id string, eq *models.Equipment) error {
	return r.store.Update(EquipmentCollection, id, equipmentToDoc(eq))
}

func (r *EquipmentRepo) Delete(id string) error {
	return r.store.Delete(EquipmentCollection, id)
}

func (r *EquipmentRepo) Count() (int, error) {
	return r.store.Count(EquipmentCollection, map[string]any{})
}

func equipmentToDoc(eq *models.Equipment) map[string]any {
	data, _ := json.Marshal(eq)
	var doc map[string]any
	json.Unmarshal(data, &doc)
	delete(doc, "_id")
	return doc
}

func docToEquipment(doc map[string]any) (*models.Equipment, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal equipment doc: %w", err)
	}
	var eq models.Equipment
	if err := json.Unmarshal(data, &eq); err != nil {
		return nil, fmt.Errorf("unmarshal equipment: %w", err)
	}
	return &eq, nil
}
