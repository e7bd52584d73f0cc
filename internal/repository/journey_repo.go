package repository

import (
	"encoding/json"
	"fmt"

	"frotacheck/internal/docstore"
	"frotacheck/internal/models"
)

const JourneyCollection = "ponto_jornada"

type JourneyRepo struct {
	store *docstore.Store
}

func NewJourneyRepo(store *docstore.Store) *JourneyRepo {
	return &JourneyRepo{store: store}
}

func (r *JourneyRepo) Create(j *models.JourneyEntry) (string, error) {
	return r.store.Insert(JourneyCollection, journeyToDoc(j))
}

// FindOpenByDriver returns the driver's journey entry without an exit
// time, or nil when none is open.
func (r *JourneyRepo) FindOpenByDriver(driverID string) (*models.JourneyEntry, error) {
	docs, err := r.store.Find(JourneyCollection, map[string]any{
		"motoristaId": driverID,
		"horaSaida":   "",
	}, &docstore.FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docToJourney(docs[0])
}

// FindByDriverAndDate returns the driver's entry for the given day
// (YYYY-MM-DD), or nil.
func (r *JourneyRepo) FindByDriverAndDate(driverID, date string) (*models.JourneyEntry, error) {
	docs, err := r.store.Find(JourneyCollection, map[string]any{
		"motoristaId": driverID,
		"data":        date,
	}, &docstore.FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docToJourney(docs[0])
}

func (r *JourneyRepo) Update(id string, partial map[string]any) error {
	return r.store.Update(JourneyCollection, id, partial)
}

func journeyToDoc(j *models.JourneyEntry) map[string]any {
	data, _ := json.Marshal(j)
	var doc map[string]any
	json.Unmarshal(data, &doc)
	delete(doc, "_id")
	// An open entry must carry the empty horaSaida explicitly so the
	// open-journey query can match it.
	if _, ok := doc["horaSaida"]; !ok {
		doc["horaSaida"] = ""
	}
	return doc
}

func docToJourney(doc map[string]any) (*models.JourneyEntry, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal journey doc: %w", err)
	}
	var j models.JourneyEntry
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("unmarshal journey: %w", err)
	}
	return &j, nil
}
