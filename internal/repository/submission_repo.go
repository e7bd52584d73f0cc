package repository

import (
	"encoding/json"
	"fmt"

	"frotacheck/internal/docstore"
	"frotacheck/internal/models"
)

const SubmissionsCollection = "checklists_resolvidos"

type SubmissionRepo struct {
	store *docstore.Store
}

func NewSubmissionRepo(store *docstore.Store) *SubmissionRepo {
	return &SubmissionRepo{store: store}
}

func (r *SubmissionRepo) Create(sub *models.Submission) (string, error) {
	return r.store.Insert(SubmissionsCollection, submissionToDoc(sub))
}

func (r *SubmissionRepo) FindByID(id string) (*models.Submission, error) {
	doc, err := r.store.Get(SubmissionsCollection, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return docToSubmission(doc)
}

// FindByDriverSince lists a driver's submissions stamped at or after
// since (RFC3339), newest first.
func (r *SubmissionRepo) FindByDriverSince(driverID, since string) ([]models.Submission, error) {
	docs, err := r.store.Find(SubmissionsCollection, map[string]any{
		"motoristaId": driverID,
		"data":        map[string]any{"$gte": since},
	}, &docstore.FindOptions{
		Sort: map[string]int{"data": -1},
	})
	if err != nil {
		return nil, err
	}
	subs := make([]models.Submission, 0, len(docs))
	for _, d := range docs {
		s, err := docToSubmission(d)
		if err != nil {
			continue
		}
		subs = append(subs, *s)
	}
	return subs, nil
}

func (r *SubmissionRepo) CountByTemplate(templateID string) (int, error) {
	return r.store.Count(SubmissionsCollection, map[string]any{"checklistModeloId": templateID})
}

func (r *SubmissionRepo) Count() (int, error) {
	return r.store.Count(SubmissionsCollection, map[string]any{})
}

func submissionToDoc(sub *models.Submission) map[string]any {
	data, _ := json.Marshal(sub)
	var doc map[string]any
	json.Unmarshal(data, &doc)
	delete(doc, "_id")
	return doc
}

func docToSubmission(doc map[string]any) (*models.Submission, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal submission doc: %w", err)
	}
	var s models.Submission
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal submission: %w", err)
	}
	return &s, nil
}
