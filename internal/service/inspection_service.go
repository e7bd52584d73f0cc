package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"frotacheck/internal/auth"
	"frotacheck/internal/checklist"
	"frotacheck/internal/models"
	"frotacheck/internal/repository"
)

var errSessionNotFound = errors.New("inspection session not found")

// InspectionService owns the live runtime sessions: one per started
// inspection, keyed by session id, each bound to the driver who opened
// it. It is also the sessions' template source.
type InspectionService struct {
	mu       sync.Mutex
	sessions map[string]*checklist.Session

	equipment   *repository.EquipmentRepo
	templates   *repository.TemplateRepo
	submissions *repository.SubmissionRepo
}

func NewInspectionService(equipment *repository.EquipmentRepo, templates *repository.TemplateRepo, submissions *repository.SubmissionRepo) *InspectionService {
	return &InspectionService{
		sessions:    make(map[string]*checklist.Session),
		equipment:   equipment,
		templates:   templates,
		submissions: submissions,
	}
}

// Equipment implements checklist.TemplateSource.
func (s *InspectionService) Equipment(id string) (*models.Equipment, error) {
	return s.equipment.FindByID(id)
}

// Template implements checklist.TemplateSource.
func (s *InspectionService) Template(id string) (*models.Template, error) {
	return s.templates.FindByID(id)
}

// Start opens a new inspection session for the acting driver.
func (s *InspectionService) Start(actor auth.Identity) *checklist.Session {
	sess := checklist.NewSession(uuid.NewString())
	sess.SetActor(actor)
	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session, enforcing that it belongs to the caller.
func (s *InspectionService) Get(id string, actor auth.Identity) (*checklist.Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, errSessionNotFound
	}
	if owner := sess.Actor(); owner.State == auth.IdentityIdentified && owner.ID != actor.ID {
		return nil, errSessionNotFound
	}
	return sess, nil
}

// Select resolves the equipment's linked template into the session.
func (s *InspectionService) Select(sessionID string, actor auth.Identity, equipmentID string) (*checklist.Session, error) {
	sess, err := s.Get(sessionID, actor)
	if err != nil {
		return nil, err
	}
	if err := sess.Select(equipmentID, s); err != nil {
		return sess, err
	}
	return sess, nil
}

// Answer records one selection in the session.
func (s *InspectionService) Answer(sessionID string, actor auth.Identity, fieldID, subitemID, value, note string) (*checklist.Session, error) {
	sess, err := s.Get(sessionID, actor)
	if err != nil {
		return nil, err
	}
	if err := sess.SetAnswer(fieldID, subitemID, value, note); err != nil {
		return sess, err
	}
	return sess, nil
}

// Submit validates and persists the session's answers as a submission.
func (s *InspectionService) Submit(sessionID string, actor auth.Identity) (*models.Submission, *checklist.Session, error) {
	sess, err := s.Get(sessionID, actor)
	if err != nil {
		return nil, nil, err
	}
	sub, err := sess.Submit(time.Now(), s.submissions.Create)
	if err != nil {
		return nil, sess, err
	}
	return sub, sess, nil
}

// History lists the driver's submissions from the last 30 days, newest
// first.
func (s *InspectionService) History(driverID string) ([]models.Submission, error) {
	since := time.Now().AddDate(0, 0, -30).UTC().Format(time.RFC3339)
	return s.submissions.FindByDriverSince(driverID, since)
}

// GetSubmission fetches one persisted submission for the viewer.
func (s *InspectionService) GetSubmission(id string) (*models.Submission, error) {
	sub, err := s.submissions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errors.New("submission not found")
	}
	return sub, nil
}
