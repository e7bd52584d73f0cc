package checklist

import (
	"fmt"
	"sync"
	"time"

	"frotacheck/internal/auth"
	"frotacheck/internal/models"
)

// State is the runtime session state.
type State int

const (
	StateIdle State = iota
	StateResolving
	StateNoTemplate
	StateReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateNoTemplate:
		return "no_template"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// TemplateSource resolves equipment and template documents from the
// store. A miss is (nil, nil); errors are store failures.
type TemplateSource interface {
	Equipment(id string) (*models.Equipment, error)
	Template(id string) (*models.Template, error)
}

// Session is one driver's inspection run: select an equipment, resolve
// its linked template, accumulate answers, submit. A session is owned by
// a single driver; methods are safe for the interleaved calls an HTTP
// surface produces.
type Session struct {
	mu          sync.Mutex
	id          string
	actor       auth.Identity
	gen         uint64
	state       State
	equipmentID string
	template    *models.Template
	responses   map[string]models.Answer
	violations  []Violation
}

func NewSession(id string) *Session {
	return &Session{
		id:        id,
		state:     StateIdle,
		actor:     auth.Unresolved(),
		responses: map[string]models.Answer{},
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) SetActor(actor auth.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actor = actor
}

func (s *Session) Actor() auth.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actor
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) EquipmentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.equipmentID
}

// Template returns the loaded template, or nil outside StateReady. The
// template is read-shared and must not be mutated by callers.
func (s *Session) Template() *models.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template
}

func (s *Session) Answers() map[string]models.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyAnswers(s.responses)
}

// Violations returns the violation set computed by the last submit
// attempt.
func (s *Session) Violations() []Violation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Violation(nil), s.violations...)
}

type snapshot struct {
	state       State
	equipmentID string
	template    *models.Template
	responses   map[string]models.Answer
	violations  []Violation
}

func (s *Session) snap() snapshot {
	return snapshot{
		state:       s.state,
		equipmentID: s.equipmentID,
		template:    s.template,
		responses:   s.responses,
		violations:  s.violations,
	}
}

func (s *Session) restore(sn snapshot) {
	s.state = sn.state
	s.equipmentID = sn.equipmentID
	s.template = sn.template
	s.responses = sn.responses
	s.violations = sn.violations
}

// Select picks an equipment and resolves its linked template. An empty
// id clears the selection. Each call supersedes any resolution still in
// flight: a slower Select that loses the race discards its response
// instead of overwriting state for the newer selection.
//
// Outcomes: StateReady with a fresh answer map; StateNoTemplate with
// ErrNoChecklistLinked or ErrTemplateNotFound (blocked, never a crash);
// or, on a store failure or unknown equipment, the previous state
// restored untouched.
func (s *Session) Select(equipmentID string, src TemplateSource) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	prev := s.snap()

	if equipmentID == "" {
		s.state = StateIdle
		s.equipmentID = ""
		s.template = nil
		s.responses = map[string]models.Answer{}
		s.violations = nil
		s.mu.Unlock()
		return nil
	}

	s.state = StateResolving
	s.equipmentID = equipmentID
	s.mu.Unlock()

	// Store calls happen outside the lock so a newer Select can
	// overtake this one.
	var (
		tpl     *models.Template
		linkErr error
	)
	eq, err := src.Equipment(equipmentID)
	if err == nil {
		switch {
		case eq == nil:
			linkErr = ErrEquipmentNotFound
		case eq.TemplateID == nil || *eq.TemplateID == "":
			linkErr = ErrNoChecklistLinked
		default:
			tpl, err = src.Template(*eq.TemplateID)
			if err == nil && tpl == nil {
				linkErr = ErrTemplateNotFound
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return ErrStaleResolution
	}

	switch {
	case err != nil:
		s.restore(prev)
		return err
	case linkErr == ErrEquipmentNotFound:
		s.restore(prev)
		return linkErr
	case linkErr != nil:
		s.state = StateNoTemplate
		s.template = nil
		s.responses = map[string]models.Answer{}
		s.violations = nil
		return linkErr
	default:
		tpl.Normalize()
		s.state = StateReady
		s.template = tpl
		s.responses = map[string]models.Answer{}
		s.violations = nil
		return nil
	}
}

// SetAnswer records the selection for one (field, subitem) pair with
// radio semantics: a later value for the same pair replaces the earlier
// one. The note is only kept when the selected value is the OBS sentinel
// option; any other selection drops it.
func (s *Session) SetAnswer(fieldID, subitemID, value, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return ErrNotReady
	}
	f := s.template.FieldByID(fieldID)
	if f == nil {
		return fmt.Errorf("unknown field %q", fieldID)
	}
	sub := f.SubitemByID(subitemID)
	if sub == nil {
		return fmt.Errorf("unknown subitem %q in field %q", subitemID, f.Title)
	}
	if f.Type == models.FieldList && !containsOption(f.Options, value) {
		return fmt.Errorf("option %q is not offered by field %q", value, f.Title)
	}
	ans := models.Answer{Type: value, Subitem: sub.Title}
	if value == models.ObsOption {
		ans.Text = note
	}
	s.responses[AnswerKey(fieldID, subitemID)] = ans
	return nil
}

// Submit validates the required rule in one batch and, when the answer
// set is complete, builds the submission, persists it through persist,
// and resets the session for the next inspection. On violations nothing
// is written and the full violation set is retained for display; on a
// persistence failure the session keeps its prior state.
func (s *Session) Submit(now time.Time, persist func(*models.Submission) (string, error)) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, ErrNotReady
	}
	switch s.actor.State {
	case auth.IdentityUnresolved:
		return nil, ErrIdentityUnresolved
	case auth.IdentityAnonymous:
		return nil, ErrAnonymousSubmit
	}

	s.violations = MissingRequired(s.template, s.responses)
	if len(s.violations) > 0 {
		return nil, ErrMissingAnswers
	}

	sub := &models.Submission{
		EquipmentID:  s.equipmentID,
		TemplateID:   s.template.ID,
		TemplateCode: s.template.Code,
		Title:        s.template.Title,
		Responses:    copyAnswers(s.responses),
		SubmittedAt:  now.UTC().Format(time.RFC3339),
		DriverID:     s.actor.ID,
	}
	id, err := persist(sub)
	if err != nil {
		return nil, err
	}
	sub.ID = id

	s.gen++
	s.state = StateIdle
	s.equipmentID = ""
	s.template = nil
	s.responses = map[string]models.Answer{}
	s.violations = nil
	return sub, nil
}

func copyAnswers(src map[string]models.Answer) map[string]models.Answer {
	out := make(map[string]models.Answer, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func containsOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
