package checklist

import (
	"strings"

	"frotacheck/internal/models"
)

// ValidateTemplate checks the structural rules a template must satisfy
// before it may be persisted: a non-blank title, at least one field, and
// at least one subitem per field. The first failing rule is returned as
// a specific error, never a generic "invalid".
func ValidateTemplate(t *models.Template) error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if len(t.Fields) == 0 {
		return ErrNoFields
	}
	for i := range t.Fields {
		if len(t.Fields[i].Subitems) == 0 {
			return &FieldWithoutSubitemsError{Position: i, Title: t.Fields[i].Title}
		}
	}
	return nil
}

// AnswerKey builds the response-map key for a (field, subitem) pair.
// Keys use the stable ids assigned at edit time, so editing a template
// never silently remaps recorded answers the way positional keys would.
func AnswerKey(fieldID, subitemID string) string {
	return fieldID + "-" + subitemID
}

// Violation is one unanswered mandatory subitem.
type Violation struct {
	FieldID      string `json:"campoId"`
	SubitemID    string `json:"subitemId"`
	FieldTitle   string `json:"campo"`
	SubitemTitle string `json:"subitem"`
}

// Path renders the violation the way it is shown to the driver.
func (v Violation) Path() string {
	return v.FieldTitle + " → " + v.SubitemTitle
}

// MissingRequired computes the complete set of unanswered mandatory
// subitems. A subitem is mandatory when its field is required or the
// subitem itself is; the field flag applies transitively to every
// subitem regardless of the subitem's own flag. The whole set is always
// computed so the driver sees every problem at once.
func MissingRequired(t *models.Template, responses map[string]models.Answer) []Violation {
	var violations []Violation
	for i := range t.Fields {
		f := &t.Fields[i]
		for j := range f.Subitems {
			s := &f.Subitems[j]
			if !f.Required && !s.Required {
				continue
			}
			if _, answered := responses[AnswerKey(f.ID, s.ID)]; !answered {
				violations = append(violations, Violation{
					FieldID:      f.ID,
					SubitemID:    s.ID,
					FieldTitle:   f.Title,
					SubitemTitle: s.Title,
				})
			}
		}
	}
	return violations
}
