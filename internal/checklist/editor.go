package checklist

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"frotacheck/internal/models"
)

// Mode selects whether Build targets an insert or an update.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Editor owns an in-progress template draft: an ordered, nested
// collection of fields and subitems mutated by discrete operations. It
// is the single writer of its draft; a failed Build leaves the draft
// untouched so nothing typed is lost.
type Editor struct {
	mode  Mode
	id    string
	draft models.Template
}

// NewEditor starts a blank draft for a new template.
func NewEditor() *Editor {
	return &Editor{
		mode:  ModeCreate,
		draft: models.Template{Fields: []models.Field{}},
	}
}

// Edit loads a stored template into the editor. The draft is a deep
// copy, normalized, and legacy fields or subitems without a stable id
// get one assigned here.
func Edit(t *models.Template) *Editor {
	draft := cloneTemplate(t)
	draft.Normalize()
	for i := range draft.Fields {
		f := &draft.Fields[i]
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		for j := range f.Subitems {
			if f.Subitems[j].ID == "" {
				f.Subitems[j].ID = uuid.NewString()
			}
		}
	}
	return &Editor{mode: ModeEdit, id: t.ID, draft: *draft}
}

func (e *Editor) Mode() Mode         { return e.mode }
func (e *Editor) TemplateID() string { return e.id }

func (e *Editor) SetTitle(title string) { e.draft.Title = title }
func (e *Editor) SetCode(code string)   { e.draft.Code = code }

func (e *Editor) FieldCount() int { return len(e.draft.Fields) }

// Field returns the draft field at position i for attribute edits.
func (e *Editor) Field(i int) (*models.Field, error) {
	if i < 0 || i >= len(e.draft.Fields) {
		return nil, fmt.Errorf("no field at position %d", i)
	}
	return &e.draft.Fields[i], nil
}

// AddField appends a new field with defaults: empty title, type texto,
// both flags off, no options, no subitems. There is no upper bound on
// field count. The field gets its stable id here.
func (e *Editor) AddField() *models.Field {
	e.draft.Fields = append(e.draft.Fields, models.Field{
		ID:       uuid.NewString(),
		Type:     models.FieldText,
		Options:  []string{},
		Subitems: []models.Subitem{},
	})
	return &e.draft.Fields[len(e.draft.Fields)-1]
}

// RemoveField removes the field at position i; later fields shift down.
func (e *Editor) RemoveField(i int) error {
	if i < 0 || i >= len(e.draft.Fields) {
		return fmt.Errorf("no field at position %d", i)
	}
	e.draft.Fields = append(e.draft.Fields[:i], e.draft.Fields[i+1:]...)
	return nil
}

// AddSubitem appends an empty subitem to the field at fieldIdx.
func (e *Editor) AddSubitem(fieldIdx int) (*models.Subitem, error) {
	f, err := e.Field(fieldIdx)
	if err != nil {
		return nil, err
	}
	f.Subitems = append(f.Subitems, models.Subitem{ID: uuid.NewString()})
	return &f.Subitems[len(f.Subitems)-1], nil
}

// RemoveSubitem removes the subitem at subIdx within the field.
func (e *Editor) RemoveSubitem(fieldIdx, subIdx int) error {
	f, err := e.Field(fieldIdx)
	if err != nil {
		return err
	}
	if subIdx < 0 || subIdx >= len(f.Subitems) {
		return fmt.Errorf("no subitem at position %d", subIdx)
	}
	f.Subitems = append(f.Subitems[:subIdx], f.Subitems[subIdx+1:]...)
	return nil
}

// AddListOption appends value to the field's option list. The value is
// trimmed and a blank result is rejected. Duplicates are not checked;
// order is insertion order.
func (e *Editor) AddListOption(fieldIdx int, value string) error {
	f, err := e.Field(fieldIdx)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrBlankOption
	}
	f.Options = append(f.Options, value)
	return nil
}

// RemoveListOption removes the option at optIdx within the field.
func (e *Editor) RemoveListOption(fieldIdx, optIdx int) error {
	f, err := e.Field(fieldIdx)
	if err != nil {
		return err
	}
	if optIdx < 0 || optIdx >= len(f.Options) {
		return fmt.Errorf("no option at position %d", optIdx)
	}
	f.Options = append(f.Options[:optIdx], f.Options[optIdx+1:]...)
	return nil
}

// Build validates the draft and returns the fully-formed template ready
// for persistence. On validation failure the specific failing rule is
// returned and the draft is kept as-is for correction.
func (e *Editor) Build() (*models.Template, error) {
	if err := ValidateTemplate(&e.draft); err != nil {
		return nil, err
	}
	for i := range e.draft.Fields {
		if !models.ValidFieldType(e.draft.Fields[i].Type) {
			return nil, fmt.Errorf("field %q has unknown type %q", e.draft.Fields[i].Title, e.draft.Fields[i].Type)
		}
	}
	out := cloneTemplate(&e.draft)
	out.ID = e.id
	return out, nil
}

func cloneTemplate(t *models.Template) *models.Template {
	out := *t
	out.Fields = make([]models.Field, len(t.Fields))
	for i, f := range t.Fields {
		nf := f
		if f.MinLength != nil {
			v := *f.MinLength
			nf.MinLength = &v
		}
		if f.MaxLength != nil {
			v := *f.MaxLength
			nf.MaxLength = &v
		}
		nf.Options = append([]string(nil), f.Options...)
		nf.Subitems = append([]models.Subitem(nil), f.Subitems...)
		out.Fields[i] = nf
	}
	return &out
}
