package checklist

import (
	"errors"
	"fmt"
)

// Structural validation errors (editor, before persistence).
var (
	ErrTitleRequired = errors.New("template title is required")
	ErrNoFields      = errors.New("template must have at least one field")
	ErrBlankOption   = errors.New("list option must not be blank")
)

// Runtime session errors.
var (
	ErrMissingAnswers     = errors.New("required subitems are missing answers")
	ErrNoChecklistLinked  = errors.New("equipment has no checklist linked")
	ErrTemplateNotFound   = errors.New("linked checklist template does not exist")
	ErrEquipmentNotFound  = errors.New("equipment not found")
	ErrStaleResolution    = errors.New("resolution superseded by a newer selection")
	ErrNotReady           = errors.New("no checklist loaded")
	ErrIdentityUnresolved = errors.New("user identity not resolved yet")
	ErrAnonymousSubmit    = errors.New("an identified driver is required to submit")
)

// FieldWithoutSubitemsError names the field that fails the
// minimum-one-subitem rule, so the editor can point at it.
type FieldWithoutSubitemsError struct {
	Position int // zero-based position within the template
	Title    string
}

func (e *FieldWithoutSubitemsError) Error() string {
	title := e.Title
	if title == "" {
		title = fmt.Sprintf("field %d", e.Position+1)
	}
	return fmt.Sprintf("%s must have at least one subitem", title)
}
