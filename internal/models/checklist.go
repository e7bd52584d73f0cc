package models

// FieldType selects which configuration attributes and which runtime
// input widget apply to a field.
type FieldType string

const (
	FieldText    FieldType = "texto"
	FieldNumber  FieldType = "numero"
	FieldBoolean FieldType = "booleano"
	FieldDate    FieldType = "data"
	FieldList    FieldType = "lista"
)

// ValidFieldType reports whether t is one of the five known field types.
func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldText, FieldNumber, FieldBoolean, FieldDate, FieldList:
		return true
	}
	return false
}

// FieldSize is the visual width hint for text fields.
type FieldSize string

const (
	SizeShort  FieldSize = "curto"
	SizeMedium FieldSize = "medio"
	SizeLong   FieldSize = "longo"
)

// Subitem is a single inspectable question within a field. LegendID is a
// weak reference into legendas_checklist; a dangling id is a lookup miss,
// not an error.
type Subitem struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"titulo"`
	Required bool   `json:"obrigatorio"`
	Critical bool   `json:"critico"`
	LegendID string `json:"legendaId,omitempty"`
}

// Field is a top-level grouping within a template. The type-conditional
// attributes are only meaningful for the matching Type; stored documents
// may carry stale ones, which readers ignore.
type Field struct {
	ID       string    `json:"id,omitempty"`
	Title    string    `json:"titulo"`
	Type     FieldType `json:"tipo"`
	Required bool      `json:"obrigatorio"`
	Critical bool      `json:"critico"`

	// tipo == texto
	MinLength   *int      `json:"minLength,omitempty"`
	MaxLength   *int      `json:"maxLength,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Size        FieldSize `json:"tamanho,omitempty"`

	// tipo == lista. Order is insertion order; duplicates are allowed.
	Options []string `json:"opcoes"`

	Subitems []Subitem `json:"subitens"`
}

// Template is a reusable checklist definition authored by an
// administrator and answered by drivers at inspection time.
type Template struct {
	ID        string  `json:"_id,omitempty"`
	Title     string  `json:"titulo"`
	Code      string  `json:"codigo,omitempty"`
	Fields    []Field `json:"campos"`
	CreatedBy string  `json:"createdBy,omitempty"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// Normalize backfills attributes that legacy documents may lack: absent
// slices become empty, a missing type falls back to texto. Malformed
// optional attributes are never an error at the read boundary.
func (t *Template) Normalize() {
	if t.Fields == nil {
		t.Fields = []Field{}
	}
	for i := range t.Fields {
		f := &t.Fields[i]
		if f.Type == "" {
			f.Type = FieldText
		}
		if f.Options == nil {
			f.Options = []string{}
		}
		if f.Subitems == nil {
			f.Subitems = []Subitem{}
		}
	}
}

// FieldByID returns the field with the given stable id, or nil.
func (t *Template) FieldByID(id string) *Field {
	for i := range t.Fields {
		if t.Fields[i].ID == id {
			return &t.Fields[i]
		}
	}
	return nil
}

// SubitemByID returns the subitem with the given stable id, or nil.
func (f *Field) SubitemByID(id string) *Subitem {
	for i := range f.Subitems {
		if f.Subitems[i].ID == id {
			return &f.Subitems[i]
		}
	}
	return nil
}
