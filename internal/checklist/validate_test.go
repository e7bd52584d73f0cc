package checklist

import (
	"errors"
	"testing"

	"frotacheck/internal/models"
)

func testTemplate() *models.Template {
	return &models.Template{
		ID:    "tpl-1",
		Title: "Inspeção Diária",
		Code:  "CL-001",
		Fields: []models.Field{
			{
				ID:       "f1",
				Title:    "Freios",
				Type:     models.FieldList,
				Required: true,
				Options:  []string{"Conforme", "Não conforme", models.ObsOption},
				Subitems: []models.Subitem{
					{ID: "s1", Title: "Pastilhas"},
					{ID: "s2", Title: "Fluido"},
				},
			},
			{
				ID:      "f2",
				Title:   "Pneus",
				Type:    models.FieldList,
				Options: []string{"Conforme", "Não conforme"},
				Subitems: []models.Subitem{
					{ID: "s3", Title: "Calibragem", Required: true},
					{ID: "s4", Title: "Desgaste"},
				},
			},
		},
	}
}

func TestValidateTemplate(t *testing.T) {
	tpl := testTemplate()
	if err := ValidateTemplate(tpl); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}

	blank := testTemplate()
	blank.Title = "   "
	if err := ValidateTemplate(blank); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}

	empty := testTemplate()
	empty.Fields = nil
	if err := ValidateTemplate(empty); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
}

func TestValidateTemplateFieldWithoutSubitems(t *testing.T) {
	tpl := testTemplate()
	tpl.Fields[1].Subitems = nil

	err := ValidateTemplate(tpl)
	var fwse *FieldWithoutSubitemsError
	if !errors.As(err, &fwse) {
		t.Fatalf("expected FieldWithoutSubitemsError, got %v", err)
	}
	if fwse.Position != 1 || fwse.Title != "Pneus" {
		t.Fatalf("wrong error detail: %+v", fwse)
	}
}

func TestMissingRequiredFieldFlagCoversAllSubitems(t *testing.T) {
	tpl := testTemplate()

	// Field f1 is required, so both its subitems are mandatory even
	// though neither carries its own flag.
	got := MissingRequired(tpl, map[string]models.Answer{})
	if len(got) != 3 {
		t.Fatalf("expected 3 violations, got %d: %+v", len(got), got)
	}

	want := []string{"Freios → Pastilhas", "Freios → Fluido", "Pneus → Calibragem"}
	for i, v := range got {
		if v.Path() != want[i] {
			t.Errorf("violation %d: got %q, want %q", i, v.Path(), want[i])
		}
	}
}

func TestMissingRequiredAnsweredPairsAreExcluded(t *testing.T) {
	tpl := testTemplate()
	responses := map[string]models.Answer{
		AnswerKey("f1", "s1"): {Type: "Conforme", Subitem: "Pastilhas"},
		AnswerKey("f2", "s3"): {Type: "Conforme", Subitem: "Calibragem"},
	}

	got := MissingRequired(tpl, responses)
	if len(got) != 1 {
		t.Fatalf("expected 1 violation, got %d: %+v", len(got), got)
	}
	if got[0].FieldID != "f1" || got[0].SubitemID != "s2" {
		t.Fatalf("wrong violation: %+v", got[0])
	}
}

func TestMissingRequiredOptionalSubitemsNeverViolate(t *testing.T) {
	tpl := testTemplate()
	tpl.Fields[0].Required = false
	tpl.Fields[1].Subitems[0].Required = false

	if got := MissingRequired(tpl, map[string]models.Answer{}); len(got) != 0 {
		t.Fatalf("expected no violations, got %+v", got)
	}
}

func TestAnswerKey(t *testing.T) {
	if got := AnswerKey("f1", "s2"); got != "f1-s2" {
		t.Fatalf("got %q", got)
	}
}
