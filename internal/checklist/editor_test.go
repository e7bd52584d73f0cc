package checklist

import (
	"errors"
	"testing"

	"frotacheck/internal/models"
)

func TestEditorBuildValidTemplate(t *testing.T) {
	ed := NewEditor()
	ed.SetTitle("Checklist Caminhão")
	ed.SetCode("CAM-01")

	f := ed.AddField()
	f.Title = "Cabine"
	f.Type = models.FieldList
	if err := ed.AddListOption(0, "Conforme"); err != nil {
		t.Fatalf("add option: %v", err)
	}
	sub, err := ed.AddSubitem(0)
	if err != nil {
		t.Fatalf("add subitem: %v", err)
	}
	sub.Title = "Cinto de segurança"

	tpl, err := ed.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if tpl.Title != "Checklist Caminhão" || tpl.Code != "CAM-01" {
		t.Fatalf("wrong header: %+v", tpl)
	}
	if len(tpl.Fields) != 1 || len(tpl.Fields[0].Subitems) != 1 {
		t.Fatalf("wrong shape: %+v", tpl.Fields)
	}
	if tpl.Fields[0].ID == "" || tpl.Fields[0].Subitems[0].ID == "" {
		t.Fatal("ids not assigned")
	}
}

func TestEditorBuildFailuresKeepDraft(t *testing.T) {
	ed := NewEditor()

	if _, err := ed.Build(); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}

	ed.SetTitle("Só título")
	if _, err := ed.Build(); !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}

	f := ed.AddField()
	f.Title = "Motor"
	_, err := ed.Build()
	var fwse *FieldWithoutSubitemsError
	if !errors.As(err, &fwse) {
		t.Fatalf("expected FieldWithoutSubitemsError, got %v", err)
	}

	// Nothing typed so far was lost.
	if ed.FieldCount() != 1 {
		t.Fatalf("draft lost a field: %d", ed.FieldCount())
	}
	kept, _ := ed.Field(0)
	if kept.Title != "Motor" {
		t.Fatalf("draft lost edits: %+v", kept)
	}

	// Fixing the draft makes the same editor build.
	sub, _ := ed.AddSubitem(0)
	sub.Title = "Óleo"
	if _, err := ed.Build(); err != nil {
		t.Fatalf("build after fix: %v", err)
	}
}

func TestEditorRemoveFieldShiftsLaterFields(t *testing.T) {
	ed := NewEditor()
	ed.SetTitle("t")
	for _, name := range []string{"A", "B", "C"} {
		f := ed.AddField()
		f.Title = name
	}

	if err := ed.RemoveField(1); err != nil {
		t.Fatalf("remove field: %v", err)
	}
	if ed.FieldCount() != 2 {
		t.Fatalf("count: %d", ed.FieldCount())
	}
	f0, _ := ed.Field(0)
	f1, _ := ed.Field(1)
	if f0.Title != "A" || f1.Title != "C" {
		t.Fatalf("wrong order after remove: %q, %q", f0.Title, f1.Title)
	}

	if err := ed.RemoveField(5); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
}

func TestEditorListOptions(t *testing.T) {
	ed := NewEditor()
	ed.AddField()

	if err := ed.AddListOption(0, "   "); !errors.Is(err, ErrBlankOption) {
		t.Fatalf("expected ErrBlankOption, got %v", err)
	}

	// Remove then re-add restores the same list.
	for _, opt := range []string{"Sim", "Não"} {
		if err := ed.AddListOption(0, opt); err != nil {
			t.Fatalf("add %q: %v", opt, err)
		}
	}
	if err := ed.RemoveListOption(0, 1); err != nil {
		t.Fatalf("remove option: %v", err)
	}
	if err := ed.AddListOption(0, "Não"); err != nil {
		t.Fatalf("re-add option: %v", err)
	}
	f, _ := ed.Field(0)
	if len(f.Options) != 2 || f.Options[0] != "Sim" || f.Options[1] != "Não" {
		t.Fatalf("options: %v", f.Options)
	}

	// Trimming happens before the append.
	if err := ed.AddListOption(0, "  OBS  "); err != nil {
		t.Fatalf("add trimmed: %v", err)
	}
	if f.Options[2] != "OBS" {
		t.Fatalf("option not trimmed: %q", f.Options[2])
	}
}

func TestEditLoadsACopyAndAssignsMissingIDs(t *testing.T) {
	stored := testTemplate()
	stored.Fields[0].ID = ""
	stored.Fields[0].Subitems[1].ID = ""

	ed := Edit(stored)
	if ed.Mode() != ModeEdit || ed.TemplateID() != "tpl-1" {
		t.Fatalf("wrong editor identity: mode=%v id=%q", ed.Mode(), ed.TemplateID())
	}

	f, _ := ed.Field(0)
	if f.ID == "" || f.Subitems[1].ID == "" {
		t.Fatal("missing ids not backfilled")
	}

	// Draft edits never touch the stored value.
	f.Title = "alterado"
	if stored.Fields[0].Title == "alterado" {
		t.Fatal("edit leaked into the source template")
	}

	tpl, err := ed.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if tpl.ID != "tpl-1" {
		t.Fatalf("built template lost its id: %q", tpl.ID)
	}
}

func TestEditorBuildRejectsUnknownFieldType(t *testing.T) {
	ed := NewEditor()
	ed.SetTitle("t")
	f := ed.AddField()
	f.Title = "x"
	f.Type = "cor"
	sub, _ := ed.AddSubitem(0)
	sub.Title = "y"

	if _, err := ed.Build(); err == nil {
		t.Fatal("expected error for unknown field type")
	}
}
