package service

import (
	"errors"
	"testing"

	"frotacheck/internal/auth"
	"frotacheck/internal/checklist"
	"frotacheck/internal/docstore"
	"frotacheck/internal/models"
	"frotacheck/internal/repository"
)

type inspectionFixture struct {
	insp     *InspectionService
	links    *LinkService
	template *models.Template
	equip    *models.Equipment
}

func newInspectionFixture(t *testing.T) *inspectionFixture {
	t.Helper()
	store, err := docstore.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	templateRepo := repository.NewTemplateRepo(store)
	equipRepo := repository.NewEquipmentRepo(store)
	subRepo := repository.NewSubmissionRepo(store)

	templateSvc := NewTemplateService(templateRepo)
	linkSvc := NewLinkService(equipRepo, templateRepo)

	tpl, err := templateSvc.Create("Inspeção Diária", "CL-001", "admin-1", draftFields())
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	eq, err := linkSvc.Create(&models.Equipment{Name: "Caminhão 12", Type: "caminhao"})
	if err != nil {
		t.Fatalf("create equipment: %v", err)
	}
	if _, err := linkSvc.Link(eq.ID, tpl.ID); err != nil {
		t.Fatalf("link: %v", err)
	}

	return &inspectionFixture{
		insp:     NewInspectionService(equipRepo, templateRepo, subRepo),
		links:    linkSvc,
		template: tpl,
		equip:    eq,
	}
}

func driver() auth.Identity {
	return auth.Identified("drv-1", "driver@frotacheck.local")
}

func TestInspectionFullRun(t *testing.T) {
	fx := newInspectionFixture(t)
	actor := driver()

	sess := fx.insp.Start(actor)
	if sess.State() != checklist.StateIdle {
		t.Fatalf("initial state: %v", sess.State())
	}

	if _, err := fx.insp.Select(sess.ID(), actor, fx.equip.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	if sess.State() != checklist.StateReady {
		t.Fatalf("state after select: %v", sess.State())
	}

	// Submitting half-answered surfaces every violation at once and
	// writes nothing.
	f := fx.template.Fields[0]
	if _, err := fx.insp.Answer(sess.ID(), actor, f.ID, f.Subitems[0].ID, "Conforme", ""); err != nil {
		t.Fatalf("answer: %v", err)
	}
	_, _, err := fx.insp.Submit(sess.ID(), actor)
	if !errors.Is(err, checklist.ErrMissingAnswers) {
		t.Fatalf("expected ErrMissingAnswers, got %v", err)
	}
	if subs, _ := fx.insp.History("drv-1"); len(subs) != 0 {
		t.Fatalf("blocked submit persisted: %+v", subs)
	}

	if _, err := fx.insp.Answer(sess.ID(), actor, f.ID, f.Subitems[1].ID, models.ObsOption, "fluido baixo"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	sub, _, err := fx.insp.Submit(sess.ID(), actor)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.TemplateID != fx.template.ID || sub.TemplateCode != "CL-001" || sub.DriverID != "drv-1" {
		t.Fatalf("submission: %+v", sub)
	}

	subs, err := fx.insp.History("drv-1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(subs) != 1 || subs[0].ID != sub.ID {
		t.Fatalf("history: %+v", subs)
	}
	obs := subs[0].Responses[checklist.AnswerKey(f.ID, f.Subitems[1].ID)]
	if obs.Type != models.ObsOption || obs.Text != "fluido baixo" {
		t.Fatalf("obs answer lost: %+v", obs)
	}

	got, err := fx.insp.GetSubmission(sub.ID)
	if err != nil || got.ID != sub.ID {
		t.Fatalf("get submission: %+v %v", got, err)
	}
}

func TestInspectionSelectUnlinkedEquipment(t *testing.T) {
	fx := newInspectionFixture(t)
	actor := driver()

	if _, err := fx.links.Unlink(fx.equip.ID); err != nil {
		t.Fatalf("unlink: %v", err)
	}

	sess := fx.insp.Start(actor)
	_, err := fx.insp.Select(sess.ID(), actor, fx.equip.ID)
	if !errors.Is(err, checklist.ErrNoChecklistLinked) {
		t.Fatalf("expected ErrNoChecklistLinked, got %v", err)
	}
	if sess.State() != checklist.StateNoTemplate {
		t.Fatalf("state: %v", sess.State())
	}
}

func TestInspectionSessionOwnership(t *testing.T) {
	fx := newInspectionFixture(t)

	sess := fx.insp.Start(driver())
	other := auth.Identified("drv-2", "other@frotacheck.local")
	if _, err := fx.insp.Get(sess.ID(), other); err == nil {
		t.Fatal("another driver can read the session")
	}
	if _, err := fx.insp.Get("nope", driver()); err == nil {
		t.Fatal("unknown session id resolved")
	}
}
