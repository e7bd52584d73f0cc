package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"frotacheck/internal/docstore"
	"frotacheck/internal/handler"
	"frotacheck/internal/models"
	"frotacheck/internal/repository"
	"frotacheck/internal/service"
)

const testSecret = "test-secret"

func newServer(t *testing.T) (*httptest.Server, *service.AuthService) {
	t.Helper()
	store, err := docstore.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	userRepo := repository.NewUserRepo(store)
	templateRepo := repository.NewTemplateRepo(store)
	equipRepo := repository.NewEquipmentRepo(store)
	subRepo := repository.NewSubmissionRepo(store)
	legendRepo := repository.NewLegendRepo(store)
	journeyRepo := repository.NewJourneyRepo(store)

	authSvc := service.NewAuthService(userRepo, testSecret)
	templateSvc := service.NewTemplateService(templateRepo)
	linkSvc := service.NewLinkService(equipRepo, templateRepo)
	inspSvc := service.NewInspectionService(equipRepo, templateRepo, subRepo)
	legendSvc := service.NewLegendService(legendRepo)
	journeySvc := service.NewJourneyService(journeyRepo)

	r := New(testSecret,
		handler.NewAuthHandler(authSvc),
		handler.NewTemplateHandler(templateSvc),
		handler.NewEquipmentHandler(linkSvc),
		handler.NewInspectionHandler(inspSvc),
		handler.NewLegendHandler(legendSvc),
		handler.NewJourneyHandler(journeySvc),
		handler.NewDashboardHandler(templateSvc, linkSvc, subRepo, equipRepo),
	)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, authSvc
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, srv.URL+"/api/v1"+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func adminToken(t *testing.T, srv *httptest.Server, authSvc *service.AuthService) string {
	t.Helper()
	if err := authSvc.SeedAdmin("admin@test.local", "admin123"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	var res service.AuthResult
	code := call(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "admin@test.local", "password": "admin123",
	}, &res)
	if code != http.StatusOK {
		t.Fatalf("admin login: %d", code)
	}
	return res.Token
}

func driverToken(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	var res service.AuthResult
	code := call(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "driver@test.local", "password": "senha123", "name": "João",
	}, &res)
	if code != http.StatusCreated {
		t.Fatalf("register driver: %d", code)
	}
	return res.Token
}

func TestAuthRequiredAndRoleGates(t *testing.T) {
	srv, authSvc := newServer(t)

	if code := call(t, srv, http.MethodGet, "/equipamentos", "", nil, nil); code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: %d", code)
	}

	driver := driverToken(t, srv)
	if code := call(t, srv, http.MethodGet, "/equipamentos", driver, nil, nil); code != http.StatusOK {
		t.Fatalf("driver list: %d", code)
	}
	if code := call(t, srv, http.MethodPost, "/templates", driver, map[string]any{"titulo": "x"}, nil); code != http.StatusForbidden {
		t.Fatalf("driver creating template: %d", code)
	}
	if code := call(t, srv, http.MethodGet, "/dashboard", driver, nil, nil); code != http.StatusForbidden {
		t.Fatalf("driver dashboard: %d", code)
	}

	admin := adminToken(t, srv, authSvc)
	if code := call(t, srv, http.MethodGet, "/dashboard", admin, nil, nil); code != http.StatusOK {
		t.Fatalf("admin dashboard: %d", code)
	}
}

func TestInspectionFlowOverHTTP(t *testing.T) {
	srv, authSvc := newServer(t)
	admin := adminToken(t, srv, authSvc)
	driver := driverToken(t, srv)

	// Admin builds the template and links it to an equipment.
	var tpl models.Template
	code := call(t, srv, http.MethodPost, "/templates", admin, map[string]any{
		"titulo": "Inspeção Diária",
		"codigo": "CL-001",
		"campos": []map[string]any{{
			"titulo":      "Freios",
			"tipo":        "lista",
			"obrigatorio": true,
			"opcoes":      []string{"Conforme", "Não conforme", "OBS"},
			"subitens":    []map[string]any{{"titulo": "Pastilhas"}},
		}},
	}, &tpl)
	if code != http.StatusCreated {
		t.Fatalf("create template: %d", code)
	}

	var eq models.Equipment
	code = call(t, srv, http.MethodPost, "/equipamentos", admin, map[string]any{
		"nome": "Caminhão 12", "tipo": "caminhao",
	}, &eq)
	if code != http.StatusCreated {
		t.Fatalf("create equipment: %d", code)
	}
	code = call(t, srv, http.MethodPut, fmt.Sprintf("/equipamentos/%s/checklist", eq.ID), admin,
		map[string]string{"checklistModeloId": tpl.ID}, nil)
	if code != http.StatusOK {
		t.Fatalf("link: %d", code)
	}

	// Driver runs the inspection.
	var sess struct {
		ID    string `json:"id"`
		State string `json:"state"`
	}
	if code := call(t, srv, http.MethodPost, "/inspecoes/sessoes", driver, nil, &sess); code != http.StatusCreated {
		t.Fatalf("start session: %d", code)
	}
	base := "/inspecoes/sessoes/" + sess.ID

	if code := call(t, srv, http.MethodPut, base+"/equipamento", driver,
		map[string]string{"equipamentoId": eq.ID}, &sess); code != http.StatusOK {
		t.Fatalf("select equipment: %d", code)
	}
	if sess.State != "ready" {
		t.Fatalf("state after select: %q", sess.State)
	}

	// Submit with nothing answered: every violation comes back, nothing
	// is written.
	var blocked struct {
		Pendencias []map[string]string `json:"pendencias"`
	}
	if code := call(t, srv, http.MethodPost, base+"/enviar", driver, nil, &blocked); code != http.StatusUnprocessableEntity {
		t.Fatalf("blocked submit: %d", code)
	}
	if len(blocked.Pendencias) != 1 || blocked.Pendencias[0]["campo"] != "Freios" {
		t.Fatalf("pendencias: %+v", blocked.Pendencias)
	}

	code = call(t, srv, http.MethodPut, base+"/respostas", driver, map[string]string{
		"campoId":   tpl.Fields[0].ID,
		"subitemId": tpl.Fields[0].Subitems[0].ID,
		"tipo":      "Conforme",
	}, nil)
	if code != http.StatusOK {
		t.Fatalf("answer: %d", code)
	}

	var sub models.Submission
	if code := call(t, srv, http.MethodPost, base+"/enviar", driver, nil, &sub); code != http.StatusCreated {
		t.Fatalf("submit: %d", code)
	}
	if sub.TemplateID != tpl.ID || sub.EquipmentID != eq.ID {
		t.Fatalf("submission: %+v", sub)
	}

	var history []models.Submission
	if code := call(t, srv, http.MethodGet, "/inspecoes/historico", driver, nil, &history); code != http.StatusOK {
		t.Fatalf("history: %d", code)
	}
	if len(history) != 1 || history[0].ID != sub.ID {
		t.Fatalf("history: %+v", history)
	}
}

func TestSelectEquipmentWithoutLinkOverHTTP(t *testing.T) {
	srv, authSvc := newServer(t)
	admin := adminToken(t, srv, authSvc)
	driver := driverToken(t, srv)

	var eq models.Equipment
	if code := call(t, srv, http.MethodPost, "/equipamentos", admin, map[string]any{
		"nome": "Empilhadeira 3", "tipo": "empilhadeira",
	}, &eq); code != http.StatusCreated {
		t.Fatalf("create equipment: %d", code)
	}

	var sess struct {
		ID string `json:"id"`
	}
	if code := call(t, srv, http.MethodPost, "/inspecoes/sessoes", driver, nil, &sess); code != http.StatusCreated {
		t.Fatalf("start session: %d", code)
	}

	var res struct {
		Session struct {
			State string `json:"state"`
		} `json:"session"`
		Warning string `json:"warning"`
	}
	code := call(t, srv, http.MethodPut, "/inspecoes/sessoes/"+sess.ID+"/equipamento", driver,
		map[string]string{"equipamentoId": eq.ID}, &res)
	if code != http.StatusOK {
		t.Fatalf("select: %d", code)
	}
	if res.Session.State != "no_template" || res.Warning == "" {
		t.Fatalf("response: %+v", res)
	}
}
