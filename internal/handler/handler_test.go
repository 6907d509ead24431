package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shec-toronto/community-health-api/internal/i18n"
	"github.com/shec-toronto/community-health-api/internal/model"
	"github.com/shec-toronto/community-health-api/internal/service"
	"github.com/shec-toronto/community-health-api/internal/store"
)

func newTestRouter() (chi.Router, *store.MemStore) {
	st := store.NewMemStore()
	h := New(service.New(st), i18n.NewTranslator("en"))
	r := chi.NewRouter()
	r.Get("/health", HealthCheck)
	h.Routes(r)
	return r, st
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func createWorkshop(t *testing.T, r http.Handler, maxAttendees int) model.Workshop {
	t.Helper()
	date := time.Now().Add(72 * time.Hour)
	rec := doJSON(t, r, http.MethodPost, "/api/workshops", model.CreateWorkshopRequest{
		Title:        model.LocalizedText{En: "Blood Pressure Basics", So: "Aasaaska Cadaadiska Dhiigga"},
		Description:  model.LocalizedText{En: "Monitoring at home", So: "Kormeerka guriga"},
		Category:     model.CategoryChronicDisease,
		Date:         date,
		EndDate:      date.Add(2 * time.Hour),
		Location:     "Community Centre",
		MaxAttendees: maxAttendees,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create workshop: status %d, body %s", rec.Code, rec.Body.String())
	}
	return decode[model.Workshop](t, rec)
}

func registrant() model.RegisterRequest {
	return model.RegisterRequest{
		FirstName:         "Khadija",
		LastName:          "Nur",
		Email:             "khadija@example.com",
		PreferredLanguage: model.LangSomali,
	}
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter()
	rec := doJSON(t, r, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestWorkshopLifecycle(t *testing.T) {
	r, _ := newTestRouter()
	created := createWorkshop(t, r, 25)

	rec := doJSON(t, r, http.MethodGet, "/api/workshops/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get workshop: status %d", rec.Code)
	}
	got := decode[model.Workshop](t, rec)
	if got.Title.So != "Aasaaska Cadaadiska Dhiigga" {
		t.Errorf("somali title = %q", got.Title.So)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/workshops", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list workshops: status %d", rec.Code)
	}
	list := decode[[]model.Workshop](t, rec)
	if len(list) != 1 {
		t.Errorf("upcoming workshops = %d, want 1", len(list))
	}

	rec = doJSON(t, r, http.MethodGet, "/api/workshops/unknown-id", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown workshop: status %d, want 404", rec.Code)
	}
}

func TestWorkshopUpdate(t *testing.T) {
	r, _ := newTestRouter()
	created := createWorkshop(t, r, 25)

	rec := doJSON(t, r, http.MethodPatch, "/api/workshops/"+created.ID,
		map[string]any{"location": "New Hall", "maxAttendees": 40})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch workshop: status %d, body %s", rec.Code, rec.Body.String())
	}
	got := decode[model.Workshop](t, rec)
	if got.Location != "New Hall" || got.MaxAttendees != 40 {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestCreateWorkshopValidationResponse(t *testing.T) {
	r, _ := newTestRouter()

	rec := doJSON(t, r, http.MethodPost, "/api/workshops", map[string]any{
		"title":    map[string]string{"en": "X"},
		"category": "nonsense",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decode[model.ErrorResponse](t, rec)
	if resp.Error != "Invalid input" {
		t.Errorf("error message = %q", resp.Error)
	}
	if _, ok := resp.Fields["category"]; !ok {
		t.Errorf("missing field detail for category: %v", resp.Fields)
	}
}

func TestRegistrationFlow(t *testing.T) {
	r, _ := newTestRouter()
	created := createWorkshop(t, r, 2)
	registerPath := fmt.Sprintf("/api/workshops/%s/register", created.ID)

	rec := doJSON(t, r, http.MethodPost, registerPath, registrant())
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", rec.Code, rec.Body.String())
	}
	reg := decode[model.Registration](t, rec)
	if reg.WorkshopID != created.ID {
		t.Errorf("registration workshopId = %q", reg.WorkshopID)
	}

	rec = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/workshops/%s/registrations", created.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list registrations: status %d", rec.Code)
	}
	regs := decode[[]model.Registration](t, rec)
	if len(regs) != 1 {
		t.Errorf("registrations = %d, want 1", len(regs))
	}

	// Second seat, then full.
	doJSON(t, r, http.MethodPost, registerPath, registrant())
	rec = doJSON(t, r, http.MethodPost, registerPath, registrant())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("register on full workshop: status %d, want 400", rec.Code)
	}
	resp := decode[model.ErrorResponse](t, rec)
	if resp.Error != "Workshop is full" {
		t.Errorf("full message = %q, want %q", resp.Error, "Workshop is full")
	}

	// Somali callers get the Somali message.
	rec = doJSON(t, r, http.MethodPost, registerPath+"?lang=so", registrant())
	resp = decode[model.ErrorResponse](t, rec)
	if resp.Error != "Tababarku waa buuxaa" {
		t.Errorf("somali full message = %q", resp.Error)
	}
}

func TestRegisterUnknownWorkshop(t *testing.T) {
	r, _ := newTestRouter()
	rec := doJSON(t, r, http.MethodPost, "/api/workshops/unknown-id/register", registrant())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestResourceEndpoints(t *testing.T) {
	r, _ := newTestRouter()

	mk := func(category string) {
		rec := doJSON(t, r, http.MethodPost, "/api/resources", model.CreateResourceRequest{
			Title:       model.LocalizedText{En: "Guide", So: "Hage"},
			Description: model.LocalizedText{En: "Desc", So: "Sharax"},
			Category:    category,
			Type:        "pdf",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create resource: status %d, body %s", rec.Code, rec.Body.String())
		}
	}
	mk("nutrition")
	mk("health-guides")

	rec := doJSON(t, r, http.MethodGet, "/api/resources", nil)
	if got := len(decode[[]model.Resource](t, rec)); got != 2 {
		t.Errorf("all resources = %d, want 2", got)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/resources?category=nutrition", nil)
	filtered := decode[[]model.Resource](t, rec)
	if len(filtered) != 1 || filtered[0].Category != "nutrition" {
		t.Errorf("category filter wrong: %+v", filtered)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/resources", map[string]any{"type": "hologram"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad resource type: status %d, want 400", rec.Code)
	}
}

func TestContactEndpoints(t *testing.T) {
	r, _ := newTestRouter()

	rec := doJSON(t, r, http.MethodPost, "/api/contacts", model.CreateContactRequest{
		FirstName:         "Sagal",
		LastName:          "Omar",
		Email:             "sagal@example.com",
		PreferredLanguage: model.LangEnglish,
		InquiryType:       "volunteer",
		Message:           "I would like to help.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit contact: status %d, body %s", rec.Code, rec.Body.String())
	}
	receipt := decode[model.ContactReceipt](t, rec)
	if receipt.ID == "" {
		t.Error("receipt missing id")
	}
	if receipt.Message != "Message sent successfully" {
		t.Errorf("receipt message = %q", receipt.Message)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/contacts", nil)
	contacts := decode[[]model.Contact](t, rec)
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(contacts))
	}

	readPath := "/api/contacts/" + receipt.ID + "/read"
	for i := 0; i < 2; i++ {
		rec = doJSON(t, r, http.MethodPost, readPath, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("mark read call %d: status %d, want 204", i+1, rec.Code)
		}
	}

	rec = doJSON(t, r, http.MethodPost, "/api/contacts/unknown-id/read", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("mark read unknown: status %d, want 404", rec.Code)
	}
}

func TestPartnerAndTeamEndpoints(t *testing.T) {
	r, _ := newTestRouter()

	rec := doJSON(t, r, http.MethodPost, "/api/partners", model.CreatePartnerRequest{
		Name:        "Abu Hurairah Centre",
		Description: model.LocalizedText{En: "Venue partner", So: "Saaxiibka goobta"},
		Type:        "primary",
		Services:    []string{"Workshop hosting"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create partner: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodGet, "/api/partners", nil)
	if got := len(decode[[]model.Partner](t, rec)); got != 1 {
		t.Errorf("partners = %d, want 1", got)
	}

	for _, order := range []int{3, 1, 2} {
		rec = doJSON(t, r, http.MethodPost, "/api/team", model.CreateTeamMemberRequest{
			Name:  fmt.Sprintf("Member %d", order),
			Role:  model.LocalizedText{En: "Role"},
			Order: order,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create team member: status %d", rec.Code)
		}
	}

	rec = doJSON(t, r, http.MethodGet, "/api/team", nil)
	team := decode[[]model.TeamMember](t, rec)
	want := []int{1, 2, 3}
	for i, m := range team {
		if m.Order != want[i] {
			t.Errorf("team position %d order = %d, want %d", i, m.Order, want[i])
		}
	}
}

func TestMalformedBody(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/workshops", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status %d, want 400", rec.Code)
	}
}
