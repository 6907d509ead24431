// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shec-toronto/community-health-api/internal/i18n"
	"github.com/shec-toronto/community-health-api/internal/model"
	"github.com/shec-toronto/community-health-api/internal/observability/metrics"
	"github.com/shec-toronto/community-health-api/internal/service"
	"github.com/shec-toronto/community-health-api/internal/store"
)

// Handler holds all HTTP handlers for the platform API.
type Handler struct {
	svc *service.Service
	tr  *i18n.Translator
}

// New constructs a Handler.
func New(svc *service.Service, tr *i18n.Translator) *Handler {
	return &Handler{svc: svc, tr: tr}
}

// Routes mounts every API route on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/workshops", func(r chi.Router) {
			r.Get("/", h.ListWorkshops)
			r.Post("/", h.CreateWorkshop)
			r.Get("/{id}", h.GetWorkshop)
			r.Patch("/{id}", h.UpdateWorkshop)
			r.Post("/{id}/register", h.Register)
			r.Get("/{id}/registrations", h.ListRegistrations)
		})
		r.Route("/resources", func(r chi.Router) {
			r.Get("/", h.ListResources)
			r.Post("/", h.CreateResource)
		})
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", h.ListContacts)
			r.Post("/", h.SubmitContact)
			r.Post("/{id}/read", h.MarkContactRead)
		})
		r.Route("/partners", func(r chi.Router) {
			r.Get("/", h.ListPartners)
			r.Post("/", h.CreatePartner)
		})
		r.Route("/team", func(r chi.Router) {
			r.Get("/", h.ListTeam)
			r.Post("/", h.CreateTeamMember)
		})
	})
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

// requestLanguage picks the caller's UI language from the lang query
// parameter or the X-Language header. Anything unrecognized falls back to
// English via the translator.
func requestLanguage(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return r.Header.Get("X-Language")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeValidationError emits a 400 with per-field detail and a localized
// top-level message.
func (h *Handler) writeValidationError(w http.ResponseWriter, r *http.Request, vErr *service.ValidationError) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
		Error:  h.tr.T(requestLanguage(r), "api.invalidInput"),
		Fields: vErr.Fields,
	})
}

// writeInternalError logs the fault and hides the detail from the caller.
func (h *Handler) writeInternalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error("request failed", "op", op, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, h.tr.T(requestLanguage(r), "api.internalError"))
}

// ─── Workshops ────────────────────────────────────────────────────────────────

// ListWorkshops handles GET /api/workshops
// Returns active workshops with a future date, soonest first.
func (h *Handler) ListWorkshops(w http.ResponseWriter, r *http.Request) {
	workshops, err := h.svc.ListUpcomingWorkshops(r.Context())
	if err != nil {
		h.writeInternalError(w, r, "list workshops", err)
		return
	}
	writeJSON(w, http.StatusOK, workshops)
}

// GetWorkshop handles GET /api/workshops/{id}
func (h *Handler) GetWorkshop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	workshop, err := h.svc.GetWorkshop(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, h.tr.T(requestLanguage(r), "api.workshopNotFound"))
			return
		}
		h.writeInternalError(w, r, "get workshop", err)
		return
	}
	writeJSON(w, http.StatusOK, workshop)
}

// CreateWorkshop handles POST /api/workshops
func (h *Handler) CreateWorkshop(w http.ResponseWriter, r *http.Request) {
	var req model.CreateWorkshopRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	workshop, err := h.svc.CreateWorkshop(r.Context(), req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			h.writeValidationError(w, r, vErr)
			return
		}
		h.writeInternalError(w, r, "create workshop", err)
		return
	}
	writeJSON(w, http.StatusCreated, workshop)
}

// UpdateWorkshop handles PATCH /api/workshops/{id}
// Applies an administrative partial update.
func (h *Handler) UpdateWorkshop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.UpdateWorkshopRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	workshop, err := h.svc.UpdateWorkshop(r.Context(), id, req)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, h.tr.T(requestLanguage(r), "api.workshopNotFound"))
		case errors.Is(err, store.ErrCannotReduceCapacity):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &vErr):
			h.writeValidationError(w, r, vErr)
		default:
			h.writeInternalError(w, r, "update workshop", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, workshop)
}

// Register handles POST /api/workshops/{id}/register
// Performs a concurrency-safe registration for the specified workshop.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	reg, err := h.svc.Register(r.Context(), id, req)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.Is(err, store.ErrNotFound):
			metrics.ObserveRegistration("not_found")
			writeError(w, http.StatusNotFound, h.tr.T(requestLanguage(r), "api.workshopNotFound"))
		case errors.Is(err, store.ErrWorkshopFull):
			metrics.ObserveRegistration("full")
			writeError(w, http.StatusBadRequest, h.tr.T(requestLanguage(r), "api.workshopFull"))
		case errors.As(err, &vErr):
			metrics.ObserveRegistration("invalid")
			h.writeValidationError(w, r, vErr)
		default:
			metrics.ObserveRegistration("error")
			h.writeInternalError(w, r, "register", err)
		}
		return
	}
	metrics.ObserveRegistration("ok")
	writeJSON(w, http.StatusCreated, reg)
}

// ListRegistrations handles GET /api/workshops/{id}/registrations
func (h *Handler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	regs, err := h.svc.ListRegistrations(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, h.tr.T(requestLanguage(r), "api.workshopNotFound"))
			return
		}
		h.writeInternalError(w, r, "list registrations", err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// ─── Resources ────────────────────────────────────────────────────────────────

// ListResources handles GET /api/resources?category=
func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.svc.ListResources(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.writeInternalError(w, r, "list resources", err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

// CreateResource handles POST /api/resources
func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req model.CreateResourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resource, err := h.svc.CreateResource(r.Context(), req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			h.writeValidationError(w, r, vErr)
			return
		}
		h.writeInternalError(w, r, "create resource", err)
		return
	}
	writeJSON(w, http.StatusCreated, resource)
}

// ─── Contacts ─────────────────────────────────────────────────────────────────

// SubmitContact handles POST /api/contacts
// Responds with a receipt holding a localized confirmation and the new id.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req model.CreateContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	contact, err := h.svc.SubmitContact(r.Context(), req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			h.writeValidationError(w, r, vErr)
			return
		}
		h.writeInternalError(w, r, "submit contact", err)
		return
	}
	writeJSON(w, http.StatusCreated, model.ContactReceipt{
		Message: h.tr.T(requestLanguage(r), "api.contactReceived"),
		ID:      contact.ID,
	})
}

// ListContacts handles GET /api/contacts
// Returns inquiries newest first.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.ListContacts(r.Context())
	if err != nil {
		h.writeInternalError(w, r, "list contacts", err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

// MarkContactRead handles POST /api/contacts/{id}/read
// Idempotent; repeating the call is not an error.
func (h *Handler) MarkContactRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.MarkContactRead(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		h.writeInternalError(w, r, "mark contact read", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── Partners ─────────────────────────────────────────────────────────────────

// ListPartners handles GET /api/partners
func (h *Handler) ListPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.svc.ListActivePartners(r.Context())
	if err != nil {
		h.writeInternalError(w, r, "list partners", err)
		return
	}
	writeJSON(w, http.StatusOK, partners)
}

// CreatePartner handles POST /api/partners
func (h *Handler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePartnerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	partner, err := h.svc.CreatePartner(r.Context(), req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			h.writeValidationError(w, r, vErr)
			return
		}
		h.writeInternalError(w, r, "create partner", err)
		return
	}
	writeJSON(w, http.StatusCreated, partner)
}

// ─── Team ─────────────────────────────────────────────────────────────────────

// ListTeam handles GET /api/team
// Returns active members sorted by display order.
func (h *Handler) ListTeam(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListActiveTeamMembers(r.Context())
	if err != nil {
		h.writeInternalError(w, r, "list team", err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// CreateTeamMember handles POST /api/team
func (h *Handler) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTeamMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	member, err := h.svc.CreateTeamMember(r.Context(), req)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			h.writeValidationError(w, r, vErr)
			return
		}
		h.writeInternalError(w, r, "create team member", err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
