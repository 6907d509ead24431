// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the storage layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/shec-toronto/community-health-api/internal/model"
	"github.com/shec-toronto/community-health-api/internal/store"
)

// Service orchestrates all platform operations over a Storage backend.
type Service struct {
	store store.Storage
}

// New constructs a Service with its storage dependency.
func New(st store.Storage) *Service {
	return &Service{store: st}
}

// ── Workshops ────────────────────────────────────────────────────────────────

// ListUpcomingWorkshops returns active future workshops in date order.
func (s *Service) ListUpcomingWorkshops(ctx context.Context) ([]model.Workshop, error) {
	return s.store.ListUpcomingWorkshops(ctx)
}

// GetWorkshop returns a single workshop by id.
func (s *Service) GetWorkshop(ctx context.Context, id string) (*model.Workshop, error) {
	if id == "" {
		return nil, store.ErrNotFound
	}
	return s.store.GetWorkshop(ctx, id)
}

// CreateWorkshop validates the request and delegates to storage.
func (s *Service) CreateWorkshop(ctx context.Context, req model.CreateWorkshopRequest) (*model.Workshop, error) {
	req.Location = strings.TrimSpace(req.Location)
	req.Facilitator = strings.TrimSpace(req.Facilitator)

	v := newValidator()
	v.require("title", req.Title.En)
	v.require("description", req.Description.En)
	v.oneOf("category", req.Category, model.WorkshopCategories)
	v.check(!req.Date.IsZero(), "date", "date is required")
	v.check(!req.EndDate.IsZero(), "endDate", "end date is required")
	if !req.Date.IsZero() && !req.EndDate.IsZero() {
		v.check(req.EndDate.After(req.Date), "endDate", "end date must be after start date")
	}
	v.require("location", req.Location)
	v.check(req.MaxAttendees > 0, "maxAttendees", "maxAttendees must be a positive integer")
	v.check(req.MaxAttendees <= 10_000, "maxAttendees", "maxAttendees cannot exceed 10,000")
	if err := v.result(); err != nil {
		return nil, err
	}

	return s.store.CreateWorkshop(ctx, req)
}

// UpdateWorkshop applies an administrative partial update.
func (s *Service) UpdateWorkshop(ctx context.Context, id string, req model.UpdateWorkshopRequest) (*model.Workshop, error) {
	v := newValidator()
	if req.Category != nil {
		v.oneOf("category", *req.Category, model.WorkshopCategories)
	}
	if req.MaxAttendees != nil {
		v.check(*req.MaxAttendees > 0, "maxAttendees", "maxAttendees must be a positive integer")
	}
	if req.Date != nil && req.EndDate != nil {
		v.check(req.EndDate.After(*req.Date), "endDate", "end date must be after start date")
	}
	if err := v.result(); err != nil {
		return nil, err
	}

	return s.store.UpdateWorkshop(ctx, id, req)
}

// Register signs one person up for a workshop. Lookup, capacity, and input
// checks happen in that order; the storage layer re-checks capacity under its
// lock so the attendee counter can never pass maxAttendees even when requests
// race.
func (s *Service) Register(ctx context.Context, workshopID string, req model.RegisterRequest) (*model.Registration, error) {
	workshop, err := s.store.GetWorkshop(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	if workshop.IsFull() {
		return nil, store.ErrWorkshopFull
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)

	v := newValidator()
	v.require("firstName", req.FirstName)
	v.require("lastName", req.LastName)
	v.email("email", req.Email)
	v.oneOf("preferredLanguage", req.PreferredLanguage,
		[]string{model.LangEnglish, model.LangSomali, model.LangBoth})
	if err := v.result(); err != nil {
		return nil, err
	}

	reg, err := s.store.RegisterAttendee(ctx, workshopID, req)
	if err != nil {
		// Surface domain errors directly so handlers can set correct HTTP status.
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrWorkshopFull) {
			return nil, err
		}
		return nil, fmt.Errorf("register for workshop: %w", err)
	}
	return reg, nil
}

// ListRegistrations returns all registrations for a workshop.
func (s *Service) ListRegistrations(ctx context.Context, workshopID string) ([]model.Registration, error) {
	return s.store.ListRegistrations(ctx, workshopID)
}

// ── Resources ────────────────────────────────────────────────────────────────

// ListResources returns active resources, optionally filtered by category.
func (s *Service) ListResources(ctx context.Context, category string) ([]model.Resource, error) {
	if category != "" {
		return s.store.ListResourcesByCategory(ctx, category)
	}
	return s.store.ListActiveResources(ctx)
}

// CreateResource validates the request and delegates to storage.
func (s *Service) CreateResource(ctx context.Context, req model.CreateResourceRequest) (*model.Resource, error) {
	v := newValidator()
	v.require("title", req.Title.En)
	v.require("description", req.Description.En)
	v.oneOf("category", req.Category, model.ResourceCategories)
	v.oneOf("type", req.Type, model.ResourceTypes)
	if err := v.result(); err != nil {
		return nil, err
	}

	return s.store.CreateResource(ctx, req)
}

// ── Contacts ─────────────────────────────────────────────────────────────────

// SubmitContact validates and stores a contact inquiry.
func (s *Service) SubmitContact(ctx context.Context, req model.CreateContactRequest) (*model.Contact, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Message = strings.TrimSpace(req.Message)

	v := newValidator()
	v.require("firstName", req.FirstName)
	v.require("lastName", req.LastName)
	v.email("email", req.Email)
	v.oneOf("preferredLanguage", req.PreferredLanguage,
		[]string{model.LangEnglish, model.LangSomali, model.LangBoth})
	v.require("inquiryType", req.InquiryType)
	v.require("message", req.Message)
	if err := v.result(); err != nil {
		return nil, err
	}

	return s.store.CreateContact(ctx, req)
}

// ListContacts returns all inquiries, newest first.
func (s *Service) ListContacts(ctx context.Context) ([]model.Contact, error) {
	return s.store.ListContacts(ctx)
}

// MarkContactRead flags an inquiry as handled. Safe to call repeatedly.
func (s *Service) MarkContactRead(ctx context.Context, id string) error {
	return s.store.MarkContactRead(ctx, id)
}

// ── Partners ─────────────────────────────────────────────────────────────────

// ListActivePartners returns partners shown on the public site.
func (s *Service) ListActivePartners(ctx context.Context) ([]model.Partner, error) {
	return s.store.ListActivePartners(ctx)
}

// CreatePartner validates the request and delegates to storage.
func (s *Service) CreatePartner(ctx context.Context, req model.CreatePartnerRequest) (*model.Partner, error) {
	req.Name = strings.TrimSpace(req.Name)

	v := newValidator()
	v.require("name", req.Name)
	v.require("description", req.Description.En)
	v.oneOf("type", req.Type, []string{"primary", "supporting"})
	if err := v.result(); err != nil {
		return nil, err
	}

	return s.store.CreatePartner(ctx, req)
}

// ── Team members ─────────────────────────────────────────────────────────────

// ListActiveTeamMembers returns the public team listing in display order.
func (s *Service) ListActiveTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	return s.store.ListActiveTeamMembers(ctx)
}

// CreateTeamMember validates the request and delegates to storage.
func (s *Service) CreateTeamMember(ctx context.Context, req model.CreateTeamMemberRequest) (*model.TeamMember, error) {
	req.Name = strings.TrimSpace(req.Name)

	v := newValidator()
	v.require("name", req.Name)
	v.require("role", req.Role.En)
	v.check(req.Order >= 0, "order", "order must not be negative")
	if err := v.result(); err != nil {
		return nil, err
	}

	return s.store.CreateTeamMember(ctx, req)
}

// ── Users ────────────────────────────────────────────────────────────────────

// CreateUser stores an account record with a bcrypt-hashed password. There is
// no login surface; records exist for administrative bookkeeping only.
func (s *Service) CreateUser(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)

	v := newValidator()
	v.require("username", username)
	v.check(len(password) >= 8, "password", "password must be at least 8 characters")
	if err := v.result(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.store.CreateUser(ctx, username, string(hash))
}
