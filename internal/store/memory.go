package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shec-toronto/community-health-api/internal/model"
)

// MemStore is the in-memory Storage implementation. All state lives for the
// process lifetime only. A single RWMutex guards every map, which also makes
// the capacity check and attendee increment in RegisterAttendee atomic with
// respect to concurrent registrations.
type MemStore struct {
	mu sync.RWMutex

	users         map[string]model.User
	usersByName   map[string]string
	workshops     map[string]model.Workshop
	registrations map[string]model.Registration
	resources     map[string]model.Resource
	contacts      map[string]model.Contact
	partners      map[string]model.Partner
	team          map[string]model.TeamMember

	// seq records insertion order per id so listings with equal timestamps
	// stay deterministic.
	seq     map[string]uint64
	nextSeq uint64

	now func() time.Time
}

var _ Storage = (*MemStore)(nil)

// NewMemStore constructs an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		users:         make(map[string]model.User),
		usersByName:   make(map[string]string),
		workshops:     make(map[string]model.Workshop),
		registrations: make(map[string]model.Registration),
		resources:     make(map[string]model.Resource),
		contacts:      make(map[string]model.Contact),
		partners:      make(map[string]model.Partner),
		team:          make(map[string]model.TeamMember),
		seq:           make(map[string]uint64),
		now:           time.Now,
	}
}

// newID must never collide across the store's lifetime; UUIDv4 from
// crypto/rand satisfies that.
func newID() string {
	return uuid.New().String()
}

// track must be called with the write lock held.
func (s *MemStore) track(id string) {
	s.nextSeq++
	s.seq[id] = s.nextSeq
}

func activeDefault(p *bool) bool {
	if p == nil {
		return true
	}
	return *p
}

// ── Users ────────────────────────────────────────────────────────────────────

func (s *MemStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usersByName[username]
	if !ok {
		return nil, ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *MemStore) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.usersByName[username]; exists {
		return nil, ErrUsernameTaken
	}
	u := model.User{
		ID:           newID(),
		Username:     username,
		PasswordHash: passwordHash,
	}
	s.users[u.ID] = u
	s.usersByName[u.Username] = u.ID
	s.track(u.ID)
	return &u, nil
}

// ── Workshops ────────────────────────────────────────────────────────────────

func (s *MemStore) ListWorkshops(ctx context.Context) ([]model.Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Workshop, 0, len(s.workshops))
	for _, w := range s.workshops {
		out = append(out, w)
	}
	s.sortWorkshopsByDate(out)
	return out, nil
}

func (s *MemStore) ListUpcomingWorkshops(ctx context.Context) ([]model.Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	out := []model.Workshop{}
	for _, w := range s.workshops {
		if w.IsActive && w.Date.After(now) {
			out = append(out, w)
		}
	}
	s.sortWorkshopsByDate(out)
	return out, nil
}

func (s *MemStore) sortWorkshopsByDate(ws []model.Workshop) {
	sort.Slice(ws, func(i, j int) bool {
		if ws[i].Date.Equal(ws[j].Date) {
			return s.seq[ws[i].ID] < s.seq[ws[j].ID]
		}
		return ws[i].Date.Before(ws[j].Date)
	})
}

func (s *MemStore) GetWorkshop(ctx context.Context, id string) (*model.Workshop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workshops[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &w, nil
}

func (s *MemStore) CreateWorkshop(ctx context.Context, req model.CreateWorkshopRequest) (*model.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := model.Workshop{
		ID:               newID(),
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Date:             req.Date,
		EndDate:          req.EndDate,
		Location:         req.Location,
		MaxAttendees:     req.MaxAttendees,
		CurrentAttendees: 0,
		IsActive:         activeDefault(req.IsActive),
		Facilitator:      req.Facilitator,
		CreatedAt:        s.now().UTC(),
	}
	s.workshops[w.ID] = w
	s.track(w.ID)
	return &w, nil
}

func (s *MemStore) UpdateWorkshop(ctx context.Context, id string, req model.UpdateWorkshopRequest) (*model.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workshops[id]
	if !ok {
		return nil, ErrNotFound
	}
	if req.Title != nil {
		w.Title = *req.Title
	}
	if req.Description != nil {
		w.Description = *req.Description
	}
	if req.Category != nil {
		w.Category = *req.Category
	}
	if req.Date != nil {
		w.Date = *req.Date
	}
	if req.EndDate != nil {
		w.EndDate = *req.EndDate
	}
	if req.Location != nil {
		w.Location = *req.Location
	}
	if req.MaxAttendees != nil {
		if *req.MaxAttendees < w.CurrentAttendees {
			return nil, ErrCannotReduceCapacity
		}
		w.MaxAttendees = *req.MaxAttendees
	}
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}
	if req.Facilitator != nil {
		w.Facilitator = *req.Facilitator
	}
	s.workshops[id] = w
	return &w, nil
}

// ── Registrations ────────────────────────────────────────────────────────────

// RegisterAttendee inserts a registration and increments the workshop's
// attendee counter under the write lock. Two concurrent calls for the last
// remaining seat serialize here, so exactly one succeeds.
func (s *MemStore) RegisterAttendee(ctx context.Context, workshopID string, req model.RegisterRequest) (*model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workshops[workshopID]
	if !ok {
		return nil, ErrNotFound
	}
	if w.CurrentAttendees >= w.MaxAttendees {
		return nil, ErrWorkshopFull
	}

	reg := model.Registration{
		ID:                newID(),
		WorkshopID:        workshopID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		PreferredLanguage: req.PreferredLanguage,
		CreatedAt:         s.now().UTC(),
	}
	s.registrations[reg.ID] = reg
	s.track(reg.ID)

	w.CurrentAttendees++
	s.workshops[workshopID] = w

	return &reg, nil
}

func (s *MemStore) ListRegistrations(ctx context.Context, workshopID string) ([]model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.workshops[workshopID]; !ok {
		return nil, ErrNotFound
	}
	out := []model.Registration{}
	for _, r := range s.registrations {
		if r.WorkshopID == workshopID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.seq[out[i].ID] < s.seq[out[j].ID]
	})
	return out, nil
}

// ── Resources ────────────────────────────────────────────────────────────────

func (s *MemStore) ListResources(ctx context.Context) ([]model.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Resource, 0, len(s.resources))
	for _, r := range s.resources {
		out = append(out, r)
	}
	sortByInsertionSeq(s.seq, out, func(r model.Resource) string { return r.ID })
	return out, nil
}

func (s *MemStore) ListActiveResources(ctx context.Context) ([]model.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Resource{}
	for _, r := range s.resources {
		if r.IsActive {
			out = append(out, r)
		}
	}
	sortByInsertionSeq(s.seq, out, func(r model.Resource) string { return r.ID })
	return out, nil
}

func (s *MemStore) ListResourcesByCategory(ctx context.Context, category string) ([]model.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Resource{}
	for _, r := range s.resources {
		if r.IsActive && r.Category == category {
			out = append(out, r)
		}
	}
	sortByInsertionSeq(s.seq, out, func(r model.Resource) string { return r.ID })
	return out, nil
}

func (s *MemStore) CreateResource(ctx context.Context, req model.CreateResourceRequest) (*model.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := model.Resource{
		ID:           newID(),
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Type:         req.Type,
		URL:          req.URL,
		DownloadURL:  req.DownloadURL,
		ThumbnailURL: req.ThumbnailURL,
		IsActive:     activeDefault(req.IsActive),
		CreatedAt:    s.now().UTC(),
	}
	s.resources[r.ID] = r
	s.track(r.ID)
	return &r, nil
}

// sortByInsertionSeq orders records by their insertion sequence. Must be
// called with at least the read lock held.
func sortByInsertionSeq[T any](seq map[string]uint64, items []T, id func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		return seq[id(items[i])] < seq[id(items[j])]
	})
}

// ── Contacts ─────────────────────────────────────────────────────────────────

func (s *MemStore) CreateContact(ctx context.Context, req model.CreateContactRequest) (*model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := model.Contact{
		ID:                  newID(),
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Phone:               req.Phone,
		PreferredLanguage:   req.PreferredLanguage,
		InquiryType:         req.InquiryType,
		Message:             req.Message,
		SubscribeNewsletter: req.SubscribeNewsletter,
		IsRead:              false,
		CreatedAt:           s.now().UTC(),
	}
	s.contacts[c.ID] = c
	s.track(c.ID)
	return &c, nil
}

func (s *MemStore) ListContacts(ctx context.Context) ([]model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c)
	}
	// Newest first.
	sort.Slice(out, func(i, j int) bool {
		return s.seq[out[i].ID] > s.seq[out[j].ID]
	})
	return out, nil
}

func (s *MemStore) MarkContactRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok {
		return ErrNotFound
	}
	c.IsRead = true
	s.contacts[id] = c
	return nil
}

// ── Partners ─────────────────────────────────────────────────────────────────

func clonePartner(p model.Partner) model.Partner {
	if p.Services != nil {
		p.Services = append([]string(nil), p.Services...)
	}
	return p
}

func (s *MemStore) ListPartners(ctx context.Context) ([]model.Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Partner, 0, len(s.partners))
	for _, p := range s.partners {
		out = append(out, clonePartner(p))
	}
	sortByInsertionSeq(s.seq, out, func(p model.Partner) string { return p.ID })
	return out, nil
}

func (s *MemStore) ListActivePartners(ctx context.Context) ([]model.Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Partner{}
	for _, p := range s.partners {
		if p.IsActive {
			out = append(out, clonePartner(p))
		}
	}
	sortByInsertionSeq(s.seq, out, func(p model.Partner) string { return p.ID })
	return out, nil
}

func (s *MemStore) CreatePartner(ctx context.Context, req model.CreatePartnerRequest) (*model.Partner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := model.Partner{
		ID:          newID(),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		LogoURL:     req.LogoURL,
		WebsiteURL:  req.WebsiteURL,
		Services:    append([]string(nil), req.Services...),
		IsActive:    activeDefault(req.IsActive),
	}
	s.partners[p.ID] = p
	s.track(p.ID)
	out := clonePartner(p)
	return &out, nil
}

// ── Team members ─────────────────────────────────────────────────────────────

func (s *MemStore) ListTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.TeamMember, 0, len(s.team))
	for _, m := range s.team {
		out = append(out, m)
	}
	s.sortTeamByOrder(out)
	return out, nil
}

func (s *MemStore) ListActiveTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.TeamMember{}
	for _, m := range s.team {
		if m.IsActive {
			out = append(out, m)
		}
	}
	s.sortTeamByOrder(out)
	return out, nil
}

func (s *MemStore) sortTeamByOrder(ms []model.TeamMember) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].Order == ms[j].Order {
			return s.seq[ms[i].ID] < s.seq[ms[j].ID]
		}
		return ms[i].Order < ms[j].Order
	})
}

func (s *MemStore) CreateTeamMember(ctx context.Context, req model.CreateTeamMemberRequest) (*model.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := model.TeamMember{
		ID:          newID(),
		Name:        req.Name,
		Role:        req.Role,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		Email:       req.Email,
		LinkedinURL: req.LinkedinURL,
		Order:       req.Order,
		IsActive:    activeDefault(req.IsActive),
	}
	s.team[m.ID] = m
	s.track(m.ID)
	return &m, nil
}
