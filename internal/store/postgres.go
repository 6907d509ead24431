package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shec-toronto/community-health-api/internal/model"
)

// PgStore is the PostgreSQL-backed Storage implementation. It uses pgx
// directly (no ORM); bilingual fields are stored as jsonb pairs.
type PgStore struct {
	db *pgxpool.Pool
}

var _ Storage = (*PgStore)(nil)

// NewPgStore constructs a PgStore on an existing connection pool.
func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

// ── Users ────────────────────────────────────────────────────────────────────

func (s *PgStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(ctx,
		`SELECT id, username, password_hash FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *PgStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

func (s *PgStore) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	u := model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)
		 ON CONFLICT (username) DO NOTHING`,
		u.ID, u.Username, u.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	// ON CONFLICT swallows the duplicate; detect it by reading back.
	stored, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if stored.ID != u.ID {
		return nil, ErrUsernameTaken
	}
	return &u, nil
}

// ── Workshops ────────────────────────────────────────────────────────────────

const workshopColumns = `id, title, description, category, date, end_date, location,
	max_attendees, current_attendees, is_active, facilitator, created_at`

func scanWorkshop(row pgx.Row) (*model.Workshop, error) {
	var w model.Workshop
	var facilitator *string
	err := row.Scan(&w.ID, &w.Title, &w.Description, &w.Category, &w.Date, &w.EndDate,
		&w.Location, &w.MaxAttendees, &w.CurrentAttendees, &w.IsActive, &facilitator, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	if facilitator != nil {
		w.Facilitator = *facilitator
	}
	return &w, nil
}

func (s *PgStore) queryWorkshops(ctx context.Context, query string, args ...any) ([]model.Workshop, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workshops: %w", err)
	}
	defer rows.Close()

	out := []model.Workshop{}
	for rows.Next() {
		w, err := scanWorkshop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workshop: %w", err)
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func (s *PgStore) ListWorkshops(ctx context.Context) ([]model.Workshop, error) {
	return s.queryWorkshops(ctx,
		`SELECT `+workshopColumns+` FROM workshops ORDER BY date ASC`)
}

func (s *PgStore) ListUpcomingWorkshops(ctx context.Context) ([]model.Workshop, error) {
	return s.queryWorkshops(ctx,
		`SELECT `+workshopColumns+`
		 FROM workshops
		 WHERE is_active AND date > now()
		 ORDER BY date ASC`)
}

func (s *PgStore) GetWorkshop(ctx context.Context, id string) (*model.Workshop, error) {
	w, err := scanWorkshop(s.db.QueryRow(ctx,
		`SELECT `+workshopColumns+` FROM workshops WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get workshop: %w", err)
	}
	return w, nil
}

func (s *PgStore) CreateWorkshop(ctx context.Context, req model.CreateWorkshopRequest) (*model.Workshop, error) {
	w := model.Workshop{
		ID:               uuid.New().String(),
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Date:             req.Date,
		EndDate:          req.EndDate,
		Location:         req.Location,
		MaxAttendees:     req.MaxAttendees,
		CurrentAttendees: 0,
		IsActive:         req.IsActive == nil || *req.IsActive,
		Facilitator:      req.Facilitator,
		CreatedAt:        time.Now().UTC(),
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO workshops
		 (id, title, description, category, date, end_date, location,
		  max_attendees, current_attendees, is_active, facilitator, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		w.ID, w.Title, w.Description, w.Category, w.Date, w.EndDate, w.Location,
		w.MaxAttendees, w.CurrentAttendees, w.IsActive, nullable(w.Facilitator), w.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert workshop: %w", err)
	}
	return &w, nil
}

// UpdateWorkshop merges the partial update inside a transaction holding a row
// lock, so a concurrent registration cannot slip past a capacity reduction.
func (s *PgStore) UpdateWorkshop(ctx context.Context, id string, req model.UpdateWorkshopRequest) (*model.Workshop, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	w, err := scanWorkshop(tx.QueryRow(ctx,
		`SELECT `+workshopColumns+` FROM workshops WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock workshop row: %w", err)
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
			err = ErrCannotReduceCapacity
			return nil, err
		}
		w.MaxAttendees = *req.MaxAttendees
	}
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}
	if req.Facilitator != nil {
		w.Facilitator = *req.Facilitator
	}

	_, err = tx.Exec(ctx,
		`UPDATE workshops
		 SET title = $2, description = $3, category = $4, date = $5, end_date = $6,
		     location = $7, max_attendees = $8, is_active = $9, facilitator = $10
		 WHERE id = $1`,
		w.ID, w.Title, w.Description, w.Category, w.Date, w.EndDate,
		w.Location, w.MaxAttendees, w.IsActive, nullable(w.Facilitator),
	)
	if err != nil {
		return nil, fmt.Errorf("update workshop: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return w, nil
}

// ── Registrations ────────────────────────────────────────────────────────────

// RegisterAttendee performs a concurrency-safe registration inside a
// transaction. SELECT ... FOR UPDATE serializes concurrent attempts for the
// same workshop, so the capacity check, the insert, and the counter increment
// behave as one atomic unit and the workshop can never be over-booked.
func (s *PgStore) RegisterAttendee(ctx context.Context, workshopID string, req model.RegisterRequest) (*model.Registration, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var maxAttendees, currentAttendees int
	err = tx.QueryRow(ctx,
		`SELECT max_attendees, current_attendees FROM workshops WHERE id = $1 FOR UPDATE`,
		workshopID,
	).Scan(&maxAttendees, &currentAttendees)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock workshop row: %w", err)
	}

	if currentAttendees >= maxAttendees {
		err = ErrWorkshopFull
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE workshops SET current_attendees = current_attendees + 1 WHERE id = $1`,
		workshopID,
	)
	if err != nil {
		return nil, fmt.Errorf("increment attendees: %w", err)
	}

	reg := model.Registration{
		ID:                uuid.New().String(),
		WorkshopID:        workshopID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		PreferredLanguage: req.PreferredLanguage,
		CreatedAt:         time.Now().UTC(),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO workshop_registrations
		 (id, workshop_id, first_name, last_name, email, phone, preferred_language, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		reg.ID, reg.WorkshopID, reg.FirstName, reg.LastName, reg.Email,
		nullable(reg.Phone), reg.PreferredLanguage, reg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &reg, nil
}

func (s *PgStore) ListRegistrations(ctx context.Context, workshopID string) ([]model.Registration, error) {
	if _, err := s.GetWorkshop(ctx, workshopID); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, workshop_id, first_name, last_name, email, phone, preferred_language, created_at
		 FROM workshop_registrations
		 WHERE workshop_id = $1
		 ORDER BY created_at ASC`,
		workshopID,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	out := []model.Registration{}
	for rows.Next() {
		var reg model.Registration
		var phone *string
		if err := rows.Scan(&reg.ID, &reg.WorkshopID, &reg.FirstName, &reg.LastName,
			&reg.Email, &phone, &reg.PreferredLanguage, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		if phone != nil {
			reg.Phone = *phone
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

// ── Resources ────────────────────────────────────────────────────────────────

const resourceColumns = `id, title, description, category, type, url, download_url,
	thumbnail_url, is_active, created_at`

func (s *PgStore) queryResources(ctx context.Context, query string, args ...any) ([]model.Resource, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	out := []model.Resource{}
	for rows.Next() {
		var r model.Resource
		var url, downloadURL, thumbnailURL *string
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.Category, &r.Type,
			&url, &downloadURL, &thumbnailURL, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		r.URL = deref(url)
		r.DownloadURL = deref(downloadURL)
		r.ThumbnailURL = deref(thumbnailURL)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PgStore) ListResources(ctx context.Context) ([]model.Resource, error) {
	return s.queryResources(ctx,
		`SELECT `+resourceColumns+` FROM resources ORDER BY created_at ASC`)
}

func (s *PgStore) ListActiveResources(ctx context.Context) ([]model.Resource, error) {
	return s.queryResources(ctx,
		`SELECT `+resourceColumns+` FROM resources WHERE is_active ORDER BY created_at ASC`)
}

func (s *PgStore) ListResourcesByCategory(ctx context.Context, category string) ([]model.Resource, error) {
	return s.queryResources(ctx,
		`SELECT `+resourceColumns+`
		 FROM resources
		 WHERE is_active AND category = $1
		 ORDER BY created_at ASC`, category)
}

func (s *PgStore) CreateResource(ctx context.Context, req model.CreateResourceRequest) (*model.Resource, error) {
	r := model.Resource{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Type:         req.Type,
		URL:          req.URL,
		DownloadURL:  req.DownloadURL,
		ThumbnailURL: req.ThumbnailURL,
		IsActive:     req.IsActive == nil || *req.IsActive,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO resources
		 (id, title, description, category, type, url, download_url, thumbnail_url, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		r.ID, r.Title, r.Description, r.Category, r.Type,
		nullable(r.URL), nullable(r.DownloadURL), nullable(r.ThumbnailURL), r.IsActive, r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert resource: %w", err)
	}
	return &r, nil
}

// ── Contacts ─────────────────────────────────────────────────────────────────

func (s *PgStore) CreateContact(ctx context.Context, req model.CreateContactRequest) (*model.Contact, error) {
	c := model.Contact{
		ID:                  uuid.New().String(),
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Phone:               req.Phone,
		PreferredLanguage:   req.PreferredLanguage,
		InquiryType:         req.InquiryType,
		Message:             req.Message,
		SubscribeNewsletter: req.SubscribeNewsletter,
		IsRead:              false,
		CreatedAt:           time.Now().UTC(),
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO contacts
		 (id, first_name, last_name, email, phone, preferred_language,
		  inquiry_type, message, subscribe_newsletter, is_read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.FirstName, c.LastName, c.Email, nullable(c.Phone), c.PreferredLanguage,
		c.InquiryType, c.Message, c.SubscribeNewsletter, c.IsRead, c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	return &c, nil
}

func (s *PgStore) ListContacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, first_name, last_name, email, phone, preferred_language,
		        inquiry_type, message, subscribe_newsletter, is_read, created_at
		 FROM contacts
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	out := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		var phone *string
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &phone,
			&c.PreferredLanguage, &c.InquiryType, &c.Message,
			&c.SubscribeNewsletter, &c.IsRead, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.Phone = deref(phone)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PgStore) MarkContactRead(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE contacts SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark contact read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ── Partners ─────────────────────────────────────────────────────────────────

func (s *PgStore) queryPartners(ctx context.Context, query string, args ...any) ([]model.Partner, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()

	out := []model.Partner{}
	for rows.Next() {
		var p model.Partner
		var logoURL, websiteURL *string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Type,
			&logoURL, &websiteURL, &p.Services, &p.IsActive); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		p.LogoURL = deref(logoURL)
		p.WebsiteURL = deref(websiteURL)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PgStore) ListPartners(ctx context.Context) ([]model.Partner, error) {
	return s.queryPartners(ctx,
		`SELECT id, name, description, type, logo_url, website_url, services, is_active
		 FROM partners ORDER BY name ASC`)
}

func (s *PgStore) ListActivePartners(ctx context.Context) ([]model.Partner, error) {
	return s.queryPartners(ctx,
		`SELECT id, name, description, type, logo_url, website_url, services, is_active
		 FROM partners WHERE is_active ORDER BY name ASC`)
}

func (s *PgStore) CreatePartner(ctx context.Context, req model.CreatePartnerRequest) (*model.Partner, error) {
	p := model.Partner{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		LogoURL:     req.LogoURL,
		WebsiteURL:  req.WebsiteURL,
		Services:    req.Services,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO partners (id, name, description, type, logo_url, website_url, services, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Name, p.Description, p.Type,
		nullable(p.LogoURL), nullable(p.WebsiteURL), p.Services, p.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("insert partner: %w", err)
	}
	return &p, nil
}

// ── Team members ─────────────────────────────────────────────────────────────

func (s *PgStore) queryTeam(ctx context.Context, query string, args ...any) ([]model.TeamMember, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	out := []model.TeamMember{}
	for rows.Next() {
		var m model.TeamMember
		var photoURL, email, linkedinURL *string
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Description,
			&photoURL, &email, &linkedinURL, &m.Order, &m.IsActive); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		m.PhotoURL = deref(photoURL)
		m.Email = deref(email)
		m.LinkedinURL = deref(linkedinURL)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PgStore) ListTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	return s.queryTeam(ctx,
		`SELECT id, name, role, description, photo_url, email, linkedin_url, display_order, is_active
		 FROM team_members ORDER BY display_order ASC`)
}

func (s *PgStore) ListActiveTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	return s.queryTeam(ctx,
		`SELECT id, name, role, description, photo_url, email, linkedin_url, display_order, is_active
		 FROM team_members WHERE is_active ORDER BY display_order ASC`)
}

func (s *PgStore) CreateTeamMember(ctx context.Context, req model.CreateTeamMemberRequest) (*model.TeamMember, error) {
	m := model.TeamMember{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Role:        req.Role,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		Email:       req.Email,
		LinkedinURL: req.LinkedinURL,
		Order:       req.Order,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO team_members
		 (id, name, role, description, photo_url, email, linkedin_url, display_order, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.Name, m.Role, m.Description,
		nullable(m.PhotoURL), nullable(m.Email), nullable(m.LinkedinURL), m.Order, m.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("insert team member: %w", err)
	}
	return &m, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// nullable maps "" to NULL for optional text columns.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
