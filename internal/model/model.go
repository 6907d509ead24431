// Package model defines the core domain types for the community health
// platform: workshops, registrations, resources, contacts, partners, team
// members, and the bilingual content value type they all embed.
package model

import "time"

// Language codes supported by the platform. English is the default and the
// fallback for any unknown code.
const (
	LangEnglish = "en"
	LangSomali  = "so"
	// LangBoth is only valid as a registration/contact preference, never as a
	// content-resolution language.
	LangBoth = "both"
)

// LocalizedText is a bilingual content pair. It is always embedded in an
// entity, never stored on its own.
type LocalizedText struct {
	En string `json:"en"`
	So string `json:"so"`
}

// Resolve returns the string for the requested language. Somali is returned
// only when requested and present; everything else falls back to English.
func (t LocalizedText) Resolve(lang string) string {
	if lang == LangSomali && t.So != "" {
		return t.So
	}
	return t.En
}

// Workshop categories.
const (
	CategoryChronicDisease = "chronic-disease"
	CategoryMentalHealth   = "mental-health"
	CategoryNavigation     = "navigation"
)

// WorkshopCategories lists every valid workshop category.
var WorkshopCategories = []string{
	CategoryChronicDisease,
	CategoryMentalHealth,
	CategoryNavigation,
}

// Workshop represents a scheduled health-education session with a capped
// number of attendees.
type Workshop struct {
	ID               string        `json:"id"`
	Title            LocalizedText `json:"title"`
	Description      LocalizedText `json:"description"`
	Category         string        `json:"category"`
	Date             time.Time     `json:"date"`
	EndDate          time.Time     `json:"endDate"`
	Location         string        `json:"location"`
	MaxAttendees     int           `json:"maxAttendees"`
	CurrentAttendees int           `json:"currentAttendees"`
	IsActive         bool          `json:"isActive"`
	Facilitator      string        `json:"facilitator,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// Remaining returns the number of open seats.
func (w *Workshop) Remaining() int {
	return w.MaxAttendees - w.CurrentAttendees
}

// IsFull reports whether the workshop has no open seats.
func (w *Workshop) IsFull() bool {
	return w.CurrentAttendees >= w.MaxAttendees
}

// Registration records one person signed up for one workshop. Immutable after
// creation.
type Registration struct {
	ID                string    `json:"id"`
	WorkshopID        string    `json:"workshopId"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	PreferredLanguage string    `json:"preferredLanguage"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ResourceCategories lists every valid resource category.
var ResourceCategories = []string{
	"health-guides",
	"nutrition",
	"videos",
	"tools",
	"directory",
	"forms",
}

// ResourceTypes lists the valid resource media types. "link" appears in
// existing content alongside the four documented types.
var ResourceTypes = []string{"pdf", "video", "form", "tool", "link"}

// Resource is a downloadable or linkable health material.
type Resource struct {
	ID           string        `json:"id"`
	Title        LocalizedText `json:"title"`
	Description  LocalizedText `json:"description"`
	Category     string        `json:"category"`
	Type         string        `json:"type"`
	URL          string        `json:"url,omitempty"`
	DownloadURL  string        `json:"downloadUrl,omitempty"`
	ThumbnailURL string        `json:"thumbnailUrl,omitempty"`
	IsActive     bool          `json:"isActive"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Contact is a submitted inquiry from the contact form.
type Contact struct {
	ID                  string    `json:"id"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone,omitempty"`
	PreferredLanguage   string    `json:"preferredLanguage"`
	InquiryType         string    `json:"inquiryType"`
	Message             string    `json:"message"`
	SubscribeNewsletter bool      `json:"subscribeNewsletter"`
	IsRead              bool      `json:"isRead"`
	CreatedAt           time.Time `json:"createdAt"`
}

// Partner is a community organization the program works with.
type Partner struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description LocalizedText `json:"description"`
	Type        string        `json:"type"` // "primary" or "supporting"
	LogoURL     string        `json:"logoUrl,omitempty"`
	WebsiteURL  string        `json:"websiteUrl,omitempty"`
	Services    []string      `json:"services,omitempty"`
	IsActive    bool          `json:"isActive"`
}

// TeamMember is a staff profile shown on the team page. Order controls the
// display position, independent of insertion sequence.
type TeamMember struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Role        LocalizedText `json:"role"`
	Description LocalizedText `json:"description"`
	PhotoURL    string        `json:"photoUrl,omitempty"`
	Email       string        `json:"email,omitempty"`
	LinkedinURL string        `json:"linkedinUrl,omitempty"`
	Order       int           `json:"order"`
	IsActive    bool          `json:"isActive"`
}

// User is a stored account record. There is no login surface; only the record
// and its hashed password are kept.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
