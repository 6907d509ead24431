package model

import "time"

// CreateWorkshopRequest is the payload for creating a workshop.
type CreateWorkshopRequest struct {
	Title        LocalizedText `json:"title"`
	Description  LocalizedText `json:"description"`
	Category     string        `json:"category"`
	Date         time.Time     `json:"date"`
	EndDate      time.Time     `json:"endDate"`
	Location     string        `json:"location"`
	MaxAttendees int           `json:"maxAttendees"`
	IsActive     *bool         `json:"isActive,omitempty"`
	Facilitator  string        `json:"facilitator,omitempty"`
}

// UpdateWorkshopRequest carries a partial administrative update. Nil fields
// are left unchanged.
type UpdateWorkshopRequest struct {
	Title        *LocalizedText `json:"title,omitempty"`
	Description  *LocalizedText `json:"description,omitempty"`
	Category     *string        `json:"category,omitempty"`
	Date         *time.Time     `json:"date,omitempty"`
	EndDate      *time.Time     `json:"endDate,omitempty"`
	Location     *string        `json:"location,omitempty"`
	MaxAttendees *int           `json:"maxAttendees,omitempty"`
	IsActive     *bool          `json:"isActive,omitempty"`
	Facilitator  *string        `json:"facilitator,omitempty"`
}

// RegisterRequest is the payload for registering a person for a workshop.
type RegisterRequest struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	PreferredLanguage string `json:"preferredLanguage"`
}

// CreateResourceRequest is the payload for publishing a resource.
type CreateResourceRequest struct {
	Title        LocalizedText `json:"title"`
	Description  LocalizedText `json:"description"`
	Category     string        `json:"category"`
	Type         string        `json:"type"`
	URL          string        `json:"url,omitempty"`
	DownloadURL  string        `json:"downloadUrl,omitempty"`
	ThumbnailURL string        `json:"thumbnailUrl,omitempty"`
	IsActive     *bool         `json:"isActive,omitempty"`
}

// CreateContactRequest is the payload for a contact-form submission.
type CreateContactRequest struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email"`
	Phone               string `json:"phone,omitempty"`
	PreferredLanguage   string `json:"preferredLanguage"`
	InquiryType         string `json:"inquiryType"`
	Message             string `json:"message"`
	SubscribeNewsletter bool   `json:"subscribeNewsletter"`
}

// CreatePartnerRequest is the payload for adding a partner organization.
type CreatePartnerRequest struct {
	Name        string        `json:"name"`
	Description LocalizedText `json:"description"`
	Type        string        `json:"type"`
	LogoURL     string        `json:"logoUrl,omitempty"`
	WebsiteURL  string        `json:"websiteUrl,omitempty"`
	Services    []string      `json:"services,omitempty"`
	IsActive    *bool         `json:"isActive,omitempty"`
}

// CreateTeamMemberRequest is the payload for adding a team member profile.
type CreateTeamMemberRequest struct {
	Name        string        `json:"name"`
	Role        LocalizedText `json:"role"`
	Description LocalizedText `json:"description"`
	PhotoURL    string        `json:"photoUrl,omitempty"`
	Email       string        `json:"email,omitempty"`
	LinkedinURL string        `json:"linkedinUrl,omitempty"`
	Order       int           `json:"order"`
	IsActive    *bool         `json:"isActive,omitempty"`
}

// ContactReceipt is returned after a successful contact submission.
type ContactReceipt struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
