// Package store provides keyed storage for every entity type on the
// platform. Two implementations exist: an in-memory store (the default) and a
// PostgreSQL-backed store. Both enforce the workshop capacity invariant
// inside RegisterAttendee, so callers can never over-book a workshop.
package store

import (
	"context"
	"errors"

	"github.com/shec-toronto/community-health-api/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrWorkshopFull is returned when a workshop has no remaining capacity.
var ErrWorkshopFull = errors.New("workshop is full")

// ErrCannotReduceCapacity is returned when an update would set maxAttendees
// below the number of people already registered.
var ErrCannotReduceCapacity = errors.New("cannot reduce capacity below current attendees")

// ErrUsernameTaken is returned when creating a user with an existing username.
var ErrUsernameTaken = errors.New("username already taken")

// Storage is the persistence boundary for all entities. Implementations own
// their records exclusively: returned values are snapshots and mutating them
// has no effect on stored state.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error)

	// Workshops
	ListWorkshops(ctx context.Context) ([]model.Workshop, error)
	// ListUpcomingWorkshops returns active workshops whose date is in the
	// future, in ascending date order.
	ListUpcomingWorkshops(ctx context.Context) ([]model.Workshop, error)
	GetWorkshop(ctx context.Context, id string) (*model.Workshop, error)
	CreateWorkshop(ctx context.Context, req model.CreateWorkshopRequest) (*model.Workshop, error)
	UpdateWorkshop(ctx context.Context, id string, req model.UpdateWorkshopRequest) (*model.Workshop, error)

	// Registrations. RegisterAttendee checks capacity, inserts the
	// registration, and increments currentAttendees as one atomic unit.
	RegisterAttendee(ctx context.Context, workshopID string, req model.RegisterRequest) (*model.Registration, error)
	ListRegistrations(ctx context.Context, workshopID string) ([]model.Registration, error)

	// Resources
	ListResources(ctx context.Context) ([]model.Resource, error)
	ListActiveResources(ctx context.Context) ([]model.Resource, error)
	ListResourcesByCategory(ctx context.Context, category string) ([]model.Resource, error)
	CreateResource(ctx context.Context, req model.CreateResourceRequest) (*model.Resource, error)

	// Contacts. ListContacts returns newest first. MarkContactRead is
	// idempotent.
	CreateContact(ctx context.Context, req model.CreateContactRequest) (*model.Contact, error)
	ListContacts(ctx context.Context) ([]model.Contact, error)
	MarkContactRead(ctx context.Context, id string) error

	// Partners
	ListPartners(ctx context.Context) ([]model.Partner, error)
	ListActivePartners(ctx context.Context) ([]model.Partner, error)
	CreatePartner(ctx context.Context, req model.CreatePartnerRequest) (*model.Partner, error)

	// Team members, sorted by their display order.
	ListTeamMembers(ctx context.Context) ([]model.TeamMember, error)
	ListActiveTeamMembers(ctx context.Context) ([]model.TeamMember, error)
	CreateTeamMember(ctx context.Context, req model.CreateTeamMemberRequest) (*model.TeamMember, error)
}
