package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shec-toronto/community-health-api/internal/model"
	"github.com/shec-toronto/community-health-api/internal/store"
)

func newTestService() *Service {
	return New(store.NewMemStore())
}

func validWorkshop(date time.Time) model.CreateWorkshopRequest {
	return model.CreateWorkshopRequest{
		Title:        model.LocalizedText{En: "Healthcare Navigation 101", So: "Hagista Daryeelka 101"},
		Description:  model.LocalizedText{En: "Finding your way", So: "Helitaanka jidkaaga"},
		Category:     model.CategoryNavigation,
		Date:         date,
		EndDate:      date.Add(90 * time.Minute),
		Location:     "Library Branch",
		MaxAttendees: 20,
	}
}

func validRegistrant() model.RegisterRequest {
	return model.RegisterRequest{
		FirstName:         "Hodan",
		LastName:          "Farah",
		Email:             "hodan@example.com",
		PreferredLanguage: model.LangBoth,
	}
}

func fieldError(t *testing.T, err error, field string) {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if _, ok := vErr.Fields[field]; !ok {
		t.Errorf("validation error missing field %q: %v", field, vErr.Fields)
	}
}

func TestCreateWorkshopValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	date := time.Now().Add(48 * time.Hour)

	t.Run("valid", func(t *testing.T) {
		if _, err := svc.CreateWorkshop(ctx, validWorkshop(date)); err != nil {
			t.Fatalf("CreateWorkshop failed: %v", err)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		req := validWorkshop(date)
		req.Title = model.LocalizedText{}
		_, err := svc.CreateWorkshop(ctx, req)
		fieldError(t, err, "title")
	})

	t.Run("bad category", func(t *testing.T) {
		req := validWorkshop(date)
		req.Category = "yoga"
		_, err := svc.CreateWorkshop(ctx, req)
		fieldError(t, err, "category")
	})

	t.Run("end before start", func(t *testing.T) {
		req := validWorkshop(date)
		req.EndDate = date.Add(-time.Hour)
		_, err := svc.CreateWorkshop(ctx, req)
		fieldError(t, err, "endDate")
	})

	t.Run("non-positive capacity", func(t *testing.T) {
		req := validWorkshop(date)
		req.MaxAttendees = 0
		_, err := svc.CreateWorkshop(ctx, req)
		fieldError(t, err, "maxAttendees")
	})
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	w, err := svc.CreateWorkshop(ctx, validWorkshop(time.Now().Add(48*time.Hour)))
	if err != nil {
		t.Fatalf("CreateWorkshop failed: %v", err)
	}

	t.Run("bad email", func(t *testing.T) {
		req := validRegistrant()
		req.Email = "not-an-email"
		_, err := svc.Register(ctx, w.ID, req)
		fieldError(t, err, "email")
	})

	t.Run("bad language", func(t *testing.T) {
		req := validRegistrant()
		req.PreferredLanguage = "fr"
		_, err := svc.Register(ctx, w.ID, req)
		fieldError(t, err, "preferredLanguage")
	})

	t.Run("missing names", func(t *testing.T) {
		req := validRegistrant()
		req.FirstName = "   "
		req.LastName = ""
		_, err := svc.Register(ctx, w.ID, req)
		fieldError(t, err, "firstName")
		fieldError(t, err, "lastName")
	})

	t.Run("email normalized", func(t *testing.T) {
		req := validRegistrant()
		req.Email = "  HODAN@Example.COM "
		reg, err := svc.Register(ctx, w.ID, req)
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if reg.Email != "hodan@example.com" {
			t.Errorf("email = %q, want lowercased and trimmed", reg.Email)
		}
	})

	// Validation failures must not touch the counter.
	got, _ := svc.GetWorkshop(ctx, w.ID)
	if got.CurrentAttendees != 1 {
		t.Errorf("currentAttendees = %d, want 1 (only the valid attempt)", got.CurrentAttendees)
	}
}

func TestRegisterUnknownWorkshop(t *testing.T) {
	svc := newTestService()

	_, err := svc.Register(context.Background(), "no-such-id", validRegistrant())
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

// A full workshop reports CapacityExceeded before input validation runs, so
// the caller learns the useful fact first.
func TestRegisterFullBeatsValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	req := validWorkshop(time.Now().Add(48 * time.Hour))
	req.MaxAttendees = 1
	w, err := svc.CreateWorkshop(ctx, req)
	if err != nil {
		t.Fatalf("CreateWorkshop failed: %v", err)
	}
	if _, err := svc.Register(ctx, w.ID, validRegistrant()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	invalid := model.RegisterRequest{} // would normally be a validation error
	if _, err := svc.Register(ctx, w.ID, invalid); !errors.Is(err, store.ErrWorkshopFull) {
		t.Fatalf("error = %v, want ErrWorkshopFull", err)
	}
}

func TestSubmitContactValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	valid := model.CreateContactRequest{
		FirstName:         "Sagal",
		LastName:          "Omar",
		Email:             "sagal@example.com",
		PreferredLanguage: model.LangSomali,
		InquiryType:       "partnership",
		Message:           "We would like to host a session.",
	}

	c, err := svc.SubmitContact(ctx, valid)
	if err != nil {
		t.Fatalf("SubmitContact failed: %v", err)
	}
	if c.IsRead {
		t.Error("new contact should start unread")
	}

	missing := valid
	missing.Message = "  "
	_, err = svc.SubmitContact(ctx, missing)
	fieldError(t, err, "message")
}

func TestCreatePartnerValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreatePartner(ctx, model.CreatePartnerRequest{
		Name:        "Clinic",
		Description: model.LocalizedText{En: "Local clinic"},
		Type:        "sponsor",
	})
	fieldError(t, err, "type")
}

func TestCreateUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "coordinator", "a-long-password")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if u.PasswordHash == "a-long-password" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("a-long-password")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}

	_, err = svc.CreateUser(ctx, "short", "tiny")
	fieldError(t, err, "password")
}
