package userstore

import (
	"errors"
	"testing"

	"github.com/chalix/coursehub/internal/domain/models"
	"github.com/chalix/coursehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return New(db, zap.NewNop())
}

func TestCreate_EmptyEmailRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)

	for _, email := range []string{"", "   ", "\t\n"} {
		_, err := s.Create(ctx, models.User{Username: "an", Email: email})
		var fe *FieldError
		if !errors.As(err, &fe) {
			t.Fatalf("Create(email=%q) error = %v, want FieldError", email, err)
		}
		if fe.Field != "email" {
			t.Errorf("FieldError.Field = %q, want %q", fe.Field, "email")
		}
	}

	// Nothing may have reached storage.
	if _, err := s.GetByUsername(ctx, "an"); err == nil {
		t.Error("rejected user must not be persisted")
	}
}

func TestCreate_AndLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)

	created, err := s.Create(ctx, models.User{
		Username: "  An  ",
		FullName: "An   Nguyen",
		Email:    " An@Example.COM ",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Username != "An" {
		t.Errorf("Username = %q, want trimmed %q", created.Username, "An")
	}
	if created.Email != "an@example.com" {
		t.Errorf("Email = %q, want normalized %q", created.Email, "an@example.com")
	}
	if created.FullName != "An Nguyen" {
		t.Errorf("FullName = %q, want collapsed %q", created.FullName, "An Nguyen")
	}

	got, err := s.GetByUsername(ctx, "AN")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("lookup returned %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
}

func TestUpdateProfile_CannotClearEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)

	u, err := s.Create(ctx, models.User{Username: "binh", Email: "binh@example.com", IsActive: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = s.UpdateProfile(ctx, u.ID, ProfileUpdate{FullName: "Binh", Email: "  ", IsActive: true})
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("UpdateProfile error = %v, want FieldError", err)
	}

	// The stored email must be untouched.
	got, err := s.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Email != "binh@example.com" {
		t.Errorf("stored email = %q, want unchanged", got.Email)
	}
}

func TestUpdateProfile_CanChangeEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)

	u, err := s.Create(ctx, models.User{Username: "chi", Email: "chi@example.com", IsActive: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := s.UpdateProfile(ctx, u.ID, ProfileUpdate{FullName: "Chi", Email: "chi@chalix.vn", IsActive: true}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	got, _ := s.GetByID(ctx, u.ID)
	if got.Email != "chi@chalix.vn" {
		t.Errorf("email = %q, want %q", got.Email, "chi@chalix.vn")
	}
}

func TestUpdateEmail_RepairLegacyEmptyAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db, zap.NewNop())
	ctx := testutil.TestContext(t)

	// Legacy record that predates the guard.
	legacy := testutil.CreateUser(t, db, "dung", "")

	// Setting a real email on it is allowed.
	if err := s.UpdateEmail(ctx, legacy.ID, "dung@example.com"); err != nil {
		t.Fatalf("UpdateEmail failed: %v", err)
	}
	// Once set, it can never be cleared again.
	if err := s.UpdateEmail(ctx, legacy.ID, ""); err == nil {
		t.Fatal("clearing a set email must fail")
	}
}

func TestUpdateProfile_MissingRecordValidatedAsCreate(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)

	err := s.UpdateProfile(ctx, primitive.NewObjectID(), ProfileUpdate{Email: ""})
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want FieldError for missing record with empty email", err)
	}
}

func TestListActiveWithEmail_Pages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db, zap.NewNop())
	ctx := testutil.TestContext(t)

	testutil.CreateUser(t, db, "u1", "u1@example.com")
	testutil.CreateUser(t, db, "u2", "u2@example.com")
	testutil.CreateUser(t, db, "u3", "") // legacy empty email, excluded
	testutil.CreateUser(t, db, "u4", "u4@example.com")

	page1, err := s.ListActiveWithEmail(ctx, primitive.NilObjectID, 2)
	if err != nil {
		t.Fatalf("ListActiveWithEmail failed: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("page 1 size = %d, want 2", len(page1))
	}

	page2, err := s.ListActiveWithEmail(ctx, page1[len(page1)-1].ID, 2)
	if err != nil {
		t.Fatalf("ListActiveWithEmail failed: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("page 2 size = %d, want 1", len(page2))
	}

	total, err := s.CountActiveWithEmail(ctx)
	if err != nil {
		t.Fatalf("CountActiveWithEmail failed: %v", err)
	}
	if total != 3 {
		t.Errorf("count = %d, want 3", total)
	}
}

func TestFetchSessionUser_InactiveDropsOut(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := NewFetcher(db, zap.NewNop())
	s := New(db, zap.NewNop())

	u, err := s.Create(ctx, models.User{Username: "em", Email: "em@example.com", IsActive: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := f.FetchSessionUser(ctx, u.ID.Hex())
	if err != nil || got == nil {
		t.Fatalf("FetchSessionUser = (%v, %v), want user", got, err)
	}

	if err := s.UpdateProfile(ctx, u.ID, ProfileUpdate{FullName: u.FullName, Email: u.Email, IsActive: false}); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	got, err = f.FetchSessionUser(ctx, u.ID.Hex())
	if err != nil {
		t.Fatalf("FetchSessionUser failed: %v", err)
	}
	if got != nil {
		t.Error("inactive user must resolve to nil session user")
	}
}
