package login_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/chalix/coursehub/internal/app/features/errors"
	"github.com/chalix/coursehub/internal/app/features/login"
	prefstore "github.com/chalix/coursehub/internal/app/store/preferences"
	userstore "github.com/chalix/coursehub/internal/app/store/users"
	"github.com/chalix/coursehub/internal/app/system/auth"
	"github.com/chalix/coursehub/internal/domain/models"
	"github.com/chalix/coursehub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSessionKey = "test-session-key-for-testing-0123456789"

func newTestHandler(t *testing.T) (*login.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager(testSessionKey, "coursehub-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	errLog := uierrors.NewErrorLogger(logger)
	return login.NewHandler(db, sm, errLog, nil, logger), db
}

func createAccount(t *testing.T, h *login.Handler, username, password string) models.User {
	t.Helper()
	ctx := testutil.TestContext(t)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	u, err := h.Users.Create(ctx, models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return u
}

func postLogin(t *testing.T, h *login.Handler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	// Failure paths re-render the form, which needs the full template
	// set; success paths only redirect.
	func() {
		defer func() { recover() }()
		h.HandleLoginPost(rec, req)
	}()
	return rec
}

func TestLogin_Success_AssignsDefaultLanguage(t *testing.T) {
	h, db := newTestHandler(t)
	u := createAccount(t, h, "an", "s3cret-pass")

	rec := postLogin(t, h, "an", "s3cret-pass")
	if rec.Code != 303 {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	prefs := prefstore.New(db)
	got, err := prefs.Get(testutil.TestContext(t), u.ID, models.LanguageKey)
	if err != nil {
		t.Fatalf("language preference missing after login: %v", err)
	}
	if got != "vi" {
		t.Errorf("language = %q, want %q", got, "vi")
	}
}

func TestLogin_KeepsExistingLanguage(t *testing.T) {
	h, db := newTestHandler(t)
	u := createAccount(t, h, "binh", "s3cret-pass")

	prefs := prefstore.New(db)
	if err := prefs.Set(testutil.TestContext(t), u.ID, models.LanguageKey, "en"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if rec := postLogin(t, h, "binh", "s3cret-pass"); rec.Code != 303 {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	got, _ := prefs.Get(testutil.TestContext(t), u.ID, models.LanguageKey)
	if got != "en" {
		t.Errorf("language = %q, want user's own %q", got, "en")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h, db := newTestHandler(t)
	u := createAccount(t, h, "chi", "s3cret-pass")

	rec := postLogin(t, h, "chi", "wrong")
	if rec.Code == 303 {
		t.Fatal("wrong password must not redirect")
	}

	// No preference side effects on failed login.
	prefs := prefstore.New(db)
	if has, _ := prefs.Has(testutil.TestContext(t), u.ID, models.LanguageKey); has {
		t.Error("failed login must not assign a language")
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	h, _ := newTestHandler(t)
	u := createAccount(t, h, "dung", "s3cret-pass")

	ctx := testutil.TestContext(t)
	if err := h.Users.UpdateProfile(ctx, u.ID, userstore.ProfileUpdate{
		FullName: u.FullName, Email: u.Email, IsActive: false,
	}); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if rec := postLogin(t, h, "dung", "s3cret-pass"); rec.Code == 303 {
		t.Fatal("disabled account must not sign in")
	}
}
