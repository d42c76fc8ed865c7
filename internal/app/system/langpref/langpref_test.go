package langpref

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	prefstore "github.com/chalix/coursehub/internal/app/store/preferences"
	userstore "github.com/chalix/coursehub/internal/app/store/users"
	"github.com/chalix/coursehub/internal/domain/models"
	"github.com/chalix/coursehub/internal/testutil"
	"go.uber.org/zap"
)

func TestEnsureDefault_SetsOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	prefs := prefstore.New(db)
	ctx := testutil.TestContext(t)
	u := testutil.CreateUser(t, db, "an", "an@example.com")

	EnsureDefault(ctx, prefs, u.ID, u.Username, zap.NewNop())

	got, err := prefs.Get(ctx, u.ID, models.LanguageKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "vi" {
		t.Errorf("language = %q, want %q", got, "vi")
	}
}

func TestEnsureDefault_KeepsExistingChoice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	prefs := prefstore.New(db)
	ctx := testutil.TestContext(t)
	u := testutil.CreateUser(t, db, "binh", "binh@example.com")

	if err := prefs.Set(ctx, u.ID, models.LanguageKey, "en"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Simulate repeated logins.
	EnsureDefault(ctx, prefs, u.ID, u.Username, zap.NewNop())
	EnsureDefault(ctx, prefs, u.ID, u.Username, zap.NewNop())

	got, _ := prefs.Get(ctx, u.ID, models.LanguageKey)
	if got != "en" {
		t.Errorf("language = %q, want user's own %q", got, "en")
	}
}

func TestBackfill(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := userstore.New(db, zap.NewNop())
	prefs := prefstore.New(db)
	ctx := testutil.TestContext(t)

	withPref := testutil.CreateUser(t, db, "haspref", "haspref@example.com")
	if err := prefs.Set(ctx, withPref.ID, models.LanguageKey, "en"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	testutil.CreateUser(t, db, "nopref1", "n1@example.com")
	testutil.CreateUser(t, db, "nopref2", "n2@example.com")
	testutil.CreateUser(t, db, "noemail", "") // skipped entirely

	var out, errOut bytes.Buffer
	stats, err := Backfill(ctx, users, prefs, Options{BatchSize: 2}, &out, &errOut, zap.NewNop())
	if err != nil {
		t.Fatalf("Backfill failed: %v", err)
	}
	if stats.Processed != 3 {
		t.Errorf("Processed = %d, want 3", stats.Processed)
	}
	if stats.Updated != 2 {
		t.Errorf("Updated = %d, want 2", stats.Updated)
	}
	if !strings.Contains(out.String(), "updated 2 of 3 users") {
		t.Errorf("summary missing from output: %q", out.String())
	}

	// The explicit choice survived.
	got, _ := prefs.Get(ctx, withPref.ID, models.LanguageKey)
	if got != "en" {
		t.Errorf("existing preference = %q, want %q", got, "en")
	}
}

func TestBackfill_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := userstore.New(db, zap.NewNop())
	prefs := prefstore.New(db)
	ctx := testutil.TestContext(t)

	testutil.CreateUser(t, db, "an", "an@example.com")

	var out, errOut bytes.Buffer
	if _, err := Backfill(ctx, users, prefs, Options{}, &out, &errOut, zap.NewNop()); err != nil {
		t.Fatalf("first Backfill failed: %v", err)
	}
	stats, err := Backfill(ctx, users, prefs, Options{}, &out, &errOut, zap.NewNop())
	if err != nil {
		t.Fatalf("second Backfill failed: %v", err)
	}
	if stats.Updated != 0 {
		t.Errorf("second run Updated = %d, want 0", stats.Updated)
	}
}

func TestBackfill_DryRunWritesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := userstore.New(db, zap.NewNop())
	prefs := prefstore.New(db)
	ctx := testutil.TestContext(t)

	u := testutil.CreateUser(t, db, "an", "an@example.com")

	var out, errOut bytes.Buffer
	stats, err := Backfill(ctx, users, prefs, Options{DryRun: true}, &out, &errOut, zap.NewNop())
	if err != nil {
		t.Fatalf("Backfill failed: %v", err)
	}
	if stats.Updated != 1 {
		t.Errorf("dry-run Updated = %d, want 1 reported", stats.Updated)
	}
	if !strings.Contains(out.String(), "would update 1 of 1 users") {
		t.Errorf("dry-run summary missing: %q", out.String())
	}

	if has, _ := prefs.Has(ctx, u.ID, models.LanguageKey); has {
		t.Error("dry run must not write preferences")
	}
}

func TestBackfill_PrintsProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := userstore.New(db, zap.NewNop())
	prefs := prefstore.New(db)
	ctx := testutil.TestContext(t)

	for i := 0; i < 105; i++ {
		testutil.CreateUser(t, db, fmt.Sprintf("user%03d", i), fmt.Sprintf("user%03d@example.com", i))
	}

	var out, errOut bytes.Buffer
	stats, err := Backfill(ctx, users, prefs, Options{BatchSize: 50}, &out, &errOut, zap.NewNop())
	if err != nil {
		t.Fatalf("Backfill failed: %v", err)
	}
	if stats.Processed != 105 {
		t.Errorf("Processed = %d, want 105", stats.Processed)
	}
	if !strings.Contains(out.String(), "processed 100 users...") {
		t.Errorf("expected progress line, got %q", out.String())
	}
}
