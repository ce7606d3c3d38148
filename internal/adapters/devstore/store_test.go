package devstore_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"coachdesk/internal/adapters/devstore"
	"coachdesk/internal/adapters/remote"
)

func newStore(t *testing.T, normalized bool) (*devstore.Store, *sql.DB) {
	t.Helper()
	db, err := devstore.Open(filepath.Join(t.TempDir(), "dev.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := devstore.New(db)
	if err := store.Migrate(context.Background(), normalized); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store, db
}

func seed(t *testing.T, store *devstore.Store) {
	t.Helper()
	if err := store.SeedDemo(context.Background(), time.Now()); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

// TestSelect_MissingTableCode mirrors the hosted store's 42P01 condition.
func TestSelect_MissingTableCode(t *testing.T) {
	store, _ := newStore(t, false) // denormalized: no employees table

	_, err := store.Select(context.Background(), remote.Query{Table: "employees"})
	if !remote.IsMissingRelation(err) {
		t.Fatalf("err=%v want missing-relation code", err)
	}

	// A joined select against the session table also fails with 42P01.
	_, err = store.Select(context.Background(), remote.Query{
		Table:  "sessions",
		Select: "*, employee:employees(first_name,last_name)",
	})
	if !remote.IsMissingRelation(err) {
		t.Fatalf("joined err=%v want missing-relation code", err)
	}
}

// TestSelect_NotNullFilterAndRange exercises filters with paging.
func TestSelect_NotNullFilterAndRange(t *testing.T) {
	store, _ := newStore(t, true)
	seed(t, store)

	all, err := store.Select(context.Background(), remote.Query{
		Table:   "sessions",
		NotNull: []string{"employee_name"},
	})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("no seeded sessions")
	}
	for _, r := range all {
		if r["employee_name"] == nil {
			t.Fatal("not-null filter leaked a null row")
		}
	}

	page, err := store.Select(context.Background(), remote.Query{
		Table: "sessions", Limit: 3, Offset: 2, OrderBy: "created_at",
	})
	if err != nil {
		t.Fatalf("paged select: %v", err)
	}
	if len(page) != 3 {
		t.Errorf("page len=%d want 3", len(page))
	}
}

// TestSelect_JoinedNestsEmployee verifies the nested-relation emulation.
func TestSelect_JoinedNestsEmployee(t *testing.T) {
	store, _ := newStore(t, true)
	seed(t, store)

	rows, err := store.Select(context.Background(), remote.Query{
		Table:  "sessions",
		Select: "*, employee:employees(first_name,last_name,program,avatar_url)",
	})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	nested := 0
	for _, r := range rows {
		if sub, ok := r["employee"].(map[string]any); ok {
			nested++
			if sub["first_name"] == nil {
				t.Error("nested employee missing first_name")
			}
		}
	}
	if nested == 0 {
		t.Fatal("no rows carried a nested employee")
	}
}

// TestSelect_UnknownColumn reports the 42703 code.
func TestSelect_UnknownColumn(t *testing.T) {
	store, _ := newStore(t, true)
	_, err := store.Select(context.Background(), remote.Query{
		Table: "sessions", OrderBy: "no_such_column",
	})
	var qe *remote.QueryError
	if !errors.As(err, &qe) || qe.Code != remote.CodeUndefinedColumn {
		t.Fatalf("err=%v want undefined-column code", err)
	}
}

// TestAuth_SignIn verifies the bcrypt round trip and failure mode.
func TestAuth_SignIn(t *testing.T) {
	store, db := newStore(t, true)

	if err := store.SeedAccount(context.Background(), "admin@example.com", "correct horse battery"); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	auth := devstore.NewAuth(db)

	id, err := auth.SignIn(context.Background(), "admin@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("sign-in: %v", err)
	}
	if id.Email != "admin@example.com" || id.UserID == "" {
		t.Errorf("identity=%+v", id)
	}

	if _, err := auth.SignIn(context.Background(), "admin@example.com", "wrong"); err != devstore.ErrInvalidCredentials {
		t.Errorf("err=%v want ErrInvalidCredentials", err)
	}
	if _, err := auth.SignIn(context.Background(), "nobody@example.com", "x"); err != devstore.ErrInvalidCredentials {
		t.Errorf("err=%v want ErrInvalidCredentials", err)
	}
}
