package devstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// demoEmployee is one synthetic roster entry.
type demoEmployee struct {
	first, last, program, email string
}

var demoEmployees = []demoEmployee{
	{"Alice", "Johnson", "Engineering", "alice.johnson@example.com"},
	{"Bob", "Reyes", "Engineering", "bob.reyes@example.com"},
	{"Carla", "Diaz", "Sales", "carla.diaz@example.com"},
	{"Dana", "Fox", "Sales", "dana.fox@example.com"},
	{"Evan", "Moore", "Operations", "evan.moore@example.com"},
	{"Fiona", "Chen", "Operations", "fiona.chen@example.com"},
	{"Gus", "Patel", "", "gus.patel@example.com"},
}

// demoStatuses cycles through the status texts the classifier handles,
// including a blank one so the date-based default is visible in dev.
var demoStatuses = []string{"Completed", "", "Scheduled", "No Show", "Completed", "Late Cancel", "Completed", ""}

// SeedDemo populates the dev tables with a synthetic roster and a few
// months of session history. Idempotent: does nothing when sessions
// already exist.
// PRE: Migrate has run
// POST: Dev dashboard has data in every status bucket
func (s *Store) SeedDemo(ctx context.Context, now time.Time) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		return fmt.Errorf("devstore seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	normalized, err := s.tableExists(ctx, "employees")
	if err != nil {
		return err
	}

	for i, e := range demoEmployees {
		employeeID := int64(i + 1)
		if normalized {
			res, err := s.db.ExecContext(ctx,
				`INSERT INTO employees (first_name, last_name, program, email, start_date)
				 VALUES (?, ?, ?, ?, ?)`,
				e.first, e.last, nullable(e.program), e.email,
				now.AddDate(-1, -i, 0).Format("2006-01-02"))
			if err != nil {
				return fmt.Errorf("devstore seed employee: %w", err)
			}
			employeeID, _ = res.LastInsertId()
		}

		// Three months of sessions per employee, spread across buckets.
		// The last roster entry gets none so the zero-session case shows.
		if e.first == "Gus" {
			continue
		}
		for m := 0; m < 3; m++ {
			for k := 0; k < 2; k++ {
				offset := -m*30 - k*9 + 4*k // a couple land in the future
				date := now.AddDate(0, 0, offset)
				status := demoStatuses[(i+m+k)%len(demoStatuses)]
				_, err := s.db.ExecContext(ctx,
					`INSERT INTO sessions (created_at, session_date, status, program, employee_id, employee_name)
					 VALUES (?, ?, ?, ?, ?, ?)`,
					date.AddDate(0, 0, -7).Format(time.RFC3339),
					date.Format("2006-01-02"),
					nullable(status), nullable(e.program), employeeID, e.first+" "+e.last)
				if err != nil {
					return fmt.Errorf("devstore seed session: %w", err)
				}
			}
		}
	}

	// One session for somebody missing from the roster entirely.
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (created_at, session_date, status, program, employee_id, employee_name)
		 VALUES (?, ?, ?, ?, NULL, ?)`,
		now.AddDate(0, 0, -12).Format(time.RFC3339),
		now.AddDate(0, 0, -5).Format("2006-01-02"),
		"Completed", "Consulting", "Harriet Stone")
	if err != nil {
		return fmt.Errorf("devstore seed session: %w", err)
	}
	return nil
}

// SeedAccount creates a dev sign-in account if the email is not taken.
// PRE: Migrate has run; password is the plaintext to hash
// POST: An account exists for email
func (s *Store) SeedAccount(ctx context.Context, email, password string) error {
	var existing string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM accounts WHERE email = ?", email).Scan(&existing)
	if err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("devstore seed account: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO accounts (id, email, password_hash) VALUES (?, ?, ?)",
		uuid.New().String(), email, string(hash))
	if err != nil {
		return fmt.Errorf("devstore seed account: %w", err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
