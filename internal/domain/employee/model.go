package employee

import (
	"strings"
	"time"

	"coachdesk/internal/domain/row"
)

// Placeholder values used when no alternate column resolves.
const (
	UnknownName = "Unknown"
	NoProgram   = "Unassigned"
	NoValue     = "-"
)

// Alternate column names per logical attribute, in priority order.
// The remote schema is not fixed: semantically equivalent columns appear
// under different names depending on who provisioned the project, and the
// first populated one wins. Kept as package-level tables so the
// resolution order is auditable and testable in isolation.
var (
	IDFields        = []string{"id", "employee_id", "uuid"}
	FirstNameFields = []string{"first_name", "firstname", "given_name"}
	LastNameFields  = []string{"last_name", "lastname", "surname", "family_name"}
	FullNameFields  = []string{"full_name", "name", "display_name", "employee", "employee_name"}
	ProgramFields   = []string{"program", "department", "organization", "team", "account"}
	EmailFields     = []string{"email", "email_address", "work_email", "contact_email"}
	PhoneFields     = []string{"phone", "phone_number", "mobile"}
	StartFields     = []string{"start_date", "started_at", "hire_date"}
	EndFields       = []string{"end_date", "ended_at", "termination_date"}
	NotesFields     = []string{"notes", "comments"}
	AvatarFields    = []string{"avatar_url", "avatar", "photo_url", "image_url"}
)

// Employee is one roster record, reconciled from whatever column names the
// remote table happens to use. Read-only from this system's perspective.
type Employee struct {
	ID        string
	FirstName string
	LastName  string
	FullName  string
	Program   string
	Email     string
	Phone     string
	Notes     string
	AvatarURL string
	StartDate time.Time
	EndDate   time.Time

	// Raw is the original fetched row, kept for the record inspector.
	Raw row.Row
}

// FromRow reconciles a remote row into an Employee.
// PRE: m is a JSON-decoded row from the roster table (or a session row
// carrying flat employee columns)
// POST: Every attribute holds the first populated alternate column, or is
// empty; no format validation is performed
func FromRow(m row.Row) Employee {
	e := Employee{Raw: m}
	e.ID, _ = row.Pick(m, IDFields...)
	e.FirstName, _ = row.Pick(m, FirstNameFields...)
	e.LastName, _ = row.Pick(m, LastNameFields...)
	e.FullName, _ = row.Pick(m, FullNameFields...)
	e.Program, _ = row.Pick(m, ProgramFields...)
	e.Email, _ = row.Pick(m, EmailFields...)
	e.Phone, _ = row.Pick(m, PhoneFields...)
	e.Notes, _ = row.Pick(m, NotesFields...)
	e.AvatarURL, _ = row.Pick(m, AvatarFields...)
	e.StartDate, _ = row.PickTime(m, StartFields...)
	e.EndDate, _ = row.PickTime(m, EndFields...)
	return e
}

// DisplayName resolves the name shown in the dashboard: a composed
// "First Last" is preferred over a bare full-name column.
// POST: Never empty; falls back to UnknownName
func (e Employee) DisplayName() string {
	if e.FirstName != "" || e.LastName != "" {
		return strings.TrimSpace(e.FirstName + " " + e.LastName)
	}
	if e.FullName != "" {
		return e.FullName
	}
	return UnknownName
}

// NameKey is the case-insensitive key used to join roster records with
// session records.
func (e Employee) NameKey() string {
	return strings.ToLower(e.DisplayName())
}

// ProgramLabel returns the program for display, with placeholder.
func (e Employee) ProgramLabel() string {
	if e.Program == "" {
		return NoProgram
	}
	return e.Program
}
