package session

import (
	"strings"
	"time"

	"coachdesk/internal/domain/row"
)

// UnknownEmployee is the display name used when a session resolves no
// employee name at all.
const UnknownEmployee = "Unknown Employee"

// Alternate column names per logical attribute, in priority order.
var (
	IDFields        = []string{"id", "session_id", "uuid"}
	CreatedFields   = []string{"created_at", "inserted_at"}
	DateFields      = []string{"session_date", "date", "scheduled_at", "session_at"}
	StatusFields    = []string{"status", "session_status", "state"}
	ProgramFields   = []string{"program", "account", "department"}
	FlatNameFields  = []string{"employee_name", "employee", "name", "client_name"}
	NestedRefFields = []string{"employee", "employees", "employee_manager"}
)

// EmployeeRef is the uniform employee reference every session carries:
// either the joined sub-record from the preferred schema, or one
// synthesized from flat columns on the session row itself.
type EmployeeRef struct {
	ID        string
	FirstName string
	LastName  string
	FullName  string
	Program   string
	AvatarURL string

	// Synthesized is true when the reference was built from flat columns
	// rather than a joined sub-record.
	Synthesized bool
}

// Session is one coaching/tracking event.
type Session struct {
	ID        string
	CreatedAt time.Time
	Date      time.Time
	Status    string
	Program   string
	Employee  *EmployeeRef

	// Raw is the original fetched row, kept for the record inspector.
	Raw row.Row
}

// FromRow reconciles a remote row into a Session.
// PRE: m is a JSON-decoded row from the session table, joined or flat
// POST: s.Employee is non-nil whenever any employee information exists on
// the row, so downstream consumers always see a uniform shape
func FromRow(m row.Row) Session {
	s := Session{Raw: m}
	s.ID, _ = row.Pick(m, IDFields...)
	s.CreatedAt, _ = row.PickTime(m, CreatedFields...)
	s.Date, _ = row.PickTime(m, DateFields...)
	s.Status, _ = row.Pick(m, StatusFields...)
	s.Program, _ = row.Pick(m, ProgramFields...)

	if sub, ok := row.SubRow(m, NestedRefFields...); ok {
		ref := refFromSubRow(sub)
		s.Employee = &ref
		return s
	}
	if ref, ok := SynthesizeRef(m); ok {
		s.Employee = &ref
	}
	return s
}

func refFromSubRow(sub row.Row) EmployeeRef {
	ref := EmployeeRef{}
	ref.ID, _ = row.Pick(sub, "id", "employee_id")
	ref.FirstName, _ = row.Pick(sub, "first_name", "firstname", "given_name")
	ref.LastName, _ = row.Pick(sub, "last_name", "lastname", "surname", "family_name")
	ref.FullName, _ = row.Pick(sub, "full_name", "name", "display_name")
	ref.Program, _ = row.Pick(sub, "program", "department", "organization")
	ref.AvatarURL, _ = row.Pick(sub, "avatar_url", "avatar", "photo_url")
	return ref
}

// SynthesizeRef builds an employee reference from flat columns on a
// session row, splitting the name on the first whitespace boundary.
// POST: Returns (ref, false) when the row carries no employee information
func SynthesizeRef(m row.Row) (EmployeeRef, bool) {
	ref := EmployeeRef{Synthesized: true}
	ref.ID, _ = row.Pick(m, "employee_id")
	ref.Program, _ = row.Pick(m, ProgramFields...)
	ref.AvatarURL, _ = row.Pick(m, "avatar_url", "avatar")

	name, ok := row.Pick(m, FlatNameFields...)
	if !ok {
		return ref, ref.ID != ""
	}
	first, last, found := strings.Cut(name, " ")
	if found {
		ref.FirstName = strings.TrimSpace(first)
		ref.LastName = strings.TrimSpace(last)
	} else {
		ref.FirstName = name
	}
	ref.FullName = name
	return ref, true
}

// DisplayName resolves the reference's name, preferring a composed
// "First Last" over a bare full-name column.
func (r EmployeeRef) DisplayName() string {
	if r.FirstName != "" || r.LastName != "" {
		return strings.TrimSpace(r.FirstName + " " + r.LastName)
	}
	return r.FullName
}

// EmployeeDisplayName resolves the owning employee's name for grouping:
// the nested reference first, then flat columns on the session row,
// defaulting to UnknownEmployee.
// POST: Never empty
func (s Session) EmployeeDisplayName() string {
	if s.Employee != nil {
		if name := s.Employee.DisplayName(); name != "" {
			return name
		}
	}
	if name, ok := row.Pick(s.Raw, FlatNameFields...); ok {
		return name
	}
	return UnknownEmployee
}

// ProgramName resolves the program label, preferring the employee
// reference over the session's own label. Empty when neither carries one.
func (s Session) ProgramName() string {
	if s.Employee != nil && s.Employee.Program != "" {
		return s.Employee.Program
	}
	return s.Program
}

// EmployeeKey is the case-insensitive join key for aggregation.
func (s Session) EmployeeKey() string {
	return strings.ToLower(s.EmployeeDisplayName())
}

// EmployeeID returns the referenced employee's identifier, or "" when the
// session carries none.
func (s Session) EmployeeID() string {
	if s.Employee != nil && s.Employee.ID != "" {
		return s.Employee.ID
	}
	id, _ := row.Pick(s.Raw, "employee_id")
	return id
}
