package web

import (
	"fmt"
	"net/http"
	"strings"

	"coachdesk/internal/domain/employee"
	"coachdesk/internal/domain/session"
)

// handleSchemaHelp renders the expected-schema reference page
// (GET /schema-help). The column lists are generated from the same
// tables the mappers read, so the page cannot drift from the code.
func handleSchemaHelp(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	md := schemaHelpMarkdown()
	if !isHTMLRequest(r) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(md))
		return
	}
	renderTemplate(w, r, "schema_help.html", map[string]any{
		"Markdown": md,
	})
}

func schemaHelpMarkdown() string {
	var b strings.Builder
	b.WriteString("## Expected schema\n\n")
	b.WriteString("The dashboard reads two tables. Only the `sessions` table is required; without an `employees` table the roster is reconstructed from session records.\n\n")

	b.WriteString("### employees\n\n")
	b.WriteString("Each attribute is resolved against several column names, first match wins:\n\n")
	writeFieldRow(&b, "identifier", employee.IDFields)
	writeFieldRow(&b, "first name", employee.FirstNameFields)
	writeFieldRow(&b, "last name", employee.LastNameFields)
	writeFieldRow(&b, "full name", employee.FullNameFields)
	writeFieldRow(&b, "program", employee.ProgramFields)
	writeFieldRow(&b, "email", employee.EmailFields)
	writeFieldRow(&b, "phone", employee.PhoneFields)
	writeFieldRow(&b, "start date", employee.StartFields)
	writeFieldRow(&b, "avatar", employee.AvatarFields)

	b.WriteString("\n### sessions\n\n")
	writeFieldRow(&b, "identifier", session.IDFields)
	writeFieldRow(&b, "created at", session.CreatedFields)
	writeFieldRow(&b, "session date", session.DateFields)
	writeFieldRow(&b, "status", session.StatusFields)
	writeFieldRow(&b, "program", session.ProgramFields)
	writeFieldRow(&b, "employee name", session.FlatNameFields)

	b.WriteString("\n### Status classification\n\n")
	b.WriteString("A status containing `no show`, `noshow` or `late cancel` counts as a no-show, whatever else it says. ")
	b.WriteString("Otherwise a status containing `completed`, or a blank status on a session dated in the past, counts as completed. ")
	b.WriteString("Everything else is scheduled.\n\n")

	b.WriteString("### Dates\n\n")
	b.WriteString("Timestamps are accepted as RFC 3339 (with or without fractional seconds), `YYYY-MM-DD HH:MM:SS` or bare `YYYY-MM-DD`.\n")
	return b.String()
}

func writeFieldRow(b *strings.Builder, label string, cols []string) {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = "`" + c + "`"
	}
	fmt.Fprintf(b, "- **%s**: %s\n", label, strings.Join(quoted, ", "))
}
