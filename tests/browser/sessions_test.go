package browser_test

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// TestSessionsOverview renders tiles, the trend chart and status badges.
func TestSessionsOverview(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/sessions"); err != nil {
		t.Fatalf("navigate: %v", err)
	}

	bars := page.Locator(".chart .bar-col")
	count, err := bars.Count()
	if err != nil {
		t.Fatalf("count bars: %v", err)
	}
	// Demo data spans three months of completed sessions.
	if count < 1 {
		t.Errorf("bars = %d, want at least 1", count)
	}

	badges := page.Locator(".badge")
	bcount, err := badges.Count()
	if err != nil {
		t.Fatalf("count badges: %v", err)
	}
	if bcount == 0 {
		t.Error("no status badges rendered")
	}
}

// TestEmailSummaryButton posts the summary to the noop sender and
// returns to the sessions page.
func TestEmailSummaryButton(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/sessions"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if err := page.Locator(".inline-form button[type=submit]").Click(); err != nil {
		t.Fatalf("click email button: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/sessions", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("expected redirect back to /sessions: %v", err)
	}
}

// TestSchemaHelpPage renders the generated column reference.
func TestSchemaHelpPage(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)
	app.login(t, page)

	if _, err := page.Goto(app.BaseURL + "/schema-help"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	text, err := page.Locator(".prose").InnerText()
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	for _, want := range []string{"employees", "sessions", "employee_name"} {
		if !strings.Contains(text, want) {
			t.Errorf("schema help missing %q", want)
		}
	}
}

// TestBadPasswordShowsError keeps the user on the login page with the
// provider's message.
func TestBadPasswordShowsError(t *testing.T) {
	app := newTestApp(t)
	page := app.newPage(t)

	if _, err := page.Goto(app.BaseURL + "/login"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if err := page.Locator("input[name=email]").Fill(testAdminEmail); err != nil {
		t.Fatalf("fill email: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill("wrong-password"); err != nil {
		t.Fatalf("fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("click login: %v", err)
	}

	if err := page.Locator(".flash.error").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("error flash not shown: %v", err)
	}
}
