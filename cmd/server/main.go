package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"coachdesk/internal/adapters/devstore"
	emailPkg "coachdesk/internal/adapters/email"
	web "coachdesk/internal/adapters/http"
	"coachdesk/internal/adapters/http/perf"
	"coachdesk/internal/adapters/remote"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configureLogging()

	collector := perf.NewCollector(perf.DefaultRingSize)

	deps := &web.Deps{
		EmailFrom:    envOrDefault("COACHDESK_EMAIL_FROM", "CoachDesk <noreply@coachdesk.app>"),
		EmailReplyTo: envOrDefault("COACHDESK_REPLY_TO", "support@coachdesk.app"),
	}

	// Data source: a hosted project when URL+key are configured,
	// otherwise the embedded dev store with demo data.
	baseURL := os.Getenv("COACHDESK_REMOTE_URL")
	apiKey := os.Getenv("COACHDESK_REMOTE_KEY")
	if baseURL != "" && apiKey != "" {
		client := remote.NewClient(baseURL, apiKey)
		deps.Source = client
		deps.Auth = client
		log.Printf("Using hosted data service at %s", baseURL)
	} else {
		if os.Getenv("COACHDESK_ENV") == "production" {
			log.Fatal("COACHDESK_REMOTE_URL and COACHDESK_REMOTE_KEY are required in production")
		}
		source, auth := openDevStore()
		deps.Source = source
		deps.Auth = auth
		log.Println("Using embedded dev store (set COACHDESK_REMOTE_URL and COACHDESK_REMOTE_KEY for a hosted project)")
	}

	// Configure email sender
	resendKey := os.Getenv("COACHDESK_RESEND_KEY")
	if resendKey != "" {
		deps.Email = emailPkg.NewResendSender(resendKey, deps.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		deps.Email = emailPkg.NewNoopSender()
		if os.Getenv("COACHDESK_ENV") == "production" {
			log.Println("WARNING: COACHDESK_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set COACHDESK_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux(envOrDefault("COACHDESK_STATIC_DIR", "static"), deps, collector)

	addr := envOrDefault("COACHDESK_ADDR", ":8080")
	log.Printf("CoachDesk %s starting on %s (env=%s)", version, addr, envOrDefault("COACHDESK_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// openDevStore opens the local SQLite store, migrates it, and loads demo
// data plus a default admin account.
func openDevStore() (*devstore.Store, *devstore.Auth) {
	ctx := context.Background()
	dbPath := envOrDefault("COACHDESK_DB", "coachdesk.db")

	db, err := devstore.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open dev store: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("dev store unreachable: %v", err)
	}

	// COACHDESK_DEV_SCHEMA=flat drops the employees table so the roster
	// fallback path can be exercised locally.
	normalized := os.Getenv("COACHDESK_DEV_SCHEMA") != "flat"

	store := devstore.New(db)
	if err := store.Migrate(ctx, normalized); err != nil {
		log.Fatalf("failed to migrate dev store: %v", err)
	}
	if err := store.SeedDemo(ctx, time.Now()); err != nil {
		log.Fatalf("failed to seed demo data: %v", err)
	}

	adminEmail := envOrDefault("COACHDESK_ADMIN_EMAIL", "admin@coachdesk.local")
	adminPassword := envOrDefault("COACHDESK_ADMIN_PASSWORD", "letmecoach")
	if err := store.SeedAccount(ctx, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}
	log.Printf("Dev sign-in: %s / %s", adminEmail, adminPassword)

	return store, devstore.NewAuth(db)
}

// configureLogging sets the default slog handler from COACHDESK_LOG_LEVEL.
func configureLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("COACHDESK_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
