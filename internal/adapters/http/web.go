package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"coachdesk/internal/adapters/email"
	"coachdesk/internal/adapters/http/middleware"
	"coachdesk/internal/adapters/http/perf"
	"coachdesk/internal/adapters/remote"
)

// Deps holds the outbound dependencies the handlers use.
type Deps struct {
	Source remote.RowSource
	Auth   remote.AuthProvider

	Email        email.Sender
	EmailFrom    string
	EmailReplyTo string
}

// Global deps instance (set by NewMux)
var deps *Deps

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// slowRequestMs reads the slow-request warn threshold from
// COACHDESK_SLOW_REQUEST_MS, in milliseconds.
func slowRequestMs() float64 {
	if v := os.Getenv("COACHDESK_SLOW_REQUEST_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return float64(n)
		}
	}
	return middleware.DefaultSlowRequestMs
}

// loadCSRFKey reads the CSRF secret from COACHDESK_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("COACHDESK_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("COACHDESK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("COACHDESK_ENV") == "production" {
		log.Fatal("COACHDESK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set COACHDESK_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, d *Deps, collector *perf.Collector) http.Handler {
	deps = d
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("COACHDESK_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, slowRequestMs()),
	)
}
