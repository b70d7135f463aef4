package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"gymdesk/internal/adapters/email"
	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/adapters/http/perf"
	"gymdesk/internal/adapters/storage"
	accountStore "gymdesk/internal/adapters/storage/account"
	closureStore "gymdesk/internal/adapters/storage/closure"
	pageStore "gymdesk/internal/adapters/storage/page"
	scheduleStore "gymdesk/internal/adapters/storage/schedule"
	testimonialStore "gymdesk/internal/adapters/storage/testimonial"
	tierStore "gymdesk/internal/adapters/storage/tier"
	trainerStore "gymdesk/internal/adapters/storage/trainer"
	"gymdesk/internal/application/ticker"
	"gymdesk/internal/domain/clock"
)

// TrainerStore persists trainer profiles together with their awards.
type TrainerStore interface {
	trainerStore.Store
	trainerStore.AwardStore
}

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore     accountStore.Store
	TrainerStore     TrainerStore
	ScheduleStore    scheduleStore.Store
	ClosureStore     closureStore.Store
	PageStore        pageStore.Store
	TestimonialStore testimonialStore.Store
	TierStore        tierStore.Store
}

// NewSQLiteStores builds every store on the same database handle.
func NewSQLiteStores(db storage.SQLDB) *Stores {
	return &Stores{
		AccountStore:     accountStore.NewSQLiteStore(db),
		TrainerStore:     trainerStore.NewSQLiteStore(db),
		ScheduleStore:    scheduleStore.NewSQLiteStore(db),
		ClosureStore:     closureStore.NewSQLiteStore(db),
		PageStore:        pageStore.NewSQLiteStore(db),
		TestimonialStore: testimonialStore.NewSQLiteStore(db),
		TierStore:        tierStore.NewSQLiteStore(db),
	}
}

// Options configures NewMux. Zero values fall back to development defaults.
type Options struct {
	StaticDir          string // served at / when set
	Collector          *perf.Collector
	Clock              clock.Clock
	Ticker             *ticker.Ticker // started by NewMux when nil
	CSRFKey            []byte
	Production         bool
	TrustedOrigins     []string
	GymName            string
	Sender             email.Sender
	RateLimitPerSecond int
	SlowRequestMs      int
}

// DefaultRateLimitPerSecond is the per-IP request budget when Options leaves it unset.
const DefaultRateLimitPerSecond = 10

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender, never nil after NewMux
var emailSender email.Sender

var (
	clk         clock.Clock
	boardTicker *ticker.Ticker
	gymName     string
)

// ErrCSRFKeyRequired is returned when production runs without a configured CSRF key.
var ErrCSRFKeyRequired = errors.New("csrf key is required in production")

// ErrInvalidCSRFKey is returned when the configured key is not 32 hex-encoded bytes.
var ErrInvalidCSRFKey = errors.New("csrf key must be 64 hex characters (32 bytes)")

// ResolveCSRFKey decodes the configured CSRF secret.
// PRE: keyHex is empty or hex-encoded
// POST: Returns a 32-byte key; in development an empty keyHex yields a random key per startup
func ResolveCSRFKey(keyHex string, production bool) ([]byte, error) {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return nil, ErrInvalidCSRFKey
		}
		return key, nil
	}
	if production {
		return nil, ErrCSRFKeyRequired
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	slog.Warn("using random CSRF key; form sessions will not survive a restart")
	return key, nil
}

// NewMux wires HTTP handlers for the app. Background workers stop when ctx is cancelled.
// PRE: s has every store set
// POST: Returns the fully wrapped handler; the session store is reset
func NewMux(ctx context.Context, s *Stores, opts Options) (http.Handler, error) {
	stores = s
	perfCollector = opts.Collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = opts.Production
	gymName = opts.GymName
	if gymName == "" {
		gymName = "GymDesk"
	}
	emailSender = opts.Sender
	if emailSender == nil {
		emailSender = email.NewNoopSender()
	}
	clk = opts.Clock
	if clk == nil {
		clk = clock.System{}
	}
	boardTicker = opts.Ticker
	if boardTicker == nil {
		boardTicker = ticker.New(clk, ticker.DefaultInterval)
		go boardTicker.Run(ctx)
	}

	csrfKey := opts.CSRFKey
	if csrfKey == nil {
		key, err := ResolveCSRFKey("", opts.Production)
		if err != nil {
			return nil, err
		}
		csrfKey = key
	}

	rate := opts.RateLimitPerSecond
	if rate <= 0 {
		rate = DefaultRateLimitPerSecond
	}
	limiter := middleware.NewRateLimiter(rate, time.Second)
	go limiter.Run(ctx)

	mux := http.NewServeMux()
	if opts.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(opts.StaticDir)))
	}
	registerRoutes(mux)

	// Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, opts.Production, opts.TrustedOrigins),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(opts.Collector, opts.SlowRequestMs),
	), nil
}
