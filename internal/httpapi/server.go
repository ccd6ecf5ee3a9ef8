// Package httpapi wires the HTTP surface of the ledger. Handlers stay thin
// and delegate the rules to the service layer; this package only decodes,
// validates shape, and maps domain errors onto status codes.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"pocketledger/internal/ledger"
	"pocketledger/internal/service/account"
	"pocketledger/internal/service/planning"
	"pocketledger/internal/service/report"
	"pocketledger/internal/service/transaction"
)

// Resolver provides the never-failing display lookups for dangling
// references (deleted categories, unknown accounts).
type Resolver interface {
	ResolveCategory(ctx context.Context, id uuid.UUID) ledger.Category
	ResolveAccount(ctx context.Context, id uuid.UUID) ledger.Account
}

// Config carries the middleware knobs the server is constructed with.
type Config struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server wires handlers and middleware using Chi.
type Server struct {
	accountSvc account.Service
	txSvc      transaction.Service
	planSvc    planning.Service
	reportSvc  report.Service
	resolver   Resolver
	log        *slog.Logger
	rt         *chi.Mux
}

// New constructs the HTTP server with routes and middleware. The store
// satisfies every repo/writer interface, so callers typically pass the same
// value for each dependency.
func New(arepo account.Repo, awriter account.Writer, trepo transaction.Repo, twriter transaction.Writer, prepo planning.Repo, pwriter planning.Writer, rrepo report.Repo, resolver Resolver, logger *slog.Logger, cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)
	if cfg.RateLimitRPS > 0 {
		r.Use(rateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	s := &Server{
		accountSvc: account.New(arepo, awriter),
		txSvc:      transaction.New(trepo, twriter),
		planSvc:    planning.New(prepo, pwriter),
		reportSvc:  report.New(rrepo),
		resolver:   resolver,
		log:        logger,
		rt:         r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	// Accounts (v1)
	s.rt.Post("/v1/accounts", s.postAccount)
	s.rt.Get("/v1/accounts", s.listAccounts)
	s.rt.Get("/v1/accounts/{id}", s.getAccount)
	s.rt.Patch("/v1/accounts/{id}", s.patchAccount)
	s.rt.Delete("/v1/accounts/{id}", s.deleteAccount)
	// Transactions (v1)
	s.rt.Post("/v1/transactions", s.postTransaction)
	s.rt.Get("/v1/transactions", s.listTransactions)
	s.rt.Get("/v1/transactions/{id}", s.getTransaction)
	s.rt.Patch("/v1/transactions/{id}", s.patchTransaction)
	s.rt.Delete("/v1/transactions/{id}", s.deleteTransaction)
	// Categories (v1)
	s.rt.Post("/v1/categories", s.postCategory)
	s.rt.Get("/v1/categories", s.listCategories)
	s.rt.Patch("/v1/categories/{id}", s.patchCategory)
	s.rt.Delete("/v1/categories/{id}", s.deleteCategory)
	// Budgets (v1)
	s.rt.Post("/v1/budgets", s.postBudget)
	s.rt.Get("/v1/budgets", s.listBudgets)
	s.rt.Get("/v1/budgets/{id}/progress", s.getBudgetProgress)
	s.rt.Patch("/v1/budgets/{id}", s.patchBudget)
	s.rt.Delete("/v1/budgets/{id}", s.deleteBudget)
	// Reports (v1)
	s.rt.Get("/v1/reports/summary", s.getSummary)
	s.rt.Get("/v1/reports/daily", s.getDailyNet)
	s.rt.Get("/v1/reports/categories", s.getSpendingByCategory)
	// Operational (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Handle("/metrics", metricsHandler())
}
