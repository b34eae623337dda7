/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/buildings/*      Building records
  /api/units/*          Unit records and derived occupancy
  /api/tenants/*        Tenant records
  /api/leases/*         Lease lifecycle, financials, validation
  /api/payments/*       Payment receipts (append-only)
  /api/expenses/*       Expense workflow
  /api/maintenance/*    Maintenance tickets
  /api/reports/*        Period summary and CSV statements
  /api/scenarios/*      Demo data

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/buildings", func(r chi.Router) {
			r.Get("/", h.ListBuildings)
			r.Post("/", h.SaveBuilding)
			r.Get("/{id}", h.GetBuilding)
			r.Get("/{id}/units", h.ListBuildingUnits)
		})

		r.Route("/units", func(r chi.Router) {
			r.Get("/", h.ListUnits)
			r.Post("/", h.SaveUnit)
			r.Get("/{id}", h.GetUnit)
			r.Get("/{id}/occupancy", h.GetUnitOccupancy)
			r.Get("/{id}/maintenance", h.ListUnitTickets)
		})

		r.Route("/tenants", func(r chi.Router) {
			r.Get("/", h.ListTenants)
			r.Post("/", h.SaveTenant)
			r.Get("/{id}", h.GetTenant)
		})

		r.Route("/leases", func(r chi.Router) {
			r.Get("/", h.ListLeases)
			r.Post("/", h.CreateLease)
			r.Get("/validate", h.ValidateLease)
			r.Get("/{id}", h.GetLease)
			r.Get("/{id}/financials", h.GetLeaseFinancials)
			r.Post("/{id}/terminate", h.TerminateLease)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", h.ListPayments)
			r.Post("/", h.CreatePayment)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.ListExpenses)
			r.Post("/", h.SaveExpense)
			r.Get("/{id}", h.GetExpense)
		})

		r.Route("/maintenance", func(r chi.Router) {
			r.Get("/", h.ListTickets)
			r.Post("/", h.SaveTicket)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", h.GetSummary)
			r.Get("/statements.csv", h.GetStatementsCSV)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Post("/load", h.LoadDemoScenario)
		})
	})

	return r
}
