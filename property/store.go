/*
store.go - Persistence interface for property records

PURPOSE:
  Defines the boundary between the domain and the database. The engine
  never sees this interface: the Service loads snapshots through it and
  hands plain slices to the engine.

WRITE-PATH CONTRACT:
  - Payments are APPEND-ONLY. There is no update or delete; a mistaken
    receipt is corrected by recording an offsetting one.
  - Leases are immutable after creation except for TerminateLease, which
    clears the active flag and caps the end date. No other lease field
    is ever rewritten, so the creation-time overlap check can never be
    invalidated by a later edit.
  - Implementations must serialize lease creation so the one-active-
    lease-per-unit check is evaluated against a consistent, current set
    (the Service additionally serializes creations itself).

IMPLEMENTATIONS:
  - property/store: in-memory, for tests and demo mode
  - store/sqlite: production SQLite
*/
package property

import (
	"context"
	"errors"

	"github.com/warp/property-ledger/engine"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// Store persists all property records.
type Store interface {
	// Buildings
	SaveBuilding(ctx context.Context, b Building) error
	Building(ctx context.Context, id BuildingID) (Building, error)
	ListBuildings(ctx context.Context) ([]Building, error)

	// Units
	SaveUnit(ctx context.Context, u Unit) error
	Unit(ctx context.Context, id engine.UnitID) (Unit, error)
	ListUnits(ctx context.Context) ([]Unit, error)
	UnitsByBuilding(ctx context.Context, id BuildingID) ([]Unit, error)

	// Tenants
	SaveTenant(ctx context.Context, t Tenant) error
	Tenant(ctx context.Context, id engine.TenantID) (Tenant, error)
	ListTenants(ctx context.Context) ([]Tenant, error)

	// Leases: create + terminate only. No general update, no delete.
	CreateLease(ctx context.Context, l engine.Lease) error
	Lease(ctx context.Context, id engine.LeaseID) (engine.Lease, error)
	ListLeases(ctx context.Context) ([]engine.Lease, error)
	LeasesByUnit(ctx context.Context, id engine.UnitID) ([]engine.Lease, error)
	TerminateLease(ctx context.Context, id engine.LeaseID, end engine.Day) error

	// Payments: append-only.
	AppendPayment(ctx context.Context, p engine.Payment) error
	ListPayments(ctx context.Context) ([]engine.Payment, error)
	PaymentsByLease(ctx context.Context, id engine.LeaseID) ([]engine.Payment, error)

	// Expenses
	SaveExpense(ctx context.Context, e Expense) error
	Expense(ctx context.Context, id ExpenseID) (Expense, error)
	ListExpenses(ctx context.Context) ([]Expense, error)

	// Maintenance
	SaveTicket(ctx context.Context, m MaintenanceTicket) error
	ListTickets(ctx context.Context) ([]MaintenanceTicket, error)
	TicketsByUnit(ctx context.Context, id engine.UnitID) ([]MaintenanceTicket, error)
}
