/*
Package property holds the managed record types and the service that
composes the record store with the accrual engine.

PURPOSE:
  The engine (package engine) is a pure calculator over snapshots of
  leases and payments. This package owns everything around it: the other
  record kinds (buildings, units, tenants, expenses, maintenance), the
  Store interface they are persisted through, and the Service that loads
  snapshots, runs the engine, and enforces the write-path rules (one
  active lease per unit, append-only payments, termination-only lease
  mutation).

OWNERSHIP:
  A lease links a tenant to a unit but is owned by neither. Units hang
  off buildings. Payments reference tenant, unit, and optionally a
  lease. Referential integrity across records is assumed, not enforced
  by the store.

SEE ALSO:
  - store.go: Persistence interface
  - service.go: Write-path rules and engine composition
  - store/memory.go, store/sqlite: Implementations
*/
package property

import (
	"github.com/shopspring/decimal"
	"github.com/warp/property-ledger/engine"
)

// =============================================================================
// BUILDINGS AND UNITS
// =============================================================================

type BuildingID string

type Building struct {
	ID       BuildingID
	Name     string
	Location string
}

type UnitType string

const (
	UnitShop      UnitType = "shop"
	UnitOffice    UnitType = "office"
	UnitStore     UnitType = "store"
	UnitInternal  UnitType = "internal"
	UnitApartment UnitType = "apartment"
)

// Unit is a rentable space. Occupancy is NOT stored on the unit: it is
// derived from the lease set via the temporal predicate, so every reader
// (dashboard, reports, unit list) computes the same answer from the same
// source of truth.
type Unit struct {
	ID         engine.UnitID
	BuildingID BuildingID
	UnitNumber string
	Floor      string // e.g. "Ground", "1", "2"
	Type       UnitType
	SizeSqm    decimal.Decimal

	// Listing defaults; a lease snapshots its own terms at signing.
	PricingType engine.PricingType
	ListedRent  decimal.Decimal
}

// =============================================================================
// TENANTS
// =============================================================================

type TenantStatus string

const (
	TenantActive TenantStatus = "active"
	TenantPast   TenantStatus = "past"
)

type Tenant struct {
	ID     engine.TenantID
	Name   string
	Phone  string
	Email  string
	Status TenantStatus
}

// =============================================================================
// EXPENSES - Approval workflow
// =============================================================================

type ExpenseID string

type ExpenseStatus string

const (
	ExpenseRequested ExpenseStatus = "requested"
	ExpenseApproved  ExpenseStatus = "approved"
	ExpenseRejected  ExpenseStatus = "rejected"
	ExpensePaid      ExpenseStatus = "paid"
)

type Expense struct {
	ID          ExpenseID
	Category    string // e.g. "Maintenance", "Utilities", "Tax"
	Description string
	Amount      decimal.Decimal
	Date        engine.Day

	RequestedBy string
	ApprovedBy  string
	PaidBy      string
	Vendor      string

	// DeductedFromRent marks expenses credited to the tenant.
	DeductedFromRent bool

	Status ExpenseStatus
}

// Accrued reports whether the expense counts against income in reports.
// Only approved or paid expenses do; requested and rejected ones don't.
func (e Expense) Accrued() bool {
	return e.Status == ExpenseApproved || e.Status == ExpensePaid
}

// =============================================================================
// MAINTENANCE TICKETS
// =============================================================================

type TicketID string

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
)

type MaintenanceTicket struct {
	ID          TicketID
	UnitID      engine.UnitID
	Description string
	Status      TicketStatus
	Date        engine.Day
	Cost        decimal.Decimal
}
