/*
Package engine provides the lease accrual and reconciliation engine.

PURPOSE:
  This package contains the pure computation core of the property ledger:
  given a snapshot of lease contracts and payment receipts, it answers how
  much rent was owed for any date window (strict daily accrual), how that
  compares to what was actually collected (reconciliation), and whether a
  unit is occupied at a given instant (temporal predicate + occupancy).

KEY CONCEPTS IN THIS FILE (types.go):
  - Lease: An immutable contract snapshot (mutated only by termination)
  - Payment: An immutable receipt, append-only
  - LeaseFinancials: The reconciliation result for one lease
  - Type-safe IDs: LeaseID, UnitID, TenantID, PaymentID

DESIGN PRINCIPLES:
  1. Purity: Every function is a pure query over already-loaded records.
     Figures are recomputed from source records on every read; nothing is
     cached, so results never go stale relative to the underlying data.
  2. Precision: Uses decimal.Decimal for all money to avoid binary
     floating-point drift under repeated re-evaluation.
  3. Determinism: The caller supplies the reference day. The engine never
     reads the clock mid-calculation, so identical inputs always yield
     identical outputs.
  4. Snapshot semantics: A lease's rent, size, and pricing are frozen
     copies taken at signing. Later unit edits never change a lease's math.

SEE ALSO:
  - day.go: Calendar-day normalization, the single source of date truth
  - accrual.go: Expected rent over an arbitrary window
  - reconcile.go: Expected vs. collected, balance classification
  - occupancy.go: One-active-lease-per-unit invariant
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type LeaseID string
type UnitID string
type TenantID string
type PaymentID string

// =============================================================================
// LEASE - Contract snapshot, immutable except for termination
// =============================================================================

// PricingType records how the rent figure was derived at signing.
// Informational for the accrual math: RentAmount is always the monthly
// figure actually owed, regardless of how it was priced.
type PricingType string

const (
	PricingFixed  PricingType = "fixed"
	PricingPerSqm PricingType = "per_sqm"
	PricingNone   PricingType = "none"
)

// Lease is a rental contract between a tenant and a unit.
//
// RentAmount, PricingType and SizeSqm are a terms snapshot taken at
// signing; they do not follow edits to the referenced unit.
//
// End is nil for open-ended leases. Both Start and End are inclusive.
//
// Active is a manual override: when explicitly false the lease is
// inactive regardless of its dates. Termination sets Active=false and
// caps End at the termination day. Leases are never otherwise mutated.
type Lease struct {
	ID       LeaseID
	TenantID TenantID
	UnitID   UnitID

	// Terms snapshot taken at signing
	RentAmount  decimal.Decimal
	PricingType PricingType
	SizeSqm     decimal.Decimal

	Start      Day
	End        *Day // nil = open-ended
	RentDueDay int  // informational: day of month rent is due

	Active bool
}

// =============================================================================
// PAYMENT - Immutable receipt
// =============================================================================

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheck        PaymentMethod = "check"
	MethodOther        PaymentMethod = "other"
)

type PaymentType string

const (
	PaymentRent    PaymentType = "rent"
	PaymentDeposit PaymentType = "deposit"
	PaymentOther   PaymentType = "other"
)

// Payment is a receipt recorded once and never mutated or deleted.
// Payments without a LeaseID are excluded from lease-level reconciliation
// but still appear in tenant-level activity.
type Payment struct {
	ID       PaymentID
	TenantID TenantID
	UnitID   UnitID
	LeaseID  LeaseID // empty = not linked to a lease

	Amount    decimal.Decimal
	Date      Day
	Method    PaymentMethod
	Type      PaymentType
	Reference string // transaction id or check number
}

// =============================================================================
// LEASE FINANCIALS - Derived value, recomputed on demand
// =============================================================================

// BalanceStatus classifies a reconciled balance.
type BalanceStatus string

const (
	StatusPaid    BalanceStatus = "paid"
	StatusOverdue BalanceStatus = "overdue"
	StatusCredit  BalanceStatus = "credit"
)

// LeaseFinancials is the reconciliation result for a single lease.
// It has no persisted identity; it is recomputed from leases and
// payments every time it is needed.
type LeaseFinancials struct {
	ExpectedRent    decimal.Decimal
	PaidAmount      decimal.Decimal
	Balance         decimal.Decimal // ExpectedRent - PaidAmount
	LastPaymentDate *Day            // nil if no payments reference the lease
	Status          BalanceStatus
}
