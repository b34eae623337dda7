/*
service.go - Write-path rules and engine composition

PURPOSE:
  The Service is the one place records are mutated. It fills ids,
  enforces the lease rules (valid term, one active lease per unit,
  positive payment amounts), and composes store snapshots with the
  pure engine for reads (financials, occupancy, validation).

CONCURRENCY:
  The engine is referentially transparent and safe for unlimited
  concurrent evaluation. The single shared mutable concern is lease
  creation: the overlap check must see a consistent, current lease set
  for the unit. The Service serializes creations with a mutex - there
  is a single logical writer per record, so this is sufficient.

CLOCK:
  "Now" is captured once per operation via the injectable Now func and
  passed into the engine, which never reads the clock itself. Tests
  pin Now to a fixed day.
*/
package property

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/warp/property-ledger/engine"
)

// Service coordinates record writes and engine reads.
type Service struct {
	store Store

	// Now supplies the reference day for "current" computations.
	// Defaults to engine.Today.
	Now func() engine.Day

	mu sync.Mutex // serializes lease creation
}

func NewService(store Store) *Service {
	return &Service{store: store, Now: engine.Today}
}

// Store exposes the underlying record store for plain CRUD reads.
func (s *Service) Store() Store { return s.store }

// =============================================================================
// LEASES
// =============================================================================

// CreateLease validates and persists a new lease.
//
// Rejections are recoverable client errors: ErrInvalidLeaseTerm when the
// end date precedes the start date, and *engine.OverlapError when the
// unit already has an active lease as of today.
func (s *Service) CreateLease(ctx context.Context, lease engine.Lease) (engine.Lease, error) {
	if lease.End != nil && lease.End.Before(lease.Start) {
		return engine.Lease{}, fmt.Errorf("lease on unit %s: %w", lease.UnitID, engine.ErrInvalidLeaseTerm)
	}

	if lease.ID == "" {
		lease.ID = engine.LeaseID(uuid.NewString())
	}
	lease.Active = true

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.LeasesByUnit(ctx, lease.UnitID)
	if err != nil {
		return engine.Lease{}, err
	}

	now := s.Now()
	for _, other := range existing {
		if other.ActiveOn(now) {
			return engine.Lease{}, &engine.OverlapError{
				UnitID:          lease.UnitID,
				ExistingLeaseID: other.ID,
				Message:         engine.OverlapMessage,
			}
		}
	}

	if err := s.store.CreateLease(ctx, lease); err != nil {
		return engine.Lease{}, err
	}
	return lease, nil
}

// ValidateNewLease answers whether a lease could currently be created on
// the unit, without creating one. Used by the lease form before submit.
func (s *Service) ValidateNewLease(ctx context.Context, unitID engine.UnitID) (engine.ValidationResult, error) {
	leases, err := s.store.LeasesByUnit(ctx, unitID)
	if err != nil {
		return engine.ValidationResult{}, err
	}
	return engine.ValidateNewLease(leases, s.Now()), nil
}

// TerminateLease marks the lease inactive and caps its end date at the
// termination day. This is the only mutation a lease supports.
func (s *Service) TerminateLease(ctx context.Context, id engine.LeaseID, on engine.Day) error {
	if _, err := s.store.Lease(ctx, id); err != nil {
		return err
	}
	return s.store.TerminateLease(ctx, id, on)
}

// =============================================================================
// PAYMENTS
// =============================================================================

// RecordPayment appends a payment receipt. Amounts must be positive;
// receipts are never mutated or deleted afterwards.
func (s *Service) RecordPayment(ctx context.Context, p engine.Payment) (engine.Payment, error) {
	if !p.Amount.IsPositive() {
		return engine.Payment{}, fmt.Errorf("payment for tenant %s: %w", p.TenantID, engine.ErrNonPositiveAmount)
	}
	if p.ID == "" {
		p.ID = engine.PaymentID(uuid.NewString())
	}
	if err := s.store.AppendPayment(ctx, p); err != nil {
		return engine.Payment{}, err
	}
	return p, nil
}

// =============================================================================
// ENGINE READS
// =============================================================================

// LeaseFinancials reconciles one lease against its payments as of the
// given day. Everything is recomputed from source records on each call.
func (s *Service) LeaseFinancials(ctx context.Context, id engine.LeaseID, asOf engine.Day) (engine.LeaseFinancials, error) {
	lease, err := s.store.Lease(ctx, id)
	if err != nil {
		return engine.LeaseFinancials{}, err
	}
	payments, err := s.store.PaymentsByLease(ctx, id)
	if err != nil {
		return engine.LeaseFinancials{}, err
	}
	return engine.Reconcile(lease, payments, asOf), nil
}

// CurrentLeaseFinancials reconciles as of today.
func (s *Service) CurrentLeaseFinancials(ctx context.Context, id engine.LeaseID) (engine.LeaseFinancials, error) {
	return s.LeaseFinancials(ctx, id, s.Now())
}

// UnitOccupancy derives a unit's occupancy at the given day.
func (s *Service) UnitOccupancy(ctx context.Context, id engine.UnitID, at engine.Day) (engine.OccupancyStatus, error) {
	if _, err := s.store.Unit(ctx, id); err != nil {
		return "", err
	}
	leases, err := s.store.LeasesByUnit(ctx, id)
	if err != nil {
		return "", err
	}
	return engine.UnitOccupancy(leases, at), nil
}
