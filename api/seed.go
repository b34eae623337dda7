/*
seed.go - Demo data loader

PURPOSE:
  Seeds a small, deterministic property portfolio so the API can be
  explored without typing records by hand: one building, three units,
  two tenants, two leases (one bounded, one open-ended), a partial
  payment history and an approved expense.

  All ids are fixed so repeated loads are detected and skipped rather
  than duplicated.
*/
package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/property-ledger/engine"
	"github.com/warp/property-ledger/property"
)

const demoLeaseGround = engine.LeaseID("demo-lease-ground")

// LoadDemo seeds the demo portfolio. A second call is a no-op.
func LoadDemo(ctx context.Context, svc *property.Service) error {
	store := svc.Store()

	if _, err := store.Lease(ctx, demoLeaseGround); err == nil {
		return nil // already loaded
	} else if !errors.Is(err, property.ErrNotFound) {
		return err
	}

	if err := store.SaveBuilding(ctx, property.Building{
		ID: "demo-building", Name: "Riverside Commercial Center", Location: "Market Street 12",
	}); err != nil {
		return err
	}

	units := []property.Unit{
		{ID: "demo-unit-g1", BuildingID: "demo-building", UnitNumber: "G1", Floor: "Ground",
			Type: property.UnitShop, SizeSqm: decimal.NewFromInt(45),
			PricingType: engine.PricingFixed, ListedRent: decimal.NewFromInt(3000)},
		{ID: "demo-unit-101", BuildingID: "demo-building", UnitNumber: "101", Floor: "1",
			Type: property.UnitOffice, SizeSqm: decimal.NewFromInt(80),
			PricingType: engine.PricingPerSqm, ListedRent: decimal.NewFromInt(25)},
		{ID: "demo-unit-102", BuildingID: "demo-building", UnitNumber: "102", Floor: "1",
			Type: property.UnitOffice, SizeSqm: decimal.NewFromInt(60),
			PricingType: engine.PricingFixed, ListedRent: decimal.NewFromInt(1800)},
	}
	for _, u := range units {
		if err := store.SaveUnit(ctx, u); err != nil {
			return err
		}
	}

	tenants := []property.Tenant{
		{ID: "demo-tenant-amara", Name: "Amara Trading", Phone: "+251-91-555-0101", Status: property.TenantActive},
		{ID: "demo-tenant-kebede", Name: "Kebede Consulting", Phone: "+251-91-555-0102", Status: property.TenantActive},
	}
	for _, t := range tenants {
		if err := store.SaveTenant(ctx, t); err != nil {
			return err
		}
	}

	now := svc.Now()
	yearAgo := now.AddMonths(-12).StartOfMonth()
	leaseEnd := yearAgo.AddMonths(24).AddDays(-1)

	if _, err := svc.CreateLease(ctx, engine.Lease{
		ID: demoLeaseGround, TenantID: "demo-tenant-amara", UnitID: "demo-unit-g1",
		RentAmount: decimal.NewFromInt(3000), PricingType: engine.PricingFixed,
		SizeSqm: decimal.NewFromInt(45), Start: yearAgo, End: &leaseEnd, RentDueDay: 5,
	}); err != nil {
		return err
	}
	if _, err := svc.CreateLease(ctx, engine.Lease{
		ID: "demo-lease-office", TenantID: "demo-tenant-kebede", UnitID: "demo-unit-101",
		RentAmount: decimal.NewFromInt(2000), PricingType: engine.PricingPerSqm,
		SizeSqm: decimal.NewFromInt(80), Start: yearAgo.AddMonths(3), RentDueDay: 1,
	}); err != nil {
		return err
	}

	// Ground-floor tenant pays every month; the office tenant is two
	// months behind, so financials show a live overdue balance.
	payments := []engine.Payment{
		{ID: "demo-pay-deposit", TenantID: "demo-tenant-amara", UnitID: "demo-unit-g1",
			LeaseID: demoLeaseGround, Amount: decimal.NewFromInt(6000),
			Date: yearAgo, Method: engine.MethodBankTransfer, Type: engine.PaymentDeposit,
			Reference: "DEP-2025-001"},
	}
	for i := 0; i < 12; i++ {
		payments = append(payments, engine.Payment{
			ID:       engine.PaymentID(fmt.Sprintf("demo-pay-g1-%02d", i+1)),
			TenantID: "demo-tenant-amara", UnitID: "demo-unit-g1", LeaseID: demoLeaseGround,
			Amount: decimal.NewFromInt(3000),
			Date:   yearAgo.AddMonths(i).AddDays(4),
			Method: engine.MethodBankTransfer, Type: engine.PaymentRent,
		})
	}
	for i := 0; i < 7; i++ {
		payments = append(payments, engine.Payment{
			ID:       engine.PaymentID(fmt.Sprintf("demo-pay-101-%02d", i+1)),
			TenantID: "demo-tenant-kebede", UnitID: "demo-unit-101", LeaseID: "demo-lease-office",
			Amount: decimal.NewFromInt(2000),
			Date:   yearAgo.AddMonths(3 + i),
			Method: engine.MethodCash, Type: engine.PaymentRent,
		})
	}
	for _, p := range payments {
		if _, err := svc.RecordPayment(ctx, p); err != nil {
			return err
		}
	}

	if err := store.SaveExpense(ctx, property.Expense{
		ID: "demo-expense-water", Category: "Utilities", Description: "Quarterly water bill",
		Amount: decimal.NewFromInt(420), Date: now.StartOfMonth(),
		RequestedBy: "manager", ApprovedBy: "owner", Status: property.ExpenseApproved,
	}); err != nil {
		return err
	}

	return store.SaveTicket(ctx, property.MaintenanceTicket{
		ID: "demo-ticket-door", UnitID: "demo-unit-102",
		Description: "Entrance door lock jammed", Status: property.TicketOpen,
		Date: now.AddDays(-3), Cost: decimal.NewFromInt(150),
	})
}
