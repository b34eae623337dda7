// Package store provides an in-memory property.Store for tests and demo mode.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/property-ledger/engine"
	"github.com/warp/property-ledger/property"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	buildings map[property.BuildingID]property.Building
	units     map[engine.UnitID]property.Unit
	tenants   map[engine.TenantID]property.Tenant
	leases    map[engine.LeaseID]engine.Lease
	payments  []engine.Payment
	expenses  map[property.ExpenseID]property.Expense
	tickets   map[property.TicketID]property.MaintenanceTicket
}

func NewMemory() *Memory {
	return &Memory{
		buildings: make(map[property.BuildingID]property.Building),
		units:     make(map[engine.UnitID]property.Unit),
		tenants:   make(map[engine.TenantID]property.Tenant),
		leases:    make(map[engine.LeaseID]engine.Lease),
		expenses:  make(map[property.ExpenseID]property.Expense),
		tickets:   make(map[property.TicketID]property.MaintenanceTicket),
	}
}

// =============================================================================
// BUILDINGS
// =============================================================================

func (m *Memory) SaveBuilding(_ context.Context, b property.Building) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buildings[b.ID] = b
	return nil
}

func (m *Memory) Building(_ context.Context, id property.BuildingID) (property.Building, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.buildings[id]
	if !ok {
		return property.Building{}, property.ErrNotFound
	}
	return b, nil
}

func (m *Memory) ListBuildings(_ context.Context) ([]property.Building, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]property.Building, 0, len(m.buildings))
	for _, b := range m.buildings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// UNITS
// =============================================================================

func (m *Memory) SaveUnit(_ context.Context, u property.Unit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.units[u.ID] = u
	return nil
}

func (m *Memory) Unit(_ context.Context, id engine.UnitID) (property.Unit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.units[id]
	if !ok {
		return property.Unit{}, property.ErrNotFound
	}
	return u, nil
}

func (m *Memory) ListUnits(_ context.Context) ([]property.Unit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]property.Unit, 0, len(m.units))
	for _, u := range m.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) UnitsByBuilding(_ context.Context, id property.BuildingID) ([]property.Unit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []property.Unit
	for _, u := range m.units {
		if u.BuildingID == id {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// TENANTS
// =============================================================================

func (m *Memory) SaveTenant(_ context.Context, t property.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants[t.ID] = t
	return nil
}

func (m *Memory) Tenant(_ context.Context, id engine.TenantID) (property.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tenants[id]
	if !ok {
		return property.Tenant{}, property.ErrNotFound
	}
	return t, nil
}

func (m *Memory) ListTenants(_ context.Context) ([]property.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]property.Tenant, 0, len(m.tenants))
	for _, t := range m.tenants {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// LEASES - create + terminate only
// =============================================================================

func (m *Memory) CreateLease(_ context.Context, l engine.Lease) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leases[l.ID] = l
	return nil
}

func (m *Memory) Lease(_ context.Context, id engine.LeaseID) (engine.Lease, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.leases[id]
	if !ok {
		return engine.Lease{}, property.ErrNotFound
	}
	return l, nil
}

func (m *Memory) ListLeases(_ context.Context) ([]engine.Lease, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.Lease, 0, len(m.leases))
	for _, l := range m.leases {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) LeasesByUnit(_ context.Context, id engine.UnitID) ([]engine.Lease, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.Lease
	for _, l := range m.leases {
		if l.UnitID == id {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) TerminateLease(_ context.Context, id engine.LeaseID, end engine.Day) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leases[id]
	if !ok {
		return property.ErrNotFound
	}
	l.Active = false
	l.End = &end
	m.leases[id] = l
	return nil
}

// =============================================================================
// PAYMENTS - append-only
// =============================================================================

func (m *Memory) AppendPayment(_ context.Context, p engine.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, p)
	return nil
}

func (m *Memory) ListPayments(_ context.Context) ([]engine.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.Payment, len(m.payments))
	copy(out, m.payments)
	return out, nil
}

func (m *Memory) PaymentsByLease(_ context.Context, id engine.LeaseID) ([]engine.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []engine.Payment
	for _, p := range m.payments {
		if p.LeaseID == id {
			out = append(out, p)
		}
	}
	return out, nil
}

// =============================================================================
// EXPENSES
// =============================================================================

func (m *Memory) SaveExpense(_ context.Context, e property.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[e.ID] = e
	return nil
}

func (m *Memory) Expense(_ context.Context, id property.ExpenseID) (property.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.expenses[id]
	if !ok {
		return property.Expense{}, property.ErrNotFound
	}
	return e, nil
}

func (m *Memory) ListExpenses(_ context.Context) ([]property.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]property.Expense, 0, len(m.expenses))
	for _, e := range m.expenses {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// MAINTENANCE
// =============================================================================

func (m *Memory) SaveTicket(_ context.Context, t property.MaintenanceTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[t.ID] = t
	return nil
}

func (m *Memory) ListTickets(_ context.Context) ([]property.MaintenanceTicket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]property.MaintenanceTicket, 0, len(m.tickets))
	for _, t := range m.tickets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) TicketsByUnit(_ context.Context, id engine.UnitID) ([]property.MaintenanceTicket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []property.MaintenanceTicket
	for _, t := range m.tickets {
		if t.UnitID == id {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ property.Store = (*Memory)(nil)
