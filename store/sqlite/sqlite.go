/*
Package sqlite provides a SQLite-backed implementation of property.Store.

PURPOSE:
  Production persistence for all property records. In production the
  same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

WRITE-PATH ENFORCEMENT:
  - payments has no UPDATE or DELETE statements anywhere in this
    package: receipts are append-only, corrections are offsetting
    receipts.
  - The only UPDATE touching leases is TerminateLease, and it rewrites
    nothing but the active flag and end date.

DATE AND MONEY ENCODING:
  Dates are stored as ISO day strings (2006-01-02), matching the
  engine's calendar-day granularity; there is no time-of-day to strip
  on the way back in. Money is stored as decimal strings, never as
  binary floats.

WAL MODE:
  The database is opened with WAL for better concurrency: readers
  don't block, one writer at a time. Combined with the Service-level
  serialization of lease creation, the occupancy check always sees a
  current lease set.

USAGE:
  st, err := sqlite.New("./data/ledger.db")
  if err != nil { ... }
  defer st.Close()
  svc := property.NewService(st)
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/property-ledger/engine"
	"github.com/warp/property-ledger/property"
)

// Store implements property.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS buildings (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location TEXT
	);

	CREATE TABLE IF NOT EXISTS units (
		id TEXT PRIMARY KEY,
		building_id TEXT NOT NULL,
		unit_number TEXT NOT NULL,
		floor TEXT,
		unit_type TEXT NOT NULL,
		size_sqm TEXT NOT NULL,
		pricing_type TEXT NOT NULL,
		listed_rent TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_units_building ON units(building_id);

	CREATE TABLE IF NOT EXISTS tenants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT,
		email TEXT,
		status TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leases (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		unit_id TEXT NOT NULL,
		rent_amount TEXT NOT NULL,
		pricing_type TEXT NOT NULL,
		size_sqm TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		rent_due_day INTEGER NOT NULL DEFAULT 1,
		is_active INTEGER NOT NULL DEFAULT 1
	);
	CREATE INDEX IF NOT EXISTS idx_leases_unit ON leases(unit_id);
	CREATE INDEX IF NOT EXISTS idx_leases_tenant ON leases(tenant_id);

	-- Append-only: no UPDATE/DELETE statements exist for this table.
	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		unit_id TEXT NOT NULL,
		lease_id TEXT,
		amount TEXT NOT NULL,
		pay_date TEXT NOT NULL,
		method TEXT NOT NULL,
		pay_type TEXT NOT NULL,
		reference TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_payments_lease ON payments(lease_id);
	CREATE INDEX IF NOT EXISTS idx_payments_date ON payments(pay_date);

	CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		description TEXT,
		amount TEXT NOT NULL,
		expense_date TEXT NOT NULL,
		requested_by TEXT,
		approved_by TEXT,
		paid_by TEXT,
		vendor TEXT,
		deducted_from_rent INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(expense_date);

	CREATE TABLE IF NOT EXISTS maintenance (
		id TEXT PRIMARY KEY,
		unit_id TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL,
		ticket_date TEXT NOT NULL,
		cost TEXT NOT NULL DEFAULT '0'
	);
	CREATE INDEX IF NOT EXISTS idx_maintenance_unit ON maintenance(unit_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ENCODING HELPERS
// =============================================================================

func encodeDay(d engine.Day) string { return d.String() }

func decodeDay(s string) (engine.Day, error) { return engine.ParseDay(s) }

func decodeDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// =============================================================================
// BUILDINGS
// =============================================================================

func (s *Store) SaveBuilding(ctx context.Context, b property.Building) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO buildings (id, name, location) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, location = excluded.location`,
		string(b.ID), b.Name, b.Location)
	return err
}

func (s *Store) Building(ctx context.Context, id property.BuildingID) (property.Building, error) {
	var b property.Building
	var bid string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, location FROM buildings WHERE id = ?`, string(id)).
		Scan(&bid, &b.Name, &b.Location)
	if err == sql.ErrNoRows {
		return property.Building{}, property.ErrNotFound
	}
	if err != nil {
		return property.Building{}, err
	}
	b.ID = property.BuildingID(bid)
	return b, nil
}

func (s *Store) ListBuildings(ctx context.Context) ([]property.Building, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, location FROM buildings ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []property.Building
	for rows.Next() {
		var b property.Building
		var id string
		if err := rows.Scan(&id, &b.Name, &b.Location); err != nil {
			return nil, err
		}
		b.ID = property.BuildingID(id)
		out = append(out, b)
	}
	return out, rows.Err()
}

// =============================================================================
// UNITS
// =============================================================================

func (s *Store) SaveUnit(ctx context.Context, u property.Unit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO units (id, building_id, unit_number, floor, unit_type, size_sqm, pricing_type, listed_rent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			building_id = excluded.building_id,
			unit_number = excluded.unit_number,
			floor = excluded.floor,
			unit_type = excluded.unit_type,
			size_sqm = excluded.size_sqm,
			pricing_type = excluded.pricing_type,
			listed_rent = excluded.listed_rent`,
		string(u.ID), string(u.BuildingID), u.UnitNumber, u.Floor, string(u.Type),
		u.SizeSqm.String(), string(u.PricingType), u.ListedRent.String())
	return err
}

func (s *Store) scanUnit(scan func(dest ...any) error) (property.Unit, error) {
	var u property.Unit
	var id, buildingID, unitType, sizeSqm, pricingType, listedRent string
	if err := scan(&id, &buildingID, &u.UnitNumber, &u.Floor, &unitType, &sizeSqm, &pricingType, &listedRent); err != nil {
		return property.Unit{}, err
	}
	u.ID = engine.UnitID(id)
	u.BuildingID = property.BuildingID(buildingID)
	u.Type = property.UnitType(unitType)
	u.PricingType = engine.PricingType(pricingType)

	var err error
	if u.SizeSqm, err = decodeDecimal(sizeSqm); err != nil {
		return property.Unit{}, err
	}
	if u.ListedRent, err = decodeDecimal(listedRent); err != nil {
		return property.Unit{}, err
	}
	return u, nil
}

const unitColumns = `id, building_id, unit_number, floor, unit_type, size_sqm, pricing_type, listed_rent`

func (s *Store) Unit(ctx context.Context, id engine.UnitID) (property.Unit, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+unitColumns+` FROM units WHERE id = ?`, string(id))
	u, err := s.scanUnit(row.Scan)
	if err == sql.ErrNoRows {
		return property.Unit{}, property.ErrNotFound
	}
	return u, err
}

func (s *Store) queryUnits(ctx context.Context, query string, args ...any) ([]property.Unit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []property.Unit
	for rows.Next() {
		u, err := s.scanUnit(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) ListUnits(ctx context.Context) ([]property.Unit, error) {
	return s.queryUnits(ctx, `SELECT `+unitColumns+` FROM units ORDER BY id`)
}

func (s *Store) UnitsByBuilding(ctx context.Context, id property.BuildingID) ([]property.Unit, error) {
	return s.queryUnits(ctx,
		`SELECT `+unitColumns+` FROM units WHERE building_id = ? ORDER BY id`, string(id))
}

// =============================================================================
// TENANTS
// =============================================================================

func (s *Store) SaveTenant(ctx context.Context, t property.Tenant) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tenants (id, name, phone, email, status) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, phone = excluded.phone,
			email = excluded.email, status = excluded.status`,
		string(t.ID), t.Name, t.Phone, t.Email, string(t.Status))
	return err
}

func (s *Store) Tenant(ctx context.Context, id engine.TenantID) (property.Tenant, error) {
	var t property.Tenant
	var tid, status string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email, status FROM tenants WHERE id = ?`, string(id)).
		Scan(&tid, &t.Name, &t.Phone, &t.Email, &status)
	if err == sql.ErrNoRows {
		return property.Tenant{}, property.ErrNotFound
	}
	if err != nil {
		return property.Tenant{}, err
	}
	t.ID = engine.TenantID(tid)
	t.Status = property.TenantStatus(status)
	return t, nil
}

func (s *Store) ListTenants(ctx context.Context) ([]property.Tenant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, email, status FROM tenants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []property.Tenant
	for rows.Next() {
		var t property.Tenant
		var id, status string
		if err := rows.Scan(&id, &t.Name, &t.Phone, &t.Email, &status); err != nil {
			return nil, err
		}
		t.ID = engine.TenantID(id)
		t.Status = property.TenantStatus(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

// =============================================================================
// LEASES - create + terminate only
// =============================================================================

func (s *Store) CreateLease(ctx context.Context, l engine.Lease) error {
	var end any
	if l.End != nil {
		end = encodeDay(*l.End)
	}
	active := 0
	if l.Active {
		active = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leases (id, tenant_id, unit_id, rent_amount, pricing_type, size_sqm,
			start_date, end_date, rent_due_day, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(l.ID), string(l.TenantID), string(l.UnitID), l.RentAmount.String(),
		string(l.PricingType), l.SizeSqm.String(), encodeDay(l.Start), end, l.RentDueDay, active)
	return err
}

func scanLease(scan func(dest ...any) error) (engine.Lease, error) {
	var l engine.Lease
	var id, tenantID, unitID, rent, pricing, sizeSqm, start string
	var end sql.NullString
	var active int
	if err := scan(&id, &tenantID, &unitID, &rent, &pricing, &sizeSqm, &start, &end, &l.RentDueDay, &active); err != nil {
		return engine.Lease{}, err
	}

	l.ID = engine.LeaseID(id)
	l.TenantID = engine.TenantID(tenantID)
	l.UnitID = engine.UnitID(unitID)
	l.PricingType = engine.PricingType(pricing)
	l.Active = active != 0

	var err error
	if l.RentAmount, err = decodeDecimal(rent); err != nil {
		return engine.Lease{}, err
	}
	if l.SizeSqm, err = decodeDecimal(sizeSqm); err != nil {
		return engine.Lease{}, err
	}
	if l.Start, err = decodeDay(start); err != nil {
		return engine.Lease{}, err
	}
	if end.Valid {
		d, err := decodeDay(end.String)
		if err != nil {
			return engine.Lease{}, err
		}
		l.End = &d
	}
	return l, nil
}

const leaseColumns = `id, tenant_id, unit_id, rent_amount, pricing_type, size_sqm,
	start_date, end_date, rent_due_day, is_active`

func (s *Store) Lease(ctx context.Context, id engine.LeaseID) (engine.Lease, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+leaseColumns+` FROM leases WHERE id = ?`, string(id))
	l, err := scanLease(row.Scan)
	if err == sql.ErrNoRows {
		return engine.Lease{}, property.ErrNotFound
	}
	return l, err
}

func (s *Store) queryLeases(ctx context.Context, query string, args ...any) ([]engine.Lease, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.Lease
	for rows.Next() {
		l, err := scanLease(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) ListLeases(ctx context.Context) ([]engine.Lease, error) {
	return s.queryLeases(ctx, `SELECT `+leaseColumns+` FROM leases ORDER BY start_date, id`)
}

func (s *Store) LeasesByUnit(ctx context.Context, id engine.UnitID) ([]engine.Lease, error) {
	return s.queryLeases(ctx,
		`SELECT `+leaseColumns+` FROM leases WHERE unit_id = ? ORDER BY start_date, id`, string(id))
}

// TerminateLease clears the active flag and caps the end date. This is
// the only statement in the package that updates a lease row.
func (s *Store) TerminateLease(ctx context.Context, id engine.LeaseID, end engine.Day) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leases SET is_active = 0, end_date = ? WHERE id = ?`,
		encodeDay(end), string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return property.ErrNotFound
	}
	return nil
}

// =============================================================================
// PAYMENTS - append-only
// =============================================================================

func (s *Store) AppendPayment(ctx context.Context, p engine.Payment) error {
	var leaseID any
	if p.LeaseID != "" {
		leaseID = string(p.LeaseID)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, tenant_id, unit_id, lease_id, amount, pay_date, method, pay_type, reference)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(p.ID), string(p.TenantID), string(p.UnitID), leaseID,
		p.Amount.String(), encodeDay(p.Date), string(p.Method), string(p.Type), p.Reference)
	return err
}

func scanPayment(scan func(dest ...any) error) (engine.Payment, error) {
	var p engine.Payment
	var id, tenantID, unitID, amount, date, method, payType string
	var leaseID sql.NullString
	if err := scan(&id, &tenantID, &unitID, &leaseID, &amount, &date, &method, &payType, &p.Reference); err != nil {
		return engine.Payment{}, err
	}

	p.ID = engine.PaymentID(id)
	p.TenantID = engine.TenantID(tenantID)
	p.UnitID = engine.UnitID(unitID)
	if leaseID.Valid {
		p.LeaseID = engine.LeaseID(leaseID.String)
	}
	p.Method = engine.PaymentMethod(method)
	p.Type = engine.PaymentType(payType)

	var err error
	if p.Amount, err = decodeDecimal(amount); err != nil {
		return engine.Payment{}, err
	}
	if p.Date, err = decodeDay(date); err != nil {
		return engine.Payment{}, err
	}
	return p, nil
}

const paymentColumns = `id, tenant_id, unit_id, lease_id, amount, pay_date, method, pay_type, reference`

func (s *Store) queryPayments(ctx context.Context, query string, args ...any) ([]engine.Payment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.Payment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) ListPayments(ctx context.Context) ([]engine.Payment, error) {
	return s.queryPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments ORDER BY pay_date, id`)
}

func (s *Store) PaymentsByLease(ctx context.Context, id engine.LeaseID) ([]engine.Payment, error) {
	return s.queryPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE lease_id = ? ORDER BY pay_date, id`, string(id))
}

// =============================================================================
// EXPENSES
// =============================================================================

func (s *Store) SaveExpense(ctx context.Context, e property.Expense) error {
	deducted := 0
	if e.DeductedFromRent {
		deducted = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, category, description, amount, expense_date,
			requested_by, approved_by, paid_by, vendor, deducted_from_rent, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category = excluded.category,
			description = excluded.description,
			amount = excluded.amount,
			expense_date = excluded.expense_date,
			requested_by = excluded.requested_by,
			approved_by = excluded.approved_by,
			paid_by = excluded.paid_by,
			vendor = excluded.vendor,
			deducted_from_rent = excluded.deducted_from_rent,
			status = excluded.status`,
		string(e.ID), e.Category, e.Description, e.Amount.String(), encodeDay(e.Date),
		e.RequestedBy, e.ApprovedBy, e.PaidBy, e.Vendor, deducted, string(e.Status))
	return err
}

func scanExpense(scan func(dest ...any) error) (property.Expense, error) {
	var e property.Expense
	var id, amount, date, status string
	var deducted int
	if err := scan(&id, &e.Category, &e.Description, &amount, &date,
		&e.RequestedBy, &e.ApprovedBy, &e.PaidBy, &e.Vendor, &deducted, &status); err != nil {
		return property.Expense{}, err
	}

	e.ID = property.ExpenseID(id)
	e.Status = property.ExpenseStatus(status)
	e.DeductedFromRent = deducted != 0

	var err error
	if e.Amount, err = decodeDecimal(amount); err != nil {
		return property.Expense{}, err
	}
	if e.Date, err = decodeDay(date); err != nil {
		return property.Expense{}, err
	}
	return e, nil
}

const expenseColumns = `id, category, description, amount, expense_date,
	requested_by, approved_by, paid_by, vendor, deducted_from_rent, status`

func (s *Store) Expense(ctx context.Context, id property.ExpenseID) (property.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, string(id))
	e, err := scanExpense(row.Scan)
	if err == sql.ErrNoRows {
		return property.Expense{}, property.ErrNotFound
	}
	return e, err
}

func (s *Store) ListExpenses(ctx context.Context) ([]property.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses ORDER BY expense_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []property.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// =============================================================================
// MAINTENANCE
// =============================================================================

func (s *Store) SaveTicket(ctx context.Context, t property.MaintenanceTicket) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO maintenance (id, unit_id, description, status, ticket_date, cost)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			unit_id = excluded.unit_id,
			description = excluded.description,
			status = excluded.status,
			ticket_date = excluded.ticket_date,
			cost = excluded.cost`,
		string(t.ID), string(t.UnitID), t.Description, string(t.Status),
		encodeDay(t.Date), t.Cost.String())
	return err
}

func (s *Store) queryTickets(ctx context.Context, query string, args ...any) ([]property.MaintenanceTicket, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []property.MaintenanceTicket
	for rows.Next() {
		var t property.MaintenanceTicket
		var id, unitID, status, date, cost string
		if err := rows.Scan(&id, &unitID, &t.Description, &status, &date, &cost); err != nil {
			return nil, err
		}
		t.ID = property.TicketID(id)
		t.UnitID = engine.UnitID(unitID)
		t.Status = property.TicketStatus(status)
		if t.Date, err = decodeDay(date); err != nil {
			return nil, err
		}
		if t.Cost, err = decodeDecimal(cost); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) ListTickets(ctx context.Context) ([]property.MaintenanceTicket, error) {
	return s.queryTickets(ctx,
		`SELECT id, unit_id, description, status, ticket_date, cost FROM maintenance ORDER BY ticket_date, id`)
}

func (s *Store) TicketsByUnit(ctx context.Context, id engine.UnitID) ([]property.MaintenanceTicket, error) {
	return s.queryTickets(ctx,
		`SELECT id, unit_id, description, status, ticket_date, cost FROM maintenance WHERE unit_id = ? ORDER BY ticket_date, id`,
		string(id))
}

var _ property.Store = (*Store)(nil)
