/*
handlers.go - HTTP handlers for the property ledger

PURPOSE:
  Exposes the record store and the accrual engine over REST. Handlers
  parse and validate input, delegate to the Service (writes) or the
  Store + engine (reads), and serialize DTOs.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input (bad dates, non-positive amounts, bad term)
  - 404: Record not found
  - 409: Overlap conflict (unit already has an active lease)
  - 500: Storage failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - seed.go: Demo data loader
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/warp/property-ledger/engine"
	"github.com/warp/property-ledger/property"
	"github.com/warp/property-ledger/report"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *property.Service
	Log     zerolog.Logger
}

func NewHandler(svc *property.Service, log zerolog.Logger) *Handler {
	return &Handler{Service: svc, Log: log}
}

func (h *Handler) store() property.Store { return h.Service.Store() }

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain errors to HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, engine.ErrUnitOccupied):
		writeError(w, http.StatusConflict, engine.OverlapMessage, err)
	case engine.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	case errors.Is(err, property.ErrNotFound):
		writeError(w, http.StatusNotFound, "Record not found", err)
	default:
		h.Log.Error().Err(err).Msg(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// parseDayParam parses a date query parameter, falling back when absent.
func parseDayParam(r *http.Request, name string, fallback engine.Day) (engine.Day, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	return engine.ParseDay(v)
}

// periodFromQuery reads ?start=&end=, defaulting to the current month.
func (h *Handler) periodFromQuery(r *http.Request) (engine.Day, engine.Day, error) {
	now := h.Service.Now()
	start, err := parseDayParam(r, "start", now.StartOfMonth())
	if err != nil {
		return engine.Day{}, engine.Day{}, err
	}
	end, err := parseDayParam(r, "end", now.EndOfMonth())
	if err != nil {
		return engine.Day{}, engine.Day{}, err
	}
	return start, end, nil
}

// =============================================================================
// LEASES
// =============================================================================

func (h *Handler) ListLeases(w http.ResponseWriter, r *http.Request) {
	leases, err := h.store().ListLeases(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list leases", err)
		return
	}
	dtos := make([]LeaseDTO, len(leases))
	for i, l := range leases {
		dtos[i] = toLeaseDTO(l)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetLease(w http.ResponseWriter, r *http.Request) {
	lease, err := h.store().Lease(r.Context(), engine.LeaseID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeDomainError(w, "Failed to load lease", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaseDTO(lease))
}

func (h *Handler) CreateLease(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	start, err := engine.ParseDay(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return
	}

	lease := engine.Lease{
		TenantID:    engine.TenantID(req.TenantID),
		UnitID:      engine.UnitID(req.UnitID),
		RentAmount:  decimal.NewFromFloat(req.RentAmount),
		PricingType: engine.PricingType(req.PricingType),
		SizeSqm:     decimal.NewFromFloat(req.SizeSqm),
		Start:       start,
		RentDueDay:  req.RentDueDay,
	}
	if req.EndDate != nil {
		end, err := engine.ParseDay(*req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end date", err)
			return
		}
		lease.End = &end
	}

	created, err := h.Service.CreateLease(r.Context(), lease)
	if err != nil {
		h.writeDomainError(w, "Failed to create lease", err)
		return
	}

	h.Log.Info().Str("lease_id", string(created.ID)).Str("unit_id", string(created.UnitID)).Msg("lease created")
	writeJSON(w, http.StatusCreated, toLeaseDTO(created))
}

func (h *Handler) TerminateLease(w http.ResponseWriter, r *http.Request) {
	id := engine.LeaseID(chi.URLParam(r, "id"))

	on, err := parseDayParam(r, "on", h.Service.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid termination date", err)
		return
	}

	if err := h.Service.TerminateLease(r.Context(), id, on); err != nil {
		h.writeDomainError(w, "Failed to terminate lease", err)
		return
	}

	h.Log.Info().Str("lease_id", string(id)).Str("on", on.String()).Msg("lease terminated")
	lease, err := h.store().Lease(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "Failed to load lease", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaseDTO(lease))
}

func (h *Handler) GetLeaseFinancials(w http.ResponseWriter, r *http.Request) {
	id := engine.LeaseID(chi.URLParam(r, "id"))

	asOf, err := parseDayParam(r, "as_of", h.Service.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of date", err)
		return
	}

	fin, err := h.Service.LeaseFinancials(r.Context(), id, asOf)
	if err != nil {
		h.writeDomainError(w, "Failed to compute financials", err)
		return
	}
	writeJSON(w, http.StatusOK, toFinancialsDTO(id, asOf, fin))
}

// ValidateLease answers whether a new lease could be created on a unit.
func (h *Handler) ValidateLease(w http.ResponseWriter, r *http.Request) {
	unitID := r.URL.Query().Get("unit_id")
	if unitID == "" {
		writeError(w, http.StatusBadRequest, "unit_id is required", nil)
		return
	}
	result, err := h.Service.ValidateNewLease(r.Context(), engine.UnitID(unitID))
	if err != nil {
		h.writeDomainError(w, "Failed to validate", err)
		return
	}
	writeJSON(w, http.StatusOK, ValidationDTO{Valid: result.Valid, Error: result.Error})
}

// =============================================================================
// PAYMENTS
// =============================================================================

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.store().ListPayments(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list payments", err)
		return
	}
	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = toPaymentDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	date, err := engine.ParseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payment date", err)
		return
	}

	payment := engine.Payment{
		TenantID:  engine.TenantID(req.TenantID),
		UnitID:    engine.UnitID(req.UnitID),
		LeaseID:   engine.LeaseID(req.LeaseID),
		Amount:    decimal.NewFromFloat(req.Amount),
		Date:      date,
		Method:    engine.PaymentMethod(req.Method),
		Type:      engine.PaymentType(req.Type),
		Reference: req.Reference,
	}

	created, err := h.Service.RecordPayment(r.Context(), payment)
	if err != nil {
		h.writeDomainError(w, "Failed to record payment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentDTO(created))
}

// =============================================================================
// UNITS AND OCCUPANCY
// =============================================================================

func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.store().ListUnits(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list units", err)
		return
	}
	dtos := make([]UnitDTO, len(units))
	for i, u := range units {
		dtos[i] = toUnitDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) SaveUnit(w http.ResponseWriter, r *http.Request) {
	var dto UnitDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	if dto.ID == "" {
		dto.ID = uuid.NewString()
	}

	unit := property.Unit{
		ID:          engine.UnitID(dto.ID),
		BuildingID:  property.BuildingID(dto.BuildingID),
		UnitNumber:  dto.UnitNumber,
		Floor:       dto.Floor,
		Type:        property.UnitType(dto.Type),
		SizeSqm:     decimal.NewFromFloat(dto.SizeSqm),
		PricingType: engine.PricingType(dto.PricingType),
		ListedRent:  decimal.NewFromFloat(dto.ListedRent),
	}
	if err := h.store().SaveUnit(r.Context(), unit); err != nil {
		h.writeDomainError(w, "Failed to save unit", err)
		return
	}
	writeJSON(w, http.StatusCreated, toUnitDTO(unit))
}

func (h *Handler) GetUnit(w http.ResponseWriter, r *http.Request) {
	unit, err := h.store().Unit(r.Context(), engine.UnitID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeDomainError(w, "Failed to load unit", err)
		return
	}
	writeJSON(w, http.StatusOK, toUnitDTO(unit))
}

func (h *Handler) ListUnitTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.store().TicketsByUnit(r.Context(), engine.UnitID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeDomainError(w, "Failed to list tickets", err)
		return
	}
	dtos := make([]TicketDTO, len(tickets))
	for i, t := range tickets {
		dtos[i] = toTicketDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetUnitOccupancy(w http.ResponseWriter, r *http.Request) {
	id := engine.UnitID(chi.URLParam(r, "id"))

	at, err := parseDayParam(r, "at", h.Service.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid at date", err)
		return
	}

	status, err := h.Service.UnitOccupancy(r.Context(), id, at)
	if err != nil {
		h.writeDomainError(w, "Failed to derive occupancy", err)
		return
	}
	writeJSON(w, http.StatusOK, OccupancyDTO{UnitID: string(id), AsOf: at.String(), Status: string(status)})
}

// =============================================================================
// BUILDINGS AND TENANTS
// =============================================================================

func (h *Handler) ListBuildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := h.store().ListBuildings(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list buildings", err)
		return
	}
	dtos := make([]BuildingDTO, len(buildings))
	for i, b := range buildings {
		dtos[i] = BuildingDTO{ID: string(b.ID), Name: b.Name, Location: b.Location}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) SaveBuilding(w http.ResponseWriter, r *http.Request) {
	var dto BuildingDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	if dto.ID == "" {
		dto.ID = uuid.NewString()
	}
	b := property.Building{ID: property.BuildingID(dto.ID), Name: dto.Name, Location: dto.Location}
	if err := h.store().SaveBuilding(r.Context(), b); err != nil {
		h.writeDomainError(w, "Failed to save building", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

func (h *Handler) GetBuilding(w http.ResponseWriter, r *http.Request) {
	b, err := h.store().Building(r.Context(), property.BuildingID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeDomainError(w, "Failed to load building", err)
		return
	}
	writeJSON(w, http.StatusOK, BuildingDTO{ID: string(b.ID), Name: b.Name, Location: b.Location})
}

func (h *Handler) ListBuildingUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.store().UnitsByBuilding(r.Context(), property.BuildingID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeDomainError(w, "Failed to list units", err)
		return
	}
	dtos := make([]UnitDTO, len(units))
	for i, u := range units {
		dtos[i] = toUnitDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.store().ListTenants(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list tenants", err)
		return
	}
	dtos := make([]TenantDTO, len(tenants))
	for i, t := range tenants {
		dtos[i] = TenantDTO{ID: string(t.ID), Name: t.Name, Phone: t.Phone, Email: t.Email, Status: string(t.Status)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) SaveTenant(w http.ResponseWriter, r *http.Request) {
	var dto TenantDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	if dto.ID == "" {
		dto.ID = uuid.NewString()
	}
	if dto.Status == "" {
		dto.Status = string(property.TenantActive)
	}
	t := property.Tenant{
		ID: engine.TenantID(dto.ID), Name: dto.Name,
		Phone: dto.Phone, Email: dto.Email, Status: property.TenantStatus(dto.Status),
	}
	if err := h.store().SaveTenant(r.Context(), t); err != nil {
		h.writeDomainError(w, "Failed to save tenant", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.store().Tenant(r.Context(), engine.TenantID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeDomainError(w, "Failed to load tenant", err)
		return
	}
	writeJSON(w, http.StatusOK, TenantDTO{
		ID: string(t.ID), Name: t.Name, Phone: t.Phone, Email: t.Email, Status: string(t.Status),
	})
}

// =============================================================================
// EXPENSES AND MAINTENANCE
// =============================================================================

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.store().ListExpenses(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list expenses", err)
		return
	}
	dtos := make([]ExpenseDTO, len(expenses))
	for i, e := range expenses {
		dtos[i] = toExpenseDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) SaveExpense(w http.ResponseWriter, r *http.Request) {
	var dto ExpenseDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	if dto.ID == "" {
		dto.ID = uuid.NewString()
	}
	if dto.Status == "" {
		dto.Status = string(property.ExpenseRequested)
	}

	date, err := engine.ParseDay(dto.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense date", err)
		return
	}

	e := property.Expense{
		ID:               property.ExpenseID(dto.ID),
		Category:         dto.Category,
		Description:      dto.Description,
		Amount:           decimal.NewFromFloat(dto.Amount),
		Date:             date,
		RequestedBy:      dto.RequestedBy,
		ApprovedBy:       dto.ApprovedBy,
		PaidBy:           dto.PaidBy,
		Vendor:           dto.Vendor,
		DeductedFromRent: dto.DeductedFromRent,
		Status:           property.ExpenseStatus(dto.Status),
	}
	if err := h.store().SaveExpense(r.Context(), e); err != nil {
		h.writeDomainError(w, "Failed to save expense", err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseDTO(e))
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	e, err := h.store().Expense(r.Context(), property.ExpenseID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeDomainError(w, "Failed to load expense", err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseDTO(e))
}

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.store().ListTickets(r.Context())
	if err != nil {
		h.writeDomainError(w, "Failed to list tickets", err)
		return
	}
	dtos := make([]TicketDTO, len(tickets))
	for i, t := range tickets {
		dtos[i] = toTicketDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) SaveTicket(w http.ResponseWriter, r *http.Request) {
	var dto TicketDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	if dto.ID == "" {
		dto.ID = uuid.NewString()
	}
	if dto.Status == "" {
		dto.Status = string(property.TicketOpen)
	}

	date, err := engine.ParseDay(dto.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ticket date", err)
		return
	}

	ticket := property.MaintenanceTicket{
		ID:          property.TicketID(dto.ID),
		UnitID:      engine.UnitID(dto.UnitID),
		Description: dto.Description,
		Status:      property.TicketStatus(dto.Status),
		Date:        date,
		Cost:        decimal.NewFromFloat(dto.Cost),
	}
	if err := h.store().SaveTicket(r.Context(), ticket); err != nil {
		h.writeDomainError(w, "Failed to save ticket", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTicketDTO(ticket))
}

// =============================================================================
// REPORTS
// =============================================================================

func (h *Handler) loadSnapshot(r *http.Request) (report.Snapshot, error) {
	ctx := r.Context()
	units, err := h.store().ListUnits(ctx)
	if err != nil {
		return report.Snapshot{}, err
	}
	leases, err := h.store().ListLeases(ctx)
	if err != nil {
		return report.Snapshot{}, err
	}
	payments, err := h.store().ListPayments(ctx)
	if err != nil {
		return report.Snapshot{}, err
	}
	expenses, err := h.store().ListExpenses(ctx)
	if err != nil {
		return report.Snapshot{}, err
	}
	return report.Snapshot{Units: units, Leases: leases, Payments: payments, Expenses: expenses}, nil
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	snap, err := h.loadSnapshot(r)
	if err != nil {
		h.writeDomainError(w, "Failed to load records", err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(report.Summarize(snap, start, end)))
}

func (h *Handler) GetStatementsCSV(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	snap, err := h.loadSnapshot(r)
	if err != nil {
		h.writeDomainError(w, "Failed to load records", err)
		return
	}

	stmts := report.Statements(snap.Leases, snap.Payments, start, end)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="statements.csv"`)
	if err := report.WriteCSV(w, stmts, start, end); err != nil {
		h.Log.Error().Err(err).Msg("failed to stream statements csv")
	}
}

// =============================================================================
// SCENARIOS
// =============================================================================

func (h *Handler) LoadDemoScenario(w http.ResponseWriter, r *http.Request) {
	if err := LoadDemo(r.Context(), h.Service); err != nil {
		h.writeDomainError(w, "Failed to load demo data", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "loaded"})
}
