/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the domain
  types so internal fields can evolve without breaking clients.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - Create*Request: Request body types from clients

ENCODING:
  Dates travel as ISO day strings (2006-01-02) to match the engine's
  calendar-day granularity. Money travels as JSON numbers rounded from
  decimal at the boundary; the decimals themselves never leave the
  domain layer un-rounded anywhere that feeds back into calculation.
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/property-ledger/engine"
	"github.com/warp/property-ledger/property"
	"github.com/warp/property-ledger/report"
)

// =============================================================================
// RECORD DTOS
// =============================================================================

type BuildingDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

type UnitDTO struct {
	ID          string  `json:"id"`
	BuildingID  string  `json:"building_id"`
	UnitNumber  string  `json:"unit_number"`
	Floor       string  `json:"floor,omitempty"`
	Type        string  `json:"type"`
	SizeSqm     float64 `json:"size_sqm"`
	PricingType string  `json:"pricing_type"`
	ListedRent  float64 `json:"listed_rent"`
}

type TenantDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	Status string `json:"status"`
}

type LeaseDTO struct {
	ID          string  `json:"id"`
	TenantID    string  `json:"tenant_id"`
	UnitID      string  `json:"unit_id"`
	RentAmount  float64 `json:"rent_amount"`
	PricingType string  `json:"pricing_type"`
	SizeSqm     float64 `json:"size_sqm"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	RentDueDay  int     `json:"rent_due_day"`
	IsActive    bool    `json:"is_active"`
}

type CreateLeaseRequest struct {
	TenantID    string  `json:"tenant_id"`
	UnitID      string  `json:"unit_id"`
	RentAmount  float64 `json:"rent_amount"`
	PricingType string  `json:"pricing_type"`
	SizeSqm     float64 `json:"size_sqm"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	RentDueDay  int     `json:"rent_due_day"`
}

type PaymentDTO struct {
	ID        string  `json:"id"`
	TenantID  string  `json:"tenant_id"`
	UnitID    string  `json:"unit_id"`
	LeaseID   string  `json:"lease_id,omitempty"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Method    string  `json:"method"`
	Type      string  `json:"type"`
	Reference string  `json:"reference,omitempty"`
}

type CreatePaymentRequest struct {
	TenantID  string  `json:"tenant_id"`
	UnitID    string  `json:"unit_id"`
	LeaseID   string  `json:"lease_id,omitempty"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Method    string  `json:"method"`
	Type      string  `json:"type"`
	Reference string  `json:"reference,omitempty"`
}

type ExpenseDTO struct {
	ID               string  `json:"id"`
	Category         string  `json:"category"`
	Description      string  `json:"description,omitempty"`
	Amount           float64 `json:"amount"`
	Date             string  `json:"date"`
	RequestedBy      string  `json:"requested_by,omitempty"`
	ApprovedBy       string  `json:"approved_by,omitempty"`
	PaidBy           string  `json:"paid_by,omitempty"`
	Vendor           string  `json:"vendor,omitempty"`
	DeductedFromRent bool    `json:"deducted_from_rent"`
	Status           string  `json:"status"`
}

type TicketDTO struct {
	ID          string  `json:"id"`
	UnitID      string  `json:"unit_id"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	Date        string  `json:"date"`
	Cost        float64 `json:"cost"`
}

// =============================================================================
// DERIVED-VALUE DTOS
// =============================================================================

// FinancialsDTO is the reconciliation result for one lease.
type FinancialsDTO struct {
	LeaseID         string  `json:"lease_id"`
	AsOf            string  `json:"as_of"`
	ExpectedRent    float64 `json:"expected_rent"`
	PaidAmount      float64 `json:"paid_amount"`
	Balance         float64 `json:"balance"`
	LastPaymentDate *string `json:"last_payment_date,omitempty"`
	Status          string  `json:"status"`
}

type OccupancyDTO struct {
	UnitID string `json:"unit_id"`
	AsOf   string `json:"as_of"`
	Status string `json:"status"`
}

type ValidationDTO struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type SummaryDTO struct {
	PeriodStart   string  `json:"period_start"`
	PeriodEnd     string  `json:"period_end"`
	ExpectedRent  float64 `json:"expected_rent"`
	CollectedRent float64 `json:"collected_rent"`
	Outstanding   float64 `json:"outstanding"`
	Expenses      float64 `json:"expenses"`
	NetIncome     float64 `json:"net_income"`
	TotalUnits    int     `json:"total_units"`
	OccupiedUnits int     `json:"occupied_units"`
	VacantUnits   int     `json:"vacant_units"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func toLeaseDTO(l engine.Lease) LeaseDTO {
	dto := LeaseDTO{
		ID:          string(l.ID),
		TenantID:    string(l.TenantID),
		UnitID:      string(l.UnitID),
		RentAmount:  money(l.RentAmount),
		PricingType: string(l.PricingType),
		SizeSqm:     money(l.SizeSqm),
		StartDate:   l.Start.String(),
		RentDueDay:  l.RentDueDay,
		IsActive:    l.Active,
	}
	if l.End != nil {
		s := l.End.String()
		dto.EndDate = &s
	}
	return dto
}

func toPaymentDTO(p engine.Payment) PaymentDTO {
	return PaymentDTO{
		ID:        string(p.ID),
		TenantID:  string(p.TenantID),
		UnitID:    string(p.UnitID),
		LeaseID:   string(p.LeaseID),
		Amount:    money(p.Amount),
		Date:      p.Date.String(),
		Method:    string(p.Method),
		Type:      string(p.Type),
		Reference: p.Reference,
	}
}

func toFinancialsDTO(id engine.LeaseID, asOf engine.Day, fin engine.LeaseFinancials) FinancialsDTO {
	dto := FinancialsDTO{
		LeaseID:      string(id),
		AsOf:         asOf.String(),
		ExpectedRent: money(fin.ExpectedRent),
		PaidAmount:   money(fin.PaidAmount),
		Balance:      money(fin.Balance),
		Status:       string(fin.Status),
	}
	if fin.LastPaymentDate != nil {
		s := fin.LastPaymentDate.String()
		dto.LastPaymentDate = &s
	}
	return dto
}

func toSummaryDTO(s report.Summary) SummaryDTO {
	return SummaryDTO{
		PeriodStart:   s.PeriodStart.String(),
		PeriodEnd:     s.PeriodEnd.String(),
		ExpectedRent:  money(s.ExpectedRent),
		CollectedRent: money(s.CollectedRent),
		Outstanding:   money(s.Outstanding),
		Expenses:      money(s.Expenses),
		NetIncome:     money(s.NetIncome),
		TotalUnits:    s.TotalUnits,
		OccupiedUnits: s.OccupiedUnits,
		VacantUnits:   s.VacantUnits,
		OccupancyRate: s.OccupancyRate,
	}
}

func toExpenseDTO(e property.Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:               string(e.ID),
		Category:         e.Category,
		Description:      e.Description,
		Amount:           money(e.Amount),
		Date:             e.Date.String(),
		RequestedBy:      e.RequestedBy,
		ApprovedBy:       e.ApprovedBy,
		PaidBy:           e.PaidBy,
		Vendor:           e.Vendor,
		DeductedFromRent: e.DeductedFromRent,
		Status:           string(e.Status),
	}
}

func toUnitDTO(u property.Unit) UnitDTO {
	return UnitDTO{
		ID:          string(u.ID),
		BuildingID:  string(u.BuildingID),
		UnitNumber:  u.UnitNumber,
		Floor:       u.Floor,
		Type:        string(u.Type),
		SizeSqm:     money(u.SizeSqm),
		PricingType: string(u.PricingType),
		ListedRent:  money(u.ListedRent),
	}
}

func toTicketDTO(t property.MaintenanceTicket) TicketDTO {
	return TicketDTO{
		ID:          string(t.ID),
		UnitID:      string(t.UnitID),
		Description: t.Description,
		Status:      string(t.Status),
		Date:        t.Date.String(),
		Cost:        money(t.Cost),
	}
}
