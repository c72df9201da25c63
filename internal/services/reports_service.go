package services

import (
	"agencyportal/internal/domain"
	"agencyportal/internal/domain/models"
	"agencyportal/internal/repositories"
)

type ReportsService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	AgencyRepo  repositories.AgencyRepository
}

// Overview is the admin dashboard aggregate.
type Overview struct {
	BookingsByStatus map[string]int `json:"bookings_by_status"`
	ApprovedRevenue  float64        `json:"approved_revenue"`
	CommissionTotal  float64        `json:"commission_total"`
	CollectedTotal   float64        `json:"collected_total"`
	Agencies         int            `json:"agencies"`
	PendingAgencies  int            `json:"pending_agencies"`
}

func (s ReportsService) Overview(p domain.Principal) (Overview, error) {
	if !p.IsBackOffice() {
		return Overview{}, domain.AuthorizationError{Msg: "reports require a back-office role"}
	}

	var out Overview
	var err error

	out.BookingsByStatus, err = s.BookingRepo.CountByStatus()
	if err != nil {
		return Overview{}, domain.InternalError{Err: err}
	}
	out.ApprovedRevenue, out.CommissionTotal, err = s.BookingRepo.ApprovedTotals()
	if err != nil {
		return Overview{}, domain.InternalError{Err: err}
	}
	out.CollectedTotal, err = s.PaymentRepo.CollectedTotal()
	if err != nil {
		return Overview{}, domain.InternalError{Err: err}
	}

	agencies, err := s.AgencyRepo.ListWithStats("all")
	if err != nil {
		return Overview{}, domain.InternalError{Err: err}
	}
	out.Agencies = len(agencies)
	for _, a := range agencies {
		if a.Status == models.AgencyPending {
			out.PendingAgencies++
		}
	}
	return out, nil
}
