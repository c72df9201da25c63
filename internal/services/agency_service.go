package services

import (
	"database/sql"
	"errors"

	"agencyportal/internal/domain"
	"agencyportal/internal/domain/models"
	"agencyportal/internal/repositories"
	"agencyportal/internal/utils"
)

// AgencyService is the admin directory over agency accounts plus the
// agency's own profile path.
type AgencyService struct {
	AgencyRepo repositories.AgencyRepository
	RequestID  string
}

// List returns the directory with booking counts and commission totals.
func (s AgencyService) List(p domain.Principal, statusFilter string) ([]models.AgencyStats, error) {
	if !p.IsBackOffice() {
		return nil, domain.AuthorizationError{Msg: "agency directory requires a back-office role"}
	}
	switch statusFilter {
	case "", "all", models.AgencyPending, models.AgencyActive, models.AgencySuspended:
	default:
		return nil, domain.ValidationError{Field: "status", Msg: "unknown status filter"}
	}
	out, err := s.AgencyRepo.ListWithStats(statusFilter)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s AgencyService) get(id int64) (models.Agency, error) {
	a, err := s.AgencyRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Agency{}, domain.NotFoundError{Resource: "agency"}
	}
	if err != nil {
		return models.Agency{}, domain.InternalError{Err: err}
	}
	return a, nil
}

// GetProfile returns one agency. Agencies read only themselves.
func (s AgencyService) GetProfile(p domain.Principal, id int64) (models.Agency, error) {
	if p.IsAgency() {
		id = p.AgencyID
	} else if !p.IsBackOffice() {
		return models.Agency{}, domain.AuthorizationError{Msg: "forbidden"}
	}
	return s.get(id)
}

// Activate turns a pending or suspended agency active. Re-activating an
// already-active agency is a no-op; the first activation stamps the
// approval fields.
func (s AgencyService) Activate(p domain.Principal, agencyID int64) (models.Agency, error) {
	if !p.IsBackOffice() {
		return models.Agency{}, domain.AuthorizationError{Msg: "activating agencies requires a back-office role"}
	}
	if _, err := s.get(agencyID); err != nil {
		return models.Agency{}, err
	}
	if err := s.AgencyRepo.Activate(agencyID, p.UserID); err != nil {
		return models.Agency{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "agency", "activate", "agency activated id="+itoa(agencyID))
	return s.get(agencyID)
}

// Suspend deactivates an active agency.
func (s AgencyService) Suspend(p domain.Principal, agencyID int64) (models.Agency, error) {
	if !p.IsBackOffice() {
		return models.Agency{}, domain.AuthorizationError{Msg: "suspending agencies requires a back-office role"}
	}
	agency, err := s.get(agencyID)
	if err != nil {
		return models.Agency{}, err
	}
	if agency.Status == models.AgencyPending {
		return models.Agency{}, domain.ConflictError{Resource: "agency", Msg: "agency has not been activated yet"}
	}
	if err := s.AgencyRepo.Suspend(agencyID); err != nil {
		return models.Agency{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "agency", "suspend", "agency suspended id="+itoa(agencyID))
	return s.get(agencyID)
}

// Update patches agency fields. The admin path may set the commission
// rate (validated into [0,100]); the agency self path never carries the
// financial fields because the handler drops them before calling in.
func (s AgencyService) Update(p domain.Principal, agencyID int64, u models.AgencyUpdate) (models.Agency, error) {
	if p.IsAgency() {
		if agencyID != 0 && agencyID != p.AgencyID {
			return models.Agency{}, domain.NotFoundError{Resource: "agency"}
		}
		agencyID = p.AgencyID
		// financial and moderation fields are admin-only
		u.CommissionRate = nil
		u.AdminNotes = nil
	} else if !p.IsBackOffice() {
		return models.Agency{}, domain.AuthorizationError{Msg: "forbidden"}
	}

	if u.CommissionRate != nil && (*u.CommissionRate < 0 || *u.CommissionRate > 100) {
		return models.Agency{}, domain.ValidationError{Field: "commission_rate", Msg: "must be between 0 and 100"}
	}

	if _, err := s.get(agencyID); err != nil {
		return models.Agency{}, err
	}
	if err := s.AgencyRepo.Update(agencyID, u); err != nil {
		return models.Agency{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "agency", "update", "agency updated id="+itoa(agencyID))
	return s.get(agencyID)
}
