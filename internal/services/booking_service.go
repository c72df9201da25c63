package services

import (
	"database/sql"
	"errors"
	"strings"

	"agencyportal/internal/domain"
	"agencyportal/internal/domain/models"
	"agencyportal/internal/repositories"
	"agencyportal/internal/utils"
)

// BookingService owns the pre-booking workflow: quoting, creation and the
// pending -> approved/rejected/cancelled lifecycle.
type BookingService struct {
	BookingRepo   repositories.BookingRepository
	AgencyRepo    repositories.AgencyRepository
	CircuitRepo   repositories.CircuitRepository
	DepartureRepo repositories.DepartureRepository

	// DefaultCommissionRate applies when the agency row carries no rate.
	DefaultCommissionRate float64
	RequestID             string
}

// Quote is the commission-adjusted price breakdown shown to the agency
// before submitting. TotalPrice is authoritative; PerPersonDisplay is for
// display only.
type Quote struct {
	RoomType         string           `json:"room_type"`
	Occupancy        domain.Occupancy `json:"occupancy"`
	Currency         string           `json:"currency"`
	PublicPrice      float64          `json:"public_price"`
	CommissionRate   float64          `json:"commission_rate"`
	TotalPrice       float64          `json:"total_price"`
	AgencyCommission float64          `json:"agency_commission"`
	PerPersonDisplay float64          `json:"price_per_person_display"`
}

// BuildQuote computes the agency price for one price option. The sum
// identity TotalPrice + AgencyCommission == PublicPrice holds exactly.
func BuildQuote(option models.PriceOption, ratePercent float64) Quote {
	occ := domain.ClassifyRoomType(option.Type)
	total, commission := utils.SplitCommission(option.Price, ratePercent)
	return Quote{
		RoomType:         option.Type,
		Occupancy:        occ,
		Currency:         option.Currency,
		PublicPrice:      option.Price,
		CommissionRate:   ratePercent,
		TotalPrice:       total,
		AgencyCommission: commission,
		PerPersonDisplay: utils.PerPersonDisplay(total, occ.Total),
	}
}

// CreateBookingInput is the agency-submitted reservation request.
type CreateBookingInput struct {
	CircuitID   int64              `json:"circuit_id"`
	DepartureID int64              `json:"departure_id"`
	RoomType    string             `json:"room_type"`
	NumAdults   int                `json:"num_adults"`
	NumChildren int                `json:"num_children"`
	Passengers  []models.Passenger `json:"passengers"`
	AgencyNotes string             `json:"agency_notes"`
}

func (s BookingService) commissionRate(a models.Agency) float64 {
	if a.CommissionRate > 0 {
		return a.CommissionRate
	}
	return s.DefaultCommissionRate
}

// QuoteOption resolves a price option of a circuit and prices it for the
// calling agency.
func (s BookingService) QuoteOption(p domain.Principal, circuitID int64, roomType string) (Quote, error) {
	if !p.IsAgency() {
		return Quote{}, domain.AuthorizationError{Msg: "only agency accounts can request quotes"}
	}
	agency, err := s.AgencyRepo.GetByID(p.AgencyID)
	if err != nil {
		return Quote{}, domain.NotFoundError{Resource: "agency", Err: err}
	}
	circuit, err := s.CircuitRepo.GetByID(circuitID)
	if err != nil {
		return Quote{}, domain.NotFoundError{Resource: "circuit", Err: err}
	}
	option, ok := findPriceOption(circuit, roomType)
	if !ok {
		return Quote{}, domain.ValidationError{Field: "room_type", Msg: "unknown price option"}
	}
	return BuildQuote(option, s.commissionRate(agency)), nil
}

// CreatePreBooking validates room occupancy and passenger data, prices the
// selected option and persists the booking in pending state. Any
// validation failure happens before the single transactional write.
func (s BookingService) CreatePreBooking(p domain.Principal, in CreateBookingInput) (models.PreBooking, error) {
	if !p.IsAgency() {
		return models.PreBooking{}, domain.AuthorizationError{Msg: "only agency accounts can create pre-bookings"}
	}

	agency, err := s.AgencyRepo.GetByID(p.AgencyID)
	if err != nil {
		return models.PreBooking{}, domain.NotFoundError{Resource: "agency", Err: err}
	}
	if agency.Status != models.AgencyActive {
		return models.PreBooking{}, domain.AuthorizationError{Msg: "agency account is not active"}
	}

	departure, err := s.DepartureRepo.GetByID(in.DepartureID)
	if err != nil {
		return models.PreBooking{}, domain.NotFoundError{Resource: "departure", Err: err}
	}
	if in.CircuitID != 0 && departure.CircuitID != in.CircuitID {
		return models.PreBooking{}, domain.ValidationError{Field: "departure_id", Msg: "departure does not belong to the selected circuit"}
	}
	if departure.Status != models.DepartureOpen {
		return models.PreBooking{}, domain.ConflictError{Resource: "departure", Msg: "departure is closed for booking"}
	}

	circuit, err := s.CircuitRepo.GetByID(departure.CircuitID)
	if err != nil {
		return models.PreBooking{}, domain.NotFoundError{Resource: "circuit", Err: err}
	}
	if !circuit.Bookable() {
		return models.PreBooking{}, domain.ConflictError{Resource: "circuit", Msg: "circuit has no price options"}
	}

	option, ok := findPriceOption(circuit, in.RoomType)
	if !ok {
		return models.PreBooking{}, domain.ValidationError{Field: "room_type", Msg: "unknown price option"}
	}

	quote := BuildQuote(option, s.commissionRate(agency))
	occ := quote.Occupancy

	if !occ.Matches(in.NumAdults, in.NumChildren) {
		return models.PreBooking{}, domain.ValidationError{Field: "occupancy", Msg: "occupancy mismatch"}
	}
	if departure.AvailableSpots < occ.Total {
		return models.PreBooking{}, domain.ConflictError{Resource: "departure", Msg: "not enough available spots"}
	}

	passengers, err := cleanPassengers(in.Passengers, occ.Total)
	if err != nil {
		return models.PreBooking{}, err
	}

	booking := models.PreBooking{
		AgencyID:         agency.ID,
		CircuitID:        circuit.ID,
		DepartureID:      departure.ID,
		RoomType:         option.Type,
		NumAdults:        in.NumAdults,
		NumChildren:      in.NumChildren,
		Passengers:       passengers,
		Currency:         option.Currency,
		PublicPrice:      quote.PublicPrice,
		TotalPrice:       quote.TotalPrice,
		AgencyCommission: quote.AgencyCommission,
		AgencyNotes:      strings.TrimSpace(in.AgencyNotes),
		Status:           models.BookingPending,
	}

	id, err := s.BookingRepo.Create(booking)
	if err != nil {
		return models.PreBooking{}, domain.InternalError{Err: err}
	}
	booking.ID = id

	utils.LogEvent(s.RequestID, "booking", "create",
		"booking created agency="+itoa(agency.ID)+" departure="+itoa(departure.ID))
	return booking, nil
}

// Approve moves a pending booking to approved. The repository's
// conditional update means a lost race surfaces as ConflictError instead
// of silently rewriting another admin's decision.
func (s BookingService) Approve(p domain.Principal, id int64, notes string) error {
	if !p.IsBackOffice() {
		return domain.AuthorizationError{Msg: "review requires a back-office role"}
	}
	if id <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}

	applied, err := s.BookingRepo.Approve(id, p.UserID, strings.TrimSpace(notes))
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !applied {
		return s.transitionFailure(id)
	}
	utils.LogEvent(s.RequestID, "booking", "approve", "booking approved id="+itoa(id))
	return nil
}

// Reject moves a pending booking to rejected; the reason is mandatory.
func (s BookingService) Reject(p domain.Principal, id int64, reason string) error {
	if !p.IsBackOffice() {
		return domain.AuthorizationError{Msg: "review requires a back-office role"}
	}
	if id <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ValidationError{Field: "reason", Msg: "rejection reason is required"}
	}

	applied, err := s.BookingRepo.Reject(id, p.UserID, reason)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !applied {
		return s.transitionFailure(id)
	}
	utils.LogEvent(s.RequestID, "booking", "reject", "booking rejected id="+itoa(id))
	return nil
}

// Cancel moves a pending or approved booking to cancelled. Agencies may
// cancel their own pending bookings; back-office roles any.
func (s BookingService) Cancel(p domain.Principal, id int64) error {
	booking, err := s.GetByID(p, id)
	if err != nil {
		return err
	}
	if p.IsAgency() && booking.Status != models.BookingPending {
		return domain.ConflictError{Resource: "booking", Msg: "only pending bookings can be cancelled by the agency"}
	}

	applied, err := s.BookingRepo.Cancel(id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !applied {
		return s.transitionFailure(id)
	}
	utils.LogEvent(s.RequestID, "booking", "cancel", "booking cancelled id="+itoa(id))
	return nil
}

// transitionFailure explains a zero-row conditional update: either the
// booking is gone or it already left the expected state.
func (s BookingService) transitionFailure(id int64) error {
	status, err := s.BookingRepo.GetStatus(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return domain.ConflictError{Resource: "booking", Msg: "booking is already " + status}
}

// GetByID enforces tenancy: agencies only ever see their own bookings, and
// a foreign id reads as not-found rather than forbidden.
func (s BookingService) GetByID(p domain.Principal, id int64) (models.PreBooking, error) {
	if id <= 0 {
		return models.PreBooking{}, domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	booking, err := s.BookingRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PreBooking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.PreBooking{}, domain.InternalError{Err: err}
	}
	if p.IsAgency() && booking.AgencyID != p.AgencyID {
		return models.PreBooking{}, domain.NotFoundError{Resource: "booking"}
	}
	return booking, nil
}

// List returns bookings scoped to the caller: agencies their own, the
// back office everything (optionally per agency).
func (s BookingService) List(p domain.Principal, agencyID int64, status string) ([]models.PreBooking, error) {
	if p.IsAgency() {
		agencyID = p.AgencyID
	} else if !p.IsBackOffice() {
		return nil, domain.AuthorizationError{Msg: "forbidden"}
	}
	out, err := s.BookingRepo.List(agencyID, status)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func findPriceOption(c models.Circuit, roomType string) (models.PriceOption, bool) {
	want := strings.ToLower(utils.NormalizeSpace(roomType))
	if want == "" {
		return models.PriceOption{}, false
	}
	for _, opt := range c.PriceOptions {
		if strings.ToLower(utils.NormalizeSpace(opt.Type)) == want {
			return opt, true
		}
	}
	return models.PriceOption{}, false
}

// cleanPassengers checks that every slot up to the required occupancy has a
// name and a plausible age, and trims any surplus rows.
func cleanPassengers(in []models.Passenger, required int) ([]models.Passenger, error) {
	if len(in) < required {
		return nil, domain.ValidationError{Field: "passengers", Msg: "missing passenger data"}
	}
	out := make([]models.Passenger, 0, required)
	for i := 0; i < required; i++ {
		p := in[i]
		p.Name = utils.NormalizeSpace(p.Name)
		p.PassportNumber = strings.TrimSpace(p.PassportNumber)
		if p.Name == "" || p.Age <= 0 {
			return nil, domain.ValidationError{Field: "passengers", Msg: "missing passenger data"}
		}
		out = append(out, p)
	}
	return out, nil
}
