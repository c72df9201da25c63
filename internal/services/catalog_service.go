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

// CatalogService manages circuits and their departures. Reads are public
// to any authenticated caller; writes are back-office only.
type CatalogService struct {
	CircuitRepo   repositories.CircuitRepository
	DepartureRepo repositories.DepartureRepository
	RequestID     string
}

func (s CatalogService) ListCircuits(continent string) ([]models.Circuit, error) {
	out, err := s.CircuitRepo.List(continent)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// GetCircuitBySlug returns the circuit with its departures.
func (s CatalogService) GetCircuitBySlug(slug string) (models.Circuit, []models.Departure, error) {
	circuit, err := s.CircuitRepo.GetBySlug(slug)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Circuit{}, nil, domain.NotFoundError{Resource: "circuit"}
	}
	if err != nil {
		return models.Circuit{}, nil, domain.InternalError{Err: err}
	}
	departures, err := s.DepartureRepo.ListByCircuit(circuit.ID)
	if err != nil {
		return models.Circuit{}, nil, domain.InternalError{Err: err}
	}
	return circuit, departures, nil
}

func validateCircuit(c *models.Circuit) error {
	c.Name = utils.NormalizeSpace(c.Name)
	if c.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	c.Slug = strings.TrimSpace(c.Slug)
	if c.Slug == "" {
		c.Slug = utils.Slugify(c.Name)
	}
	if c.Currency == "" {
		c.Currency = "EUR"
	}
	for i, opt := range c.PriceOptions {
		if strings.TrimSpace(opt.Type) == "" || opt.Price < 0 {
			return domain.ValidationError{Field: "price_options", Msg: "option " + itoa(int64(i+1)) + " is invalid"}
		}
	}
	return nil
}

func (s CatalogService) CreateCircuit(p domain.Principal, c models.Circuit) (models.Circuit, error) {
	if !p.IsBackOffice() {
		return models.Circuit{}, domain.AuthorizationError{Msg: "catalog writes require a back-office role"}
	}
	if err := validateCircuit(&c); err != nil {
		return models.Circuit{}, err
	}
	if _, err := s.CircuitRepo.GetBySlug(c.Slug); err == nil {
		return models.Circuit{}, domain.ConflictError{Resource: "circuit", Msg: "slug already in use"}
	}
	id, err := s.CircuitRepo.Create(c)
	if err != nil {
		return models.Circuit{}, domain.InternalError{Err: err}
	}
	c.ID = id
	utils.LogEvent(s.RequestID, "catalog", "create_circuit", "circuit created id="+itoa(id))
	return c, nil
}

func (s CatalogService) UpdateCircuit(p domain.Principal, c models.Circuit) (models.Circuit, error) {
	if !p.IsBackOffice() {
		return models.Circuit{}, domain.AuthorizationError{Msg: "catalog writes require a back-office role"}
	}
	if c.ID <= 0 {
		return models.Circuit{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	if err := validateCircuit(&c); err != nil {
		return models.Circuit{}, err
	}
	if existing, err := s.CircuitRepo.GetBySlug(c.Slug); err == nil && existing.ID != c.ID {
		return models.Circuit{}, domain.ConflictError{Resource: "circuit", Msg: "slug already in use"}
	}
	if _, err := s.CircuitRepo.GetByID(c.ID); errors.Is(err, sql.ErrNoRows) {
		return models.Circuit{}, domain.NotFoundError{Resource: "circuit"}
	} else if err != nil {
		return models.Circuit{}, domain.InternalError{Err: err}
	}
	if err := s.CircuitRepo.Update(c); err != nil {
		return models.Circuit{}, domain.InternalError{Err: err}
	}
	return c, nil
}

func (s CatalogService) DeleteCircuit(p domain.Principal, id int64) error {
	if !p.IsBackOffice() {
		return domain.AuthorizationError{Msg: "catalog writes require a back-office role"}
	}
	if _, err := s.CircuitRepo.GetByID(id); errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "circuit"}
	} else if err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.CircuitRepo.Delete(id); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "catalog", "delete_circuit", "circuit deleted id="+itoa(id))
	return nil
}

func validateDeparture(d *models.Departure) error {
	dep, err := utils.ParseDate(d.DepartureDate)
	if err != nil {
		return domain.ValidationError{Field: "departure_date", Msg: "expected YYYY-MM-DD"}
	}
	ret, err := utils.ParseDate(d.ReturnDate)
	if err != nil {
		return domain.ValidationError{Field: "return_date", Msg: "expected YYYY-MM-DD"}
	}
	if !ret.After(dep) {
		return domain.ValidationError{Field: "return_date", Msg: "must be after departure_date"}
	}
	if d.AvailableSpots < 0 {
		return domain.ValidationError{Field: "available_spots", Msg: "must not be negative"}
	}
	if d.Price < 0 {
		return domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if d.Status == "" {
		d.Status = models.DepartureOpen
	}
	if d.Status != models.DepartureOpen && d.Status != models.DepartureClosed {
		return domain.ValidationError{Field: "status", Msg: "must be open or closed"}
	}
	if d.Currency == "" {
		d.Currency = "EUR"
	}
	return nil
}

func (s CatalogService) CreateDeparture(p domain.Principal, d models.Departure) (models.Departure, error) {
	if !p.IsBackOffice() {
		return models.Departure{}, domain.AuthorizationError{Msg: "catalog writes require a back-office role"}
	}
	if _, err := s.CircuitRepo.GetByID(d.CircuitID); errors.Is(err, sql.ErrNoRows) {
		return models.Departure{}, domain.NotFoundError{Resource: "circuit"}
	} else if err != nil {
		return models.Departure{}, domain.InternalError{Err: err}
	}
	if err := validateDeparture(&d); err != nil {
		return models.Departure{}, err
	}
	id, err := s.DepartureRepo.Create(d)
	if err != nil {
		return models.Departure{}, domain.InternalError{Err: err}
	}
	d.ID = id
	return d, nil
}

func (s CatalogService) UpdateDeparture(p domain.Principal, d models.Departure) (models.Departure, error) {
	if !p.IsBackOffice() {
		return models.Departure{}, domain.AuthorizationError{Msg: "catalog writes require a back-office role"}
	}
	existing, err := s.DepartureRepo.GetByID(d.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Departure{}, domain.NotFoundError{Resource: "departure"}
	}
	if err != nil {
		return models.Departure{}, domain.InternalError{Err: err}
	}
	d.CircuitID = existing.CircuitID
	if err := validateDeparture(&d); err != nil {
		return models.Departure{}, err
	}
	if err := s.DepartureRepo.Update(d); err != nil {
		return models.Departure{}, domain.InternalError{Err: err}
	}
	return d, nil
}

func (s CatalogService) DeleteDeparture(p domain.Principal, id int64) error {
	if !p.IsBackOffice() {
		return domain.AuthorizationError{Msg: "catalog writes require a back-office role"}
	}
	if _, err := s.DepartureRepo.GetByID(id); errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "departure"}
	} else if err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.DepartureRepo.Delete(id); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
