package services

import (
	"strings"
	"testing"

	intconfig "agencyportal/internal/config"
	"agencyportal/internal/domain"
	"agencyportal/internal/domain/models"
	"agencyportal/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookingCols = []string{
	"id", "agency_id", "circuit_id", "departure_id", "room_type",
	"num_adults", "num_children", "currency", "public_price", "total_price",
	"agency_commission", "agency_notes", "status", "approval_notes",
	"rejection_reason", "reviewed_by", "approved_at", "rejected_at",
	"cancelled_at", "created_at", "updated_at",
}

func bookingRows(id, agencyID int64, totalPrice float64) *sqlmock.Rows {
	return sqlmock.NewRows(bookingCols).AddRow(
		id, agencyID, 1, 1, "Camera dubla",
		2, 0, "EUR", totalPrice/0.9, totalPrice,
		totalPrice/0.9-totalPrice, "", models.BookingPending, "",
		"", 0, "", "",
		"", "2025-06-01 10:00:00", "2025-06-01 10:00:00",
	)
}

func TestBuildQuoteCommissionSplit(t *testing.T) {
	option := models.PriceOption{Type: "Camera dubla", Price: 1000, Currency: "EUR"}

	q := BuildQuote(option, 10)
	if q.TotalPrice != 900 || q.AgencyCommission != 100 {
		t.Fatalf("1000 @ 10%%: got total=%v commission=%v, want 900/100", q.TotalPrice, q.AgencyCommission)
	}
	if q.TotalPrice+q.AgencyCommission != q.PublicPrice {
		t.Fatalf("sum identity broken: %v + %v != %v", q.TotalPrice, q.AgencyCommission, q.PublicPrice)
	}
	if q.Occupancy.Total != 2 || !q.Occupancy.Flexible {
		t.Fatalf("camera dubla occupancy: got %+v", q.Occupancy)
	}
	if q.PerPersonDisplay != 450 {
		t.Fatalf("per-person display = %v, want 450", q.PerPersonDisplay)
	}
}

func TestBuildQuoteIdentityOnOddPrice(t *testing.T) {
	q := BuildQuote(models.PriceOption{Type: "Camera single", Price: 99, Currency: "EUR"}, 10)
	if q.TotalPrice+q.AgencyCommission != 99 {
		t.Fatalf("sum identity broken at 99: %v + %v", q.TotalPrice, q.AgencyCommission)
	}
	if q.AgencyCommission != 9.9 {
		t.Fatalf("commission = %v, want 9.9", q.AgencyCommission)
	}
}

func TestApproveRequiresBackOffice(t *testing.T) {
	svc := BookingService{}
	agency := domain.Principal{UserID: 2, AgencyID: 4, Role: domain.RoleAgency}

	if err := svc.Approve(agency, 1, ""); !domain.IsAuthorization(err) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	svc := BookingService{}
	admin := domain.Principal{UserID: 1, Role: domain.RoleAdmin}

	err := svc.Reject(admin, 1, "   ")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for blank reason, got %v", err)
	}
}

func TestApproveConflictWhenAlreadyReviewed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	// the conditional update misses because the row already left pending
	mock.ExpectExec("UPDATE pre_bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM pre_bookings WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.BookingApproved))

	svc := BookingService{BookingRepo: repositories.BookingRepository{DB: db}}
	admin := domain.Principal{UserID: 1, Role: domain.RoleAdmin}

	err = svc.Approve(admin, 7, "ok")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if !strings.Contains(err.Error(), models.BookingApproved) {
		t.Fatalf("conflict should name the current status, got %q", err.Error())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreatePreBookingOccupancyMismatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM agencies WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "company_name", "legal_name", "tax_id", "billing_address",
			"contact_person", "email", "phone", "commission_rate", "status",
			"admin_notes", "approved_at", "approved_by", "suspended_at",
			"created_at", "updated_at",
		}).AddRow(
			4, "Demo Travel", "", "", "",
			"", "demo@example.com", "", 10, models.AgencyActive,
			"", "", 0, "",
			"", "",
		))
	mock.ExpectQuery("FROM departures WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "circuit_id", "departure_date", "return_date", "room_type",
			"price", "currency", "status", "available_spots",
		}).AddRow(9, 3, "2025-09-10", "2025-09-20", "", 0, "EUR", models.DepartureOpen, 12))
	mock.ExpectQuery("FROM circuits WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "slug", "name", "continent", "description", "duration_days",
			"base_price", "currency", "price_options", "gallery", "created_at", "updated_at",
		}).AddRow(
			3, "marele-tur", "Marele Tur", "Europa", "", 10,
			1000, "EUR", `[{"type":"Camera dubla","price":1000,"currency":"EUR"}]`, `[]`, "", "",
		))

	svc := BookingService{
		BookingRepo:   repositories.BookingRepository{DB: db},
		AgencyRepo:    repositories.AgencyRepository{DB: db},
		CircuitRepo:   repositories.CircuitRepository{DB: db},
		DepartureRepo: repositories.DepartureRepository{DB: db},
	}
	agent := domain.Principal{UserID: 2, AgencyID: 4, Role: domain.RoleAgency}

	// one occupant in a two-person room: refused before any write
	_, err = svc.CreatePreBooking(agent, CreateBookingInput{
		CircuitID:   3,
		DepartureID: 9,
		RoomType:    "Camera dubla",
		NumAdults:   1,
		Passengers:  []models.Passenger{{Name: "Ion Popescu", Age: 40}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for occupancy mismatch, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDHidesForeignBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM pre_bookings WHERE id=").
		WillReturnRows(bookingRows(7, 99, 900))
	mock.ExpectQuery("FROM pre_booking_passengers").
		WillReturnRows(sqlmock.NewRows([]string{"name", "age", "passport_number"}))

	svc := BookingService{BookingRepo: repositories.BookingRepository{DB: db}}
	agent := domain.Principal{UserID: 2, AgencyID: 4, Role: domain.RoleAgency}

	_, err = svc.GetByID(agent, 7)
	if !domain.IsNotFound(err) {
		t.Fatalf("foreign booking must read as not found, got %v", err)
	}
}

func TestCleanPassengersTrimsSurplus(t *testing.T) {
	in := []models.Passenger{
		{Name: "  Ana  Pop ", Age: 30},
		{Name: "Dan Pop", Age: 32},
		{Name: "extra row", Age: 5},
	}
	out, err := cleanPassengers(in, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("surplus row kept, got %d passengers", len(out))
	}
	if out[0].Name != "Ana Pop" {
		t.Fatalf("name not normalized, got %q", out[0].Name)
	}
}

func TestCleanPassengersRejectsIncompleteRows(t *testing.T) {
	_, err := cleanPassengers([]models.Passenger{{Name: "Ana Pop", Age: 30}}, 2)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing row, got %v", err)
	}

	_, err = cleanPassengers([]models.Passenger{{Name: "Ana Pop", Age: 30}, {Name: "", Age: 4}}, 2)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}
