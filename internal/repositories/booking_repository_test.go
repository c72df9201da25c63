package repositories

import (
	"errors"
	"testing"

	"agencyportal/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBookingCreateWritesPassengersInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO pre_bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO pre_booking_passengers").
		WithArgs(int64(42), 1, "Ana Pop", 30, "RO123456").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO pre_booking_passengers").
		WithArgs(int64(42), 2, "Dan Pop", 32, nil).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	repo := BookingRepository{DB: db}
	id, err := repo.Create(models.PreBooking{
		AgencyID:    4,
		CircuitID:   3,
		DepartureID: 9,
		RoomType:    "Camera dubla",
		NumAdults:   2,
		Currency:    "EUR",
		PublicPrice: 1000,
		TotalPrice:  900,
		Passengers: []models.Passenger{
			{Name: "Ana Pop", Age: 30, PassportNumber: "RO123456"},
			{Name: "Dan Pop", Age: 32},
		},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateRollsBackOnPassengerFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO pre_bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO pre_booking_passengers").
		WillReturnError(errors.New("column mismatch"))
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	_, err = repo.Create(models.PreBooking{
		AgencyID:   4,
		Passengers: []models.Passenger{{Name: "Ana Pop", Age: 30}},
	})
	if err == nil {
		t.Fatalf("expected error to propagate")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingApproveReportsLostRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE pre_bookings").
		WithArgs(models.BookingApproved, nil, int64(1), int64(7), models.BookingPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := BookingRepository{DB: db}
	applied, err := repo.Approve(7, 1, "")
	if err != nil {
		t.Fatalf("approve error: %v", err)
	}
	if applied {
		t.Fatalf("zero affected rows must report applied=false")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCancelOnlyLeavesPendingOrApproved(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE pre_bookings").
		WithArgs(models.BookingCancelled, int64(7), models.BookingPending, models.BookingApproved).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := BookingRepository{DB: db}
	applied, err := repo.Cancel(7)
	if err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if !applied {
		t.Fatalf("expected applied=true")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
