package services

import (
	"testing"
	"time"

	intconfig "agencyportal/internal/config"
	"agencyportal/internal/domain"
	"agencyportal/internal/domain/models"
	"agencyportal/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSummarizePayments(t *testing.T) {
	cases := []struct {
		name      string
		total     float64
		amounts   []float64
		status    string
		remaining float64
		overpaid  bool
	}{
		{"no payments", 900, nil, models.PaymentStatusPending, 900, false},
		{"two installments", 900, []float64{300, 300}, models.PaymentStatusPartial, 300, false},
		{"settled", 900, []float64{300, 300, 300}, models.PaymentStatusPaid, 0, false},
		{"exact single payment", 900, []float64{900}, models.PaymentStatusPaid, 0, false},
		{"overpaid legacy data", 900, []float64{1000}, models.PaymentStatusPaid, -100, true},
		{"zero total", 0, nil, models.PaymentStatusPending, 0, false},
	}

	for _, tc := range cases {
		got := SummarizePayments(tc.total, tc.amounts)
		if got.Status != tc.status {
			t.Errorf("%s: status = %s, want %s", tc.name, got.Status, tc.status)
		}
		if got.RemainingAmount != tc.remaining {
			t.Errorf("%s: remaining = %v, want %v", tc.name, got.RemainingAmount, tc.remaining)
		}
		if got.Overpaid != tc.overpaid {
			t.Errorf("%s: overpaid = %v, want %v", tc.name, got.Overpaid, tc.overpaid)
		}
	}
}

func TestPaymentDeadlineBuckets(t *testing.T) {
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		departure time.Time
		remaining float64
		bucket    string
	}{
		{"settled balance wins over date", today.AddDate(0, 0, 10), 0, DeadlineFullyPaid},
		{"far out", today.AddDate(0, 0, 45+30), 100, DeadlineOnTrack},
		{"eleven days left", today.AddDate(0, 0, 45+11), 100, DeadlineOnTrack},
		{"ten days left", today.AddDate(0, 0, 45+10), 100, DeadlineWarning},
		{"five days left", today.AddDate(0, 0, 45+5), 100, DeadlineWarning},
		{"four days left", today.AddDate(0, 0, 45+4), 100, DeadlineUrgent},
		{"one day left", today.AddDate(0, 0, 45+1), 100, DeadlineUrgent},
		{"deadline today", today.AddDate(0, 0, 45), 100, DeadlineOverdue},
		{"past deadline", today.AddDate(0, 0, 40), 100, DeadlineOverdue},
	}

	for _, tc := range cases {
		info := PaymentDeadline(tc.departure, today, tc.remaining, 45)
		if info.Bucket != tc.bucket {
			t.Errorf("%s: bucket = %s (days=%d), want %s", tc.name, info.Bucket, info.DaysRemaining, tc.bucket)
		}
	}
}

func TestPaymentDeadlineDate(t *testing.T) {
	departure := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	info := PaymentDeadline(departure, today, 500, 45)
	if info.Deadline != "2025-07-01" {
		t.Fatalf("deadline = %s, want 2025-07-01", info.Deadline)
	}
	if info.DaysRemaining != 30 {
		t.Fatalf("days remaining = %d, want 30", info.DaysRemaining)
	}
}

func TestRecordPaymentRefusesOverpay(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM pre_bookings WHERE id=").
		WillReturnRows(bookingRows(7, 4, 900))
	mock.ExpectQuery("FROM pre_booking_passengers").
		WillReturnRows(sqlmock.NewRows([]string{"name", "age", "passport_number"}))
	mock.ExpectQuery("FROM payments WHERE booking_id=").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(800))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingSvc:  BookingService{BookingRepo: repositories.BookingRepository{DB: db}},
	}
	admin := domain.Principal{UserID: 1, Role: domain.RoleAdmin}

	_, err = svc.Record(admin, RecordPaymentInput{
		BookingID:     7,
		Amount:        200,
		PaymentMethod: models.PaymentBankTransfer,
		PaymentDate:   "2025-06-01",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for overpay, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordPaymentRejectsAgencyCaller(t *testing.T) {
	svc := PaymentService{}
	agency := domain.Principal{UserID: 2, AgencyID: 4, Role: domain.RoleAgency}

	_, err := svc.Record(agency, RecordPaymentInput{BookingID: 7, Amount: 100, PaymentMethod: models.PaymentCash})
	if !domain.IsAuthorization(err) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}
