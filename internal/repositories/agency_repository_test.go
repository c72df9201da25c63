package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var agencyStatsCols = []string{
	"id", "company_name", "contact_person", "email", "phone",
	"commission_rate", "status", "created_at", "total_bookings",
	"pending_bookings", "total_commission",
}

func TestListWithStatsCommissionCountsApprovedOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// the rollup must stay pinned to approved rows: pending and rejected
	// bookings count in totals but never in commission
	mock.ExpectQuery(`CASE WHEN b\.status='approved' THEN b\.total_price \* a\.commission_rate / 100`).
		WithArgs("all", "all").
		WillReturnRows(sqlmock.NewRows(agencyStatsCols).
			AddRow(4, "Demo Travel", "Ana Pop", "demo@example.com", "0700", 10, "active", "2025-06-01 10:00:00", 3, 2, 100).
			AddRow(5, "Idle Tours", "", "idle@example.com", "", 12, "pending", "2025-06-02 10:00:00", 0, 0, 0))

	repo := AgencyRepository{DB: db}
	out, err := repo.ListWithStats("")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d rows, want 2", len(out))
	}
	if out[0].TotalBookings != 3 || out[0].PendingBookings != 2 {
		t.Fatalf("booking counts scanned wrong: %+v", out[0])
	}
	if out[0].TotalCommission != 100 {
		t.Fatalf("commission = %v, want 100 (one approved booking of 1000 at 10%%)", out[0].TotalCommission)
	}
	if out[1].TotalCommission != 0 {
		t.Fatalf("agency without approved bookings must roll up zero commission, got %v", out[1].TotalCommission)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListWithStatsAppliesStatusFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("LEFT JOIN pre_bookings").
		WithArgs("active", "active").
		WillReturnRows(sqlmock.NewRows(agencyStatsCols).
			AddRow(4, "Demo Travel", "", "demo@example.com", "", 10, "active", "", 0, 0, 0))

	repo := AgencyRepository{DB: db}
	out, err := repo.ListWithStats("Active")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(out) != 1 || out[0].Status != "active" {
		t.Fatalf("filtered list wrong: %+v", out)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
