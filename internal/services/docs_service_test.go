package services

import (
	"testing"

	"agencyportal/internal/domain/models"
)

func docDataFixture() bookingDocData {
	return bookingDocData{
		Booking: models.PreBooking{
			ID:               7,
			RoomType:         "Camera dubla",
			NumAdults:        2,
			Currency:         "EUR",
			PublicPrice:      1000,
			TotalPrice:       900,
			AgencyCommission: 100,
			Status:           models.BookingApproved,
			Passengers: []models.Passenger{
				{Name: "Ana Pop", Age: 30, PassportNumber: "RO123456"},
				{Name: "Dan Pop", Age: 32},
			},
		},
		Agency:    models.Agency{CompanyName: "Demo Travel", TaxID: "RO99"},
		Circuit:   models.Circuit{Name: "Marele Tur"},
		Departure: models.Departure{DepartureDate: "2025-09-10", ReturnDate: "2025-09-20"},
	}
}

func TestBuildBookingPDFs(t *testing.T) {
	d := docDataFixture()

	pdf, filename, err := buildConfirmationPDF(d)
	if err != nil {
		t.Fatalf("confirmation error: %v", err)
	}
	if len(pdf) == 0 || filename != "CONFIRMATION_PB-7.pdf" {
		t.Fatalf("confirmation output wrong: %d bytes, %q", len(pdf), filename)
	}

	invoice, invName, err := buildInvoicePDF(d, 30)
	if err != nil {
		t.Fatalf("invoice error: %v", err)
	}
	if len(invoice) == 0 || invName != "INV-PB-7.pdf" {
		t.Fatalf("invoice output wrong: %d bytes, %q", len(invoice), invName)
	}
}

func TestDocsServiceDeadlineDaysDefault(t *testing.T) {
	if got := (DocsService{}).deadlineDays(); got != 45 {
		t.Fatalf("default deadline days = %d, want 45", got)
	}
	if got := (DocsService{DeadlineDays: 30}).deadlineDays(); got != 30 {
		t.Fatalf("configured deadline days = %d, want 30", got)
	}
}
