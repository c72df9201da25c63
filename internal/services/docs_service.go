package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"agencyportal/internal/domain"
	"agencyportal/internal/domain/models"
	"agencyportal/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking confirmation and invoice PDFs.
type DocsService struct {
	BookingSvc BookingService

	// DeadlineDays is the configured balance-due offset shown on invoices.
	DeadlineDays int
	RequestID    string
}

func (s DocsService) deadlineDays() int {
	if s.DeadlineDays > 0 {
		return s.DeadlineDays
	}
	return 45
}

type bookingDocData struct {
	Booking   models.PreBooking
	Agency    models.Agency
	Circuit   models.Circuit
	Departure models.Departure
}

func (s DocsService) load(p domain.Principal, bookingID int64) (bookingDocData, error) {
	var d bookingDocData
	booking, err := s.BookingSvc.GetByID(p, bookingID)
	if err != nil {
		return d, err
	}
	d.Booking = booking

	if agency, err := s.BookingSvc.AgencyRepo.GetByID(booking.AgencyID); err == nil {
		d.Agency = agency
	}
	if circuit, err := s.BookingSvc.CircuitRepo.GetByID(booking.CircuitID); err == nil {
		d.Circuit = circuit
	}
	if departure, err := s.BookingSvc.DepartureRepo.GetByID(booking.DepartureID); err == nil {
		d.Departure = departure
	}
	return d, nil
}

// Confirmation renders the reservation confirmation for an approved
// booking.
func (s DocsService) Confirmation(p domain.Principal, bookingID int64) ([]byte, string, error) {
	d, err := s.load(p, bookingID)
	if err != nil {
		return nil, "", err
	}
	if d.Booking.Status != models.BookingApproved {
		return nil, "", domain.ConflictError{Resource: "booking", Msg: "confirmation is only available for approved bookings"}
	}
	utils.LogEvent(s.RequestID, "docs", "confirmation", fmt.Sprintf("booking_id=%d", bookingID))
	return buildConfirmationPDF(d)
}

// Invoice renders the agency invoice for a booking.
func (s DocsService) Invoice(p domain.Principal, bookingID int64) ([]byte, string, error) {
	d, err := s.load(p, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(d, s.deadlineDays())
}

func buildConfirmationPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reservation Confirmation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RESERVATION CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Ref   : PB-%d", d.Booking.ID),
		fmt.Sprintf("Agency        : %s", safe(d.Agency.CompanyName, "-")),
		fmt.Sprintf("Circuit       : %s", safe(d.Circuit.Name, "-")),
		fmt.Sprintf("Departure     : %s -> %s", safe(d.Departure.DepartureDate, "-"), safe(d.Departure.ReturnDate, "-")),
		fmt.Sprintf("Room type     : %s", safe(d.Booking.RoomType, "-")),
		fmt.Sprintf("Travellers    : %d adults, %d children", d.Booking.NumAdults, d.Booking.NumChildren),
		fmt.Sprintf("Total (agency): %s", utils.FormatMoney(d.Booking.TotalPrice, d.Booking.Currency)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for i, pax := range d.Booking.Passengers {
		line := fmt.Sprintf("%d) %s, age %d", i+1, pax.Name, pax.Age)
		if pax.PassportNumber != "" {
			line += ", passport " + pax.PassportNumber
		}
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This confirmation covers the reservation as approved by the tour operator. Please verify passenger names against travel documents.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("CONFIRMATION_PB-%d.pdf", d.Booking.ID)
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(d bookingDocData, deadlineDays int) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-PB-%d", d.Booking.ID)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice no : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Agency  : %s", safe(d.Agency.CompanyName, "-")))
	pdf.Ln(7)
	if d.Agency.TaxID != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Tax ID  : %s", d.Agency.TaxID))
		pdf.Ln(7)
	}
	if d.Agency.BillingAddress != "" {
		pdf.MultiCell(0, 7, "Address : "+d.Agency.BillingAddress, "", "", false)
	}
	pdf.Ln(3)

	desc := fmt.Sprintf("Tour circuit %s, departure %s, %s (%d adults, %d children)",
		safe(d.Circuit.Name, "-"),
		safe(d.Departure.DepartureDate, "-"),
		safe(d.Booking.RoomType, "-"),
		d.Booking.NumAdults, d.Booking.NumChildren,
	)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Public price     : "+utils.FormatMoney(d.Booking.PublicPrice, d.Booking.Currency))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Agency commission: "+utils.FormatMoney(d.Booking.AgencyCommission, d.Booking.Currency))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total due: "+utils.FormatMoney(d.Booking.TotalPrice, d.Booking.Currency))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Payment is due %d days before departure unless agreed otherwise.", deadlineDays), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s.pdf", invNo)
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
