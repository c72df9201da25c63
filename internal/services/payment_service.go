package services

import (
	"database/sql"
	"errors"
	"math"
	"strings"
	"time"

	"agencyportal/internal/domain"
	"agencyportal/internal/domain/models"
	"agencyportal/internal/repositories"
	"agencyportal/internal/utils"
)

// PaymentService records installments against bookings and derives the
// aggregate payment state the dashboards show.
type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	BookingSvc  BookingService

	// DeadlineDays is how many days before departure the balance is due.
	DeadlineDays int
	RequestID    string
}

// PaymentSummary is the derived payment state of one booking. Remaining may
// go negative when historic data overpays; Overpaid flags that instead of
// clamping.
type PaymentSummary struct {
	TotalPrice      float64 `json:"total_price"`
	PaidAmount      float64 `json:"paid_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
	Status          string  `json:"status"`
	Overpaid        bool    `json:"overpaid"`
}

// SummarizePayments partitions every non-negative paid total into exactly
// one of pending/partial/paid. No tolerance is applied.
func SummarizePayments(totalPrice float64, amounts []float64) PaymentSummary {
	var paid float64
	for _, a := range amounts {
		paid += a
	}
	paid = utils.RoundMoney(paid)

	status := models.PaymentStatusPending
	switch {
	case paid <= 0:
		status = models.PaymentStatusPending
	case paid < totalPrice:
		status = models.PaymentStatusPartial
	default:
		status = models.PaymentStatusPaid
	}

	return PaymentSummary{
		TotalPrice:      totalPrice,
		PaidAmount:      paid,
		RemainingAmount: utils.RoundMoney(totalPrice - paid),
		Status:          status,
		Overpaid:        paid > totalPrice,
	}
}

// Deadline buckets, agency-facing only.
const (
	DeadlineFullyPaid = "fully_paid"
	DeadlineOnTrack   = "on_track"
	DeadlineWarning   = "warning"
	DeadlineUrgent    = "urgent"
	DeadlineOverdue   = "overdue"
)

// DeadlineInfo tells an agency how close the payment deadline is.
type DeadlineInfo struct {
	Deadline      string `json:"deadline"`
	DaysRemaining int    `json:"days_remaining"`
	Bucket        string `json:"bucket"`
}

// PaymentDeadline computes the deadline (departure minus offsetDays) and
// its urgency bucket. A settled balance reads fully_paid regardless of
// date.
func PaymentDeadline(departureDate, today time.Time, remaining float64, offsetDays int) DeadlineInfo {
	deadline := departureDate.AddDate(0, 0, -offsetDays)
	days := int(math.Ceil(deadline.Sub(today).Hours() / 24))

	info := DeadlineInfo{
		Deadline:      utils.FormatDate(deadline),
		DaysRemaining: days,
	}

	switch {
	case remaining <= 0:
		info.Bucket = DeadlineFullyPaid
	case days > 10:
		info.Bucket = DeadlineOnTrack
	case days >= 5:
		info.Bucket = DeadlineWarning
	case days >= 1:
		info.Bucket = DeadlineUrgent
	default:
		info.Bucket = DeadlineOverdue
	}
	return info
}

// BookingPaymentStatus is the full payment view of one booking.
type BookingPaymentStatus struct {
	BookingID int64            `json:"booking_id"`
	Summary   PaymentSummary   `json:"summary"`
	Deadline  *DeadlineInfo    `json:"deadline,omitempty"`
	Payments  []models.Payment `json:"payments"`
}

// StatusFor aggregates a booking's payments; tenancy is enforced through
// the booking lookup.
func (s PaymentService) StatusFor(p domain.Principal, bookingID int64) (BookingPaymentStatus, error) {
	booking, err := s.BookingSvc.GetByID(p, bookingID)
	if err != nil {
		return BookingPaymentStatus{}, err
	}

	payments, err := s.PaymentRepo.ListByBooking(bookingID)
	if err != nil {
		return BookingPaymentStatus{}, domain.InternalError{Err: err}
	}

	amounts := make([]float64, 0, len(payments))
	for _, pay := range payments {
		amounts = append(amounts, pay.Amount)
	}
	summary := SummarizePayments(booking.TotalPrice, amounts)

	out := BookingPaymentStatus{
		BookingID: bookingID,
		Summary:   summary,
		Payments:  payments,
	}

	if departure, err := s.BookingSvc.DepartureRepo.GetByID(booking.DepartureID); err == nil {
		if depDate, err := utils.ParseDate(departure.DepartureDate); err == nil {
			info := PaymentDeadline(depDate, time.Now(), summary.RemainingAmount, s.deadlineDays())
			out.Deadline = &info
		}
	}
	return out, nil
}

func (s PaymentService) deadlineDays() int {
	if s.DeadlineDays > 0 {
		return s.DeadlineDays
	}
	return 45
}

// RecordPaymentInput is a back-office payment entry.
type RecordPaymentInput struct {
	BookingID       int64   `json:"booking_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	PaymentMethod   string  `json:"payment_method"`
	PaymentDate     string  `json:"payment_date"`
	ReferenceNumber string  `json:"reference_number"`
}

// Record stores a payment. Cumulative payments may not exceed the booking
// total; an entry that would overpay is refused outright.
func (s PaymentService) Record(p domain.Principal, in RecordPaymentInput) (models.Payment, error) {
	if !p.IsBackOffice() {
		return models.Payment{}, domain.AuthorizationError{Msg: "recording payments requires a back-office role"}
	}
	if in.Amount <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "amount", Msg: "must be greater than zero"}
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return models.Payment{}, domain.ValidationError{Field: "payment_method", Msg: "unknown payment method"}
	}

	booking, err := s.BookingSvc.GetByID(p, in.BookingID)
	if err != nil {
		return models.Payment{}, err
	}

	paid, err := s.PaymentRepo.SumByBooking(booking.ID)
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	if utils.RoundMoney(paid+in.Amount) > booking.TotalPrice {
		return models.Payment{}, domain.ValidationError{Field: "amount", Msg: "payment exceeds remaining balance"}
	}

	paymentDate := strings.TrimSpace(in.PaymentDate)
	if paymentDate == "" {
		paymentDate = utils.FormatDate(time.Now())
	} else if _, err := utils.ParseDate(paymentDate); err != nil {
		return models.Payment{}, domain.ValidationError{Field: "payment_date", Msg: "expected YYYY-MM-DD"}
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = booking.Currency
	}

	payment := models.Payment{
		BookingID:       booking.ID,
		Amount:          utils.RoundMoney(in.Amount),
		Currency:        currency,
		PaymentMethod:   in.PaymentMethod,
		PaymentDate:     paymentDate,
		ReferenceNumber: strings.TrimSpace(in.ReferenceNumber),
		RecordedBy:      p.UserID,
	}

	id, err := s.PaymentRepo.Create(payment)
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	payment.ID = id

	utils.LogEvent(s.RequestID, "payment", "record",
		"payment recorded booking="+itoa(booking.ID)+" amount="+utils.FormatMoney(payment.Amount, payment.Currency))
	return payment, nil
}

// ListForBooking returns a booking's payment rows, tenancy-checked.
func (s PaymentService) ListForBooking(p domain.Principal, bookingID int64) ([]models.Payment, error) {
	if _, err := s.BookingSvc.GetByID(p, bookingID); err != nil {
		return nil, err
	}
	payments, err := s.PaymentRepo.ListByBooking(bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return payments, nil
}

// Delete removes a payment record (admin only).
func (s PaymentService) Delete(p domain.Principal, id int64) error {
	if !p.IsBackOffice() {
		return domain.AuthorizationError{Msg: "deleting payments requires a back-office role"}
	}
	deleted, err := s.PaymentRepo.Delete(id)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !deleted) {
		return domain.NotFoundError{Resource: "payment"}
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "payment", "delete", "payment deleted id="+itoa(id))
	return nil
}
