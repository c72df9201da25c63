package repositories

import (
	"database/sql"
	"fmt"

	intconfig "agencyportal/internal/config"
	intdb "agencyportal/internal/db"
	"agencyportal/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `id,
       COALESCE(booking_id,0),
       COALESCE(amount,0),
       COALESCE(currency,'EUR'),
       COALESCE(payment_method,''),
       COALESCE(DATE_FORMAT(payment_date,'%Y-%m-%d'),''),
       COALESCE(reference_number,''),
       COALESCE(recorded_by,0),
       COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),'')`

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.Currency,
		&p.PaymentMethod,
		&p.PaymentDate,
		&p.ReferenceNumber,
		&p.RecordedBy,
		&p.CreatedAt,
	)
	return p, err
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, fmt.Errorf("invalid payment id")
	}
	return scanPayment(r.db().QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id=? LIMIT 1`, id))
}

func (r PaymentRepository) ListByBooking(bookingID int64) ([]models.Payment, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("invalid booking id")
	}
	rows, err := r.db().Query(`
		SELECT `+paymentColumns+`
		FROM payments
		WHERE booking_id=?
		ORDER BY payment_date, id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SumByBooking returns the total amount already recorded for a booking.
func (r PaymentRepository) SumByBooking(bookingID int64) (float64, error) {
	var sum float64
	err := r.db().QueryRow(`
		SELECT COALESCE(SUM(amount),0) FROM payments WHERE booking_id=?`, bookingID).Scan(&sum)
	return sum, err
}

func (r PaymentRepository) Create(p models.Payment) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO payments
			(booking_id, amount, currency, payment_method, payment_date,
			 reference_number, recorded_by, created_at)
		VALUES (?,?,?,?,?,?,?,NOW())`,
		p.BookingID,
		p.Amount,
		p.Currency,
		p.PaymentMethod,
		p.PaymentDate,
		intdb.NullIfEmpty(p.ReferenceNumber),
		p.RecordedBy,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepository) Delete(id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("invalid payment id")
	}
	res, err := r.db().Exec(`DELETE FROM payments WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CollectedTotal sums every payment on record, for the admin overview.
func (r PaymentRepository) CollectedTotal() (float64, error) {
	var sum float64
	err := r.db().QueryRow(`SELECT COALESCE(SUM(amount),0) FROM payments`).Scan(&sum)
	return sum, err
}
