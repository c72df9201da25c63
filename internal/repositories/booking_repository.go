package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "agencyportal/internal/config"
	intdb "agencyportal/internal/db"
	"agencyportal/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id,
       COALESCE(agency_id,0),
       COALESCE(circuit_id,0),
       COALESCE(departure_id,0),
       COALESCE(room_type,''),
       COALESCE(num_adults,0),
       COALESCE(num_children,0),
       COALESCE(currency,'EUR'),
       COALESCE(public_price,0),
       COALESCE(total_price,0),
       COALESCE(agency_commission,0),
       COALESCE(agency_notes,''),
       COALESCE(status,'pending'),
       COALESCE(approval_notes,''),
       COALESCE(rejection_reason,''),
       COALESCE(reviewed_by,0),
       COALESCE(DATE_FORMAT(approved_at,'%Y-%m-%d %H:%i:%s'),''),
       COALESCE(DATE_FORMAT(rejected_at,'%Y-%m-%d %H:%i:%s'),''),
       COALESCE(DATE_FORMAT(cancelled_at,'%Y-%m-%d %H:%i:%s'),''),
       COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),''),
       COALESCE(DATE_FORMAT(updated_at,'%Y-%m-%d %H:%i:%s'),'')`

func scanBooking(row interface{ Scan(...any) error }) (models.PreBooking, error) {
	var b models.PreBooking
	err := row.Scan(
		&b.ID,
		&b.AgencyID,
		&b.CircuitID,
		&b.DepartureID,
		&b.RoomType,
		&b.NumAdults,
		&b.NumChildren,
		&b.Currency,
		&b.PublicPrice,
		&b.TotalPrice,
		&b.AgencyCommission,
		&b.AgencyNotes,
		&b.Status,
		&b.ApprovalNotes,
		&b.RejectionReason,
		&b.ReviewedBy,
		&b.ApprovedAt,
		&b.RejectedAt,
		&b.CancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

// Create inserts the booking and its passenger rows in one transaction so a
// failed passenger write never leaves a half-saved booking behind.
func (r BookingRepository) Create(b models.PreBooking) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO pre_bookings
			(agency_id, circuit_id, departure_id, room_type, num_adults, num_children,
			 currency, public_price, total_price, agency_commission, agency_notes,
			 status, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		b.AgencyID,
		b.CircuitID,
		b.DepartureID,
		b.RoomType,
		b.NumAdults,
		b.NumChildren,
		b.Currency,
		b.PublicPrice,
		b.TotalPrice,
		b.AgencyCommission,
		intdb.NullIfEmpty(b.AgencyNotes),
		models.BookingPending,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, p := range b.Passengers {
		if _, err := tx.Exec(`
			INSERT INTO pre_booking_passengers (booking_id, idx, name, age, passport_number)
			VALUES (?,?,?,?,?)`,
			id, i+1, p.Name, p.Age, intdb.NullIfEmpty(p.PassportNumber),
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r BookingRepository) GetByID(id int64) (models.PreBooking, error) {
	if id <= 0 {
		return models.PreBooking{}, fmt.Errorf("invalid booking id")
	}
	b, err := scanBooking(r.db().QueryRow(`SELECT `+bookingColumns+` FROM pre_bookings WHERE id=? LIMIT 1`, id))
	if err != nil {
		return b, err
	}
	b.Passengers, err = r.passengers(id)
	return b, err
}

func (r BookingRepository) passengers(bookingID int64) ([]models.Passenger, error) {
	rows, err := r.db().Query(`
		SELECT COALESCE(name,''), COALESCE(age,0), COALESCE(passport_number,'')
		FROM pre_booking_passengers
		WHERE booking_id=?
		ORDER BY idx`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.Name, &p.Age, &p.PassportNumber); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// List returns bookings filtered by agency (0 = all) and status ("" or
// "all" = all), newest first. Passenger rows are not loaded here.
func (r BookingRepository) List(agencyID int64, status string) ([]models.PreBooking, error) {
	status = strings.ToLower(strings.TrimSpace(status))

	query := `SELECT ` + bookingColumns + ` FROM pre_bookings WHERE 1=1`
	args := []any{}
	if agencyID > 0 {
		query += ` AND agency_id=?`
		args = append(args, agencyID)
	}
	if status != "" && status != "all" {
		query += ` AND status=?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PreBooking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r BookingRepository) GetStatus(id int64) (string, error) {
	var status string
	err := r.db().QueryRow(`SELECT COALESCE(status,'') FROM pre_bookings WHERE id=? LIMIT 1`, id).Scan(&status)
	return status, err
}

// Approve transitions pending -> approved. The WHERE status='pending' guard
// makes concurrent reviews race-safe: exactly one admin wins, the other
// sees applied=false and resolves against the current status.
func (r BookingRepository) Approve(id, adminID int64, notes string) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE pre_bookings
		SET status=?, approval_notes=?, rejection_reason=NULL,
		    reviewed_by=?, approved_at=NOW(), updated_at=NOW()
		WHERE id=? AND status=?`,
		models.BookingApproved, intdb.NullIfEmpty(notes), adminID, id, models.BookingPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Reject transitions pending -> rejected under the same guard.
func (r BookingRepository) Reject(id, adminID int64, reason string) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE pre_bookings
		SET status=?, rejection_reason=?, approval_notes=NULL,
		    reviewed_by=?, rejected_at=NOW(), updated_at=NOW()
		WHERE id=? AND status=?`,
		models.BookingRejected, reason, adminID, id, models.BookingPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Cancel transitions pending or approved -> cancelled.
func (r BookingRepository) Cancel(id int64) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE pre_bookings
		SET status=?, cancelled_at=NOW(), updated_at=NOW()
		WHERE id=? AND status IN (?,?)`,
		models.BookingCancelled, id, models.BookingPending, models.BookingApproved)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CountByStatus returns booking counts keyed by status.
func (r BookingRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.db().Query(`SELECT COALESCE(status,''), COUNT(*) FROM pre_bookings GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

// ApprovedTotals returns approved revenue and commission sums for reports.
func (r BookingRepository) ApprovedTotals() (revenue, commission float64, err error) {
	err = r.db().QueryRow(`
		SELECT COALESCE(SUM(total_price),0), COALESCE(SUM(agency_commission),0)
		FROM pre_bookings
		WHERE status=?`, models.BookingApproved).Scan(&revenue, &commission)
	return revenue, commission, err
}
