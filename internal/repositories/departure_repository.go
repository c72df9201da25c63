package repositories

import (
	"database/sql"
	"fmt"

	intconfig "agencyportal/internal/config"
	intdb "agencyportal/internal/db"
	"agencyportal/internal/domain/models"
)

type DepartureRepository struct {
	DB *sql.DB
}

func (r DepartureRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const departureColumns = `id,
       COALESCE(circuit_id,0),
       COALESCE(DATE_FORMAT(departure_date,'%Y-%m-%d'),''),
       COALESCE(DATE_FORMAT(return_date,'%Y-%m-%d'),''),
       COALESCE(room_type,''),
       COALESCE(price,0),
       COALESCE(currency,'EUR'),
       COALESCE(status,'open'),
       COALESCE(available_spots,0)`

func scanDeparture(row interface{ Scan(...any) error }) (models.Departure, error) {
	var d models.Departure
	err := row.Scan(
		&d.ID,
		&d.CircuitID,
		&d.DepartureDate,
		&d.ReturnDate,
		&d.RoomType,
		&d.Price,
		&d.Currency,
		&d.Status,
		&d.AvailableSpots,
	)
	return d, err
}

func (r DepartureRepository) GetByID(id int64) (models.Departure, error) {
	if id <= 0 {
		return models.Departure{}, fmt.Errorf("invalid departure id")
	}
	return scanDeparture(r.db().QueryRow(`SELECT `+departureColumns+` FROM departures WHERE id=? LIMIT 1`, id))
}

func (r DepartureRepository) ListByCircuit(circuitID int64) ([]models.Departure, error) {
	if circuitID <= 0 {
		return nil, fmt.Errorf("invalid circuit id")
	}
	rows, err := r.db().Query(`
		SELECT `+departureColumns+`
		FROM departures
		WHERE circuit_id=?
		ORDER BY departure_date`, circuitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Departure{}
	for rows.Next() {
		d, err := scanDeparture(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DepartureRepository) Create(d models.Departure) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO departures
			(circuit_id, departure_date, return_date, room_type, price, currency,
			 status, available_spots, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,NOW(),NOW())`,
		d.CircuitID,
		d.DepartureDate,
		d.ReturnDate,
		intdb.NullIfEmpty(d.RoomType),
		d.Price,
		d.Currency,
		d.Status,
		d.AvailableSpots,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DepartureRepository) Update(d models.Departure) error {
	if d.ID <= 0 {
		return fmt.Errorf("invalid departure id")
	}
	_, err := r.db().Exec(`
		UPDATE departures
		SET departure_date=?, return_date=?, room_type=?, price=?, currency=?,
		    status=?, available_spots=?, updated_at=NOW()
		WHERE id=?`,
		d.DepartureDate,
		d.ReturnDate,
		intdb.NullIfEmpty(d.RoomType),
		d.Price,
		d.Currency,
		d.Status,
		d.AvailableSpots,
		d.ID,
	)
	return err
}

func (r DepartureRepository) Delete(id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid departure id")
	}
	_, err := r.db().Exec(`DELETE FROM departures WHERE id=?`, id)
	return err
}
