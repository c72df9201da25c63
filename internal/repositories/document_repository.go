package repositories

import (
	"database/sql"
	"fmt"

	intconfig "agencyportal/internal/config"
	intdb "agencyportal/internal/db"
	"agencyportal/internal/domain/models"
)

type DocumentRepository struct {
	DB *sql.DB
}

func (r DocumentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const documentColumns = `id,
       COALESCE(booking_id,0),
       COALESCE(document_type,''),
       COALESCE(file_name,''),
       COALESCE(storage_key,''),
       COALESCE(content_type,''),
       COALESCE(size_bytes,0),
       COALESCE(notes,''),
       COALESCE(visible_to_agency,0),
       COALESCE(uploaded_by,0),
       COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),'')`

func scanDocument(row interface{ Scan(...any) error }) (models.Document, error) {
	var d models.Document
	err := row.Scan(
		&d.ID,
		&d.BookingID,
		&d.DocumentType,
		&d.FileName,
		&d.StorageKey,
		&d.ContentType,
		&d.SizeBytes,
		&d.Notes,
		&d.VisibleToAgency,
		&d.UploadedBy,
		&d.CreatedAt,
	)
	return d, err
}

func (r DocumentRepository) GetByID(id int64) (models.Document, error) {
	if id <= 0 {
		return models.Document{}, fmt.Errorf("invalid document id")
	}
	return scanDocument(r.db().QueryRow(`SELECT `+documentColumns+` FROM documents WHERE id=? LIMIT 1`, id))
}

// ListByBooking returns a booking's documents; visibleOnly restricts to the
// agency-visible subset.
func (r DocumentRepository) ListByBooking(bookingID int64, visibleOnly bool) ([]models.Document, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("invalid booking id")
	}
	query := `SELECT ` + documentColumns + ` FROM documents WHERE booking_id=?`
	if visibleOnly {
		query += ` AND visible_to_agency=1`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db().Query(query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DocumentRepository) Create(d models.Document) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO documents
			(booking_id, document_type, file_name, storage_key, content_type,
			 size_bytes, notes, visible_to_agency, uploaded_by, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,NOW())`,
		d.BookingID,
		d.DocumentType,
		d.FileName,
		d.StorageKey,
		intdb.NullIfEmpty(d.ContentType),
		d.SizeBytes,
		intdb.NullIfEmpty(d.Notes),
		d.VisibleToAgency,
		d.UploadedBy,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DocumentRepository) Delete(id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("invalid document id")
	}
	res, err := r.db().Exec(`DELETE FROM documents WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
