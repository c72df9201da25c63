package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "agencyportal/internal/config"
	intdb "agencyportal/internal/db"
	"agencyportal/internal/domain/models"
)

type AgencyRepository struct {
	DB *sql.DB
}

func (r AgencyRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const agencyColumns = `id,
       COALESCE(company_name,''),
       COALESCE(legal_name,''),
       COALESCE(tax_id,''),
       COALESCE(billing_address,''),
       COALESCE(contact_person,''),
       COALESCE(email,''),
       COALESCE(phone,''),
       COALESCE(commission_rate,0),
       COALESCE(status,'pending'),
       COALESCE(admin_notes,''),
       COALESCE(DATE_FORMAT(approved_at,'%Y-%m-%d %H:%i:%s'),''),
       COALESCE(approved_by,0),
       COALESCE(DATE_FORMAT(suspended_at,'%Y-%m-%d %H:%i:%s'),''),
       COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),''),
       COALESCE(DATE_FORMAT(updated_at,'%Y-%m-%d %H:%i:%s'),'')`

func scanAgency(row interface{ Scan(...any) error }) (models.Agency, error) {
	var a models.Agency
	err := row.Scan(
		&a.ID,
		&a.CompanyName,
		&a.LegalName,
		&a.TaxID,
		&a.BillingAddress,
		&a.ContactPerson,
		&a.Email,
		&a.Phone,
		&a.CommissionRate,
		&a.Status,
		&a.AdminNotes,
		&a.ApprovedAt,
		&a.ApprovedBy,
		&a.SuspendedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func (r AgencyRepository) GetByID(id int64) (models.Agency, error) {
	if id <= 0 {
		return models.Agency{}, fmt.Errorf("invalid agency id")
	}
	row := r.db().QueryRow(`SELECT `+agencyColumns+` FROM agencies WHERE id=? LIMIT 1`, id)
	a, err := scanAgency(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Agency{}, sql.ErrNoRows
	}
	return a, err
}

// ListWithStats returns agencies optionally filtered by status, each row
// enriched with booking counts and the commission earned on approved
// bookings (total_price x commission_rate / 100).
func (r AgencyRepository) ListWithStats(statusFilter string) ([]models.AgencyStats, error) {
	statusFilter = strings.ToLower(strings.TrimSpace(statusFilter))
	if statusFilter == "" {
		statusFilter = "all"
	}

	query := `
		SELECT a.id,
		       COALESCE(a.company_name,''),
		       COALESCE(a.contact_person,''),
		       COALESCE(a.email,''),
		       COALESCE(a.phone,''),
		       COALESCE(a.commission_rate,0),
		       COALESCE(a.status,'pending'),
		       COALESCE(DATE_FORMAT(a.created_at,'%Y-%m-%d %H:%i:%s'),''),
		       COUNT(b.id),
		       COALESCE(SUM(b.status='pending'),0),
		       COALESCE(SUM(CASE WHEN b.status='approved' THEN b.total_price * a.commission_rate / 100 ELSE 0 END),0)
		FROM agencies a
		LEFT JOIN pre_bookings b ON b.agency_id = a.id
		WHERE (? = 'all' OR a.status = ?)
		GROUP BY a.id
		ORDER BY a.company_name`

	rows, err := r.db().Query(query, statusFilter, statusFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.AgencyStats{}
	for rows.Next() {
		var s models.AgencyStats
		if err := rows.Scan(
			&s.ID,
			&s.CompanyName,
			&s.ContactPerson,
			&s.Email,
			&s.Phone,
			&s.CommissionRate,
			&s.Status,
			&s.CreatedAt,
			&s.TotalBookings,
			&s.PendingBookings,
			&s.TotalCommission,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r AgencyRepository) Create(a models.Agency) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO agencies
			(company_name, legal_name, tax_id, billing_address, contact_person, email, phone,
			 commission_rate, status, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		a.CompanyName,
		intdb.NullIfEmpty(a.LegalName),
		intdb.NullIfEmpty(a.TaxID),
		intdb.NullIfEmpty(a.BillingAddress),
		a.ContactPerson,
		a.Email,
		a.Phone,
		a.CommissionRate,
		a.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update patches the fields present on u; nil pointers are left untouched.
func (r AgencyRepository) Update(id int64, u models.AgencyUpdate) error {
	if id <= 0 {
		return fmt.Errorf("invalid agency id")
	}

	sets := []string{}
	args := []any{}
	set := func(col string, v any) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}

	if u.CompanyName != nil {
		set("company_name", strings.TrimSpace(*u.CompanyName))
	}
	if u.LegalName != nil {
		set("legal_name", intdb.NullIfEmpty(strings.TrimSpace(*u.LegalName)))
	}
	if u.TaxID != nil {
		set("tax_id", intdb.NullIfEmpty(strings.TrimSpace(*u.TaxID)))
	}
	if u.BillingAddress != nil {
		set("billing_address", intdb.NullIfEmpty(strings.TrimSpace(*u.BillingAddress)))
	}
	if u.ContactPerson != nil {
		set("contact_person", strings.TrimSpace(*u.ContactPerson))
	}
	if u.Phone != nil {
		set("phone", strings.TrimSpace(*u.Phone))
	}
	if u.AdminNotes != nil {
		set("admin_notes", intdb.NullIfEmpty(strings.TrimSpace(*u.AdminNotes)))
	}
	if u.CommissionRate != nil {
		set("commission_rate", *u.CommissionRate)
	}

	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE agencies SET `+strings.Join(sets, ",")+`, updated_at=NOW() WHERE id=?`, args...)
	return err
}

// Activate sets status=active and clears any suspension. The first
// activation stamps approved_at/approved_by; re-activating keeps the
// original approval stamp.
func (r AgencyRepository) Activate(id, adminID int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid agency id")
	}
	_, err := r.db().Exec(`
		UPDATE agencies
		SET status=?,
		    suspended_at=NULL,
		    approved_at=COALESCE(approved_at, NOW()),
		    approved_by=COALESCE(approved_by, ?),
		    updated_at=NOW()
		WHERE id=?`,
		models.AgencyActive, adminID, id)
	return err
}

// Suspend sets status=suspended and stamps suspended_at.
func (r AgencyRepository) Suspend(id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid agency id")
	}
	_, err := r.db().Exec(`
		UPDATE agencies
		SET status=?, suspended_at=NOW(), updated_at=NOW()
		WHERE id=?`,
		models.AgencySuspended, id)
	return err
}
