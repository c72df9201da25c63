package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "agencyportal/internal/config"
	"agencyportal/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByEmail returns the user plus its password hash for login checks.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.User{}, "", fmt.Errorf("empty email")
	}

	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id,
		       COALESCE(name,''),
		       COALESCE(email,''),
		       COALESCE(password_hash,''),
		       COALESCE(role,'agency'),
		       COALESCE(agency_id,0),
		       COALESCE(status,'active')
		FROM users
		WHERE email=? LIMIT 1`, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&hash,
		&u.Role,
		&u.AgencyID,
		&u.Status,
	)
	return u, hash, err
}

func (r UserRepository) EmailExists(email string) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email=?`,
		strings.ToLower(strings.TrimSpace(email))).Scan(&n)
	return n > 0, err
}

func (r UserRepository) Create(u models.User, passwordHash string) (int64, error) {
	var agencyID any
	if u.AgencyID > 0 {
		agencyID = u.AgencyID
	}
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, password_hash, role, agency_id, status, created_at, updated_at)
		VALUES (?,?,?,?,?,?,NOW(),NOW())`,
		u.Name,
		strings.ToLower(strings.TrimSpace(u.Email)),
		passwordHash,
		u.Role,
		agencyID,
		u.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
