package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	intconfig "agencyportal/internal/config"
	intdb "agencyportal/internal/db"
	"agencyportal/internal/domain/models"
)

type CircuitRepository struct {
	DB *sql.DB
}

func (r CircuitRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const circuitColumns = `id,
       COALESCE(slug,''),
       COALESCE(name,''),
       COALESCE(continent,''),
       COALESCE(description,''),
       COALESCE(duration_days,0),
       COALESCE(base_price,0),
       COALESCE(currency,'EUR'),
       COALESCE(price_options,'[]'),
       COALESCE(gallery,'[]'),
       COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),''),
       COALESCE(DATE_FORMAT(updated_at,'%Y-%m-%d %H:%i:%s'),'')`

func scanCircuit(row interface{ Scan(...any) error }) (models.Circuit, error) {
	var (
		c          models.Circuit
		rawOptions string
		rawGallery string
	)
	err := row.Scan(
		&c.ID,
		&c.Slug,
		&c.Name,
		&c.Continent,
		&c.Description,
		&c.DurationDays,
		&c.BasePrice,
		&c.Currency,
		&rawOptions,
		&rawGallery,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	// tolerate malformed catalog JSON instead of failing the whole list
	if err := json.Unmarshal([]byte(rawOptions), &c.PriceOptions); err != nil {
		c.PriceOptions = nil
	}
	if err := json.Unmarshal([]byte(rawGallery), &c.Gallery); err != nil {
		c.Gallery = nil
	}
	return c, nil
}

func (r CircuitRepository) List(continent string) ([]models.Circuit, error) {
	continent = strings.TrimSpace(continent)
	query := `SELECT ` + circuitColumns + ` FROM circuits`
	args := []any{}
	if continent != "" && !strings.EqualFold(continent, "all") {
		query += ` WHERE continent=?`
		args = append(args, continent)
	}
	query += ` ORDER BY name`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Circuit{}
	for rows.Next() {
		c, err := scanCircuit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CircuitRepository) GetByID(id int64) (models.Circuit, error) {
	if id <= 0 {
		return models.Circuit{}, fmt.Errorf("invalid circuit id")
	}
	return scanCircuit(r.db().QueryRow(`SELECT `+circuitColumns+` FROM circuits WHERE id=? LIMIT 1`, id))
}

func (r CircuitRepository) GetBySlug(slug string) (models.Circuit, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return models.Circuit{}, fmt.Errorf("empty slug")
	}
	return scanCircuit(r.db().QueryRow(`SELECT `+circuitColumns+` FROM circuits WHERE slug=? LIMIT 1`, slug))
}

func (r CircuitRepository) Create(c models.Circuit) (int64, error) {
	options, err := json.Marshal(c.PriceOptions)
	if err != nil {
		return 0, err
	}
	gallery, err := json.Marshal(c.Gallery)
	if err != nil {
		return 0, err
	}
	res, err := r.db().Exec(`
		INSERT INTO circuits
			(slug, name, continent, description, duration_days, base_price, currency,
			 price_options, gallery, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		c.Slug,
		c.Name,
		c.Continent,
		intdb.NullIfEmpty(c.Description),
		c.DurationDays,
		c.BasePrice,
		c.Currency,
		string(options),
		string(gallery),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r CircuitRepository) Update(c models.Circuit) error {
	if c.ID <= 0 {
		return fmt.Errorf("invalid circuit id")
	}
	options, err := json.Marshal(c.PriceOptions)
	if err != nil {
		return err
	}
	gallery, err := json.Marshal(c.Gallery)
	if err != nil {
		return err
	}
	_, err = r.db().Exec(`
		UPDATE circuits
		SET slug=?, name=?, continent=?, description=?, duration_days=?,
		    base_price=?, currency=?, price_options=?, gallery=?, updated_at=NOW()
		WHERE id=?`,
		c.Slug,
		c.Name,
		c.Continent,
		intdb.NullIfEmpty(c.Description),
		c.DurationDays,
		c.BasePrice,
		c.Currency,
		string(options),
		string(gallery),
		c.ID,
	)
	return err
}

func (r CircuitRepository) Delete(id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid circuit id")
	}
	_, err := r.db().Exec(`DELETE FROM circuits WHERE id=?`, id)
	return err
}
