package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/countries-api/internal/model"
)

var _ model.CountryStore = (*CountryRepository)(nil)

const countryColumns = `id, name, code, phone_code, created_at, updated_at`

type CountryRepository struct {
	db *Connection
}

func NewCountryRepository(db *Connection) *CountryRepository {
	return &CountryRepository{
		db: db,
	}
}

func (r *CountryRepository) List(ctx context.Context) ([]model.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}

	countries, err := pgx.CollectRows(rows, collectCountry)
	if err != nil {
		return nil, fmt.Errorf("failed to scan countries: %w", err)
	}

	return countries, nil
}

// Search matches query as a case-insensitive substring of the name or code.
func (r *CountryRepository) Search(ctx context.Context, query string) ([]model.Country, error) {
	sql := `SELECT ` + countryColumns + ` FROM countries
			WHERE name ILIKE $1 OR code ILIKE $1
			ORDER BY name`

	rows, err := r.db.Query(ctx, sql, "%"+escapeLike(query)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search countries: %w", err)
	}

	countries, err := pgx.CollectRows(rows, collectCountry)
	if err != nil {
		return nil, fmt.Errorf("failed to scan countries: %w", err)
	}

	return countries, nil
}

func (r *CountryRepository) GetByID(ctx context.Context, id int64) (model.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE id = $1`

	country, err := scanCountry(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Country{}, model.ErrNotFound
		}
		return model.Country{}, fmt.Errorf("failed to get country by id: %w", err)
	}

	return country, nil
}

func (r *CountryRepository) GetByCode(ctx context.Context, code string) (model.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE upper(code) = upper($1)`

	country, err := scanCountry(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Country{}, model.ErrNotFound
		}
		return model.Country{}, fmt.Errorf("failed to get country by code: %w", err)
	}

	return country, nil
}

func collectCountry(row pgx.CollectableRow) (model.Country, error) {
	return scanCountry(row)
}

func scanCountry(row pgx.Row) (model.Country, error) {
	var c model.Country
	err := row.Scan(&c.ID, &c.Name, &c.Code, &c.PhoneCode, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
