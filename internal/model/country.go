package model

import (
	"context"
	"time"
)

// CountryStore defines read operations for countries.
type CountryStore interface {
	List(ctx context.Context) ([]Country, error)
	Search(ctx context.Context, query string) ([]Country, error)
	GetByID(ctx context.Context, id int64) (Country, error)
	GetByCode(ctx context.Context, code string) (Country, error)
}

// Country is a country reference record.
type Country struct {
	ID        int64
	Name      string
	Code      string
	PhoneCode string
	CreatedAt time.Time
	UpdatedAt time.Time
}
