package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dtroode/countries-api/internal/logger"
	"github.com/dtroode/countries-api/internal/model"
)

// Country serves country lookups.
type Country struct {
	store  model.CountryStore
	logger *logger.Logger
}

func NewCountry(store model.CountryStore, logger *logger.Logger) *Country {
	return &Country{store: store, logger: logger}
}

// List returns all countries ordered by name.
func (c *Country) List(ctx context.Context) ([]model.Country, error) {
	countries, err := c.store.List(ctx)
	if err != nil {
		c.logger.Error("Country service: failed to list countries",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

// Search returns countries whose name or code contains query.
func (c *Country) Search(ctx context.Context, query string) ([]model.Country, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.List(ctx)
	}

	countries, err := c.store.Search(ctx, query)
	if err != nil {
		c.logger.Error("Country service: failed to search countries",
			"query", query,
			"error", err.Error())
		return nil, fmt.Errorf("failed to search countries: %w", err)
	}
	return countries, nil
}

// GetByID returns a country by its id.
func (c *Country) GetByID(ctx context.Context, id int64) (model.Country, error) {
	country, err := c.store.GetByID(ctx, id)
	if err != nil {
		return model.Country{}, fmt.Errorf("failed to get country by id: %w", err)
	}
	return country, nil
}

// GetByCode returns a country by its code, ignoring case.
func (c *Country) GetByCode(ctx context.Context, code string) (model.Country, error) {
	country, err := c.store.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return model.Country{}, fmt.Errorf("failed to get country by code: %w", err)
	}
	return country, nil
}
