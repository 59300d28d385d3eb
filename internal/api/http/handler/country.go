package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/countries-api/internal/api/http/response"
	"github.com/dtroode/countries-api/internal/logger"
	"github.com/dtroode/countries-api/internal/model"
)

const msgCountryNotFound = "Country not found"

// CountryService defines country lookups.
type CountryService interface {
	List(ctx context.Context) ([]model.Country, error)
	Search(ctx context.Context, query string) ([]model.Country, error)
	GetByID(ctx context.Context, id int64) (model.Country, error)
	GetByCode(ctx context.Context, code string) (model.Country, error)
}

type countryResource struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	PhoneCode     string    `json:"phone_code"`
	FullPhoneCode string    `json:"full_phone_code"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newCountryResource(c model.Country) countryResource {
	return countryResource{
		ID:            c.ID,
		Name:          c.Name,
		Code:          c.Code,
		PhoneCode:     c.PhoneCode,
		FullPhoneCode: "+" + c.PhoneCode,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type dataBody[T any] struct {
	Data T `json:"data"`
}

type messageBody struct {
	Message string `json:"message"`
}

// Country handles HTTP endpoints for country lookups.
type Country struct {
	countryService CountryService
	logger         *logger.Logger
}

// NewCountry creates a new Country handler.
func NewCountry(countryService CountryService, logger *logger.Logger) *Country {
	return &Country{countryService: countryService, logger: logger}
}

// List responds with all countries ordered by name.
func (h *Country) List(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countryService.List(r.Context())
	if err != nil {
		h.logger.Error("Country handler: list failed", "error", err.Error())
		handleError(w, err)
		return
	}
	h.writeCollection(w, countries)
}

// Search responds with countries whose name or code contains the query parameter.
func (h *Country) Search(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countryService.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.logger.Error("Country handler: search failed", "error", err.Error())
		handleError(w, err)
		return
	}
	h.writeCollection(w, countries)
}

// Show responds with the country identified by the id path parameter.
func (h *Country) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.JSON(w, http.StatusNotFound, messageBody{Message: msgCountryNotFound})
		return
	}

	country, err := h.countryService.GetByID(r.Context(), id)
	h.writeOne(w, country, err)
}

// ByCode responds with the country identified by the code path parameter.
func (h *Country) ByCode(w http.ResponseWriter, r *http.Request) {
	country, err := h.countryService.GetByCode(r.Context(), chi.URLParam(r, "code"))
	h.writeOne(w, country, err)
}

func (h *Country) writeOne(w http.ResponseWriter, country model.Country, err error) {
	if errors.Is(err, model.ErrNotFound) {
		response.JSON(w, http.StatusNotFound, messageBody{Message: msgCountryNotFound})
		return
	}
	if err != nil {
		h.logger.Error("Country handler: lookup failed", "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, dataBody[countryResource]{Data: newCountryResource(country)})
}

func (h *Country) writeCollection(w http.ResponseWriter, countries []model.Country) {
	out := make([]countryResource, 0, len(countries))
	for _, c := range countries {
		out = append(out, newCountryResource(c))
	}
	response.JSON(w, http.StatusOK, dataBody[[]countryResource]{Data: out})
}
