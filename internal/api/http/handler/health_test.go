package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/countries-api/internal/mocks"
	"github.com/dtroode/countries-api/internal/testutil"
)

func TestHealth_Check(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		db := mocks.NewPinger(t)
		db.On("Ping", mock.Anything).Return(nil)

		rec := httptest.NewRecorder()
		NewHealth(db, testutil.MakeNoopLogger()).Check(rec, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		db := mocks.NewPinger(t)
		db.On("Ping", mock.Anything).Return(errors.New("connection refused"))

		rec := httptest.NewRecorder()
		NewHealth(db, testutil.MakeNoopLogger()).Check(rec, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
