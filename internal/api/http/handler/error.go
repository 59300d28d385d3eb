package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dtroode/countries-api/internal/api/http/response"
	"github.com/dtroode/countries-api/internal/model"
)

const (
	msgInvalidBody     = "Invalid request body"
	msgInvalidCreds    = "Invalid credentials"
	msgFederatedFailed = "Google token verification failed"
	msgInternal        = "Internal server error"
	msgUnauthenticated = "Unauthenticated - Token not provided"
)

func handleError(w http.ResponseWriter, err error) {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.JSON(w, http.StatusUnprocessableEntity, response.ValidationErrors{Errors: vErr.Fields})
	case errors.Is(err, errInvalidBody):
		response.Error(w, http.StatusBadRequest, msgInvalidBody, "")
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, msgInvalidCreds, "")
	case errors.Is(err, model.ErrFederatedLogin):
		detail := strings.TrimPrefix(err.Error(), model.ErrFederatedLogin.Error()+": ")
		response.Error(w, http.StatusUnauthorized, msgFederatedFailed, detail)
	default:
		response.Error(w, http.StatusInternalServerError, msgInternal, "")
	}
}
