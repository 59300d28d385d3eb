package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dtroode/countries-api/internal/model"
)

// maxPasswordBytes is the longest input bcrypt hashes.
const maxPasswordBytes = 72

var (
	errInvalidBody = errors.New("invalid request body")
	errNoGuard     = errors.New("no guard in request context")
)

type registerPayload struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (p registerPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name,
			validation.Required.Error(requiredMessage("name")),
			validation.RuneLength(0, 255).Error(maxMessage("name", 255)),
		),
		validation.Field(&p.Email,
			validation.Required.Error(requiredMessage("email")),
			validation.RuneLength(0, 255).Error(maxMessage("email", 255)),
			is.Email.Error("The email field must be a valid email address."),
		),
		validation.Field(&p.Password,
			validation.Required.Error(requiredMessage("password")),
			validation.RuneLength(8, 0).Error("The password field must be at least 8 characters."),
			validation.By(maxBytes(maxPasswordBytes, fmt.Sprintf("The password field must not be greater than %d bytes.", maxPasswordBytes))),
			validation.By(stringEquals(p.PasswordConfirmation, "The password field confirmation does not match.")),
		),
	)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p loginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email,
			validation.Required.Error(requiredMessage("email")),
			is.Email.Error("The email field must be a valid email address."),
		),
		validation.Field(&p.Password,
			validation.Required.Error(requiredMessage("password")),
		),
	)
}

type googlePayload struct {
	IDToken string `json:"id_token"`
}

func (p googlePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.IDToken,
			validation.Required.Error("The id token field is required."),
		),
	)
}

func requiredMessage(field string) string {
	return fmt.Sprintf("The %s field is required.", field)
}

func maxMessage(field string, max int) string {
	return fmt.Sprintf("The %s field must not be greater than %d characters.", field, max)
}

func stringEquals(want, message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != want {
			return errors.New(message)
		}
		return nil
	}
}

func maxBytes(max int, message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if len(s) > max {
			return errors.New(message)
		}
		return nil
	}
}

// decodeAndValidate reads a JSON body into dst and validates it.
// An empty body validates as an empty payload.
// It returns errInvalidBody or a *model.ValidationError on failure.
func decodeAndValidate(r *http.Request, dst validation.Validatable) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", errInvalidBody, err)
	}
	return toValidationError(dst.Validate())
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &model.ValidationError{Fields: make(map[string][]string, len(fieldErrs))}
	for field, fieldErr := range fieldErrs {
		if fieldErr == nil {
			continue
		}
		out.Fields[field] = append(out.Fields[field], fieldErr.Error())
	}
	return out
}
