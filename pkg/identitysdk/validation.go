package identitysdk

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// dateLayout is the wire format for date_of_birth.
const dateLayout = "2006-01-02"

// Validate checks a registration request before it reaches the service.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Gender, validation.In("", "female", "male", "other")),
		validation.Field(&r.Phone, validation.By(validatePhone)),
		validation.Field(&r.DateOfBirth, validation.By(validateDate)),
		validation.Field(&r.Height, validation.By(validateHeight)),
	)
}

func (r ResendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

func (r LogoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

func (r ProfileUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Gender, validation.In("", "female", "male", "other")),
		validation.Field(&r.Phone, validation.By(validatePhone)),
		validation.Field(&r.Height, validation.By(validateHeight)),
	)
}

// validatePhone accepts an empty value or a number phonenumbers can parse
// and considers valid. Numbers must carry their country code (E.164 style).
func validatePhone(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	num, err := phonenumbers.Parse(s, "")
	if err != nil {
		return errors.New("must be an international phone number")
	}
	if !phonenumbers.IsValidNumber(num) {
		return errors.New("must be a valid phone number")
	}
	return nil
}

func validateDate(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return errors.New("must be a date in YYYY-MM-DD format")
	}
	if t.After(time.Now()) {
		return errors.New("must not be in the future")
	}
	return nil
}

// validateHeight sees the dereferenced value when the pointer is set and
// nil when it is absent.
func validateHeight(value any) error {
	h, ok := value.(float64)
	if !ok {
		return nil
	}
	if h < 30 || h > 300 {
		return errors.New("must be between 30 and 300 centimetres")
	}
	return nil
}

// ParseDateOfBirth converts the wire date into a time, nil when absent.
func ParseDateOfBirth(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDateOfBirth renders a stored date back into the wire format.
func FormatDateOfBirth(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
