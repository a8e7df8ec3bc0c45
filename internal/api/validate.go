package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"hifiwifi/internal/services"
	"hifiwifi/internal/wifi"
)

var validate = newValidator()

var rangeMessages = map[string]string{
	"signal_dbm":      "signal_dbm must be between -100 and 0",
	"link_speed_mbps": "link_speed_mbps must be between 0 and 10000",
	"latency_ms":      "latency_ms must be between 0 and 10000",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("rating", func(fl validator.FieldLevel) bool {
		return wifi.RankOf(fl.Field().String()) != wifi.RankUnknown
	})
	return v
}

// Decode reads one JSON object from body into dst.
func Decode(body io.Reader, dst any) error {
	if body == nil {
		return invalid("Request must include JSON body", nil)
	}
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return invalid("Request must include JSON body", err)
		}
		return invalid("Invalid JSON body", err)
	}
	return nil
}

// ValidateAnalyze checks whichever form the request uses. Classified
// measurements carry no required fields; blanks render as "unknown".
func ValidateAnalyze(req AnalyzeRequest) error {
	if req.Classified() {
		if len(req.Measurements) == 0 {
			return invalid("No measurements provided", nil)
		}
		return nil
	}
	return Validate(req.RawMeasurement)
}

// Validate runs struct tags and reports failures the way clients expect:
// missing fields are listed together, anything else is an invalid value.
// The returned error is marked services.ErrValidation.
func Validate(value any) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return invalid("Invalid request", err)
	}
	missing := lo.Uniq(lo.FilterMap(fieldErrs, func(fe validator.FieldError, _ int) (string, bool) {
		return fe.Field(), fe.Tag() == "required"
	}))
	if len(missing) > 0 {
		return invalid("Missing required fields: "+strings.Join(missing, ", "), err)
	}
	return invalid("Invalid field values: "+describe(fieldErrs[0]), err)
}

func describe(fe validator.FieldError) string {
	if msg, ok := rangeMessages[fe.Field()]; ok && (fe.Tag() == "gte" || fe.Tag() == "lte") {
		return msg
	}
	if fe.Tag() == "rating" {
		return fmt.Sprintf("%s %q is not a known rating", fe.Field(), fe.Value())
	}
	return fmt.Sprintf("%s fails %s%s", fe.Field(), fe.Tag(), lo.Ternary(fe.Param() != "", "="+fe.Param(), ""))
}

// ValidationError carries the client-facing message for a rejected request.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{services.ErrValidation}
	}
	return []error{services.ErrValidation, e.Err}
}

func invalid(message string, err error) error {
	return &ValidationError{Message: message, Err: err}
}
