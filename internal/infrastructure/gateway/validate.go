package gateway

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/DanielPopoola/mollie-ideal/internal/domain"
)

var validate = newValidator()

// requestFields maps NewOrderRequest fields to the parameter they end up in.
var requestFields = map[string]string{
	"Amount":      ParamAmount,
	"Description": ParamDescription,
	"BankID":      ParamBankID,
	"ReturnURL":   ParamReturnURL,
	"ReportURL":   ParamReportURL,
}

// newValidator reports fields by their XML element name so parse errors
// point at the response, not at our DTOs.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("xml"), ",", 2)[0]
		if name == "" || name == "-" {
			if param, ok := requestFields[fld.Name]; ok {
				return param
			}
			return fld.Name
		}
		return name
	})
	return v
}

func firstFieldError(err error) (validator.FieldError, bool) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldErrs[0], true
	}
	return nil, false
}

func toValidationError(err error) error {
	fe, ok := firstFieldError(err)
	if !ok {
		return err
	}
	return &domain.ValidationError{
		Field:   fe.Field(),
		Message: fmt.Sprintf("failed %q check", fe.Tag()),
	}
}

func toParseError(operation string, err error) error {
	fe, ok := firstFieldError(err)
	if !ok {
		return &domain.ParseError{Operation: operation, Err: err}
	}
	msg := "is required"
	if fe.Tag() != "required" {
		msg = fmt.Sprintf("failed %q check with value %q", fe.Tag(), fmt.Sprint(fe.Value()))
	}
	return &domain.ParseError{
		Operation: operation,
		Field:     fe.Field(),
		Err:       errors.New(msg),
	}
}
