package utils

import (
	"appointment-service/internal/pkg/constvars"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate      *validator.Validate
	insuredIDExpr = regexp.MustCompile(constvars.RegexInsuredID)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("insured_id", validateInsuredID)
	validate.RegisterValidation("country_code", validateCountryCode)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

func IsValidInsuredID(insuredID string) bool {
	return insuredIDExpr.MatchString(insuredID)
}

func validateInsuredID(fl validator.FieldLevel) bool {
	return IsValidInsuredID(fl.Field().String())
}

func validateCountryCode(fl validator.FieldLevel) bool {
	return constvars.IsSupportedCountryCode(fl.Field().String())
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}
