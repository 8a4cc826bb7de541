package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/pkg/rut"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// los errores nombran el campo como viaja en el JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// gte/lte sobre montos
	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("rut", func(fl validator.FieldLevel) bool {
		return rut.Validate(fl.Field().String()) == nil
	})
	return v
}

// Validate aplica las etiquetas `validate` de un request. Los errores envuelven
// domain.ErrInvalidInput con el primer campo que falla.
func Validate(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, fe.Field())
	case "min", "max":
		if fe.Kind() != reflect.String {
			return fmt.Errorf("%w: %s fuera de rango (%s=%s)", domain.ErrInvalidInput, fe.Field(), fe.Tag(), fe.Param())
		}
		if fe.Tag() == "min" {
			return fmt.Errorf("%w: %s debe tener al menos %s caracteres", domain.ErrInvalidInput, fe.Field(), fe.Param())
		}
		return fmt.Errorf("%w: %s admite como máximo %s caracteres", domain.ErrInvalidInput, fe.Field(), fe.Param())
	case "oneof":
		return fmt.Errorf("%w: %s debe ser uno de [%s]", domain.ErrInvalidInput, fe.Field(), fe.Param())
	case "rut":
		return fmt.Errorf("%w: %s no es un RUT válido", domain.ErrInvalidInput, fe.Field())
	default:
		return fmt.Errorf("%w: %s no cumple %q", domain.ErrInvalidInput, fe.Field(), fe.Tag())
	}
}
