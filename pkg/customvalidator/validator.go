// pkg/customvalidator/validator.go

package customvalidator

import (
	"plantillas-system/pkg/constants"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registers the domain rules used by the DTO tags.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("talla", isSizeLabel); err != nil {
		return err
	}
	if err := v.RegisterValidation("tipo_plantilla", isTipoPlantilla); err != nil {
		return err
	}
	if err := v.RegisterValidation("estado_plantilla", isEstadoPlantilla); err != nil {
		return err
	}
	return nil
}

func isSizeLabel(fl validator.FieldLevel) bool {
	return constants.IsSizeLabel(fl.Field().String())
}

// Empty values pass; use `required` alongside when the field is mandatory.
func isTipoPlantilla(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || constants.IsTipoPlantilla(s)
}

func isEstadoPlantilla(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || constants.IsEstadoPlantilla(s)
}
