package config

import (
	"gopkg.in/validator.v2"

	"github.com/motioncore/fibersync/internal/stress"
)

func newValidator() *validator.Validator {
	validate := validator.NewValidator()
	_ = validate.SetValidationFunc("stress_scenarios", validateStressScenarios)
	return validate
}

func validateStressScenarios(v any, param string) error {
	names, ok := v.([]string)
	if !ok {
		return validator.ErrUnsupported
	}
	for _, name := range names {
		if !stress.KnownScenario(name) {
			return validator.ErrInvalid
		}
	}
	return nil
}
