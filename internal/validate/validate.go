package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/scan/models.go
//   type Metrics struct {
//       Authenticity float64 `json:"authenticity" validate:"finite,min=0,max=100"`
//       ...
//   }
//
// On top of the built-in tags it registers "finite", which rejects NaN and ±Inf
// float values that min/max comparisons silently let through.

import (
	"math"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is a shared validator for the application.
// It is initialized once and reused to avoid repeated allocations.
//
//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		// Registration only fails on an empty tag or nil func.
		_ = validatorInst.RegisterValidation("finite", isFinite)
	})
	return validatorInst
}

// isFinite accepts any non-float field and floats that are neither NaN nor infinite.
func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() { //nolint:exhaustive // only float kinds need checking
	case reflect.Float32, reflect.Float64:
		v := f.Float()
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	default:
		return true
	}
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}
