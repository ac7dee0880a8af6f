package storage

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ensigniasec/relic-scan/internal/validate"
)

// Setting keys accepted by Set.
const (
	KeyScanDuration        = "scan_duration"
	KeyRotationSensitivity = "rotation_sensitivity"
	KeyWheelDebounce       = "wheel_debounce"
	KeyWheelStep           = "wheel_step"
	KeyReducedMotion       = "reduced_motion"
)

// Keys lists the setting keys in display order.
func Keys() []string {
	return []string{KeyScanDuration, KeyRotationSensitivity, KeyWheelDebounce, KeyWheelStep, KeyReducedMotion}
}

// Get returns the string form of the setting named key.
func (s Settings) Get(key string) (string, error) {
	switch key {
	case KeyScanDuration:
		return s.ScanDuration.String(), nil
	case KeyRotationSensitivity:
		return strconv.FormatFloat(s.RotationSensitivity, 'g', -1, 64), nil
	case KeyWheelDebounce:
		return s.WheelDebounce.String(), nil
	case KeyWheelStep:
		return strconv.FormatFloat(s.WheelStep, 'g', -1, 64), nil
	case KeyReducedMotion:
		return strconv.FormatBool(s.ReducedMotion), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
}

// Set parses value into the setting named key. The result is validated as a
// whole; on error s is left unchanged.
func (s *Settings) Set(key, value string) error {
	next := *s
	switch key {
	case KeyScanDuration, KeyWheelDebounce:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == KeyScanDuration {
			next.ScanDuration = Duration(d)
		} else {
			next.WheelDebounce = Duration(d)
		}
	case KeyRotationSensitivity, KeyWheelStep:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == KeyRotationSensitivity {
			next.RotationSensitivity = f
		} else {
			next.WheelStep = f
		}
	case KeyReducedMotion:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		next.ReducedMotion = b
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
	if err := validate.Struct(next); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*s = next
	return nil
}
