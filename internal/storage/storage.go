package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/relic-scan/internal/validate"
)

// DefaultPath is the per-user settings file.
const DefaultPath = "~/.config/relic-scan/settings.json"

// SystemConfigPath is the optional managed config read underneath the user file.
//
//nolint:gochecknoglobals // overridden in tests
var SystemConfigPath = "/etc/relic-scan/config.yaml"

// ErrUnknownSetting is returned by Set for a key that does not exist.
var ErrUnknownSetting = errors.New("unknown setting")

// Settings are the user-tunable knobs. Durations are stored as Go duration strings.
type Settings struct {
	ScanDuration        Duration `json:"scan_duration" yaml:"scan_duration" validate:"gte=100000000,lte=60000000000"`
	RotationSensitivity float64  `json:"rotation_sensitivity" yaml:"rotation_sensitivity" validate:"finite,gt=0,lte=10"`
	WheelDebounce       Duration `json:"wheel_debounce" yaml:"wheel_debounce" validate:"gte=0,lte=5000000000"`
	WheelStep           float64  `json:"wheel_step" yaml:"wheel_step" validate:"finite,gt=0,lte=360"`
	ReducedMotion       bool     `json:"reduced_motion" yaml:"reduced_motion"`
}

// DefaultSettings returns the reference tuning.
func DefaultSettings() Settings {
	return Settings{
		ScanDuration:        Duration(2500 * time.Millisecond),
		RotationSensitivity: 0.5,
		WheelDebounce:       Duration(150 * time.Millisecond),
		WheelStep:           30,
	}
}

// Data represents the structure of the storage file.
type Data struct {
	InstallID string   `json:"install_id,omitempty" validate:"omitempty,uuid4"`
	Settings  Settings `json:"settings"`
}

// Storage handles the loading and saving of the storage file.
type Storage struct {
	Path string
	Data Data
}

// NewStorage creates a new Storage instance, layering the user file over the
// system-managed config over the defaults. A missing user file is not an error.
func NewStorage(path string) (*Storage, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}

	defaults := DefaultSettings()
	if sys, ok := readSystemManagedConfig(SystemConfigPath, defaults); ok {
		defaults = sys
	}

	s := &Storage{
		Path: expandedPath,
		Data: Data{Settings: defaults},
	}

	if err := s.load(defaults); err != nil {
		// If the file doesn't exist, we can ignore the error.
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if s.Data.InstallID == "" {
		s.Data.InstallID = uuid.NewString()
	}

	return s, nil
}

// NewOrExistingStorage returns existing storage if the file exists, or creates a new one otherwise.
// When creating a new storage, it writes the initial structure to disk immediately.
func NewOrExistingStorage(path string) (*Storage, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}

	_, statErr := os.Stat(expandedPath)
	if statErr != nil && !os.IsNotExist(statErr) {
		return nil, statErr
	}
	s, err := NewStorage(path)
	if err != nil {
		return nil, err
	}
	if os.IsNotExist(statErr) {
		// Persist the initial settings and install id to disk.
		if err := s.Save(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Load re-reads the file, healing invalid settings back to the defaults.
func (s *Storage) Load() error {
	return s.load(DefaultSettings())
}

func (s *Storage) load(defaults Settings) error {
	logrus.Debug("Loading storage file from: ", s.Path)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &s.Data); err != nil {
		return fmt.Errorf("parse %s: %w", s.Path, err)
	}

	// Validate loaded data and self-heal when possible.
	if err := validate.Struct(s.Data); err != nil {
		changed := false
		if s.Data.InstallID != "" && validate.Var(s.Data.InstallID, "uuid4") != nil {
			s.Data.InstallID = uuid.NewString()
			changed = true
		}
		if healed, ok := healSettings(s.Data.Settings, defaults); ok {
			logrus.Warn("Invalid settings found in storage; restoring defaults for invalid fields.")
			s.Data.Settings = healed
			changed = true
		}
		if changed {
			if err := s.Save(); err != nil {
				return err
			}
		}
	}
	return nil
}

// healSettings replaces each invalid field of cur with its default and
// reports whether anything changed.
func healSettings(cur, defaults Settings) (Settings, bool) {
	changed := false
	check := func(field any, tag string) bool { return validate.Var(field, tag) == nil }
	if !check(int64(cur.ScanDuration), "gte=100000000,lte=60000000000") {
		cur.ScanDuration = defaults.ScanDuration
		changed = true
	}
	if !check(cur.RotationSensitivity, "finite,gt=0,lte=10") {
		cur.RotationSensitivity = defaults.RotationSensitivity
		changed = true
	}
	if !check(int64(cur.WheelDebounce), "gte=0,lte=5000000000") {
		cur.WheelDebounce = defaults.WheelDebounce
		changed = true
	}
	if !check(cur.WheelStep, "finite,gt=0,lte=360") {
		cur.WheelStep = defaults.WheelStep
		changed = true
	}
	return cur, changed
}

// Save writes the storage data to the file.
func (s *Storage) Save() error {
	logrus.Debug("Saving storage file to: ", s.Path)
	// Ensure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.Data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.Path, data, 0o600)
}

// Reset restores the default settings and saves.
func (s *Storage) Reset() error {
	s.Data.Settings = DefaultSettings()
	return s.Save()
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// readSystemManagedConfig overlays the managed YAML config onto base. Fields
// absent from the file keep their base value; invalid files are ignored.
func readSystemManagedConfig(path string, base Settings) (Settings, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	doc := struct {
		Settings Settings `yaml:"settings"`
	}{Settings: base}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		logrus.Debugf("error reading system config: %v", err)
		return base, false
	}
	if err := validate.Struct(doc.Settings); err != nil {
		logrus.Warn("Invalid settings in system config; ignoring.")
		return base, false
	}
	return doc.Settings, true
}
