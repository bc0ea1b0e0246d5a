package config

import (
	"fmt"
	"os"

	"solarsmart/internal/model"

	"gopkg.in/yaml.v3"
)

// SettingsFile is the on-disk shape of the business settings defaults (YAML).
type SettingsFile struct {
	Settings model.Settings `yaml:"settings"`
}

// LoadSettings reads a settings file, fills anything it leaves out from the
// built-in defaults and validates the result. An empty path yields the defaults.
func LoadSettings(path string) (model.Settings, error) {
	if path == "" {
		return model.DefaultSettings(), nil
	}
	partial, err := LoadSettingsUnchecked(path)
	if err != nil {
		return model.Settings{}, err
	}
	s := MergeSettings(model.DefaultSettings(), partial)
	if err := s.Validate(); err != nil {
		return model.Settings{}, fmt.Errorf("settings file %s: %w", path, err)
	}
	return s, nil
}

// LoadSettingsUnchecked loads the file as written, without defaults or validation.
func LoadSettingsUnchecked(path string) (model.Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Settings{}, err
	}
	var f SettingsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return model.Settings{}, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return f.Settings, nil
}

// MergeSettings overlays non-zero fields from override onto base.
// Stored admin settings are merged over defaults this way, so a partially
// saved record never produces a zero price or wattage.
func MergeSettings(base, override model.Settings) model.Settings {
	out := base
	if override.UsdRate != 0 {
		out.UsdRate = override.UsdRate
	}
	if override.ElectricityPrice != 0 {
		out.ElectricityPrice = override.ElectricityPrice
	}
	if override.PanelWattage != 0 {
		out.PanelWattage = override.PanelWattage
	}
	if override.SystemCostPerKw != 0 {
		out.SystemCostPerKw = override.SystemCostPerKw
	}
	return out
}
