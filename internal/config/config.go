package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// ClosedDayRule marks recurring dates on which the site is closed and no
// coverage applies, expressed as an RFC-5545 recurrence rule.
type ClosedDayRule struct {
	RRule  string `yaml:"rrule" validate:"required"`
	Reason string `yaml:"reason,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string          `yaml:"databaseURL" validate:"required"`
	ClosedDays  []ClosedDayRule `yaml:"closedDays,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from rosterd.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.ClosedDays {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in closedDays[%d]: %w", i, err)
		}
	}

	return nil
}

// ClosedDatesBetween expands the closed-day rules into the concrete dates
// they produce within [start, end].
func (c *Config) ClosedDatesBetween(start, end time.Time) (map[time.Time]bool, error) {
	closed := make(map[time.Time]bool)

	for i, rule := range c.ClosedDays {
		r, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in closedDays[%d]: %w", i, err)
		}
		for _, occurrence := range r.Between(start, end, true) {
			day := time.Date(occurrence.Year(), occurrence.Month(), occurrence.Day(), 0, 0, 0, 0, start.Location())
			closed[day] = true
		}
	}

	return closed, nil
}

func findConfigFile() (string, error) {
	const name = "rosterd.yaml"

	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	path := filepath.Join(home, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("no %s found in current or home directory", name)
}
