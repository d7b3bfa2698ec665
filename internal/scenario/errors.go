package scenario

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks every scenario validation failure.
var ErrConfiguration = errors.New("invalid scenario configuration")

// ConfigError describes one invalid scenario field.
type ConfigError struct {
	Scenario string
	Field    string
	Reason   string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("scenario %q: %s", e.Scenario, e.Reason)
	}
	return fmt.Sprintf("scenario %q: %s: %s", e.Scenario, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}
