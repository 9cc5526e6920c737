package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration values.
type Validator struct {
	syntaxes []string
}

// NewValidator creates a validator accepting the given package syntaxes.
func NewValidator(syntaxes []string) *Validator {
	return &Validator{syntaxes: syntaxes}
}

// Validate checks cfg and returns every problem found, or nil.
// Empty fields are valid; defaults fill them later.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.Syntax != "" && !slices.Contains(v.syntaxes, cfg.Syntax) {
		errs = append(errs, ValidationError{
			Field:   "syntax",
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(v.syntaxes, ", "), cfg.Syntax),
		})
	}

	if cfg.Author != "" {
		if strings.TrimSpace(cfg.Author) == "" {
			errs = append(errs, ValidationError{
				Field:   "author",
				Message: "must not be blank",
			})
		} else if strings.ContainsAny(cfg.Author, "\r\n") {
			errs = append(errs, ValidationError{
				Field:   "author",
				Message: "must be a single line",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateFile parses the YAML config at path strictly and validates it.
// Unknown keys are reported as errors.
func (v *Validator) ValidateFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := v.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
