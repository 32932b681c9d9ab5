// Package config provides utilities for configuration parsing and loading.
// It includes functionality for handling command-line flags and
// loading configuration from YAML files and environment variables,
// with additional support for setting default values and validation.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// ErrInvalidArgument is the error returned by any function that loads configuration if
// the parsing result cannot be stored in the value pointed to by the specified argument,
// which must be a non-nil struct pointer.
var ErrInvalidArgument = stderrors.New("invalid argument")

// ErrInvalidConfiguration is attached to errors returned by any function that loads configuration when
// the configuration is invalid, i.e. if the Validate method of the provided [Validator] returns an error,
// which is then propagated by these functions.
var ErrInvalidConfiguration = stderrors.New("invalid configuration")

// FromYAMLFile parses the given YAML file and stores the result
// in the value pointed to by v. If v is nil or not a struct pointer,
// FromYAMLFile returns an [ErrInvalidArgument] error.
//
// It is possible to define default values via the struct tag `default`.
//
// The configuration is validated using the Validate method of the provided
// [Validator]; any error from Validate is propagated with
// [ErrInvalidConfiguration] attached.
func FromYAMLFile(name string, v Validator) error {
	if err := validateNonNilStructPointer(v); err != nil {
		return errors.WithStack(err)
	}

	// #nosec G304 -- Accept user-controlled input for config file.
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "can't open YAML file "+name)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	if err := defaults.Set(v); err != nil {
		return errors.Wrap(err, "can't set config defaults")
	}

	d := yaml.NewDecoder(f, yaml.DisallowUnknownField())
	if err := d.Decode(v); err != nil {
		// Pretty-printing must be requested explicitly via yaml.FormatError,
		// it does not happen on the error's own Error method.
		err = errors.New(yaml.FormatError(err, true, true))
		return errors.Wrap(err, "can't parse YAML file "+name)
	}

	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.WithStack(err))
	}

	return nil
}

// EnvOptions is a type alias for [env.Options], so that only this package needs to import [env].
type EnvOptions = env.Options

// FromEnv parses environment variables and stores the result in the value pointed to by v.
// If v is nil or not a struct pointer, FromEnv returns an [ErrInvalidArgument] error.
//
// It is possible to define default values via the struct tag `default`.
//
// The configuration is validated using the Validate method of the provided
// [Validator]; any error from Validate is propagated with
// [ErrInvalidConfiguration] attached.
func FromEnv(v Validator, options EnvOptions) error {
	if err := validateNonNilStructPointer(v); err != nil {
		return errors.WithStack(err)
	}

	if err := defaults.Set(v); err != nil {
		return errors.Wrap(err, "can't set config defaults")
	}

	if err := env.ParseWithOptions(v, options); err != nil {
		return errors.Wrap(err, "can't parse environment variables")
	}

	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.WithStack(err))
	}

	return nil
}

// Flags provides access to specific command line flag values.
type Flags interface {
	// GetConfigPath returns the path to the config file.
	GetConfigPath() string

	// IsExplicitConfigPath indicates whether the config file path was set explicitly.
	IsExplicitConfigPath() bool
}

// LoadOptions contains options for loading configuration from both files and environment variables.
type LoadOptions struct {
	// Flags provides access to specific command line flag values.
	Flags Flags

	// EnvOptions contains options for loading configuration from environment variables.
	EnvOptions EnvOptions
}

// Load loads configuration from both YAML files and environment variables and
// stores the result in the value pointed to by v. If v is nil or not a struct pointer,
// Load returns an [ErrInvalidArgument] error.
//
// Configuration is loaded exclusively from the YAML file when no applicable
// environment variables are set, environment variables may supplement or
// override incomplete YAML data, and environment variables serve as the sole
// source if the default YAML config file is missing and no explicit config
// path was provided.
func Load(v Validator, options LoadOptions) error {
	if err := validateNonNilStructPointer(v); err != nil {
		return errors.WithStack(err)
	}

	var configFileIsDefaultAndDoesNotExist bool

	if err := FromYAMLFile(options.Flags.GetConfigPath(), v); err != nil {
		// Allow continuation with FromEnv if the configuration is merely incomplete
		// (it is revalidated there) or if only the default config file is missing.
		configIsInvalid := errors.Is(err, ErrInvalidConfiguration)
		configFileIsDefaultAndDoesNotExist = errors.Is(err, fs.ErrNotExist) && !options.Flags.IsExplicitConfigPath()
		if !(configIsInvalid || configFileIsDefaultAndDoesNotExist) {
			return errors.WithStack(err)
		}
	}

	// FromEnv runs regardless of the FromYAMLFile outcome and includes validation,
	// ensuring completeness after considering both sources.
	if err := FromEnv(v, options.EnvOptions); err != nil {
		if configFileIsDefaultAndDoesNotExist {
			return stderrors.Join(
				errors.WithStack(err),
				fmt.Errorf(
					"default config file %s does not exist but can be ignored if"+
						" the configuration is intended to be entirely provided via environment variables",
					options.Flags.GetConfigPath(),
				),
			)
		}

		return errors.WithStack(err)
	}

	return nil
}

// ParseFlags parses CLI flags and stores the result
// in the value pointed to by v. If v is nil or not a struct pointer,
// ParseFlags returns an [ErrInvalidArgument] error.
//
// ParseFlags adds a default Help Options group containing -h and --help.
// If either option is specified on the command line,
// ParseFlags prints the help message to [os.Stdout] and exits.
//
// Note that errors are not printed automatically,
// so error handling is the sole responsibility of the caller.
func ParseFlags(v any) error {
	if err := validateNonNilStructPointer(v); err != nil {
		return errors.WithStack(err)
	}

	parser := flags.NewParser(v, flags.Default^flags.PrintErrors)

	if _, err := parser.Parse(); err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && errors.Is(flagErr.Type, flags.ErrHelp) {
			_, _ = fmt.Fprintln(os.Stdout, flagErr)
			os.Exit(0)
		}

		return errors.Wrap(err, "can't parse CLI flags")
	}

	return nil
}

// validateNonNilStructPointer checks if the provided value is a non-nil pointer to a struct.
// It returns an error if the value is not a pointer, is nil, or does not point to a struct.
func validateNonNilStructPointer(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errors.Wrapf(ErrInvalidArgument, "non-nil struct pointer expected, got %T", v)
	}

	return nil
}

// LoadSecretFile populates the secret field from the content of a secret file.
//
// This is a helper to be used in Validator.Validate implementations on types where
// both a secret and a secret file field are available, e.g. webhook URLs.
// If both a secret and a secret file are given, an error is returned.
func LoadSecretFile(secret *string, secretFile string) error {
	if *secret != "" && secretFile != "" {
		return errors.New("both secret and secret file are set")
	}

	if secretFile == "" {
		return nil
	}

	fileSecret, err := os.ReadFile(secretFile) // #nosec G304 -- open trusted user input
	if err != nil {
		return errors.Wrapf(err, "reading secret file %q failed", secretFile)
	}
	*secret = strings.TrimSpace(string(fileSecret))

	return nil
}
