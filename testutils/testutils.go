// Package testutils provides generic test case structures and helper
// functions for error checking and temporary config file handling.
package testutils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCase represents a generic test case with an expected result of type T
// over test data of type D.
type TestCase[T any, D any] struct {
	// Name is the identifier for the test case, used for reporting purposes.
	Name string
	// Expected is the anticipated result. It should be left empty if an error is expected.
	Expected T
	// Data contains the input or configuration for the test case.
	Data D
	// Error checks the error returned by the test function, if an error is anticipated.
	Error func(*testing.T, error)
}

// F returns a test function executing the test case logic, suitable for t.Run().
// It runs f over the test data and verifies the actual result against the
// expected result, or evaluates the error condition.
func (tc TestCase[T, D]) F(f func(D) (T, error)) func(t *testing.T) {
	return func(t *testing.T) {
		actual, err := f(tc.Data)

		if tc.Error != nil {
			tc.Error(t, err)
		} else {
			require.NoError(t, err)
			require.Equal(t, tc.Expected, actual)
		}
	}
}

// ConfigTestData holds test data for loading and validating configuration from
// both YAML files and environment variables.
type ConfigTestData struct {
	// YAML file content to be tested.
	Yaml string
	// Environment variables to be used in the test.
	Env map[string]string
}

// ErrorAs returns a function that checks if the error is of a specific type T.
func ErrorAs[T error]() func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		var expected T
		require.ErrorAs(t, err, &expected)
	}
}

// ErrorContains returns a function that checks if the error message contains the expected substring.
func ErrorContains(expected string) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		require.ErrorContains(t, err, expected)
	}
}

// ErrorIs returns a function that checks if the error matches the expected error.
func ErrorIs(expected error) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		require.ErrorIs(t, err, expected)
	}
}

// WithYAMLFile creates a temporary YAML file with the provided content,
// executes f with the file and removes it afterwards.
func WithYAMLFile(t *testing.T, yaml string, f func(file *os.File)) {
	file, err := os.CreateTemp("", "*.yaml")
	require.NoError(t, err)

	defer func(name string) {
		_ = os.Remove(name)
	}(file.Name())

	_, err = file.WriteString(yaml)
	require.NoError(t, err)

	require.NoError(t, file.Close())

	f(file)
}
