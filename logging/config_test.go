package logging

import (
	"testing"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfig(t *testing.T) {
	subtests := []struct {
		name     string
		opts     config.EnvOptions
		expected Config
		error    bool
	}{
		{
			name:     "empty",
			opts:     config.EnvOptions{},
			expected: Config{Output: CONSOLE},
		},
		{
			name:  "invalid-output",
			opts:  config.EnvOptions{Environment: map[string]string{"OUTPUT": "☃"}},
			error: true,
		},
		{
			name: "customized",
			opts: config.EnvOptions{Environment: map[string]string{
				"LEVEL":  zapcore.DebugLevel.String(),
				"OUTPUT": JOURNAL,
			}},
			expected: Config{Level: zapcore.DebugLevel, Output: JOURNAL},
		},
		{
			name: "options",
			opts: config.EnvOptions{Environment: map[string]string{"OPTIONS": "foo:debug,bar:info,buz:panic"}},
			expected: Config{
				Output: CONSOLE,
				Options: map[string]zapcore.Level{
					"foo": zapcore.DebugLevel,
					"bar": zapcore.InfoLevel,
					"buz": zapcore.PanicLevel,
				},
			},
		},
		{
			name:  "options-invalid-level",
			opts:  config.EnvOptions{Environment: map[string]string{"OPTIONS": "foo:shout"}},
			error: true,
		},
		{
			name:  "options-missing-colon",
			opts:  config.EnvOptions{Environment: map[string]string{"OPTIONS": "foo"}},
			error: true,
		},
	}

	for _, test := range subtests {
		t.Run(test.name, func(t *testing.T) {
			var out Config
			if err := config.FromEnv(&out, test.opts); test.error {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, test.expected, out)
			}
		})
	}
}
