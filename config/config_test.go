package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/testutils"
	"github.com/stretchr/testify/require"
)

type simpleValidator struct {
	Foo int `yaml:"foo" env:"FOO"`
}

func (sv simpleValidator) Validate() error {
	if sv.Foo == 42 {
		return nil
	} else {
		return errors.New("invalid value")
	}
}

type nonStructValidator int

func (nonStructValidator) Validate() error {
	return nil
}

type defaultValidator struct {
	Foo int `yaml:"foo" env:"FOO" default:"42"`
}

func (defaultValidator) Validate() error {
	return nil
}

type prefixValidator struct {
	Nested simpleValidator `yaml:"nested" envPrefix:"PREFIX_"`
}

func (prefixValidator) Validate() error {
	return nil
}

func TestFromEnv(t *testing.T) {
	subtests := []struct {
		name  string
		opts  EnvOptions
		io    Validator
		error bool
	}{
		{name: "nil", error: true},
		{name: "nonptr", io: simpleValidator{}, error: true},
		{name: "nilptr", io: (*simpleValidator)(nil), error: true},
		{name: "defaulterr", io: new(nonStructValidator), error: true},
		{
			name:  "parseeerr",
			opts:  EnvOptions{Environment: map[string]string{"FOO": "bar"}},
			io:    &simpleValidator{},
			error: true,
		},
		{
			name:  "invalid",
			opts:  EnvOptions{Environment: map[string]string{"FOO": "23"}},
			io:    &simpleValidator{},
			error: true,
		},
		{name: "simple", opts: EnvOptions{Environment: map[string]string{"FOO": "42"}}, io: &simpleValidator{42}},
		{name: "default", io: &defaultValidator{42}},
		{name: "override", opts: EnvOptions{Environment: map[string]string{"FOO": "23"}}, io: &defaultValidator{23}},
		{
			name: "prefix",
			opts: EnvOptions{Environment: map[string]string{"PREFIX_FOO": "42"}, Prefix: "PREFIX_"},
			io:   &simpleValidator{42},
		},
		{
			name: "nested",
			opts: EnvOptions{Environment: map[string]string{"PREFIX_FOO": "42"}},
			io:   &prefixValidator{simpleValidator{42}},
		},
	}

	for _, st := range subtests {
		t.Run(st.name, func(t *testing.T) {
			var actual Validator
			if vActual := reflect.ValueOf(st.io); vActual != (reflect.Value{}) {
				if vActual.Kind() == reflect.Ptr && !vActual.IsNil() {
					vActual = reflect.New(vActual.Type().Elem())
				}

				actual = vActual.Interface().(Validator)
			}

			if err := FromEnv(actual, st.opts); st.error {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, st.io, actual)
			}
		})
	}
}

func TestFromYAMLFile(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		testutils.WithYAMLFile(t, "foo: 42", func(file *os.File) {
			var actual simpleValidator
			require.NoError(t, FromYAMLFile(file.Name(), &actual))
			require.Equal(t, simpleValidator{42}, actual)
		})
	})

	t.Run("default", func(t *testing.T) {
		testutils.WithYAMLFile(t, "{}", func(file *os.File) {
			var actual defaultValidator
			require.NoError(t, FromYAMLFile(file.Name(), &actual))
			require.Equal(t, defaultValidator{42}, actual)
		})
	})

	t.Run("invalid", func(t *testing.T) {
		testutils.WithYAMLFile(t, "foo: 23", func(file *os.File) {
			var actual simpleValidator
			err := FromYAMLFile(file.Name(), &actual)
			require.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	})

	t.Run("unknownfield", func(t *testing.T) {
		testutils.WithYAMLFile(t, "foo: 42\nbar: 1", func(file *os.File) {
			var actual simpleValidator
			require.Error(t, FromYAMLFile(file.Name(), &actual))
		})
	})

	t.Run("missingfile", func(t *testing.T) {
		var actual simpleValidator
		require.Error(t, FromYAMLFile(filepath.Join(t.TempDir(), "nonexistent.yml"), &actual))
	})

	t.Run("nilptr", func(t *testing.T) {
		require.ErrorIs(t, FromYAMLFile("irrelevant", (*simpleValidator)(nil)), ErrInvalidArgument)
	})
}

type testFlags struct {
	path     string
	explicit bool
}

func (f testFlags) GetConfigPath() string      { return f.path }
func (f testFlags) IsExplicitConfigPath() bool { return f.explicit }

func TestLoad(t *testing.T) {
	t.Run("fileonly", func(t *testing.T) {
		testutils.WithYAMLFile(t, "foo: 42", func(file *os.File) {
			var actual simpleValidator
			require.NoError(t, Load(&actual, LoadOptions{Flags: testFlags{path: file.Name()}}))
			require.Equal(t, simpleValidator{42}, actual)
		})
	})

	t.Run("envoverridesfile", func(t *testing.T) {
		testutils.WithYAMLFile(t, "foo: 23", func(file *os.File) {
			var actual simpleValidator
			require.NoError(t, Load(&actual, LoadOptions{
				Flags:      testFlags{path: file.Name()},
				EnvOptions: EnvOptions{Environment: map[string]string{"FOO": "42"}},
			}))
			require.Equal(t, simpleValidator{42}, actual)
		})
	})

	t.Run("envonly", func(t *testing.T) {
		var actual simpleValidator
		require.NoError(t, Load(&actual, LoadOptions{
			Flags:      testFlags{path: filepath.Join(t.TempDir(), "missing.yml")},
			EnvOptions: EnvOptions{Environment: map[string]string{"FOO": "42"}},
		}))
		require.Equal(t, simpleValidator{42}, actual)
	})

	t.Run("explicitmissingfile", func(t *testing.T) {
		var actual simpleValidator
		require.Error(t, Load(&actual, LoadOptions{
			Flags:      testFlags{path: filepath.Join(t.TempDir(), "missing.yml"), explicit: true},
			EnvOptions: EnvOptions{Environment: map[string]string{"FOO": "42"}},
		}))
	})
}

func TestLoadSecretFile(t *testing.T) {
	t.Run("fromfile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secret")
		require.NoError(t, os.WriteFile(path, []byte(" hunter2 \n"), 0o600))

		var secret string
		require.NoError(t, LoadSecretFile(&secret, path))
		require.Equal(t, "hunter2", secret)
	})

	t.Run("bothset", func(t *testing.T) {
		secret := "already"
		require.ErrorContains(t, LoadSecretFile(&secret, "somefile"), "both secret and secret file are set")
	})

	t.Run("neitherset", func(t *testing.T) {
		var secret string
		require.NoError(t, LoadSecretFile(&secret, ""))
		require.Empty(t, secret)
	})

	t.Run("missingfile", func(t *testing.T) {
		var secret string
		require.Error(t, LoadSecretFile(&secret, filepath.Join(t.TempDir(), "missing")))
	})
}
