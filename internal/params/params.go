// Package params resolves named input parameters from environment variables
// layered over configuration defaults, with required/optional semantics and
// whitespace trimming.
package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "REPO_ADMINS"

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// Source resolves input parameters. Precedence: explicit overrides (flags),
// then REPO_ADMINS_* environment variables, then configuration defaults.
type Source struct {
	v *viper.Viper
}

// New creates a parameter source. defaults provides fallback values for keys
// not present in the environment; a nil map is allowed.
func New(defaults map[string]string) *Source {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AllowEmptyEnv(true)

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return &Source{v: v}
}

// Override sets an explicit value for key, taking precedence over environment
// variables and defaults. Empty values are ignored so unset flags fall through.
func (s *Source) Override(key, value string) {
	if strings.TrimSpace(value) != "" {
		s.v.Set(key, value)
	}
}

// Required returns the trimmed value for key, or an error when the value is
// missing or blank.
func (s *Source) Required(key string) (string, error) {
	value := strings.TrimSpace(s.v.GetString(key))
	if value == "" {
		return "", fmt.Errorf("required parameter %q is not set (set %s or pass the corresponding flag)", key, EnvName(key))
	}
	return value, nil
}

// Optional returns the trimmed value for key, falling back when the value is
// missing or blank.
func (s *Source) Optional(key, fallback string) string {
	value := strings.TrimSpace(s.v.GetString(key))
	if value == "" {
		return fallback
	}
	return value
}

// RequiredInt returns the value for key parsed as an integer.
func (s *Source) RequiredInt(key string) (int, error) {
	value, err := s.Required(key)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be an integer, got %q", key, value)
	}
	return n, nil
}

// Bool returns the value for key parsed as a boolean, false when unset.
func (s *Source) Bool(key string) bool {
	value := strings.TrimSpace(s.v.GetString(key))
	if value == "" {
		return false
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return b
}

// EnvName returns the environment variable name that backs key.
func EnvName(key string) string {
	return envPrefix + "_" + strings.ToUpper(envKeyReplacer.Replace(key))
}
