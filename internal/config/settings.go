package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. KPGO_FORMAT
const EnvPrefix = "KPGO"

// AsOfLayout is the date format accepted for the as_of setting
const AsOfLayout = "2006-01-02"

// Settings holds application settings shared by the binaries
type Settings struct {
	Policy string `mapstructure:"policy"`
	Format string `mapstructure:"format"`
	Debug  bool   `mapstructure:"debug"`
	Addr   string `mapstructure:"addr"`
	AsOf   string `mapstructure:"as_of"`
}

// NewViper returns a viper instance with defaults and env binding applied
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("policy", "")
	v.SetDefault("format", "")
	v.SetDefault("debug", false)
	v.SetDefault("addr", ":8080")
	v.SetDefault("as_of", "")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadSettings reads an optional settings file into v and decodes it.
// Environment variables and bound flags take precedence over the file.
func LoadSettings(v *viper.Viper, settingsPath string) (*Settings, error) {
	if settingsPath != "" {
		v.SetConfigFile(settingsPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", settingsPath, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if _, err := s.AsOfTime(); err != nil {
		return nil, err
	}
	return &s, nil
}

// AsOfTime parses AsOf; the zero time means "use the wall clock"
func (s *Settings) AsOfTime() (time.Time, error) {
	if s.AsOf == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(AsOfLayout, s.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("as_of must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}

// Clock returns a function reporting the as-of time, or time.Now when unset
func (s *Settings) Clock() func() time.Time {
	t, err := s.AsOfTime()
	if err != nil || t.IsZero() {
		return time.Now
	}
	return func() time.Time { return t }
}
