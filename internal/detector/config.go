package detector

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"
)

// defaultConfig is the embedded default detector configuration. The SSN and
// weak credit card patterns follow the predefined recognizers published by
// the presidio analyzer: a standalone 3-2-4 digit group for SSNs, and a broad
// leading-digit class (not a BIN table) for card candidates, which are only
// counted after Luhn validation.
const defaultConfig = `
[ssn]
pattern = '\b[0-9]{3}[- .][0-9]{2}[- .][0-9]{4}\b'

[creditcard]
pattern = '\b((4\d{3})|(5[0-5]\d{2})|(6\d{3})|(1\d{3})|(3\d{3}))[- ]?(\d{3,4})[- ]?(\d{3,4})[- ]?(\d{3,5})\b'
min_length = 13
max_length = 19
`

// Config holds the pattern configuration for a detector Set. It is parsed
// once at startup and immutable afterwards.
type Config struct {
	SSN struct {
		Pattern string `mapstructure:"pattern"`
	} `mapstructure:"ssn"`

	CreditCard struct {
		Pattern   string `mapstructure:"pattern"`
		MinLength int    `mapstructure:"min_length"`
		MaxLength int    `mapstructure:"max_length"`
	} `mapstructure:"creditcard"`
}

// DefaultConfig parses the embedded default detector configuration.
func DefaultConfig() (Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewBufferString(defaultConfig)); err != nil {
		return Config{}, fmt.Errorf("failed to read embedded detector config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal embedded detector config: %w", err)
	}

	return cfg, nil
}
