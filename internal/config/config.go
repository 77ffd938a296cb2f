package config

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/viper"

	"github.com/vitalvas/sss/shamir"
)

const EnvPrefix = "SSS"

var ErrInvalidPrime = errors.New("config: invalid prime")

type Config struct {
	// Prime is the field modulus: a decimal or 0x-prefixed hex integer, or one
	// of the names "default" and "secp256k1". Empty selects the default prime.
	Prime string `mapstructure:"prime"`

	// Output is the share output format: text, json, yaml or base64.
	Output string `mapstructure:"output"`

	Log Log `mapstructure:"log"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`

	// Source adds the caller's file:line to every record.
	Source bool `mapstructure:"source"`
	// SourcePath is trimmed from the front of source file names.
	SourcePath string `mapstructure:"source_path"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("prime", "default")
	v.SetDefault("output", "text")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.source", false)
	v.SetDefault("log.source_path", "")
}

// Load resolves the configuration from defaults, an optional yaml file,
// SSS_* environment variables and any flags already bound to v, in
// increasing order of precedence.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	conf := &Config{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return conf, nil
}

// PrimeInt resolves Prime into an integer.
func (c *Config) PrimeInt() (*big.Int, error) {
	return ParsePrime(c.Prime)
}

// ParsePrime parses a prime given by name, decimal or 0x-prefixed hex.
// It only checks that the value can serve as a modulus, not primality.
func ParsePrime(value string) (*big.Int, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "default":
		return shamir.DefaultPrime(), nil
	case "secp256k1", "p256":
		return shamir.Prime256(), nil
	}

	p, ok := new(big.Int).SetString(strings.TrimSpace(value), 0)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidPrime, value)
	}

	if p.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("%w: must be at least 2", ErrInvalidPrime)
	}

	return p, nil
}
