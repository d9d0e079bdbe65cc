package vcard

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Environment variables read by OverridesFromEnv and LoadEnvFile.
const (
	EnvStrict       = "VCARD_STRICT"
	EnvPhoneTypes   = "VCARD_PHONE_TYPES"
	EnvAddressTypes = "VCARD_ADDRESS_TYPES"
	EnvItemTypes    = "VCARD_ITEM_TYPES"
)

type envConfig struct {
	Strict       bool     `env:"VCARD_STRICT"`
	PhoneTypes   []string `env:"VCARD_PHONE_TYPES" envSeparator:","`
	AddressTypes []string `env:"VCARD_ADDRESS_TYPES" envSeparator:","`
	ItemTypes    []string `env:"VCARD_ITEM_TYPES" envSeparator:","`
}

// OverridesFromEnv reads configuration overrides from the process environment.
// Only variables that are present produce overrides.
func OverridesFromEnv() (Overrides, error) {
	environ := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}
	return overridesFromMap(environ)
}

// LoadEnvFile reads configuration overrides from dotenv files.
// The process environment is neither read nor modified.
func LoadEnvFile(paths ...string) (Overrides, error) {
	environ, err := godotenv.Read(paths...)
	if err != nil {
		return Overrides{}, newConfigError(ErrInvalidOption, strings.Join(paths, ","), err.Error())
	}
	return overridesFromMap(environ)
}

func overridesFromMap(environ map[string]string) (Overrides, error) {
	var cfg envConfig
	if err := env.Parse(&cfg, env.Options{Environment: environ}); err != nil {
		return Overrides{}, newConfigError(ErrInvalidOption, "env", err.Error())
	}

	var o Overrides
	if _, ok := environ[EnvStrict]; ok {
		strict := cfg.Strict
		o.Strict = &strict
	}
	if _, ok := environ[EnvPhoneTypes]; ok {
		o.AcceptedPhoneTypes = trimAll(cfg.PhoneTypes)
	}
	if _, ok := environ[EnvAddressTypes]; ok {
		o.AcceptedAddressTypes = trimAll(cfg.AddressTypes)
	}
	if _, ok := environ[EnvItemTypes]; ok {
		o.ValidItemTypes = trimAll(cfg.ItemTypes)
	}
	return o, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
