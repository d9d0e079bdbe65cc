package vcard

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// OptionKey names a configuration key accepted by Builder.SetOption.
type OptionKey string

const (
	// OptionStrict toggles strict validation (bool).
	OptionStrict OptionKey = "strict"

	// OptionAcceptedPhoneTypes sets the phone type allow-list ([]string).
	OptionAcceptedPhoneTypes OptionKey = "acceptedPhoneNumberTypes"

	// OptionAcceptedAddressTypes sets the address type allow-list ([]string).
	OptionAcceptedAddressTypes OptionKey = "acceptedAddressTypes"

	// OptionValidItemTypes sets the item types accepted by AddItem ([]string or []ItemType).
	OptionValidItemTypes OptionKey = "validItemTypes"

	// OptionServiceTypeCodes sets the item type to field tag map (map[string]string).
	OptionServiceTypeCodes OptionKey = "serviceTypeCodes"

	// OptionSecondaryTypeCodes sets the item type to qualifier tag map (map[string]string).
	OptionSecondaryTypeCodes OptionKey = "secondaryTypeCodes"
)

// Config controls validation strictness and the accepted type vocabularies.
//
// A Builder owns its Config exclusively. Use Merge or Builder.Configure to
// derive new values; the receiver of Merge is never mutated.
type Config struct {
	Strict               bool              `json:"strict" yaml:"strict" msgpack:"strict" bson:"strict"`
	AcceptedPhoneTypes   []string          `json:"acceptedPhoneNumberTypes" yaml:"acceptedPhoneNumberTypes" msgpack:"acceptedPhoneNumberTypes" bson:"acceptedPhoneNumberTypes"`
	AcceptedAddressTypes []string          `json:"acceptedAddressTypes" yaml:"acceptedAddressTypes" msgpack:"acceptedAddressTypes" bson:"acceptedAddressTypes"`
	ValidItemTypes       []string          `json:"validItemTypes" yaml:"validItemTypes" msgpack:"validItemTypes" bson:"validItemTypes"`
	ServiceTypeCodes     map[string]string `json:"serviceTypeCodes" yaml:"serviceTypeCodes" msgpack:"serviceTypeCodes" bson:"serviceTypeCodes"`
	SecondaryTypeCodes   map[string]string `json:"secondaryTypeCodes" yaml:"secondaryTypeCodes" msgpack:"secondaryTypeCodes" bson:"secondaryTypeCodes"`
}

// DefaultConfig returns the lenient default configuration.
func DefaultConfig() Config {
	return Config{
		Strict:               false,
		AcceptedPhoneTypes:   []string{"work", "home", "mobile"},
		AcceptedAddressTypes: []string{"work", "home"},
		ValidItemTypes: []string{
			string(ItemPhone),
			string(ItemEmail),
			string(ItemAddress),
			string(ItemURL),
		},
		ServiceTypeCodes: map[string]string{
			string(ItemPhone):   "TEL",
			string(ItemEmail):   "EMAIL",
			string(ItemAddress): "ADR",
			string(ItemURL):     "URL",
			"site":              "URL",
		},
		SecondaryTypeCodes: map[string]string{
			string(ItemPhone):   "VOICE",
			string(ItemEmail):   "INTERNET",
			string(ItemURL):     "INTERNET",
			string(ItemAddress): "",
		},
	}
}

// Overrides is a partial Config. Nil fields leave the corresponding key
// untouched; non-nil fields replace it wholesale.
type Overrides struct {
	Strict               *bool             `json:"strict,omitempty" yaml:"strict,omitempty" msgpack:"strict,omitempty" bson:"strict,omitempty"`
	AcceptedPhoneTypes   []string          `json:"acceptedPhoneNumberTypes,omitempty" yaml:"acceptedPhoneNumberTypes,omitempty" msgpack:"acceptedPhoneNumberTypes,omitempty" bson:"acceptedPhoneNumberTypes,omitempty"`
	AcceptedAddressTypes []string          `json:"acceptedAddressTypes,omitempty" yaml:"acceptedAddressTypes,omitempty" msgpack:"acceptedAddressTypes,omitempty" bson:"acceptedAddressTypes,omitempty"`
	ValidItemTypes       []string          `json:"validItemTypes,omitempty" yaml:"validItemTypes,omitempty" msgpack:"validItemTypes,omitempty" bson:"validItemTypes,omitempty"`
	ServiceTypeCodes     map[string]string `json:"serviceTypeCodes,omitempty" yaml:"serviceTypeCodes,omitempty" msgpack:"serviceTypeCodes,omitempty" bson:"serviceTypeCodes,omitempty"`
	SecondaryTypeCodes   map[string]string `json:"secondaryTypeCodes,omitempty" yaml:"secondaryTypeCodes,omitempty" msgpack:"secondaryTypeCodes,omitempty" bson:"secondaryTypeCodes,omitempty"`
}

// IsZero reports whether the overrides would change nothing.
func (o Overrides) IsZero() bool {
	return o.Strict == nil &&
		o.AcceptedPhoneTypes == nil &&
		o.AcceptedAddressTypes == nil &&
		o.ValidItemTypes == nil &&
		o.ServiceTypeCodes == nil &&
		o.SecondaryTypeCodes == nil
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	return Config{
		Strict:               c.Strict,
		AcceptedPhoneTypes:   slices.Clone(c.AcceptedPhoneTypes),
		AcceptedAddressTypes: slices.Clone(c.AcceptedAddressTypes),
		ValidItemTypes:       slices.Clone(c.ValidItemTypes),
		ServiceTypeCodes:     maps.Clone(c.ServiceTypeCodes),
		SecondaryTypeCodes:   maps.Clone(c.SecondaryTypeCodes),
	}
}

// Merge returns a copy of c with every non-nil override applied.
// The merge is shallow: a supplied map or list replaces the old one entirely.
func (c Config) Merge(o Overrides) Config {
	out := c.Clone()
	if o.Strict != nil {
		out.Strict = *o.Strict
	}
	if o.AcceptedPhoneTypes != nil {
		out.AcceptedPhoneTypes = slices.Clone(o.AcceptedPhoneTypes)
	}
	if o.AcceptedAddressTypes != nil {
		out.AcceptedAddressTypes = slices.Clone(o.AcceptedAddressTypes)
	}
	if o.ValidItemTypes != nil {
		out.ValidItemTypes = slices.Clone(o.ValidItemTypes)
	}
	if o.ServiceTypeCodes != nil {
		out.ServiceTypeCodes = maps.Clone(o.ServiceTypeCodes)
	}
	if o.SecondaryTypeCodes != nil {
		out.SecondaryTypeCodes = maps.Clone(o.SecondaryTypeCodes)
	}
	return out
}

// set overwrites a single key. Values of the wrong shape are rejected.
func (c *Config) set(key OptionKey, value any) error {
	switch key {
	case OptionStrict:
		v, ok := value.(bool)
		if !ok {
			return newConfigError(ErrInvalidOption, string(key), fmt.Sprintf("want bool, got %T", value))
		}
		c.Strict = v
	case OptionAcceptedPhoneTypes, OptionAcceptedAddressTypes, OptionValidItemTypes:
		v, ok := toStrings(value)
		if !ok {
			return newConfigError(ErrInvalidOption, string(key), fmt.Sprintf("want []string, got %T", value))
		}
		switch key {
		case OptionAcceptedPhoneTypes:
			c.AcceptedPhoneTypes = v
		case OptionAcceptedAddressTypes:
			c.AcceptedAddressTypes = v
		default:
			c.ValidItemTypes = v
		}
	case OptionServiceTypeCodes, OptionSecondaryTypeCodes:
		v, ok := value.(map[string]string)
		if !ok {
			return newConfigError(ErrInvalidOption, string(key), fmt.Sprintf("want map[string]string, got %T", value))
		}
		if key == OptionServiceTypeCodes {
			c.ServiceTypeCodes = maps.Clone(v)
		} else {
			c.SecondaryTypeCodes = maps.Clone(v)
		}
	default:
		return newConfigError(ErrInvalidOption, string(key), "unknown key")
	}
	return nil
}

func toStrings(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return slices.Clone(v), true
	case []ItemType:
		out := make([]string, len(v))
		for i, t := range v {
			out[i] = string(t)
		}
		return out, true
	default:
		return nil, false
	}
}

// acceptsPhoneType reports whether typ is in the phone allow-list.
func (c Config) acceptsPhoneType(typ string) bool {
	return containsFold(c.AcceptedPhoneTypes, typ)
}

// acceptsAddressType reports whether typ is in the address allow-list.
func (c Config) acceptsAddressType(typ string) bool {
	return containsFold(c.AcceptedAddressTypes, typ)
}

// allowsItemType reports whether it is configured as a valid item type.
func (c Config) allowsItemType(it ItemType) bool {
	return containsFold(c.ValidItemTypes, string(it))
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
