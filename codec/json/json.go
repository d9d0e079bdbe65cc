// Package json provides a JSON codec implementation.
package json

import (
	"bytes"
	"encoding/json"

	"github.com/zoobzio/vcard"
)

// jsonCodec implements vcard.Codec for JSON.
type jsonCodec struct {
	indent      string
	knownFields bool
}

// Option configures the JSON codec.
type Option func(*jsonCodec)

// WithIndent pretty-prints output using indent for each nesting level.
func WithIndent(indent string) Option {
	return func(c *jsonCodec) {
		c.indent = indent
	}
}

// WithKnownFields rejects documents carrying fields the target type does
// not declare. Use it for configuration files, where a misspelled key
// would otherwise be ignored.
func WithKnownFields() Option {
	return func(c *jsonCodec) {
		c.knownFields = true
	}
}

// New returns a JSON codec.
func New(opts ...Option) vcard.Codec {
	c := &jsonCodec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	if c.indent != "" {
		return json.MarshalIndent(v, "", c.indent)
	}
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	if !c.knownFields {
		return json.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
