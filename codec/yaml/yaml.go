// Package yaml provides a YAML codec implementation.
package yaml

import (
	"bytes"
	"errors"
	"io"

	"github.com/zoobzio/vcard"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements vcard.Codec for YAML.
type yamlCodec struct {
	indent      int
	knownFields bool
}

// Option configures the YAML codec.
type Option func(*yamlCodec)

// WithIndent sets the number of spaces per nesting level (default 4).
func WithIndent(spaces int) Option {
	return func(c *yamlCodec) {
		c.indent = spaces
	}
}

// WithKnownFields rejects documents carrying fields the target type does
// not declare. An empty document still decodes to the zero value.
func WithKnownFields() Option {
	return func(c *yamlCodec) {
		c.knownFields = true
	}
}

// New returns a YAML codec.
func New(opts ...Option) vcard.Codec {
	c := &yamlCodec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	if c.indent <= 0 {
		return yaml.Marshal(v)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(c.indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes YAML data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	if !c.knownFields {
		return yaml.Unmarshal(data, v)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
