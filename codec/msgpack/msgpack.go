// Package msgpack provides a MessagePack codec implementation.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/vcard"
)

// msgpackCodec implements vcard.Codec for MessagePack.
type msgpackCodec struct {
	sortMapKeys bool
}

// Option configures the MessagePack codec.
type Option func(*msgpackCodec)

// WithSortedMapKeys encodes map keys in sorted order, so equal values
// always produce equal bytes.
func WithSortedMapKeys() Option {
	return func(c *msgpackCodec) {
		c.sortMapKeys = true
	}
}

// New returns a MessagePack codec.
func New(opts ...Option) vcard.Codec {
	c := &msgpackCodec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	if !c.sortMapKeys {
		return msgpack.Marshal(v)
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
