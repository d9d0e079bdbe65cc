// Package bson provides BSON and MongoDB Extended JSON codec implementations.
package bson

import (
	"github.com/zoobzio/vcard"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements vcard.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec. Values must encode as documents, so pass
// structs or maps (a Card or Overrides), not scalars.
func New() vcard.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}

// extJSONCodec implements vcard.Codec for MongoDB Extended JSON.
type extJSONCodec struct {
	canonical bool
}

// NewExtJSON returns an Extended JSON codec, for documents that are
// stored as BSON but exchanged as text. Canonical mode preserves BSON
// types exactly; relaxed mode reads like plain JSON.
func NewExtJSON(canonical bool) vcard.Codec {
	return &extJSONCodec{canonical: canonical}
}

// ContentType returns the MIME type for Extended JSON.
func (c *extJSONCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as Extended JSON.
func (c *extJSONCodec) Marshal(v any) ([]byte, error) {
	return bson.MarshalExtJSON(v, c.canonical, false)
}

// Unmarshal decodes Extended JSON data into v.
func (c *extJSONCodec) Unmarshal(data []byte, v any) error {
	return bson.UnmarshalExtJSON(data, c.canonical, v)
}
