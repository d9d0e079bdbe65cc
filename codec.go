package vcard

// Codec provides content-type aware marshaling for card snapshots and
// configuration documents.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// DecodeOverrides reads configuration overrides from a document.
// Keys absent from the document stay nil and leave the configuration alone.
func DecodeOverrides(c Codec, data []byte) (Overrides, error) {
	var o Overrides
	if err := c.Unmarshal(data, &o); err != nil {
		return Overrides{}, newCodecError(ErrUnmarshal, err)
	}
	return o, nil
}
