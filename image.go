package vcard

import (
	"context"
	"encoding/base64"
	"io/fs"
	"strings"
)

// Image is the PHOTO of a card: either an InlineImage or a LinkedImage.
// A nil Image means the card has no photo.
type Image interface {
	// MediaType returns the TYPE parameter, e.g. JPEG or image/png.
	MediaType() string

	isImage()
}

// InlineImage carries base64 data, already wrapped for folding.
type InlineImage struct {
	MIMEType string
	Data     string
}

// MediaType returns the image type tag.
func (i InlineImage) MediaType() string { return i.MIMEType }

func (InlineImage) isImage() {}

// LinkedImage references an image by URL.
type LinkedImage struct {
	MIMEType string
	URL      string
}

// MediaType returns the image type tag.
func (i LinkedImage) MediaType() string { return i.MIMEType }

func (LinkedImage) isImage() {}

// Fetcher retrieves raw image bytes for SetImage.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, location string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, location string) ([]byte, error) {
	return f(ctx, location)
}

// FSFetcher returns a Fetcher that reads images from a file system.
func FSFetcher(fsys fs.FS) Fetcher {
	return FetcherFunc(func(_ context.Context, location string) ([]byte, error) {
		return fs.ReadFile(fsys, strings.TrimPrefix(location, "/"))
	})
}

// newInlineImage encodes data as wrapped base64.
func newInlineImage(data []byte, mimeType string) InlineImage {
	encoded := base64.StdEncoding.EncodeToString(data)
	return InlineImage{
		MIMEType: mimeType,
		Data:     wrapBase64(encoded, base64LineWidth),
	}
}
