// Package testing provides test utilities for vcard.
package testing

import (
	"strings"
	"testing"
	"time"

	"github.com/filecoin-project/go-clock"
	"github.com/zoobzio/vcard"
)

// FixedTime is the instant reported by FixedClock.
var FixedTime = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

// FixedClock returns a mock clock stopped at FixedTime.
func FixedClock(tb testing.TB) *clock.Mock {
	tb.Helper()
	mock := clock.NewMock()
	mock.Set(FixedTime)
	return mock
}

// Strict returns an option enabling strict validation.
func Strict() vcard.Option {
	strict := true
	return vcard.WithOverrides(vcard.Overrides{Strict: &strict})
}

// Contact is a test type carrying every common vcard tag.
type Contact struct {
	Name    string   `vcard:"fn"`
	Company string   `vcard:"org"`
	Role    string   `vcard:"title"`
	Work    string   `vcard:"tel,work"`
	Mobile  string   `vcard:"tel,mobile"`
	Home    string   `vcard:"adr,home"`
	Emails  []string `vcard:"email,work"`
	Site    string   `vcard:"url,work"`
}

// SampleContact returns a Contact that passes strict validation.
func SampleContact() Contact {
	return Contact{
		Name:    "Daniel W Imhoff",
		Company: "Acme",
		Role:    "Engineer",
		Work:    "555.123.4567",
		Mobile:  "1-555-765-4321",
		Home:    "123 Main St\nSpringfield, IL 62704",
		Emails:  []string{"daniel@example.com"},
		Site:    "https://example.com",
	}
}

// SampleBuilder returns a builder holding SampleContact, a linked photo and
// one generic item. Its clock is FixedClock, so it renders as SampleCard.
func SampleBuilder(tb testing.TB, opts ...vcard.Option) *vcard.Builder {
	tb.Helper()

	b := vcard.New(append([]vcard.Option{vcard.WithClock(FixedClock(tb))}, opts...)...)
	if err := vcard.Populate(b, SampleContact()); err != nil {
		tb.Fatalf("Populate() error: %v", err)
	}
	if err := b.SetImageURL("https://example.com/daniel.png", "PNG"); err != nil {
		tb.Fatalf("SetImageURL() error: %v", err)
	}
	if err := b.AddItem(vcard.ItemInput{ItemType: vcard.ItemPhone, Type: "work", Value: "5550001111"}); err != nil {
		tb.Fatalf("AddItem() error: %v", err)
	}
	return b
}

// SampleCard is the rendered form of SampleBuilder.
var SampleCard = strings.Join([]string{
	"BEGIN:VCARD",
	"VERSION:3.0",
	"N:Imhoff;Daniel;W;",
	"FN:Daniel W Imhoff",
	"ORG:Acme",
	"TITLE:Engineer",
	"PHOTO;VALUE=URI;TYPE=PNG:https://example.com/daniel.png",
	"TEL;TYPE=WORK,VOICE:(555) 123-4567",
	"TEL;TYPE=MOBILE,VOICE:1 (555) 765-4321",
	"ADR;TYPE=HOME:123 Main St;Springfield;IL;62704",
	`LABEL;TYPE=HOME:123 Main St\nSpringfield, IL 62704`,
	"EMAIL;TYPE=WORK,INTERNET:daniel@example.com",
	"TEL;TYPE=WORK,VOICE:(555) 000-1111",
	"URL;TYPE=WORK,INTERNET:https://example.com",
	"REV:2024-03-05T10:00:00Z",
	"END:VCARD",
}, "\r\n") + "\r\n"
