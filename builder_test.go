package vcard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func strictBuilder(opts ...Option) *Builder {
	strict := true
	return New(append([]Option{WithOverrides(Overrides{Strict: &strict})}, opts...)...)
}

func TestNew(t *testing.T) {
	a := New()
	b := New()

	if a.ID() == "" {
		t.Error("ID() should not be empty")
	}
	if a.ID() == b.ID() {
		t.Error("builders should have distinct IDs")
	}
	if diff := cmp.Diff(DefaultConfig(), a.Config()); diff != "" {
		t.Errorf("New() config mismatch (-want +got):\n%s", diff)
	}
}

func TestWithConfig_Copies(t *testing.T) {
	cfg := DefaultConfig()
	b := New(WithConfig(cfg))

	cfg.AcceptedPhoneTypes[0] = "changed"

	if b.Config().AcceptedPhoneTypes[0] != "work" {
		t.Error("WithConfig() should copy the configuration")
	}
}

func TestBuilder_Configure(t *testing.T) {
	b := New()
	strict := true
	b.Configure(Overrides{Strict: &strict})
	b.Configure(Overrides{AcceptedPhoneTypes: []string{"fax"}})

	cfg := b.Config()
	if !cfg.Strict {
		t.Error("earlier Configure() call was lost")
	}
	if diff := cmp.Diff([]string{"fax"}, cfg.AcceptedPhoneTypes); diff != "" {
		t.Errorf("AcceptedPhoneTypes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"work", "home"}, cfg.AcceptedAddressTypes); diff != "" {
		t.Errorf("unrelated key changed (-want +got):\n%s", diff)
	}
}

func TestBuilder_SetOption(t *testing.T) {
	b := New()
	if err := b.SetOption(OptionStrict, true); err != nil {
		t.Fatalf("SetOption() error: %v", err)
	}
	if !b.Config().Strict {
		t.Error("SetOption(strict, true) not applied")
	}

	if err := b.SetOption(OptionStrict, "true"); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("SetOption() error = %v, want ErrInvalidOption", err)
	}
}

func TestBuilder_Config_ReturnsCopy(t *testing.T) {
	b := New()
	cfg := b.Config()
	cfg.ServiceTypeCodes["phone"] = "changed"

	if b.Config().ServiceTypeCodes["phone"] != "TEL" {
		t.Error("Config() should return a copy")
	}
}

func TestAddPhoneNumber_StrictTypeNotAllowed(t *testing.T) {
	b := strictBuilder()

	err := b.AddPhoneNumber("fax", "555-1234")
	if !errors.Is(err, ErrTypeNotAllowed) {
		t.Fatalf("AddPhoneNumber() error = %v, want ErrTypeNotAllowed", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("AddPhoneNumber() error should be *ValidationError, got %T", err)
	}
	if ve.Field != "phone" || ve.Value != "fax" {
		t.Errorf("ValidationError = %+v, want field phone value fax", ve)
	}
	if len(b.Snapshot().Phones) != 0 {
		t.Error("rejected phone should not be stored")
	}
}

func TestAddPhoneNumber_LenientUppercasesType(t *testing.T) {
	b := New()

	if err := b.AddPhoneNumber("fax", "555-1234"); err != nil {
		t.Fatalf("AddPhoneNumber() error: %v", err)
	}

	want := []CardPhone{{Type: "FAX", Number: "555-1234"}}
	if diff := cmp.Diff(want, b.Snapshot().Phones); diff != "" {
		t.Errorf("Phones mismatch (-want +got):\n%s", diff)
	}
}

func TestAddPhoneNumber_StrictAcceptsAllowedType(t *testing.T) {
	b := strictBuilder()

	if err := b.AddPhoneNumber("Mobile", "15551234567"); err != nil {
		t.Fatalf("AddPhoneNumber() error: %v", err)
	}

	want := []CardPhone{{Type: "MOBILE", Number: "1 (555) 123-4567"}}
	if diff := cmp.Diff(want, b.Snapshot().Phones); diff != "" {
		t.Errorf("Phones mismatch (-want +got):\n%s", diff)
	}
}

func TestAddPhoneNumber_DefaultType(t *testing.T) {
	b := strictBuilder()

	if err := b.AddPhoneNumber("", "5551234"); err != nil {
		t.Fatalf("AddPhoneNumber() error: %v", err)
	}
	if got := b.Snapshot().Phones[0].Type; got != "HOME" {
		t.Errorf("default phone type = %q, want HOME", got)
	}
}

func TestAddPhoneNumber_Length(t *testing.T) {
	if err := strictBuilder().AddPhoneNumber("work", "12345"); !errors.Is(err, ErrInvalidPhoneLength) {
		t.Errorf("strict AddPhoneNumber() error = %v, want ErrInvalidPhoneLength", err)
	}

	b := New()
	if err := b.AddPhoneNumber("work", "1-2-3-4-5"); err != nil {
		t.Fatalf("lenient AddPhoneNumber() error: %v", err)
	}
	if got := b.Snapshot().Phones[0].Number; got != "12345" {
		t.Errorf("lenient number = %q, want %q", got, "12345")
	}
}

func TestAddPhoneNumber_Order(t *testing.T) {
	b := New()
	for _, n := range []string{"5550000001", "5550000002", "5550000001"} {
		if err := b.AddPhoneNumber("work", n); err != nil {
			t.Fatalf("AddPhoneNumber() error: %v", err)
		}
	}

	phones := b.Snapshot().Phones
	if len(phones) != 3 {
		t.Fatalf("got %d phones, want 3 (no duplicate detection)", len(phones))
	}
	if phones[1].Number != "(555) 000-0002" {
		t.Errorf("phones[1] = %q, insertion order not preserved", phones[1].Number)
	}
}

func TestAddAddress(t *testing.T) {
	if err := strictBuilder().AddAddress("po", "123 Main St"); !errors.Is(err, ErrTypeNotAllowed) {
		t.Errorf("strict AddAddress() error = %v, want ErrTypeNotAllowed", err)
	}

	b := New()
	if err := b.AddAddress("po", "PO Box 1"); err != nil {
		t.Fatalf("lenient AddAddress() error: %v", err)
	}
	want := []CardAddress{{Type: "PO", Raw: "PO Box 1"}}
	if diff := cmp.Diff(want, b.Snapshot().Addresses); diff != "" {
		t.Errorf("Addresses mismatch (-want +got):\n%s", diff)
	}
}

func TestAddEmail(t *testing.T) {
	if err := strictBuilder().AddEmail("work", "not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("strict AddEmail() error = %v, want ErrInvalidEmail", err)
	}

	b := New()
	if err := b.AddEmail("", "not-an-email"); err != nil {
		t.Fatalf("lenient AddEmail() error: %v", err)
	}
	want := []CardEmail{{Type: "HOME", Value: "not-an-email"}}
	if diff := cmp.Diff(want, b.Snapshot().Emails); diff != "" {
		t.Errorf("Emails mismatch (-want +got):\n%s", diff)
	}
}

func TestAddURL(t *testing.T) {
	if err := strictBuilder().AddURL("example", "", "work"); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("strict AddURL() error = %v, want ErrInvalidURL", err)
	}

	b := New()
	if err := b.AddURL("example", "github", ""); err != nil {
		t.Fatalf("lenient AddURL() error: %v", err)
	}
	want := []CardURL{{Type: "HOME", ServiceType: "github", Value: "example"}}
	if diff := cmp.Diff(want, b.Snapshot().URLs); diff != "" {
		t.Errorf("URLs mismatch (-want +got):\n%s", diff)
	}
}

func TestStrictRejectsLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		add  func(b *Builder) error
		want error
	}{
		{"email type", func(b *Builder) error { return b.AddEmail("home\r\nX-EVIL:1", "a@example.com") }, ErrLineBreak},
		{"email value", func(b *Builder) error { return b.AddEmail("home", "a@example.com\r\nX-EVIL:1") }, ErrInvalidEmail},
		{"url type", func(b *Builder) error { return b.AddURL("https://example.com", "", "work\n") }, ErrLineBreak},
		{"url service", func(b *Builder) error { return b.AddURL("https://example.com", "git\rhub", "") }, ErrLineBreak},
		{"url value", func(b *Builder) error { return b.AddURL("https://example.com\nX-EVIL:1", "", "") }, ErrInvalidURL},
		{"item type", func(b *Builder) error {
			return b.AddItem(ItemInput{ItemType: ItemURL, Type: "home\nX", Value: "https://example.com"})
		}, ErrLineBreak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := strictBuilder()
			if err := tt.add(b); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			card := b.Snapshot()
			if n := len(card.Emails) + len(card.URLs) + len(card.Items); n != 0 {
				t.Errorf("rejected value was stored: %+v", card)
			}
		})
	}
}

func TestAddItem_TypeCaseInsensitive(t *testing.T) {
	b := New(WithOverrides(Overrides{ValidItemTypes: []string{"EMAIL", "Url"}}))

	if err := b.AddItem(ItemInput{ItemType: ItemEmail, Value: "a@example.com"}); err != nil {
		t.Errorf("AddItem(email) error: %v", err)
	}
	if err := b.AddItem(ItemInput{ItemType: ItemURL, Value: "https://example.com"}); err != nil {
		t.Errorf("AddItem(url) error: %v", err)
	}
	if err := b.AddItem(ItemInput{ItemType: ItemPhone, Value: "5551234567"}); !errors.Is(err, ErrUnsupportedItemType) {
		t.Errorf("AddItem(phone) error = %v, want ErrUnsupportedItemType", err)
	}
}

func TestAddItem(t *testing.T) {
	b := New()

	inputs := []ItemInput{
		{ItemType: ItemPhone, Type: "work", Value: "5551234567"},
		{ItemType: ItemEmail, Value: "daniel@example.com"},
		{ItemType: ItemAddress, Type: "home", Value: "123 Main St\nSpringfield, IL 62704"},
		{ItemType: ItemURL, Type: "work", Value: "https://example.com", ServiceType: "site"},
	}
	for _, in := range inputs {
		if err := b.AddItem(in); err != nil {
			t.Fatalf("AddItem(%+v) error: %v", in, err)
		}
	}

	want := []CardItem{
		{ItemType: ItemPhone, Type: "WORK", ServiceCode: "TEL", SecondaryCode: "VOICE", Value: "(555) 123-4567"},
		{ItemType: ItemEmail, Type: "HOME", ServiceCode: "EMAIL", SecondaryCode: "INTERNET", Value: "daniel@example.com"},
		{ItemType: ItemAddress, Type: "HOME", ServiceCode: "ADR", SecondaryCode: "", Value: "123 Main St;Springfield;IL;62704"},
		{ItemType: ItemURL, Type: "WORK", ServiceCode: "URL", SecondaryCode: "INTERNET", Value: "https://example.com"},
	}
	if diff := cmp.Diff(want, b.Snapshot().Items); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}
}

func TestAddItem_InvalidValueIgnoresStrict(t *testing.T) {
	for _, b := range []*Builder{New(), strictBuilder()} {
		err := b.AddItem(ItemInput{ItemType: ItemEmail, Type: "work", Value: "not-an-email"})
		if !errors.Is(err, ErrInvalidItemValue) {
			t.Errorf("AddItem() strict=%v error = %v, want ErrInvalidItemValue", b.Config().Strict, err)
		}
		if len(b.Snapshot().Items) != 0 {
			t.Error("rejected item should not be stored")
		}
	}
}

func TestAddItem_UnsupportedTypeIgnoresStrict(t *testing.T) {
	for _, b := range []*Builder{New(), strictBuilder()} {
		err := b.AddItem(ItemInput{ItemType: "fax", Value: "5551234"})
		if !errors.Is(err, ErrUnsupportedItemType) {
			t.Errorf("AddItem() strict=%v error = %v, want ErrUnsupportedItemType", b.Config().Strict, err)
		}
	}
}

func TestAddItem_NotConfigured(t *testing.T) {
	b := New(WithOverrides(Overrides{ValidItemTypes: []string{"phone"}}))

	if err := b.AddItem(ItemInput{ItemType: ItemURL, Value: "https://example.com"}); !errors.Is(err, ErrUnsupportedItemType) {
		t.Errorf("AddItem() error = %v, want ErrUnsupportedItemType", err)
	}
	if err := b.AddItem(ItemInput{ItemType: ItemPhone, Value: "5551234"}); err != nil {
		t.Errorf("AddItem() error: %v", err)
	}
}

func TestAddItem_StrictPhoneLength(t *testing.T) {
	err := strictBuilder().AddItem(ItemInput{ItemType: ItemPhone, Value: "12345"})
	if !errors.Is(err, ErrInvalidPhoneLength) {
		t.Errorf("AddItem() error = %v, want ErrInvalidPhoneLength", err)
	}
}

func TestSetImageData(t *testing.T) {
	b := New()
	b.SetImageData([]byte("hello"), "JPEG")

	img, ok := b.Image().(InlineImage)
	if !ok {
		t.Fatalf("Image() = %T, want InlineImage", b.Image())
	}
	if img.Data != "aGVsbG8=" || img.MediaType() != "JPEG" {
		t.Errorf("Image() = %+v", img)
	}
}

func TestSetImageURL(t *testing.T) {
	b := New()
	b.SetImageData([]byte("hello"), "JPEG")

	if err := b.SetImageURL("https://example.com/a.png", "PNG"); err != nil {
		t.Fatalf("SetImageURL() error: %v", err)
	}
	want := LinkedImage{MIMEType: "PNG", URL: "https://example.com/a.png"}
	if diff := cmp.Diff(Image(want), b.Image()); diff != "" {
		t.Errorf("Image() mismatch (-want +got):\n%s", diff)
	}

	b.SetImageData([]byte("hello"), "JPEG")
	if _, ok := b.Image().(InlineImage); !ok {
		t.Errorf("SetImageData() should replace the linked image, got %T", b.Image())
	}
}

func TestSetImageURL_InvalidKeepsImage(t *testing.T) {
	b := New()
	b.SetImageData([]byte("hello"), "JPEG")

	err := b.SetImageURL("not a url", "PNG")
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("SetImageURL() error = %v, want ErrInvalidURL", err)
	}
	if _, ok := b.Image().(InlineImage); !ok {
		t.Errorf("invalid SetImageURL() should keep the current image, got %T", b.Image())
	}
}

func TestClearImage(t *testing.T) {
	b := New()
	b.SetImageData([]byte("hello"), "JPEG")
	b.ClearImage()

	if b.Image() != nil {
		t.Errorf("Image() = %v, want nil", b.Image())
	}
}

func TestSetImage_MissingFetcher(t *testing.T) {
	err := New().SetImage(context.Background(), "photo.jpg", "JPEG")
	if !errors.Is(err, ErrMissingFetcher) {
		t.Errorf("SetImage() error = %v, want ErrMissingFetcher", err)
	}
}

func TestSetImage_FSFetcher(t *testing.T) {
	fsys := fstest.MapFS{
		"photos/daniel.jpg": &fstest.MapFile{Data: []byte("hello")},
	}
	b := New(WithFetcher(FSFetcher(fsys)))

	if err := b.SetImage(context.Background(), "/photos/daniel.jpg", "JPEG"); err != nil {
		t.Fatalf("SetImage() error: %v", err)
	}
	want := InlineImage{MIMEType: "JPEG", Data: "aGVsbG8="}
	if diff := cmp.Diff(Image(want), b.Image()); diff != "" {
		t.Errorf("Image() mismatch (-want +got):\n%s", diff)
	}
}

func TestSetImage_FetchError(t *testing.T) {
	cause := errors.New("connection refused")
	fetcher := FetcherFunc(func(_ context.Context, _ string) ([]byte, error) {
		return nil, cause
	})
	b := New(WithFetcher(fetcher))
	b.SetImageData([]byte("keep"), "JPEG")

	err := b.SetImage(context.Background(), "https://example.com/a.jpg", "JPEG")
	if !errors.Is(err, ErrFetch) {
		t.Errorf("SetImage() error = %v, want ErrFetch", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("SetImage() error = %v, should wrap the fetcher error", err)
	}
	if !strings.Contains(err.Error(), "https://example.com/a.jpg") {
		t.Errorf("SetImage() error = %v, should name the location", err)
	}
	if img := b.Image().(InlineImage); img.Data != "a2VlcA==" {
		t.Error("failed SetImage() should keep the current image")
	}
}

func TestSetRevision(t *testing.T) {
	b := New()

	b.SetRevision("2024-03-05")
	if got := b.Snapshot().Revision; got != "2024-03-05" {
		t.Errorf("Revision = %q, want raw input", got)
	}

	b.SetRevisionUnix(1700000000)
	if got := b.Snapshot().Revision; got != "1700000000" {
		t.Errorf("Revision = %q, want %q", got, "1700000000")
	}
}

func TestBuilder_Clone(t *testing.T) {
	b := New()
	b.SetFullName("Daniel Imhoff")
	if err := b.AddPhoneNumber("work", "5551234567"); err != nil {
		t.Fatalf("AddPhoneNumber() error: %v", err)
	}

	c := b.Clone()
	if err := c.AddPhoneNumber("home", "5551234"); err != nil {
		t.Fatalf("AddPhoneNumber() error: %v", err)
	}
	c.SetFullName("Someone Else")

	if c.ID() == b.ID() {
		t.Error("Clone() should get a fresh ID")
	}
	if got := len(b.Snapshot().Phones); got != 1 {
		t.Errorf("original has %d phones after clone mutation, want 1", got)
	}
	if got := b.Snapshot().FullName; got != "Daniel Imhoff" {
		t.Errorf("original FullName = %q after clone mutation", got)
	}
}
