package vcard

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/filecoin-project/go-clock"
	"github.com/google/uuid"
)

// defaultType is the TYPE used when a contact-method adder gets none.
const defaultType = "home"

// Builder accumulates the fields of one vCard and renders it.
//
// Every mutator validates and normalizes its input immediately under the
// builder's Config, so Render only has to assemble text. State is
// accumulative: Render may be called any number of times and further
// mutations may follow.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	id      string
	cfg     Config
	clock   clock.Clock
	fetcher Fetcher

	fullName   string
	firstName  string
	middleName string
	lastName   string
	partsSet   bool // any of first/middle/last was set explicitly

	organization string
	title        string

	phones    []phoneNumber
	addresses []address
	emails    []email
	items     []item
	urls      []link

	image    Image
	revision string
}

type phoneNumber struct {
	typ    string
	number string
}

type address struct {
	typ string
	raw string
}

type email struct {
	typ   string
	value string
}

type link struct {
	typ         string
	value       string
	serviceType string
	tag         string // resolved field tag: URL or X-<SERVICE>
}

// Option configures a Builder at construction.
type Option func(*Builder)

// WithConfig replaces the builder's configuration.
func WithConfig(cfg Config) Option {
	return func(b *Builder) {
		b.cfg = cfg.Clone()
	}
}

// WithOverrides merges overrides over the builder's configuration.
func WithOverrides(o Overrides) Option {
	return func(b *Builder) {
		b.cfg = b.cfg.Merge(o)
	}
}

// WithClock sets the clock used for the default revision timestamp.
func WithClock(c clock.Clock) Option {
	return func(b *Builder) {
		b.clock = c
	}
}

// WithFetcher sets the Fetcher used by SetImage.
func WithFetcher(f Fetcher) Option {
	return func(b *Builder) {
		b.fetcher = f
	}
}

// New creates a Builder with DefaultConfig and the real clock, then applies opts.
func New(opts ...Option) *Builder {
	b := &Builder{
		id:    uuid.NewString(),
		cfg:   DefaultConfig(),
		clock: clock.New(),
	}
	for _, opt := range opts {
		opt(b)
	}

	emitBuilderCreated(context.Background(), b.id)
	return b
}

// ID returns the identifier carried on this builder's signals.
func (b *Builder) ID() string {
	return b.id
}

// Config returns a copy of the builder's current configuration.
func (b *Builder) Config() Config {
	return b.cfg.Clone()
}

// Configure merges overrides over the current configuration. Keys not
// present in o keep their current values.
func (b *Builder) Configure(o Overrides) {
	b.cfg = b.cfg.Merge(o)
	emitConfigurationSet(context.Background(), b.id, "*")
}

// SetOption overwrites a single configuration key. The value must have the
// shape documented on the OptionKey constant.
func (b *Builder) SetOption(key OptionKey, value any) error {
	if err := b.cfg.set(key, value); err != nil {
		return err
	}
	emitConfigurationSet(context.Background(), b.id, string(key))
	return nil
}

// SetFirstName sets the first name. Setting any name part makes the parts
// authoritative over SetFullName.
func (b *Builder) SetFirstName(name string) {
	b.firstName = name
	b.partsSet = true
}

// SetMiddleName sets the middle name.
func (b *Builder) SetMiddleName(name string) {
	b.middleName = name
	b.partsSet = true
}

// SetLastName sets the last name.
func (b *Builder) SetLastName(name string) {
	b.lastName = name
	b.partsSet = true
}

// SetFullName sets the full name. It is split into parts at render time
// when no part was set explicitly.
func (b *Builder) SetFullName(name string) {
	b.fullName = name
}

// SetOrganization sets ORG.
func (b *Builder) SetOrganization(organization string) {
	b.organization = organization
}

// SetTitle sets TITLE.
func (b *Builder) SetTitle(title string) {
	b.title = title
}

// AddPhoneNumber appends a TEL entry. An empty typ means home.
func (b *Builder) AddPhoneNumber(typ, number string) error {
	if typ == "" {
		typ = defaultType
	}
	if b.cfg.Strict && !b.cfg.acceptsPhoneType(typ) {
		return b.reject("phone", newValidationError(ErrTypeNotAllowed, "phone", typ))
	}

	formatted, err := FormatPhoneNumber(number, b.cfg.Strict)
	if err != nil {
		return b.reject("phone", err)
	}

	b.phones = append(b.phones, phoneNumber{typ: upper(typ), number: formatted})
	return nil
}

// AddAddress appends an ADR/LABEL pair. The address is line-feed separated:
// the street first, then a "city, state postal" line.
func (b *Builder) AddAddress(typ, raw string) error {
	if typ == "" {
		typ = defaultType
	}
	if b.cfg.Strict && !b.cfg.acceptsAddressType(typ) {
		return b.reject("address", newValidationError(ErrTypeNotAllowed, "address", typ))
	}

	b.addresses = append(b.addresses, address{typ: upper(typ), raw: raw})
	return nil
}

// AddEmail appends an EMAIL entry. In strict mode the value must look like
// an email address.
func (b *Builder) AddEmail(typ, value string) error {
	if typ == "" {
		typ = defaultType
	}
	if b.cfg.Strict && hasLineBreak(typ) {
		return b.reject("email", newValidationError(ErrLineBreak, "email", typ))
	}
	if b.cfg.Strict && !IsValidEmail(value) {
		return b.reject("email", newValidationError(ErrInvalidEmail, "email", value))
	}

	b.emails = append(b.emails, email{typ: upper(typ), value: value})
	return nil
}

// AddURL appends a URL entry. serviceType optionally selects a different
// field tag (see Render); typ defaults to home. In strict mode the value
// must look like a URL.
func (b *Builder) AddURL(value, serviceType, typ string) error {
	if typ == "" {
		typ = defaultType
	}
	if b.cfg.Strict {
		for _, v := range []string{typ, serviceType} {
			if hasLineBreak(v) {
				return b.reject("url", newValidationError(ErrLineBreak, "url", v))
			}
		}
	}
	if b.cfg.Strict && !IsValidURL(value) {
		return b.reject("url", newValidationError(ErrInvalidURL, "url", value))
	}

	b.urls = append(b.urls, link{
		typ:         upper(typ),
		value:       value,
		serviceType: serviceType,
		tag:         urlTag(b.cfg, serviceType),
	})
	return nil
}

// AddItem appends a generic contact method through the item handler table.
//
// The item type and value checks apply regardless of strict mode.
func (b *Builder) AddItem(in ItemInput) error {
	handler, ok := itemHandlers[in.ItemType]
	if !ok || !b.cfg.allowsItemType(in.ItemType) {
		return b.reject("item", newValidationError(ErrUnsupportedItemType, "item", string(in.ItemType)))
	}
	if !handler.validate(in.Value) {
		return b.reject("item", newValidationError(ErrInvalidItemValue, string(in.ItemType), in.Value))
	}

	if b.cfg.Strict && hasLineBreak(in.Type) {
		return b.reject("item", newValidationError(ErrLineBreak, string(in.ItemType), in.Type))
	}

	serviceCode := resolveServiceCode(b.cfg, in.ItemType, in.ServiceType)

	value, err := handler.format(in.Value, b.cfg.Strict)
	if err != nil {
		return b.reject("item", err)
	}

	typ := in.Type
	if typ == "" {
		typ = defaultType
	}

	b.items = append(b.items, item{
		itemType:      in.ItemType,
		typ:           upper(typ),
		value:         value,
		serviceCode:   serviceCode,
		secondaryCode: b.cfg.SecondaryTypeCodes[string(in.ItemType)],
	})
	return nil
}

// SetImageData stores data as an inline base64 PHOTO, replacing any image.
func (b *Builder) SetImageData(data []byte, mimeType string) {
	b.image = newInlineImage(data, mimeType)
}

// SetImage fetches location through the builder's Fetcher and stores it
// as an inline PHOTO.
func (b *Builder) SetImage(ctx context.Context, location, mimeType string) error {
	if b.fetcher == nil {
		return b.reject("image", ErrMissingFetcher)
	}

	start := time.Now()
	data, err := b.fetcher.Fetch(ctx, location)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrFetch, location, err)
	}
	emitImageFetched(ctx, b.id, location, len(data), time.Since(start), err)
	if err != nil {
		return err
	}

	b.SetImageData(data, mimeType)
	return nil
}

// SetImageURL stores a linked PHOTO, replacing any image. An invalid URL
// is rejected and the current image is kept.
func (b *Builder) SetImageURL(rawURL, mimeType string) error {
	if !IsValidURL(rawURL) {
		return b.reject("image", newValidationError(ErrInvalidURL, "image", rawURL))
	}
	b.image = LinkedImage{MIMEType: mimeType, URL: rawURL}
	return nil
}

// Image returns the current photo, or nil.
func (b *Builder) Image() Image {
	return b.image
}

// ClearImage removes the photo.
func (b *Builder) ClearImage() {
	b.image = nil
}

// SetRevision stores a raw revision timestamp: unix seconds or any layout
// FormatRevision understands. It is parsed at render time.
func (b *Builder) SetRevision(raw string) {
	b.revision = raw
}

// SetRevisionTime stores t as the revision timestamp.
func (b *Builder) SetRevisionTime(t time.Time) {
	b.SetRevisionUnix(t.Unix())
}

// SetRevisionUnix stores unix seconds as the revision timestamp.
func (b *Builder) SetRevisionUnix(sec int64) {
	b.revision = fmt.Sprintf("%d", sec)
}

// Clone returns a deep copy with a fresh ID. The clock and fetcher are shared.
func (b *Builder) Clone() *Builder {
	c := *b
	c.id = uuid.NewString()
	c.cfg = b.cfg.Clone()
	c.phones = slices.Clone(b.phones)
	c.addresses = slices.Clone(b.addresses)
	c.emails = slices.Clone(b.emails)
	c.items = slices.Clone(b.items)
	c.urls = slices.Clone(b.urls)
	return &c
}

// reject reports a rejected field and returns err unchanged.
func (b *Builder) reject(field string, err error) error {
	emitFieldRejected(context.Background(), b.id, field, err)
	return err
}
