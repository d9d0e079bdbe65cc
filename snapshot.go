package vcard

import (
	"encoding/xml"
	"fmt"
)

// Image kinds in a CardImage.
const (
	ImageKindInline = "inline"
	ImageKindURI    = "uri"
)

// Card is a serializable snapshot of a Builder's accumulated fields.
// Values are stored already normalized.
type Card struct {
	XMLName xml.Name `json:"-" yaml:"-" msgpack:"-" bson:"-" xml:"vcard"`

	FullName     string `json:"fullName,omitempty" yaml:"fullName,omitempty" msgpack:"fullName,omitempty" bson:"fullName,omitempty" xml:"fullName,omitempty"`
	FirstName    string `json:"firstName,omitempty" yaml:"firstName,omitempty" msgpack:"firstName,omitempty" bson:"firstName,omitempty" xml:"firstName,omitempty"`
	MiddleName   string `json:"middleName,omitempty" yaml:"middleName,omitempty" msgpack:"middleName,omitempty" bson:"middleName,omitempty" xml:"middleName,omitempty"`
	LastName     string `json:"lastName,omitempty" yaml:"lastName,omitempty" msgpack:"lastName,omitempty" bson:"lastName,omitempty" xml:"lastName,omitempty"`
	NameParts    bool   `json:"nameParts,omitempty" yaml:"nameParts,omitempty" msgpack:"nameParts,omitempty" bson:"nameParts,omitempty" xml:"nameParts,omitempty"`
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty" msgpack:"organization,omitempty" bson:"organization,omitempty" xml:"organization,omitempty"`
	Title        string `json:"title,omitempty" yaml:"title,omitempty" msgpack:"title,omitempty" bson:"title,omitempty" xml:"title,omitempty"`

	Phones    []CardPhone   `json:"phones,omitempty" yaml:"phones,omitempty" msgpack:"phones,omitempty" bson:"phones,omitempty" xml:"phone"`
	Addresses []CardAddress `json:"addresses,omitempty" yaml:"addresses,omitempty" msgpack:"addresses,omitempty" bson:"addresses,omitempty" xml:"address"`
	Emails    []CardEmail   `json:"emails,omitempty" yaml:"emails,omitempty" msgpack:"emails,omitempty" bson:"emails,omitempty" xml:"email"`
	Items     []CardItem    `json:"items,omitempty" yaml:"items,omitempty" msgpack:"items,omitempty" bson:"items,omitempty" xml:"item"`
	URLs      []CardURL     `json:"urls,omitempty" yaml:"urls,omitempty" msgpack:"urls,omitempty" bson:"urls,omitempty" xml:"url"`

	Image    *CardImage `json:"image,omitempty" yaml:"image,omitempty" msgpack:"image,omitempty" bson:"image,omitempty" xml:"image,omitempty"`
	Revision string     `json:"revision,omitempty" yaml:"revision,omitempty" msgpack:"revision,omitempty" bson:"revision,omitempty" xml:"revision,omitempty"`
}

// CardPhone is a snapshot of one TEL entry.
type CardPhone struct {
	Type   string `json:"type" yaml:"type" msgpack:"type" bson:"type" xml:"type,attr"`
	Number string `json:"number" yaml:"number" msgpack:"number" bson:"number" xml:",chardata"`
}

// CardAddress is a snapshot of one ADR/LABEL pair.
type CardAddress struct {
	Type string `json:"type" yaml:"type" msgpack:"type" bson:"type" xml:"type,attr"`
	Raw  string `json:"raw" yaml:"raw" msgpack:"raw" bson:"raw" xml:",chardata"`
}

// CardEmail is a snapshot of one EMAIL entry.
type CardEmail struct {
	Type  string `json:"type" yaml:"type" msgpack:"type" bson:"type" xml:"type,attr"`
	Value string `json:"value" yaml:"value" msgpack:"value" bson:"value" xml:",chardata"`
}

// CardItem is a snapshot of one resolved generic item.
type CardItem struct {
	ItemType      ItemType `json:"itemType" yaml:"itemType" msgpack:"itemType" bson:"itemType" xml:"itemType,attr"`
	Type          string   `json:"type" yaml:"type" msgpack:"type" bson:"type" xml:"type,attr"`
	ServiceCode   string   `json:"serviceCode" yaml:"serviceCode" msgpack:"serviceCode" bson:"serviceCode" xml:"serviceCode,attr"`
	SecondaryCode string   `json:"secondaryCode" yaml:"secondaryCode" msgpack:"secondaryCode" bson:"secondaryCode" xml:"secondaryCode,attr"`
	Value         string   `json:"value" yaml:"value" msgpack:"value" bson:"value" xml:",chardata"`
}

// CardURL is a snapshot of one URL entry.
type CardURL struct {
	Type        string `json:"type" yaml:"type" msgpack:"type" bson:"type" xml:"type,attr"`
	ServiceType string `json:"serviceType,omitempty" yaml:"serviceType,omitempty" msgpack:"serviceType,omitempty" bson:"serviceType,omitempty" xml:"serviceType,attr,omitempty"`
	Value       string `json:"value" yaml:"value" msgpack:"value" bson:"value" xml:",chardata"`
}

// CardImage is a snapshot of the PHOTO. Kind is ImageKindInline or ImageKindURI.
type CardImage struct {
	Kind     string `json:"kind" yaml:"kind" msgpack:"kind" bson:"kind" xml:"kind,attr"`
	MIMEType string `json:"mimeType" yaml:"mimeType" msgpack:"mimeType" bson:"mimeType" xml:"mimeType,attr"`
	Data     string `json:"data,omitempty" yaml:"data,omitempty" msgpack:"data,omitempty" bson:"data,omitempty" xml:"data,omitempty"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty" msgpack:"url,omitempty" bson:"url,omitempty" xml:"url,omitempty"`
}

// Snapshot captures the builder's fields.
func (b *Builder) Snapshot() Card {
	card := Card{
		FullName:     b.fullName,
		FirstName:    b.firstName,
		MiddleName:   b.middleName,
		LastName:     b.lastName,
		NameParts:    b.partsSet,
		Organization: b.organization,
		Title:        b.title,
		Revision:     b.revision,
	}

	for _, p := range b.phones {
		card.Phones = append(card.Phones, CardPhone{Type: p.typ, Number: p.number})
	}
	for _, a := range b.addresses {
		card.Addresses = append(card.Addresses, CardAddress{Type: a.typ, Raw: a.raw})
	}
	for _, e := range b.emails {
		card.Emails = append(card.Emails, CardEmail{Type: e.typ, Value: e.value})
	}
	for _, it := range b.items {
		card.Items = append(card.Items, CardItem{
			ItemType:      it.itemType,
			Type:          it.typ,
			ServiceCode:   it.serviceCode,
			SecondaryCode: it.secondaryCode,
			Value:         it.value,
		})
	}
	for _, l := range b.urls {
		card.URLs = append(card.URLs, CardURL{Type: l.typ, ServiceType: l.serviceType, Value: l.value})
	}

	switch img := b.image.(type) {
	case InlineImage:
		card.Image = &CardImage{Kind: ImageKindInline, MIMEType: img.MIMEType, Data: img.Data}
	case LinkedImage:
		card.Image = &CardImage{Kind: ImageKindURI, MIMEType: img.MIMEType, URL: img.URL}
	}

	return card
}

// Restore builds a Builder from a snapshot. Values are trusted as already
// normalized; only item types are checked, since an item without a handler
// could never have been added.
func Restore(card Card, opts ...Option) (*Builder, error) {
	b := New(opts...)

	b.fullName = card.FullName
	b.firstName = card.FirstName
	b.middleName = card.MiddleName
	b.lastName = card.LastName
	b.partsSet = card.NameParts
	b.organization = card.Organization
	b.title = card.Title
	b.revision = card.Revision

	for _, p := range card.Phones {
		b.phones = append(b.phones, phoneNumber{typ: upper(p.Type), number: p.Number})
	}
	for _, a := range card.Addresses {
		b.addresses = append(b.addresses, address{typ: upper(a.Type), raw: a.Raw})
	}
	for _, e := range card.Emails {
		b.emails = append(b.emails, email{typ: upper(e.Type), value: e.Value})
	}
	for _, it := range card.Items {
		if !IsValidItemType(it.ItemType) {
			return nil, newValidationError(ErrUnsupportedItemType, "item", string(it.ItemType))
		}
		b.items = append(b.items, item{
			itemType:      it.ItemType,
			typ:           upper(it.Type),
			value:         it.Value,
			serviceCode:   it.ServiceCode,
			secondaryCode: it.SecondaryCode,
		})
	}
	for _, l := range card.URLs {
		b.urls = append(b.urls, link{
			typ:         upper(l.Type),
			value:       l.Value,
			serviceType: l.ServiceType,
			tag:         urlTag(b.cfg, l.ServiceType),
		})
	}

	if img := card.Image; img != nil {
		switch img.Kind {
		case ImageKindInline:
			b.image = InlineImage{MIMEType: img.MIMEType, Data: img.Data}
		case ImageKindURI:
			b.image = LinkedImage{MIMEType: img.MIMEType, URL: img.URL}
		default:
			return nil, newCodecError(ErrUnmarshal, fmt.Errorf("unknown image kind %q", img.Kind))
		}
	}

	return b, nil
}

// Encode marshals a snapshot with c.
func Encode(c Codec, card Card) ([]byte, error) {
	data, err := c.Marshal(&card)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// Decode unmarshals a snapshot with c.
func Decode(c Codec, data []byte) (Card, error) {
	var card Card
	if err := c.Unmarshal(data, &card); err != nil {
		return Card{}, newCodecError(ErrUnmarshal, err)
	}
	return card, nil
}
