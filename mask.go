package vcard

import (
	"strings"
	"unicode/utf8"
)

// MaskType represents a card field kind with masking rules.
type MaskType string

const (
	MaskEmail   MaskType = "email"   // alice@example.com -> a***@example.com
	MaskPhone   MaskType = "phone"   // (555) 123-4567 -> (***) ***-4567
	MaskName    MaskType = "name"    // John Smith -> J*** S****
	MaskAddress MaskType = "address" // 123 Main St\nSpringfield, IL 62704 -> ***\nSpringfield, IL 62704
)

// Masker applies content-aware masking.
type Masker interface {
	// Mask applies masking to the value.
	Mask(value string) string
}

// emailMasker masks email format: alice@example.com -> a***@example.com
type emailMasker struct{}

// EmailMasker returns a masker for email addresses.
// Preserves first character of local part and full domain.
func EmailMasker() Masker {
	return &emailMasker{}
}

func (m *emailMasker) Mask(value string) string {
	atIdx := strings.LastIndex(value, "@")
	if atIdx < 1 {
		return strings.Repeat("*", len(value))
	}

	first, _ := utf8.DecodeRuneInString(value)
	return string(first) + "***" + value[atIdx:]
}

// phoneMasker masks every digit but the last four, keeping punctuation.
type phoneMasker struct{}

// PhoneMasker returns a masker for formatted phone numbers.
//
//	555-1234         -> ***-1234
//	(555) 123-4567   -> (***) ***-4567
//	1 (555) 123-4567 -> * (***) ***-4567
func PhoneMasker() Masker {
	return &phoneMasker{}
}

func (m *phoneMasker) Mask(value string) string {
	total := len(ExtractDigits(value))
	if total <= 4 {
		return strings.Repeat("*", len(value))
	}

	var sb strings.Builder
	seen := 0
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c < '0' || c > '9' {
			sb.WriteByte(c)
			continue
		}
		seen++
		if seen > total-4 {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('*')
		}
	}
	return sb.String()
}

// nameMasker masks names: John Smith -> J*** S****
type nameMasker struct{}

// NameMasker returns a masker for personal names.
// Preserves first letter of each word, masks the rest.
func NameMasker() Masker {
	return &nameMasker{}
}

func (m *nameMasker) Mask(value string) string {
	words := strings.Fields(value)
	masked := make([]string, len(words))

	for i, word := range words {
		runes := []rune(word)
		masked[i] = string(runes[0]) + strings.Repeat("*", len(runes)-1)
	}

	return strings.Join(masked, " ")
}

// addressMasker hides the street line and keeps the locality lines.
type addressMasker struct{}

// AddressMasker returns a masker for raw multi-line addresses.
func AddressMasker() Masker {
	return &addressMasker{}
}

func (m *addressMasker) Mask(value string) string {
	lines := splitAddressLines(value)
	lines[0] = "***"
	return strings.Join(lines, "\n")
}

// builtinMaskers returns the default masker registry.
func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskEmail:   EmailMasker(),
		MaskPhone:   PhoneMasker(),
		MaskName:    NameMasker(),
		MaskAddress: AddressMasker(),
	}
}

// Masked returns a clone whose names, phone numbers, addresses and emails
// have been masked, including phone, email and address items. Use it to
// render cards into logs.
func (b *Builder) Masked() *Builder {
	maskers := builtinMaskers()
	name := maskers[MaskName]
	phone := maskers[MaskPhone]
	mail := maskers[MaskEmail]
	addr := maskers[MaskAddress]

	c := b.Clone()
	c.fullName = name.Mask(c.fullName)
	c.firstName = name.Mask(c.firstName)
	c.middleName = name.Mask(c.middleName)
	c.lastName = name.Mask(c.lastName)

	for i := range c.phones {
		c.phones[i].number = phone.Mask(c.phones[i].number)
	}
	for i := range c.addresses {
		c.addresses[i].raw = addr.Mask(c.addresses[i].raw)
	}
	for i := range c.emails {
		c.emails[i].value = mail.Mask(c.emails[i].value)
	}
	for i := range c.items {
		switch c.items[i].itemType {
		case ItemPhone:
			c.items[i].value = phone.Mask(c.items[i].value)
		case ItemEmail:
			c.items[i].value = mail.Mask(c.items[i].value)
		case ItemAddress:
			// Stored in structured form; drop the street component.
			if _, rest, ok := strings.Cut(c.items[i].value, ";"); ok {
				c.items[i].value = "***;" + rest
			}
		}
	}
	return c
}
