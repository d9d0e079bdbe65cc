// Package vcard builds vCard 3.0 contact cards.
//
// A Builder accumulates names, organization, phone numbers, addresses,
// emails, URLs, generic items, a photo and a revision timestamp, then
// renders them as CRLF-terminated vCard text. Every mutator validates and
// normalizes its input when it is called, under the builder's Config.
//
// # Basic Usage
//
//	b := vcard.New()
//	b.SetFullName("Daniel Imhoff")
//	b.SetOrganization("Acme")
//	_ = b.AddPhoneNumber("work", "5551234567")
//	_ = b.AddEmail("work", "daniel@example.com")
//	_ = b.AddAddress("home", "123 Main St\nSpringfield, IL 62704")
//
//	card, err := b.Render(ctx)
//
// # Strict Mode
//
// The default configuration is lenient. With strict mode on, phone and
// address types must be in their allow-lists, phone numbers must have 7,
// 10 or 11 digits, and emails and URLs must look valid:
//
//	b := vcard.New(vcard.WithOverrides(vcard.Overrides{Strict: &strict}))
//
// Generic items added through AddItem are always checked, regardless of
// strict mode.
//
// # Configuration Sources
//
// Overrides can come from code, from the environment (OverridesFromEnv),
// from dotenv files (LoadEnvFile), or from a JSON, YAML or MessagePack
// document (DecodeOverrides with a codec from the codec sub-packages).
//
// # Tag-Driven Population
//
// Populate fills a builder from a tagged struct:
//
//	type Contact struct {
//	    Name   string   `vcard:"fn"`
//	    Mobile string   `vcard:"tel,mobile"`
//	    Emails []string `vcard:"email,work"`
//	}
//
//	err := vcard.Populate(b, contact)
//
// Types can bypass reflection by implementing CardPopulator.
//
// # Snapshots
//
// Snapshot captures a builder as a Card that any Codec can encode;
// Restore rebuilds a builder from one.
//
// # Observability
//
// Builders emit capitan signals on creation, configuration changes,
// rejected fields, image fetches and renders. Masked returns a copy safe
// to render into logs.
package vcard
