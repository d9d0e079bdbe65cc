package vcard

// Override interfaces allow types to bypass reflection-based population.
// When a type implements one, Populate calls the method instead of reading
// vcard struct tags.
//
// These interfaces are designed for codegen: a generator can emit the
// method from the same tags Populate would read.

// CardPopulator bypasses reflection in Populate.
// Implement this to fill a builder from a type directly.
type CardPopulator interface {
	// PopulateCard adds the receiver's fields to b.
	PopulateCard(b *Builder) error
}
