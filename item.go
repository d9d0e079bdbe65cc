package vcard

// ItemType represents a supported generic contact-method kind.
// Use these constants in ItemInput.ItemType and Config.ValidItemTypes.
type ItemType string

const (
	// ItemPhone is a telephone number, formatted by digit count.
	ItemPhone ItemType = "phone"

	// ItemEmail is an email address, validated for shape.
	ItemEmail ItemType = "email"

	// ItemAddress is a multi-line postal address, restructured into ADR form.
	ItemAddress ItemType = "address"

	// ItemURL is a link, validated for shape.
	ItemURL ItemType = "url"
)

// defaultServiceCode is used when no configured service code applies.
const defaultServiceCode = "URL"

// ItemInput describes one generic contact method for Builder.AddItem.
type ItemInput struct {
	ItemType    ItemType // Kind of contact method; selects the handler
	Type        string   // TYPE parameter, e.g. work or home (default: home)
	Value       string   // Raw value, validated and formatted by the handler
	ServiceType string   // Optional key into Config.ServiceTypeCodes
}

// item is a fully resolved generic entry ready for rendering.
type item struct {
	itemType      ItemType
	typ           string
	value         string
	serviceCode   string
	secondaryCode string
}

// itemHandler validates and formats values of a single item type.
type itemHandler struct {
	validate func(value string) bool
	format   func(value string, strict bool) (string, error)
}

// itemHandlers is the closed dispatch table for AddItem.
var itemHandlers = map[ItemType]itemHandler{
	ItemPhone: {
		validate: acceptAny,
		format: func(value string, strict bool) (string, error) {
			return FormatPhoneNumber(value, strict)
		},
	},
	ItemEmail: {
		validate: IsValidEmail,
		format:   identity,
	},
	ItemAddress: {
		validate: acceptAny,
		format: func(value string, _ bool) (string, error) {
			return FormatAddress(value), nil
		},
	},
	ItemURL: {
		validate: IsValidURL,
		format:   identity,
	},
}

// IsValidItemType returns true if the item type has a registered handler.
func IsValidItemType(it ItemType) bool {
	_, ok := itemHandlers[it]
	return ok
}

func acceptAny(string) bool { return true }

func identity(value string, _ bool) (string, error) { return value, nil }

// resolveServiceCode picks the field tag for an item.
// No explicit service type uses the item type's own code; a known service
// type with a non-empty code uses that code; everything else is URL.
func resolveServiceCode(cfg Config, it ItemType, serviceType string) string {
	if serviceType == "" {
		if code := cfg.ServiceTypeCodes[string(it)]; code != "" {
			return code
		}
		return defaultServiceCode
	}
	if code, ok := cfg.ServiceTypeCodes[serviceType]; ok && code != "" {
		return code
	}
	return defaultServiceCode
}
