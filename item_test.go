package vcard

import "testing"

func TestIsValidItemType(t *testing.T) {
	tests := []struct {
		input ItemType
		valid bool
	}{
		{ItemPhone, true},
		{ItemEmail, true},
		{ItemAddress, true},
		{ItemURL, true},
		{"fax", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidItemType(tt.input); got != tt.valid {
			t.Errorf("IsValidItemType(%q) = %v, want %v", tt.input, got, tt.valid)
		}
	}
}

func TestItemHandlers_Validate(t *testing.T) {
	tests := []struct {
		itemType ItemType
		value    string
		valid    bool
	}{
		{ItemPhone, "anything", true},
		{ItemAddress, "", true},
		{ItemEmail, "daniel@example.com", true},
		{ItemEmail, "daniel", false},
		{ItemURL, "https://example.com", true},
		{ItemURL, "example", false},
	}

	for _, tt := range tests {
		if got := itemHandlers[tt.itemType].validate(tt.value); got != tt.valid {
			t.Errorf("%s.validate(%q) = %v, want %v", tt.itemType, tt.value, got, tt.valid)
		}
	}
}

func TestItemHandlers_Format(t *testing.T) {
	tests := []struct {
		itemType ItemType
		value    string
		expected string
	}{
		{ItemPhone, "5551234567", "(555) 123-4567"},
		{ItemAddress, "123 Main St\nSpringfield, IL 62704", "123 Main St;Springfield;IL;62704"},
		{ItemEmail, "daniel@example.com", "daniel@example.com"},
		{ItemURL, "https://example.com", "https://example.com"},
	}

	for _, tt := range tests {
		got, err := itemHandlers[tt.itemType].format(tt.value, false)
		if err != nil {
			t.Errorf("%s.format(%q) error: %v", tt.itemType, tt.value, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("%s.format(%q) = %q, want %q", tt.itemType, tt.value, got, tt.expected)
		}
	}
}

func TestResolveServiceCode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServiceTypeCodes["blank"] = ""

	tests := []struct {
		name        string
		itemType    ItemType
		serviceType string
		expected    string
	}{
		{"item type code", ItemPhone, "", "TEL"},
		{"email code", ItemEmail, "", "EMAIL"},
		{"explicit known", ItemURL, "site", "URL"},
		{"explicit other item", ItemURL, "phone", "TEL"},
		{"explicit unknown", ItemPhone, "pager", "URL"},
		{"explicit empty code", ItemPhone, "blank", "URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveServiceCode(cfg, tt.itemType, tt.serviceType); got != tt.expected {
				t.Errorf("resolveServiceCode(%q, %q) = %q, want %q", tt.itemType, tt.serviceType, got, tt.expected)
			}
		})
	}
}

func TestResolveServiceCode_MissingDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServiceTypeCodes = map[string]string{}

	if got := resolveServiceCode(cfg, ItemPhone, ""); got != "URL" {
		t.Errorf("resolveServiceCode() = %q, want %q", got, "URL")
	}
}
