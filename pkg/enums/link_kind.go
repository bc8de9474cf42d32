package enums

import "fmt"

// LinkKind classifies an outbound order link by how a message can be attached.
type LinkKind string

const (
	LinkKindTelegram      LinkKind = "telegram"
	LinkKindWhatsApp      LinkKind = "whatsapp"
	LinkKindClipboardOnly LinkKind = "clipboard_only"
	LinkKindGeneric       LinkKind = "generic"
)

var validLinkKinds = []LinkKind{
	LinkKindTelegram,
	LinkKindWhatsApp,
	LinkKindClipboardOnly,
	LinkKindGeneric,
}

// String implements fmt.Stringer.
func (k LinkKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known LinkKind.
func (k LinkKind) IsValid() bool {
	for _, candidate := range validLinkKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// SupportsTextParam reports whether the platform accepts a ?text= deep link.
func (k LinkKind) SupportsTextParam() bool {
	return k == LinkKindTelegram || k == LinkKindWhatsApp
}

// ParseLinkKind converts raw input into a LinkKind.
func ParseLinkKind(value string) (LinkKind, error) {
	for _, candidate := range validLinkKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid link kind %q", value)
}
