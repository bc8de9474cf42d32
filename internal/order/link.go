package order

import (
	"strings"

	"github.com/hiddenspringfield/shop-backend/pkg/enums"
)

// MessagePlaceholder is replaced by the encoded message when present in a link.
const MessagePlaceholder = "{message}"

// Link is an outbound order link classified once when it is configured.
type Link struct {
	Raw  string         `json:"raw"`
	Kind enums.LinkKind `json:"kind"`
}

var linkPatterns = []struct {
	kind    enums.LinkKind
	needles []string
}{
	{enums.LinkKindTelegram, []string{"t.me", "telegram"}},
	{enums.LinkKindWhatsApp, []string{"wa.me", "whatsapp"}},
	{enums.LinkKindClipboardOnly, []string{"instagram", "snapchat", "ig.me"}},
}

// ParseLink classifies raw by platform. An empty link stays unconfigured.
func ParseLink(raw string) Link {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Link{}
	}
	lower := strings.ToLower(raw)
	for _, p := range linkPatterns {
		for _, needle := range p.needles {
			if strings.Contains(lower, needle) {
				return Link{Raw: raw, Kind: p.kind}
			}
		}
	}
	return Link{Raw: raw, Kind: enums.LinkKindGeneric}
}

// Configured reports whether the link has a destination.
func (l Link) Configured() bool {
	return l.Raw != ""
}

// Links resolves named order links. The generic order link is registered
// under GenericLinkName.
type Links map[string]Link

// GenericLinkName addresses the shop-wide order link.
const GenericLinkName = "order"

// NewLinks parses the generic link and every seller link.
func NewLinks(orderLink string, sellers map[string]string) Links {
	links := make(Links, len(sellers)+1)
	links[GenericLinkName] = ParseLink(orderLink)
	for name, raw := range sellers {
		links[strings.ToLower(strings.TrimSpace(name))] = ParseLink(raw)
	}
	return links
}

// Get returns the link for name, defaulting to the generic link when name is
// empty. Unknown names yield an unconfigured link.
func (l Links) Get(name string) Link {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = GenericLinkName
	}
	return l[name]
}
